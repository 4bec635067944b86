package provider

import (
	"text/template"

	"github.com/prco/check-status/internal/model"
)

const wisEnvelope = `
    <soap:Envelope xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xmlns:xsd="http://www.w3.org/2001/XMLSchema" xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
      <soap:Header>
        <AuthenticateHeader xmlns="http://www.wisinspections.com/">
          <Username>{{.Username}}</Username>
          <Password>{{.Password}}</Password>
        </AuthenticateHeader>
      </soap:Header>
      <soap:Body>
        <CheckStatus xmlns="http://www.wisinspections.com/">
          <RequestID>{{.RequestID}}</RequestID>
        </CheckStatus>
      </soap:Body>
    </soap:Envelope>
`

// Wis talks to the wis CheckStatus service. Its result record is a .NET
// DataSet row nested in a diffgram.
var Wis Provider = &soapProvider{
	name:        model.ServerWis,
	envelope:    template.Must(template.New("wis").Parse(wisEnvelope)),
	replyPath:   "soap:Envelope.soap:Body.CheckStatusResponse.CheckStatusResult.diffgr:diffgram.NewDataSet.tblInspectionRequest",
	fields:      []string{"RequestID", "Details", "Images", "Report"},
	reportField: "Report",
}
