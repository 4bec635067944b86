package provider

import (
	"text/template"

	"github.com/prco/check-status/internal/model"
)

// The ns1 namespace points at the test host for both environments; the
// service accepts it in production as well.
const oneguardEnvelope = `<?xml version="1.0" encoding="UTF-8"?>
<SOAP-ENV:Envelope xmlns:SOAP-ENV="http://schemas.xmlsoap.org/soap/envelope/"
    xmlns:ns1="https://test.oneguardinspections.com/webService/status/api">
    <SOAP-ENV:Header>
        <ns1:AuthenticateHeader>
            <UserName>{{.Username}}</UserName>
            <Password>{{.Password}}</Password>
        </ns1:AuthenticateHeader>
    </SOAP-ENV:Header>
    <SOAP-ENV:Body>
        <SOAP-ENV:GetRequest>
            <request_id>{{.RequestID}}</request_id>
            <tpa_code>PRCO</tpa_code>
        </SOAP-ENV:GetRequest>
    </SOAP-ENV:Body>
</SOAP-ENV:Envelope>
`

// OneGuard talks to the oneguard GetRequest service.
var OneGuard Provider = &soapProvider{
	name:              model.ServerOneGuard,
	envelope:          template.Must(template.New("oneguard").Parse(oneguardEnvelope)),
	replyPath:         "SOAP-ENV:Envelope.SOAP-ENV:Body.ns1:GetRequestResponse.RequestResponseResult",
	fields:            []string{"status", "state", "message", "report"},
	leadWithRequestID: true,
	reportField:       "report",
}
