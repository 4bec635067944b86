// Package providertest serves recorded provider replies to tests.
package providertest

import (
	"embed"
	"regexp"
)

//go:embed testdata/*.xml
var fixtures embed.FS

// WisReportURL is the report link carried by the recorded wis reply.
const WisReportURL = "http://www.wisinspections.com/Customer/InspectionReport.aspx?requestID=iiHiK1bYlMo%%"

// OneGuardReportURL is the report link carried by the recorded oneguard reply.
const OneGuardReportURL = "https://test.oneguardinspections.com/components/com_rstickets/files/2020/05/04/PRCOTEST7/PRCO TEST-0000000007_PDF_Report.pdf"

var (
	wisReportElement      = regexp.MustCompile(`<Report>[^<]*</Report>`)
	oneguardReportElement = regexp.MustCompile(`<report>[^<]*</report>`)
	wisRecord             = regexp.MustCompile(`(?s)<tblInspectionRequest .*</tblInspectionRequest>`)
	oneguardResult        = regexp.MustCompile(`(?s)<RequestResponseResult>.*</RequestResponseResult>`)
)

func mustRead(name string) string {
	data, err := fixtures.ReadFile("testdata/" + name)
	if err != nil {
		panic(err)
	}
	return string(data)
}

// WisReply is a complete wis CheckStatus reply for request 758317.
func WisReply() string { return mustRead("wis_reply.xml") }

// WisReplyWithReport is WisReply with its Report element pointing at url.
func WisReplyWithReport(url string) string {
	return wisReportElement.ReplaceAllLiteralString(WisReply(), "<Report>"+url+"</Report>")
}

// WisReplyEmptyRecord is WisReply with a self-closed, empty result record.
func WisReplyEmptyRecord() string {
	return wisRecord.ReplaceAllLiteralString(WisReply(), "<tblInspectionRequest/>")
}

// WisReplyMissing is a wis reply whose diffgram holds no dataset.
func WisReplyMissing() string { return mustRead("wis_reply_missing.xml") }

// OneGuardReply is a oneguard reply for a closed inspection.
func OneGuardReply() string { return mustRead("oneguard_reply.xml") }

// OneGuardReplyWithReport is OneGuardReply with its report element pointing at url.
func OneGuardReplyWithReport(url string) string {
	return oneguardReportElement.ReplaceAllLiteralString(OneGuardReply(), "<report>"+url+"</report>")
}

// OneGuardReplyEmptyResult is OneGuardReply with a result element that has
// neither children nor text.
func OneGuardReplyEmptyResult() string {
	return oneguardResult.ReplaceAllLiteralString(OneGuardReply(), "<RequestResponseResult></RequestResponseResult>")
}

// OneGuardReplyEmpty is a oneguard reply whose result record has only empty fields.
func OneGuardReplyEmpty() string { return mustRead("oneguard_reply_empty.xml") }
