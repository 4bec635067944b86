package engine

import (
	"fmt"
	"strings"

	"github.com/prco/check-status/internal/model"
)

// ReportTitle heads every printed report.
const ReportTitle = "prco-check-status"

// BuildReport concatenates the outcome fragments, in order, under a header
// naming the server and environment, and closes with a Finished marker.
func BuildReport(opts *model.RunOptions, outcomes []model.Outcome) string {
	var server, environment string
	if opts != nil {
		server, environment = opts.Server, opts.Environment
	}

	fragments := make([]string, len(outcomes))
	for i, outcome := range outcomes {
		fragments[i] = outcome.Fragment
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\nserver: %s\nenvironment: %s\n", ReportTitle, server, environment)
	b.WriteString(strings.Join(fragments, "\n"))
	b.WriteString("\n\nFinished\n\n")
	return b.String()
}
