// Package download decides whether a report PDF should be fetched for a
// completed status check and writes it under the request's folder.
package download

import (
	"context"
	"net/http"
	"os"
	"path/filepath"

	"github.com/prco/check-status/internal/logger"
	"github.com/prco/check-status/internal/model"
	"github.com/prco/check-status/internal/provider"
	checkerrors "github.com/prco/check-status/pkg/errors"
)

// Abort reasons, in the order they are checked.
const (
	ReasonMissingReportURL = "Missing report URL"
	ReasonMissingFolder    = "Missing hierarchical folder"
	ReasonReportExists     = "Report already exists"
)

// HTTPDoer is the subset of *http.Client used to fetch reports.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Gatekeeper guards report downloads for one provider.
type Gatekeeper struct {
	client   HTTPDoer
	provider provider.Provider
	logger   *logger.Logger
}

// NewGatekeeper creates a Gatekeeper. A nil client falls back to a client
// without timeout.
func NewGatekeeper(client HTTPDoer, p provider.Provider, log *logger.Logger) *Gatekeeper {
	if client == nil {
		client = &http.Client{}
	}
	return &Gatekeeper{client: client, provider: p, logger: log}
}

// Destination returns the folder and file a report for outcome is written to:
// {reportFolder}/{folderPath}/{leaf}.pdf.
func Destination(outcome model.Outcome) (folder, file string) {
	base := ""
	if outcome.Options != nil {
		base = outcome.Options.ReportFolder
	}
	folder = filepath.Join(base, outcome.Request.FolderPath)
	file = filepath.Join(folder, filepath.Base(folder)+".pdf")
	return folder, file
}

// MaybeDownload fetches the report for outcome unless the URL is missing, the
// parent folder does not exist, or the report is already on disk. Aborts are
// returned as *errors.DownloadAbortError alongside model.DecisionAborted.
func (g *Gatekeeper) MaybeDownload(ctx context.Context, outcome model.Outcome) (model.Decision, error) {
	requestID := outcome.Request.RequestID
	log := g.logger.With("request_id", requestID)

	abort := func(reason string) (model.Decision, error) {
		err := checkerrors.NewDownloadAbortError(requestID, reason)
		log.Info(err.Error())
		return model.DecisionAborted, err
	}

	reportURL := g.provider.ReportURL(outcome.Reply)
	if reportURL == "" {
		return abort(ReasonMissingReportURL)
	}

	folder, file := Destination(outcome)
	ok, err := EnsureLeafFolder(folder)
	if err != nil {
		log.Warn(err, "report folder unusable")
	}
	if !ok {
		return abort(ReasonMissingFolder)
	}

	if _, err := os.Stat(file); err == nil {
		return abort(ReasonReportExists)
	}

	log.WithFields(map[string]any{"report_url": reportURL, "path": file}).Info("downloading report")

	written, err := fetchToFile(ctx, g.client, reportURL, file)
	if err != nil {
		err = checkerrors.NewTransportError(requestID, "download report", err)
		log.Error(err, "report download failed")
		return model.DecisionFailed, err
	}

	log.WithFields(map[string]any{"path": file, "bytes": written}).Info("download complete")
	return model.DecisionDownloaded, nil
}
