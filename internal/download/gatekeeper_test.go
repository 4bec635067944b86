package download

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prco/check-status/internal/logger"
	"github.com/prco/check-status/internal/model"
	"github.com/prco/check-status/internal/provider"
	checkerrors "github.com/prco/check-status/pkg/errors"
)

const pdfBody = "%PDF-1.4 report"

func pdfServer(t *testing.T, status int) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/pdf")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, pdfBody)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func wisOutcome(reportFolder, folderPath, reportURL string) model.Outcome {
	fields := map[string]string{"RequestID": "758317"}
	if reportURL != "" {
		fields["Report"] = reportURL
	}
	return model.Outcome{
		Request: model.StatusRequest{RequestID: "758317", FolderPath: folderPath},
		Options: &model.RunOptions{Server: "wis", ReportFolder: reportFolder},
		State:   model.StateParseSuccess,
		Reply:   &model.Reply{RequestID: "758317", Fields: fields},
	}
}

func requireAbort(t *testing.T, decision model.Decision, err error, reason string) {
	t.Helper()
	require.Equal(t, model.DecisionAborted, decision)
	var abortErr *checkerrors.DownloadAbortError
	require.ErrorAs(t, err, &abortErr)
	require.Equal(t, reason, abortErr.Reason)
}

func requireNoPartFiles(t *testing.T, dir string) {
	t.Helper()
	leftovers, err := filepath.Glob(filepath.Join(dir, "*.part"))
	require.NoError(t, err)
	require.Empty(t, leftovers)
}

func TestDestination(t *testing.T) {
	t.Parallel()

	folder, file := Destination(wisOutcome("/reports", "/wis/b o b/333", ""))
	require.Equal(t, "/reports/wis/b o b/333", folder)
	require.Equal(t, "/reports/wis/b o b/333/333.pdf", file)
}

func TestMaybeDownloadWritesReport(t *testing.T) {
	t.Parallel()

	srv, hits := pdfServer(t, http.StatusOK)
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "b"), 0o755))

	g := NewGatekeeper(srv.Client(), provider.Wis, logger.Nop())
	decision, err := g.MaybeDownload(context.Background(), wisOutcome(root, "a/b/111", srv.URL+"/report.pdf"))

	require.NoError(t, err)
	require.Equal(t, model.DecisionDownloaded, decision)
	require.Equal(t, int32(1), hits.Load())

	data, err := os.ReadFile(filepath.Join(root, "a", "b", "111", "111.pdf"))
	require.NoError(t, err)
	require.Equal(t, pdfBody, string(data))
	requireNoPartFiles(t, filepath.Join(root, "a", "b", "111"))
}

func TestMaybeDownloadIsIdempotent(t *testing.T) {
	t.Parallel()

	srv, hits := pdfServer(t, http.StatusOK)
	root := t.TempDir()
	outcome := wisOutcome(root, "111", srv.URL+"/report.pdf")
	g := NewGatekeeper(srv.Client(), provider.Wis, logger.Nop())

	decision, err := g.MaybeDownload(context.Background(), outcome)
	require.NoError(t, err)
	require.Equal(t, model.DecisionDownloaded, decision)

	decision, err = g.MaybeDownload(context.Background(), outcome)
	requireAbort(t, decision, err, ReasonReportExists)
	require.Equal(t, int32(1), hits.Load())
	require.Equal(t, "Download aborted for requestId 758317: Report already exists", err.Error())
}

func TestMaybeDownloadAbortsWithoutReportURL(t *testing.T) {
	t.Parallel()

	srv, hits := pdfServer(t, http.StatusOK)
	root := t.TempDir()
	g := NewGatekeeper(srv.Client(), provider.Wis, logger.Nop())

	t.Run("field absent", func(t *testing.T) {
		decision, err := g.MaybeDownload(context.Background(), wisOutcome(root, "111", ""))
		requireAbort(t, decision, err, ReasonMissingReportURL)
	})

	t.Run("nil reply", func(t *testing.T) {
		outcome := wisOutcome(root, "111", "")
		outcome.Reply = nil
		outcome.State = model.StateParseNull
		decision, err := g.MaybeDownload(context.Background(), outcome)
		requireAbort(t, decision, err, ReasonMissingReportURL)
	})

	t.Run("server error", func(t *testing.T) {
		outcome := wisOutcome(root, "111", "")
		outcome.Reply = nil
		outcome.ServerError = true
		outcome.State = model.StateServerError
		decision, err := g.MaybeDownload(context.Background(), outcome)
		requireAbort(t, decision, err, ReasonMissingReportURL)
	})

	t.Run("wrong provider key", func(t *testing.T) {
		outcome := wisOutcome(root, "111", "")
		outcome.Reply.Fields["report"] = srv.URL
		decision, err := g.MaybeDownload(context.Background(), outcome)
		requireAbort(t, decision, err, ReasonMissingReportURL)
	})

	require.Equal(t, int32(0), hits.Load())
	require.NoDirExists(t, filepath.Join(root, "111"))
}

func TestMaybeDownloadAbortsWhenParentMissing(t *testing.T) {
	t.Parallel()

	srv, hits := pdfServer(t, http.StatusOK)
	root := t.TempDir()
	g := NewGatekeeper(srv.Client(), provider.Wis, logger.Nop())

	decision, err := g.MaybeDownload(context.Background(), wisOutcome(root, "a/b/c/111", srv.URL))
	requireAbort(t, decision, err, ReasonMissingFolder)
	require.Equal(t, int32(0), hits.Load())
	require.NoDirExists(t, filepath.Join(root, "a"))
}

func TestMaybeDownloadAbortsWhenReportExists(t *testing.T) {
	t.Parallel()

	srv, hits := pdfServer(t, http.StatusOK)
	root := t.TempDir()
	folder := filepath.Join(root, "111")
	require.NoError(t, os.Mkdir(folder, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(folder, "111.pdf"), []byte("old"), 0o644))

	g := NewGatekeeper(srv.Client(), provider.Wis, logger.Nop())
	decision, err := g.MaybeDownload(context.Background(), wisOutcome(root, "111", srv.URL))

	requireAbort(t, decision, err, ReasonReportExists)
	require.Equal(t, int32(0), hits.Load())
	data, err := os.ReadFile(filepath.Join(folder, "111.pdf"))
	require.NoError(t, err)
	require.Equal(t, "old", string(data))
}

func TestMaybeDownloadReportsFailedTransfer(t *testing.T) {
	t.Parallel()

	srv, hits := pdfServer(t, http.StatusNotFound)
	root := t.TempDir()
	g := NewGatekeeper(srv.Client(), provider.OneGuard, logger.Nop())

	outcome := model.Outcome{
		Request: model.StatusRequest{RequestID: "7", FolderPath: "PRCO TEST 7"},
		Options: &model.RunOptions{Server: "oneguard", ReportFolder: root},
		Reply:   &model.Reply{RequestID: "7", Fields: map[string]string{"report": srv.URL + "/7.pdf"}},
	}

	decision, err := g.MaybeDownload(context.Background(), outcome)
	require.Equal(t, model.DecisionFailed, decision)
	var transportErr *checkerrors.TransportError
	require.ErrorAs(t, err, &transportErr)
	require.Equal(t, int32(1), hits.Load())

	require.DirExists(t, filepath.Join(root, "PRCO TEST 7"))
	require.NoFileExists(t, filepath.Join(root, "PRCO TEST 7", "PRCO TEST 7.pdf"))
	requireNoPartFiles(t, filepath.Join(root, "PRCO TEST 7"))
}
