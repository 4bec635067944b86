package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/prco/check-status/internal/provider/providertest"
	checkerrors "github.com/prco/check-status/pkg/errors"
)

func executeCommand(cmd *cobra.Command, args ...string) (string, string, error) {
	cmd.SetArgs(args)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

type fakeProviders struct {
	statusURL string
	pdfURL    string
	pdfHits   atomic.Int32
}

func startProviders(t *testing.T) *fakeProviders {
	t.Helper()

	fp := &fakeProviders{}
	pdf := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fp.pdfHits.Add(1)
		_, _ = io.WriteString(w, "%PDF-1.4")
	}))
	t.Cleanup(pdf.Close)
	fp.pdfURL = pdf.URL + "/report.pdf"

	status := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, _ := io.ReadAll(r.Body)
		switch {
		case strings.Contains(string(payload), "<RequestID>838317</RequestID>"):
			_, _ = io.WriteString(w, providertest.WisReplyMissing())
		case strings.Contains(string(payload), "<request_id>"):
			_, _ = io.WriteString(w, providertest.OneGuardReplyWithReport(fp.pdfURL))
		default:
			_, _ = io.WriteString(w, providertest.WisReplyWithReport(fp.pdfURL))
		}
	}))
	t.Cleanup(status.Close)
	fp.statusURL = status.URL

	return fp
}

func writeEnv(t *testing.T, statusURL, reportFolder string) string {
	t.Helper()

	var b strings.Builder
	for _, prefix := range []string{"wis", "oneguard"} {
		fmt.Fprintf(&b, "%s_credentials=foo,bar\n", prefix)
		fmt.Fprintf(&b, "%s_test_url=%s\n", prefix, statusURL)
		fmt.Fprintf(&b, "%s_prod_url=%s\n", prefix, statusURL)
		fmt.Fprintf(&b, "%s_report_folder=%s\n", prefix, reportFolder)
	}

	path := filepath.Join(t.TempDir(), "prco-check-status-env")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))
	return path
}

func TestCheckCommandPrintsReportAndDownloads(t *testing.T) {
	fp := startProviders(t)
	reports := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(reports, "wis", "a"), 0o755))
	envFile := writeEnv(t, fp.statusURL, reports)

	stdout, _, err := executeCommand(newRootCmd(),
		"-c", envFile, "-e", "production", "-s", "wis", "--no-color",
		"758317,/wis/a/111", "838317,/wis/a/555")
	require.NoError(t, err)

	expected := "\nprco-check-status\nserver: wis\nenvironment: production\n" +
		"\n---\n" +
		"RequestID: 758317\n" +
		"Details: http://www.wisinspections.com/Customer/InspectionDetails.aspx?requestID=iiHiK1bYlMo%%\n" +
		"Images: http://www.wisinspections.com/Customer/InspectionPictures.aspx?requestID=iiHiK1bYlMo%%\n" +
		"Report: " + fp.pdfURL + "\n" +
		"\n" +
		"\n---\nStatus unavailable for: 838317\n\n" +
		"\n\nFinished\n\n"
	require.Equal(t, expected, stdout)

	require.Equal(t, int32(1), fp.pdfHits.Load())
	require.FileExists(t, filepath.Join(reports, "wis", "a", "111", "111.pdf"))
	require.NoDirExists(t, filepath.Join(reports, "wis", "a", "555"))
}

func TestCheckCommandOneGuard(t *testing.T) {
	fp := startProviders(t)
	reports := t.TempDir()
	envFile := writeEnv(t, fp.statusURL, reports)

	stdout, _, err := executeCommand(newRootCmd(), "-c", envFile, "-s", "oneguard", "--no-color", "7,/PRCO TEST 7")
	require.NoError(t, err)
	require.Contains(t, stdout, "server: oneguard\nenvironment: test\n")
	require.Contains(t, stdout, "requestId: 7\nstatus: closed\nstate: 7\nmessage: Inspection Request Complete\nreport: "+fp.pdfURL+"\n")
	require.FileExists(t, filepath.Join(reports, "PRCO TEST 7", "PRCO TEST 7.pdf"))
}

func TestCheckCommandRepeatedRunDoesNotDownloadTwice(t *testing.T) {
	fp := startProviders(t)
	reports := t.TempDir()
	envFile := writeEnv(t, fp.statusURL, reports)

	for i := 0; i < 2; i++ {
		_, _, err := executeCommand(newRootCmd(), "-c", envFile, "-s", "wis", "--no-color", "758317,/111")
		require.NoError(t, err)
	}
	require.Equal(t, int32(1), fp.pdfHits.Load())
}

func TestCheckCommandValidatesInputs(t *testing.T) {
	reports := t.TempDir()
	envFile := writeEnv(t, "http://127.0.0.1:1", reports)

	t.Run("missing env file", func(t *testing.T) {
		_, _, err := executeCommand(newRootCmd(), "-c", filepath.Join(reports, "absent"), "-s", "wis", "1,/a")
		require.Error(t, err)
		require.Contains(t, err.Error(), "Missing env file")
	})

	t.Run("no requests", func(t *testing.T) {
		_, _, err := executeCommand(newRootCmd(), "-c", envFile, "-s", "wis")
		require.Error(t, err)
		require.Contains(t, err.Error(), "no request entered")
	})

	t.Run("unknown server", func(t *testing.T) {
		_, _, err := executeCommand(newRootCmd(), "-c", envFile, "-s", "acme", "1,/a")
		var validationErr *checkerrors.ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Contains(t, err.Error(), "Invalid server")
	})

	t.Run("bad environment", func(t *testing.T) {
		_, _, err := executeCommand(newRootCmd(), "-c", envFile, "-s", "wis", "-e", "staging", "1,/a")
		require.Error(t, err)
		require.Contains(t, err.Error(), "Invalid environment")
	})
}

func TestRootCommandUsesRunner(t *testing.T) {
	original := checkCmdRunner
	t.Cleanup(func() { checkCmdRunner = original })

	envFile := writeEnv(t, "http://127.0.0.1:1", t.TempDir())

	var captured checkOptions
	var capturedArgs []string
	checkCmdRunner = func(_ context.Context, opts checkOptions, args []string, _, _ io.Writer, color bool) error {
		captured = opts
		capturedArgs = args
		require.False(t, color)
		return nil
	}

	_, _, err := executeCommand(newRootCmd(), "--config_env_file", envFile, "--server", "oneguard", "--environment", "production", "-v", "1,/a", "2,/b")
	require.NoError(t, err)
	require.Equal(t, "oneguard", captured.Server)
	require.Equal(t, "production", captured.Environment)
	require.True(t, captured.Verbose)
	require.Equal(t, []string{"1,/a", "2,/b"}, capturedArgs)
}
