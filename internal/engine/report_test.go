package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prco/check-status/internal/model"
)

func TestBuildReport(t *testing.T) {
	t.Parallel()

	opts := &model.RunOptions{Server: "oneguard", Environment: "test"}

	t.Run("joins fragments with blank lines", func(t *testing.T) {
		t.Parallel()
		outcomes := []model.Outcome{
			{Fragment: "\n---\nStatus unavailable for: 1\n\n"},
			{Fragment: "\n---\nrequestId: 2\nstatus: open\n"},
		}

		report := BuildReport(opts, outcomes)
		require.Equal(t, "\nprco-check-status\nserver: oneguard\nenvironment: test\n"+
			"\n---\nStatus unavailable for: 1\n\n"+
			"\n"+
			"\n---\nrequestId: 2\nstatus: open\n"+
			"\n\nFinished\n\n", report)
	})

	t.Run("empty batch still has header and trailer", func(t *testing.T) {
		t.Parallel()
		report := BuildReport(opts, nil)
		require.Equal(t, "\nprco-check-status\nserver: oneguard\nenvironment: test\n\n\nFinished\n\n", report)
	})
}
