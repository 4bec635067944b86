package main

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/prco/check-status/internal/config"
	"github.com/prco/check-status/internal/download"
	"github.com/prco/check-status/internal/engine"
	"github.com/prco/check-status/internal/fetcher"
	"github.com/prco/check-status/internal/logger"
	"github.com/prco/check-status/internal/model"
	"github.com/prco/check-status/internal/provider"
	"github.com/prco/check-status/internal/report"
)

// httpClient is shared by status requests and report downloads. It has no
// timeout; a hung request only holds up its own branch.
var httpClient = &http.Client{}

func runCheck(ctx context.Context, opts checkOptions, args []string, stdout, stderr io.Writer, color bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	env, err := config.LoadEnv(opts.EnvFile, os.LookupEnv)
	if err != nil {
		return err
	}

	runOpts, err := config.BuildOptions(config.Flags{
		EnvFile:      opts.EnvFile,
		Environment:  opts.Environment,
		Server:       opts.Server,
		RequestsFile: opts.RequestsFile,
		Requests:     args,
	}, env)
	if err != nil {
		return err
	}

	level := "info"
	if opts.Verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{Level: level, Writer: stderr})
	if err != nil {
		return err
	}

	p, err := provider.Lookup(runOpts.Server)
	if err != nil {
		return err
	}

	orchestrator := engine.NewOrchestrator(
		fetcher.New(httpClient, p, log),
		download.NewGatekeeper(httpClient, p, log),
		log,
	)

	batch, err := orchestrator.Run(ctx, runOpts)
	if err != nil {
		return err
	}

	if err := report.NewStyler(stdout, color).Print(batch.Report); err != nil {
		return err
	}

	logDownloads(log, batch.Wait())
	return nil
}

func logDownloads(log *logger.Logger, results []engine.DownloadResult) {
	var downloaded, aborted, failed int
	for _, r := range results {
		switch r.Decision {
		case model.DecisionDownloaded:
			downloaded++
		case model.DecisionAborted:
			aborted++
		default:
			failed++
		}
	}
	log.WithFields(map[string]any{
		"downloaded": downloaded,
		"aborted":    aborted,
		"failed":     failed,
	}).Debug("downloads settled")
}
