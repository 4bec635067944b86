package engine

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/prco/check-status/internal/logger"
	"github.com/prco/check-status/internal/model"
	checkerrors "github.com/prco/check-status/pkg/errors"
)

// StatusFetcher performs the status check for one request.
type StatusFetcher interface {
	Fetch(ctx context.Context, opts *model.RunOptions, req model.StatusRequest) model.Outcome
}

// Downloader decides on and performs the report download for one outcome.
type Downloader interface {
	MaybeDownload(ctx context.Context, outcome model.Outcome) (model.Decision, error)
}

// Batch is what a run hands back to its caller. It also tracks the report
// downloads the run started.
type Batch struct {
	RunID    string
	Outcomes []model.Outcome
	Report   string

	downloads sync.WaitGroup
	mu        sync.Mutex
	results   []DownloadResult
}

// DownloadResult records how the download for one request ended.
type DownloadResult struct {
	RequestID string
	Decision  model.Decision
	Err       error
}

// Orchestrator fans a batch of status requests out concurrently and collects
// their outcomes in input order.
type Orchestrator struct {
	fetcher    StatusFetcher
	downloader Downloader
	logger     *logger.Logger
}

// NewOrchestrator wires an Orchestrator. downloader may be nil to skip
// downloads entirely.
func NewOrchestrator(fetcher StatusFetcher, downloader Downloader, log *logger.Logger) *Orchestrator {
	return &Orchestrator{fetcher: fetcher, downloader: downloader, logger: log}
}

// Run checks every request in opts concurrently, without a limit, and waits
// for all of them. The returned outcomes follow the order of opts.Requests.
// Report downloads are started afterwards and are not waited for; call
// Batch.Wait to block until they finish.
func (o *Orchestrator) Run(ctx context.Context, opts *model.RunOptions) (*Batch, error) {
	if opts == nil {
		return nil, checkerrors.NewValidationError("options", "run options are nil", nil)
	}
	if o.fetcher == nil {
		return nil, checkerrors.NewValidationError("fetcher", "status fetcher is nil", nil)
	}

	runID := uuid.NewString()
	log := o.logger.WithFields(map[string]any{
		"run_id":      runID,
		"server":      opts.Server,
		"environment": opts.Environment,
	})
	log.Debug("checking status")

	outcomes := make([]model.Outcome, len(opts.Requests))
	var wg sync.WaitGroup
	for idx, req := range opts.Requests {
		wg.Add(1)
		go func(idx int, req model.StatusRequest) {
			defer wg.Done()
			outcomes[idx] = o.fetcher.Fetch(ctx, opts, req)
		}(idx, req)
	}
	wg.Wait()

	batch := &Batch{
		RunID:    runID,
		Outcomes: outcomes,
		Report:   BuildReport(opts, outcomes),
	}

	o.startDownloads(ctx, log, batch)
	return batch, nil
}

func (o *Orchestrator) startDownloads(ctx context.Context, log *logger.Logger, batch *Batch) {
	if o.downloader == nil {
		return
	}

	for _, outcome := range batch.Outcomes {
		batch.downloads.Add(1)
		go func(outcome model.Outcome) {
			defer batch.downloads.Done()

			decision, err := o.downloader.MaybeDownload(ctx, outcome)
			if err != nil && decision != model.DecisionAborted {
				log.With("request_id", outcome.Request.RequestID).Warn(err, "download did not complete")
			}

			batch.mu.Lock()
			batch.results = append(batch.results, DownloadResult{
				RequestID: outcome.Request.RequestID,
				Decision:  decision,
				Err:       err,
			})
			batch.mu.Unlock()
		}(outcome)
	}
}

// Wait blocks until every download started for b has settled and returns
// their results in completion order.
func (b *Batch) Wait() []DownloadResult {
	b.downloads.Wait()

	b.mu.Lock()
	defer b.mu.Unlock()
	results := make([]DownloadResult, len(b.results))
	copy(results, b.results)
	return results
}
