// Package fetcher issues one status request and turns whatever comes back
// into a model.Outcome.
package fetcher

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/prco/check-status/internal/logger"
	"github.com/prco/check-status/internal/model"
	"github.com/prco/check-status/internal/provider"
	checkerrors "github.com/prco/check-status/pkg/errors"
)

// ContentType is sent with every SOAP request.
const ContentType = "text/xml; charset=utf-8"

// HTTPDoer is the subset of *http.Client the fetcher needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher posts status requests to a single provider.
type Fetcher struct {
	client   HTTPDoer
	provider provider.Provider
	logger   *logger.Logger
}

// New creates a Fetcher. A nil client falls back to a client without timeout.
func New(client HTTPDoer, p provider.Provider, log *logger.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{}
	}
	return &Fetcher{client: client, provider: p, logger: log}
}

// Fetch performs the status check for req. It never returns an error: server
// errors, transport failures and undecodable replies are all folded into the
// returned outcome so one request cannot abort the batch.
func (f *Fetcher) Fetch(ctx context.Context, opts *model.RunOptions, req model.StatusRequest) model.Outcome {
	log := f.logger.With("request_id", req.RequestID)
	outcome := model.Outcome{Request: req, Options: opts}

	body, status, err := f.post(ctx, opts, req)
	if err == nil && status >= http.StatusBadRequest {
		log.Warn(checkerrors.NewServerError(req.RequestID, status), "status service returned an error")
		outcome.State = model.StateServerError
		outcome.ServerError = true
		outcome.StatusCode = status
		outcome.Fragment = provider.ServerErrorFragment(req.RequestID)
		return outcome
	}
	outcome.StatusCode = status

	// Transport and decode failures are reported like a reply without data.
	// This fail-soft behaviour is deliberate: the batch still prints a report.
	var reply *model.Reply
	if err != nil {
		log.Warn(err, "status request failed")
	} else {
		reply, err = f.provider.ParseReply(req.RequestID, body)
		if err != nil {
			log.Warn(err, "status reply could not be decoded")
			reply = nil
		}
	}

	outcome.Reply = reply
	if reply == nil {
		outcome.State = model.StateParseNull
	} else {
		outcome.State = model.StateParseSuccess
	}
	outcome.Fragment = f.provider.RenderFragment(req.RequestID, reply)
	log.Debug("status " + outcome.State)

	return outcome
}

func (f *Fetcher) post(ctx context.Context, opts *model.RunOptions, req model.StatusRequest) ([]byte, int, error) {
	payload, err := f.provider.BuildPayload(opts, req)
	if err != nil {
		return nil, 0, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, opts.URL, strings.NewReader(payload))
	if err != nil {
		return nil, 0, checkerrors.NewTransportError(req.RequestID, "build request", err)
	}
	httpReq.Header.Set("Content-Type", ContentType)

	resp, err := f.client.Do(httpReq)
	if err != nil {
		return nil, 0, checkerrors.NewTransportError(req.RequestID, "post", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, resp.StatusCode, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, checkerrors.NewTransportError(req.RequestID, "read body", err)
	}

	return body, resp.StatusCode, nil
}
