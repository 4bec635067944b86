// Package provider holds the per-service knowledge of the status pipeline:
// how to build a SOAP request envelope, where the interesting element sits in
// the reply, and how a reply is rendered into a report fragment.
package provider

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/prco/check-status/internal/model"
	"github.com/prco/check-status/internal/soap"
	checkerrors "github.com/prco/check-status/pkg/errors"
)

// Provider is the contract shared by the wis and oneguard services.
type Provider interface {
	Name() string
	BuildPayload(opts *model.RunOptions, req model.StatusRequest) (string, error)
	// ParseReply returns nil without error when the reply does not contain the
	// expected subtree or that subtree is empty. A non-nil error means the body
	// could not be decoded.
	ParseReply(requestID string, body []byte) (*model.Reply, error)
	RenderFragment(requestID string, reply *model.Reply) string
	ReportURL(reply *model.Reply) string
}

const fragmentSeparator = "\n---\n"

// soapProvider is the single Provider implementation; wis and oneguard are
// two values of it differing only in their constants.
type soapProvider struct {
	name string
	// envelope interpolates credentials and request id verbatim.
	envelope *template.Template
	// replyPath is the dot-separated element chain to the result record.
	replyPath string
	// fields lists the rendered fields in report order.
	fields []string
	// leadWithRequestID prefixes the fragment with the caller's request id.
	leadWithRequestID bool
	reportField       string
}

var _ Provider = (*soapProvider)(nil)

type envelopeData struct {
	Username  string
	Password  string
	RequestID string
}

func (p *soapProvider) Name() string {
	return p.name
}

func (p *soapProvider) BuildPayload(opts *model.RunOptions, req model.StatusRequest) (string, error) {
	if opts == nil {
		return "", checkerrors.NewValidationError("options", "run options are nil", nil)
	}

	var buf bytes.Buffer
	err := p.envelope.Execute(&buf, envelopeData{
		Username:  opts.Username,
		Password:  opts.Password,
		RequestID: req.RequestID,
	})
	if err != nil {
		return "", fmt.Errorf("render %s envelope: %w", p.name, err)
	}

	return strings.TrimSpace(buf.String()), nil
}

func (p *soapProvider) ParseReply(requestID string, body []byte) (*model.Reply, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	root, err := soap.Parse(body)
	if err != nil {
		return nil, checkerrors.NewParseError(p.name+" reply", 0, err)
	}

	// An empty result element carries no status, same as an absent one.
	node := root.Lookup(p.replyPath)
	if node == nil || (len(node.Children) == 0 && node.Text == "") {
		return nil, nil
	}

	return &model.Reply{RequestID: requestID, Fields: node.Leaves()}, nil
}

func (p *soapProvider) RenderFragment(requestID string, reply *model.Reply) string {
	if reply == nil {
		return fmt.Sprintf("%sStatus unavailable for: %s\n\n", fragmentSeparator, requestID)
	}

	var b strings.Builder
	b.WriteString(fragmentSeparator)
	if p.leadWithRequestID {
		fmt.Fprintf(&b, "requestId: %s\n", requestID)
	}
	for _, field := range p.fields {
		if reply.Truthy(field) {
			fmt.Fprintf(&b, "%s: %s\n", field, reply.Field(field))
		}
	}

	return b.String()
}

func (p *soapProvider) ReportURL(reply *model.Reply) string {
	if !reply.Truthy(p.reportField) {
		return ""
	}
	return reply.Field(p.reportField)
}

// ServerErrorFragment is the fragment reported for an HTTP status >= 400.
func ServerErrorFragment(requestID string) string {
	return fmt.Sprintf("%sServer error for request id: %s\n", fragmentSeparator, requestID)
}

var registry = map[string]Provider{
	model.ServerWis:      Wis,
	model.ServerOneGuard: OneGuard,
}

// Lookup returns the provider registered under name.
func Lookup(name string) (Provider, error) {
	p, ok := registry[name]
	if !ok {
		return nil, checkerrors.NewValidationError("server", fmt.Sprintf("unknown server %q: choose %s", name, strings.Join(Names(), " or ")), nil)
	}
	return p, nil
}

// Names lists the registered provider names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
