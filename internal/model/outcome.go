package model

import "strconv"

const (
	// StateServerError marks a reply with HTTP status >= 400.
	StateServerError = "server_error"
	// StateParseSuccess marks a reply whose expected subtree was found.
	StateParseSuccess = "parse_success"
	// StateParseNull marks a missing subtree, an unreadable body or a transport failure.
	StateParseNull = "parse_null"
)

// Decision is the result of a download attempt.
type Decision string

const (
	// DecisionDownloaded means the report was written to disk.
	DecisionDownloaded Decision = "downloaded"
	// DecisionAborted means a precondition failed and nothing was fetched.
	DecisionAborted Decision = "aborted"
	// DecisionFailed means the download was attempted and did not complete.
	DecisionFailed Decision = "failed"
)

// Reply is a provider response normalized to a flat field set. Fields the
// provider did not return are absent from the map.
type Reply struct {
	RequestID string
	Fields    map[string]string
}

// Field returns the named field, or "" when absent.
func (r *Reply) Field(name string) string {
	if r == nil {
		return ""
	}
	return r.Fields[name]
}

// Truthy reports whether the named field carries a usable value: present,
// non-blank and not a numeric zero.
func (r *Reply) Truthy(name string) bool {
	return IsTruthy(r.Field(name))
}

// IsTruthy applies the field inclusion rule used by reports and downloads.
func IsTruthy(value string) bool {
	if value == "" {
		return false
	}
	if n, err := strconv.ParseFloat(value, 64); err == nil && n == 0 {
		return false
	}
	return true
}

// Outcome bundles everything known about one request after its status check.
// It is built once by the fetcher and treated as read-only afterwards.
type Outcome struct {
	Request     StatusRequest
	Options     *RunOptions
	State       string
	ServerError bool
	StatusCode  int
	Reply       *Reply
	Fragment    string
}
