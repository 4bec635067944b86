package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/prco/check-status/internal/model"
	checkerrors "github.com/prco/check-status/pkg/errors"
)

var lineRegex = regexp.MustCompile(`line (\d+)`)

// RequestsFile is the YAML document accepted by --requests-file.
type RequestsFile struct {
	Requests []model.StatusRequest `yaml:"requests"`
}

// ParseRequestArg parses a positional "request-id,path-to-download" argument.
// Exactly one comma is accepted; folder paths cannot contain one.
func ParseRequestArg(arg string) (model.StatusRequest, error) {
	id, folder, found := strings.Cut(arg, ",")
	id = strings.TrimSpace(id)
	if !found || id == "" || strings.TrimSpace(folder) == "" || strings.Contains(folder, ",") {
		return model.StatusRequest{}, checkerrors.NewValidationError("requests", fmt.Sprintf("invalid request %q: expected request-id,path-to-download", arg), nil)
	}

	return normalizeRequest(model.StatusRequest{RequestID: id, FolderPath: folder}), nil
}

// LoadRequestsFile reads requests from a YAML file.
func LoadRequestsFile(path string) ([]model.StatusRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, checkerrors.NewParseError(path, 0, err)
	}

	var doc RequestsFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, checkerrors.NewParseError(path, extractLine(err), err)
	}

	requests := make([]model.StatusRequest, 0, len(doc.Requests))
	for _, req := range doc.Requests {
		requests = append(requests, normalizeRequest(req))
	}
	return requests, nil
}

// normalizeRequest cleans the folder path so it never carries a trailing
// slash or redundant separators.
func normalizeRequest(req model.StatusRequest) model.StatusRequest {
	req.RequestID = strings.TrimSpace(req.RequestID)
	if req.FolderPath != "" {
		req.FolderPath = filepath.Clean(req.FolderPath)
	}
	return req
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := lineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}
	return line
}
