// Package config turns command-line flags and the env file into validated
// run options.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/prco/check-status/internal/model"
	checkerrors "github.com/prco/check-status/pkg/errors"
)

// Flags are the raw command-line inputs.
type Flags struct {
	EnvFile      string
	Environment  string
	Server       string
	RequestsFile string
	Requests     []string
}

// BuildOptions selects the provider settings named by flags from env and
// validates the result.
func BuildOptions(flags Flags, env *Env) (*model.RunOptions, error) {
	if env == nil {
		return nil, checkerrors.NewValidationError("env", "env is nil", nil)
	}

	var problems []string
	if flags.Environment != model.EnvironmentTest && flags.Environment != model.EnvironmentProduction {
		problems = append(problems, "Invalid environment: choose test or production.")
	}
	if flags.Server != model.ServerWis && flags.Server != model.ServerOneGuard {
		problems = append(problems, "Invalid server: choose wis or oneguard.")
	}
	if len(flags.Requests) == 0 && flags.RequestsFile == "" {
		problems = append(problems, "Invalid requests: no request entered.")
	}
	if len(problems) > 0 {
		return nil, checkerrors.NewValidationError("", strings.Join(problems, "\n"), nil)
	}

	requests := make([]model.StatusRequest, 0, len(flags.Requests))
	for _, arg := range flags.Requests {
		req, err := ParseRequestArg(arg)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	if flags.RequestsFile != "" {
		fromFile, err := LoadRequestsFile(flags.RequestsFile)
		if err != nil {
			return nil, err
		}
		requests = append(requests, fromFile...)
	}

	pe := env.Wis
	if flags.Server == model.ServerOneGuard {
		pe = env.OneGuard
	}
	url := pe.TestURL
	if flags.Environment == model.EnvironmentProduction {
		url = pe.ProdURL
	}

	opts := &model.RunOptions{
		Server:       flags.Server,
		Environment:  flags.Environment,
		Username:     pe.Username,
		Password:     pe.Password,
		URL:          url,
		ReportFolder: pe.ReportFolder,
		Requests:     requests,
	}

	if err := ValidateOptions(opts); err != nil {
		return nil, err
	}
	return opts, nil
}

// ValidateOptions checks opts against the rules declared on model.RunOptions.
func ValidateOptions(opts *model.RunOptions) error {
	if opts == nil {
		return checkerrors.NewValidationError("options", "run options are nil", nil)
	}

	if err := validatorInstance().Struct(opts); err != nil {
		return convertValidationError(err)
	}
	return nil
}

// convertValidationError normalizes validator errors into validation errors.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := fieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		switch ve.Tag() {
		case "number":
			msg = fmt.Sprintf("invalid requestId: non-numeric: %v", ve.Value())
		case "abspath":
			msg = fmt.Sprintf("report folder %q must be absolute", ve.Value())
		}
		return checkerrors.NewValidationError(field, msg, err)
	}

	return checkerrors.NewValidationError("options", err.Error(), err)
}

func fieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, part := range parts {
		parts[i] = strings.ToLower(part)
	}
	return strings.Join(parts, ".")
}
