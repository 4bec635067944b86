package main

import (
	"fmt"
	"os"
	"strings"

	checkerrors "github.com/prco/check-status/pkg/errors"
)

func validateCheckOptions(opts checkOptions, args []string) error {
	if strings.TrimSpace(opts.EnvFile) == "" {
		return checkerrors.NewValidationError("config_env_file", "env file is required", nil)
	}
	if _, err := os.Stat(opts.EnvFile); err != nil {
		return checkerrors.NewValidationError("config_env_file", fmt.Sprintf("Missing env file: %s", opts.EnvFile), err)
	}
	if len(args) == 0 && strings.TrimSpace(opts.RequestsFile) == "" {
		return checkerrors.NewValidationError("requests", "Invalid requests: no request entered.", nil)
	}

	return nil
}
