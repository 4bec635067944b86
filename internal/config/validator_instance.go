package config

import (
	"path/filepath"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("abspath", func(fl validator.FieldLevel) bool {
			return filepath.IsAbs(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}
