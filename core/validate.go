package core

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateConfig checks the `validate` struct tags on cfg. Construction
// functions call it before touching any external resource so that a bad
// configuration fails fast with a descriptive error.
func ValidateConfig(cfg any) error {
	if err := getValidator().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
