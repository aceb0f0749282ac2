package config

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/fmf/pkg/frontmatter"
)

var (
	ErrVersionTooLow = errors.New("version must be >= 1")
	ErrEmptyKey      = errors.New("key_order entries must not be empty")
	ErrDuplicateKey  = errors.New("key_order entries must be unique")
)

// Validate returns every problem found in cfg, or nil when it is usable.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("no configuration")}
	}

	var errs []error
	if cfg.Version < 1 {
		errs = append(errs, &FieldError{Field: "version", Value: strconv.Itoa(cfg.Version), Err: ErrVersionTooLow})
	}
	if cfg.Style != "" {
		if _, err := frontmatter.ParseStyle(cfg.Style); err != nil {
			errs = append(errs, &FieldError{Field: "style", Value: cfg.Style, Err: err})
		}
	}

	seen := make(map[string]bool, len(cfg.KeyOrder))
	for i, k := range cfg.KeyOrder {
		at := "[" + strconv.Itoa(i) + "]"
		switch {
		case strings.TrimSpace(k) == "":
			errs = append(errs, &FieldError{Field: "key_order", Value: at, Err: ErrEmptyKey})
		case seen[k]:
			errs = append(errs, &FieldError{Field: "key_order", Value: at + " " + k, Err: ErrDuplicateKey})
		}
		seen[k] = true
	}
	return errs
}

// FieldError ties a validation failure to the config key that caused it.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + " " + e.Value + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error { return e.Err }
