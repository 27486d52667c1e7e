package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/aretw0/jot/pkg/adapters/kv"
)

// ValidationError represents a single validation failure.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// ValidDrivers returns the accepted storage drivers.
func ValidDrivers() []string {
	return []string{"file", "sqlite", "memory"}
}

// ValidLogLevels returns the accepted log levels.
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config and returns every problem found.
func (c *Config) Validate() ValidationErrors {
	var errs ValidationErrors

	if c.RemoteEnabled() {
		u, err := url.Parse(strings.TrimSpace(c.API.BaseURL))
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, ValidationError{
				Field:   "api.base_url",
				Value:   c.API.BaseURL,
				Message: "must be an absolute http or https URL",
			})
		}
	}
	if c.API.Timeout < 0 {
		errs = append(errs, ValidationError{Field: "api.timeout", Value: c.API.Timeout, Message: "must not be negative"})
	}
	if c.API.Retries < 0 {
		errs = append(errs, ValidationError{Field: "api.retries", Value: c.API.Retries, Message: "must not be negative"})
	}

	if !slices.Contains(ValidDrivers(), c.Storage.Driver) {
		errs = append(errs, ValidationError{
			Field:   "storage.driver",
			Value:   c.Storage.Driver,
			Message: fmt.Sprintf("must be one of %s", strings.Join(ValidDrivers(), ", ")),
		})
	}
	if err := kv.ValidateKey(c.Storage.Key); err != nil {
		errs = append(errs, ValidationError{
			Field:   "storage.key",
			Value:   c.Storage.Key,
			Message: `must be a non-empty name without path separators or ".."`,
		})
	}

	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}
	return errs
}
