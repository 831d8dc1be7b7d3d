// internal/config/validation.go
package config

import (
	"fmt"
	"time"
)

// validOutputFormats are the supported export formats.
var validOutputFormats = map[string]bool{
	"csv":    true,
	"json":   true,
	"excel":  true,
	"sqlite": true,
}

// Validate checks the configuration for consistency and returns the first
// problem found with an actionable message.
func (c *Config) Validate() error {
	if c.Input.File == "" {
		return fmt.Errorf("input.file is required")
	}

	if err := c.Input.Schema.validate(); err != nil {
		return err
	}

	if err := c.Resolver.validate(); err != nil {
		return err
	}

	if c.Quota.Expected < 0 {
		return fmt.Errorf("quota.expected must not be negative, got %d", c.Quota.Expected)
	}

	if !validOutputFormats[c.Output.Format] {
		return fmt.Errorf("output.format %q is not supported (use csv, json, excel, or sqlite)", c.Output.Format)
	}

	return nil
}

func (s SchemaConfig) validate() error {
	if s.Respondent < 0 {
		return fmt.Errorf("input.schema.respondent must be a non-negative column index, got %d", s.Respondent)
	}
	if len(s.URLs) == 0 {
		return fmt.Errorf("input.schema.urls must list at least one column index")
	}
	for i, col := range s.URLs {
		if col < 0 {
			return fmt.Errorf("input.schema.urls[%d] must be a non-negative column index, got %d", i, col)
		}
	}
	return nil
}

func (r ResolverConfig) validate() error {
	if r.RateInterval != "" {
		d, err := time.ParseDuration(r.RateInterval)
		if err != nil {
			return fmt.Errorf("resolver.rate_interval is not a valid duration: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("resolver.rate_interval must not be negative, got %s", d)
		}
	}
	if r.Timeout != "" {
		d, err := time.ParseDuration(r.Timeout)
		if err != nil {
			return fmt.Errorf("resolver.timeout is not a valid duration: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("resolver.timeout must be positive, got %s", d)
		}
	}
	return nil
}
