// internal/config/config.go
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/valpere/SurveyRanker/internal/utils"
)

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(filename string) (*Config, error) {
	if filename == "" {
		return nil, fmt.Errorf("configuration filename cannot be empty")
	}

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", filename)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	return LoadFromBytes(data)
}

// LoadFromBytes loads configuration from YAML bytes.
func LoadFromBytes(data []byte) (*Config, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("configuration data cannot be empty")
	}

	expanded := expandEnvironmentVariables(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML configuration: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, utils.WrapError(utils.ErrCodeInvalidConfig, err, "invalid configuration")
	}

	return &cfg, nil
}

// LoadFromReader loads configuration from an io.Reader.
func LoadFromReader(reader io.Reader) (*Config, error) {
	if reader == nil {
		return nil, fmt.Errorf("reader cannot be nil")
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read from reader: %w", err)
	}

	return LoadFromBytes(data)
}

// expandEnvironmentVariables substitutes ${VAR} references with their
// environment values, leaving unknown references untouched.
func expandEnvironmentVariables(data string) string {
	return os.Expand(data, func(name string) string {
		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		return "${" + name + "}"
	})
}

// applyDefaults fills in default values for unset fields.
func applyDefaults(cfg *Config) {
	if cfg.Name == "" {
		cfg.Name = "survey-ranking"
	}

	if cfg.Input.EncodingFallback == "" {
		cfg.Input.EncodingFallback = DefaultEncodingFallback
	}
	if len(cfg.Input.Schema.URLs) == 0 {
		// Google Forms export convention: B=respondent, D=collection URL,
		// E=direct URL (0-based 1, 3, 4).
		if cfg.Input.Schema.Respondent == 0 {
			cfg.Input.Schema.Respondent = 1
		}
		cfg.Input.Schema.URLs = []int{3, 4}
	}

	if cfg.Resolver.RateInterval == "" {
		cfg.Resolver.RateInterval = DefaultRateInterval.String()
	}
	if cfg.Resolver.Timeout == "" {
		cfg.Resolver.Timeout = DefaultTimeout.String()
	}

	if cfg.Output.Format == "" {
		cfg.Output.Format = DefaultOutputFormat
	}
	cfg.Output.Format = strings.ToLower(cfg.Output.Format)
	if cfg.Output.SheetName == "" {
		cfg.Output.SheetName = DefaultSheetName
	}
	if cfg.Output.Table == "" {
		cfg.Output.Table = DefaultTable
	}
}

// GenerateTemplate returns a starter configuration of the requested type.
// "basic" covers the common fields, "full" spells out every option.
func GenerateTemplate(templateType string) *Config {
	hasHeader := true
	cfg := &Config{
		Name: "video-survey",
		Input: InputConfig{
			File:      "responses.csv",
			HasHeader: &hasHeader,
			Schema: SchemaConfig{
				Respondent: 1,
				URLs:       []int{3, 4},
			},
		},
		Output: OutputConfig{
			Format: "csv",
		},
	}

	if templateType == "full" {
		keep := true
		cfg.Input.EncodingFallback = DefaultEncodingFallback
		cfg.Resolver = ResolverConfig{
			RateInterval:  DefaultRateInterval.String(),
			Timeout:       DefaultTimeout.String(),
			KeepUnmatched: &keep,
		}
		cfg.Quota = QuotaConfig{Expected: 10}
		cfg.Output.SheetName = DefaultSheetName
		cfg.Output.Table = DefaultTable
	}

	return cfg
}
