// internal/config/types.go

// Package config provides the YAML configuration for a ranking run: where
// the survey responses live, how rows map to respondent and URL fields,
// how the resolver paces outbound lookups, and where the ranking goes.
package config

import "time"

// Config is the top-level configuration for one ranking run.
type Config struct {
	// Name identifies this configuration in logs and output.
	Name string `yaml:"name" json:"name"`

	// Input describes the survey response file and its row schema.
	Input InputConfig `yaml:"input" json:"input"`

	// Resolver controls metadata resolution behavior.
	Resolver ResolverConfig `yaml:"resolver" json:"resolver"`

	// Quota configures the advisory per-respondent vote quota check.
	Quota QuotaConfig `yaml:"quota" json:"quota"`

	// Output selects the export format and destination.
	Output OutputConfig `yaml:"output" json:"output"`
}

// InputConfig describes the survey response file.
type InputConfig struct {
	// File is the path of the response CSV.
	File string `yaml:"file" json:"file"`

	// HasHeader indicates whether the first row is a header and should be
	// skipped. Defaults to true.
	HasHeader *bool `yaml:"has_header,omitempty" json:"has_header,omitempty"`

	// EncodingFallback is the legacy encoding tried when the file is not
	// valid UTF-8 (e.g. "shift-jis"). Defaults to shift-jis.
	EncodingFallback string `yaml:"encoding_fallback" json:"encoding_fallback"`

	// Schema maps row roles to column indices.
	Schema SchemaConfig `yaml:"schema" json:"schema"`
}

// SchemaConfig maps named row roles to 0-based column indices, decoupling
// the pipeline from any one fixed spreadsheet layout.
type SchemaConfig struct {
	// Respondent is the column holding the respondent identity.
	Respondent int `yaml:"respondent" json:"respondent"`

	// URLs are the columns holding video references, processed in order.
	URLs []int `yaml:"urls" json:"urls"`
}

// ResolverConfig controls metadata resolution.
type ResolverConfig struct {
	// RateInterval is the minimum spacing between uncached provider
	// lookups, as a duration string. Cache hits are not delayed.
	RateInterval string `yaml:"rate_interval" json:"rate_interval"`

	// Timeout bounds each provider call, as a duration string.
	Timeout string `yaml:"timeout" json:"timeout"`

	// KeepUnmatched controls the fallback for URLs that fail resolution
	// and carry no recognizable identifier: when true a placeholder vote
	// keyed by the raw URL is emitted, when false the URL is dropped and
	// only counted. Defaults to true.
	KeepUnmatched *bool `yaml:"keep_unmatched,omitempty" json:"keep_unmatched,omitempty"`

	// UserAgent overrides the User-Agent header sent to providers.
	UserAgent string `yaml:"user_agent,omitempty" json:"user_agent,omitempty"`
}

// QuotaConfig configures the advisory quota check.
type QuotaConfig struct {
	// Expected is the per-respondent vote quota; respondents whose
	// emitted vote count deviates are reported. 0 disables the check.
	Expected int `yaml:"expected" json:"expected"`
}

// OutputConfig selects the export destination.
type OutputConfig struct {
	// Format is one of csv, json, excel, sqlite.
	Format string `yaml:"format" json:"format"`

	// File is the output path. When empty or a directory, a timestamped
	// filename of the form ranking_YYYYMMDD_HHMMSS.<ext> is generated.
	File string `yaml:"file" json:"file"`

	// SheetName names the worksheet for excel output.
	SheetName string `yaml:"sheet_name,omitempty" json:"sheet_name,omitempty"`

	// Table names the destination table for sqlite output.
	Table string `yaml:"table,omitempty" json:"table,omitempty"`
}

// Default values applied by applyDefaults.
const (
	DefaultRateInterval     = 100 * time.Millisecond
	DefaultTimeout          = 20 * time.Second
	DefaultEncodingFallback = "shift-jis"
	DefaultOutputFormat     = "csv"
	DefaultSheetName        = "Ranking"
	DefaultTable            = "ranking"
)

// HasHeaderRow reports whether the first input row should be skipped.
func (c InputConfig) HasHeaderRow() bool {
	if c.HasHeader == nil {
		return true
	}
	return *c.HasHeader
}

// KeepUnmatchedURLs reports whether fully-unresolvable URLs still produce
// a placeholder vote.
func (c ResolverConfig) KeepUnmatchedURLs() bool {
	if c.KeepUnmatched == nil {
		return true
	}
	return *c.KeepUnmatched
}

// RateIntervalDuration returns the parsed rate interval, falling back to
// the default when unset or unparseable.
func (c ResolverConfig) RateIntervalDuration() time.Duration {
	if d, err := time.ParseDuration(c.RateInterval); err == nil && d >= 0 {
		return d
	}
	return DefaultRateInterval
}

// TimeoutDuration returns the parsed provider timeout, falling back to the
// default when unset or unparseable.
func (c ResolverConfig) TimeoutDuration() time.Duration {
	if d, err := time.ParseDuration(c.Timeout); err == nil && d > 0 {
		return d
	}
	return DefaultTimeout
}
