// internal/tally/processor.go

// Package tally turns survey response rows into votes and aggregates the
// votes into the final ranking.
package tally

import (
	"context"
	"fmt"
	"sort"

	"github.com/valpere/SurveyRanker/internal/config"
	"github.com/valpere/SurveyRanker/internal/ingest"
	"github.com/valpere/SurveyRanker/internal/utils"
	"github.com/valpere/SurveyRanker/internal/videoid"
	"github.com/valpere/SurveyRanker/pkg/types"
)

// MetadataSource resolves a raw URL, normally the resolution cache.
type MetadataSource interface {
	GetOrResolve(ctx context.Context, rawURL string) types.Resolution
}

// ProgressFunc is invoked after each processed row. The pipeline owns no
// display state; rendering belongs to whoever supplies the callback.
type ProgressFunc func(current, total int)

// QuotaMismatch reports a respondent whose emitted vote count deviates
// from the expected quota.
type QuotaMismatch struct {
	Respondent string `json:"respondent"`
	Votes      int    `json:"votes"`
}

// Advisory is the informational surface handed to the caller alongside
// the ranking. It never blocks aggregation.
type Advisory struct {
	// QuotaMismatches lists respondents off the expected quota, sorted
	// by respondent identity. Empty when the check is disabled.
	QuotaMismatches []QuotaMismatch `json:"quota_mismatches,omitempty"`

	// DroppedURLs counts URLs that produced no vote at all.
	DroppedURLs int `json:"dropped_urls"`

	// DegradedVotes counts votes synthesized from identifier extraction
	// or raw-URL placeholders after full resolution failed.
	DegradedVotes int `json:"degraded_votes"`
}

// Processor walks response rows in input order, resolves each cited URL
// through the cache, and emits one vote per (respondent, resolved video)
// pair.
type Processor struct {
	source   MetadataSource
	schema   config.SchemaConfig
	opts     ProcessorOptions
	logger   utils.Logger
	progress ProgressFunc
}

// ProcessorOptions tunes row processing.
type ProcessorOptions struct {
	// KeepUnmatched emits a placeholder vote keyed by the raw URL when
	// resolution fails and no identifier can be extracted. When false
	// such URLs are only counted as dropped.
	KeepUnmatched bool

	// Quota is the expected per-respondent vote count; 0 disables the
	// advisory check.
	Quota int

	Logger   utils.Logger
	Progress ProgressFunc
}

// NewProcessor creates a Processor over the given metadata source and row
// schema.
func NewProcessor(source MetadataSource, schema config.SchemaConfig, opts ProcessorOptions) *Processor {
	logger := opts.Logger
	if logger == nil {
		logger = utils.NewLogger()
	}
	return &Processor{
		source:   source,
		schema:   schema,
		opts:     opts,
		logger:   logger,
		progress: opts.Progress,
	}
}

// Process consumes all rows and returns the emitted votes plus the
// advisory summary. Rows are handled strictly sequentially in input
// order; a malformed row is skipped, never fatal.
func (p *Processor) Process(ctx context.Context, rows [][]string) ([]types.Vote, Advisory) {
	var votes []types.Vote
	var advisory Advisory
	voteCounts := make(map[string]int)

	total := len(rows)
	for i, row := range rows {
		if len(row) == 0 {
			p.logger.Debugf("skipping empty row %d", i+1)
			p.reportProgress(i+1, total)
			continue
		}

		respondent := ingest.FieldAt(row, p.schema.Respondent)
		if respondent == "" {
			// Distinct anonymous respondents must never merge into one
			// identity, so the row ordinal is part of the label.
			respondent = fmt.Sprintf("anonymous#%d", i+1)
		}
		if _, seen := voteCounts[respondent]; !seen {
			voteCounts[respondent] = 0
		}

		for _, col := range p.schema.URLs {
			rawURL := ingest.FieldAt(row, col)
			if rawURL == "" {
				continue
			}
			emitted, degraded, dropped := p.processURL(ctx, rawURL, respondent, &votes)
			voteCounts[respondent] += emitted
			advisory.DegradedVotes += degraded
			advisory.DroppedURLs += dropped
		}

		p.reportProgress(i+1, total)
	}

	advisory.QuotaMismatches = quotaMismatches(voteCounts, p.opts.Quota)
	return votes, advisory
}

// processURL resolves one URL and appends the resulting votes. Returns the
// number of votes emitted, how many of them were degraded fallbacks, and
// whether the URL was dropped entirely.
func (p *Processor) processURL(ctx context.Context, rawURL, respondent string, votes *[]types.Vote) (emitted, degraded, dropped int) {
	res := p.source.GetOrResolve(ctx, rawURL)
	if res.Resolved {
		for _, rec := range res.Records {
			*votes = append(*votes, voteFromRecord(rec, respondent))
		}
		return len(res.Records), 0, 0
	}

	// Resolution failed outright. Fall back to bare identifier
	// extraction on the raw URL text.
	if ids := videoid.Extract(rawURL); len(ids) > 0 {
		for _, id := range ids {
			*votes = append(*votes, types.Vote{
				VideoID:    id,
				Title:      types.SentinelTitle,
				Uploader:   types.SentinelUploader,
				UploadDate: types.SentinelDate,
				Respondent: respondent,
			})
		}
		return len(ids), len(ids), 0
	}

	if p.opts.KeepUnmatched {
		// The raw URL itself becomes the aggregation key so the
		// selection is still counted.
		*votes = append(*votes, types.Vote{
			VideoID:    rawURL,
			Title:      types.SentinelUnavailable,
			Uploader:   types.SentinelUploader,
			UploadDate: types.SentinelDate,
			Respondent: respondent,
		})
		return 1, 1, 0
	}

	p.logger.Warnf("dropping unresolvable URL with no recognizable identifier: %s", rawURL)
	return 0, 0, 1
}

func (p *Processor) reportProgress(current, total int) {
	if p.progress != nil {
		p.progress(current, total)
	}
}

// voteFromRecord copies record metadata into a vote at creation time.
func voteFromRecord(rec types.VideoRecord, respondent string) types.Vote {
	return types.Vote{
		VideoID:    rec.VideoID,
		Title:      rec.Title,
		Uploader:   rec.Uploader,
		UploadDate: rec.UploadDate,
		Respondent: respondent,
	}
}

// quotaMismatches returns the respondents whose vote count deviates from
// the expected quota, sorted by respondent identity.
func quotaMismatches(counts map[string]int, quota int) []QuotaMismatch {
	if quota <= 0 {
		return nil
	}

	var mismatches []QuotaMismatch
	for respondent, n := range counts {
		if n != quota {
			mismatches = append(mismatches, QuotaMismatch{Respondent: respondent, Votes: n})
		}
	}
	sort.Slice(mismatches, func(i, j int) bool {
		return mismatches[i].Respondent < mismatches[j].Respondent
	})
	return mismatches
}
