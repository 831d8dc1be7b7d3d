// internal/resolver/resolver.go

// Package resolver turns raw URLs into canonical video metadata by walking
// an ordered provider chain, and memoizes the outcome per URL for the
// duration of a run.
package resolver

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/valpere/SurveyRanker/internal/provider"
	"github.com/valpere/SurveyRanker/internal/utils"
	"github.com/valpere/SurveyRanker/internal/videoid"
	"github.com/valpere/SurveyRanker/pkg/types"
)

// Resolver resolves one URL into zero or more VideoRecords. The platform
// lookup provider is tried first whenever an identifier is recognizable;
// on success the general-purpose provider is not consulted at all. Every
// provider failure is absorbed here and downgraded to an unresolved
// outcome, never propagated.
type Resolver struct {
	lookup  provider.LookupProvider
	extract provider.ExtractProvider
	limiter *rate.Limiter
	timeout time.Duration
	logger  utils.Logger
}

// Options configures a Resolver.
type Options struct {
	// RateInterval is the minimum spacing between outbound provider
	// calls. Zero disables pacing.
	RateInterval time.Duration

	// Timeout bounds each individual provider call.
	Timeout time.Duration

	// Logger receives per-URL resolution diagnostics.
	Logger utils.Logger
}

// New creates a Resolver over the given providers.
func New(lookup provider.LookupProvider, extract provider.ExtractProvider, opts Options) *Resolver {
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = utils.NewLogger()
	}

	var limiter *rate.Limiter
	if opts.RateInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(opts.RateInterval), 1)
	}

	return &Resolver{
		lookup:  lookup,
		extract: extract,
		limiter: limiter,
		timeout: opts.Timeout,
		logger:  opts.Logger,
	}
}

// Resolve resolves one raw URL. Each provider is attempted at most once;
// transient failures are treated as permanent for the run.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) types.Resolution {
	tried := make(map[string]bool)

	if id := videoid.First(rawURL); id != "" {
		tried[id] = true
		if rec, err := r.lookupByID(ctx, id); err == nil {
			return types.ResolvedSingle(rec)
		} else {
			r.logger.Debugf("platform lookup for %s failed, trying page extraction: %v", id, err)
		}
	}

	records, err := r.extractPage(ctx, rawURL)
	if err != nil {
		r.logger.Debugf("page extraction for %s failed: %v", rawURL, err)
		return types.Unresolved()
	}

	resolved := make([]types.VideoRecord, 0, len(records))
	for _, entry := range records {
		if rec, ok := r.resolveEntry(ctx, entry, tried); ok {
			resolved = append(resolved, rec)
		}
	}
	if len(resolved) == 0 {
		return types.Unresolved()
	}

	return types.Resolution{Records: resolved, Resolved: true}
}

// resolveEntry finalizes one extracted record. Entries carrying a
// recognizable identifier get a platform lookup first, falling back to
// the entry's own fields when that fails. Identifiers already attempted
// in this Resolve call are never looked up again.
func (r *Resolver) resolveEntry(ctx context.Context, entry types.VideoRecord, tried map[string]bool) (types.VideoRecord, bool) {
	id := videoid.First(entry.VideoID)
	if id == "" {
		id = videoid.First(entry.SourceURL)
	}

	if id != "" {
		if !tried[id] {
			tried[id] = true
			if rec, err := r.lookupByID(ctx, id); err == nil {
				rec.SourceURL = entry.SourceURL
				return rec, true
			}
		}
		entry.VideoID = id
	}

	if entry.VideoID == "" {
		return types.VideoRecord{}, false
	}
	return sanitizeRecord(entry), true
}

// lookupByID runs the platform lookup under the configured timeout and
// pacing.
func (r *Resolver) lookupByID(ctx context.Context, id string) (types.VideoRecord, error) {
	if err := r.pace(ctx); err != nil {
		return types.VideoRecord{}, err
	}

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rec, err := r.lookup.Lookup(callCtx, id)
	if err != nil {
		return types.VideoRecord{}, err
	}
	return sanitizeRecord(rec), nil
}

// extractPage runs the general-purpose provider under the configured
// timeout and pacing.
func (r *Resolver) extractPage(ctx context.Context, rawURL string) ([]types.VideoRecord, error) {
	if err := r.pace(ctx); err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	return r.extract.Extract(callCtx, rawURL)
}

// pace spaces outbound provider calls. Cache hits never reach the
// resolver, so only real lookups are delayed.
func (r *Resolver) pace(ctx context.Context) error {
	if r.limiter == nil {
		return nil
	}
	return r.limiter.Wait(ctx)
}

// sanitizeRecord substitutes sentinel strings for missing fields and
// normalizes the upload date. Downstream aggregation and export require
// every field to be a display-ready string.
func sanitizeRecord(rec types.VideoRecord) types.VideoRecord {
	if rec.Title == "" {
		rec.Title = types.SentinelTitle
	}
	if rec.Uploader == "" {
		rec.Uploader = types.SentinelUploader
	}
	rec.UploadDate = NormalizeDate(rec.UploadDate)
	if rec.UploadDate == "" {
		rec.UploadDate = types.SentinelDate
	}
	return rec
}

// NormalizeDate reformats an 8-digit pure-numeric date (YYYYMMDD) into a
// zero-filled date-time. Any other shape passes through unchanged so
// unknown formats are not corrupted.
func NormalizeDate(raw string) string {
	if len(raw) != 8 {
		return raw
	}
	t, err := time.Parse("20060102", raw)
	if err != nil {
		return raw
	}
	return t.Format("2006-01-02 15:04:05")
}
