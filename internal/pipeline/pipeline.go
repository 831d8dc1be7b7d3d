// internal/pipeline/pipeline.go

// Package pipeline orchestrates one complete ranking run: read the survey
// responses, resolve every cited URL through the cache, aggregate the
// votes, and export the ranking.
package pipeline

import (
	"context"
	"time"

	"github.com/valpere/SurveyRanker/internal/config"
	"github.com/valpere/SurveyRanker/internal/ingest"
	"github.com/valpere/SurveyRanker/internal/output"
	"github.com/valpere/SurveyRanker/internal/provider"
	"github.com/valpere/SurveyRanker/internal/resolver"
	"github.com/valpere/SurveyRanker/internal/tally"
	"github.com/valpere/SurveyRanker/internal/utils"
	"github.com/valpere/SurveyRanker/pkg/types"
)

// Pipeline wires the components of a run together. Processing is strictly
// sequential: rows in input order, URLs within a row in schema order.
type Pipeline struct {
	cfg      *config.Config
	logger   utils.Logger
	progress tally.ProgressFunc
	source   tally.MetadataSource
}

// RunMetrics summarizes what one run did.
type RunMetrics struct {
	Rows          int           `json:"rows"`
	Votes         int           `json:"votes"`
	RankedVideos  int           `json:"ranked_videos"`
	CacheHits     int           `json:"cache_hits"`
	CacheMisses   int           `json:"cache_misses"`
	DroppedURLs   int           `json:"dropped_urls"`
	DegradedVotes int           `json:"degraded_votes"`
	Duration      time.Duration `json:"duration"`
}

// Result is the outcome of a successful run.
type Result struct {
	Ranking    []types.RankingRow
	Advisory   tally.Advisory
	Metrics    RunMetrics
	OutputPath string
}

// New creates a pipeline for the given configuration.
func New(cfg *config.Config) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		logger: utils.NewLogger(),
	}
}

// SetLogger sets the logger used by the pipeline and its components.
func (p *Pipeline) SetLogger(logger utils.Logger) {
	p.logger = logger
}

// SetProgress installs the progress callback invoked after each row. The
// pipeline owns no display state; rendering belongs to the caller.
func (p *Pipeline) SetProgress(progress tally.ProgressFunc) {
	p.progress = progress
}

// SetMetadataSource overrides the resolution source, bypassing the real
// providers. Used by tests.
func (p *Pipeline) SetMetadataSource(source tally.MetadataSource) {
	p.source = source
}

// Run executes the full pipeline. No partial output is ever written: the
// export happens only after aggregation succeeds, so a failed run leaves
// no file behind.
func (p *Pipeline) Run(ctx context.Context) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = utils.NewStructuredError(utils.ErrCodeInternal, "unexpected error during processing: %v", r)
		}
	}()

	start := time.Now()

	rows, err := ingest.ReadFile(p.cfg.Input)
	if err != nil {
		return nil, err
	}
	p.logger.Infof("read %d response rows from %s", len(rows), p.cfg.Input.File)

	source := p.source
	var cache *resolver.Cache
	if source == nil {
		cache = p.buildCache()
		source = cache
	}

	proc := tally.NewProcessor(source, p.cfg.Input.Schema, tally.ProcessorOptions{
		KeepUnmatched: p.cfg.Resolver.KeepUnmatchedURLs(),
		Quota:         p.cfg.Quota.Expected,
		Logger:        p.logger,
		Progress:      p.progress,
	})

	votes, advisory := proc.Process(ctx, rows)

	ranking, err := tally.Aggregate(votes)
	if err != nil {
		return nil, err
	}

	manager, err := output.NewManager(p.cfg.Output)
	if err != nil {
		return nil, utils.WrapError(utils.ErrCodeOutputFailed, err, "failed to prepare output")
	}
	if err := manager.WriteRanking(ranking); err != nil {
		return nil, utils.WrapError(utils.ErrCodeOutputFailed, err, "failed to write ranking to %s", manager.Path())
	}

	metrics := RunMetrics{
		Rows:          len(rows),
		Votes:         len(votes),
		RankedVideos:  len(ranking),
		DroppedURLs:   advisory.DroppedURLs,
		DegradedVotes: advisory.DegradedVotes,
		Duration:      time.Since(start),
	}
	if cache != nil {
		stats := cache.Stats()
		metrics.CacheHits = stats.Hits
		metrics.CacheMisses = stats.Misses
	}

	p.logger.WithFields(map[string]interface{}{
		"videos":       metrics.RankedVideos,
		"votes":        metrics.Votes,
		"cache_hits":   metrics.CacheHits,
		"cache_misses": metrics.CacheMisses,
		"duration":     metrics.Duration.Round(time.Millisecond),
	}).Info("ranking complete")

	return &Result{
		Ranking:    ranking,
		Advisory:   advisory,
		Metrics:    metrics,
		OutputPath: manager.Path(),
	}, nil
}

// buildCache assembles the real provider chain: the platform XML lookup
// first, the page extraction provider second, both behind the per-run
// resolution cache.
func (p *Pipeline) buildCache() *resolver.Cache {
	client := provider.NewHTTPClient(provider.ClientConfig{
		Timeout:   p.cfg.Resolver.TimeoutDuration(),
		UserAgent: p.cfg.Resolver.UserAgent,
	})

	res := resolver.New(
		provider.NewThumbInfoProvider(client),
		provider.NewPageProvider(client),
		resolver.Options{
			RateInterval: p.cfg.Resolver.RateIntervalDuration(),
			Timeout:      p.cfg.Resolver.TimeoutDuration(),
			Logger:       p.logger,
		},
	)

	return resolver.NewCache(res)
}
