// Package pipeline wires discovery, fetching, extraction, scoring,
// classification and enrichment into one run.
//
// Only the fetch stages are concurrent; everything else iterates over
// already-fetched data. A run owns all of its records and keeps no state
// afterwards.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"leadharvest/models"
	"leadharvest/pkg/caching"
	"leadharvest/pkg/classifier"
	"leadharvest/pkg/discovery"
	"leadharvest/pkg/enrich"
	"leadharvest/pkg/extractor"
	"leadharvest/pkg/fetcher"
	"leadharvest/pkg/pool"
	"leadharvest/pkg/scorer"
)

// ErrEmptyDiscovery is returned when every discovery source comes back
// empty. Individual source failures are not errors; all of them failing is.
var ErrEmptyDiscovery = errors.New("discovery produced no candidates")

// Stats summarizes one run for the caller. Partial web failures surface
// here, never as errors.
type Stats struct {
	Discovered     int            `json:"discovered" yaml:"discovered"`
	Fetched        int            `json:"fetched" yaml:"fetched"`
	Failed         int            `json:"failed" yaml:"failed"`
	Scored         int            `json:"scored" yaml:"scored"`
	Enriched       int            `json:"enriched" yaml:"enriched"`
	FailureReasons map[string]int `json:"failure_reasons,omitempty" yaml:"failure_reasons,omitempty"`
	Grades         map[string]int `json:"grades,omitempty" yaml:"grades,omitempty"`
}

// Output is the full result set of one run, handed to collaborators
// (writers, dashboards) for serialization.
type Output struct {
	RootDomain string                   `json:"root_domain" yaml:"root_domain"`
	Candidates []models.CandidateHost   `json:"candidates" yaml:"candidates"`
	Records    []*models.LeadRecord     `json:"records" yaml:"records"`
	Enriched   []*models.EnrichedRecord `json:"enriched" yaml:"enriched"`
	Stats      Stats                    `json:"stats" yaml:"stats"`
}

type Pipeline struct {
	cfg        models.PipelineConfig
	logger     *slog.Logger
	generator  *discovery.Generator
	pool       *pool.Pool
	extractor  *extractor.Extractor
	classifier *classifier.Classifier
	enricher   *enrich.Enricher
}

// New validates cfg and builds a pipeline. A validation error is fatal and
// happens before any network activity.
func New(logger *slog.Logger, cfg models.PipelineConfig) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline config: %w", err)
	}

	f := fetcher.NewFetcher(cfg.Timeout)
	if cfg.CacheDir != "" && !cfg.ForceFetch {
		cache, err := caching.NewCache(cfg.CacheDir, cfg.CacheTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize raw-HTML cache: %w", err)
		}
		f = f.WithCache(cache)
	}

	return &Pipeline{
		cfg:        cfg,
		logger:     logger,
		generator:  discovery.NewGenerator(logger, cfg.CrtShURL),
		pool:       pool.New(logger, f, cfg.Workers, cfg.Delay),
		extractor:  extractor.NewExtractor(),
		classifier: classifier.New(),
		enricher:   enrich.NewEnricher(logger, f),
	}, nil
}

// Run executes the full pipeline. It returns a best-effort Output for
// anything short of invalid configuration or an entirely empty discovery.
func (p *Pipeline) Run(ctx context.Context) (*Output, error) {
	out := &Output{RootDomain: p.cfg.RootDomain}

	p.logger.Info("Starting discovery", "root_domain", p.cfg.RootDomain, "max_candidates", p.cfg.MaxSubdomains)
	out.Candidates = p.generator.Generate(ctx, p.cfg.RootDomain, p.cfg.MaxSubdomains)
	out.Stats.Discovered = len(out.Candidates)
	if len(out.Candidates) == 0 {
		return nil, ErrEmptyDiscovery
	}

	toScrape := out.Candidates
	if len(toScrape) > p.cfg.MaxToScrape {
		toScrape = toScrape[:p.cfg.MaxToScrape]
	}

	p.logger.Info("Starting fetch phase", "candidates", len(toScrape), "workers", p.cfg.Workers, "timeout", p.cfg.Timeout, "delay", p.cfg.Delay)
	results := p.pool.Run(ctx, toScrape)

	out.Stats.FailureReasons = make(map[string]int)
	out.Stats.Grades = make(map[string]int)
	for _, result := range results {
		if !result.OK() {
			out.Stats.Failed++
			out.Stats.FailureReasons[result.Reason]++
			continue
		}
		out.Stats.Fetched++

		rec := p.extractor.Extract(result.Candidate.Hostname, result.Body)
		score := scorer.Score(rec)
		p.classifier.Classify(rec)
		out.Stats.Grades[string(score.Grade)]++
		out.Records = append(out.Records, rec)
	}
	out.Stats.Scored = len(out.Records)
	p.logger.Info("Fetch phase complete", "fetched", out.Stats.Fetched, "failed", out.Stats.Failed, "scored", out.Stats.Scored)

	if len(out.Records) > 0 && ctx.Err() == nil {
		out.Enriched = p.enricher.Enrich(ctx, out.Records, p.cfg.TopN)
		out.Stats.Enriched = len(out.Enriched)
	}

	return out, nil
}
