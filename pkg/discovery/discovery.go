// Package discovery generates candidate hostnames under a root domain from
// several independent sources.
package discovery

import (
	"context"
	"log/slog"

	"leadharvest/internal/common"
	"leadharvest/models"
)

// Source produces candidate hostnames for a root domain. Sources must fail
// soft: a source that cannot reach its backing service returns an empty
// slice, never an error that would abort discovery.
type Source interface {
	Name() models.DiscoverySource
	Candidates(ctx context.Context, rootDomain string) []string
}

// Generator unions candidates from its sources in order, dedupes them by
// normalized hostname, and truncates to a maximum. Source order matters:
// earlier sources win the tag on duplicates and survive truncation first.
type Generator struct {
	sources []Source
	logger  *slog.Logger
}

// NewGenerator builds the standard three-source generator: certificate
// transparency, common subdomain patterns, and property-themed names.
func NewGenerator(logger *slog.Logger, crtShURL string) *Generator {
	return &Generator{
		logger: logger,
		sources: []Source{
			NewCertTransparencySource(logger, crtShURL),
			PatternSource{},
			PropertyThemedSource{},
		},
	}
}

// NewGeneratorWithSources builds a generator over explicit sources,
// preserving their order.
func NewGeneratorWithSources(logger *slog.Logger, sources ...Source) *Generator {
	return &Generator{logger: logger, sources: sources}
}

// Generate returns up to maxCandidates unique candidates for rootDomain.
// Ordering is first appearance across sources.
func (g *Generator) Generate(ctx context.Context, rootDomain string, maxCandidates int) []models.CandidateHost {
	seen := make(map[string]struct{})
	var out []models.CandidateHost

	for _, src := range g.sources {
		names := src.Candidates(ctx, rootDomain)
		added := 0
		for _, name := range names {
			hostname, ok := common.NormalizeHostname(name, rootDomain)
			if !ok {
				continue
			}
			if _, dup := seen[hostname]; dup {
				continue
			}
			seen[hostname] = struct{}{}
			out = append(out, models.CandidateHost{Hostname: hostname, Source: src.Name()})
			added++
		}
		g.logger.Info("Discovery source finished", "source", src.Name(), "produced", len(names), "added", added)
	}

	if len(out) > maxCandidates {
		out = out[:maxCandidates]
	}
	return out
}
