package discovery

import (
	"context"

	"leadharvest/models"
)

// patternPrefixes are common subdomains most SaaS root domains carry.
var patternPrefixes = []string{
	"www", "app", "api", "blog", "portal", "booking", "reservations",
	"property", "demo", "staging",
}

// propertyPrefixes are vacation-rental themed names customers pick.
var propertyPrefixes = []string{
	"stay", "rentals", "villas", "villa", "apartment", "house", "hotel",
	"resort", "cabin", "beach", "mountain", "city", "rental", "luxury",
	"budget", "holiday", "getaway", "retreat",
}

// PatternSource combines a fixed list of common subdomain prefixes with the
// root domain. Fully deterministic.
type PatternSource struct{}

func (PatternSource) Name() models.DiscoverySource { return models.SourcePattern }

func (PatternSource) Candidates(_ context.Context, rootDomain string) []string {
	return prefixed(patternPrefixes, rootDomain)
}

// PropertyThemedSource combines vacation-rental themed prefixes with the
// root domain. Fully deterministic.
type PropertyThemedSource struct{}

func (PropertyThemedSource) Name() models.DiscoverySource { return models.SourcePropertyThemed }

func (PropertyThemedSource) Candidates(_ context.Context, rootDomain string) []string {
	return prefixed(propertyPrefixes, rootDomain)
}

func prefixed(prefixes []string, rootDomain string) []string {
	names := make([]string, 0, len(prefixes))
	for _, prefix := range prefixes {
		names = append(names, prefix+"."+rootDomain)
	}
	return names
}
