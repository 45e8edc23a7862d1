// Package classifier infers a country for a lead record from an ordered
// cascade of evidence methods. The cascade encodes a trust ranking: a
// street address beats domain naming, which beats free-text mining.
package classifier

import (
	"strings"

	"leadharvest/models"
)

// method is one evidence source. Classify returns the country and true on a
// positive match.
type method interface {
	Name() models.ClassificationMethod
	Confidence() models.Confidence
	Classify(rec *models.LeadRecord) (string, bool)
}

type Classifier struct {
	methods []method
}

// New builds the standard cascade: address, then domain, then content.
func New() *Classifier {
	return &Classifier{
		methods: []method{
			addressMethod{},
			domainMethod{},
			contentMethod{},
		},
	}
}

// Classify runs the cascade, short-circuiting on the first positive match,
// and attaches the result to the record. No match yields (unknown, none,
// none).
func (c *Classifier) Classify(rec *models.LeadRecord) models.CountryClassification {
	for _, m := range c.methods {
		if country, ok := m.Classify(rec); ok {
			result := models.CountryClassification{
				Country:    country,
				Confidence: m.Confidence(),
				Method:     m.Name(),
			}
			rec.Country = &result
			return result
		}
	}

	result := models.CountryClassification{
		Country:    models.UnknownCountry,
		Confidence: models.ConfidenceNone,
		Method:     models.MethodNone,
	}
	rec.Country = &result
	return result
}

// addressMethod matches country and major-city names inside the extracted
// street address.
type addressMethod struct{}

func (addressMethod) Name() models.ClassificationMethod { return models.MethodAddress }
func (addressMethod) Confidence() models.Confidence     { return models.ConfidenceHigh }

func (addressMethod) Classify(rec *models.LeadRecord) (string, bool) {
	address := strings.ToLower(rec.Contact.Address)
	if address == "" {
		return "", false
	}
	for _, entry := range countryGazetteer {
		for _, keyword := range entry.Keywords {
			if strings.Contains(address, keyword) {
				return entry.Country, true
			}
		}
	}
	return "", false
}

// domainMethod checks the country-code TLD, then country-indicating
// hostname labels.
type domainMethod struct{}

func (domainMethod) Name() models.ClassificationMethod { return models.MethodDomain }
func (domainMethod) Confidence() models.Confidence     { return models.ConfidenceMedium }

func (domainMethod) Classify(rec *models.LeadRecord) (string, bool) {
	labels := strings.Split(strings.ToLower(rec.Hostname), ".")
	if len(labels) < 2 {
		return "", false
	}

	tld := labels[len(labels)-1]
	if country, ok := ccTLDCountries[tld]; ok {
		return country, true
	}

	for _, label := range labels[:len(labels)-1] {
		if country, ok := domainTokens[label]; ok {
			return country, true
		}
	}
	return "", false
}

// contentMethod counts country keyword occurrences across title and
// description and picks the country with the most hits.
type contentMethod struct{}

func (contentMethod) Name() models.ClassificationMethod { return models.MethodContent }
func (contentMethod) Confidence() models.Confidence     { return models.ConfidenceLow }

func (contentMethod) Classify(rec *models.LeadRecord) (string, bool) {
	text := strings.ToLower(rec.Title + " " + rec.Description)
	if strings.TrimSpace(text) == "" {
		return "", false
	}

	best := ""
	bestHits := 0
	for _, entry := range countryGazetteer {
		hits := 0
		for _, keyword := range entry.Keywords {
			hits += strings.Count(text, keyword)
		}
		if hits > bestHits {
			best = entry.Country
			bestHits = hits
		}
	}
	return best, bestHits > 0
}
