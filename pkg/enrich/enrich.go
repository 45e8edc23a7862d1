// Package enrich runs the second-pass fetch over the top-scoring records,
// adding company and personal details the first pass could not see.
package enrich

import (
	"bytes"
	"context"
	"log/slog"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"leadharvest/models"
	"leadharvest/pkg/extractor"
	"leadharvest/pkg/fetcher"
)

// legalNameRe matches company names carrying a legal suffix anywhere in
// visible text.
var legalNameRe = regexp.MustCompile(`\b[A-Z][A-Za-z0-9&'.\- ]{2,60}\s(?:Ltd\.?|LLC|Inc\.?|GmbH|S\.?L\.?|S\.?A\.?|B\.?V\.?|Pty\.? Ltd\.?|Limited)\b`)

// businessTypes maps a label to the keywords that indicate it; checked in
// order, first hit wins.
var businessTypes = []struct {
	Label    string
	Keywords []string
}{
	{"Bed & Breakfast", []string{"bnb", "bed and breakfast", "guest house", "guesthouse"}},
	{"Resort", []string{"resort", "spa", "wellness"}},
	{"Hotel", []string{"hotel", "inn", "lodge", "boutique"}},
	{"Hostel", []string{"hostel", "backpack", "dormitory"}},
	{"Serviced Apartments", []string{"serviced", "extended stay", "corporate housing"}},
	{"Vacation Rental", []string{"villa", "apartment", "house", "rental", "vacation", "holiday"}},
}

// titleSuffixes are trailing decorations stripped when deriving a company
// name from the page title.
var titleSuffixes = []string{" - home", " | home", " - welcome", " | welcome"}

// Getter issues one fetch. Satisfied by *fetcher.Fetcher.
type Getter interface {
	Get(ctx context.Context, rawURL string) ([]byte, int, error)
}

type Enricher struct {
	fetcher Getter
	logger  *slog.Logger
}

func NewEnricher(logger *slog.Logger, f Getter) *Enricher {
	return &Enricher{fetcher: f, logger: logger}
}

// TopN returns the n highest-scoring records, ties broken by input order.
// Unscored records rank as zero.
func TopN(records []*models.LeadRecord, n int) []*models.LeadRecord {
	selected := make([]*models.LeadRecord, len(records))
	copy(selected, records)
	sort.SliceStable(selected, func(i, j int) bool {
		return scoreOf(selected[i]) > scoreOf(selected[j])
	})
	if len(selected) > n {
		selected = selected[:n]
	}
	return selected
}

func scoreOf(rec *models.LeadRecord) int {
	if rec.Score == nil {
		return 0
	}
	return rec.Score.Score
}

// Enrich promotes the top n records. Every failure mode (no target page, a
// fetch error, nothing new found) leaves the base record untouched; the
// stage is strictly additive and never fatal.
func (e *Enricher) Enrich(ctx context.Context, records []*models.LeadRecord, n int) []*models.EnrichedRecord {
	selected := TopN(records, n)
	enriched := make([]*models.EnrichedRecord, 0, len(selected))

	for _, rec := range selected {
		out := &models.EnrichedRecord{Lead: rec}
		out.CompanyName = companyNameFromFirstPass(rec)
		out.BusinessType = businessTypeFor(rec)

		if target := e.targetPage(rec); target != "" {
			e.enrichFromPage(ctx, rec, out, target)
		}
		enriched = append(enriched, out)
	}
	return enriched
}

// targetPage picks the about/contact link found on the first pass, falling
// back to the conventional paths on the root.
func (e *Enricher) targetPage(rec *models.LeadRecord) string {
	if len(rec.InfoPages) > 0 {
		return rec.InfoPages[0]
	}
	return rec.URL + "/about"
}

func (e *Enricher) enrichFromPage(ctx context.Context, rec *models.LeadRecord, out *models.EnrichedRecord, target string) {
	body, _, err := e.fetcher.Get(ctx, target)
	if err != nil && len(rec.InfoPages) == 0 {
		// The conventional /about guess missed; try /contact once.
		target = rec.URL + "/contact"
		body, _, err = e.fetcher.Get(ctx, target)
	}
	if err != nil {
		e.logger.Warn("Enrichment fetch failed, keeping base record", "hostname", rec.Hostname, "reason", fetcher.Reason(err))
		return
	}

	doc, docErr := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if docErr == nil {
		rec.Social.Merge(extractor.ExtractSocial(doc))
		if name := legalNameFromDoc(doc); name != "" {
			out.CompanyName = name
		}
	}

	if parsedURL, urlErr := url.Parse(target); urlErr == nil {
		parser := readability.NewParser()
		article, raErr := parser.Parse(bytes.NewReader(body), parsedURL)
		if raErr == nil {
			if article.Byline != "" {
				out.PersonalName = strings.TrimSpace(article.Byline)
			}
			if out.CompanyName == "" && article.SiteName != "" {
				out.CompanyName = strings.TrimSpace(article.SiteName)
			}
		}
	}
}

func legalNameFromDoc(doc *goquery.Document) string {
	doc.Find("script,style").Remove()
	return strings.TrimSpace(legalNameRe.FindString(doc.Text()))
}

// companyNameFromFirstPass derives a name from the title, or from the
// subdomain when the title is useless.
func companyNameFromFirstPass(rec *models.LeadRecord) string {
	title := strings.TrimSpace(rec.Title)
	lower := strings.ToLower(title)
	if title != "" && lower != "home" && lower != "welcome" {
		for _, suffix := range titleSuffixes {
			if strings.HasSuffix(lower, suffix) {
				title = title[:len(title)-len(suffix)]
				break
			}
		}
		if idx := strings.IndexAny(title, "|"); idx > 0 {
			title = title[:idx]
		}
		if name := strings.TrimSpace(title); len(name) > 2 {
			return name
		}
	}

	label := strings.SplitN(rec.Hostname, ".", 2)[0]
	label = strings.ReplaceAll(label, "-", " ")
	label = strings.ReplaceAll(label, "_", " ")
	if len(label) > 2 && label != "www" {
		return titleCase(label)
	}
	return ""
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func businessTypeFor(rec *models.LeadRecord) string {
	search := strings.ToLower(rec.Title + " " + rec.Hostname + " " + rec.Contact.Address)
	for _, bt := range businessTypes {
		for _, keyword := range bt.Keywords {
			if strings.Contains(search, keyword) {
				return bt.Label
			}
		}
	}

	switch {
	case rec.PropertyCount > 10:
		return "Property Management Company"
	case rec.PropertyCount > 3:
		return "Multi-Property Rental"
	default:
		return "Property Rental"
	}
}
