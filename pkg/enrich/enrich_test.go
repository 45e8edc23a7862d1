package enrich

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"leadharvest/models"
	"leadharvest/pkg/fetcher"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// pageGetter serves canned pages by URL and fails everything else.
type pageGetter struct {
	mu    sync.Mutex
	pages map[string]string
	calls []string
}

func (g *pageGetter) Get(_ context.Context, rawURL string) ([]byte, int, error) {
	g.mu.Lock()
	g.calls = append(g.calls, rawURL)
	g.mu.Unlock()
	if body, ok := g.pages[rawURL]; ok {
		return []byte(body), 200, nil
	}
	return nil, 404, &fetcher.Error{Reason: "http_404", StatusCode: 404}
}

func scored(hostname string, score int) *models.LeadRecord {
	return &models.LeadRecord{
		Hostname: hostname,
		URL:      "https://" + hostname,
		Score:    &models.ScoreResult{Score: score},
	}
}

func TestTopN_SelectsHighestScores(t *testing.T) {
	records := []*models.LeadRecord{
		scored("low.example.com", 20),
		scored("high.example.com", 90),
		scored("mid.example.com", 55),
	}

	top := TopN(records, 2)
	if len(top) != 2 {
		t.Fatalf("TopN() returned %d records, want 2", len(top))
	}
	if top[0].Hostname != "high.example.com" || top[1].Hostname != "mid.example.com" {
		t.Errorf("TopN() = [%s %s], want [high mid]", top[0].Hostname, top[1].Hostname)
	}
}

func TestTopN_StableOnTies(t *testing.T) {
	records := []*models.LeadRecord{
		scored("first.example.com", 50),
		scored("second.example.com", 50),
		scored("third.example.com", 50),
	}

	top := TopN(records, 2)
	if top[0].Hostname != "first.example.com" || top[1].Hostname != "second.example.com" {
		t.Errorf("ties must keep input order, got [%s %s]", top[0].Hostname, top[1].Hostname)
	}
}

func TestTopN_UnscoredRanksAsZero(t *testing.T) {
	records := []*models.LeadRecord{
		{Hostname: "unscored.example.com"},
		scored("scored.example.com", 10),
	}

	top := TopN(records, 1)
	if top[0].Hostname != "scored.example.com" {
		t.Errorf("TopN() = %s, want the scored record first", top[0].Hostname)
	}
}

func TestTopN_FewerRecordsThanN(t *testing.T) {
	records := []*models.LeadRecord{scored("only.example.com", 10)}
	if top := TopN(records, 5); len(top) != 1 {
		t.Errorf("TopN() returned %d records, want 1", len(top))
	}
}

func TestEnrich_FromAboutPage(t *testing.T) {
	rec := scored("villas.example.com", 80)
	rec.Title = "Sunny Villas - Welcome"
	rec.InfoPages = []string{"https://villas.example.com/about"}

	getter := &pageGetter{pages: map[string]string{
		"https://villas.example.com/about": `<html><head><title>About</title></head><body>
			<p>Sunny Villas Management S.L. has welcomed guests since 1998.</p>
			<a href="https://www.linkedin.com/company/sunnyvillas">LinkedIn</a>
		</body></html>`,
	}}

	e := NewEnricher(testLogger(), getter)
	enriched := e.Enrich(context.Background(), []*models.LeadRecord{rec}, 5)

	if len(enriched) != 1 {
		t.Fatalf("Enrich() returned %d records, want 1", len(enriched))
	}
	out := enriched[0]
	if out.CompanyName != "Sunny Villas Management S.L." {
		t.Errorf("CompanyName = %q, want the legal name from the about page", out.CompanyName)
	}
	if rec.Social.LinkedIn == "" {
		t.Error("LinkedIn link from the about page was not merged into the record")
	}
	if out.BusinessType == "" {
		t.Error("BusinessType empty, want a category")
	}
}

func TestEnrich_FallsBackToConventionalPaths(t *testing.T) {
	rec := scored("plain.example.com", 60)

	getter := &pageGetter{pages: map[string]string{
		"https://plain.example.com/contact": `<html><body><p>Reach us any time.</p></body></html>`,
	}}

	e := NewEnricher(testLogger(), getter)
	e.Enrich(context.Background(), []*models.LeadRecord{rec}, 5)

	want := []string{"https://plain.example.com/about", "https://plain.example.com/contact"}
	if len(getter.calls) != 2 || getter.calls[0] != want[0] || getter.calls[1] != want[1] {
		t.Errorf("fetch order = %v, want %v", getter.calls, want)
	}
}

func TestEnrich_FetchFailureKeepsBaseRecord(t *testing.T) {
	rec := scored("down.example.com", 70)
	rec.Title = "Harbor Cabins"
	rec.Social = models.Social{Facebook: "https://facebook.com/harborcabins"}

	getter := &pageGetter{pages: map[string]string{}} // every fetch 404s

	e := NewEnricher(testLogger(), getter)
	enriched := e.Enrich(context.Background(), []*models.LeadRecord{rec}, 5)

	if len(enriched) != 1 {
		t.Fatalf("Enrich() returned %d records, want 1: enrichment failures are not fatal", len(enriched))
	}
	out := enriched[0]
	if out.CompanyName != "Harbor Cabins" {
		t.Errorf("CompanyName = %q, want first-pass title derivation", out.CompanyName)
	}
	if rec.Social.Facebook != "https://facebook.com/harborcabins" {
		t.Error("first-pass social links must survive a failed enrichment fetch")
	}
}

func TestEnrich_LimitsToTopN(t *testing.T) {
	records := []*models.LeadRecord{
		scored("a.example.com", 90),
		scored("b.example.com", 80),
		scored("c.example.com", 70),
	}
	getter := &pageGetter{pages: map[string]string{}}

	e := NewEnricher(testLogger(), getter)
	enriched := e.Enrich(context.Background(), records, 2)

	if len(enriched) != 2 {
		t.Fatalf("Enrich() returned %d records, want 2", len(enriched))
	}
	if enriched[0].Lead.Hostname != "a.example.com" || enriched[1].Lead.Hostname != "b.example.com" {
		t.Errorf("enriched = [%s %s], want the two best", enriched[0].Lead.Hostname, enriched[1].Lead.Hostname)
	}
}

func TestCompanyNameFromFirstPass(t *testing.T) {
	tests := []struct {
		name     string
		hostname string
		title    string
		want     string
	}{
		{"title stripped of suffix", "x.example.com", "Sunny Villas - Welcome", "Sunny Villas"},
		{"pipe segment", "x.example.com", "Harbor Cabins | Official Site", "Harbor Cabins"},
		{"useless title falls back to subdomain", "beach-houses.example.com", "Home", "Beach Houses"},
		{"empty title falls back to subdomain", "coastalstays.example.com", "", "Coastalstays"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &models.LeadRecord{Hostname: tt.hostname, Title: tt.title}
			if got := companyNameFromFirstPass(rec); got != tt.want {
				t.Errorf("companyNameFromFirstPass() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBusinessTypeFor(t *testing.T) {
	tests := []struct {
		name string
		rec  models.LeadRecord
		want string
	}{
		{"hotel keyword", models.LeadRecord{Title: "Grand Hotel Bellevue"}, "Hotel"},
		{"resort keyword", models.LeadRecord{Title: "Ocean Spa Resort"}, "Resort"},
		{"villa keyword", models.LeadRecord{Hostname: "villas.example.com"}, "Vacation Rental"},
		{"large portfolio", models.LeadRecord{Title: "xyz", PropertyCount: 25}, "Property Management Company"},
		{"small portfolio", models.LeadRecord{Title: "xyz", PropertyCount: 5}, "Multi-Property Rental"},
		{"default", models.LeadRecord{Title: "xyz"}, "Property Rental"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := businessTypeFor(&tt.rec); got != tt.want {
				t.Errorf("businessTypeFor() = %q, want %q", got, tt.want)
			}
		})
	}
}
