package pipeline

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"leadharvest/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.PipelineConfig)
	}{
		{"missing root domain", func(c *models.PipelineConfig) { c.RootDomain = "" }},
		{"workers out of range", func(c *models.PipelineConfig) { c.Workers = 50 }},
		{"scrape cap above discovery cap", func(c *models.PipelineConfig) { c.MaxSubdomains = 20; c.MaxToScrape = 40 }},
		{"zero timeout", func(c *models.PipelineConfig) { c.Timeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := models.NewPipelineConfig("example.com")
			tt.mutate(&cfg)
			if _, err := New(testLogger(), cfg); err == nil {
				t.Error("New() accepted invalid config")
			}
		})
	}
}

func TestNew_ValidConfig(t *testing.T) {
	cfg := models.NewPipelineConfig("example.com")
	p, err := New(testLogger(), cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if p == nil {
		t.Fatal("New() returned nil pipeline")
	}
}

func TestRun_CancelledContextFailsEveryCandidate(t *testing.T) {
	cfg := models.NewPipelineConfig("example.com")
	cfg.CrtShURL = "http://127.0.0.1:1" // unreachable; source fails soft
	cfg.Delay = 0

	p, err := New(testLogger(), cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := p.Run(ctx)
	if err != nil {
		t.Fatalf("Run() error = %v: partial web failure is never an error", err)
	}

	// The wordlist sources are deterministic, so discovery still finds
	// candidates without the network.
	if out.Stats.Discovered == 0 {
		t.Fatal("Discovered = 0, want pattern candidates")
	}
	if out.Stats.Fetched != 0 {
		t.Errorf("Fetched = %d, want 0 under a cancelled context", out.Stats.Fetched)
	}
	if out.Stats.Failed == 0 {
		t.Error("Failed = 0, want every attempted candidate recorded as failed")
	}
	if len(out.Records) != 0 {
		t.Errorf("Records = %d, want none", len(out.Records))
	}
	if out.Stats.Enriched != 0 {
		t.Errorf("Enriched = %d, want 0 when there are no records", out.Stats.Enriched)
	}
	if out.Stats.FailureReasons["cancelled"] == 0 {
		t.Errorf("FailureReasons = %v, want cancelled entries", out.Stats.FailureReasons)
	}
}

func TestRun_RespectsScrapeCap(t *testing.T) {
	cfg := models.NewPipelineConfig("example.com")
	cfg.CrtShURL = "http://127.0.0.1:1"
	cfg.MaxSubdomains = 30
	cfg.MaxToScrape = 10
	cfg.Delay = 0

	p, err := New(testLogger(), cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := p.Run(ctx)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	attempted := out.Stats.Fetched + out.Stats.Failed
	if attempted > cfg.MaxToScrape {
		t.Errorf("attempted %d candidates, cap is %d", attempted, cfg.MaxToScrape)
	}
	if out.Stats.Discovered <= cfg.MaxToScrape {
		t.Fatalf("Discovered = %d, test needs more candidates than the scrape cap", out.Stats.Discovered)
	}
}
