// Package models defines data structures shared across the pipeline.
package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied by NewPipelineConfig and by LoadConfig for absent fields.
const (
	DefaultMaxSubdomains = 100
	DefaultMaxToScrape   = 50
	DefaultWorkers       = 4
	DefaultTimeout       = 15 * time.Second
	DefaultDelay         = 1 * time.Second
	DefaultTopN          = 5
)

// PipelineConfig holds runtime configuration for one pipeline run.
// All values come from CLI flags or an optional YAML file; there is no
// process-wide mutable configuration.
type PipelineConfig struct {
	RootDomain    string        `yaml:"root_domain"`
	MaxSubdomains int           `yaml:"max_subdomains"`
	MaxToScrape   int           `yaml:"max_to_scrape"`
	Workers       int           `yaml:"workers"`
	Timeout       time.Duration `yaml:"timeout"`
	Delay         time.Duration `yaml:"delay"`
	TopN          int           `yaml:"top_n"`

	// CrtShURL overrides the certificate-transparency endpoint, mainly for tests.
	CrtShURL string `yaml:"crtsh_url"`

	// CacheDir enables the raw-HTML file cache when non-empty.
	CacheDir   string        `yaml:"cache_dir"`
	CacheTTL   time.Duration `yaml:"cache_ttl"`
	ForceFetch bool          `yaml:"-"`
}

// NewPipelineConfig returns a config with defaults for the given root domain.
func NewPipelineConfig(rootDomain string) PipelineConfig {
	return PipelineConfig{
		RootDomain:    rootDomain,
		MaxSubdomains: DefaultMaxSubdomains,
		MaxToScrape:   DefaultMaxToScrape,
		Workers:       DefaultWorkers,
		Timeout:       DefaultTimeout,
		Delay:         DefaultDelay,
		TopN:          DefaultTopN,
	}
}

// LoadConfig reads a PipelineConfig from a YAML file, filling unset fields
// with defaults.
func LoadConfig(path string) (PipelineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PipelineConfig{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := PipelineConfig{}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return PipelineConfig{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	defaults := NewPipelineConfig(cfg.RootDomain)
	if cfg.MaxSubdomains == 0 {
		cfg.MaxSubdomains = defaults.MaxSubdomains
	}
	if cfg.MaxToScrape == 0 {
		cfg.MaxToScrape = defaults.MaxToScrape
	}
	if cfg.Workers == 0 {
		cfg.Workers = defaults.Workers
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.Delay == 0 {
		cfg.Delay = defaults.Delay
	}
	if cfg.TopN == 0 {
		cfg.TopN = defaults.TopN
	}
	return cfg, nil
}

// Validate checks configuration bounds. It runs before any network activity;
// a non-nil error aborts the run.
func (c PipelineConfig) Validate() error {
	if c.RootDomain == "" {
		return fmt.Errorf("root domain is required")
	}
	if c.MaxSubdomains < 10 || c.MaxSubdomains > 500 {
		return fmt.Errorf("max_subdomains must be between 10 and 500, got %d", c.MaxSubdomains)
	}
	if c.MaxToScrape < 10 || c.MaxToScrape > 100 {
		return fmt.Errorf("max_to_scrape must be between 10 and 100, got %d", c.MaxToScrape)
	}
	if c.MaxToScrape > c.MaxSubdomains {
		return fmt.Errorf("max_to_scrape (%d) cannot exceed max_subdomains (%d)", c.MaxToScrape, c.MaxSubdomains)
	}
	if c.Workers < 1 || c.Workers > 10 {
		return fmt.Errorf("workers must be between 1 and 10, got %d", c.Workers)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Delay < 0 {
		return fmt.Errorf("delay cannot be negative, got %s", c.Delay)
	}
	if c.TopN < 1 {
		return fmt.Errorf("top_n must be at least 1, got %d", c.TopN)
	}
	return nil
}
