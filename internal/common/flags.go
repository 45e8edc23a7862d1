package common

import (
	"time"

	"github.com/urfave/cli/v2"

	"leadharvest/models"
)

// PipelineConfigFromFlags builds the run configuration from CLI flags,
// layered over an optional --config YAML file. Flags win over the file.
func PipelineConfigFromFlags(c *cli.Context) (models.PipelineConfig, error) {
	cfg := models.NewPipelineConfig(c.String("root-domain"))

	if c.IsSet("config") {
		loaded, err := models.LoadConfig(c.String("config"))
		if err != nil {
			return models.PipelineConfig{}, err
		}
		cfg = loaded
		if c.IsSet("root-domain") {
			cfg.RootDomain = c.String("root-domain")
		}
	}

	if c.IsSet("max-subdomains") {
		cfg.MaxSubdomains = c.Int("max-subdomains")
	}
	if c.IsSet("max-to-scrape") {
		cfg.MaxToScrape = c.Int("max-to-scrape")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("timeout") {
		cfg.Timeout = time.Duration(c.Int("timeout")) * time.Second
	}
	if c.IsSet("delay") {
		cfg.Delay = time.Duration(c.Float64("delay") * float64(time.Second))
	}
	if c.IsSet("top-n") {
		cfg.TopN = c.Int("top-n")
	}
	if c.IsSet("cache-dir") {
		cfg.CacheDir = c.String("cache-dir")
		if cfg.CacheTTL == 0 {
			cfg.CacheTTL = 24 * time.Hour
		}
	}
	cfg.ForceFetch = c.Bool("force-fetch")

	return cfg, nil
}
