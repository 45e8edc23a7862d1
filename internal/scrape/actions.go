// Package scrape implements the CLI action that runs the full pipeline:
// discovery, concurrent fetch, extraction, scoring, classification and
// enrichment.
package scrape

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"leadharvest/internal/common"
	"leadharvest/pkg/db"
	"leadharvest/pkg/pipeline"
	"leadharvest/pkg/storage"
)

func RunAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	startTime := time.Now()

	cfg, err := common.PipelineConfigFromFlags(c)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(2)
	}

	p, err := pipeline.New(logger, cfg)
	if err != nil {
		logger.Error("failed to build pipeline", "error", err)
		os.Exit(2)
	}

	out, err := p.Run(c.Context)
	if err != nil {
		if errors.Is(err, pipeline.ErrEmptyDiscovery) {
			logger.Error("no candidates discovered, nothing to scrape", "root_domain", cfg.RootDomain)
		} else {
			logger.Error("pipeline run failed", "error", err)
		}
		os.Exit(2)
	}
	logger.Info("Pipeline complete",
		"root_domain", out.RootDomain,
		"discovered", out.Stats.Discovered,
		"fetched", out.Stats.Fetched,
		"failed", out.Stats.Failed,
		"scored", out.Stats.Scored,
		"enriched", out.Stats.Enriched,
		"elapsed_seconds", time.Since(startTime).Seconds())

	if dbPath := c.String("db"); dbPath != "" {
		if err := recordRun(dbPath, out); err != nil {
			logger.Warn("Failed to record run history", "error", err)
		}
	}

	var outputData []byte
	var marshalErr error
	if strings.ToLower(c.String("format")) == "yaml" {
		outputData, marshalErr = yaml.Marshal(out)
	} else {
		outputData, marshalErr = json.MarshalIndent(out, "", "  ")
	}
	if marshalErr != nil {
		logger.Error("failed to marshal output", "error", marshalErr)
		os.Exit(2)
	}

	if outPath := c.String("output"); outPath != "" {
		s := &storage.Storage{}
		if err := s.SaveFile(outPath, outputData); err != nil {
			logger.Error("failed to save output", "path", outPath, "error", err)
			os.Exit(2)
		}
		fmt.Printf("Run complete: %d/%d candidates scraped, %d enriched. Results: %s\n",
			out.Stats.Fetched, out.Stats.Fetched+out.Stats.Failed, out.Stats.Enriched, outPath)
	} else {
		fmt.Println(string(outputData))
	}

	attempted := out.Stats.Fetched + out.Stats.Failed
	if attempted > 0 && out.Stats.Failed == attempted {
		os.Exit(2)
	}
	if out.Stats.Failed > 0 {
		os.Exit(1)
	}
	return nil
}

// recordRun persists the run summary and its leads to the history database.
func recordRun(dbPath string, out *pipeline.Output) error {
	database, err := db.Open(dbPath)
	if err != nil {
		return err
	}
	defer database.Close()

	runID, err := database.InsertRun(out.RootDomain)
	if err != nil {
		return err
	}
	for _, rec := range out.Records {
		if err := database.InsertLead(runID, rec); err != nil {
			return err
		}
	}
	return database.UpdateRunStats(runID,
		out.Stats.Discovered, out.Stats.Fetched, out.Stats.Failed,
		out.Stats.Scored, out.Stats.Enriched)
}
