// Package discover implements the CLI action that runs candidate discovery
// on its own, without fetching.
package discover

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"leadharvest/internal/common"
	"leadharvest/pkg/discovery"
	"leadharvest/pkg/storage"
)

func DiscoverAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg, err := common.PipelineConfigFromFlags(c)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	generator := discovery.NewGenerator(logger, cfg.CrtShURL)
	candidates := generator.Generate(c.Context, cfg.RootDomain, cfg.MaxSubdomains)
	if len(candidates) == 0 {
		logger.Error("discovery produced no candidates", "root_domain", cfg.RootDomain)
		os.Exit(2)
	}
	logger.Info("Discovery complete", "root_domain", cfg.RootDomain, "candidates", len(candidates))

	var outputData []byte
	var marshalErr error
	if strings.ToLower(c.String("format")) == "yaml" {
		outputData, marshalErr = yaml.Marshal(candidates)
	} else {
		outputData, marshalErr = json.MarshalIndent(candidates, "", "  ")
	}
	if marshalErr != nil {
		logger.Error("failed to marshal candidates", "error", marshalErr)
		os.Exit(2)
	}

	if outPath := c.String("output"); outPath != "" {
		s := &storage.Storage{}
		if err := s.SaveFile(outPath, outputData); err != nil {
			logger.Error("failed to save candidates", "path", outPath, "error", err)
			os.Exit(2)
		}
		fmt.Printf("Saved %d candidates to %s\n", len(candidates), outPath)
		return nil
	}

	fmt.Println(string(outputData))
	return nil
}
