package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"leadharvest/internal/discover"
	"leadharvest/internal/scrape"
)

// pipelineFlags are shared by every command that builds a run configuration.
func pipelineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "root-domain",
			Aliases: []string{"d"},
			Usage:   "root domain to harvest leads for (e.g. example.com); may also come from --config",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML config file; CLI flags override file values",
		},
		&cli.IntFlag{
			Name:  "max-subdomains",
			Usage: "cap on discovered candidates (10-500)",
		},
		&cli.IntFlag{
			Name:  "max-to-scrape",
			Usage: "cap on candidates actually fetched (10-100)",
		},
		&cli.IntFlag{
			Name:    "workers",
			Aliases: []string{"w"},
			Usage:   "concurrent fetch workers (1-10)",
		},
		&cli.IntFlag{
			Name:  "timeout",
			Usage: "per-request timeout in seconds",
		},
		&cli.Float64Flag{
			Name:  "delay",
			Usage: "per-worker delay between requests in seconds",
		},
		&cli.IntFlag{
			Name:  "top-n",
			Usage: "how many top-scored leads to enrich",
		},
		&cli.StringFlag{
			Name:  "cache-dir",
			Usage: "directory for cached HTML payloads",
		},
		&cli.BoolFlag{
			Name:  "force-fetch",
			Usage: "bypass the HTML cache and refetch everything",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   "json",
			Usage:   "output format: json or yaml",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "write results to this file instead of stdout",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "only log errors",
		},
	}
}

func main() {
	app := &cli.App{
		Name:  "leadharvest",
		Usage: "Discover, scrape and score vacation-rental subdomains of a root domain",
		Commands: []*cli.Command{
			{
				Name:   "discover",
				Usage:  "Generate and print candidate subdomains without fetching",
				Flags:  pipelineFlags(),
				Action: discover.DiscoverAction,
			},
			{
				Name:  "run",
				Usage: "Run the full pipeline: discover, fetch, extract, score, classify, enrich",
				Flags: append(pipelineFlags(),
					&cli.StringFlag{
						Name:  "db",
						Usage: "sqlite file to record run history (omit to skip recording)",
					},
				),
				Action: scrape.RunAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
