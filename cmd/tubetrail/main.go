package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/tubetrail/tubetrail/internal/config"
	"github.com/tubetrail/tubetrail/internal/loader"
	"github.com/tubetrail/tubetrail/internal/models"
	"github.com/tubetrail/tubetrail/pkg/tfl"
	"github.com/tubetrail/tubetrail/pkg/tube"
)

func main() {
	var (
		configPath    = flag.String("config", "config.yml", "Configuration file")
		envFile       = flag.String("env", ".env", "Environment file with TfL credentials")
		cachePath     = flag.String("cache-path", "", "Network snapshot file (overrides config)")
		force         = flag.Bool("force", false, "Ignore the cached network and fetch fresh data")
		noCreateCache = flag.Bool("no-create-cache", false, "Do not persist fetched network data")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <word>\n\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	word := flag.Arg(0)

	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		slog.Error("Failed to load environment file", "path", *envFile, "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}
	if *cachePath != "" {
		cfg.Cache.Path = *cachePath
	}

	source := tfl.NewClient(tfl.Config{
		BaseURL:     cfg.API.BaseURL,
		AppID:       cfg.API.AppID,
		AppKey:      cfg.API.AppKey,
		Mode:        cfg.API.Mode,
		Timeout:     time.Duration(cfg.API.TimeoutMS) * time.Millisecond,
		Concurrency: cfg.API.Concurrency,
	})

	client, err := tube.NewLocal(tube.Config{
		Source:    source,
		CachePath: cfg.Cache.Path,
	})
	if err != nil {
		slog.Error("Failed to create tube client", "error", err)
		os.Exit(1)
	}

	policy := loader.Policy{Refresh: *force, NoStore: *noCreateCache}

	fmt.Printf("Longest tube journeys (in terms of number of stops) avoiding all letters in %q:\n", word)

	result, err := client.Run(context.Background(), word, policy)
	if err != nil {
		slog.Error("Query failed", "error", err)
		os.Exit(1)
	}

	printResult(result)
}

func printResult(result *models.Result) {
	if len(result.Journeys) == 0 {
		fmt.Println("No journeys found")
	} else {
		fmt.Printf("Found %d journey%s of length %d:\n\n",
			len(result.Journeys), plural(len(result.Journeys)), result.Length)

		for _, journey := range result.Journeys {
			printJourney(journey)
			fmt.Println("\n--------------------")
			fmt.Println()
		}
	}

	fmt.Println()

	if len(result.Stations) == 0 {
		fmt.Println("No stations found without these letters")
	} else {
		fmt.Printf("Found %d station%s without these letters:\n\n",
			len(result.Stations), plural(len(result.Stations)))

		for _, name := range result.Stations {
			fmt.Println(name)
		}
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
	}
}

func printJourney(journey models.Journey) {
	for i, step := range journey.Steps {
		if i > 0 {
			fmt.Printf("  |\n  %s\n  ↓\n", step.Line)
		}
		fmt.Println(step.Station)
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
