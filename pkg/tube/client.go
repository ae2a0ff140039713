// Package tube is the public entry point: it answers longest-journey
// queries over the London Underground network for a given forbidden-letter
// phrase.
package tube

import (
	"context"
	"time"

	"github.com/tubetrail/tubetrail/internal/loader"
	"github.com/tubetrail/tubetrail/internal/models"
)

// Client defines the interface for running letter-avoidance queries.
// Abstracts the data plumbing so HTTP handlers and the CLI share one
// surface and tests can substitute a stub.
type Client interface {
	// Run answers one query: all longest trails through stations whose
	// names avoid every letter of phrase, plus the eligible stations.
	Run(ctx context.Context, phrase string, policy loader.Policy) (*models.Result, error)

	// Stations returns just the sorted eligible-station names for phrase
	Stations(ctx context.Context, phrase string, policy loader.Policy) ([]string, error)

	// LastUpdate reports when the in-memory network was last (re)built
	LastUpdate() time.Time
}

// Config holds configuration for the local client
type Config struct {
	// Source supplies raw network data; pkg/tfl provides the real one
	Source loader.Source
	// CachePath is the network snapshot file
	CachePath string
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		CachePath: "tube_network.json",
	}
}
