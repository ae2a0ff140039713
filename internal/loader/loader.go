// Package loader obtains raw network data, preferring a local cache over
// the external data source according to the caller's cache policy.
package loader

import (
	"context"
	"fmt"
	"log"

	"github.com/tubetrail/tubetrail/internal/cache"
	"github.com/tubetrail/tubetrail/internal/models"
)

// Source is the pluggable external data source. Implementations fetch the
// complete raw network in one call; pkg/tfl provides the real one.
type Source interface {
	Network(ctx context.Context) (*models.RawNetwork, error)
}

// Policy controls cache interaction for one fetch. The two flags are
// independent so a forced refresh can still skip the write-back, matching
// how the CLI exposes them.
type Policy struct {
	// Refresh ignores any existing cache and always fetches fresh data
	Refresh bool
	// NoStore skips persisting a fetched network
	NoStore bool
}

// Named policies for the common cases
var (
	UseCacheIfPresent = Policy{}
	ForceRefresh      = Policy{Refresh: true}
	NoCacheWrite      = Policy{NoStore: true}
)

// Result is a successful fetch: the network, where it came from, and a
// non-fatal cache-write problem if one occurred.
type Result struct {
	Network      *models.RawNetwork
	FromCache    bool
	CacheWarning error
}

// Loader wires a Source to a cache.Store
type Loader struct {
	source Source
	store  *cache.Store
}

// New creates a loader over the given source and cache store
func New(source Source, store *cache.Store) *Loader {
	return &Loader{source: source, store: store}
}

// Fetch returns the raw network per the policy: cache first unless
// refreshing, then the external source. A source failure with no usable
// cache is fatal and wraps models.ErrSourceUnavailable. A failed write-back
// is logged and reported in the result, never an error.
func (l *Loader) Fetch(ctx context.Context, p Policy) (Result, error) {
	if !p.Refresh {
		if raw, ok := l.store.Load(); ok {
			return Result{Network: raw, FromCache: true}, nil
		}
	}

	raw, err := l.source.Network(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", models.ErrSourceUnavailable, err)
	}

	res := Result{Network: raw}
	if !p.NoStore {
		if err := l.store.Save(raw); err != nil {
			log.Printf("Warning: %v", err)
			res.CacheWarning = err
		}
	}
	return res, nil
}
