package tube

import (
	"context"
	"errors"
	"time"

	"github.com/tubetrail/tubetrail/internal/cache"
	"github.com/tubetrail/tubetrail/internal/graph"
	"github.com/tubetrail/tubetrail/internal/loader"
	"github.com/tubetrail/tubetrail/internal/models"
	"github.com/tubetrail/tubetrail/internal/store"
)

// LocalClient implements Client over an in-process graph. The graph is
// built on first use and kept in memory; ForceRefresh rebuilds it from a
// fresh fetch.
type LocalClient struct {
	loader *loader.Loader
	store  *store.Store
}

// NewLocal creates a local client. Config.Source is required.
func NewLocal(cfg Config) (*LocalClient, error) {
	if cfg.Source == nil {
		return nil, errors.New("tube: Config.Source is required")
	}
	path := cfg.CachePath
	if path == "" {
		path = DefaultConfig().CachePath
	}

	return &LocalClient{
		loader: loader.New(cfg.Source, cache.NewStore(path)),
		store:  store.NewStore(),
	}, nil
}

func (c *LocalClient) Run(ctx context.Context, phrase string, policy loader.Policy) (*models.Result, error) {
	g, warnings, err := c.ensureGraph(ctx, policy)
	if err != nil {
		return nil, err
	}

	v := graph.Filter(g, phrase)
	length, journeys := graph.Search(v)
	result := graph.Assemble(length, journeys, v)
	result.Warnings = warnings

	return &result, nil
}

func (c *LocalClient) Stations(ctx context.Context, phrase string, policy loader.Policy) ([]string, error) {
	g, _, err := c.ensureGraph(ctx, policy)
	if err != nil {
		return nil, err
	}

	v := graph.Filter(g, phrase)
	stations := make([]string, len(v.Names))
	copy(stations, v.Names)
	return stations, nil
}

func (c *LocalClient) LastUpdate() time.Time {
	return c.store.LastUpdate()
}

// ensureGraph returns the resident graph, loading and building it when
// absent or when the policy demands fresh data. Warnings are non-empty only
// on the call that actually performed a fetch.
func (c *LocalClient) ensureGraph(ctx context.Context, policy loader.Policy) (*graph.Graph, []string, error) {
	if !policy.Refresh {
		if g, ok := c.store.Graph(); ok {
			return g, nil, nil
		}
	}

	res, err := c.loader.Fetch(ctx, policy)
	if err != nil {
		return nil, nil, err
	}

	g, err := graph.Build(res.Network)
	if err != nil {
		return nil, nil, err
	}
	c.store.SetGraph(g, res.FromCache)

	var warnings []string
	if res.CacheWarning != nil {
		warnings = append(warnings, res.CacheWarning.Error())
	}
	return g, warnings, nil
}
