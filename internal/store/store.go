// Package store keeps the built network graph in memory so long-lived
// callers (the HTTP server) reuse it across queries instead of re-reading
// the cache or re-fetching.
package store

import (
	"sync"
	"time"

	"github.com/tubetrail/tubetrail/internal/graph"
)

// Store manages the in-memory graph and its load metadata
type Store struct {
	mu         sync.RWMutex
	graph      *graph.Graph
	fromCache  bool
	lastUpdate time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// SetGraph replaces the resident graph. fromCache records whether the
// underlying network came from the disk cache or a fresh fetch.
func (s *Store) SetGraph(g *graph.Graph, fromCache bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.graph = g
	s.fromCache = fromCache
	s.lastUpdate = time.Now()
}

// Graph returns the resident graph, or false if none has been set
func (s *Store) Graph() (*graph.Graph, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph, s.graph != nil
}

// FromCache reports whether the resident network came from the disk cache
func (s *Store) FromCache() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fromCache
}

// LastUpdate returns when the resident graph was last replaced
func (s *Store) LastUpdate() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdate
}
