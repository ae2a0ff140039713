// Package cache persists raw network snapshots to a single file so repeated
// runs avoid re-fetching the network. It knows nothing about graphs.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/tubetrail/tubetrail/internal/models"
)

// snapshotVersion guards the on-disk format. A stored snapshot with any
// other version is treated as a miss.
const snapshotVersion = 1

// Snapshot is the on-disk record: the raw network plus enough metadata to
// judge validity. A save replaces the whole record, never part of it.
type Snapshot struct {
	Version    int                `json:"version"`
	SnapshotID string             `json:"snapshot_id"`
	FetchedAt  time.Time          `json:"fetched_at"`
	Network    *models.RawNetwork `json:"network"`
}

// WriteError reports a failed cache save. Non-fatal: callers log it and
// keep the freshly fetched data.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("cache write to %s failed: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Store reads and writes snapshots at a fixed path
type Store struct {
	path string
}

// NewStore creates a store for the given cache file path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the cache file path
func (s *Store) Path() string {
	return s.path
}

// Load reads the cached network. A missing file, unreadable file, parse
// failure or version mismatch is a miss (false), never an error: corruption
// just means the caller fetches fresh data.
func (s *Store) Load() (*models.RawNetwork, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, false
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, false
	}
	if snap.Version != snapshotVersion || snap.Network == nil {
		return nil, false
	}

	return snap.Network, true
}

// Save writes a fresh snapshot, replacing any previous one. Only I/O
// failures are returned (as *WriteError); marshalling our own snapshot
// struct cannot legitimately fail.
func (s *Store) Save(raw *models.RawNetwork) error {
	snap := Snapshot{
		Version:    snapshotVersion,
		SnapshotID: uuid.NewString(),
		FetchedAt:  time.Now().UTC(),
		Network:    raw,
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	return nil
}
