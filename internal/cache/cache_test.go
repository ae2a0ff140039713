package cache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/tubetrail/tubetrail/internal/models"
)

func testNetwork() *models.RawNetwork {
	return &models.RawNetwork{
		Stations: []models.RawStation{
			{ID: "a", Name: "Angel"},
			{ID: "b", Name: "Bank"},
		},
		Segments: []models.RawSegment{
			{Line: "Northern", From: "a", To: "b"},
			{Line: "Northern", From: "b", To: "a"},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "network.json"))

	if err := s.Save(testNetwork()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	got, ok := s.Load()
	if !ok {
		t.Fatal("Expected cache hit after save")
	}
	if !reflect.DeepEqual(got, testNetwork()) {
		t.Errorf("Expected loaded network to equal saved network, got %+v", got)
	}
}

func TestSaveReplacesWholeSnapshot(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "network.json"))

	if err := s.Save(testNetwork()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	smaller := &models.RawNetwork{Stations: []models.RawStation{{ID: "c", Name: "Oval"}}}
	if err := s.Save(smaller); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	got, ok := s.Load()
	if !ok {
		t.Fatal("Expected cache hit")
	}
	if !reflect.DeepEqual(got, smaller) {
		t.Errorf("Expected second save to fully replace the first, got %+v", got)
	}
}

func TestLoadMisses(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		prepare func(t *testing.T, path string)
	}{
		{
			name:    "missing file",
			prepare: func(t *testing.T, path string) {},
		},
		{
			name: "not JSON",
			prepare: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("not json at all"), 0644); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name: "wrong version",
			prepare: func(t *testing.T, path string) {
				snap := Snapshot{Version: 99, Network: testNetwork()}
				data, err := json.Marshal(snap)
				if err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(path, data, 0644); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name: "missing network payload",
			prepare: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte(`{"version":1}`), 0644); err != nil {
					t.Fatal(err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".json")
			tt.prepare(t, path)

			if _, ok := NewStore(path).Load(); ok {
				t.Error("Expected cache miss")
			}
		})
	}
}

func TestSaveWriteError(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "no-such-dir", "network.json"))

	err := s.Save(testNetwork())
	if err == nil {
		t.Fatal("Expected error when writing to a missing directory")
	}

	var we *WriteError
	if !errors.As(err, &we) {
		t.Fatalf("Expected *WriteError, got %T", err)
	}
	if we.Path != s.Path() {
		t.Errorf("Expected path %q in error, got %q", s.Path(), we.Path)
	}
}

func TestSnapshotMetadata(t *testing.T) {
	path := filepath.Join(t.TempDir(), "network.json")
	s := NewStore(path)

	if err := s.Save(testNetwork()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatal(err)
	}

	if snap.Version != snapshotVersion {
		t.Errorf("Expected version %d, got %d", snapshotVersion, snap.Version)
	}
	if snap.SnapshotID == "" {
		t.Error("Expected a snapshot ID")
	}
	if snap.FetchedAt.IsZero() {
		t.Error("Expected a fetch timestamp")
	}
}
