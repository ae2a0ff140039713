// Package graph holds the in-memory network model: building it from raw
// data, filtering it by forbidden letters, and searching it for the longest
// trails.
package graph

import (
	"fmt"
	"sort"

	"github.com/tubetrail/tubetrail/internal/models"
)

// Graph is the full station/arc network for one run. Built once from raw
// data and read-only thereafter; queries operate on filtered views instead.
type Graph struct {
	stations map[string]models.Station
	names    []string // sorted station names
	arcs     []models.Arc
	out      map[string][]int // station name -> outgoing arc IDs, ascending
}

// Build converts raw network data into a Graph. It is deterministic: arc
// identity is the segment's position in the raw segment list, and station
// identity is the canonical name. A segment endpoint without a station
// record fails with models.ErrBadNetworkData; missing stations are never
// synthesized.
func Build(raw *models.RawNetwork) (*Graph, error) {
	byID := make(map[string]string, len(raw.Stations))
	stations := make(map[string]models.Station, len(raw.Stations))
	for _, rs := range raw.Stations {
		byID[rs.ID] = rs.Name
		if _, ok := stations[rs.Name]; !ok {
			stations[rs.Name] = models.Station{Name: rs.Name, Letters: models.Letters(rs.Name)}
		}
	}

	g := &Graph{
		stations: stations,
		arcs:     make([]models.Arc, 0, len(raw.Segments)),
		out:      make(map[string][]int, len(stations)),
	}

	for i, seg := range raw.Segments {
		from, ok := byID[seg.From]
		if !ok {
			return nil, fmt.Errorf("segment %d (%s): endpoint %q has no station record: %w",
				i, seg.Line, seg.From, models.ErrBadNetworkData)
		}
		to, ok := byID[seg.To]
		if !ok {
			return nil, fmt.Errorf("segment %d (%s): endpoint %q has no station record: %w",
				i, seg.Line, seg.To, models.ErrBadNetworkData)
		}
		arc := models.Arc{ID: i, From: from, To: to, Line: seg.Line}
		g.arcs = append(g.arcs, arc)
		g.out[from] = append(g.out[from], i)
	}

	g.names = make([]string, 0, len(stations))
	for name := range stations {
		g.names = append(g.names, name)
	}
	sort.Strings(g.names)

	return g, nil
}

// Stations returns the station names in sorted order
func (g *Graph) Stations() []string {
	return g.names
}

// Station looks up a station by name
func (g *Graph) Station(name string) (models.Station, bool) {
	s, ok := g.stations[name]
	return s, ok
}

// Arcs returns all arcs in ID order
func (g *Graph) Arcs() []models.Arc {
	return g.arcs
}
