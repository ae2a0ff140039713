package graph

import (
	"github.com/tubetrail/tubetrail/internal/models"
)

// View is the induced subgraph of stations whose names avoid a forbidden
// letter set, plus the arcs between them. Owned by a single query and
// discarded after its search completes.
type View struct {
	Names    []string                  // sorted surviving station names
	Stations map[string]models.Station // by name
	Arcs     []models.Arc              // surviving arcs, ascending ID
	Out      map[string][]models.Arc   // station -> outgoing arcs, ascending ID
}

// Filter computes the view of g induced by the letters of phrase. A station
// survives iff its name contains none of the phrase's letters,
// case-insensitive. A phrase with no letters forbids nothing, so the view
// equals the whole graph.
func Filter(g *Graph, phrase string) *View {
	forbidden := models.Letters(phrase)

	v := &View{
		Stations: make(map[string]models.Station),
		Out:      make(map[string][]models.Arc),
	}

	for _, name := range g.names {
		st := g.stations[name]
		if st.Letters.Intersects(forbidden) {
			continue
		}
		v.Stations[name] = st
		v.Names = append(v.Names, name)
	}

	for _, arc := range g.arcs {
		if _, ok := v.Stations[arc.From]; !ok {
			continue
		}
		if _, ok := v.Stations[arc.To]; !ok {
			continue
		}
		v.Arcs = append(v.Arcs, arc)
		v.Out[arc.From] = append(v.Out[arc.From], arc)
	}

	return v
}
