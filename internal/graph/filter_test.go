package graph

import (
	"reflect"
	"testing"

	"github.com/tubetrail/tubetrail/internal/models"
)

func TestFilter(t *testing.T) {
	g, err := Build(testRawNetwork())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	tests := []struct {
		name         string
		phrase       string
		wantStations []string
		wantArcs     int
	}{
		{
			name:         "empty phrase passes everything",
			phrase:       "",
			wantStations: []string{"Bank", "Oval", "Pimlico"},
			wantArcs:     4,
		},
		{
			name:         "non-letter phrase passes everything",
			phrase:       "42!",
			wantStations: []string{"Bank", "Oval", "Pimlico"},
			wantArcs:     4,
		},
		{
			name:         "excludes stations containing phrase letters",
			phrase:       "km",
			wantStations: []string{"Oval"},
			wantArcs:     0,
		},
		{
			name:         "case-insensitive",
			phrase:       "KM",
			wantStations: []string{"Oval"},
			wantArcs:     0,
		},
		{
			name:         "keeps arcs between surviving stations",
			phrase:       "b",
			wantStations: []string{"Oval", "Pimlico"},
			wantArcs:     2,
		},
		{
			name:         "everything excluded",
			phrase:       "aeiou",
			wantStations: nil,
			wantArcs:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Filter(g, tt.phrase)

			if !reflect.DeepEqual(v.Names, tt.wantStations) {
				t.Errorf("Expected stations %v, got %v", tt.wantStations, v.Names)
			}
			if len(v.Arcs) != tt.wantArcs {
				t.Errorf("Expected %d arcs, got %d", tt.wantArcs, len(v.Arcs))
			}
			for _, arc := range v.Arcs {
				if _, ok := v.Stations[arc.From]; !ok {
					t.Errorf("Arc %d starts at excluded station %q", arc.ID, arc.From)
				}
				if _, ok := v.Stations[arc.To]; !ok {
					t.Errorf("Arc %d ends at excluded station %q", arc.ID, arc.To)
				}
			}
		})
	}
}

func TestFilterEmptyPhraseEqualsGraph(t *testing.T) {
	g, err := Build(testRawNetwork())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	v := Filter(g, "")
	if !reflect.DeepEqual(v.Names, g.Stations()) {
		t.Errorf("Expected view stations %v, got %v", g.Stations(), v.Names)
	}
	if !reflect.DeepEqual(v.Arcs, g.Arcs()) {
		t.Error("Expected view arcs to equal graph arcs")
	}
}

func TestFilterExcludedContainForbiddenLetter(t *testing.T) {
	g, err := Build(testRawNetwork())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	phrase := "bp"
	v := Filter(g, phrase)
	for _, name := range g.Stations() {
		st, _ := g.Station(name)
		_, kept := v.Stations[name]
		overlaps := st.Letters.Intersects(models.Letters(phrase))
		if kept && overlaps {
			t.Errorf("Station %q kept despite forbidden letter", name)
		}
		if !kept && !overlaps {
			t.Errorf("Station %q excluded without a forbidden letter", name)
		}
	}
}
