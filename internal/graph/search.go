package graph

import (
	"github.com/tubetrail/tubetrail/internal/models"
)

// arcSet tracks which arc IDs a partial trail has consumed. Arc IDs are
// dense (positional), so a word-packed bit set keeps per-branch copies cheap.
type arcSet []uint64

func newArcSet(n int) arcSet {
	return make(arcSet, (n+63)/64)
}

func (s arcSet) has(id int) bool {
	return s[id/64]&(1<<(id%64)) != 0
}

func (s arcSet) with(id int) arcSet {
	c := make(arcSet, len(s))
	copy(c, s)
	c[id/64] |= 1 << (id % 64)
	return c
}

// trailState is one branch of the trail enumeration. Extending a trail
// copies the state rather than mutating it, so sibling branches never share
// visited-arc bookkeeping.
type trailState struct {
	at    string
	used  arcSet
	count int // arcs consumed
	steps []models.Step
}

func (t trailState) extend(arc models.Arc) trailState {
	steps := make([]models.Step, len(t.steps), len(t.steps)+1)
	copy(steps, t.steps)
	steps = append(steps, models.Step{Station: arc.To, Line: arc.Line, Arc: arc.ID})
	return trailState{
		at:    arc.To,
		used:  t.used.with(arc.ID),
		count: t.count + 1,
		steps: steps,
	}
}

// accumulator holds the best length found so far and every journey that
// attains it. A strictly longer journey replaces the whole set; a tie is
// appended.
type accumulator struct {
	best     int
	journeys []models.Journey
}

func (a *accumulator) record(t trailState) {
	n := len(t.steps)
	if n < a.best {
		return
	}
	if n > a.best {
		a.best = n
		a.journeys = a.journeys[:0]
	}
	a.journeys = append(a.journeys, models.Journey{Steps: t.steps})
}

// Search exhaustively enumerates maximal trails in v from every station and
// returns the maximum journey length (stations visited) together with all
// journeys of that length. An empty view yields (0, nil); a view with
// stations but no usable arcs yields length-1 journeys. Results are
// deterministic: start stations in name order, extensions in arc-ID order.
func Search(v *View) (int, []models.Journey) {
	acc := &accumulator{}
	total := len(v.Arcs)

	// Arc IDs are graph-positional, so the set must span the highest
	// surviving ID, not just the view's arc count.
	maxID := 0
	if total > 0 {
		maxID = v.Arcs[total-1].ID + 1
	}

	for _, name := range v.Names {
		start := trailState{
			at:    name,
			used:  newArcSet(maxID),
			steps: []models.Step{{Station: name, Arc: -1}},
		}
		dfs(v, start, total, acc)
	}

	return acc.best, acc.journeys
}

func dfs(v *View, t trailState, total int, acc *accumulator) {
	// Even consuming every remaining arc cannot reach a tie: give up early.
	if len(t.steps)+(total-t.count) < acc.best {
		return
	}

	extended := false
	for _, arc := range v.Out[t.at] {
		if t.used.has(arc.ID) {
			continue
		}
		extended = true
		dfs(v, t.extend(arc), total, acc)
	}

	// No unused incident arc: this trail is maximal.
	if !extended {
		acc.record(t)
	}
}
