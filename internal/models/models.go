package models

// RawStation is a station record as delivered by the data source
type RawStation struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RawSegment is one directed line segment between two station IDs
type RawSegment struct {
	Line string `json:"line"`
	From string `json:"from"`
	To   string `json:"to"`
}

// RawNetwork is the raw station/segment data as fetched (and as cached).
// Segment order is meaningful: arc identities are positional.
type RawNetwork struct {
	Stations []RawStation `json:"stations"`
	Segments []RawSegment `json:"segments"`
}

// LetterSet is a bit field over the 26 ASCII letters.
// Bit 0 is 'a', bit 25 is 'z'.
type LetterSet uint32

// Letters returns the set of distinct letters in s, case-insensitive.
// Non-letter characters are ignored.
func Letters(s string) LetterSet {
	var set LetterSet
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			set |= 1 << (r - 'a')
		case r >= 'A' && r <= 'Z':
			set |= 1 << (r - 'A')
		}
	}
	return set
}

// Intersects reports whether the two sets share any letter
func (l LetterSet) Intersects(m LetterSet) bool {
	return l&m != 0
}

// Empty reports whether the set contains no letters
func (l LetterSet) Empty() bool {
	return l == 0
}

// String renders the set as its sorted letters, e.g. "aelm"
func (l LetterSet) String() string {
	buf := make([]byte, 0, 26)
	for i := 0; i < 26; i++ {
		if l&(1<<i) != 0 {
			buf = append(buf, byte('a'+i))
		}
	}
	return string(buf)
}

// Station is an immutable graph node. Identity is the canonical name;
// Letters caches the name's letter set for filtering.
type Station struct {
	Name    string    `json:"name"`
	Letters LetterSet `json:"-"`
}

// Arc is a single directed, individually identifiable connection between
// two stations along one line. Opposite directions of the same segment are
// distinct arcs, as are parallel segments on different lines.
type Arc struct {
	ID   int    `json:"id"`
	From string `json:"from"`
	To   string `json:"to"`
	Line string `json:"line"`
}

// Step is one position in a journey: the station reached and the arc taken
// to reach it. The first step of a journey has no incoming arc (Arc == -1,
// Line empty).
type Step struct {
	Station string `json:"station"`
	Line    string `json:"line,omitempty"`
	Arc     int    `json:"arc"`
}

// Journey is a trail through the filtered network: no arc is used twice,
// stations may repeat
type Journey struct {
	Steps []Step `json:"steps"`
}

// Len is the journey length counted in stations (arcs used + 1)
func (j Journey) Len() int {
	return len(j.Steps)
}

// Result is the answer to one query: all longest journeys, their common
// length, and the sorted list of stations that survived the letter filter.
// Warnings carries non-fatal problems (e.g. a failed cache write).
type Result struct {
	Length   int       `json:"length"`
	Journeys []Journey `json:"journeys"`
	Stations []string  `json:"stations"`
	Warnings []string  `json:"warnings,omitempty"`
}
