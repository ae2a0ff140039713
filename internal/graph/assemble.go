package graph

import (
	"github.com/tubetrail/tubetrail/internal/models"
)

// Assemble packages a completed search into a Result: the winning journeys,
// their common length, and the sorted eligible-station list. Pure data
// shaping; rendering belongs to the caller.
func Assemble(length int, journeys []models.Journey, v *View) models.Result {
	stations := make([]string, len(v.Names))
	copy(stations, v.Names)

	return models.Result{
		Length:   length,
		Journeys: journeys,
		Stations: stations,
	}
}
