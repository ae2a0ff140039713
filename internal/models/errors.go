package models

import "errors"

// Fatal error kinds. Callers match with errors.Is; wrapping sites add the
// failing detail with fmt.Errorf("...: %w", ...).
var (
	// ErrSourceUnavailable means the external data source could not be
	// reached or returned garbage, and no usable cache existed.
	ErrSourceUnavailable = errors.New("network data source unavailable")

	// ErrBadNetworkData means the raw network data is internally
	// inconsistent, e.g. a segment endpoint with no station record.
	ErrBadNetworkData = errors.New("malformed network data")
)
