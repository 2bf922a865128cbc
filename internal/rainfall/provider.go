package rainfall

import "context"

// Provider abstracts the daily-precipitation data source (NOAA NCEI in
// production, fixtures in tests).
type Provider interface {
	Name() string

	// FetchDaily returns the per-day precipitation records the source has
	// for the station inside the window. The slice is ordered by date and
	// may cover fewer days than the window; callers must not assume a
	// record per day.
	FetchDaily(ctx context.Context, stationID string, rng DateRange) ([]Observation, error)
}
