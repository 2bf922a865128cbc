package rainfall

import (
	"time"
)

// DateFormat is the calendar-date layout used throughout: flags, the NCEI
// API, and report output.
const DateFormat = "2006-01-02"

// DateRange is an inclusive window of calendar days. Start and End are
// normalized to midnight UTC; time-of-day carries no meaning.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days returns the number of calendar days in the range, inclusive.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// Observation is a single day's precipitation record for the station.
// PrecipitationIn is nil when the station reported no usable value for that
// day; nil is never the same as zero.
type Observation struct {
	Date            time.Time
	PrecipitationIn *float64
}

// Summary is the aggregated view of one season window. It is derived
// entirely from an ordered sequence of observations and is never mutated
// after Summarize returns it.
type Summary struct {
	StationID    string
	Range        DateRange
	TotalInches  float64
	DaysReported int
	DaysMissing  int
	RainyDays    int

	// MonthlyInches buckets the total by calendar month, keyed "YYYY-MM".
	MonthlyInches map[string]float64
}

// normalizeDay truncates a timestamp to midnight UTC so observations and
// range endpoints compare as calendar dates.
func normalizeDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
