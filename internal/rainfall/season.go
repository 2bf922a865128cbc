package rainfall

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRange is returned when a supplied date fails to parse or the
// window is inverted. These are user-fixable; callers should surface the
// wrapped detail.
var ErrInvalidRange = errors.New("invalid date range")

// SeasonStart returns October 1 of the rain season containing today.
// The season runs Oct 1 through Sep 30, so January-September belong to the
// season that started the previous October.
func SeasonStart(today time.Time) time.Time {
	today = normalizeDay(today)
	if today.Month() >= time.October {
		return time.Date(today.Year(), time.October, 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(today.Year()-1, time.October, 1, 0, 0, 0, 0, time.UTC)
}

// ResolveRange computes the reporting window. Empty start/end fall back to
// the season default (Oct 1 through today); explicit values are used
// verbatim. Both must be YYYY-MM-DD calendar dates with start <= end.
func ResolveRange(startStr, endStr string, today time.Time) (DateRange, error) {
	today = normalizeDay(today)

	start := SeasonStart(today)
	if startStr != "" {
		parsed, err := time.ParseInLocation(DateFormat, startStr, time.UTC)
		if err != nil {
			return DateRange{}, fmt.Errorf("%w: start %q is not a YYYY-MM-DD date", ErrInvalidRange, startStr)
		}
		start = parsed
	}

	end := today
	if endStr != "" {
		parsed, err := time.ParseInLocation(DateFormat, endStr, time.UTC)
		if err != nil {
			return DateRange{}, fmt.Errorf("%w: end %q is not a YYYY-MM-DD date", ErrInvalidRange, endStr)
		}
		end = parsed
	}

	if start.After(end) {
		return DateRange{}, fmt.Errorf("%w: start %s is after end %s", ErrInvalidRange,
			start.Format(DateFormat), end.Format(DateFormat))
	}

	return DateRange{Start: start, End: end}, nil
}
