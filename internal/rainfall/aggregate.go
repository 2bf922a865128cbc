package rainfall

import "math"

// Summarize combines per-day observations into a Summary for the requested
// window. Every calendar day in the range is accounted for: a day with no
// record, a nil value, or a negative/NaN value counts as missing and never
// contributes to the total. The result is deterministic for a given input.
func Summarize(stationID string, rng DateRange, observations []Observation) Summary {
	byDay := make(map[string]*float64, len(observations))
	for _, obs := range observations {
		key := normalizeDay(obs.Date).Format(DateFormat)
		if _, ok := byDay[key]; ok {
			// Duplicate records for a day are rare; keep the first.
			continue
		}
		byDay[key] = obs.PrecipitationIn
	}

	summary := Summary{
		StationID:     stationID,
		Range:         rng,
		MonthlyInches: make(map[string]float64),
	}

	for day := rng.Start; !day.After(rng.End); day = day.AddDate(0, 0, 1) {
		value, ok := byDay[day.Format(DateFormat)]
		if !ok || value == nil || *value < 0 || math.IsNaN(*value) {
			summary.DaysMissing++
			continue
		}

		summary.DaysReported++
		summary.TotalInches += *value
		summary.MonthlyInches[day.Format("2006-01")] += *value
		if *value > 0 {
			summary.RainyDays++
		}
	}

	return summary
}
