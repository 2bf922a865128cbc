package rainfall

import (
	"math"
	"reflect"
	"testing"
	"time"
)

func ptr(v float64) *float64 { return &v }

func TestSummarizeAccountsForFullWindow(t *testing.T) {
	// Ten-day window, three days omitted by the API entirely.
	rng := DateRange{Start: date(2024, time.October, 1), End: date(2024, time.October, 10)}

	var observations []Observation
	for d := 0; d < 10; d++ {
		if d == 2 || d == 5 || d == 8 {
			continue
		}
		observations = append(observations, Observation{
			Date:            rng.Start.AddDate(0, 0, d),
			PrecipitationIn: ptr(0.1),
		})
	}

	summary := Summarize("USC00047339", rng, observations)

	if summary.DaysMissing < 3 {
		t.Errorf("DaysMissing = %d, want >= 3", summary.DaysMissing)
	}
	if got := summary.DaysReported + summary.DaysMissing; got != rng.Days() {
		t.Errorf("reported+missing = %d, want %d", got, rng.Days())
	}
}

func TestSummarizeTotalsAndCounts(t *testing.T) {
	rng := DateRange{Start: date(2024, time.October, 1), End: date(2024, time.October, 5)}

	observations := []Observation{
		{Date: date(2024, time.October, 1), PrecipitationIn: ptr(0.25)},
		{Date: date(2024, time.October, 2), PrecipitationIn: ptr(0)},
		{Date: date(2024, time.October, 3), PrecipitationIn: nil},     // sentinel missing
		{Date: date(2024, time.October, 4), PrecipitationIn: ptr(-1)}, // invalid, counted missing
		{Date: date(2024, time.October, 5), PrecipitationIn: ptr(1.4142)},
	}

	summary := Summarize("USC00047339", rng, observations)

	want := 0.25 + 0 + 1.4142
	if math.Abs(summary.TotalInches-want) > 1e-6 {
		t.Errorf("TotalInches = %f, want %f", summary.TotalInches, want)
	}
	if summary.TotalInches < 0 {
		t.Errorf("TotalInches must be non-negative, got %f", summary.TotalInches)
	}
	if summary.DaysReported != 3 {
		t.Errorf("DaysReported = %d, want 3", summary.DaysReported)
	}
	if summary.DaysMissing != 2 {
		t.Errorf("DaysMissing = %d, want 2", summary.DaysMissing)
	}
	// The zero reading counts as reported but not rainy.
	if summary.RainyDays != 2 {
		t.Errorf("RainyDays = %d, want 2", summary.RainyDays)
	}
}

func TestSummarizeMonthlyBuckets(t *testing.T) {
	rng := DateRange{Start: date(2024, time.October, 30), End: date(2024, time.November, 2)}

	observations := []Observation{
		{Date: date(2024, time.October, 30), PrecipitationIn: ptr(0.5)},
		{Date: date(2024, time.October, 31), PrecipitationIn: ptr(0.5)},
		{Date: date(2024, time.November, 1), PrecipitationIn: ptr(0.2)},
		{Date: date(2024, time.November, 2), PrecipitationIn: ptr(0.3)},
	}

	summary := Summarize("USC00047339", rng, observations)

	if got := summary.MonthlyInches["2024-10"]; math.Abs(got-1.0) > 1e-6 {
		t.Errorf("october total = %f, want 1.0", got)
	}
	if got := summary.MonthlyInches["2024-11"]; math.Abs(got-0.5) > 1e-6 {
		t.Errorf("november total = %f, want 0.5", got)
	}
}

func TestSummarizeEmptyResponse(t *testing.T) {
	rng := DateRange{Start: date(2024, time.October, 1), End: date(2024, time.October, 7)}

	summary := Summarize("USC00047339", rng, nil)

	if summary.DaysReported != 0 {
		t.Errorf("DaysReported = %d, want 0", summary.DaysReported)
	}
	if summary.DaysMissing != 7 {
		t.Errorf("DaysMissing = %d, want 7", summary.DaysMissing)
	}
	if summary.TotalInches != 0 {
		t.Errorf("TotalInches = %f, want 0", summary.TotalInches)
	}
}

func TestSummarizeDeterministic(t *testing.T) {
	rng := DateRange{Start: date(2024, time.October, 1), End: date(2024, time.October, 31)}

	observations := []Observation{
		{Date: date(2024, time.October, 2), PrecipitationIn: ptr(0.12)},
		{Date: date(2024, time.October, 9), PrecipitationIn: ptr(1.03)},
		{Date: date(2024, time.October, 10), PrecipitationIn: nil},
		{Date: date(2024, time.October, 21), PrecipitationIn: ptr(0.4)},
	}

	first := Summarize("USC00047339", rng, observations)
	second := Summarize("USC00047339", rng, observations)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("summaries differ across runs:\n%+v\n%+v", first, second)
	}
}

func TestSummarizeIgnoresRecordsOutsideRange(t *testing.T) {
	rng := DateRange{Start: date(2024, time.October, 1), End: date(2024, time.October, 3)}

	observations := []Observation{
		{Date: date(2024, time.September, 30), PrecipitationIn: ptr(5)},
		{Date: date(2024, time.October, 1), PrecipitationIn: ptr(0.1)},
		{Date: date(2024, time.October, 2), PrecipitationIn: ptr(0.2)},
		{Date: date(2024, time.October, 3), PrecipitationIn: ptr(0.3)},
		{Date: date(2024, time.October, 4), PrecipitationIn: ptr(5)},
	}

	summary := Summarize("USC00047339", rng, observations)

	if math.Abs(summary.TotalInches-0.6) > 1e-6 {
		t.Errorf("TotalInches = %f, want 0.6 (out-of-range records ignored)", summary.TotalInches)
	}
	if got := summary.DaysReported + summary.DaysMissing; got != 3 {
		t.Errorf("reported+missing = %d, want 3", got)
	}
}
