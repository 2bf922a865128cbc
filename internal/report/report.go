// Package report renders a rainfall summary as text, JSON, or CSV.
// Rendering never mutates the summary; rounding happens here only.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"rainseason/internal/rainfall"
)

// Text builds the human-readable season report: header block, monthly
// totals, then per-day detail with a simple bar per rainy day.
func Text(summary rainfall.Summary, observations []rainfall.Observation, stationName string, generated time.Time) string {
	var b strings.Builder
	rule := strings.Repeat("=", 62)

	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "  NOAA Daily Rainfall Report — %s\n", stationName)
	fmt.Fprintf(&b, "  Rain season: %s – %s\n",
		summary.Range.Start.Format("Jan 02, 2006"),
		summary.Range.End.Format("Jan 02, 2006"))
	fmt.Fprintf(&b, "  Station: %s\n", summary.StationID)
	fmt.Fprintf(&b, "  Generated: %s\n", generated.Format("2006-01-02 15:04"))
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b)

	if summary.DaysReported == 0 {
		fmt.Fprintln(&b, "  No precipitation data available for this period.")
		return b.String()
	}

	months := make([]string, 0, len(summary.MonthlyInches))
	for month := range summary.MonthlyInches {
		months = append(months, month)
	}
	sort.Strings(months)

	fmt.Fprintln(&b, "  MONTHLY TOTALS")
	fmt.Fprintln(&b, "  "+strings.Repeat("-", 30))
	for _, month := range months {
		label := monthLabel(month)
		fmt.Fprintf(&b, "  %-20s  %6.2f in\n", label, summary.MonthlyInches[month])
	}
	fmt.Fprintln(&b, "  "+strings.Repeat("-", 30))
	fmt.Fprintf(&b, "  %-20s  %6.2f in\n", "Season total", summary.TotalInches)
	fmt.Fprintf(&b, "  %-20s  %6d\n", "Days with rain", summary.RainyDays)
	fmt.Fprintf(&b, "  %-20s  %6d\n", "Days missing", summary.DaysMissing)
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "  DAILY DETAIL")
	fmt.Fprintln(&b, "  "+strings.Repeat("-", 40))
	fmt.Fprintf(&b, "  %-14s %-5s %11s  Bar\n", "Date", "Day", "Precip (in)")
	fmt.Fprintln(&b, "  "+strings.Repeat("-", 40))

	for _, obs := range observations {
		value := 0.0
		if obs.PrecipitationIn != nil {
			value = *obs.PrecipitationIn
		}
		bar := ""
		if value > 0 {
			bar = strings.Repeat("#", int(value*10))
		}
		fmt.Fprintf(&b, "  %s  %-5s %8.2f    %s\n",
			obs.Date.Format(rainfall.DateFormat), obs.Date.Format("Mon"), value, bar)
	}

	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "  Season total: %.2f inches over %d days reported\n",
		summary.TotalInches, summary.DaysReported)
	return b.String()
}

type jsonReport struct {
	StationID     string             `json:"station_id"`
	Start         string             `json:"start"`
	End           string             `json:"end"`
	TotalInches   float64            `json:"total_inches"`
	DaysReported  int                `json:"days_reported"`
	DaysMissing   int                `json:"days_missing"`
	RainyDays     int                `json:"rainy_days"`
	MonthlyTotals map[string]float64 `json:"monthly_totals,omitempty"`
	Observations  []jsonObservation  `json:"observations"`
}

type jsonObservation struct {
	Date            string   `json:"date"`
	PrecipitationIn *float64 `json:"precipitation_in"`
}

// JSON renders the summary and per-day records as an indented JSON object.
// Field names are part of the output contract.
func JSON(summary rainfall.Summary, observations []rainfall.Observation) (string, error) {
	out := jsonReport{
		StationID:     summary.StationID,
		Start:         summary.Range.Start.Format(rainfall.DateFormat),
		End:           summary.Range.End.Format(rainfall.DateFormat),
		TotalInches:   summary.TotalInches,
		DaysReported:  summary.DaysReported,
		DaysMissing:   summary.DaysMissing,
		RainyDays:     summary.RainyDays,
		MonthlyTotals: summary.MonthlyInches,
		Observations:  make([]jsonObservation, 0, len(observations)),
	}
	for _, obs := range observations {
		out.Observations = append(out.Observations, jsonObservation{
			Date:            obs.Date.Format(rainfall.DateFormat),
			PrecipitationIn: obs.PrecipitationIn,
		})
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(encoded) + "\n", nil
}

// CSV renders one row per available observation plus a trailing total row.
// Days the API omitted do not appear; missing values render as empty cells.
func CSV(summary rainfall.Summary, observations []rainfall.Observation) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	if err := w.Write([]string{"date", "precipitation_in"}); err != nil {
		return "", err
	}
	for _, obs := range observations {
		value := ""
		if obs.PrecipitationIn != nil {
			value = strconv.FormatFloat(*obs.PrecipitationIn, 'f', 2, 64)
		}
		if err := w.Write([]string{obs.Date.Format(rainfall.DateFormat), value}); err != nil {
			return "", err
		}
	}
	if err := w.Write([]string{"total", strconv.FormatFloat(summary.TotalInches, 'f', 2, 64)}); err != nil {
		return "", err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return b.String(), nil
}

// monthLabel turns "2025-01" into "January 2025". Malformed keys pass
// through unchanged.
func monthLabel(key string) string {
	parsed, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return parsed.Format("January 2006")
}
