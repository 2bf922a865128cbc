package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"rainseason/internal/rainfall"
)

const (
	// GHCN daily-summaries parameters. With units=standard the API returns
	// precipitation in inches.
	nceiDataset   = "daily-summaries"
	nceiDataTypes = "PRCP"
	nceiUnits     = "standard"
)

var (
	// ErrNetwork covers connection failures and non-2xx responses from the
	// NCEI endpoint. Never retried; the invocation is terminal.
	ErrNetwork = errors.New("ncei request failed")

	// ErrParse means the response body could not be decoded into the
	// expected tabular shape. A data-source issue, not a user error.
	ErrParse = errors.New("ncei response not parseable")
)

// NCEIProvider implements rainfall.Provider against the NOAA NCEI Access
// Data Service (public, no auth).
type NCEIProvider struct {
	name    string
	baseURL string
	client  *http.Client
	log     *slog.Logger
	debug   bool
}

func NewNCEIProvider(client *http.Client, baseURL string, logger *slog.Logger, debug bool) *NCEIProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &NCEIProvider{
		name:    "ncei",
		baseURL: baseURL,
		client:  client,
		log:     logger,
		debug:   debug,
	}
}

func (p *NCEIProvider) Name() string {
	return p.name
}

// FetchDaily issues one GET for the station and window and returns the
// per-day records in chronological order. An empty body means the API has
// no data for the window (typical for future dates) and yields no records.
func (p *NCEIProvider) FetchDaily(ctx context.Context, stationID string, rng rainfall.DateRange) ([]rainfall.Observation, error) {
	values := url.Values{}
	values.Set("dataset", nceiDataset)
	values.Set("dataTypes", nceiDataTypes)
	values.Set("stations", stationID)
	values.Set("startDate", rng.Start.Format(rainfall.DateFormat))
	values.Set("endDate", rng.End.Format(rainfall.DateFormat))
	values.Set("format", "json")
	values.Set("units", nceiUnits)

	u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
	if p.debug {
		p.log.Debug("ncei request", "url", u)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s: %s", ErrNetwork, resp.Status, firstBytes(body, 200))
	}

	if p.debug {
		p.log.Debug("ncei response", "bytes", len(body), "prefix", firstBytes(body, 500))
	}

	return parseDailyRecords(body)
}

// nceiRecord is one row of the daily-summaries JSON payload. PRCP arrives
// either as a JSON number or a quoted string depending on the station feed.
type nceiRecord struct {
	Date string          `json:"DATE"`
	Prcp json.RawMessage `json:"PRCP"`
}

func parseDailyRecords(body []byte) ([]rainfall.Observation, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		// No data for the window.
		return nil, nil
	}

	var rows []nceiRecord
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
	case '{':
		// A single record comes back as an object instead of an array.
		var row nceiRecord
		if err := json.Unmarshal(trimmed, &row); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		rows = []nceiRecord{row}
	default:
		return nil, fmt.Errorf("%w: unexpected body %q", ErrParse, firstBytes(trimmed, 80))
	}

	observations := make([]rainfall.Observation, 0, len(rows))
	for _, row := range rows {
		dateStr := row.Date
		if len(dateStr) > 10 {
			dateStr = dateStr[:10]
		}
		day, err := time.ParseInLocation(rainfall.DateFormat, dateStr, time.UTC)
		if err != nil {
			continue
		}
		observations = append(observations, rainfall.Observation{
			Date:            day,
			PrecipitationIn: parsePrecip(row.Prcp),
		})
	}

	sort.Slice(observations, func(i, j int) bool {
		return observations[i].Date.Before(observations[j].Date)
	})
	return observations, nil
}

// parsePrecip accepts PRCP as a number or a quoted string. Anything
// unparseable yields nil so the aggregator counts the day as missing
// instead of treating it as zero.
func parsePrecip(raw json.RawMessage) *float64 {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var value float64
	if err := json.Unmarshal(raw, &value); err == nil {
		return &value
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return nil
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return nil
	}
	return &value
}

func firstBytes(body []byte, n int) string {
	s := strings.TrimSpace(string(body))
	if len(s) > n {
		return s[:n]
	}
	return s
}
