package rainfall

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"
)

// fixtureProvider serves canned observations without any network access.
type fixtureProvider struct {
	observations []Observation
	err          error

	gotStation string
	gotRange   DateRange
}

func (f *fixtureProvider) Name() string { return "fixture" }

func (f *fixtureProvider) FetchDaily(_ context.Context, stationID string, rng DateRange) ([]Observation, error) {
	f.gotStation = stationID
	f.gotRange = rng
	return f.observations, f.err
}

func TestServiceSeasonSummary(t *testing.T) {
	rng := DateRange{Start: date(2024, time.October, 1), End: date(2024, time.October, 3)}
	provider := &fixtureProvider{
		observations: []Observation{
			{Date: date(2024, time.October, 1), PrecipitationIn: ptr(0.5)},
			{Date: date(2024, time.October, 3), PrecipitationIn: ptr(0.25)},
		},
	}

	service := NewService(provider)
	summary, observations, err := service.SeasonSummary(context.Background(), "USC00047339", rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if provider.gotStation != "USC00047339" {
		t.Errorf("provider received station %q", provider.gotStation)
	}
	if !provider.gotRange.Start.Equal(rng.Start) || !provider.gotRange.End.Equal(rng.End) {
		t.Errorf("provider received range %v", provider.gotRange)
	}
	if len(observations) != 2 {
		t.Errorf("observations = %d, want 2", len(observations))
	}
	if math.Abs(summary.TotalInches-0.75) > 1e-6 {
		t.Errorf("TotalInches = %f, want 0.75", summary.TotalInches)
	}
	if summary.DaysMissing != 1 {
		t.Errorf("DaysMissing = %d, want 1", summary.DaysMissing)
	}
}

func TestServicePropagatesProviderError(t *testing.T) {
	wantErr := errors.New("boom")
	service := NewService(&fixtureProvider{err: wantErr})

	_, _, err := service.SeasonSummary(context.Background(), "X", DateRange{
		Start: date(2024, time.October, 1),
		End:   date(2024, time.October, 1),
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped provider error, got %v", err)
	}
}

func TestServiceWithoutProvider(t *testing.T) {
	service := NewService(nil)
	_, _, err := service.SeasonSummary(context.Background(), "X", DateRange{})
	if err == nil {
		t.Fatal("expected error when no provider is configured")
	}
}
