package rainfall

import (
	"context"
	"fmt"
)

// Service runs the fetch-and-aggregate pipeline against a Provider.
type Service struct {
	provider Provider
}

// NewService creates a new Service.
func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// SeasonSummary fetches the station's daily records for the window and
// aggregates them. The observations are returned alongside the summary so
// presenters can render per-day detail without a second fetch.
func (s *Service) SeasonSummary(ctx context.Context, stationID string, rng DateRange) (Summary, []Observation, error) {
	if s.provider == nil {
		return Summary{}, nil, fmt.Errorf("no precipitation provider configured")
	}

	observations, err := s.provider.FetchDaily(ctx, stationID, rng)
	if err != nil {
		return Summary{}, nil, fmt.Errorf("fetch from %s: %w", s.provider.Name(), err)
	}

	return Summarize(stationID, rng, observations), observations, nil
}
