package citystats

import (
	"context"
	"fmt"
	"time"

	"github.com/citystats/citystats-service/internal/domain"
	"github.com/citystats/citystats-service/internal/logger"
	"github.com/citystats/citystats-service/internal/metrics"
)

const (
	datasetJobs    = "jobs"
	datasetRentals = "rentals"
)

// Service answers city lookups. It holds no per-request state; rows are
// fetched fresh on every call.
type Service struct {
	jobs    JobStatsProvider
	rentals RentalProvider
	charts  ChartRenderer
}

func New(jobs JobStatsProvider, rentals RentalProvider, charts ChartRenderer) *Service {
	return &Service{
		jobs:    jobs,
		rentals: rentals,
		charts:  charts,
	}
}

// LookupJobs returns the most prevalent occupation for every city matching
// the raw (city, state) input.
func (s *Service) LookupJobs(ctx context.Context, rawCity, rawState string) ([]domain.JobStat, error) {
	rows, err := s.jobs.FetchJobStats(ctx)
	if err != nil {
		metrics.RecordLookup(datasetJobs, metrics.OutcomeError)
		return nil, fmt.Errorf("fetch job stats: %w", err)
	}
	metrics.ObserveDatasetRows(datasetJobs, len(rows))

	key := domain.StandardNormalizer.Normalize(rawCity, rawState)
	matched, err := domain.MatchJobs(key, rows)
	if err != nil {
		recordMiss(ctx, datasetJobs, key, err)
		return nil, err
	}

	metrics.RecordLookup(datasetJobs, metrics.OutcomeFound)
	return matched, nil
}

// LookupRentals returns the rental rows for the city named by the raw input.
func (s *Service) LookupRentals(ctx context.Context, rawCity, rawState string) (domain.Place, []domain.RentalEstimate, error) {
	rows, err := s.rentals.FetchRentalEstimates(ctx)
	if err != nil {
		metrics.RecordLookup(datasetRentals, metrics.OutcomeError)
		return domain.Place{}, nil, fmt.Errorf("fetch rental estimates: %w", err)
	}
	metrics.ObserveDatasetRows(datasetRentals, len(rows))

	key := domain.SmartNormalizer.Normalize(rawCity, rawState)
	subset, err := domain.MatchRentals(key, rows)
	if err != nil {
		recordMiss(ctx, datasetRentals, key, err)
		return key, nil, err
	}

	metrics.RecordLookup(datasetRentals, metrics.OutcomeFound)
	return key, subset, nil
}

// RentalChart renders the rental price bar chart for the raw input as PNG bytes.
func (s *Service) RentalChart(ctx context.Context, rawCity, rawState string) ([]byte, error) {
	key, subset, err := s.LookupRentals(ctx, rawCity, rawState)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	img, err := s.charts.RenderRentalChart(ctx, key, subset)
	if err != nil {
		return nil, fmt.Errorf("render rental chart: %w", err)
	}
	metrics.ObserveChartRender(time.Since(start))

	return img, nil
}

func recordMiss(ctx context.Context, dataset string, key domain.Place, err error) {
	if domain.IsNotFound(err) {
		metrics.RecordLookup(dataset, metrics.OutcomeNotFound)
		logger.WithCtx(ctx).Debug().
			Str("dataset", dataset).
			Str("city", key.City).
			Str("state", key.StateCode).
			Msg("lookup miss")
		return
	}
	metrics.RecordLookup(dataset, metrics.OutcomeError)
}
