package citystats

import (
	"context"

	"github.com/citystats/citystats-service/internal/domain"
)

// JobStatsProvider runs the fixed jobs query against the backing store.
type JobStatsProvider interface {
	FetchJobStats(ctx context.Context) ([]domain.JobStat, error)
}

// RentalProvider runs the fixed rental price query against the backing store.
type RentalProvider interface {
	FetchRentalEstimates(ctx context.Context) ([]domain.RentalEstimate, error)
}

// ChartRenderer turns a city's rental rows into an encoded PNG.
type ChartRenderer interface {
	RenderRentalChart(ctx context.Context, place domain.Place, rows []domain.RentalEstimate) ([]byte, error)
}
