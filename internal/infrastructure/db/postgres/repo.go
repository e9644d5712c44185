package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/citystats/citystats-service/internal/domain"
)

// Repo issues the read-only dataset queries. No user input reaches SQL.
type Repo struct {
	db *sql.DB
}

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *Repo) FetchJobStats(ctx context.Context) ([]domain.JobStat, error) {
	rows, err := r.db.QueryContext(ctx, jobStatsSQL)
	if err != nil {
		return nil, fmt.Errorf("query bls_jobs: %w", err)
	}
	defer rows.Close()

	var out []domain.JobStat
	for rows.Next() {
		var (
			j                        domain.JobStat
			city, state, title       sql.NullString
			jobs, lq, hourly, annual sql.NullFloat64
		)
		if err := rows.Scan(&city, &state, &title, &jobs, &lq, &hourly, &annual); err != nil {
			return nil, fmt.Errorf("scan bls_jobs: %w", err)
		}
		j.City = city.String
		j.State = state.String
		j.OccTitle = title.String
		// NULL measures read as 0; a NULL annual wage is treated as missing wage data.
		j.Jobs1000 = jobs.Float64
		j.LocQuotient = lq.Float64
		j.HourlyWage = hourly.Float64
		j.AnnualWage = annual.Float64
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bls_jobs: %w", err)
	}
	return out, nil
}

func (r *Repo) FetchRentalEstimates(ctx context.Context) ([]domain.RentalEstimate, error) {
	rows, err := r.db.QueryContext(ctx, rentalEstimatesSQL)
	if err != nil {
		return nil, fmt.Errorf("query rp_clean1: %w", err)
	}
	defer rows.Close()

	var out []domain.RentalEstimate
	for rows.Next() {
		var (
			e                 domain.RentalEstimate
			city, state, size sql.NullString
			price             sql.NullFloat64
		)
		if err := rows.Scan(&city, &state, &size, &price); err != nil {
			return nil, fmt.Errorf("scan rp_clean1: %w", err)
		}
		e.City = city.String
		e.State = state.String
		e.BedroomSize = size.String
		e.Price = price.Float64
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rp_clean1: %w", err)
	}
	return out, nil
}
