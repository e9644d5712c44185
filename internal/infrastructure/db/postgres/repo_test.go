package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jobColumns = []string{
	"city", "state", "occ_title", "jobs_1000", "loc_quotient", "hourly_wage", "annual_wage",
}

func TestFixedQueries(t *testing.T) {
	assert.Equal(t,
		"SELECT DISTINCT ON (j.city) j.city, j.state, j.occ_title, j.jobs_1000, j.loc_quotient, j.hourly_wage, j.annual_wage FROM bls_jobs j ORDER BY j.city, j.loc_quotient DESC",
		jobStatsSQL,
	)
	assert.Equal(t,
		`SELECT city, "state", bedroom_size, price_2020_08 FROM rp_clean1`,
		rentalEstimatesSQL,
	)
}

func TestRepo_FetchJobStats(t *testing.T) {
	t.Run("success_mapping", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows(jobColumns).
			AddRow("Atlanta-Sandy Springs-Roswell", "GA", "Logisticians", 2.31, 3.4, 38.5, 80080.0).
			AddRow("Laredo", "TX", "Customs Brokers", 1.1, 12.5, nil, nil)

		mock.ExpectQuery(regexp.QuoteMeta(jobStatsSQL)).WillReturnRows(rows)

		got, err := New(db).FetchJobStats(context.Background())
		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, "Atlanta-Sandy Springs-Roswell", got[0].City)
		assert.Equal(t, "GA", got[0].State)
		assert.Equal(t, "Logisticians", got[0].OccTitle)
		assert.Equal(t, 2.31, got[0].Jobs1000)
		assert.Equal(t, 3.4, got[0].LocQuotient)
		assert.Equal(t, 38.5, got[0].HourlyWage)
		assert.Equal(t, 80080.0, got[0].AnnualWage)

		// NULL wages read as zero
		assert.Zero(t, got[1].HourlyWage)
		assert.Zero(t, got[1].AnnualWage)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query_error_is_wrapped", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		boom := errors.New("relation \"bls_jobs\" does not exist")
		mock.ExpectQuery(regexp.QuoteMeta(jobStatsSQL)).WillReturnError(boom)

		_, err = New(db).FetchJobStats(context.Background())
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "query bls_jobs")
	})

	t.Run("row_error_is_reported", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		boom := errors.New("connection reset")
		rows := sqlmock.NewRows(jobColumns).
			AddRow("Reno", "NV", "Dealers", 9.0, 6.2, 12.1, 25100.0).
			RowError(0, boom)
		mock.ExpectQuery(regexp.QuoteMeta(jobStatsSQL)).WillReturnRows(rows)

		_, err = New(db).FetchJobStats(context.Background())
		assert.ErrorIs(t, err, boom)
	})
}

func TestRepo_FetchRentalEstimates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"city", "state", "bedroom_size", "price_2020_08"}).
		AddRow("Atlanta", "GA", "Studio", 1180.0).
		AddRow("Atlanta", "GA", "1br", 1320.5).
		AddRow("McAllen", "TX", "1br", nil)

	mock.ExpectQuery(regexp.QuoteMeta(rentalEstimatesSQL)).WillReturnRows(rows)

	got, err := New(db).FetchRentalEstimates(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "Atlanta", got[1].City)
	assert.Equal(t, "GA", got[1].State)
	assert.Equal(t, "1br", got[1].BedroomSize)
	assert.Equal(t, 1320.5, got[1].Price)
	assert.Zero(t, got[2].Price)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing()
	assert.NoError(t, New(db).Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
