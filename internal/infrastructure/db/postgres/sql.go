package postgres

import (
	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// jobStatsSQL keeps the highest location quotient row per city.
var jobStatsSQL = mustSQL(
	psql.Select(
		"j.city", "j.state", "j.occ_title",
		"j.jobs_1000", "j.loc_quotient", "j.hourly_wage", "j.annual_wage",
	).
		Options("DISTINCT ON (j.city)").
		From("bls_jobs j").
		OrderBy("j.city", "j.loc_quotient DESC"),
)

var rentalEstimatesSQL = mustSQL(
	psql.Select("city", `"state"`, "bedroom_size", "price_2020_08").
		From("rp_clean1"),
)

// mustSQL renders a fixed, parameterless statement once at startup.
func mustSQL(b sq.SelectBuilder) string {
	query, args, err := b.ToSql()
	if err != nil {
		panic(err)
	}
	if len(args) != 0 {
		panic("postgres: fixed query must not take arguments")
	}
	return query
}
