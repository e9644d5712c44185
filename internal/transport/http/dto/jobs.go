package dto

import "github.com/citystats/citystats-service/internal/domain"

// JobStatResp mirrors the bls_jobs columns.
type JobStatResp struct {
	City        string  `json:"city"`
	State       string  `json:"state"`
	OccTitle    string  `json:"occ_title"`
	Jobs1000    float64 `json:"jobs_1000"`
	LocQuotient float64 `json:"loc_quotient"`
	HourlyWage  float64 `json:"hourly_wage"`
	AnnualWage  float64 `json:"annual_wage"`
}

func ToJobStatResp(j domain.JobStat) JobStatResp {
	return JobStatResp{
		City:        j.City,
		State:       j.State,
		OccTitle:    j.OccTitle,
		Jobs1000:    j.Jobs1000,
		LocQuotient: j.LocQuotient,
		HourlyWage:  j.HourlyWage,
		AnnualWage:  j.AnnualWage,
	}
}

// ToJobStatResps never returns nil so an empty result encodes as [].
func ToJobStatResps(rows []domain.JobStat) []JobStatResp {
	out := make([]JobStatResp, 0, len(rows))
	for _, j := range rows {
		out = append(out, ToJobStatResp(j))
	}
	return out
}
