package domain

import (
	"fmt"
	"strings"
)

// TopJobPerCity keeps, for every city, the row with the highest location
// quotient. Ties keep the earlier row; output follows first-seen city order.
func TopJobPerCity(rows []JobStat) []JobStat {
	out := make([]JobStat, 0, len(rows))
	idx := make(map[string]int, len(rows))

	for _, row := range rows {
		i, ok := idx[row.City]
		if !ok {
			idx[row.City] = len(out)
			out = append(out, row)
			continue
		}
		if row.LocQuotient > out[i].LocQuotient {
			out[i] = row
		}
	}
	return out
}

// WithWageData drops rows without an annual wage.
func WithWageData(rows []JobStat) []JobStat {
	out := make([]JobStat, 0, len(rows))
	for _, row := range rows {
		if row.AnnualWage != 0 {
			out = append(out, row)
		}
	}
	return out
}

// MatchJobs returns every eligible row whose city contains key.City and whose
// state contains key.StateCode. Ambiguous substrings return several rows.
func MatchJobs(key Place, rows []JobStat) ([]JobStat, error) {
	eligible := WithWageData(TopJobPerCity(rows))

	var matched []JobStat
	for _, row := range eligible {
		if strings.Contains(row.City, key.City) && strings.Contains(row.State, key.StateCode) {
			matched = append(matched, row)
		}
	}

	if len(matched) == 0 {
		return nil, ErrNotFoundMeta(
			fmt.Sprintf("%s, %s not found!", key.City, key.StateCode),
			map[string]string{"city": key.City, "state": key.StateCode},
		)
	}
	return matched, nil
}

// MatchRentals validates that key.City and key.StateCode are both known to the
// dataset (city first) and returns every row for the city. The state only
// gates existence; rows are not filtered by it.
func MatchRentals(key Place, rows []RentalEstimate) ([]RentalEstimate, error) {
	cities := make(map[string]struct{}, len(rows))
	states := make(map[string]struct{})
	for _, row := range rows {
		cities[row.City] = struct{}{}
		states[row.State] = struct{}{}
	}

	if _, ok := cities[key.City]; !ok {
		return nil, ErrNotFoundMeta(
			fmt.Sprintf("City name \"%s\" not found!", key.City),
			map[string]string{"city": key.City},
		)
	}
	if _, ok := states[key.StateCode]; !ok {
		return nil, ErrNotFoundMeta(
			fmt.Sprintf("State code \"%s\" not found!", key.StateCode),
			map[string]string{"state": key.StateCode},
		)
	}

	var subset []RentalEstimate
	for _, row := range rows {
		if row.City == key.City {
			subset = append(subset, row)
		}
	}
	return subset, nil
}
