package domain

// JobStat is one row of the BLS occupational employment dataset.
type JobStat struct {
	City        string
	State       string
	OccTitle    string
	Jobs1000    float64
	LocQuotient float64
	HourlyWage  float64
	AnnualWage  float64
}

// RentalEstimate is one row of the rental price dataset: a city's estimated
// rent for a bedroom size.
type RentalEstimate struct {
	City        string
	State       string
	BedroomSize string
	Price       float64
}
