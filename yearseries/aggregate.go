package yearseries

import (
	"sort"

	"github.com/aouyang1/go-oceanheat/csvseries"
	"gonum.org/v1/gonum/floats"
)

// Aggregate buckets samples by calendar year and reduces each bucket to its unweighted mean.
// The resulting series is sorted by year. An empty input returns nil.
func Aggregate(samples []csvseries.Sample) *YearSeries {
	if len(samples) == 0 {
		return nil
	}

	buckets := make(map[int][]float64)
	for _, s := range samples {
		buckets[s.Year] = append(buckets[s.Year], s.Value)
	}

	years := make([]int, 0, len(buckets))
	for year := range buckets {
		years = append(years, year)
	}
	sort.Ints(years)

	values := make([]float64, len(years))
	for i, year := range years {
		bucket := buckets[year]
		values[i] = floats.Sum(bucket) / float64(len(bucket))
	}

	return &YearSeries{
		Years:  years,
		Values: values,
	}
}
