package yearseries

import (
	"errors"
	"fmt"
)

var (
	ErrNoData             = errors.New("no yearly data")
	ErrNonMonotonic       = errors.New("years are not strictly increasing")
	ErrDatasetLenMismatch = errors.New("years have a different length than values")
)

// Point is a single yearly observation.
type Point struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// YearSeries stores one value per calendar year as index aligned slices. Years are unique and
// sorted ascending.
type YearSeries struct {
	Years  []int     `json:"years"`
	Values []float64 `json:"values"`
}

// NewYearSeries returns an instance of a YearSeries given a year and value slice. The inputs are
// copied.
func NewYearSeries(years []int, values []float64) (*YearSeries, error) {
	if len(values) == 0 {
		return nil, ErrNoData
	}
	if len(years) != len(values) {
		return nil, fmt.Errorf(
			"years has length of %d, but values has a length of %d, %w",
			len(years), len(values), ErrDatasetLenMismatch,
		)
	}

	for i := 1; i < len(years); i++ {
		if years[i] <= years[i-1] {
			return nil, fmt.Errorf("non-monotonic at %d, %w", i, ErrNonMonotonic)
		}
	}

	ys := &YearSeries{
		Years:  make([]int, len(years)),
		Values: make([]float64, len(values)),
	}
	copy(ys.Years, years)
	copy(ys.Values, values)
	return ys, nil
}

// NewFromPoints builds a YearSeries from points already sorted by year.
func NewFromPoints(points []Point) (*YearSeries, error) {
	years := make([]int, len(points))
	values := make([]float64, len(points))
	for i, p := range points {
		years[i] = p.Year
		values[i] = p.Value
	}
	return NewYearSeries(years, values)
}

func (ys *YearSeries) Copy() *YearSeries {
	if ys == nil {
		return nil
	}
	years := make([]int, len(ys.Years))
	values := make([]float64, len(ys.Values))
	copy(years, ys.Years)
	copy(values, ys.Values)
	return &YearSeries{
		Years:  years,
		Values: values,
	}
}

func (ys *YearSeries) Len() int {
	if ys == nil {
		return 0
	}
	return len(ys.Years)
}

// Points returns the series as a slice of year/value pairs.
func (ys *YearSeries) Points() []Point {
	n := ys.Len()
	points := make([]Point, n)
	for i := 0; i < n; i++ {
		points[i] = Point{Year: ys.Years[i], Value: ys.Values[i]}
	}
	return points
}

// Latest returns the last point of the series.
func (ys *YearSeries) Latest() (Point, bool) {
	n := ys.Len()
	if n == 0 {
		return Point{}, false
	}
	return Point{Year: ys.Years[n-1], Value: ys.Values[n-1]}, true
}

// IndexAtOrAfter returns the index of the first year greater than or equal to year, or -1 if
// every year is earlier.
func (ys *YearSeries) IndexAtOrAfter(year int) int {
	for i := 0; i < ys.Len(); i++ {
		if ys.Years[i] >= year {
			return i
		}
	}
	return -1
}

// Head returns a copy of the first n points. n larger than the series returns all of it.
func (ys *YearSeries) Head(n int) *YearSeries {
	return ys.slice(0, min(max(n, 0), ys.Len()))
}

// Tail returns a copy of the last n points. n larger than the series returns all of it.
func (ys *YearSeries) Tail(n int) *YearSeries {
	l := ys.Len()
	return ys.slice(l-min(max(n, 0), l), l)
}

func (ys *YearSeries) slice(start, end int) *YearSeries {
	years := make([]int, end-start)
	values := make([]float64, end-start)
	if ys != nil {
		copy(years, ys.Years[start:end])
		copy(values, ys.Values[start:end])
	}
	return &YearSeries{
		Years:  years,
		Values: values,
	}
}
