package yearseries

func (ys *YearSeries) StartYear() int {
	if ys.Len() < 1 {
		return 0
	}
	return ys.Years[0]
}

func (ys *YearSeries) EndYear() int {
	n := ys.Len()
	if n < 1 {
		return 0
	}
	return ys.Years[n-1]
}

// Span returns the number of calendar years covered from the first to the last point,
// inclusive.
func (ys *YearSeries) Span() int {
	if ys.Len() < 1 {
		return 0
	}
	return ys.EndYear() - ys.StartYear() + 1
}

// Gaps returns the years between the first and last point that have no value.
func (ys *YearSeries) Gaps() []int {
	var gaps []int
	for i := 1; i < ys.Len(); i++ {
		for y := ys.Years[i-1] + 1; y < ys.Years[i]; y++ {
			gaps = append(gaps, y)
		}
	}
	return gaps
}
