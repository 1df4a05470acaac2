package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlope(t *testing.T) {
	tol := 1e-9
	testData := map[string]struct {
		points   []Point
		expected float64
		err      error
	}{
		"nil":          {nil, 0, nil},
		"single point": {[]Point{{1, 1}}, 0, nil},
		"two points":   {[]Point{{0, 0}, {1, 5}}, 0, nil},
		"colinear": {
			points:   []Point{{0, 0}, {1, 2}, {2, 4}},
			expected: 2,
		},
		"negative slope": {
			points:   []Point{{0, 3}, {1, 2}, {2, 1}, {3, 0}},
			expected: -1,
		},
		"flat": {
			points:   []Point{{0, 7}, {1, 7}, {2, 7}},
			expected: 0,
		},
		"calendar years": {
			points:   []Point{{1960, 10}, {1961, 10.5}, {1962, 11}, {1963, 11.5}},
			expected: 0.5,
		},
		"noisy least squares": {
			points:   []Point{{1, 1}, {2, 2}, {3, 2}, {4, 4}},
			expected: 0.9,
		},
		"identical x": {
			points: []Point{{5, 1}, {5, 2}, {5, 3}},
			err:    ErrDegenerateX,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res, err := Slope(td.points)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				assert.Equal(t, 0.0, res)
				return
			}
			require.Nil(t, err)
			assert.InDelta(t, td.expected, res, tol)
		})
	}
}

func TestNewPoints(t *testing.T) {
	assert.Equal(t, []Point{{1, 2}, {3, 4}}, NewPoints([]float64{1, 3, 5}, []float64{2, 4}))
	assert.Equal(t, []Point{}, NewPoints(nil, nil))
}

func TestFitLine(t *testing.T) {
	tol := 1e-9
	testData := map[string]struct {
		points    []Point
		intercept float64
		slope     float64
		r2        float64
		err       error
	}{
		"too few points": {
			points: []Point{{0, 0}, {1, 1}},
			err:    ErrInsufficientPoints,
		},
		"identical x": {
			points: []Point{{2, 0}, {2, 1}, {2, 2}},
			err:    ErrDegenerateX,
		},
		"exact line": {
			points:    []Point{{0, 1}, {1, 3}, {2, 5}, {3, 7}},
			intercept: 1,
			slope:     2,
			r2:        1,
		},
		"noisy": {
			points:    []Point{{1, 1}, {2, 2}, {3, 2}, {4, 4}},
			intercept: 0,
			slope:     0.9,
			r2:        0.81 * 5 / 4.75,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			line, err := FitLine(td.points)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.InDelta(t, td.intercept, line.Intercept, tol, "intercept")
			assert.InDelta(t, td.slope, line.Slope, tol, "slope")
			assert.InDelta(t, td.r2, line.R2, tol, "r2")
		})
	}
}

func TestFitLineAgreesWithSlope(t *testing.T) {
	points := []Point{{1990, 3.1}, {1991, 2.7}, {1992, 4.4}, {1993, 5.0}, {1994, 4.8}}
	slope, err := Slope(points)
	require.Nil(t, err)

	line, err := FitLine(points)
	require.Nil(t, err)
	assert.InDelta(t, slope, line.Slope, 1e-9)
	assert.InDelta(t, line.Intercept+line.Slope*1992, line.At(1992), 1e-9)
}
