package stats

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"
)

var (
	ErrDegenerateX        = errors.New("all x values are identical, slope is undefined")
	ErrInsufficientPoints = errors.New("insufficient points to fit a line")
)

// MinRegressionPoints is the smallest point set Slope will fit. Smaller sets have a slope of 0.
const MinRegressionPoints = 3

// Point is a single x/y observation used for regression.
type Point struct {
	X float64
	Y float64
}

// NewPoints zips index aligned x and y slices into points. The shorter slice bounds the result.
func NewPoints(x []float64, y []float64) []Point {
	n := min(len(x), len(y))
	points := make([]Point, n)
	for i := 0; i < n; i++ {
		points[i] = Point{X: x[i], Y: y[i]}
	}
	return points
}

// Slope computes the ordinary least squares slope of points in a single pass,
//
//	slope = (n*Sxy - Sx*Sy) / (n*Sxx - Sx*Sx)
//
// Fewer than MinRegressionPoints points return 0. x is shifted by the first point to keep the
// sums small for calendar years which does not change the slope.
func Slope(points []Point) (float64, error) {
	if len(points) < MinRegressionPoints {
		return 0, nil
	}

	n := float64(len(points))
	x0 := points[0].X

	var sumX, sumY, sumXY, sumXX float64
	for _, p := range points {
		x := p.X - x0
		sumX += x
		sumY += p.Y
		sumXY += x * p.Y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, fmt.Errorf("%d points at x=%v, %w", len(points), x0, ErrDegenerateX)
	}
	return (n*sumXY - sumX*sumY) / denom, nil
}

// Line is a fitted y = Intercept + Slope*x along with its coefficient of determination.
type Line struct {
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
	R2        float64 `json:"r2"`
}

// At evaluates the line at x.
func (l Line) At(x float64) float64 {
	return l.Intercept + l.Slope*x
}

// FitLine fits an intercept and slope to points. It requires the same minimum number of points
// as Slope.
func FitLine(points []Point) (Line, error) {
	if len(points) < MinRegressionPoints {
		return Line{}, fmt.Errorf("got %d points, need %d, %w", len(points), MinRegressionPoints, ErrInsufficientPoints)
	}

	x := make([]float64, len(points))
	y := make([]float64, len(points))
	for i, p := range points {
		x[i] = p.X
		y[i] = p.Y
	}

	if _, err := Slope(points); err != nil {
		return Line{}, err
	}

	alpha, beta := stat.LinearRegression(x, y, nil, false)
	return Line{
		Intercept: alpha,
		Slope:     beta,
		R2:        stat.RSquared(x, y, nil, alpha, beta),
	}, nil
}
