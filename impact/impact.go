package impact

import (
	"errors"
	"fmt"
	"math"

	"github.com/aouyang1/go-oceanheat/stats"
	"github.com/aouyang1/go-oceanheat/yearseries"
)

var ErrEmptySeries = errors.New("series has no points")

// Stats is the headline summary of a series.
type Stats struct {
	// TotalHeat is the absolute heat gained since the baseline, in ZJ rounded to one decimal.
	TotalHeat float64 `json:"total_heat"`
	// Acceleration is the whole percent change between the early and recent trend, floored at
	// the configured minimum.
	Acceleration float64 `json:"acceleration"`

	BaselineYear int `json:"baseline_year"`
	LatestYear   int `json:"latest_year"`
}

// Personal is the heat gained since a given birth year along with its equivalences.
type Personal struct {
	BirthYear    int `json:"birth_year"`
	BaselineYear int `json:"baseline_year"`

	// Delta is signed, in ZJ rounded to one decimal.
	Delta          float64 `json:"delta"`
	HiroshimaBombs int     `json:"hiroshima_bombs"`
	YearsOfEnergy  float64 `json:"years_of_energy"`
}

// ComputeStats derives the total heat gain since the baseline year and the trend acceleration.
func ComputeStats(s *yearseries.YearSeries, opt *Options) (*Stats, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}

	latest, ok := s.Latest()
	if !ok {
		return nil, ErrEmptySeries
	}
	baseline := baselinePoint(s, opt.BaselineYear)

	acceleration, err := Acceleration(s, opt.WindowSize)
	if err != nil {
		return nil, fmt.Errorf("unable to compute acceleration, %w", err)
	}

	return &Stats{
		TotalHeat:    round1(math.Abs(latest.Value - baseline.Value)),
		Acceleration: math.Max(acceleration, opt.MinAcceleration),
		BaselineYear: baseline.Year,
		LatestYear:   latest.Year,
	}, nil
}

// Acceleration returns the unfloored whole percent change of the trend slope between the first
// and the last window points of the series. The windows overlap when the series is shorter than
// twice the window. A flat early trend reports 0.
func Acceleration(s *yearseries.YearSeries, window int) (float64, error) {
	if s.Len() == 0 {
		return 0, ErrEmptySeries
	}

	earlySlope, err := trendSlope(s.Head(window))
	if err != nil {
		return 0, fmt.Errorf("early window, %w", err)
	}
	recentSlope, err := trendSlope(s.Tail(window))
	if err != nil {
		return 0, fmt.Errorf("recent window, %w", err)
	}

	if earlySlope == 0 {
		return 0, nil
	}
	return roundHalfUp((recentSlope - earlySlope) / math.Abs(earlySlope) * 100), nil
}

// ComputePersonal derives the signed heat gain from the first year at or after birthYear to the
// latest year. Birth years after the series fall back to the first point.
func ComputePersonal(s *yearseries.YearSeries, birthYear int, opt *Options) (*Personal, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}

	latest, ok := s.Latest()
	if !ok {
		return nil, ErrEmptySeries
	}
	baseline := baselinePoint(s, birthYear)

	delta := round1(latest.Value - baseline.Value)
	return &Personal{
		BirthYear:      birthYear,
		BaselineYear:   baseline.Year,
		Delta:          delta,
		HiroshimaBombs: int(roundHalfUp(delta * opt.BombsPerZJ)),
		YearsOfEnergy:  round1(delta / opt.EnergyZJPerYear),
	}, nil
}

// BombsAboveReference expresses a heat content value as bomb equivalents above the chart
// reference level.
func BombsAboveReference(value float64, opt *Options) int {
	if opt == nil {
		opt = NewDefaultOptions()
	}
	return int(roundHalfUp((value - opt.ChartReferenceZJ) * opt.BombsPerZJ))
}

func baselinePoint(s *yearseries.YearSeries, year int) yearseries.Point {
	idx := max(s.IndexAtOrAfter(year), 0)
	return yearseries.Point{Year: s.Years[idx], Value: s.Values[idx]}
}

func trendSlope(s *yearseries.YearSeries) (float64, error) {
	x := make([]float64, s.Len())
	for i, year := range s.Years {
		x[i] = float64(year)
	}
	return stats.Slope(stats.NewPoints(x, s.Values))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// roundHalfUp rounds halves towards positive infinity.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
