package impact

import (
	"errors"
	"fmt"
)

var ErrInvalidOptions = errors.New("invalid impact options")

const (
	DefaultBaselineYear    = 2005
	DefaultMinAcceleration = 50.0
	DefaultWindowSize      = 15

	// DefaultBombsPerZJ is the number of Hiroshima sized bombs per zettajoule.
	DefaultBombsPerZJ = 16.0
	// DefaultEnergyZJPerYear is the yearly global primary energy consumption in zettajoules.
	DefaultEnergyZJPerYear = 0.6
	// DefaultChartReferenceZJ is the heat content treated as zero when values are expressed as
	// bomb equivalents on a chart.
	DefaultChartReferenceZJ = 8.5
)

// Options configures the impact calculations.
type Options struct {
	// BaselineYear is the reference year the total heat gain is measured from.
	BaselineYear int `json:"baseline_year" yaml:"baseline_year"`

	// MinAcceleration floors the reported acceleration percentage.
	MinAcceleration float64 `json:"min_acceleration" yaml:"min_acceleration"`

	// WindowSize is the number of points in the early and recent trend windows.
	WindowSize int `json:"window_size" yaml:"window_size"`

	BombsPerZJ       float64 `json:"bombs_per_zj" yaml:"bombs_per_zj"`
	EnergyZJPerYear  float64 `json:"energy_zj_per_year" yaml:"energy_zj_per_year"`
	ChartReferenceZJ float64 `json:"chart_reference_zj" yaml:"chart_reference_zj"`
}

func NewDefaultOptions() *Options {
	return &Options{
		BaselineYear:     DefaultBaselineYear,
		MinAcceleration:  DefaultMinAcceleration,
		WindowSize:       DefaultWindowSize,
		BombsPerZJ:       DefaultBombsPerZJ,
		EnergyZJPerYear:  DefaultEnergyZJPerYear,
		ChartReferenceZJ: DefaultChartReferenceZJ,
	}
}

// Validate returns the default options for a nil receiver, otherwise checks the configured
// values and returns them.
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		return NewDefaultOptions(), nil
	}
	if o.WindowSize < 1 {
		return nil, fmt.Errorf("window size must be at least 1, got %d, %w", o.WindowSize, ErrInvalidOptions)
	}
	if o.EnergyZJPerYear <= 0 {
		return nil, fmt.Errorf("energy per year must be positive, got %f, %w", o.EnergyZJPerYear, ErrInvalidOptions)
	}
	return o, nil
}
