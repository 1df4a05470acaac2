package oceanheat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aouyang1/go-oceanheat/impact"
	"github.com/aouyang1/go-oceanheat/source"
	"github.com/aouyang1/go-oceanheat/stats"
	"github.com/aouyang1/go-oceanheat/store"
	"github.com/aouyang1/go-oceanheat/yearseries"
	"github.com/go-echarts/go-echarts/v2/components"
	"go.uber.org/zap"
)

// RemediationHint is appended to load failure messages shown to users.
const RemediationHint = "Refresh the page or check the server logs for details."

// Analyzer loads an ocean heat content series and derives its summary statistics. Statistics
// are computed from the currently loaded series on every call and never cached.
type Analyzer struct {
	opt    *Options
	store  *store.Store
	logger *zap.SugaredLogger
}

// New creates an Analyzer reading from src. If no options are provided a default is used.
func New(src source.Fetcher, opt *Options, logger *zap.SugaredLogger) (*Analyzer, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	s, err := store.New(src, opt.CSVOptions, logger.Named("store"))
	if err != nil {
		return nil, fmt.Errorf("unable to initialize series store, %w", err)
	}
	return &Analyzer{
		opt:    opt,
		store:  s,
		logger: logger,
	}, nil
}

// Reload runs the full load pipeline and returns the statistics of the new series. On failure
// the previous series stays loaded.
func (a *Analyzer) Reload(ctx context.Context) (*impact.Stats, error) {
	if _, err := a.store.Load(ctx); err != nil {
		return nil, err
	}
	return a.ImpactStats()
}

// Loaded reports whether any load has succeeded.
func (a *Analyzer) Loaded() bool {
	return a.store.Loaded()
}

// Series returns a copy of the loaded series.
func (a *Analyzer) Series() (*yearseries.YearSeries, error) {
	return a.store.Current()
}

// Years returns the years of the loaded series, index aligned with Values.
func (a *Analyzer) Years() ([]int, error) {
	s, err := a.store.Current()
	if err != nil {
		return nil, err
	}
	return s.Years, nil
}

// Values returns the yearly values of the loaded series, index aligned with Years.
func (a *Analyzer) Values() ([]float64, error) {
	s, err := a.store.Current()
	if err != nil {
		return nil, err
	}
	return s.Values, nil
}

// ImpactStats returns the total heat gained since the baseline year and the trend acceleration.
func (a *Analyzer) ImpactStats() (*impact.Stats, error) {
	s, err := a.store.Current()
	if err != nil {
		return nil, err
	}
	return impact.ComputeStats(s, a.opt.ImpactOptions)
}

// PersonalImpact returns the heat gained since birthYear. It is cheap enough to call on every
// change of the birth year input.
func (a *Analyzer) PersonalImpact(birthYear int) (*impact.Personal, error) {
	s, err := a.store.Current()
	if err != nil {
		return nil, err
	}
	return impact.ComputePersonal(s, birthYear, a.opt.ImpactOptions)
}

// TrendLine fits a straight line through the whole loaded series.
func (a *Analyzer) TrendLine() (stats.Line, error) {
	s, err := a.store.Current()
	if err != nil {
		return stats.Line{}, err
	}
	return fitSeries(s)
}

// ErrorMessage converts an error from the Analyzer into a single human readable message.
func (a *Analyzer) ErrorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, store.ErrNotLoaded):
		return "Data Load Error: ocean heat data has not been loaded yet. " + RemediationHint
	default:
		return fmt.Sprintf("Data Load Error: %v. %s", err, RemediationHint)
	}
}

// RenderChart writes an html page charting the loaded series and its trend line.
func (a *Analyzer) RenderChart(w io.Writer) error {
	s, err := a.store.Current()
	if err != nil {
		return err
	}

	var trend []float64
	if line, err := fitSeries(s); err == nil {
		trend = make([]float64, s.Len())
		for i, year := range s.Years {
			trend[i] = line.At(float64(year))
		}
	} else {
		a.logger.Debugw("skipping trend overlay", "error", err)
	}

	page := components.NewPage()
	page.AddCharts(LineHeatContent(s, trend, a.opt.ImpactOptions))
	return page.Render(w)
}

// PlotSeries uses the Apache Echarts library to generate an html file of the loaded series.
func (a *Analyzer) PlotSeries(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return a.RenderChart(file)
}

func fitSeries(s *yearseries.YearSeries) (stats.Line, error) {
	return stats.FitLine(seriesPoints(s))
}

func seriesPoints(s *yearseries.YearSeries) []stats.Point {
	x := make([]float64, s.Len())
	for i, year := range s.Years {
		x[i] = float64(year)
	}
	return stats.NewPoints(x, s.Values)
}
