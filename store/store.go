package store

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/aouyang1/go-oceanheat/csvseries"
	"github.com/aouyang1/go-oceanheat/source"
	"github.com/aouyang1/go-oceanheat/yearseries"
	"go.uber.org/zap"
)

var (
	ErrFetch     = errors.New("unable to retrieve data")
	ErrEmptyData = errors.New("no valid data found in CSV")
	ErrNotLoaded = errors.New("no data has been loaded yet")
	ErrNoSource  = errors.New("no data source configured")
)

// LoadError is returned by Load when a load attempt fails. The previously loaded series is
// kept.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load ocean heat data: %v", e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

type snapshot struct {
	series   *yearseries.YearSeries
	loadedAt time.Time
}

// Store holds the most recently loaded yearly series. The series is replaced as a whole on
// every successful load and never mutated in place.
type Store struct {
	src    source.Fetcher
	opt    *csvseries.Options
	logger *zap.SugaredLogger
	now    func() time.Time

	current atomic.Pointer[snapshot]
}

// New creates a store reading from src. A nil opt uses the default csv options and a nil logger
// discards output.
func New(src source.Fetcher, opt *csvseries.Options, logger *zap.SugaredLogger) (*Store, error) {
	if src == nil {
		return nil, ErrNoSource
	}
	if opt == nil {
		opt = csvseries.NewDefaultOptions()
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Store{
		src:    src,
		opt:    opt,
		logger: logger,
		now:    time.Now,
	}, nil
}

// Load fetches, parses and aggregates the source and swaps the result in. Concurrent loads race
// and the last one to finish successfully wins.
func (s *Store) Load(ctx context.Context) (*yearseries.YearSeries, error) {
	start := s.now()
	s.logger.Debugw("loading series", "source", fmt.Sprint(s.src))

	text, err := s.src.Fetch(ctx)
	if err != nil {
		s.logger.Errorw("data loading error", "error", err)
		return nil, &LoadError{Err: fmt.Errorf("%w, %w", ErrFetch, err)}
	}

	if header, mismatch := csvseries.HeaderMismatch(text, s.opt); mismatch {
		s.logger.Warnw("unexpected csv header", "header", header, "expected", s.opt.Header)
	}

	samples := csvseries.Parse(text, s.opt)
	series := yearseries.Aggregate(samples)
	if series.Len() == 0 {
		s.logger.Errorw("data loading error", "error", ErrEmptyData)
		return nil, &LoadError{Err: ErrEmptyData}
	}

	s.current.Store(&snapshot{series: series, loadedAt: s.now()})
	s.logger.Infow("loaded series",
		"samples", len(samples),
		"years", series.Len(),
		"start_year", series.StartYear(),
		"end_year", series.EndYear(),
		"duration", s.now().Sub(start),
	)
	return series.Copy(), nil
}

// Current returns a copy of the loaded series.
func (s *Store) Current() (*yearseries.YearSeries, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNotLoaded
	}
	return snap.series.Copy(), nil
}

// Snapshot returns a copy of the loaded series together with the completion time of the load
// that produced it.
func (s *Store) Snapshot() (*yearseries.YearSeries, time.Time, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, time.Time{}, ErrNotLoaded
	}
	return snap.series.Copy(), snap.loadedAt, nil
}

func (s *Store) Loaded() bool {
	return s.current.Load() != nil
}

// LoadedAt returns the completion time of the load that produced the current series, or the
// zero time if nothing is loaded.
func (s *Store) LoadedAt() time.Time {
	snap := s.current.Load()
	if snap == nil {
		return time.Time{}
	}
	return snap.loadedAt
}
