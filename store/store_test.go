package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aouyang1/go-oceanheat/csvseries"
	"github.com/aouyang1/go-oceanheat/source"
	"github.com/aouyang1/go-oceanheat/yearseries"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// swapSource returns whatever text or error is currently set.
type swapSource struct {
	mu   sync.Mutex
	text string
	err  error
}

func (s *swapSource) set(text string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text, s.err = text, err
}

func (s *swapSource) Fetch(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text, s.err
}

func TestNew(t *testing.T) {
	_, err := New(nil, nil, nil)
	assert.ErrorIs(t, err, ErrNoSource)

	s, err := New(source.Static{}, nil, nil)
	require.Nil(t, err)
	assert.False(t, s.Loaded())
	assert.True(t, s.LoadedAt().IsZero())
}

func TestLoad(t *testing.T) {
	testData := map[string]struct {
		src      source.Fetcher
		expected *yearseries.YearSeries
		err      error
	}{
		"monthly data": {
			src: source.Static{Text: "date,ohc\n2001-01-01,1.0\n2001-06-01,3.0\n2002-01-01,5.0\n"},
			expected: &yearseries.YearSeries{
				Years:  []int{2001, 2002},
				Values: []float64{2.0, 5.0},
			},
		},
		"header only": {
			src: source.Static{Text: "date,ohc\n"},
			err: ErrEmptyData,
		},
		"only malformed rows": {
			src: source.Static{Text: "date,ohc\nfoo,bar\n"},
			err: ErrEmptyData,
		},
		"fetch failure": {
			src: source.Static{Err: assert.AnError},
			err: ErrFetch,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			s, err := New(td.src, nil, nil)
			require.Nil(t, err)

			res, err := s.Load(context.Background())
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)

				var loadErr *LoadError
				assert.True(t, errors.As(err, &loadErr))
				assert.Contains(t, err.Error(), "failed to load ocean heat data")

				_, err = s.Current()
				assert.ErrorIs(t, err, ErrNotLoaded)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected, res)

			cur, err := s.Current()
			require.Nil(t, err)
			assert.Equal(t, td.expected, cur)
			assert.True(t, s.Loaded())
		})
	}
}

func TestFetchErrorKeepsCause(t *testing.T) {
	s, err := New(source.Static{Err: assert.AnError}, nil, nil)
	require.Nil(t, err)

	_, err = s.Load(context.Background())
	assert.ErrorIs(t, err, ErrFetch)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestSnapshot(t *testing.T) {
	src := &swapSource{text: "year,ohc\n2000,1\n"}
	s, err := New(src, nil, nil)
	require.Nil(t, err)

	_, loadedAt, err := s.Snapshot()
	require.ErrorIs(t, err, ErrNotLoaded)
	assert.True(t, loadedAt.IsZero())

	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	for i, text := range []string{"year,ohc\n2000,1\n", "year,ohc\n2000,1\n2001,2\n"} {
		clock = clock.Add(time.Hour)
		src.set(text, nil)
		loaded, err := s.Load(context.Background())
		require.Nil(t, err)

		series, loadedAt, err := s.Snapshot()
		require.Nil(t, err)
		assert.Equal(t, loaded, series)
		assert.Equal(t, clock, loadedAt, "load %d", i)
		assert.Equal(t, s.LoadedAt(), loadedAt)

		// the returned series is a copy
		series.Values[0] = -1
		cur, err := s.Current()
		require.Nil(t, err)
		assert.Equal(t, 1.0, cur.Values[0])
	}
}

func TestReloadAtomicity(t *testing.T) {
	src := &swapSource{text: "year,ohc\n2000,1\n2001,2\n"}
	s, err := New(src, &csvseries.Options{Schema: csvseries.SchemaYear}, nil)
	require.Nil(t, err)

	_, err = s.Current()
	require.ErrorIs(t, err, ErrNotLoaded)

	first, err := s.Load(context.Background())
	require.Nil(t, err)
	loadedAt := s.LoadedAt()

	src.set("", assert.AnError)
	_, err = s.Load(context.Background())
	require.ErrorIs(t, err, ErrFetch)

	cur, err := s.Current()
	require.Nil(t, err)
	assert.Equal(t, first, cur)
	assert.Equal(t, loadedAt, s.LoadedAt())

	src.set("year,ohc\n", nil)
	_, err = s.Load(context.Background())
	require.ErrorIs(t, err, ErrEmptyData)

	cur, err = s.Current()
	require.Nil(t, err)
	assert.Equal(t, first, cur)

	src.set("year,ohc\n1990,7\n", nil)
	_, err = s.Load(context.Background())
	require.Nil(t, err)

	cur, err = s.Current()
	require.Nil(t, err)
	assert.Equal(t, []int{1990}, cur.Years, "reload replaces instead of merging")
}

func TestCurrentIsReadOnly(t *testing.T) {
	s, err := New(source.Static{Text: "year,ohc\n2000,1\n"}, nil, nil)
	require.Nil(t, err)
	_, err = s.Load(context.Background())
	require.Nil(t, err)

	cur, err := s.Current()
	require.Nil(t, err)
	cur.Values[0] = 100

	again, err := s.Current()
	require.Nil(t, err)
	assert.Equal(t, 1.0, again.Values[0])
}

func TestConcurrentLoads(t *testing.T) {
	s, err := New(source.Static{Text: "year,ohc\n2000,1\n2001,2\n"}, nil, nil)
	require.Nil(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Load(context.Background())
			assert.Nil(t, err)
			_, err = s.Current()
			assert.Nil(t, err)
		}()
	}
	wg.Wait()

	cur, err := s.Current()
	require.Nil(t, err)
	assert.Equal(t, []int{2000, 2001}, cur.Years)
}

func TestHeaderWarning(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	s, err := New(
		source.Static{Text: "time,value\n2000,1\n"},
		&csvseries.Options{Header: "date,ohc"},
		zap.New(core).Sugar(),
	)
	require.Nil(t, err)

	_, err = s.Load(context.Background())
	require.Nil(t, err)
	assert.Equal(t, 1, logs.FilterMessage("unexpected csv header").Len())
}
