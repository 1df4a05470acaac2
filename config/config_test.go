package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aouyang1/go-oceanheat/csvseries"
	"github.com/aouyang1/go-oceanheat/impact"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefault(t *testing.T) {
	cfg, err := Load("")
	require.Nil(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, DefaultDataFile, cfg.Source.Location)
	assert.Equal(t, 2005, cfg.Analysis.BaselineYear)
	assert.Equal(t, 50.0, cfg.Analysis.MinAcceleration)
	require.Nil(t, cfg.Validate())
}

func TestParse(t *testing.T) {
	testData := map[string]struct {
		yaml   string
		check  func(t *testing.T, cfg *Config)
		hasErr bool
	}{
		"overrides": {
			yaml: `
source:
  location: https://example.com/ohc.csv
  timeout: 5s
csv:
  schema: date
  header: date,ohc
analysis:
  baseline_year: 1990
  min_acceleration: 25
http:
  listen_addr: ":9090"
debug: true
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "https://example.com/ohc.csv", cfg.Source.Location)
				assert.Equal(t, 5*time.Second, cfg.Source.Timeout)
				assert.Equal(t, 1990, cfg.Analysis.BaselineYear)
				assert.Equal(t, 25.0, cfg.Analysis.MinAcceleration)
				assert.Equal(t, impact.DefaultWindowSize, cfg.Analysis.WindowSize, "unset keys keep defaults")
				assert.Equal(t, ":9090", cfg.HTTP.ListenAddr)
				assert.True(t, cfg.Debug)

				opt, err := cfg.CSVOptions()
				require.Nil(t, err)
				assert.Equal(t, &csvseries.Options{Schema: csvseries.SchemaDate, Header: "date,ohc"}, opt)
			},
		},
		"bad schema": {
			yaml:   "csv:\n  schema: xml\n",
			hasErr: true,
		},
		"bad window": {
			yaml:   "analysis:\n  window_size: 0\n",
			hasErr: true,
		},
		"empty location": {
			yaml:   "source:\n  location: \"\"\n",
			hasErr: true,
		},
		"not yaml": {
			yaml:   "source: [",
			hasErr: true,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			err := Parse([]byte(td.yaml), cfg)
			if td.hasErr {
				assert.NotNil(t, err)
				return
			}
			require.Nil(t, err)
			td.check(t, cfg)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oceanheat.yaml")
	require.Nil(t, os.WriteFile(path, []byte("analysis:\n  baseline_year: 2010\n"), 0o644))

	cfg, err := Load(path)
	require.Nil(t, err)
	assert.Equal(t, 2010, cfg.Analysis.BaselineYear)

	impactOpt := cfg.ImpactOptions()
	impactOpt.BaselineYear = 1
	assert.Equal(t, 2010, cfg.Analysis.BaselineYear, "impact options are a copy")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.Nil(t, os.WriteFile(path, []byte("analysis:\n  energy_zj_per_year: -1\n"), 0o644))
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, err, impact.ErrInvalidOptions)
}
