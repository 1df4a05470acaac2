package oceanheat

import (
	"time"

	"github.com/aouyang1/go-oceanheat/impact"
	"github.com/aouyang1/go-oceanheat/stats"
)

// Report is a serializable snapshot of everything the presentation layer displays.
type Report struct {
	Years    []int            `json:"years"`
	Values   []float64        `json:"values"`
	Stats    *impact.Stats    `json:"stats"`
	Personal *impact.Personal `json:"personal,omitempty"`
	Trend    *stats.Line      `json:"trend,omitempty"`
	Scores   *stats.Scores    `json:"trend_scores,omitempty"`
	LoadedAt time.Time        `json:"loaded_at"`
}

// Report gathers the loaded series, its statistics and the trend line. A non nil birthYear adds
// the personal impact for that year.
func (a *Analyzer) Report(birthYear *int) (*Report, error) {
	s, loadedAt, err := a.store.Snapshot()
	if err != nil {
		return nil, err
	}

	st, err := impact.ComputeStats(s, a.opt.ImpactOptions)
	if err != nil {
		return nil, err
	}

	r := &Report{
		Years:    s.Years,
		Values:   s.Values,
		Stats:    st,
		LoadedAt: loadedAt,
	}

	if line, err := fitSeries(s); err == nil {
		r.Trend = &line
		if scores, err := stats.ScoreLine(line, seriesPoints(s)); err == nil {
			r.Scores = scores
		}
	}

	if birthYear != nil {
		p, err := impact.ComputePersonal(s, *birthYear, a.opt.ImpactOptions)
		if err != nil {
			return nil, err
		}
		r.Personal = p
	}
	return r, nil
}
