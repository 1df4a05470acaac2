package oceanheat

import (
	"fmt"
	"math"

	"github.com/aouyang1/go-oceanheat/impact"
	"github.com/aouyang1/go-oceanheat/yearseries"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// LineHeatContent generates an echart line chart of a yearly series. Each point is labeled with
// its bomb equivalent above the chart reference. A trend of the same length as the series is
// drawn as a second line, a nil trend is skipped.
func LineHeatContent(s *yearseries.YearSeries, trend []float64, opt *impact.Options) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title:    "Ocean Heat Content",
				Subtitle: fmt.Sprintf("%d to %d", s.StartYear(), s.EndYear()),
			},
		),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Year"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Ocean Heat Content (ZJ)"}),
	)

	lineData := make([]opts.LineData, 0, s.Len())
	for _, v := range s.Values {
		lineData = append(lineData, opts.LineData{
			Name:  fmt.Sprintf("%d Hiroshima bombs", impact.BombsAboveReference(v, opt)),
			Value: round1(v),
		})
	}

	line.SetXAxis(s.Years).AddSeries("Ocean Heat Content (ZJ)", lineData)

	if len(trend) == s.Len() {
		trendData := make([]opts.LineData, 0, len(trend))
		for _, v := range trend {
			trendData = append(trendData, opts.LineData{Value: round1(v)})
		}
		line.AddSeries("Trend", trendData)
	}
	return line
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
