package report

import (
	"bytes"
	"math"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/calorietrack/calorie-api/internal/core/domain"
)

const (
	chartDPI          = 100.0
	chartBaseWidthIn  = 6.0
	chartPerTickIn    = 0.2
	chartHeightIn     = 4.0
	chartTickDays     = 15
	// maxChartTicks bounds the image width for arbitrarily wide date spans.
	maxChartTicks = 60
	secondsPerDay = 24 * 60 * 60
)

// lineChart is a rendered PNG along with its size in inches.
type lineChart struct {
	PNG      []byte
	WidthIn  float64
	HeightIn float64
}

// renderChart draws calories over time as a blue line. rows must be sorted
// ascending. An empty input still yields an image with empty axes.
func renderChart(rows []domain.IntakeRecord) (*lineChart, error) {
	xs := make([]time.Time, 0, len(rows))
	ys := make([]float64, 0, len(rows))
	maxY := 0.0
	for _, r := range rows {
		xs = append(xs, r.Date)
		ys = append(ys, float64(r.Calories))
		maxY = math.Max(maxY, float64(r.Calories))
	}

	style := chart.Style{StrokeColor: drawing.ColorBlue, StrokeWidth: 2}
	if len(rows) == 0 {
		// go-chart refuses a series without values.
		xs = append(xs, time.Now().UTC().Truncate(24*time.Hour))
		ys = append(ys, 0)
		style.StrokeColor = drawing.ColorTransparent
	}

	first, last := xs[0], xs[len(xs)-1]
	if !last.After(first) {
		first = first.Add(-24 * time.Hour)
		last = last.Add(24 * time.Hour)
	}

	ticks := dateTicks(first, last)
	widthIn := chartBaseWidthIn + chartPerTickIn*float64(len(ticks))

	yMax := maxY * 1.1
	if yMax == 0 {
		yMax = 1
	}

	graph := chart.Chart{
		Width:  int(widthIn * chartDPI),
		Height: int(chartHeightIn * chartDPI),
		DPI:    chartDPI,
		XAxis: chart.XAxis{
			Name:      "Date",
			Ticks:     ticks,
			TickStyle: chart.Style{TextRotationDegrees: 45.0},
		},
		YAxis: chart.YAxis{
			Name:  "Calories",
			Range: &chart.ContinuousRange{Min: 0, Max: yMax},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Calories",
				XValues: dayNumbers(xs),
				YValues: ys,
				Style:   style,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return &lineChart{PNG: buf.Bytes(), WidthIn: widthIn, HeightIn: chartHeightIn}, nil
}

// dateTicks places a labelled major tick every 15 days starting at from and
// ending on the first tick at or past to. Spans that would need more than
// maxChartTicks ticks use a wider step, still a multiple of 15 days. The x
// range spans the ticks, so from must be before to.
func dateTicks(from, to time.Time) []chart.Tick {
	span := int64(math.Ceil(dayNumber(to) - dayNumber(from)))
	step := int64(chartTickDays)
	if span > step*(maxChartTicks-1) {
		step = (span + maxChartTicks - 2) / (maxChartTicks - 1)
		step = (step + chartTickDays - 1) / chartTickDays * chartTickDays
	}

	var ticks []chart.Tick
	for d := from; ; d = d.AddDate(0, 0, int(step)) {
		ticks = append(ticks, chart.Tick{Value: dayNumber(d), Label: d.Format(domain.DateLayout)})
		if !d.Before(to) {
			return ticks
		}
	}
}

// dayNumber is t in days since the Unix epoch. Unlike UnixNano it is defined
// for every year ParseDate accepts.
func dayNumber(t time.Time) float64 {
	return float64(t.Unix()) / secondsPerDay
}

func dayNumbers(ts []time.Time) []float64 {
	out := make([]float64, len(ts))
	for i, t := range ts {
		out[i] = dayNumber(t)
	}
	return out
}
