package ui

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"reviewlens/internal/core/chart"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Plot is a rendered line chart plus its legend
type Plot struct {
	Width  int
	Height int
	Max    int64
	Lines  []Line
	// SVG is the chart markup, empty when there is nothing to draw
	SVG template.HTML
}

// Line is one series of the legend
type Line struct {
	Key   string
	Label string
	Color string
	Total int64
}

const (
	fallbackColor = "#888888"
	tickShort     = "Jan 2"
	tickLong      = "Jan 2006"
)

// LinePlot draws rows as an SVG line chart, one series per key
func LinePlot(rows []chart.BucketedRow, keys []string, colors map[string]string, width, height int) (Plot, error) {
	p := Plot{Width: width, Height: height}
	if len(rows) == 0 || len(keys) == 0 || width <= 0 || height <= 0 {
		return p, nil
	}

	xs := make([]time.Time, len(rows))
	for i, r := range rows {
		xs[i] = r.Date
	}
	series := make([]gochart.Series, 0, len(keys))
	for _, k := range keys {
		ys := make([]float64, len(rows))
		var total int64
		for i, r := range rows {
			v := r.Counts[k]
			total += v
			ys[i] = float64(v)
			if v > p.Max {
				p.Max = v
			}
		}
		line := Line{Key: k, Label: Label(k), Color: colorFor(k, colors), Total: total}
		p.Lines = append(p.Lines, line)
		series = append(series, gochart.TimeSeries{
			Name:    line.Label,
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeColor: hexColor(line.Color),
				StrokeWidth: 2,
			},
		})
	}

	lo, hi := xs[0], xs[len(xs)-1]
	if !hi.After(lo) {
		lo, hi = lo.Add(-12*time.Hour), hi.Add(12*time.Hour)
	}
	layout := tickShort
	if hi.Sub(lo) > 180*24*time.Hour {
		layout = tickLong
	}
	// go-chart refuses a zero span on either axis
	top := float64(p.Max)
	if top == 0 {
		top = 1
	}

	graph := gochart.Chart{
		Width:  width,
		Height: height,
		XAxis: gochart.XAxis{
			ValueFormatter: gochart.TimeValueFormatterWithFormat(layout),
			Range:          &gochart.ContinuousRange{Min: gochart.TimeToFloat64(lo), Max: gochart.TimeToFloat64(hi)},
		},
		YAxis: gochart.YAxis{
			ValueFormatter: func(v any) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
			Range: &gochart.ContinuousRange{Min: 0, Max: top},
		},
		Series: series,
	}
	var buf bytes.Buffer
	if err := graph.Render(gochart.SVG, &buf); err != nil {
		return p, fmt.Errorf("render plot: %w", err)
	}
	p.SVG = template.HTML(buf.String())
	return p, nil
}

func hexColor(c string) drawing.Color {
	h := strings.TrimPrefix(c, "#")
	if (len(h) != 3 && len(h) != 6) || strings.Trim(strings.ToLower(h), "0123456789abcdef") != "" {
		h = strings.TrimPrefix(fallbackColor, "#")
	}
	return drawing.ColorFromHex(h)
}

// colorFor looks up source_type, then the bare source
func colorFor(key string, colors map[string]string) string {
	if c, ok := colors[key]; ok {
		return c
	}
	if i := strings.LastIndexByte(key, '_'); i > 0 {
		if c, ok := colors[key[:i]]; ok {
			return c
		}
	}
	return fallbackColor
}
