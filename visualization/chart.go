package visualization

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Fixed brightness axis shared by the browser overlay and the PNG.
const (
	LightCurveMin = 0.990
	LightCurveMax = 1.000
)

func curveColor(status string) drawing.Color {
	switch status {
	case "confirmed":
		return drawing.ColorFromHex("00ff88")
	case "false_positive":
		return drawing.ColorFromHex("ff3366")
	default:
		return drawing.ColorFromHex("aaaaaa")
	}
}

// RenderLightCurve writes the points as a PNG line chart.
func RenderLightCurve(w io.Writer, title string, points []float64, status string) error {
	// go-chart needs at least two points per series.
	for len(points) < 2 {
		points = append(points, 1)
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = float64(i)
		ys[i] = p
	}

	ch := chart.Chart{
		Title:  title,
		Width:  640,
		Height: 240,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{Name: "Frame"},
		YAxis: chart.YAxis{
			Name:  "Relative brightness",
			Range: &chart.ContinuousRange{Min: LightCurveMin, Max: LightCurveMax},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.3f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "brightness",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: curveColor(status),
					StrokeWidth: 2.5,
				},
			},
		},
	}
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render light curve: %w", err)
	}
	return nil
}
