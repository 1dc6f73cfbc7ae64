package chartpng

import (
	"bytes"

	"github.com/carbocation/bellybutton/panel"
	"github.com/fogleman/gg"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// renderBubble draws every taxon inside the visible x window as a circle
// whose diameter is its marker size, coloured along a viridis ramp by OTU id.
func renderBubble(b panel.Bubble, width, height int) ([]byte, error) {
	xs, ys, sizes, colors := visiblePoints(b)
	if len(xs) == 0 {
		dc := gg.NewContext(width, height)
		dc.SetHexColor("#ffffff")
		dc.Clear()
		dc.SetFontFace(fontFace(11))
		drawNoData(dc, width, height)
		return encode(dc)
	}

	xMin, xMax := b.XMin, b.XMax
	if xMin == xMax {
		xMin, xMax = xMin-1, xMax+1
	}

	yMax := 0.0
	for _, y := range b.Y {
		if y > yMax {
			yMax = y
		}
	}
	_, yTop := linearTicks(yMax*1.1, 5)

	colorMin, colorMax := colors[0], colors[0]
	for _, c := range colors {
		if c < colorMin {
			colorMin = c
		}
		if c > colorMax {
			colorMax = c
		}
	}

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 8, Left: 16, Right: 28, Bottom: 16},
		},
		XAxis: chart.XAxis{
			Name:  "OTU IDs",
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
		},
		YAxis: chart.YAxis{
			Name:  "Sample Values",
			Range: &chart.ContinuousRange{Min: 0, Max: yTop},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "OTUs",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidthProvider: func(xr, yr chart.Range, index int, x, y float64) float64 {
						return sizes[index] / 2
					},
					DotColorProvider: func(xr, yr chart.Range, index int, x, y float64) drawing.Color {
						c := chart.Viridis(colors[index], colorMin, colorMax)
						c.A = 230
						return c
					},
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// visiblePoints keeps the points of b that fall inside its x window, with
// their sizes and colour keys still aligned.
func visiblePoints(b panel.Bubble) (xs, ys, sizes, colors []float64) {
	for i := range b.X {
		if i >= len(b.Y) || i >= len(b.Size) || i >= len(b.Color) {
			break
		}
		if b.X[i] < b.XMin || b.X[i] > b.XMax {
			continue
		}
		xs = append(xs, b.X[i])
		ys = append(ys, b.Y[i])
		sizes = append(sizes, b.Size[i])
		colors = append(colors, b.Color[i])
	}

	return xs, ys, sizes, colors
}
