package chartpng

import (
	"bytes"

	"github.com/carbocation/bellybutton/panel"
	"github.com/fogleman/gg"
)

// Margins of the bar chart, in pixels.
const (
	barMarginTop    = 8
	barMarginRight  = 12
	barMarginBottom = 36
	barMarginLeft   = 100

	// Fraction of each category band filled by its bar
	barThickness = 0.55
)

// renderBar draws bars from the bottom of the plot upwards in the order
// given, so ascending input puts the largest bar on top.
func renderBar(bars []panel.Bar, width, height int) ([]byte, error) {
	dc := gg.NewContext(width, height)
	dc.SetHexColor("#ffffff")
	dc.Clear()
	dc.SetFontFace(fontFace(11))

	x0, x1 := float64(barMarginLeft), float64(width-barMarginRight)
	y0, y1 := float64(barMarginTop), float64(height-barMarginBottom)

	if len(bars) == 0 {
		drawNoData(dc, width, height)
		return encode(dc)
	}

	maxVal := 0.0
	for _, b := range bars {
		if b.Value > maxVal {
			maxVal = b.Value
		}
	}
	ticks, top := linearTicks(maxVal, 5)
	xOf := func(v float64) float64 { return x0 + (x1-x0)*v/top }

	// Grid and tick labels
	dc.SetLineWidth(1)
	for _, tick := range ticks {
		x := xOf(tick)
		dc.SetHexColor("#f2f4f6")
		dc.DrawLine(x, y0, x, y1)
		dc.Stroke()

		dc.SetHexColor("#2d2d2d")
		dc.DrawStringAnchored(formatTick(tick), x, y1+4, 0.5, 1)
	}

	band := (y1 - y0) / float64(len(bars))
	for i, b := range bars {
		yc := y1 - (float64(i)+0.5)*band
		h := band * barThickness

		dc.DrawRectangle(x0, yc-h/2, xOf(b.Value)-x0, h)
		dc.SetRGBA255(34, 102, 204, 235)
		dc.FillPreserve()
		dc.SetRGBA255(34, 102, 204, 89)
		dc.Stroke()

		dc.SetHexColor("#2d2d2d")
		dc.DrawStringAnchored(b.Category, x0-6, yc, 1, 0.5)
	}

	dc.DrawStringAnchored("Sample Values", (x0+x1)/2, float64(height)-4, 0.5, 0)

	return encode(dc)
}

func drawNoData(dc *gg.Context, width, height int) {
	dc.SetHexColor("#9aa4b2")
	dc.DrawStringAnchored("No data", float64(width)/2, float64(height)/2, 0.5, 0.5)
}

func encode(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
