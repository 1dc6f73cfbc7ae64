package chartpng

import (
	"bytes"
	"image/png"
	"math"

	"github.com/carbocation/bellybutton/panel"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

var bandColors = []string{"#e0f2f1", "#c8e6e5", "#b2dfdb"}

// renderGauge draws a half-dial gauge at ss times the requested size and
// scales it down, which smooths the arcs.
func renderGauge(g panel.Gauge, width, height, ss int) ([]byte, error) {
	W, H := float64(width*ss), float64(height*ss)
	s := float64(ss)

	dc := gg.NewContext(width*ss, height*ss)
	dc.SetHexColor("#ffffff")
	dc.Clear()

	cx := W / 2
	cy := H * 0.78
	radius := math.Min(W/2-16*s, H*0.68)
	thickness := radius * 0.28

	span := g.Max - g.Min
	if !(span > 0) {
		span = 1
	}
	// Angle of a value: Min sits at the left (pi), Max at the right (2pi)
	angleOf := func(v float64) float64 {
		frac := (v - g.Min) / span
		frac = math.Max(0, math.Min(1, frac))
		return math.Pi + frac*math.Pi
	}

	dc.SetLineCapButt()
	dc.SetLineWidth(thickness)
	for i, band := range g.Bands {
		dc.SetHexColor(bandColors[i%len(bandColors)])
		dc.NewSubPath()
		dc.DrawArc(cx, cy, radius-thickness/2, angleOf(band.From), angleOf(band.To))
		dc.Stroke()
	}

	// Value bar, drawn narrower on top of the bands
	if g.Value > g.Min {
		dc.SetHexColor("#00897b")
		dc.SetLineWidth(thickness * 0.45)
		dc.NewSubPath()
		dc.DrawArc(cx, cy, radius-thickness/2, angleOf(g.Min), angleOf(g.Value))
		dc.Stroke()
	}

	// Threshold marker across the dial at the value
	a := angleOf(g.Value)
	dc.SetHexColor("#d32f2f")
	dc.SetLineWidth(3 * s)
	inner, outer := radius-thickness*0.875, radius-thickness*0.125
	dc.DrawLine(cx+inner*math.Cos(a), cy+inner*math.Sin(a), cx+outer*math.Cos(a), cy+outer*math.Sin(a))
	dc.Stroke()

	// Tick labels at each band boundary
	dc.SetHexColor("#9aa4b2")
	dc.SetFontFace(fontFace(10 * s))
	labelR := radius + 8*s
	for _, v := range gaugeTicks(g) {
		ta := angleOf(v)
		dc.DrawStringAnchored(formatTick(v), cx+labelR*math.Cos(ta), cy+labelR*math.Sin(ta), 0.5, 0.5)
	}

	dc.SetHexColor("#2d2d2d")
	dc.SetFontFace(fontFace(18 * s))
	dc.DrawStringAnchored(formatTick(math.Round(g.Value*100)/100), cx, cy-thickness*0.2, 0.5, 0)

	img := dc.Image()
	if ss > 1 {
		img = imaging.Resize(img, width, height, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func gaugeTicks(g panel.Gauge) []float64 {
	out := []float64{g.Min}
	for _, b := range g.Bands {
		if b.To > out[len(out)-1] {
			out = append(out, b.To)
		}
	}

	return out
}
