// Package chartpng draws dashboard panels as PNG images: a horizontal bar
// chart of the top taxa, a bubble chart of every taxon and a wash-frequency
// gauge.
package chartpng

import (
	"fmt"

	"github.com/carbocation/bellybutton/panel"
)

type Kind string

const (
	KindBar    Kind = "bar"
	KindBubble Kind = "bubble"
	KindGauge  Kind = "gauge"
)

// ParseKind validates a chart name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindBar, KindBubble, KindGauge:
		return k, nil
	}

	return "", fmt.Errorf("unknown chart kind %q", s)
}

const (
	DefaultWidth  = 640
	DefaultHeight = 400

	minDimension = 120
	maxDimension = 2400
)

// Renderer is a panel.Drawer that keeps the encoded images. A Renderer draws
// one panel; make a new one per request.
type Renderer struct {
	Width, Height int

	// Only restricts drawing to one chart. Empty draws all of them.
	Only Kind

	// Supersample is the oversampling factor used for the gauge, which is
	// drawn large and scaled down. Values below 1 mean 1.
	Supersample int

	Rows   []panel.Row
	Bar    Image
	Bubble Image
	Gauge  Image
}

// New returns a Renderer drawing at the given size. Sizes are clamped to a
// sane range; zero means the default.
func New(width, height int) *Renderer {
	return &Renderer{
		Width:       clampDimension(width, DefaultWidth),
		Height:      clampDimension(height, DefaultHeight),
		Supersample: 2,
	}
}

func clampDimension(v, def int) int {
	if v <= 0 {
		return def
	}
	if v < minDimension {
		return minDimension
	}
	if v > maxDimension {
		return maxDimension
	}

	return v
}

func (r *Renderer) wants(k Kind) bool {
	return r.Only == "" || r.Only == k
}

// Image returns the image drawn for k.
func (r *Renderer) Image(k Kind) Image {
	switch k {
	case KindBar:
		return r.Bar
	case KindBubble:
		return r.Bubble
	case KindGauge:
		return r.Gauge
	}

	return Image{}
}

func (r *Renderer) DrawMetadata(rows []panel.Row) error {
	r.Rows = append([]panel.Row(nil), rows...)
	return nil
}

func (r *Renderer) DrawBar(bars []panel.Bar) error {
	if !r.wants(KindBar) {
		return nil
	}

	png, err := renderBar(bars, r.Width, r.Height)
	if err != nil {
		return err
	}
	r.Bar = newImage(png)

	return nil
}

func (r *Renderer) DrawBubble(b panel.Bubble) error {
	if !r.wants(KindBubble) {
		return nil
	}

	png, err := renderBubble(b, r.Width, r.Height)
	if err != nil {
		return err
	}
	r.Bubble = newImage(png)

	return nil
}

func (r *Renderer) DrawGauge(g panel.Gauge) error {
	if !r.wants(KindGauge) {
		return nil
	}

	ss := r.Supersample
	if ss < 1 {
		ss = 1
	}

	png, err := renderGauge(g, r.Width, r.Height, ss)
	if err != nil {
		return err
	}
	r.Gauge = newImage(png)

	return nil
}
