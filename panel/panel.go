// Package panel builds everything the dashboard shows for one subject from an
// explicit dataset and selection, and hands it to a Drawer. Building is pure;
// drawing is the Drawer's business.
package panel

import (
	"fmt"
	"strconv"

	"github.com/carbocation/bellybutton/dataset"
	"github.com/carbocation/bellybutton/projector"
)

// MissingValue is shown for null metadata values.
const MissingValue = "—"

// Bar is one horizontal bar. Bars are kept in ascending order of value.
type Bar struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
	Hover    string  `json:"hover"`
}

// Bubble holds the parallel series of the bubble chart.
type Bubble struct {
	X     []float64 `json:"x"`
	Y     []float64 `json:"y"`
	Size  []float64 `json:"size"`
	Color []float64 `json:"color"`
	Text  []string  `json:"text"`

	// XMin and XMax are the visible x extent. Zoomed is set when they come
	// from a zoom window rather than the data.
	XMin   float64 `json:"xmin"`
	XMax   float64 `json:"xmax"`
	Zoomed bool    `json:"zoomed"`
	Factor float64 `json:"factor"`
}

// Band is a coloured range on the gauge.
type Band struct {
	From float64 `json:"from"`
	To   float64 `json:"to"`
}

type Gauge struct {
	Value float64 `json:"value"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Bands []Band  `json:"bands"`
}

// Row is one line of the metadata table.
type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Zoom is the visible x window of the bubble chart. A zero Zoom means the
// full data range.
type Zoom struct {
	XMin, XMax float64
}

// Width is the visible x extent of the window.
func (z Zoom) Width() float64 {
	return z.XMax - z.XMin
}

func (z Zoom) IsZero() bool {
	return z.XMin == 0 && z.XMax == 0
}

// Panel is the full projection of one subject.
type Panel struct {
	Subject  dataset.ID `json:"subject"`
	Metadata []Row      `json:"metadata"`
	Bars     []Bar      `json:"bars"`
	Bubble   Bubble     `json:"bubble"`
	Gauge    Gauge      `json:"gauge"`
}

// Build projects the selected subject of ds. The subject must have both a
// sample and a metadata record, otherwise an error wrapping
// dataset.ErrSubjectNotFound is returned and nothing should be drawn.
func Build(ds *dataset.Dataset, subject dataset.ID, zoom Zoom, opts projector.Options) (Panel, error) {
	sample, meta, err := ds.Select(subject)
	if err != nil {
		return Panel{}, err
	}

	return Panel{
		Subject:  subject,
		Metadata: MetadataRows(meta),
		Bars:     Bars(sample, opts.Top),
		Bubble:   BubbleSeries(sample, zoom, opts),
		Gauge:    GaugeFor(meta, opts),
	}, nil
}

// Bars labels the top-N taxa of the sample.
func Bars(sample dataset.Sample, top int) []Bar {
	ranked := projector.TopN(sample, top)

	out := make([]Bar, 0, len(ranked))
	for _, e := range ranked {
		out = append(out, Bar{
			Category: fmt.Sprintf("OTU %d", e.TaxonID),
			Value:    e.Value,
			Hover:    e.Label,
		})
	}

	return out
}

// BubbleSeries lays every taxon of the sample out as a bubble: x is the OTU
// id, y the abundance, and the colour follows the OTU id. When a zoom window
// is given, marker sizes grow as the window narrows.
func BubbleSeries(sample dataset.Sample, zoom Zoom, opts projector.Options) Bubble {
	k := sample.Len()

	b := Bubble{
		X:      make([]float64, k),
		Y:      make([]float64, k),
		Color:  make([]float64, k),
		Text:   make([]string, k),
		Factor: 1,
	}
	for i := 0; i < k; i++ {
		b.X[i] = float64(sample.OTUIDs[i])
		b.Y[i] = sample.Value(i)
		b.Color[i] = float64(sample.OTUIDs[i])
		b.Text[i] = sample.OTULabels[i]
	}

	b.XMin, b.XMax = projector.XRange(sample)
	base := projector.BaseMarkerSizes(sample, opts.BubbleSizeDenominator)
	b.Size = base

	if zoom.IsZero() {
		return b
	}

	reference := b.XMax - b.XMin
	if opts.ReferenceWidth > 0 {
		reference = opts.ReferenceWidth
	}
	if factor, ok := projector.ScaleFactor(zoom.Width(), reference, opts.ZoomMinFactor, opts.ZoomMaxFactor); ok {
		b.Size = projector.ScaleMarkerSizes(base, zoom.Width(), reference, opts.ZoomMinFactor, opts.ZoomMaxFactor)
		b.XMin, b.XMax = zoom.XMin, zoom.XMax
		b.Zoomed = true
		b.Factor = factor
	}

	return b
}

// GaugeFor builds the wash-frequency gauge, with three equal bands.
func GaugeFor(meta dataset.Metadata, opts projector.Options) Gauge {
	max := opts.GaugeMax
	if !(max > 0) {
		max = projector.DefaultOptions().GaugeMax
	}

	third := max / 3
	return Gauge{
		Value: projector.GaugeValue(meta.WFreq),
		Min:   0,
		Max:   max,
		Bands: []Band{{0, third}, {third, 2 * third}, {2 * third, max}},
	}
}

// MetadataRows lays the metadata record out as table rows in field order.
func MetadataRows(meta dataset.Metadata) []Row {
	out := make([]Row, 0, len(meta.Fields))
	for _, f := range meta.Fields {
		out = append(out, Row{
			Label: projector.HumanizeKey(f.Key),
			Value: FormatValue(f.Value),
		})
	}

	return out
}

// FormatValue renders a metadata scalar for display.
func FormatValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return MissingValue
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	}

	return fmt.Sprint(v)
}
