// Package projector turns one subject's sample record into the numbers the
// dashboard draws: the ranked top-N taxa for the bar chart, marker sizes for
// the bubble chart and the gauge value. Everything here is pure.
package projector

// Options collects the tuning constants of the projections. The defaults
// follow the published dashboard; they are parameters because they are a
// matter of taste.
type Options struct {
	// Top is the number of taxa shown in the bar chart.
	Top int

	// ZoomMinFactor and ZoomMaxFactor clamp the bubble enlargement applied
	// when the bubble chart's x axis is zoomed in.
	ZoomMinFactor float64
	ZoomMaxFactor float64

	// ReferenceWidth is the x-axis width at which bubbles have their base
	// size. Zero means the full extent of the subject's taxon ids.
	ReferenceWidth float64

	// BubbleSizeDenominator sets the area scale of the bubbles: the largest
	// abundance maps to a marker of area BubbleSizeDenominator.
	BubbleSizeDenominator float64

	// GaugeMax is the upper end of the wash-frequency gauge.
	GaugeMax float64
}

func DefaultOptions() Options {
	return Options{
		Top:                   10,
		ZoomMinFactor:         1,
		ZoomMaxFactor:         8,
		BubbleSizeDenominator: 70,
		GaugeMax:              9,
	}
}
