package projector

import (
	"math"

	"github.com/carbocation/bellybutton/dataset"
)

// ScaleFactor is referenceWidth/visibleRangeWidth clamped to
// [minFactor, maxFactor]. ok is false when the widths cannot produce a
// meaningful ratio (zero, negative or non-finite). That includes an unusable
// referenceWidth: the factor is then 1 rather than minFactor, so a bad
// reference leaves the sizes as they are.
func ScaleFactor(visibleRangeWidth, referenceWidth, minFactor, maxFactor float64) (factor float64, ok bool) {
	if !(visibleRangeWidth > 0) || math.IsInf(visibleRangeWidth, 0) {
		return 1, false
	}
	if !(referenceWidth > 0) || math.IsInf(referenceWidth, 0) {
		return 1, false
	}

	factor = referenceWidth / visibleRangeWidth
	if factor < minFactor {
		factor = minFactor
	}
	if factor > maxFactor {
		factor = maxFactor
	}

	return factor, true
}

// ScaleMarkerSizes multiplies every base size by the zoom factor. Zooming in
// narrows the visible range, raising the factor and enlarging the bubbles.
// When the visible width is invalid the sizes are returned unchanged. The
// input slice is never modified.
func ScaleMarkerSizes(baseSizes []float64, visibleRangeWidth, referenceWidth, minFactor, maxFactor float64) []float64 {
	out := make([]float64, len(baseSizes))

	factor, ok := ScaleFactor(visibleRangeWidth, referenceWidth, minFactor, maxFactor)
	if !ok {
		copy(out, baseSizes)
		return out
	}

	for i, size := range baseSizes {
		out[i] = size * factor
	}

	return out
}

// BaseMarkerSizes gives each taxon of the sample a marker diameter whose area
// is proportional to its abundance. The largest abundance gets an area of
// denominator. Sizes cover the shared prefix of the sample.
func BaseMarkerSizes(sample dataset.Sample, denominator float64) []float64 {
	k := sample.Len()
	sizes := make([]float64, k)

	maxVal := 0.0
	for i := 0; i < k; i++ {
		if v := sample.Value(i); v > maxVal {
			maxVal = v
		}
	}
	if maxVal <= 0 || !(denominator > 0) {
		return sizes
	}

	sizeref := maxVal / denominator
	for i := 0; i < k; i++ {
		v := sample.Value(i)
		if v <= 0 {
			continue
		}
		sizes[i] = math.Sqrt(v / sizeref)
	}

	return sizes
}

// XRange returns the smallest and largest taxon id of the sample's shared
// prefix, which is the unzoomed extent of the bubble chart's x axis.
func XRange(sample dataset.Sample) (min, max float64) {
	k := sample.Len()
	if k == 0 {
		return 0, 0
	}

	min, max = float64(sample.OTUIDs[0]), float64(sample.OTUIDs[0])
	for i := 1; i < k; i++ {
		x := float64(sample.OTUIDs[i])
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}

	return min, max
}
