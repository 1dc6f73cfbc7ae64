package chartpng

import (
	"math"
	"strconv"
)

// niceStep rounds a raw tick spacing up to 1, 2 or 5 times a power of ten.
func niceStep(raw float64) float64 {
	if !(raw > 0) || math.IsInf(raw, 0) {
		return 1
	}

	exp := math.Floor(math.Log10(raw))
	base := math.Pow(10, exp)
	frac := raw / base

	switch {
	case frac <= 1:
		return base
	case frac <= 2:
		return 2 * base
	case frac <= 5:
		return 5 * base
	}

	return 10 * base
}

// linearTicks covers [0, max] with about n nicely spaced ticks. The returned
// top is the last tick, which is at least max.
func linearTicks(max float64, n int) (ticks []float64, top float64) {
	if !(max > 0) {
		max = 1
	}
	if n < 1 {
		n = 1
	}

	step := niceStep(max / float64(n))
	top = math.Ceil(max/step) * step
	for v := 0.0; v <= top+step/2; v += step {
		ticks = append(ticks, v)
	}

	return ticks, top
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
