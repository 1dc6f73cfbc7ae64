package projector

import (
	"github.com/carbocation/bellybutton/dataset"
	"gopkg.in/guregu/null.v3"
)

// GaugeValue is the wash frequency shown on the gauge, or 0 when it is
// missing or not finite.
func GaugeValue(wfreq null.Float) float64 {
	return dataset.FiniteOrZero(wfreq)
}
