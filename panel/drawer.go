package panel

import (
	"github.com/carbocation/bellybutton/dataset"
	"github.com/carbocation/bellybutton/projector"
)

// Drawer receives a built panel piece by piece. Implementations must not
// retain the slices they are handed beyond the call.
type Drawer interface {
	DrawMetadata(rows []Row) error
	DrawBar(bars []Bar) error
	DrawBubble(bubble Bubble) error
	DrawGauge(gauge Gauge) error
}

// Draw hands every piece of p to d in display order, stopping at the first
// error.
func Draw(p Panel, d Drawer) error {
	if err := d.DrawMetadata(p.Metadata); err != nil {
		return err
	}
	if err := d.DrawBar(p.Bars); err != nil {
		return err
	}
	if err := d.DrawBubble(p.Bubble); err != nil {
		return err
	}

	return d.DrawGauge(p.Gauge)
}

// Render builds the panel for subject and draws it. If the subject is not
// found nothing is drawn.
func Render(ds *dataset.Dataset, subject dataset.ID, zoom Zoom, opts projector.Options, d Drawer) (Panel, error) {
	p, err := Build(ds, subject, zoom, opts)
	if err != nil {
		return Panel{}, err
	}

	return p, Draw(p, d)
}
