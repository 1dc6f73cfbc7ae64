package chartpng

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/carbocation/bellybutton/panel"
)

func testPanel() panel.Panel {
	return panel.Panel{
		Metadata: []panel.Row{{Label: "ID", Value: "940"}},
		Bars: []panel.Bar{
			{Category: "OTU 1", Value: 3},
			{Category: "OTU 3", Value: 6},
			{Category: "OTU 2", Value: 9},
		},
		Bubble: panel.Bubble{
			X:     []float64{1, 2, 3},
			Y:     []float64{3, 9, 6},
			Size:  []float64{10, 20, 15},
			Color: []float64{1, 2, 3},
			Text:  []string{"a", "b", "c"},
			XMin:  1,
			XMax:  3,
		},
		Gauge: panel.Gauge{
			Value: 2,
			Min:   0,
			Max:   9,
			Bands: []panel.Band{{From: 0, To: 3}, {From: 3, To: 6}, {From: 6, To: 9}},
		},
	}
}

func decodeSize(t *testing.T, b []byte) (int, int) {
	t.Helper()

	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("decoding png: %v", err)
	}

	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestRendererDrawsAllCharts(t *testing.T) {
	r := New(320, 200)
	if err := panel.Draw(testPanel(), r); err != nil {
		t.Fatal(err)
	}

	if len(r.Rows) != 1 || r.Rows[0].Value != "940" {
		t.Errorf("rows = %v", r.Rows)
	}

	for _, k := range []Kind{KindBar, KindBubble, KindGauge} {
		img := r.Image(k)
		if len(img.PNG) == 0 {
			t.Errorf("%s: no image", k)
			continue
		}
		if w, h := decodeSize(t, img.PNG); w != 320 || h != 200 {
			t.Errorf("%s: size %dx%d, want 320x200", k, w, h)
		}
		if img.ETag != ETag(img.PNG) {
			t.Errorf("%s: etag mismatch", k)
		}
	}
}

func TestRendererOnly(t *testing.T) {
	r := New(0, 0)
	r.Only = KindGauge
	if err := panel.Draw(testPanel(), r); err != nil {
		t.Fatal(err)
	}

	if len(r.Bar.PNG) != 0 || len(r.Bubble.PNG) != 0 {
		t.Error("charts other than the gauge were drawn")
	}
	if w, h := decodeSize(t, r.Gauge.PNG); w != DefaultWidth || h != DefaultHeight {
		t.Errorf("gauge size %dx%d", w, h)
	}
}

func TestRendererEmptyPanel(t *testing.T) {
	r := New(200, 150)
	p := panel.Panel{Gauge: panel.Gauge{Max: 9}}
	if err := panel.Draw(p, r); err != nil {
		t.Fatal(err)
	}

	for _, k := range []Kind{KindBar, KindBubble, KindGauge} {
		if len(r.Image(k).PNG) == 0 {
			t.Errorf("%s: no placeholder image", k)
		}
	}
}

func TestBubbleZoomedOutsideWindow(t *testing.T) {
	p := testPanel()
	p.Bubble.XMin, p.Bubble.XMax = 100, 200
	p.Bubble.Zoomed = true

	xs, _, _, _ := visiblePoints(p.Bubble)
	if len(xs) != 0 {
		t.Fatalf("visible points = %v, want none", xs)
	}

	if _, err := renderBubble(p.Bubble, 300, 200); err != nil {
		t.Fatal(err)
	}
}

func TestVisiblePointsKeepsAlignment(t *testing.T) {
	b := panel.Bubble{
		X:     []float64{1, 5, 9},
		Y:     []float64{10, 50, 90},
		Size:  []float64{1, 5, 9},
		Color: []float64{1, 5, 9},
		XMin:  4,
		XMax:  9,
	}

	xs, ys, sizes, colors := visiblePoints(b)
	if len(xs) != 2 || xs[0] != 5 || ys[1] != 90 || sizes[0] != 5 || colors[1] != 9 {
		t.Errorf("got x=%v y=%v size=%v color=%v", xs, ys, sizes, colors)
	}
}

func TestETagStable(t *testing.T) {
	a, b := ETag([]byte("png")), ETag([]byte("png"))
	if a != b {
		t.Errorf("%s != %s", a, b)
	}
	if a == ETag([]byte("other")) {
		t.Error("different content, same etag")
	}
	if len(a) != 66 || a[0] != '"' {
		t.Errorf("malformed etag %s", a)
	}
}

func TestParseKind(t *testing.T) {
	for _, s := range []string{"bar", "bubble", "gauge"} {
		if k, err := ParseKind(s); err != nil || string(k) != s {
			t.Errorf("ParseKind(%q) = %q, %v", s, k, err)
		}
	}
	if _, err := ParseKind("pie"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestClampDimension(t *testing.T) {
	cases := []struct{ in, want int }{
		{0, 640},
		{-5, 640},
		{10, minDimension},
		{500, 500},
		{99999, maxDimension},
	}
	for _, c := range cases {
		if got := clampDimension(c.in, 640); got != c.want {
			t.Errorf("clampDimension(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestLinearTicks(t *testing.T) {
	ticks, top := linearTicks(9, 5)
	if top != 10 || len(ticks) != 6 {
		t.Errorf("ticks=%v top=%v", ticks, top)
	}

	if _, top := linearTicks(0, 5); top != 1 {
		t.Errorf("top for zero max = %v", top)
	}
}
