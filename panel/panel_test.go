package panel

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/carbocation/bellybutton/dataset"
	"github.com/carbocation/bellybutton/projector"
)

type recorder struct {
	calls    []string
	rows     []Row
	bars     []Bar
	bubble   Bubble
	gauge    Gauge
	failOn   string
	failWith error
}

func (r *recorder) record(name string) error {
	r.calls = append(r.calls, name)
	if name == r.failOn {
		return r.failWith
	}
	return nil
}

func (r *recorder) DrawMetadata(rows []Row) error { r.rows = rows; return r.record("metadata") }
func (r *recorder) DrawBar(bars []Bar) error      { r.bars = bars; return r.record("bar") }
func (r *recorder) DrawBubble(b Bubble) error     { r.bubble = b; return r.record("bubble") }
func (r *recorder) DrawGauge(g Gauge) error       { r.gauge = g; return r.record("gauge") }

func parse(t *testing.T, doc string) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	return ds
}

func TestRenderEndToEnd(t *testing.T) {
	ds := parse(t, `{"names":["940"],"samples":[{"id":"940","otu_ids":[1,2,3],"otu_labels":["a","b","c"],"sample_values":[3,9,6]}],"metadata":[{"id":940,"wfreq":2}]}`)

	rec := &recorder{}
	p, err := Render(ds, ds.ParseID("940"), Zoom{}, projector.DefaultOptions(), rec)
	if err != nil {
		t.Fatal(err)
	}

	expectedBars := []Bar{
		{Category: "OTU 1", Value: 3, Hover: "a"},
		{Category: "OTU 3", Value: 6, Hover: "c"},
		{Category: "OTU 2", Value: 9, Hover: "b"},
	}
	if !reflect.DeepEqual(rec.bars, expectedBars) {
		t.Fatalf("\nExpected: %+v\nGot: %+v", expectedBars, rec.bars)
	}
	if rec.gauge.Value != 2 {
		t.Fatalf("Expected gauge value 2, got %v", rec.gauge.Value)
	}
	if !reflect.DeepEqual(rec.calls, []string{"metadata", "bar", "bubble", "gauge"}) {
		t.Fatalf("Unexpected draw order %v", rec.calls)
	}
	if !reflect.DeepEqual(p.Bars, rec.bars) {
		t.Fatalf("Returned panel differs from what was drawn")
	}

	expectedRows := []Row{{"ID", "940"}, {"Wash Freq (wk)", "2"}}
	if !reflect.DeepEqual(rec.rows, expectedRows) {
		t.Fatalf("\nExpected: %+v\nGot: %+v", expectedRows, rec.rows)
	}
}

func TestRenderSkipsUnknownSubject(t *testing.T) {
	ds := parse(t, `{"names":["940"],"samples":[{"id":"940","otu_ids":[],"otu_labels":[],"sample_values":[]}],"metadata":[]}`)

	rec := &recorder{}
	if _, err := Render(ds, ds.ParseID("940"), Zoom{}, projector.DefaultOptions(), rec); !errors.Is(err, dataset.ErrSubjectNotFound) {
		t.Fatalf("Expected ErrSubjectNotFound, got %v", err)
	}
	if len(rec.calls) != 0 {
		t.Fatalf("Nothing should have been drawn, got %v", rec.calls)
	}
}

func TestDrawStopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	rec := &recorder{failOn: "bar", failWith: boom}

	if err := Draw(Panel{}, rec); err != boom {
		t.Fatalf("Expected boom, got %v", err)
	}
	if !reflect.DeepEqual(rec.calls, []string{"metadata", "bar"}) {
		t.Fatalf("Unexpected calls %v", rec.calls)
	}
}

func TestBubbleSeries(t *testing.T) {
	ds := parse(t, `{"names":["1"],"samples":[{"id":"1","otu_ids":[100,200,300,1100],"otu_labels":["a","b","c","d"],"sample_values":[70,10,0,35]}],"metadata":[{"id":1,"wfreq":null}]}`)
	sample := ds.Samples[0]

	opts := projector.DefaultOptions()

	full := BubbleSeries(sample, Zoom{}, opts)
	if full.Zoomed || full.XMin != 100 || full.XMax != 1100 {
		t.Fatalf("Unexpected unzoomed extent %+v", full)
	}
	if !reflect.DeepEqual(full.Color, full.X) {
		t.Fatalf("Colour should follow the OTU id")
	}

	// A window a quarter of the data width enlarges every bubble 4x
	zoomed := BubbleSeries(sample, Zoom{XMin: 100, XMax: 350}, opts)
	if !zoomed.Zoomed || zoomed.Factor != 4 {
		t.Fatalf("Expected a 4x zoom, got %+v", zoomed)
	}
	for i := range full.Size {
		if zoomed.Size[i] != full.Size[i]*4 {
			t.Fatalf("Size %d: expected %v, got %v", i, full.Size[i]*4, zoomed.Size[i])
		}
	}

	// An empty window is ignored
	flat := BubbleSeries(sample, Zoom{XMin: 500, XMax: 500}, opts)
	if flat.Zoomed || !reflect.DeepEqual(flat.Size, full.Size) {
		t.Fatalf("Degenerate zoom should leave sizes alone: %+v", flat)
	}
}

func TestGaugeDefaultsToZero(t *testing.T) {
	ds := parse(t, `{"names":["1"],"samples":[{"id":"1","otu_ids":[],"otu_labels":[],"sample_values":[]}],"metadata":[{"id":1,"wfreq":null,"location":null}]}`)

	p, err := Build(ds, ds.ParseID("1"), Zoom{}, projector.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if p.Gauge.Value != 0 || p.Gauge.Max != 9 || len(p.Gauge.Bands) != 3 || p.Gauge.Bands[1] != (Band{3, 6}) {
		t.Fatalf("Unexpected gauge %+v", p.Gauge)
	}
	if len(p.Bars) != 0 {
		t.Fatalf("Expected no bars, got %+v", p.Bars)
	}
	if p.Metadata[2].Value != MissingValue {
		t.Fatalf("Expected a placeholder for null, got %+v", p.Metadata)
	}
}

func TestFormatValue(t *testing.T) {
	for _, v := range []struct {
		In       interface{}
		Expected string
	}{
		{nil, MissingValue},
		{"Caucasian", "Caucasian"},
		{float64(24), "24"},
		{1.5, "1.5"},
		{true, "true"},
	} {
		if got := FormatValue(v.In); got != v.Expected {
			t.Errorf("%v: expected %q, got %q", v.In, v.Expected, got)
		}
	}
}
