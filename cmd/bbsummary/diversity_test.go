package main

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/carbocation/bellybutton/dataset"
)

const testDocument = `{
	"names": ["940", "941", "943"],
	"samples": [
		{"id": "940", "otu_ids": [1, 2, 3, 4], "otu_labels": ["a", "b", "c", "d"], "sample_values": [1, 1, 1, 1]},
		{"id": "941", "otu_ids": [7, 8, 9], "otu_labels": ["x", "y", "z"], "sample_values": [null, 6, 2]},
		{"id": "943", "otu_ids": [5], "otu_labels": ["q"], "sample_values": [1]}
	],
	"metadata": [
		{"id": 940, "wfreq": 2},
		{"id": 941, "wfreq": null}
	]
}`

func parse(t *testing.T) *dataset.Dataset {
	t.Helper()

	ds, err := dataset.Parse(strings.NewReader(testDocument))
	if err != nil {
		t.Fatal(err)
	}

	return ds
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSummarizeEven(t *testing.T) {
	ds := parse(t)
	sample, meta, err := ds.Select(ds.ParseID("940"))
	if err != nil {
		t.Fatal(err)
	}

	s := Summarize(sample, meta, 10)

	if s.Richness != 4 || s.Total != 4 || s.Mean != 1 || s.Median != 1 || s.StdDev != 0 {
		t.Errorf("%+v", s)
	}
	if !near(s.Shannon, math.Log(4)) {
		t.Errorf("Shannon = %v, want ln 4", s.Shannon)
	}
	if !near(s.Simpson, 0.75) {
		t.Errorf("Simpson = %v, want 0.75", s.Simpson)
	}
	if s.WFreq != "2" || !s.wfreq.Valid || s.wfreq.Float64 != 2 {
		t.Errorf("wfreq = %q %+v", s.WFreq, s.wfreq)
	}
}

func TestSummarizeNullAbundance(t *testing.T) {
	ds := parse(t)
	sample, meta, err := ds.Select(ds.ParseID("941"))
	if err != nil {
		t.Fatal(err)
	}

	s := Summarize(sample, meta, 2)

	if s.Richness != 2 || s.Total != 8 {
		t.Errorf("richness %d total %v", s.Richness, s.Total)
	}
	if s.TopOTUIDs != "8|9" {
		t.Errorf("top = %q, want 8|9", s.TopOTUIDs)
	}
	p := []float64{0.75, 0.25}
	wantShannon := -(p[0]*math.Log(p[0]) + p[1]*math.Log(p[1]))
	if !near(s.Shannon, wantShannon) {
		t.Errorf("Shannon = %v, want %v", s.Shannon, wantShannon)
	}
	if s.WFreq != "" || s.wfreq.Valid {
		t.Errorf("wfreq should be null, got %q", s.WFreq)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(dataset.Sample{ID: dataset.StringID("1")}, dataset.Metadata{}, 10)
	if s.Richness != 0 || s.Total != 0 || s.Shannon != 0 || s.TopOTUIDs != "" {
		t.Errorf("%+v", s)
	}
}

func TestSummarizeAllSkipsUnmatched(t *testing.T) {
	summaries, skipped := SummarizeAll(parse(t), 10)

	if len(summaries) != 2 || summaries[0].ID != "940" || summaries[1].ID != "941" {
		t.Errorf("summaries = %+v", summaries)
	}
	if len(skipped) != 1 || skipped[0].Text != "943" {
		t.Errorf("skipped = %v", skipped)
	}
}

func TestWriteTSV(t *testing.T) {
	summaries, _ := SummarizeAll(parse(t), 3)

	var buf bytes.Buffer
	if err := WriteTSV(&buf, summaries); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}

	header := strings.Split(lines[0], "\t")
	want := []string{"id", "wfreq", "richness", "total", "mean", "median", "stddev", "shannon", "simpson", "top_otu_ids"}
	if strings.Join(header, ",") != strings.Join(want, ",") {
		t.Errorf("header = %v", header)
	}

	first := strings.Split(lines[1], "\t")
	if first[0] != "940" || first[1] != "2" || first[2] != "4" {
		t.Errorf("first row = %v", first)
	}

	second := strings.Split(lines[2], "\t")
	if second[1] != "" || second[len(second)-1] != "8|9|7" {
		t.Errorf("second row = %v", second)
	}
}

func TestCohort(t *testing.T) {
	c := NewCohort()
	c.Push(Summary{Richness: 2, Shannon: 1})
	c.Push(Summary{Richness: 4, Shannon: 3})

	if c.Richness.Mean() != 3 || c.Shannon.Mean() != 2 {
		t.Errorf("richness mean %v shannon mean %v", c.Richness.Mean(), c.Shannon.Mean())
	}
}

func TestPrintHistogram(t *testing.T) {
	summaries, _ := SummarizeAll(parse(t), 3)

	var buf bytes.Buffer
	if err := PrintHistogram(&buf, summaries[1]); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "Subject 941 (3 taxa)") {
		t.Errorf("unexpected output %q", buf.String())
	}

	buf.Reset()
	if err := PrintHistogram(&buf, Summary{ID: "1"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "no abundances") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestToBigQuery(t *testing.T) {
	summaries, _ := SummarizeAll(parse(t), 3)

	row := toBigQuery(summaries[1])
	if row.WFreq.Valid || row.Richness != 2 || len(row.TopOTUIDs) != 3 || row.TopOTUIDs[0] != "8" || row.TopOTUIDs[2] != "7" {
		t.Errorf("%+v", row)
	}

	if row := toBigQuery(Summary{}); row.TopOTUIDs != nil {
		t.Errorf("empty top list became %v", row.TopOTUIDs)
	}
}
