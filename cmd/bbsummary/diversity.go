package main

import (
	"strconv"
	"strings"

	"github.com/carbocation/bellybutton/dataset"
	"github.com/carbocation/bellybutton/projector"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/guregu/null.v3"
)

// Summary describes one subject's sample.
type Summary struct {
	ID string `csv:"id"`

	// WFreq is empty when the subject has no numeric wfreq
	WFreq     string  `csv:"wfreq"`
	Richness  int     `csv:"richness"`
	Total     float64 `csv:"total"`
	Mean      float64 `csv:"mean"`
	Median    float64 `csv:"median"`
	StdDev    float64 `csv:"stddev"`
	Shannon   float64 `csv:"shannon"`
	Simpson   float64 `csv:"simpson"`
	TopOTUIDs string  `csv:"top_otu_ids"`

	wfreq  null.Float `csv:"-"`
	values []float64  `csv:"-"`
}

// Summarize computes abundance statistics over the sample's shared prefix.
// Null and non-finite abundances count as zero.
func Summarize(sample dataset.Sample, meta dataset.Metadata, top int) Summary {
	out := Summary{
		ID:    sample.ID.Text,
		wfreq: meta.WFreq,
	}
	if meta.WFreq.Valid {
		out.WFreq = strconv.FormatFloat(meta.WFreq.Float64, 'f', -1, 64)
	}

	k := sample.Len()
	values := make([]float64, k)
	for i := 0; i < k; i++ {
		values[i] = sample.Value(i)
		if values[i] > 0 {
			out.Richness++
		}
	}
	out.values = values

	if k > 0 {
		out.Total = floats.Sum(values)

		// Errors here only signal empty input, which is excluded above
		data := stats.Float64Data(values)
		out.Mean, _ = data.Mean()
		out.Median, _ = data.Median()
		out.StdDev, _ = data.StandardDeviation()
	}

	if out.Total > 0 {
		p := make([]float64, k)
		for i, v := range values {
			if v > 0 {
				p[i] = v / out.Total
			}
		}
		out.Shannon = stat.Entropy(p)
		out.Simpson = 1 - floats.Dot(p, p)
	}

	// TopN is ascending; list the largest first
	ranked := projector.TopN(sample, top)
	ids := make([]string, 0, len(ranked))
	for i := len(ranked) - 1; i >= 0; i-- {
		ids = append(ids, strconv.FormatInt(ranked[i].TaxonID, 10))
	}
	out.TopOTUIDs = strings.Join(ids, "|")

	return out
}

// SummarizeAll summarizes every subject in names order. Subjects missing a
// sample or metadata record are skipped and returned separately.
func SummarizeAll(ds *dataset.Dataset, top int) (summaries []Summary, skipped []dataset.ID) {
	for _, id := range ds.Subjects() {
		sample, meta, err := ds.Select(id)
		if err != nil {
			skipped = append(skipped, id)
			continue
		}

		summaries = append(summaries, Summarize(sample, meta, top))
	}

	return summaries, skipped
}
