package projector

import (
	"sort"

	"github.com/carbocation/bellybutton/dataset"
)

// RankedEntry is one taxon selected for the bar chart.
type RankedEntry struct {
	Value   float64 `json:"value"`
	TaxonID int64   `json:"otu_id"`
	Label   string  `json:"label"`
}

// TopN selects the n largest abundances of the sample and returns them in
// ascending order of value, so that a renderer drawing bars in sequence from
// the bottom up shows the largest at the top. Ties keep their input order
// when ranked descending, which puts the earlier taxon lower after the final
// reversal. Only the prefix shared by the three sample sequences is read, and
// missing or non-finite abundances rank as 0.
func TopN(sample dataset.Sample, n int) []RankedEntry {
	k := sample.Len()
	if k == 0 || n <= 0 {
		return []RankedEntry{}
	}

	entries := make([]RankedEntry, k)
	for i := 0; i < k; i++ {
		entries[i] = RankedEntry{
			Value:   sample.Value(i),
			TaxonID: sample.OTUIDs[i],
			Label:   sample.OTULabels[i],
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})

	if n < k {
		entries = entries[:n]
	}

	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	return entries
}
