package main

import (
	"encoding/csv"
	"io"

	"github.com/carbocation/runningvariance"
	"github.com/gocarina/gocsv"
)

// WriteTSV writes the summaries with a header row, tab delimited.
func WriteTSV(w io.Writer, summaries []Summary) error {
	// Tell gocsv to use tab as the delimiter
	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		cw := csv.NewWriter(out)
		cw.Comma = '\t'
		return gocsv.NewSafeCSVWriter(cw)
	})

	rows := make([]*Summary, 0, len(summaries))
	for i := range summaries {
		rows = append(rows, &summaries[i])
	}

	return gocsv.Marshal(rows, w)
}

// Cohort accumulates per-subject diversity across the whole dataset.
type Cohort struct {
	Richness runningvariance.RunningStat
	Shannon  runningvariance.RunningStat
}

func NewCohort() *Cohort {
	return &Cohort{
		Richness: *runningvariance.NewRunningStat(),
		Shannon:  *runningvariance.NewRunningStat(),
	}
}

func (c *Cohort) Push(s Summary) {
	c.Richness.Push(float64(s.Richness))
	c.Shannon.Push(s.Shannon)
}
