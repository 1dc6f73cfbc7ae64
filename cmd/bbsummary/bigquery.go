package main

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/bigquery"
	"github.com/carbocation/pfx"
	"google.golang.org/api/iterator"
)

type WrappedBigQuery struct {
	Context  context.Context
	Client   *bigquery.Client
	Project  string
	Database string
}

// bqSummary is the BigQuery row for a Summary.
type bqSummary struct {
	ID        string               `bigquery:"id"`
	WFreq     bigquery.NullFloat64 `bigquery:"wfreq"`
	Richness  int64                `bigquery:"richness"`
	Total     float64              `bigquery:"total"`
	Mean      float64              `bigquery:"mean"`
	Median    float64              `bigquery:"median"`
	StdDev    float64              `bigquery:"stddev"`
	Shannon   float64              `bigquery:"shannon"`
	Simpson   float64              `bigquery:"simpson"`
	TopOTUIDs []string             `bigquery:"top_otu_ids"`
}

func toBigQuery(s Summary) *bqSummary {
	out := &bqSummary{
		ID:       s.ID,
		WFreq:    bigquery.NullFloat64{Float64: s.wfreq.Float64, Valid: s.wfreq.Valid},
		Richness: int64(s.Richness),
		Total:    s.Total,
		Mean:     s.Mean,
		Median:   s.Median,
		StdDev:   s.StdDev,
		Shannon:  s.Shannon,
		Simpson:  s.Simpson,
	}
	if s.TopOTUIDs != "" {
		out.TopOTUIDs = strings.Split(s.TopOTUIDs, "|")
	}

	return out
}

// tableExists walks the tables of the dataset looking for table.
func tableExists(wbq *WrappedBigQuery, table string) (bool, error) {
	itr := wbq.Client.Dataset(wbq.Database).Tables(wbq.Context)
	for {
		t, err := itr.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return false, pfx.Err(err)
		}
		if t.TableID == table {
			return true, nil
		}
	}

	return false, nil
}

// UploadSummaries appends the summaries to project.database.table, creating
// the table if it does not yet exist.
func UploadSummaries(wbq *WrappedBigQuery, table string, summaries []Summary) error {
	exists, err := tableExists(wbq, table)
	if err != nil {
		return err
	}

	t := wbq.Client.Dataset(wbq.Database).Table(table)
	if !exists {
		schema, err := bigquery.InferSchema(bqSummary{})
		if err != nil {
			return pfx.Err(err)
		}
		if err := t.Create(wbq.Context, &bigquery.TableMetadata{Schema: schema}); err != nil {
			return pfx.Err(fmt.Errorf("creating %s.%s: %w", wbq.Database, table, err))
		}
	}

	rows := make([]*bqSummary, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, toBigQuery(s))
	}

	if err := t.Inserter().Put(wbq.Context, rows); err != nil {
		return pfx.Err(err)
	}

	return nil
}
