// bbsummary prints one line of abundance and diversity statistics per
// subject of a samples document, optionally uploading the same rows to
// BigQuery.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/storage"
	"github.com/aybabtme/uniplot/histogram"
	_ "github.com/carbocation/bellybutton/compileinfoprint"
	"github.com/carbocation/bellybutton/dataset"
	"github.com/carbocation/bellybutton/projector"
)

var (
	BufferSize = 4096 * 32
	STDOUT     = bufio.NewWriterSize(os.Stdout, BufferSize)
)

func main() {
	defer STDOUT.Flush()

	var src dataset.Source
	var top int
	var printHistogram bool
	var BQ WrappedBigQuery
	var bqTable string

	flag.StringVar(&src.Primary, "data", "", "Path to the samples JSON document. May be a local file, a gs:// object or an http(s) URL, optionally compressed.")
	flag.StringVar(&src.Fallback, "fallback", "", "(Optional) Second location of the samples document, read only if --data cannot be loaded.")
	flag.StringVar(&src.MetadataTable, "metadata", "", "(Optional) Delimited table with an 'id' column whose rows are merged over the document's metadata.")
	flag.IntVar(&top, "top", projector.DefaultOptions().Top, "Number of most abundant OTU ids listed per subject")
	flag.BoolVar(&printHistogram, "histogram", false, "(Optional) Print an ASCII histogram of each subject's abundances to stderr")
	flag.StringVar(&BQ.Project, "bq-project", "", "(Optional) BigQuery project to upload the summaries to")
	flag.StringVar(&BQ.Database, "bq-database", "", "(Optional) BigQuery dataset to upload the summaries to")
	flag.StringVar(&bqTable, "bq-table", "subject_summary", "BigQuery table to append the summaries to")
	flag.Parse()

	if src.Primary == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if (BQ.Project == "") != (BQ.Database == "") {
		log.Fatalln("--bq-project and --bq-database must be set together")
	}

	ctx := context.Background()

	var sclient *storage.Client
	var err error
	if strings.HasPrefix(src.Primary, "gs://") ||
		strings.HasPrefix(src.Fallback, "gs://") ||
		strings.HasPrefix(src.MetadataTable, "gs://") {
		sclient, err = storage.NewClient(ctx)
		if err != nil {
			log.Fatalln(err)
		}
	}

	ds, err := dataset.Load(ctx, src, sclient)
	if err != nil {
		log.Fatalln(err)
	}

	summaries, skipped := SummarizeAll(ds, top)
	for _, id := range skipped {
		log.Printf("Skipping subject %s: no matching sample and metadata\n", id)
	}

	if err := WriteTSV(STDOUT, summaries); err != nil {
		log.Fatalln(err)
	}

	cohort := NewCohort()
	for _, s := range summaries {
		cohort.Push(s)

		if printHistogram {
			if err := PrintHistogram(os.Stderr, s); err != nil {
				log.Fatalln(err)
			}
		}
	}
	log.Printf("Summarized %d subjects. Richness %.2f (SD %.2f). Shannon %.3f (SD %.3f).\n",
		cohort.Richness.N, cohort.Richness.Mean(), cohort.Richness.StandardDeviation(),
		cohort.Shannon.Mean(), cohort.Shannon.StandardDeviation())

	if BQ.Project == "" {
		return
	}

	BQ.Context = ctx
	BQ.Client, err = bigquery.NewClient(BQ.Context, BQ.Project)
	if err != nil {
		log.Fatalf("connecting to BigQuery: %v\n", err)
	}
	defer BQ.Client.Close()

	if err := UploadSummaries(&BQ, bqTable, summaries); err != nil {
		log.Fatalln(err)
	}
	log.Printf("Uploaded %d rows to %s.%s.%s\n", len(summaries), BQ.Project, BQ.Database, bqTable)
}

// PrintHistogram draws the distribution of the subject's abundances.
func PrintHistogram(w io.Writer, s Summary) error {
	fmt.Fprintf(w, "Subject %s (%d taxa)\n", s.ID, len(s.values))
	if len(s.values) == 0 {
		fmt.Fprintln(w, "  no abundances")
		return nil
	}

	hist := histogram.Hist(10, s.values)
	return histogram.Fprint(w, hist, histogram.Linear(40))
}
