package dataset

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/storage"
	"github.com/carbocation/bellybutton"
	"github.com/carbocation/pfx"
)

// Source names where the input document lives. Each location may be a local
// path, a gs:// object or an http(s) URL, optionally compressed. Fallback is
// only read when Primary cannot be loaded.
type Source struct {
	Primary  string
	Fallback string

	// MetadataTable optionally names a delimited table whose rows are merged
	// over the document's metadata.
	MetadataTable string
}

func (s Source) String() string {
	if s.Fallback == "" {
		return s.Primary
	}

	return fmt.Sprintf("%s (fallback %s)", s.Primary, s.Fallback)
}

// Load reads and decodes the dataset described by src. The storage client
// may be nil when no location uses gs://.
func Load(ctx context.Context, src Source, client *storage.Client) (*Dataset, error) {
	locations := make([]string, 0, 2)
	for _, loc := range []string{src.Primary, src.Fallback} {
		if loc != "" {
			locations = append(locations, loc)
		}
	}
	if len(locations) == 0 {
		return nil, ErrNoSource
	}

	var ds *Dataset
	var errs []error
	for _, loc := range locations {
		var err error
		ds, err = loadOne(ctx, loc, client)
		if err == nil {
			break
		}

		log.Printf("Could not load dataset from %s: %v\n", loc, err)
		errs = append(errs, err)
	}

	if ds == nil {
		return nil, pfx.Err(fmt.Errorf("all dataset locations failed: %v", errs))
	}

	if src.MetadataTable != "" {
		tableBytes, err := bellybutton.OpenFileOrURL(ctx, src.MetadataTable, client)
		if err != nil {
			return nil, pfx.Err(err)
		}

		records, err := ImportMetadataTable(bytes.NewReader(tableBytes))
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("%s: %w", src.MetadataTable, err))
		}

		ds.MergeMetadata(records)
		log.Printf("Merged %d metadata rows from %s\n", len(records), src.MetadataTable)
	}

	return ds, nil
}

func loadOne(ctx context.Context, location string, client *storage.Client) (*Dataset, error) {
	docBytes, err := bellybutton.OpenFileOrURL(ctx, location, client)
	if err != nil {
		return nil, err
	}

	return Parse(bytes.NewReader(docBytes))
}
