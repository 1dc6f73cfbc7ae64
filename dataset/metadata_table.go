package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"io/ioutil"
	"strconv"
	"strings"

	"github.com/carbocation/bellybutton"
)

// ImportMetadataTable reads metadata records from a delimited table with a
// header row. The delimiter is sniffed. An "id" column is required. Cells
// that parse as numbers become numbers; empty and NA cells become null.
func ImportMetadataTable(r io.Reader) ([]Metadata, error) {
	tableBytes, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(bytes.NewReader(tableBytes))
	cr.Comma = bellybutton.DetermineDelimiter(bytes.NewReader(tableBytes))
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	recs, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("metadata table is empty")
	}

	header := recs[0]
	idCol := -1
	for j, col := range header {
		header[j] = strings.TrimSpace(col)
		if header[j] == KeyID {
			idCol = j
		}
	}
	if idCol < 0 {
		return nil, fmt.Errorf("metadata table has no %q column: %v", KeyID, header)
	}

	out := make([]Metadata, 0, len(recs)-1)
	for i, cols := range recs {
		if i == 0 {
			continue
		}

		m := Metadata{}
		for j, key := range header {
			var cell string
			if j < len(cols) {
				cell = cols[j]
			}
			m.Set(key, typedCell(cell))
		}

		if !m.ID.Valid {
			idCell, _ := m.Get(KeyID)
			return nil, fmt.Errorf("row %d: id %v is not numeric", i+1, idCell)
		}

		out = append(out, m)
	}

	return out, nil
}

func typedCell(cell string) interface{} {
	cell = strings.TrimSpace(cell)
	if cell == "" || strings.EqualFold(cell, "NA") {
		return nil
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return f
	}

	return cell
}

// MergeMetadata overlays records onto the dataset's metadata. A record whose
// numeric id matches an existing entry has its fields set on that entry (new
// keys are appended); other records are appended whole.
func (ds *Dataset) MergeMetadata(records []Metadata) {
	for _, rec := range records {
		merged := false
		for i, existing := range ds.Metadata {
			if !existing.ID.Valid || existing.ID.Float64 != rec.ID.Float64 {
				continue
			}

			// Copy so that other holders of the old slice are unaffected
			fields := make([]Field, len(existing.Fields))
			copy(fields, existing.Fields)
			existing.Fields = fields

			for _, f := range rec.Fields {
				existing.Set(f.Key, f.Value)
			}
			ds.Metadata[i] = existing
			merged = true
			break
		}

		if !merged {
			ds.Metadata = append(ds.Metadata, rec)
		}
	}
}
