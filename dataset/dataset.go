// Package dataset holds the belly-button biodiversity input document: the
// ordered list of subject names, one Sample per subject and one Metadata
// record per subject.
package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
	"gopkg.in/guregu/null.v3"
)

var (
	ErrSubjectNotFound = errors.New("subject not found")
	ErrNoSource        = errors.New("no dataset source was given")
)

// Dataset is the whole input document. It is treated as immutable once
// loaded; a reload produces a new Dataset.
type Dataset struct {
	Names    []ID       `json:"names"`
	Samples  []Sample   `json:"samples"`
	Metadata []Metadata `json:"metadata"`
}

// Sample is one subject's measurement set. The three sequences are index
// aligned: position i in each describes the same taxon.
type Sample struct {
	ID           ID           `json:"id"`
	OTUIDs       []int64      `json:"otu_ids"`
	OTULabels    []string     `json:"otu_labels"`
	SampleValues []null.Float `json:"sample_values"`
}

// UnmarshalJSON decodes a sample without letting a single bad cell fail the
// document: abundances that are not numbers become null, OTU ids are
// truncated to integers (0 when unusable) and non-string labels keep their
// literal text.
func (s *Sample) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID           ID                `json:"id"`
		OTUIDs       []json.RawMessage `json:"otu_ids"`
		OTULabels    []json.RawMessage `json:"otu_labels"`
		SampleValues []json.RawMessage `json:"sample_values"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	out := Sample{
		ID:           raw.ID,
		OTUIDs:       make([]int64, len(raw.OTUIDs)),
		OTULabels:    make([]string, len(raw.OTULabels)),
		SampleValues: make([]null.Float, len(raw.SampleValues)),
	}
	for i, cell := range raw.OTUIDs {
		if f := FiniteOrZero(lenientFloat(cell)); f >= math.MinInt64 && f < math.MaxInt64 {
			out.OTUIDs[i] = int64(f)
		}
	}
	for i, cell := range raw.OTULabels {
		out.OTULabels[i] = lenientString(cell)
	}
	for i, cell := range raw.SampleValues {
		out.SampleValues[i] = lenientFloat(cell)
	}

	*s = out

	return nil
}

// lenientFloat reads a JSON number or numeric string. Anything else is null.
func lenientFloat(cell json.RawMessage) null.Float {
	cell = bytes.TrimSpace(cell)
	if len(cell) == 0 {
		return null.Float{}
	}

	text := string(cell)
	if cell[0] == '"' {
		if err := json.Unmarshal(cell, &text); err != nil {
			return null.Float{}
		}
		text = strings.TrimSpace(text)
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return null.Float{}
	}

	return null.FloatFrom(f)
}

func lenientString(cell json.RawMessage) string {
	cell = bytes.TrimSpace(cell)
	if len(cell) == 0 || bytes.Equal(cell, []byte("null")) {
		return ""
	}

	var text string
	if err := json.Unmarshal(cell, &text); err != nil {
		return string(cell)
	}

	return text
}

// Len is the length of the prefix shared by all three sequences. Malformed
// samples are only ever read up to this length.
func (s Sample) Len() int {
	k := len(s.OTUIDs)
	if len(s.OTULabels) < k {
		k = len(s.OTULabels)
	}
	if len(s.SampleValues) < k {
		k = len(s.SampleValues)
	}

	return k
}

// Value returns the abundance at position i, or 0 when it is missing or not
// finite.
func (s Sample) Value(i int) float64 {
	if i < 0 || i >= len(s.SampleValues) {
		return 0
	}

	return FiniteOrZero(s.SampleValues[i])
}

// FiniteOrZero unwraps a nullable float, substituting 0 for null, NaN and
// infinities.
func FiniteOrZero(f null.Float) float64 {
	if !f.Valid || math.IsNaN(f.Float64) || math.IsInf(f.Float64, 0) {
		return 0
	}

	return f.Float64
}

// Parse decodes an input document.
func Parse(r io.Reader) (*Dataset, error) {
	ds := &Dataset{}
	if err := json.NewDecoder(r).Decode(ds); err != nil {
		return nil, pfx.Err(fmt.Errorf("decoding dataset: %w", err))
	}

	return ds, nil
}

// Subjects returns the selectable subject IDs in document order.
func (ds *Dataset) Subjects() []ID {
	if ds == nil {
		return nil
	}

	return ds.Names
}

// ParseID maps the text of a selector value back to the subject ID it came
// from, so that the original representation is used for matching. Text that
// matches no name is treated as a string ID.
func (ds *Dataset) ParseID(text string) ID {
	if ds != nil {
		for _, name := range ds.Names {
			if name.Text == text {
				return name
			}
		}
	}

	return StringID(text)
}

// Select returns the Sample and the Metadata for the given subject. Samples
// are matched on the exact original representation of their id; metadata
// records are matched numerically after coercing the subject id to an
// integer. Both must be present.
func (ds *Dataset) Select(id ID) (Sample, Metadata, error) {
	if ds == nil {
		return Sample{}, Metadata{}, ErrSubjectNotFound
	}

	sample, ok := ds.sample(id)
	if !ok {
		return Sample{}, Metadata{}, fmt.Errorf("%w: no sample with id %s", ErrSubjectNotFound, id)
	}

	meta, ok := ds.metadata(id)
	if !ok {
		return Sample{}, Metadata{}, fmt.Errorf("%w: no metadata with id %s", ErrSubjectNotFound, id)
	}

	return sample, meta, nil
}

func (ds *Dataset) sample(id ID) (Sample, bool) {
	for _, s := range ds.Samples {
		if s.ID.Equal(id) {
			return s, true
		}
	}

	return Sample{}, false
}

func (ds *Dataset) metadata(id ID) (Metadata, bool) {
	n, ok := id.Int()
	if !ok {
		return Metadata{}, false
	}

	for _, m := range ds.Metadata {
		if m.ID.Valid && m.ID.Float64 == float64(n) {
			return m, true
		}
	}

	return Metadata{}, false
}
