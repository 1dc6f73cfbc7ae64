package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ID is a subject identifier as it appeared in the input document. Strings
// and numbers are kept apart: "940" and 940 are different IDs when compared
// with Equal, but coerce to the same integer.
type ID struct {
	Text   string
	Quoted bool
}

// StringID builds the ID of a JSON string.
func StringID(s string) ID {
	return ID{Text: s, Quoted: true}
}

// NumberID builds the ID of a JSON number. Literals that spell the same
// number (940, 940.0, 9.4e2) share one canonical text.
func NumberID(literal string) ID {
	return ID{Text: canonicalNumber(literal)}
}

// canonicalNumber prints a number in plain decimal notation, switching to an
// exponent only for very large or very small magnitudes. Text that does not
// parse is kept as is.
func canonicalNumber(literal string) string {
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return literal
	}
	if f == 0 {
		return "0"
	}

	if abs := math.Abs(f); abs >= 1e21 || abs < 1e-6 {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (id ID) String() string {
	return id.Text
}

// Equal compares two IDs in their original representation.
func (id ID) Equal(other ID) bool {
	return id == other
}

// Int coerces the ID to an integer the way a lenient integer parser does:
// leading whitespace and an optional sign are skipped, then the leading run
// of decimal digits is read. Anything after the digits is ignored. If there
// are no digits, ok is false.
func (id ID) Int() (n int64, ok bool) {
	s := strings.TrimLeftFunc(id.Text, unicode.IsSpace)

	neg := false
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		neg = s[0] == '-'
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		n = -n
	}

	return n, true
}

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	switch {
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = StringID(s)
	case bytes.Equal(b, []byte("null")):
		*id = ID{}
	default:
		var num json.Number
		if err := json.Unmarshal(b, &num); err != nil {
			return fmt.Errorf("subject id %s is neither a string nor a number", b)
		}
		*id = NumberID(num.String())
	}

	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id.Quoted {
		return json.Marshal(id.Text)
	}
	if id.Text == "" {
		return []byte("null"), nil
	}

	return []byte(id.Text), nil
}
