package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/guregu/null.v3"
)

const (
	KeyID    = "id"
	KeyWFreq = "wfreq"
)

// Field is one metadata entry. Value holds a string, a float64, a bool or
// nil; nested values are kept as decoded by encoding/json.
type Field struct {
	Key   string
	Value interface{}
}

// Metadata is one subject's demographic record. Fields keeps the keys in the
// order they were read so tables can be drawn in document order. ID and WFreq
// are only valid when the document held a number for them.
type Metadata struct {
	ID     null.Float
	WFreq  null.Float
	Fields []Field
}

// Get returns the value stored under key.
func (m Metadata) Get(key string) (interface{}, bool) {
	for _, f := range m.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}

	return nil, false
}

// Set replaces the value stored under key, or appends it.
func (m *Metadata) Set(key string, value interface{}) {
	for i, f := range m.Fields {
		if f.Key == key {
			m.Fields[i].Value = value
			m.index(key, value)
			return
		}
	}

	m.Fields = append(m.Fields, Field{Key: key, Value: value})
	m.index(key, value)
}

func (m *Metadata) index(key string, value interface{}) {
	var target *null.Float
	switch key {
	case KeyID:
		target = &m.ID
	case KeyWFreq:
		target = &m.WFreq
	default:
		return
	}

	if f, ok := value.(float64); ok {
		*target = null.FloatFrom(f)
	} else {
		*target = null.Float{}
	}
}

func (m *Metadata) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*m = Metadata{}
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("metadata must be a JSON object, got %v", tok)
	}

	out := Metadata{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("metadata key %v is not a string", keyTok)
		}

		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("metadata key %s: %w", key, err)
		}

		out.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*m = out

	return nil
}

func (m Metadata) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range m.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}
