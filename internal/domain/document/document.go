// Package document models a product document: a set of uniquely named fields
// holding arbitrary JSON values. Field order from the source is preserved.
package document

import (
	"bytes"
	"encoding/json"
	"errors"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ErrNotObject is returned when a document source is not a JSON object.
var ErrNotObject = errors.New("document: source is not a JSON object")

// Document is an ordered map of field name to value. Setting an existing
// field replaces its value in place.
type Document struct {
	fields *orderedmap.OrderedMap[string, Value]
}

// New creates an empty document.
func New() *Document {
	return &Document{fields: orderedmap.New[string, Value]()}
}

// Parse decodes a JSON object into a document.
func Parse(data []byte) (*Document, error) {
	d := New()
	if err := d.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Document) init() {
	if d.fields == nil {
		d.fields = orderedmap.New[string, Value]()
	}
}

// Set assigns a field value.
func (d *Document) Set(name string, v Value) {
	d.init()
	d.fields.Set(name, v)
}

// Get returns a field value.
func (d *Document) Get(name string) (Value, bool) {
	if d == nil || d.fields == nil {
		return Value{}, false
	}
	return d.fields.Get(name)
}

// Delete removes a field and returns its previous value.
func (d *Document) Delete(name string) (Value, bool) {
	if d == nil || d.fields == nil {
		return Value{}, false
	}
	return d.fields.Delete(name)
}

// Len returns the number of fields.
func (d *Document) Len() int {
	if d == nil || d.fields == nil {
		return 0
	}
	return d.fields.Len()
}

// Names returns field names in order.
func (d *Document) Names() []string {
	if d == nil || d.fields == nil {
		return nil
	}
	names := make([]string, 0, d.fields.Len())
	for p := d.fields.Oldest(); p != nil; p = p.Next() {
		names = append(names, p.Key)
	}
	return names
}

// MarshalJSON encodes fields in order.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if d != nil && d.fields != nil {
		first := true
		for p := d.fields.Oldest(); p != nil; p = p.Next() {
			if !first {
				buf.WriteByte(',')
			}
			first = false

			key, err := json.Marshal(p.Key)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')

			raw, err := p.Value.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(raw)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON replaces the document with the decoded object.
// Duplicate keys keep the first position and the last value.
func (d *Document) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return ErrNotObject
	}
	fields := orderedmap.New[string, Value]()
	if err := fields.UnmarshalJSON(trimmed); err != nil {
		return err
	}
	d.fields = fields
	return nil
}
