package document

import (
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind identifies which variant a Value holds.
type Kind int

const (
	_ Kind = iota // zero value is not a valid kind

	KindScalar
	KindMapping
	KindSequence
)

// Value is one node of an issue document: a Scalar, a *Mapping or a
// *Sequence.
type Value interface {
	Kind() Kind
	json.MarshalerTo
}

var (
	_ Value = Scalar("")
	_ Value = (*Mapping)(nil)
	_ Value = (*Sequence)(nil)
)

// Scalar is a leaf string value. Cell text is never coerced to numbers or
// booleans.
type Scalar string

// Kind implements Value.
func (Scalar) Kind() Kind { return KindScalar }

// MarshalJSONTo implements json.MarshalerTo.
func (s Scalar) MarshalJSONTo(enc *jsontext.Encoder) error {
	return enc.WriteToken(jsontext.String(string(s)))
}

// Entry is a single key-value pair of a Mapping.
type Entry struct {
	Key   string
	Value Value
}

// Mapping is an object keyed by name. Keys keep the order in which they
// were first set so that encoding is deterministic.
type Mapping struct {
	entries []Entry
	index   map[string]int
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{index: make(map[string]int)}
}

// Kind implements Value.
func (*Mapping) Kind() Kind { return KindMapping }

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}

	return len(m.entries)
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (Value, bool) {
	if m == nil {
		return nil, false
	}

	i, ok := m.index[key]
	if !ok {
		return nil, false
	}

	return m.entries[i].Value, true
}

// Set stores v under key. An existing key keeps its position.
func (m *Mapping) Set(key string, v Value) {
	if m.index == nil {
		m.index = make(map[string]int)
	}

	if i, ok := m.index[key]; ok {
		m.entries[i].Value = v
		return
	}

	m.index[key] = len(m.entries)
	m.entries = append(m.entries, Entry{Key: key, Value: v})
}

// Entries returns the entries in insertion order. The slice must not be
// modified.
func (m *Mapping) Entries() []Entry {
	if m == nil {
		return nil
	}

	return m.entries
}

// MarshalJSONTo implements json.MarshalerTo.
func (m *Mapping) MarshalJSONTo(enc *jsontext.Encoder) error {
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return err
	}

	for _, e := range m.Entries() {
		if err := enc.WriteToken(jsontext.String(e.Key)); err != nil {
			return err
		}

		if err := e.Value.MarshalJSONTo(enc); err != nil {
			return err
		}
	}

	return enc.WriteToken(jsontext.EndObject)
}

// Sequence is an ordered list of values.
type Sequence struct {
	items []Value
}

// NewSequence returns an empty sequence.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Kind implements Value.
func (*Sequence) Kind() Kind { return KindSequence }

// Len returns the number of items.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}

	return len(s.items)
}

// At returns the item at index i. It panics if i is out of range.
func (s *Sequence) At(i int) Value {
	return s.items[i]
}

// Append adds v at the end of the sequence.
func (s *Sequence) Append(v Value) {
	s.items = append(s.items, v)
}

// Set replaces the item at index i. It panics if i is out of range.
func (s *Sequence) Set(i int, v Value) {
	s.items[i] = v
}

// Items returns the items in order. The slice must not be modified.
func (s *Sequence) Items() []Value {
	if s == nil {
		return nil
	}

	return s.items
}

// MarshalJSONTo implements json.MarshalerTo.
func (s *Sequence) MarshalJSONTo(enc *jsontext.Encoder) error {
	if err := enc.WriteToken(jsontext.BeginArray); err != nil {
		return err
	}

	for _, v := range s.Items() {
		if err := v.MarshalJSONTo(enc); err != nil {
			return err
		}
	}

	return enc.WriteToken(jsontext.EndArray)
}

// ToAny converts v into plain Go values: string, map[string]any and []any.
func ToAny(v Value) any {
	switch v := v.(type) {
	case Scalar:
		return string(v)
	case *Mapping:
		out := make(map[string]any, v.Len())
		for _, e := range v.Entries() {
			out[e.Key] = ToAny(e.Value)
		}

		return out
	case *Sequence:
		out := make([]any, 0, v.Len())
		for _, item := range v.Items() {
			out = append(out, ToAny(item))
		}

		return out
	default:
		return nil
	}
}
