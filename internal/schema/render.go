package schema

import (
	"bytes"

	"github.com/goccy/go-json"
)

// Pair is one key of a rendered object.
type Pair struct {
	Key   string
	Value interface{}
}

// Object is a JSON object that keeps its key order when marshalled.
type Object []Pair

func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(p.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the value stored under key.
func (o Object) Get(key string) (interface{}, bool) {
	for _, p := range o {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// Render returns id followed by every table field of src in declared order,
// then any extra pairs.
func (s *Schema[T]) Render(id uint, src *T, extra ...Pair) Object {
	out := make(Object, 0, len(s.Fields)+1+len(extra))
	out = append(out, Pair{Key: "id", Value: id})
	for _, f := range s.Fields {
		out = append(out, Pair{Key: f.Name, Value: *f.Value(src)})
	}
	return append(out, extra...)
}
