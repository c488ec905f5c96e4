package editorial

import (
	"bytes"
	"encoding/json"
)

// Field is a presence-aware optional value for partial updates. It
// distinguishes a key that was omitted from the payload (Set=false)
// from one that was present with an explicit null (Set=true,
// Valid=false), so "leave untouched" and "clear" are different
// operations at the transport boundary. The Valid-flag shape follows
// the pgtype convention used elsewhere in the storage layer.
type Field[T any] struct {
	Value T
	Valid bool // value is non-null
	Set   bool // key was present in the payload
}

// NewField returns a Field carrying a concrete value.
func NewField[T any](v T) Field[T] {
	return Field[T]{Value: v, Valid: true, Set: true}
}

// NullField returns a Field representing an explicit null (clear).
func NullField[T any]() Field[T] {
	return Field[T]{Set: true}
}

var jsonNull = []byte("null")

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(data, jsonNull) {
		var zero T
		f.Value = zero
		f.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &f.Value); err != nil {
		return err
	}
	f.Valid = true
	return nil
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || !f.Valid {
		return jsonNull, nil
	}
	return json.Marshal(f.Value)
}
