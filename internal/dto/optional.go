// Package dto holds the JSON request bodies of the mutation endpoints.
package dto

import (
	"bytes"
	"encoding/json"
)

// Optional distinguishes an absent key from an explicit null and from a
// value. Plain string fields cannot tell these apart.
type Optional[T any] struct {
	Present bool
	Null    bool
	Value   T
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Present: true, Value: v}
}

func Null[T any]() Optional[T] {
	return Optional[T]{Present: true, Null: true}
}

// Valid reports whether a non-null value was sent.
func (o Optional[T]) Valid() bool {
	return o.Present && !o.Null
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
