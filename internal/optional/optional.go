// Package optional contains safer code to handle optional values.
package optional

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
)

// Value is an optional value. The zero value is an empty Value.
//
// The workflow uses it for state that only exists after some event
// happened (e.g., the dataset id only exists after a successful upload).
type Value[T any] struct {
	indirect *T
}

// None constructs an empty Value.
func None[T any]() Value[T] {
	return Value[T]{nil}
}

// Some constructs a Value containing the given value. When T is a pointer
// type and the pointer is nil, the result is equivalent to calling None.
func Some[T any](value T) Value[T] {
	rv := reflect.ValueOf(&value).Elem()
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return None[T]()
	}
	return Value[T]{&value}
}

// errIsNone is the panic value used by Unwrap.
var errIsNone = errors.New("is none")

// IsNone returns whether this Value is empty.
func (v Value[T]) IsNone() bool {
	return v.indirect == nil
}

// IsSome returns whether this Value is not empty.
func (v Value[T]) IsSome() bool {
	return v.indirect != nil
}

// Unwrap returns the underlying value or panics when the Value is empty.
func (v Value[T]) Unwrap() T {
	if v.indirect == nil {
		panic(errIsNone)
	}
	return *v.indirect
}

// UnwrapOr returns the underlying value or the given fallback.
func (v Value[T]) UnwrapOr(fallback T) T {
	if v.indirect == nil {
		return fallback
	}
	return *v.indirect
}

// MarshalJSON implements json.Marshaler. An empty Value is `null`.
func (v Value[T]) MarshalJSON() ([]byte, error) {
	if v.indirect == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*v.indirect)
}

// UnmarshalJSON implements json.Unmarshaler. A `null` input produces an empty Value.
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		v.indirect = nil
		return nil
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*v = Some(value)
	return nil
}
