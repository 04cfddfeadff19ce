// Package hujsonx contains github.com/tailscale/hujson extensions.
package hujsonx

import (
	"encoding/json"

	"github.com/tailscale/hujson"
)

// Unmarshal is like [json.Unmarshal] except that data may be HuJSON,
// i.e., JSON with comments and trailing commas.
func Unmarshal(data []byte, v any) error {
	std, err := hujson.Standardize(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(std, v)
}

// MarshalIndent serializes v to JSON and formats it using the
// canonical HuJSON style, with a trailing newline.
func MarshalIndent(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return hujson.Format(data)
}
