package domain

import (
	"encoding/json"
	"strings"
)

// MetafieldState tags the outcome of decoding a metafield
type MetafieldState string

const (
	MetafieldParsed    MetafieldState = "parsed"
	MetafieldMissing   MetafieldState = "missing"
	MetafieldMalformed MetafieldState = "malformed"
)

// MetafieldResult is Parsed(Value), Missing, or Malformed(Raw)
type MetafieldResult[T any] struct {
	State MetafieldState
	Value T
	Raw   string
}

// DecodeMetafield decodes a JSON metafield value into T
func DecodeMetafield[T any](m *Metafield) MetafieldResult[T] {
	if m == nil || strings.TrimSpace(m.Value) == "" {
		return MetafieldResult[T]{State: MetafieldMissing}
	}

	var v T
	if err := json.Unmarshal([]byte(m.Value), &v); err != nil {
		return MetafieldResult[T]{State: MetafieldMalformed, Raw: m.Value}
	}
	return MetafieldResult[T]{State: MetafieldParsed, Value: v}
}
