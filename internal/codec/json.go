package codec

import (
	"encoding/json"
	"io"
)

// JSONEncoder renders values as indented JSON.
type JSONEncoder struct{}

// Encode writes v as JSON.
func (JSONEncoder) Encode(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Format returns the format name.
func (JSONEncoder) Format() string { return "json" }
