package codec

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLEncoder renders values as YAML.
type YAMLEncoder struct{}

// Encode writes v as YAML.
func (YAMLEncoder) Encode(v any, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(v)
}

// Format returns the format name.
func (YAMLEncoder) Format() string { return "yaml" }
