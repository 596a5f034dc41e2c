// Package codec renders engine values (topologies, plans, reports) in
// machine-readable formats for the CLI's --format flag.
package codec

import (
	"fmt"
	"io"
)

// Encoder writes a value in one output format.
type Encoder interface {
	Encode(v any, w io.Writer) error
	Format() string
}

// ForFormat returns the encoder for a format name.
func ForFormat(format string) (Encoder, error) {
	switch format {
	case "json":
		return JSONEncoder{}, nil
	case "yaml":
		return YAMLEncoder{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q (supported: json, yaml)", format)
	}
}
