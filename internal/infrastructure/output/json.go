// Package output formats profile documents for the terminal or files.
package output

import (
	"io"

	"github.com/reglet-dev/profilekit/internal/infrastructure/codec"
)

// JSONFormatter formats documents as JSON with sorted keys.
type JSONFormatter struct {
	writer io.Writer
	indent int
}

// NewJSONFormatter creates a new JSON formatter.
// An indent of zero produces compact single-line output.
func NewJSONFormatter(w io.Writer, indent int) *JSONFormatter {
	return &JSONFormatter{
		writer: w,
		indent: indent,
	}
}

// Format writes v as JSON followed by a newline.
func (f *JSONFormatter) Format(v any) error {
	return codec.EncodeDocument(f.writer, v, f.indent)
}
