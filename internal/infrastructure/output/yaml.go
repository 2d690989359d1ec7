package output

import (
	"encoding/json"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/reglet-dev/profilekit/internal/domain/entities"
)

// YAMLFormatter formats documents as YAML.
type YAMLFormatter struct {
	writer io.Writer
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(w io.Writer) *YAMLFormatter {
	return &YAMLFormatter{writer: w}
}

// Format writes v as YAML.
func (f *YAMLFormatter) Format(v any) error {
	encoder := yaml.NewEncoder(f.writer, yaml.Indent(2))

	if err := encoder.Encode(toYAMLValue(v)); err != nil {
		return err
	}

	return encoder.Close()
}

// toYAMLValue converts decoder-specific types into plain values the YAML
// encoder renders naturally. json.Number becomes an int64 or float64 when it
// parses as one, so numbers are not emitted as quoted strings.
func toYAMLValue(v any) any {
	switch val := v.(type) {
	case entities.Document:
		return toYAMLValue(map[string]any(val))
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[k] = toYAMLValue(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = toYAMLValue(inner)
		}
		return out
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if fl, err := val.Float64(); err == nil {
			return fl
		}
		return val.String()
	default:
		return v
	}
}
