package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/reglet-dev/profilekit/internal/domain/entities"
	"github.com/reglet-dev/profilekit/internal/infrastructure/codec"
)

// TableFormatter formats documents as an aligned key/value table.
// Provenance envelopes ({"document", "provenance"}) get a source column.
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// Format writes v as a table.
func (f *TableFormatter) Format(v any) error {
	doc, sources, err := tableRows(v)
	if err != nil {
		return err
	}

	if len(doc) == 0 {
		_, err := fmt.Fprintln(f.writer, "No keys.")
		return err
	}

	tw := tabwriter.NewWriter(f.writer, 0, 0, 2, ' ', 0)
	if sources != nil {
		fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE")
	} else {
		fmt.Fprintln(tw, "KEY\tVALUE")
	}

	for _, key := range doc.Keys() {
		value := renderValue(doc[key])
		if sources != nil {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", key, value, sources[key])
		} else {
			fmt.Fprintf(tw, "%s\t%s\n", key, value)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(f.writer, strings.Repeat("─", 40))
	_, err = fmt.Fprintf(f.writer, "Keys: %d\n", len(doc))
	return err
}

// tableRows unpacks the values the CLI prints.
func tableRows(v any) (entities.Document, map[string]string, error) {
	switch val := v.(type) {
	case entities.Document:
		return val, nil, nil
	case map[string]any:
		inner, hasDoc := val["document"].(entities.Document)
		sources, hasSources := val["provenance"].(map[string]string)
		if hasDoc && hasSources {
			return inner, sources, nil
		}
		return entities.Document(val), nil, nil
	default:
		return nil, nil, fmt.Errorf("table format does not support %T", v)
	}
}

// renderValue prints scalars bare and everything else as compact JSON.
func renderValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case []any:
		parts := make([]string, len(val))
		for i, inner := range val {
			parts[i] = renderValue(inner)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		data, err := codec.MarshalDocument(v, 0)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(bytes.TrimSpace(data))
	}
}
