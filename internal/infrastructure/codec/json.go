// Package codec reads and writes profile documents as JSON.
//
// Documents are read leniently: JSONC comments and trailing commas are
// stripped before decoding, and numbers are kept as json.Number so their
// textual form survives a read/write cycle. Documents are written with
// sorted keys and stable indentation so output diffs cleanly.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/reglet-dev/profilekit/internal/domain/entities"
	"github.com/tidwall/jsonc"
)

// DefaultIndent is the indentation width used when none is configured.
const DefaultIndent = 4

// DecodeDocument parses a JSON (or JSONC) object into a Document.
func DecodeDocument(data []byte) (entities.Document, error) {
	stripped := jsonc.ToJSON(data)

	decoder := json.NewDecoder(bytes.NewReader(stripped))
	decoder.UseNumber()

	var doc entities.Document
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode profile JSON: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("failed to decode profile JSON: document must be an object")
	}
	if decoder.More() {
		return nil, fmt.Errorf("failed to decode profile JSON: trailing data after document")
	}
	return doc, nil
}

// ReadDocument decodes a document from r.
func ReadDocument(r io.Reader) (entities.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	return DecodeDocument(data)
}

// EncodeDocument serializes v (a Document or any JSON-compatible value)
// with sorted map keys, indent spaces per level and a trailing newline.
// An indent of zero produces compact output.
func EncodeDocument(w io.Writer, v any, indent int) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if indent > 0 {
		encoder.SetIndent("", strings.Repeat(" ", indent))
	}
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode profile JSON: %w", err)
	}
	return nil
}

// MarshalDocument is EncodeDocument into a byte slice.
func MarshalDocument(v any, indent int) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeDocument(&buf, v, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
