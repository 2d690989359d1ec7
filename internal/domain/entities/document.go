// Package entities contains domain entities for the profilekit domain model.
package entities

import (
	"sort"
	"strings"

	"github.com/reglet-dev/profilekit/internal/domain/values"
)

// Reserved document keys.
const (
	// KeyInherits holds the inheritance declaration.
	KeyInherits = "inherits"
	// KeyType optionally overrides the category a document belongs to.
	KeyType = "type"
)

// InheritsSeparator separates ancestor names in a raw inheritance declaration.
const InheritsSeparator = "; "

// Document is a flat profile document.
// Values are opaque to the domain except for the reserved keys above;
// they keep whatever structure the decoder produced.
type Document map[string]any

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = CopyValue(v)
	}
	return out
}

// Keys returns the document keys in sorted order.
func (d Document) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Inherits parses the inheritance declaration into an ordered list of ancestor names.
// An absent or empty declaration yields an empty list.
func (d Document) Inherits() ([]string, error) {
	raw, ok := d[KeyInherits]
	if !ok || raw == nil {
		return nil, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, &InvalidDocumentError{
			Key:    KeyInherits,
			Reason: "must be a string",
		}
	}
	var names []string
	for _, name := range strings.Split(s, InheritsSeparator) {
		if name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// EffectiveCategory returns the category declared by the document's type key,
// falling back to the supplied category when the key is absent.
func (d Document) EffectiveCategory(fallback values.Category) (values.Category, error) {
	raw, ok := d[KeyType]
	if !ok {
		return fallback, nil
	}
	s, ok := raw.(string)
	if !ok {
		return values.Category{}, &InvalidDocumentError{
			Key:    KeyType,
			Reason: "must be a string",
		}
	}
	category, err := values.NewCategory(s)
	if err != nil {
		return values.Category{}, &UnknownCategoryError{Category: s}
	}
	return category, nil
}

// CopyValue deep-copies the container types produced by JSON and YAML decoders.
// Scalars are returned as-is.
func CopyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[k] = CopyValue(inner)
		}
		return out
	case Document:
		return val.Clone()
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = CopyValue(inner)
		}
		return out
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	default:
		return v
	}
}
