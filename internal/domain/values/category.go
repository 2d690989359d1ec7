package values

import (
	"fmt"
	"path/filepath"
	"strings"
)

// CommonProfileName is the sentinel ancestor name that expands to the
// category-specific common profile.
const CommonProfileName = "*common*"

// Category represents the kind of settings a profile carries.
// Categories are a closed set: machine, filament and process.
type Category struct {
	value string
}

// Predefined categories
var (
	CategoryMachine  = Category{"machine"}
	CategoryFilament = Category{"filament"}
	CategoryProcess  = Category{"process"}
)

// categoryPrefixes maps each category to its filename prefix for the common profile.
var categoryPrefixes = map[Category]string{
	CategoryMachine:  "printer_",
	CategoryFilament: "filament_",
	CategoryProcess:  "",
}

// NewCategory creates a Category from string
func NewCategory(s string) (Category, error) {
	trimmed := strings.TrimSpace(s)
	names := make([]string, 0, len(categoryPrefixes))
	for _, c := range AllCategories() {
		if c.value == trimmed {
			return c, nil
		}
		names = append(names, c.value)
	}
	return Category{}, fmt.Errorf("unknown category: %q (valid: %s)", s, strings.Join(names, ", "))
}

// AllCategories returns every known category in a stable order.
func AllCategories() []Category {
	return []Category{CategoryMachine, CategoryFilament, CategoryProcess}
}

// String returns the string representation
func (c Category) String() string {
	return c.value
}

// IsEmpty returns true if this is the zero value
func (c Category) IsEmpty() bool {
	return c.value == ""
}

// Prefix returns the filename prefix used for the category's common profile.
func (c Category) Prefix() string {
	return categoryPrefixes[c]
}

// ExpandName rewrites the *common* sentinel to its category-prefixed form.
// Any other name is returned unchanged.
func (c Category) ExpandName(name string) string {
	if name == CommonProfileName {
		return c.Prefix() + CommonProfileName
	}
	return name
}

// MarshalText implements encoding.TextMarshaler
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Category) UnmarshalText(data []byte) error {
	parsed, err := NewCategory(string(data))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Locate returns the document path for a profile name of the given category
// inside baseDir. Only the *common* sentinel receives the category prefix.
func Locate(baseDir string, category Category, name string) string {
	return filepath.Join(baseDir, category.ExpandName(name)+".json")
}
