package values

import (
	"fmt"
	"strings"
)

// ProfileRef identifies a profile document by category and file name.
// Names are stored as file names, so *common* references of different
// categories never collide.
type ProfileRef struct {
	category Category
	name     string
}

// NewProfileRef creates a ProfileRef for a profile name as written in
// inherits, expanding the *common* sentinel for category.
func NewProfileRef(category Category, name string) (ProfileRef, error) {
	return NewFileProfileRef(category, category.ExpandName(name))
}

// NewFileProfileRef creates a ProfileRef for the document stored as
// <fileName>.json in category's directory. The name is used literally.
func NewFileProfileRef(category Category, fileName string) (ProfileRef, error) {
	if category.IsEmpty() {
		return ProfileRef{}, fmt.Errorf("profile %q: category cannot be empty", fileName)
	}
	if strings.TrimSpace(fileName) == "" {
		return ProfileRef{}, fmt.Errorf("profile name cannot be empty")
	}
	return ProfileRef{category: category, name: fileName}, nil
}

// MustNewProfileRef creates a ProfileRef or panics
func MustNewProfileRef(category Category, name string) ProfileRef {
	ref, err := NewProfileRef(category, name)
	if err != nil {
		panic(err)
	}
	return ref
}

// Category returns the profile category.
func (r ProfileRef) Category() Category {
	return r.category
}

// Name returns the profile file name without its extension.
func (r ProfileRef) Name() string {
	return r.name
}

// String returns "category/name".
func (r ProfileRef) String() string {
	return r.category.String() + "/" + r.name
}

// IsEmpty returns true if this is the zero value
func (r ProfileRef) IsEmpty() bool {
	return r.name == ""
}

// MarshalText implements encoding.TextMarshaler
func (r ProfileRef) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
