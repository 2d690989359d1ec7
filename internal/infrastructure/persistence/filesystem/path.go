package filesystem

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/reglet-dev/profilekit/internal/domain/values"
)

// ProfilePath is a profile file path split into its store coordinates.
type ProfilePath struct {
	Root     string
	Dir      string
	Category values.Category
	Name     string
}

// ParseProfilePath splits <root>/<category>/<name>.json.
// If category is non-empty it overrides the containing directory's name,
// which then does not need to be a category at all; Dir records where the
// file actually lives.
func ParseProfilePath(path string, category values.Category) (ProfilePath, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return ProfilePath{}, fmt.Errorf("resolving path %q: %w", path, err)
	}
	if filepath.Ext(absPath) != ".json" {
		return ProfilePath{}, fmt.Errorf("profile %q: expected a .json file", path)
	}

	dir := filepath.Dir(absPath)
	name := strings.TrimSuffix(filepath.Base(absPath), ".json")

	if category.IsEmpty() {
		category, err = values.NewCategory(filepath.Base(dir))
		if err != nil {
			return ProfilePath{}, fmt.Errorf("profile %q: cannot infer category from directory (use --category): %w", path, err)
		}
	}

	return ProfilePath{
		Root:     filepath.Dir(dir),
		Dir:      dir,
		Category: category,
		Name:     name,
	}, nil
}

// Ref returns the reference of the file itself. A file named *common*.json
// is addressed as is, never as its category's expanded common profile.
func (p ProfilePath) Ref() (values.ProfileRef, error) {
	return values.NewFileProfileRef(p.Category, p.Name)
}
