// Package filesystem provides a file-backed profile document store.
//
// Profiles are laid out one directory per category:
//
//	<root>/machine/printer_*common*.json
//	<root>/filament/Generic PLA.json
//	<root>/process/0.20mm SPEED.json
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/reglet-dev/profilekit/internal/domain/entities"
	"github.com/reglet-dev/profilekit/internal/domain/repositories"
	"github.com/reglet-dev/profilekit/internal/domain/values"
	"github.com/reglet-dev/profilekit/internal/infrastructure/codec"
)

// Ensure interface compliance
var _ repositories.DocumentStore = (*DocumentRepository)(nil)

// DocumentRepository reads and writes profile documents under a root directory.
type DocumentRepository struct {
	dirs   map[values.Category]string
	root   string
	indent int
}

// Option configures a DocumentRepository.
type Option func(*DocumentRepository)

// WithIndent sets the indentation width used by Save.
func WithIndent(indent int) Option {
	return func(r *DocumentRepository) {
		r.indent = indent
	}
}

// WithCategoryDir stores a category's documents in dir instead of <root>/<category>.
func WithCategoryDir(category values.Category, dir string) Option {
	return func(r *DocumentRepository) {
		r.dirs[category] = dir
	}
}

// NewDocumentRepository creates a repository rooted at root.
func NewDocumentRepository(root string, opts ...Option) *DocumentRepository {
	r := &DocumentRepository{
		dirs:   make(map[values.Category]string),
		root:   root,
		indent: codec.DefaultIndent,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Root returns the repository root directory.
func (r *DocumentRepository) Root() string {
	return r.root
}

// CategoryDir returns the directory holding documents of a category.
func (r *DocumentRepository) CategoryDir(category values.Category) string {
	if dir, ok := r.dirs[category]; ok {
		return dir
	}
	return filepath.Join(r.root, category.String())
}

// Location returns the file path backing a profile.
func (r *DocumentRepository) Location(ref values.ProfileRef) string {
	return filepath.Join(r.CategoryDir(ref.Category()), fileName(ref))
}

// Load reads and decodes the document for ref.
func (r *DocumentRepository) Load(_ context.Context, ref values.ProfileRef) (entities.Document, error) {
	location := r.Location(ref)

	// Security: Use os.OpenRoot so profile names cannot escape the category directory
	root, err := os.OpenRoot(r.CategoryDir(ref.Category()))
	if err != nil {
		return nil, r.openError(ref, location, err)
	}
	defer func() {
		_ = root.Close() // Best-effort cleanup
	}()

	file, err := root.Open(fileName(ref))
	if err != nil {
		return nil, r.openError(ref, location, err)
	}
	defer func() {
		_ = file.Close() // Best-effort cleanup
	}()

	doc, err := codec.ReadDocument(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}
	return doc, nil
}

// Save writes the document for ref with sorted keys, creating the category directory if needed.
func (r *DocumentRepository) Save(_ context.Context, ref values.ProfileRef, doc entities.Document) error {
	location := r.Location(ref)
	dir := r.CategoryDir(ref.Category())

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}

	data, err := codec.MarshalDocument(doc, r.indent)
	if err != nil {
		return fmt.Errorf("%s: %w", location, err)
	}

	root, err := os.OpenRoot(dir)
	if err != nil {
		return fmt.Errorf("failed to open profile directory: %w", err)
	}
	defer func() {
		_ = root.Close() // Best-effort cleanup
	}()

	// Write beside the target and rename over it, so readers never see a partial file.
	name := fileName(ref)
	tmpName := filepath.Join(filepath.Dir(name), "."+filepath.Base(name)+"."+uuid.NewString()+".tmp")

	//nolint:gosec // G302: profile documents are not secrets
	file, err := root.OpenFile(tmpName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to write profile %s: %w", location, err)
	}
	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		_ = root.Remove(tmpName)
		return fmt.Errorf("failed to write profile %s: %w", location, err)
	}
	if err := file.Close(); err != nil {
		_ = root.Remove(tmpName)
		return fmt.Errorf("failed to write profile %s: %w", location, err)
	}
	if err := root.Rename(tmpName, name); err != nil {
		_ = root.Remove(tmpName)
		return fmt.Errorf("failed to write profile %s: %w", location, err)
	}
	return nil
}

// fileName is the document's file name relative to its category directory.
func fileName(ref values.ProfileRef) string {
	return ref.Name() + ".json"
}

func (r *DocumentRepository) openError(ref values.ProfileRef, location string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return &entities.DocumentNotFoundError{Ref: ref, Location: location, Cause: err}
	}
	return fmt.Errorf("failed to open profile %s: %w", location, err)
}
