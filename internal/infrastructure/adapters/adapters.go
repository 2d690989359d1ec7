// Package adapters provides infrastructure adapters that implement application ports.
// These adapters wrap existing infrastructure components to satisfy port interfaces.
package adapters

import (
	"context"
	"fmt"

	"github.com/reglet-dev/profilekit/internal/application/ports"
	"github.com/reglet-dev/profilekit/internal/domain/repositories"
	"github.com/reglet-dev/profilekit/internal/infrastructure/persistence/filesystem"
	"github.com/reglet-dev/profilekit/internal/infrastructure/system"
	"github.com/reglet-dev/profilekit/internal/infrastructure/validation"
)

// Ensure adapters implement ports at compile time
var (
	_ ports.ProfileStorage       = (*FileProfileStorage)(nil)
	_ ports.SystemConfigProvider = (*SystemConfigAdapter)(nil)
)

// FileProfileStorage maps profile file paths onto filesystem document stores.
type FileProfileStorage struct {
	validator *validation.DocumentValidator
}

// NewFileProfileStorage creates a storage adapter. validator may be nil,
// in which case validation requests are rejected.
func NewFileProfileStorage(validator *validation.DocumentValidator) *FileProfileStorage {
	return &FileProfileStorage{validator: validator}
}

// Open parses <root>/<category>/<name>.json and opens a store over its tree.
func (s *FileProfileStorage) Open(path string, opts ports.SourceOptions) (*ports.OpenedProfile, error) {
	parsed, err := filesystem.ParseProfilePath(path, opts.Category)
	if err != nil {
		return nil, err
	}
	ref, err := parsed.Ref()
	if err != nil {
		return nil, err
	}

	store := filesystem.NewDocumentRepository(parsed.Root,
		filesystem.WithCategoryDir(parsed.Category, parsed.Dir),
		filesystem.WithIndent(opts.Indent),
	)

	var reader repositories.DocumentRepository = store
	if opts.Validate {
		if s.validator == nil {
			return nil, fmt.Errorf("document validation requested but no validator is configured")
		}
		reader = validation.NewValidatingRepository(store, s.validator)
	}

	return &ports.OpenedProfile{
		Reader:   reader,
		Writer:   store,
		Location: store.Location(ref),
		Ref:      ref,
	}, nil
}

// OpenOutput returns a store rooted at dir, laid out one directory per category.
func (s *FileProfileStorage) OpenOutput(dir string, indent int) (ports.DocumentSink, error) {
	if dir == "" {
		return nil, fmt.Errorf("output directory cannot be empty")
	}
	return filesystem.NewDocumentRepository(dir, filesystem.WithIndent(indent)), nil
}

// SystemConfigAdapter wraps system.ConfigLoader to implement ports.SystemConfigProvider.
type SystemConfigAdapter struct {
	loader *system.ConfigLoader
}

// NewSystemConfigAdapter creates a new system config adapter.
func NewSystemConfigAdapter() *SystemConfigAdapter {
	return &SystemConfigAdapter{
		loader: system.NewConfigLoader(),
	}
}

// LoadConfig loads system configuration.
func (a *SystemConfigAdapter) LoadConfig(_ context.Context, path string) (*system.Config, error) {
	return a.loader.Load(path)
}
