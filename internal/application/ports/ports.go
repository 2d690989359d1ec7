// Package ports defines interfaces for infrastructure dependencies.
// These are the "ports" in hexagonal architecture - abstractions that
// the application layer depends on but doesn't implement.
package ports

import (
	"context"
	"io"

	"github.com/reglet-dev/profilekit/internal/domain/repositories"
	"github.com/reglet-dev/profilekit/internal/domain/values"
	"github.com/reglet-dev/profilekit/internal/infrastructure/system"
)

// SourceOptions controls how a profile path is opened.
type SourceOptions struct {
	// Category overrides the category inferred from the containing directory.
	Category values.Category

	// Indent is the JSON indentation used when writing documents back.
	Indent int

	// Validate checks every loaded document against the profile schema.
	Validate bool
}

// OpenedProfile is a profile path mapped onto a document store.
type OpenedProfile struct {
	// Reader loads the profile and its ancestors.
	Reader repositories.DocumentRepository

	// Writer persists documents into the same tree.
	Writer DocumentSink

	// Location is the file backing Ref.
	Location string

	// Ref identifies the opened profile.
	Ref values.ProfileRef
}

// ProfileStorage maps user-supplied paths onto document stores.
type ProfileStorage interface {
	// Open maps a profile file path to its store and reference.
	Open(path string, opts SourceOptions) (*OpenedProfile, error)

	// OpenOutput returns a writer for a separate output tree rooted at dir.
	OpenOutput(dir string, indent int) (DocumentSink, error)
}

// DocumentSink is a document writer that can report where a profile lands.
type DocumentSink interface {
	repositories.DocumentWriter
	Location(ref values.ProfileRef) string
}

// SystemConfigProvider loads system configuration.
type SystemConfigProvider interface {
	LoadConfig(ctx context.Context, path string) (*system.Config, error)
}

// FormatterOptions configures output formatters.
type FormatterOptions struct {
	// Indent is the JSON indentation width (0 = compact).
	Indent int
}

// OutputFormatter formats documents.
type OutputFormatter interface {
	Format(v any) error
}

// OutputFormatterFactory creates formatters by name.
type OutputFormatterFactory interface {
	Create(format string, writer io.Writer, options FormatterOptions) (OutputFormatter, error)
	SupportedFormats() []string
}
