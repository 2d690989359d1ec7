// Package repositories defines interfaces for domain persistence.
package repositories

import (
	"context"

	"github.com/reglet-dev/profilekit/internal/domain/entities"
	"github.com/reglet-dev/profilekit/internal/domain/values"
)

// DocumentRepository provides read access to raw profile documents.
type DocumentRepository interface {
	// Load returns the raw document for a profile.
	// A missing profile yields *entities.DocumentNotFoundError.
	Load(ctx context.Context, ref values.ProfileRef) (entities.Document, error)
}

// DocumentWriter persists profile documents.
type DocumentWriter interface {
	// Save writes the document for a profile, replacing any existing one.
	Save(ctx context.Context, ref values.ProfileRef, doc entities.Document) error
}

// DocumentStore is a repository that can be both read and written.
type DocumentStore interface {
	DocumentRepository
	DocumentWriter
}
