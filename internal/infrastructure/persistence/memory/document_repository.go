// Package memory provides in-memory implementations of domain repositories.
package memory

import (
	"context"
	"sync"

	"github.com/reglet-dev/profilekit/internal/domain/entities"
	"github.com/reglet-dev/profilekit/internal/domain/repositories"
	"github.com/reglet-dev/profilekit/internal/domain/values"
)

// Ensure interface compliance
var _ repositories.DocumentStore = (*DocumentRepository)(nil)

// DocumentRepository is an in-memory implementation of DocumentStore.
// Useful for testing and for staging documents before they are written out.
type DocumentRepository struct {
	docs map[values.ProfileRef]entities.Document
	mu   sync.RWMutex
}

// NewDocumentRepository creates a new in-memory repository.
func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{
		docs: make(map[values.ProfileRef]entities.Document),
	}
}

// Load returns a copy of the stored document.
func (r *DocumentRepository) Load(_ context.Context, ref values.ProfileRef) (entities.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[ref]
	if !ok {
		return nil, &entities.DocumentNotFoundError{Ref: ref}
	}
	return doc.Clone(), nil
}

// Save stores a copy of the document, so callers may keep mutating theirs.
func (r *DocumentRepository) Save(_ context.Context, ref values.ProfileRef, doc entities.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.docs[ref] = doc.Clone()
	return nil
}

// Location returns a pseudo-location for ref.
func (r *DocumentRepository) Location(ref values.ProfileRef) string {
	return "memory://" + ref.String()
}

// Put is a convenience for seeding the repository.
func (r *DocumentRepository) Put(category values.Category, name string, doc entities.Document) values.ProfileRef {
	ref := values.MustNewProfileRef(category, name)
	_ = r.Save(context.Background(), ref, doc) // never fails
	return ref
}
