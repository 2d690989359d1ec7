package validation

import (
	"context"

	"github.com/reglet-dev/profilekit/internal/domain/entities"
	"github.com/reglet-dev/profilekit/internal/domain/repositories"
	"github.com/reglet-dev/profilekit/internal/domain/values"
)

// Ensure interface compliance
var _ repositories.DocumentRepository = (*ValidatingRepository)(nil)

// ValidatingRepository validates every document as it is loaded, so each
// ancestor of a resolution is checked, not just the starting profile.
type ValidatingRepository struct {
	inner     repositories.DocumentRepository
	validator *DocumentValidator
}

// NewValidatingRepository wraps inner with validator.
func NewValidatingRepository(inner repositories.DocumentRepository, validator *DocumentValidator) *ValidatingRepository {
	return &ValidatingRepository{
		inner:     inner,
		validator: validator,
	}
}

// Load loads the document from the wrapped repository and validates it.
func (r *ValidatingRepository) Load(ctx context.Context, ref values.ProfileRef) (entities.Document, error) {
	doc, err := r.inner.Load(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := r.validator.Validate(ref, doc); err != nil {
		return nil, err
	}
	return doc, nil
}
