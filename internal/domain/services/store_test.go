package services

import (
	"context"

	"github.com/reglet-dev/profilekit/internal/domain/entities"
	"github.com/reglet-dev/profilekit/internal/domain/values"
)

// mapStore is a DocumentRepository over a fixed set of documents.
type mapStore map[values.ProfileRef]entities.Document

func (s mapStore) Load(_ context.Context, ref values.ProfileRef) (entities.Document, error) {
	doc, ok := s[ref]
	if !ok {
		return nil, &entities.DocumentNotFoundError{Ref: ref}
	}
	return doc.Clone(), nil
}

func (s mapStore) put(category values.Category, name string, doc entities.Document) values.ProfileRef {
	ref := values.MustNewProfileRef(category, name)
	s[ref] = doc
	return ref
}

func process(name string) values.ProfileRef {
	return values.MustNewProfileRef(values.CategoryProcess, name)
}
