package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/reglet-dev/profilekit/internal/application/ports"
	"github.com/reglet-dev/profilekit/internal/domain/entities"
	"github.com/reglet-dev/profilekit/internal/domain/values"
	"github.com/reglet-dev/profilekit/internal/infrastructure/persistence/memory"
)

// mockStorage maps "<category>/<name>" paths onto one in-memory store.
type mockStorage struct {
	source  *memory.DocumentRepository
	outputs map[string]*memory.DocumentRepository
	guard   *writeGuard
	opened  []ports.SourceOptions
	mu      sync.Mutex
}

// writeGuard counts source reads that happen after the first write.
type writeGuard struct {
	*memory.DocumentRepository
	mu        sync.Mutex
	saves     int
	lateReads int
}

func (g *writeGuard) Load(ctx context.Context, ref values.ProfileRef) (entities.Document, error) {
	g.mu.Lock()
	if g.saves > 0 {
		g.lateReads++
	}
	g.mu.Unlock()
	return g.DocumentRepository.Load(ctx, ref)
}

func (g *writeGuard) Save(ctx context.Context, ref values.ProfileRef, doc entities.Document) error {
	g.mu.Lock()
	g.saves++
	g.mu.Unlock()
	return g.DocumentRepository.Save(ctx, ref, doc)
}

// guardWrites routes every opened profile through a writeGuard.
func (s *mockStorage) guardWrites() *writeGuard {
	s.guard = &writeGuard{DocumentRepository: s.source}
	return s.guard
}

func newMockStorage() *mockStorage {
	return &mockStorage{
		source:  memory.NewDocumentRepository(),
		outputs: make(map[string]*memory.DocumentRepository),
	}
}

func (s *mockStorage) put(category values.Category, name string, doc entities.Document) string {
	ref := s.source.Put(category, name, doc)
	return ref.String()
}

func (s *mockStorage) Open(path string, opts ports.SourceOptions) (*ports.OpenedProfile, error) {
	s.mu.Lock()
	s.opened = append(s.opened, opts)
	s.mu.Unlock()

	categoryName, name, ok := strings.Cut(path, "/")
	if !ok {
		return nil, fmt.Errorf("path %q: expected <category>/<name>", path)
	}

	category, err := values.NewCategory(categoryName)
	if err != nil {
		return nil, err
	}
	if !opts.Category.IsEmpty() {
		category = opts.Category
	}
	ref, err := values.NewProfileRef(category, name)
	if err != nil {
		return nil, err
	}

	opened := &ports.OpenedProfile{
		Reader:   s.source,
		Writer:   s.source,
		Location: s.source.Location(ref),
		Ref:      ref,
	}
	if s.guard != nil {
		opened.Reader = s.guard
		opened.Writer = s.guard
	}
	return opened, nil
}

func (s *mockStorage) OpenOutput(dir string, _ int) (ports.DocumentSink, error) {
	if dir == "" {
		return nil, fmt.Errorf("output directory cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out, ok := s.outputs[dir]
	if !ok {
		out = memory.NewDocumentRepository()
		s.outputs[dir] = out
	}
	return out, nil
}
