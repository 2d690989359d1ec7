// Package services contains application use cases.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/reglet-dev/profilekit/internal/application/dto"
	apperrors "github.com/reglet-dev/profilekit/internal/application/errors"
	"github.com/reglet-dev/profilekit/internal/application/ports"
	"github.com/reglet-dev/profilekit/internal/domain/entities"
	"github.com/reglet-dev/profilekit/internal/domain/values"
	"golang.org/x/sync/errgroup"
)

// profileTask processes one requested path.
type profileTask func(ctx context.Context, path string) (dto.ProfileResult, error)

// runBatch runs task for every path with at most jobs in flight (0 = unbounded).
// Results keep request order. The first failure cancels the remaining tasks.
func runBatch(ctx context.Context, paths []string, jobs int, task profileTask) ([]dto.ProfileResult, error) {
	results := make([]dto.ProfileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result, err := task(gctx, path)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// validateOutput checks output option combinations shared by all use cases.
func validateOutput(paths []string, out dto.OutputOptions) error {
	if len(paths) == 0 {
		return apperrors.NewValidationError("paths", "at least one profile path is required")
	}
	if out.InPlace && out.OutDir != "" {
		return apperrors.NewValidationError("output", "in-place and out-dir are mutually exclusive")
	}
	if out.Jobs < 0 {
		return apperrors.NewValidationError("jobs", fmt.Sprintf("must not be negative, got %d", out.Jobs))
	}
	if out.Indent < 0 {
		return apperrors.NewValidationError("indent", fmt.Sprintf("must not be negative, got %d", out.Indent))
	}
	return nil
}

// toSourceOptions converts request source options into port options.
func toSourceOptions(src dto.SourceOptions, indent int) (ports.SourceOptions, error) {
	opts := ports.SourceOptions{
		Indent:   indent,
		Validate: !src.SkipValidation,
	}
	if src.Category != "" {
		category, err := values.NewCategory(src.Category)
		if err != nil {
			return ports.SourceOptions{}, apperrors.NewValidationError("category", err.Error())
		}
		opts.Category = category
	}
	return opts, nil
}

// resultWriter persists produced documents according to the output options.
// Documents are staged while the batch runs and written by flush once every
// task has succeeded, so no task ever reads a file a sibling is rewriting.
type resultWriter struct {
	sink    ports.DocumentSink
	pending []pendingWrite
	mu      sync.Mutex
	inPlace bool
}

type pendingWrite struct {
	sink ports.DocumentSink
	ref  values.ProfileRef
	doc  entities.Document
	path string
}

// newResultWriter opens the output tree if one is requested.
func newResultWriter(storage ports.ProfileStorage, out dto.OutputOptions) (*resultWriter, error) {
	w := &resultWriter{inPlace: out.InPlace}
	if out.OutDir != "" {
		sink, err := storage.OpenOutput(out.OutDir, out.Indent)
		if err != nil {
			return nil, apperrors.NewConfigurationError("output", "failed to open output directory", err)
		}
		w.sink = sink
	}
	return w, nil
}

// stage records doc for writing and returns where it will go; "" means nowhere (stdout).
func (w *resultWriter) stage(path string, opened *ports.OpenedProfile, doc entities.Document) string {
	var sink ports.DocumentSink
	switch {
	case w.inPlace:
		sink = opened.Writer
	case w.sink != nil:
		sink = w.sink
	default:
		return ""
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = append(w.pending, pendingWrite{sink: sink, ref: opened.Ref, doc: doc, path: path})
	return sink.Location(opened.Ref)
}

// flush writes every staged document in staging order.
func (w *resultWriter) flush(ctx context.Context, operation string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, p := range w.pending {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.sink.Save(ctx, p.ref, p.doc); err != nil {
			return apperrors.NewProcessingError(operation, p.path, err)
		}
	}
	w.pending = nil
	return nil
}

// requestLogger returns logger tagged with the request ID, if any.
func requestLogger(logger *slog.Logger, meta dto.RequestMetadata) *slog.Logger {
	if meta.RequestID == "" {
		return logger
	}
	return logger.With("request_id", meta.RequestID)
}
