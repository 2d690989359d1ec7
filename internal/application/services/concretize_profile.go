package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/reglet-dev/profilekit/internal/application/dto"
	apperrors "github.com/reglet-dev/profilekit/internal/application/errors"
	"github.com/reglet-dev/profilekit/internal/application/ports"
	"github.com/reglet-dev/profilekit/internal/domain/services"
)

// ConcretizeProfileUseCase flattens profiles into fully-merged documents.
type ConcretizeProfileUseCase struct {
	storage ports.ProfileStorage
	logger  *slog.Logger
}

// NewConcretizeProfileUseCase creates a new concretize use case.
func NewConcretizeProfileUseCase(storage ports.ProfileStorage, logger *slog.Logger) *ConcretizeProfileUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConcretizeProfileUseCase{
		storage: storage,
		logger:  logger,
	}
}

// Execute concretizes every requested profile.
func (uc *ConcretizeProfileUseCase) Execute(ctx context.Context, req dto.ConcretizeRequest) (*dto.ProfileResponse, error) {
	startTime := time.Now()
	logger := requestLogger(uc.logger, req.Metadata)

	if err := validateOutput(req.Paths, req.Output); err != nil {
		return nil, err
	}
	srcOpts, err := toSourceOptions(req.Source, req.Output.Indent)
	if err != nil {
		return nil, err
	}
	filter, err := services.CompileKeyFilter(req.Select)
	if err != nil {
		return nil, apperrors.NewValidationError("select", err.Error())
	}
	writer, err := newResultWriter(uc.storage, req.Output)
	if err != nil {
		return nil, err
	}

	resolveOpts := services.ResolveOptions{
		Ignored: req.Ignored,
		Allowed: req.Allowed,
	}

	results, err := runBatch(ctx, req.Paths, req.Output.Jobs, func(ctx context.Context, path string) (dto.ProfileResult, error) {
		opened, err := uc.storage.Open(path, srcOpts)
		if err != nil {
			return dto.ProfileResult{}, apperrors.NewProcessingError("concretize", path, err)
		}

		logger.Debug("resolving profile", "profile", opened.Ref.String(), "location", opened.Location)

		resolved, err := services.NewProfileResolver(opened.Reader).Resolve(ctx, opened.Ref, resolveOpts)
		if err != nil {
			return dto.ProfileResult{}, apperrors.NewProcessingError("concretize", path, err)
		}

		doc, err := filter.Apply(resolved.Flatten())
		if err != nil {
			return dto.ProfileResult{}, apperrors.NewProcessingError("concretize", path, err)
		}

		result := dto.ProfileResult{
			Document: doc,
			Path:     path,
			Ref:      opened.Ref,
		}
		if req.Provenance {
			result.Provenance = make(map[string]string, len(doc))
			for k, source := range resolved.Provenance() {
				if _, ok := doc[k]; ok {
					result.Provenance[k] = source
				}
			}
		}

		result.WrittenTo = writer.stage(path, opened, doc)

		logger.Info("profile concretized",
			"profile", opened.Ref.String(),
			"ancestors", len(resolved.Chain)-1,
			"keys", len(doc),
			"inherits", resolved.Parent)
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	if err := writer.flush(ctx, "concretize"); err != nil {
		return nil, err
	}

	return &dto.ProfileResponse{
		Results: results,
		Metadata: dto.ResponseMetadata{
			RequestID:   req.Metadata.RequestID,
			ProcessedAt: time.Now(),
			Duration:    time.Since(startTime),
		},
	}, nil
}
