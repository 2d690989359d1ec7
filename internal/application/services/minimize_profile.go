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

// MinimizeProfileUseCase strips profiles down to what they add over their parent.
type MinimizeProfileUseCase struct {
	storage    ports.ProfileStorage
	logger     *slog.Logger
	alwaysKeep []string
}

// NewMinimizeProfileUseCase creates a new minimize use case.
// alwaysKeep extends the default set of keys that are never stripped.
func NewMinimizeProfileUseCase(storage ports.ProfileStorage, alwaysKeep []string, logger *slog.Logger) *MinimizeProfileUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &MinimizeProfileUseCase{
		storage:    storage,
		logger:     logger,
		alwaysKeep: alwaysKeep,
	}
}

// Execute minimizes every requested profile.
func (uc *MinimizeProfileUseCase) Execute(ctx context.Context, req dto.MinimizeRequest) (*dto.ProfileResponse, error) {
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

	results, err := runBatch(ctx, req.Paths, req.Output.Jobs, func(ctx context.Context, path string) (dto.ProfileResult, error) {
		opened, err := uc.storage.Open(path, srcOpts)
		if err != nil {
			return dto.ProfileResult{}, apperrors.NewProcessingError("minimize", path, err)
		}

		reducer := services.NewProfileReducer(opened.Reader, services.NewProfileResolver(opened.Reader), uc.alwaysKeep...)

		original, err := opened.Reader.Load(ctx, opened.Ref)
		if err != nil {
			return dto.ProfileResult{}, apperrors.NewProcessingError("minimize", path, err)
		}
		reduced, err := reducer.ReduceDocument(ctx, opened.Ref, original)
		if err != nil {
			return dto.ProfileResult{}, apperrors.NewProcessingError("minimize", path, err)
		}

		doc, err := filter.Apply(reduced)
		if err != nil {
			return dto.ProfileResult{}, apperrors.NewProcessingError("minimize", path, err)
		}

		result := dto.ProfileResult{
			Document: doc,
			Path:     path,
			Ref:      opened.Ref,
		}
		result.WrittenTo = writer.stage(path, opened, doc)

		logger.Info("profile minimized",
			"profile", opened.Ref.String(),
			"kept", len(reduced),
			"dropped", len(original)-len(reduced))
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	if err := writer.flush(ctx, "minimize"); err != nil {
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
