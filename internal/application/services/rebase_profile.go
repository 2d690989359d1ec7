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

// RebaseProfileUseCase re-derives a profile as a minimal diff against a new parent.
type RebaseProfileUseCase struct {
	storage    ports.ProfileStorage
	logger     *slog.Logger
	alwaysKeep []string
}

// NewRebaseProfileUseCase creates a new rebase use case.
func NewRebaseProfileUseCase(storage ports.ProfileStorage, alwaysKeep []string, logger *slog.Logger) *RebaseProfileUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &RebaseProfileUseCase{
		storage:    storage,
		logger:     logger,
		alwaysKeep: alwaysKeep,
	}
}

// Execute concretizes the profile, points it at the new parent and minimizes it.
func (uc *RebaseProfileUseCase) Execute(ctx context.Context, req dto.RebaseRequest) (*dto.ProfileResponse, error) {
	startTime := time.Now()
	logger := requestLogger(uc.logger, req.Metadata)

	if err := validateOutput([]string{req.Path}, req.Output); err != nil {
		return nil, err
	}
	if req.Parent == "" {
		return nil, apperrors.NewValidationError("parent", "a new parent profile name is required")
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

	opened, err := uc.storage.Open(req.Path, srcOpts)
	if err != nil {
		return nil, apperrors.NewProcessingError("rebase", req.Path, err)
	}

	reducer := services.NewProfileReducer(opened.Reader, services.NewProfileResolver(opened.Reader), uc.alwaysKeep...)
	rebased, err := reducer.Rebase(ctx, opened.Ref, req.Parent, services.ResolveOptions{
		Ignored: req.Ignored,
		Allowed: req.Allowed,
	})
	if err != nil {
		return nil, apperrors.NewProcessingError("rebase", req.Path, err)
	}

	doc, err := filter.Apply(rebased)
	if err != nil {
		return nil, apperrors.NewProcessingError("rebase", req.Path, err)
	}

	result := dto.ProfileResult{
		Document: doc,
		Path:     req.Path,
		Ref:      opened.Ref,
	}
	result.WrittenTo = writer.stage(req.Path, opened, doc)
	if err := writer.flush(ctx, "rebase"); err != nil {
		return nil, err
	}

	logger.Info("profile rebased",
		"profile", opened.Ref.String(),
		"parent", req.Parent,
		"keys", len(doc))

	return &dto.ProfileResponse{
		Results: []dto.ProfileResult{result},
		Metadata: dto.ResponseMetadata{
			RequestID:   req.Metadata.RequestID,
			ProcessedAt: time.Now(),
			Duration:    time.Since(startTime),
		},
	}, nil
}
