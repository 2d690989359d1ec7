package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/profilekit/internal/application/dto"
	apperrors "github.com/reglet-dev/profilekit/internal/application/errors"
	"github.com/reglet-dev/profilekit/internal/domain/entities"
	"github.com/reglet-dev/profilekit/internal/domain/values"
)

func seedProcesses(storage *mockStorage) string {
	storage.put(values.CategoryProcess, "0.20mm Standard", entities.Document{"layer_height": "0.2", "speed": "200"})
	storage.put(values.CategoryProcess, "0.12mm Fine", entities.Document{"layer_height": "0.12", "speed": "150"})
	return storage.put(values.CategoryProcess, "mine", entities.Document{
		"inherits": "0.20mm Standard",
		"speed":    "150",
		"walls":    "4",
	})
}

func TestRebaseProfileUseCase_Execute(t *testing.T) {
	storage := newMockStorage()
	mine := seedProcesses(storage)
	uc := NewRebaseProfileUseCase(storage, nil, nil)

	resp, err := uc.Execute(context.Background(), dto.RebaseRequest{
		Path:   mine,
		Parent: "0.12mm Fine",
	})

	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, entities.Document{
		"inherits":     "0.12mm Fine",
		"layer_height": "0.2",
		"walls":        "4",
	}, resp.Results[0].Document)
}

func TestRebaseProfileUseCase_InPlace(t *testing.T) {
	storage := newMockStorage()
	mine := seedProcesses(storage)
	uc := NewRebaseProfileUseCase(storage, nil, nil)

	resp, err := uc.Execute(context.Background(), dto.RebaseRequest{
		Path:   mine,
		Parent: "0.12mm Fine",
		Output: dto.OutputOptions{InPlace: true},
	})
	require.NoError(t, err)

	stored, err := storage.source.Load(context.Background(), resp.Results[0].Ref)
	require.NoError(t, err)
	assert.Equal(t, "0.12mm Fine", stored["inherits"])
}

func TestRebaseProfileUseCase_Errors(t *testing.T) {
	storage := newMockStorage()
	mine := seedProcesses(storage)
	uc := NewRebaseProfileUseCase(storage, nil, nil)

	t.Run("parent required", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), dto.RebaseRequest{Path: mine})

		var validationErr *apperrors.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "parent", validationErr.Field)
	})

	t.Run("unknown parent", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), dto.RebaseRequest{Path: mine, Parent: "nope"})

		var notFound *entities.DocumentNotFoundError
		require.ErrorAs(t, err, &notFound)
		var procErr *apperrors.ProcessingError
		assert.ErrorAs(t, err, &procErr)
	})

	t.Run("allowed ancestor conflicts with new parent", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), dto.RebaseRequest{
			Path:    mine,
			Parent:  "0.12mm Fine",
			Allowed: []string{"0.20mm Standard"},
		})

		var conflict *entities.InheritanceConflictError
		assert.ErrorAs(t, err, &conflict)
	})
}
