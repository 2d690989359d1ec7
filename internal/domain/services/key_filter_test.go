package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/profilekit/internal/domain/entities"
)

func TestKeyFilter_Apply(t *testing.T) {
	t.Parallel()

	doc := entities.Document{
		"inherits":           "fdm_filament_pla",
		"filament_type":      []any{"PLA"},
		"filament_density":   []any{"1.24"},
		"nozzle_temperature": []any{"220"},
	}

	tests := []struct {
		name       string
		expression string
		want       []string
	}{
		{"empty selects all", "", []string{"filament_density", "filament_type", "inherits", "nozzle_temperature"}},
		{"prefix", "key startsWith 'filament_'", []string{"filament_density", "filament_type"}},
		{"prefix or identity", "key startsWith 'filament_' || key == 'inherits'", []string{"filament_density", "filament_type", "inherits"}},
		{"by value", "value == 'fdm_filament_pla'", []string{"inherits"}},
		{"none", "false", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			filter, err := CompileKeyFilter(tt.expression)
			require.NoError(t, err)

			got, err := filter.Apply(doc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Keys())
		})
	}
}

func TestKeyFilter_ApplyCopies(t *testing.T) {
	t.Parallel()

	doc := entities.Document{"filament_type": []any{"PLA"}}
	filter, err := CompileKeyFilter("true")
	require.NoError(t, err)

	got, err := filter.Apply(doc)
	require.NoError(t, err)
	got["filament_type"].([]any)[0] = "PETG"

	assert.Equal(t, []any{"PLA"}, doc["filament_type"])
}

func TestCompileKeyFilter_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		expression string
	}{
		{"syntax error", "key startsWith"},
		{"not a bool", "key + 'x'"},
		{"unknown variable", "name == 'x'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := CompileKeyFilter(tt.expression)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid key selection expression")
		})
	}
}

func TestKeyFilter_NilMatchesEverything(t *testing.T) {
	t.Parallel()

	var filter *KeyFilter
	matched, err := filter.Matches("anything", nil)

	require.NoError(t, err)
	assert.True(t, matched)
}
