package values

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewCategory(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Category
		wantErr bool
	}{
		{"machine", "machine", CategoryMachine, false},
		{"filament", "filament", CategoryFilament, false},
		{"process", "process", CategoryProcess, false},
		{"trims whitespace", "  process ", CategoryProcess, false},
		{"unknown", "printer", Category{}, true},
		{"case sensitive", "Machine", Category{}, true},
		{"empty", "", Category{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewCategory(tt.input)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown category")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_NewCategory_ListsValidCategories(t *testing.T) {
	_, err := NewCategory("vendor")

	require.Error(t, err)
	assert.EqualError(t, err, `unknown category: "vendor" (valid: machine, filament, process)`)
}

func Test_Category_IsEmpty(t *testing.T) {
	assert.True(t, Category{}.IsEmpty())
	assert.False(t, CategoryFilament.IsEmpty())
}

func Test_Category_ExpandName(t *testing.T) {
	tests := []struct {
		category Category
		input    string
		want     string
	}{
		{CategoryMachine, "*common*", "printer_*common*"},
		{CategoryFilament, "*common*", "filament_*common*"},
		{CategoryProcess, "*common*", "*common*"},
		{CategoryMachine, "fdm_machine_common", "fdm_machine_common"},
		{CategoryFilament, "Generic PLA", "Generic PLA"},
		{CategoryFilament, "my *common* copy", "my *common* copy"},
	}

	for _, tt := range tests {
		t.Run(tt.category.String()+"/"+tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.category.ExpandName(tt.input))
		})
	}
}

func Test_Locate(t *testing.T) {
	base := filepath.Join("profiles", "filament")

	tests := []struct {
		name     string
		category Category
		input    string
		want     string
	}{
		{"plain name", CategoryFilament, "pla_basic", filepath.Join(base, "pla_basic.json")},
		{"name with spaces", CategoryFilament, "Generic PLA @base", filepath.Join(base, "Generic PLA @base.json")},
		{"filament common", CategoryFilament, "*common*", filepath.Join(base, "filament_*common*.json")},
		{"machine common", CategoryMachine, "*common*", filepath.Join(base, "printer_*common*.json")},
		{"process common", CategoryProcess, "*common*", filepath.Join(base, "*common*.json")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Locate(base, tt.category, tt.input))
		})
	}
}

func Test_Category_TextRoundTrip(t *testing.T) {
	data, err := json.Marshal(map[string]Category{"category": CategoryMachine})
	require.NoError(t, err)
	assert.JSONEq(t, `{"category":"machine"}`, string(data))

	var decoded struct {
		Category Category `json:"category"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, CategoryMachine, decoded.Category)

	err = json.Unmarshal([]byte(`{"category":"vendor"}`), &decoded)
	assert.Error(t, err)
}

func Test_AllCategories(t *testing.T) {
	assert.Equal(t, []Category{CategoryMachine, CategoryFilament, CategoryProcess}, AllCategories())
}
