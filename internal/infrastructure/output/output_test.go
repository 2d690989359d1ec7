package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/profilekit/internal/application/ports"
	"github.com/reglet-dev/profilekit/internal/domain/entities"
)

func sampleDocument() entities.Document {
	return entities.Document{
		"inherits":     "fdm_process_common",
		"layer_height": "0.2",
		"wall_loops":   json.Number("3"),
		"speeds":       []any{json.Number("1.5"), "fast"},
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewJSONFormatter(&buf, 2).Format(sampleDocument()))

	want := "{\n" +
		"  \"inherits\": \"fdm_process_common\",\n" +
		"  \"layer_height\": \"0.2\",\n" +
		"  \"speeds\": [\n" +
		"    1.5,\n" +
		"    \"fast\"\n" +
		"  ],\n" +
		"  \"wall_loops\": 3\n" +
		"}\n"
	assert.Equal(t, want, buf.String())
}

func TestYAMLFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewYAMLFormatter(&buf).Format(sampleDocument()))

	out := buf.String()
	assert.Contains(t, out, "inherits: fdm_process_common")
	assert.Contains(t, out, `layer_height: "0.2"`)
	assert.Contains(t, out, "wall_loops: 3")
	assert.Contains(t, out, "- 1.5")
	assert.Contains(t, out, "- fast")
}

func TestToYAMLValue(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  any
	}{
		{"integer", json.Number("42"), int64(42)},
		{"float", json.Number("0.25"), 0.25},
		{"string passthrough", "0.2", "0.2"},
		{"nested", map[string]any{"a": []any{json.Number("1")}}, map[string]any{"a": []any{int64(1)}}},
		{"document", entities.Document{"k": json.Number("2")}, map[string]any{"k": int64(2)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toYAMLValue(tt.input))
		})
	}
}

func TestFormatterFactory_Create(t *testing.T) {
	factory := NewFormatterFactory()
	var buf bytes.Buffer

	tests := []struct {
		format  string
		want    any
		wantErr bool
	}{
		{"json", &JSONFormatter{}, false},
		{"yaml", &YAMLFormatter{}, false},
		{"table", &TableFormatter{}, false},
		{"xml", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			formatter, err := factory.Create(tt.format, &buf, ports.FormatterOptions{Indent: 4})
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown format")
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, formatter)
		})
	}

	assert.Equal(t, []string{"json", "yaml", "table"}, factory.SupportedFormats())
}

func TestTableFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewTableFormatter(&buf).Format(sampleDocument()))

	want := "KEY           VALUE\n" +
		"inherits      fdm_process_common\n" +
		"layer_height  0.2\n" +
		"speeds        [1.5, fast]\n" +
		"wall_loops    3\n" +
		"────────────────────────────────────────\n" +
		"Keys: 4\n"
	assert.Equal(t, want, buf.String())
}

func TestTableFormatter_Provenance(t *testing.T) {
	var buf bytes.Buffer

	err := NewTableFormatter(&buf).Format(map[string]any{
		"document":   entities.Document{"a": "1", "nested": map[string]any{"x": "y"}},
		"provenance": map[string]string{"a": "process/base", "nested": "process/child"},
	})

	require.NoError(t, err)
	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "KEY     VALUE      SOURCE", lines[0])
	assert.Equal(t, "a       1          process/base", lines[1])
	assert.Equal(t, `nested  {"x":"y"}  process/child`, lines[2])
}

func TestTableFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewTableFormatter(&buf).Format(entities.Document{}))
	assert.Equal(t, "No keys.\n", buf.String())
}

func TestTableFormatter_Unsupported(t *testing.T) {
	err := NewTableFormatter(&bytes.Buffer{}).Format(42)
	assert.Error(t, err)
}
