package adapters

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/profilekit/internal/application/ports"
	"github.com/reglet-dev/profilekit/internal/domain/entities"
	"github.com/reglet-dev/profilekit/internal/domain/values"
	"github.com/reglet-dev/profilekit/internal/infrastructure/validation"
)

func writeProfile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestFileProfileStorage_Open(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "filament", "pla.json")
	writeProfile(t, path, `{"inherits": "base"}`)
	writeProfile(t, filepath.Join(root, "filament", "base.json"), `{"k": "v"}`)

	validator, err := validation.NewDocumentValidator()
	require.NoError(t, err)
	storage := NewFileProfileStorage(validator)

	opened, err := storage.Open(path, ports.SourceOptions{Validate: true})
	require.NoError(t, err)

	assert.Equal(t, values.MustNewProfileRef(values.CategoryFilament, "pla"), opened.Ref)
	assert.Equal(t, path, opened.Location)

	base, err := opened.Reader.Load(context.Background(), values.MustNewProfileRef(values.CategoryFilament, "base"))
	require.NoError(t, err)
	assert.Equal(t, "v", base["k"])
}

func TestFileProfileStorage_OpenLiteralCommonFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "machine", "*common*.json")
	writeProfile(t, path, `{"from": "literal"}`)
	writeProfile(t, filepath.Join(root, "machine", "printer_*common*.json"), `{"from": "expanded"}`)

	opened, err := NewFileProfileStorage(nil).Open(path, ports.SourceOptions{})
	require.NoError(t, err)
	assert.Equal(t, path, opened.Location)

	doc, err := opened.Reader.Load(context.Background(), opened.Ref)
	require.NoError(t, err)
	assert.Equal(t, "literal", doc["from"])
}

func TestFileProfileStorage_OpenValidates(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "process", "bad.json")
	writeProfile(t, path, `{"type": "vendor"}`)

	validator, err := validation.NewDocumentValidator()
	require.NoError(t, err)
	storage := NewFileProfileStorage(validator)

	opened, err := storage.Open(path, ports.SourceOptions{Validate: true})
	require.NoError(t, err)
	_, err = opened.Reader.Load(context.Background(), opened.Ref)
	assert.Error(t, err)

	opened, err = storage.Open(path, ports.SourceOptions{Validate: false})
	require.NoError(t, err)
	_, err = opened.Reader.Load(context.Background(), opened.Ref)
	assert.NoError(t, err)
}

func TestFileProfileStorage_OpenWithoutValidator(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "process", "p.json")

	_, err := NewFileProfileStorage(nil).Open(path, ports.SourceOptions{Validate: true})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no validator")
}

func TestFileProfileStorage_OpenCategoryOverride(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "vendor", "fine.json")
	writeProfile(t, path, `{"layer_height": "0.1"}`)

	opened, err := NewFileProfileStorage(nil).Open(path, ports.SourceOptions{Category: values.CategoryProcess})
	require.NoError(t, err)

	assert.Equal(t, values.CategoryProcess, opened.Ref.Category())
	doc, err := opened.Reader.Load(context.Background(), opened.Ref)
	require.NoError(t, err)
	assert.Equal(t, "0.1", doc["layer_height"])
}

func TestFileProfileStorage_InPlaceWriter(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "process", "p.json")
	writeProfile(t, path, `{"a": "1"}`)

	opened, err := NewFileProfileStorage(nil).Open(path, ports.SourceOptions{Indent: 2})
	require.NoError(t, err)

	require.NoError(t, opened.Writer.Save(context.Background(), opened.Ref, entities.Document{"b": "2"}))
	assert.Equal(t, path, opened.Writer.Location(opened.Ref))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"b\": \"2\"\n}\n", string(data))
}

func TestFileProfileStorage_OpenOutput(t *testing.T) {
	storage := NewFileProfileStorage(nil)

	_, err := storage.OpenOutput("", 4)
	require.Error(t, err)

	out := t.TempDir()
	sink, err := storage.OpenOutput(out, 4)
	require.NoError(t, err)

	ref := values.MustNewProfileRef(values.CategoryMachine, "*common*")
	require.NoError(t, sink.Save(context.Background(), ref, entities.Document{"k": "v"}))
	assert.Equal(t, filepath.Join(out, "machine", "printer_*common*.json"), sink.Location(ref))
	assert.FileExists(t, sink.Location(ref))
}

func TestSystemConfigAdapter_LoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeProfile(t, path, "always_keep:\n  - setting_id\n")

	cfg, err := NewSystemConfigAdapter().LoadConfig(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, []string{"setting_id"}, cfg.AlwaysKeep)
}
