package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logistica.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "logistica_interna.db", cfg.DatabasePath)
	assert.NotEmpty(t, cfg.GeoJSONURL)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
database_path: /data/log.db
kanban:
  state_path: /data/kanban.json
  secret: s3cret
verbose: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/log.db", cfg.DatabasePath)
	assert.Equal(t, "/data/kanban.json", cfg.Kanban.StatePath)
	assert.Equal(t, "s3cret", cfg.Kanban.Secret)
	assert.True(t, cfg.Verbose)
	// Untouched fields keep their defaults.
	assert.Equal(t, Default().Titan.BaseURL, cfg.Titan.BaseURL)
}

func TestLoad_SchemaRejectsEmptyDatabasePath(t *testing.T) {
	path := writeConfig(t, `
database_path: ""
`)

	_, err := Load(path)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, path, verr.Path)
	assert.Contains(t, verr.Details, "database_path")
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "database_path: [unclosed")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestValidate_DefaultIsValid(t *testing.T) {
	assert.NoError(t, Validate(Default()))
}
