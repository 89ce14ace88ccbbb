package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "patterns.json", filepath.Base(cfg.PatternsPath))
	assert.Equal(t, "observations", filepath.Base(cfg.ObservationsDir))
	assert.Contains(t, cfg.PatternsPath, ".codescope")
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadNoFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().PatternsPath, cfg.PatternsPath)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`patterns_path: /srv/codescope/patterns.json
observations_dir: /srv/codescope/observations
log_level: debug
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/codescope/patterns.json", cfg.PatternsPath)
	assert.Equal(t, "/srv/codescope/observations", cfg.ObservationsDir)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	var nf *FileNotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("patterns_path: [unterminated"), 0o644))

	_, err := Load(path)
	var inv *InvalidFormatError
	assert.ErrorAs(t, err, &inv)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`patterns_path: /from/file.json
observations_dir: /from/file-obs
`), 0o644))

	t.Setenv("CODESCOPE_PATTERNS_PATH", "/from/env.json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env.json", cfg.PatternsPath)
	assert.Equal(t, "/from/file-obs", cfg.ObservationsDir)
}

func TestValidate(t *testing.T) {
	base := Config{PatternsPath: "p.json", ObservationsDir: "obs", LogLevel: "warn"}
	assert.NoError(t, base.Validate())

	missing := base
	missing.PatternsPath = ""
	var mf *MissingFieldError
	assert.ErrorAs(t, missing.Validate(), &mf)

	badLevel := base
	badLevel.LogLevel = "loud"
	var iv *InvalidValueError
	assert.ErrorAs(t, badLevel.Validate(), &iv)
}

func TestLevelFallsBackToInfo(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, (&Config{}).Level())
	assert.Equal(t, zerolog.WarnLevel, (&Config{LogLevel: "warn"}).Level())
}
