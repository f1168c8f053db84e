package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_ProvidesPathResolvedTools(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "mixasm", cfg.AssemblerPath)
	assert.Equal(t, "mixvm", cfg.VMPath)
	assert.Equal(t, "", cfg.OutputDir)
	assert.True(t, cfg.Color)
}

func TestLoad_OverlaysProvidedFieldsOntoDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "yalc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("assembler_path: /opt/mixasm\ncolor: false\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/mixasm", cfg.AssemblerPath)
	assert.Equal(t, "mixvm", cfg.VMPath)
	assert.False(t, cfg.Color)
}

func TestLoad_MissingFile_ReturnsError(t *testing.T) {
	_, err := Load("/nonexistent/yalc.yaml")
	assert.Error(t, err)
}
