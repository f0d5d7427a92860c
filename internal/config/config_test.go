package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "platform.yml")

	cfg := Default()
	cfg.RemoteEndpoint = "http://example.invalid/ingest"
	cfg.RemoteTimeout = 2 * time.Second
	cfg.CompressionLevel = 5

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.NVMeBackingFile, loaded.NVMeBackingFile)
	assert.Equal(t, cfg.RemoteEndpoint, loaded.RemoteEndpoint)
	assert.Equal(t, cfg.CompressionLevel, loaded.CompressionLevel)
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := Load("/nonexistent/path/platform.yml")
	assert.Error(t, err)
}

func TestDefaultHasSaneValues(t *testing.T) {
	cfg := Default()
	assert.NotEmpty(t, cfg.NVMeBackingFile)
	assert.NotEmpty(t, cfg.CloudBackupFile)
	assert.Equal(t, 3, cfg.CompressionLevel)
	assert.Equal(t, "info", cfg.LogLevel)
}
