// Package config loads the platform's operational configuration from YAML:
// backing-file paths, the remote delivery endpoint, and the default
// compression level. The fixed address map is never configurable here; it
// is compiled into internal/constants.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// PlatformConfig holds the file paths, remote endpoint, and compression
// level the simulator needs at startup.
type PlatformConfig struct {
	NVMeBackingFile  string        `yaml:"nvme_backing_file"`
	CloudBackupFile  string        `yaml:"cloud_backup_file"`
	MarkerKeyFile    string        `yaml:"marker_key_file"`
	RemoteEndpoint   string        `yaml:"remote_endpoint"`
	RemoteTimeout    time.Duration `yaml:"remote_timeout"`
	CompressionLevel int           `yaml:"compression_level"`
	LogLevel         string        `yaml:"log_level"`
}

// Default returns a config with sane defaults for a local, single-process
// run: files in the current directory, no remote endpoint configured.
func Default() *PlatformConfig {
	return &PlatformConfig{
		NVMeBackingFile:  "blackbox-nvme.img",
		CloudBackupFile:  "blackbox-cloud-backup.img",
		MarkerKeyFile:    "blackbox-markers.key",
		RemoteEndpoint:   "",
		RemoteTimeout:    5 * time.Second,
		CompressionLevel: 3,
		LogLevel:         "info",
	}
}

// Load reads a PlatformConfig from a YAML file at path. The file is
// overlaid on Default(), so fields missing from it keep their default value.
func Load(path string) (*PlatformConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, truncating any existing file.
func Save(path string, cfg *PlatformConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
