// Package config manages the .reqport project folder and its settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/viper"

	"github.com/blackcoderx/reqport/pkg/export"
)

const FolderName = ".reqport"

// EnvPrefix is the prefix for environment overrides, e.g. REQPORT_DEFAULT_TARGET.
const EnvPrefix = "REQPORT"

// Config represents the project's reqport configuration
type Config struct {
	CollectionName string `json:"collection_name" mapstructure:"collection_name"`
	DefaultTarget  string `json:"default_target" mapstructure:"default_target"`
	OutputDir      string `json:"output_dir" mapstructure:"output_dir"`
	Theme          string `json:"theme" mapstructure:"theme"`
}

// Default returns the configuration written by InitializeFolder.
func Default() Config {
	return Config{
		CollectionName: export.DefaultCollectionName,
		DefaultTarget:  export.TargetCurl.String(),
		OutputDir:      ".",
		Theme:          "dark",
	}
}

// SetDefaults registers the default values on v so unset keys resolve.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("collection_name", d.CollectionName)
	v.SetDefault("default_target", d.DefaultTarget)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("theme", d.Theme)
}

// NewViper returns a viper instance reading the JSON config at path (normally
// ConfigPath(root)) with REQPORT_ environment overrides. A missing config file
// is not an error.
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			return v, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return v, nil
}

// Load decodes the effective configuration from v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if _, err := export.ParseTarget(cfg.DefaultTarget); err != nil {
		return Config{}, fmt.Errorf("default_target: %w", err)
	}
	return cfg, nil
}

// Dir returns the project folder below root.
func Dir(root string) string {
	return filepath.Join(root, FolderName)
}

// ConfigPath returns the path of config.json below root.
func ConfigPath(root string) string {
	return filepath.Join(Dir(root), "config.json")
}

// InitializeFolder creates the .reqport directory under root and fills it
// with default files. It reports whether the folder was newly created.
// Subdirectories missing from an existing folder are added.
func InitializeFolder(root string) (bool, error) {
	dir := Dir(root)
	created := false

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return false, fmt.Errorf("failed to create %s folder: %w", FolderName, err)
		}
		if err := writeDefaultConfig(root); err != nil {
			return false, err
		}
		created = true
	}

	for _, sub := range []string{"requests", "environments", "collections"} {
		if err := ensureDir(filepath.Join(dir, sub)); err != nil {
			return created, err
		}
	}

	if created {
		if err := writeDefaultEnvironment(dir); err != nil {
			return created, err
		}
	}
	return created, nil
}

func ensureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Base(path), err)
	}
	return nil
}

func writeDefaultEnvironment(dir string) error {
	envContent := `# Development environment
# Add your variables here, e.g.:
# BASE_URL: http://localhost:3000
# API_TOKEN: "{{env:API_TOKEN}}"
`
	envPath := filepath.Join(dir, "environments", "dev.yaml")
	if err := os.WriteFile(envPath, []byte(envContent), 0644); err != nil {
		return fmt.Errorf("failed to write dev environment: %w", err)
	}
	return nil
}

func writeDefaultConfig(root string) error {
	data, err := json.MarshalIndent(Default(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
