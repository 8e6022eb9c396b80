package config

import (
	"os"
	"path/filepath"

	"github.com/rileyhilliard/sysdash/internal/errors"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape. Durations are written as "1s" rather
// than nanosecond integers.
type fileConfig struct {
	Version   int             `yaml:"version"`
	Interval  string          `yaml:"interval"`
	History   HistoryConfig   `yaml:"history"`
	Clusters  ClusterConfig   `yaml:"clusters"`
	Recommend RecommendConfig `yaml:"recommend"`
	UI        UIConfig        `yaml:"ui"`
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	fc := fileConfig{
		Version:   cfg.Version,
		Interval:  cfg.Interval.String(),
		History:   cfg.History,
		Clusters:  cfg.Clusters,
		Recommend: cfg.Recommend,
		UI:        cfg.UI,
	}
	data, err := yaml.Marshal(&fc)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to encode config",
			"")
	}
	return data, nil
}

// Save writes cfg to path, creating parent directories as needed.
func Save(cfg *Config, path string) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to create config directory",
			"Check permissions on "+filepath.Dir(path))
	}

	header := []byte("# sysdash configuration\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write config file",
			"Check permissions on "+path)
	}
	return nil
}
