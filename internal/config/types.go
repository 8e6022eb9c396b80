package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete sysdash configuration file.
type Config struct {
	Version   int             `yaml:"version" mapstructure:"version"`
	Interval  time.Duration   `yaml:"interval" mapstructure:"interval"`
	History   HistoryConfig   `yaml:"history" mapstructure:"history"`
	Clusters  ClusterConfig   `yaml:"clusters" mapstructure:"clusters"`
	Recommend RecommendConfig `yaml:"recommend" mapstructure:"recommend"`
	UI        UIConfig        `yaml:"ui" mapstructure:"ui"`
}

// HistoryConfig controls the rolling sample buffer.
type HistoryConfig struct {
	// Capacity is how many samples are retained before the oldest is dropped.
	Capacity int `yaml:"capacity" mapstructure:"capacity"`
}

// ClusterConfig controls behavioural clustering of recent samples.
type ClusterConfig struct {
	// Enabled sets the initial state of the Show Clusters toggle.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Window is how many of the most recent samples are clustered.
	Window int `yaml:"window" mapstructure:"window"`

	// K is the number of clusters.
	K int `yaml:"k" mapstructure:"k"`

	// MinSamples is the history length required before clustering runs.
	MinSamples int `yaml:"min_samples" mapstructure:"min_samples"`

	// Seed makes k-means seeding reproducible.
	Seed uint64 `yaml:"seed" mapstructure:"seed"`

	// StableLabels keeps a cluster's colour consistent from tick to tick.
	StableLabels bool `yaml:"stable_labels" mapstructure:"stable_labels"`
}

// RecommendConfig holds the thresholds for advisories.
type RecommendConfig struct {
	MinSamples      int     `yaml:"min_samples" mapstructure:"min_samples"`
	CPUThreshold    float64 `yaml:"cpu_threshold" mapstructure:"cpu_threshold"`
	MemoryThreshold float64 `yaml:"memory_threshold" mapstructure:"memory_threshold"`
}

// UIConfig controls the dashboard surface.
type UIConfig struct {
	// Mouse enables clickable buttons.
	Mouse bool `yaml:"mouse" mapstructure:"mouse"`

	// Color is "auto", "always", or "never".
	Color string `yaml:"color" mapstructure:"color"`

	// LogFile receives log output while the dashboard is running.
	// Empty discards it.
	LogFile string `yaml:"log_file" mapstructure:"log_file"`
}

// DefaultConfig returns a Config with all default values.
func DefaultConfig() *Config {
	return &Config{
		Version:  CurrentConfigVersion,
		Interval: time.Second,
		History: HistoryConfig{
			Capacity: 60,
		},
		Clusters: ClusterConfig{
			Enabled:      true,
			Window:       30,
			K:            3,
			MinSamples:   11,
			Seed:         42,
			StableLabels: true,
		},
		Recommend: RecommendConfig{
			MinSamples:      5,
			CPUThreshold:    70,
			MemoryThreshold: 75,
		},
		UI: UIConfig{
			Mouse: true,
			Color: "auto",
		},
	}
}
