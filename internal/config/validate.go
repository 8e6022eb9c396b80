package config

import (
	"fmt"
	"time"

	"github.com/rileyhilliard/sysdash/internal/errors"
)

// MinInterval is the fastest sampling rate accepted.
const MinInterval = 100 * time.Millisecond

// MaxClusters mirrors the analyzer's upper bound on K.
const MaxClusters = 6

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but sysdash only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade sysdash or lower the version field")
	}

	if cfg.Interval < MinInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Interval %s is too short", cfg.Interval),
			fmt.Sprintf("Use an interval of at least %s", MinInterval))
	}

	if cfg.History.Capacity < 2 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("History capacity must be at least 2, got %d", cfg.History.Capacity),
			"Set history.capacity to 60 for one minute at 1s")
	}

	if err := validateClusters(cfg.Clusters, cfg.History.Capacity); err != nil {
		return err
	}

	return validateRecommend(cfg.Recommend)
}

func validateClusters(c ClusterConfig, capacity int) error {
	if c.K < 2 || c.K > MaxClusters {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("clusters.k must be between 2 and %d, got %d", MaxClusters, c.K),
			"The default of 3 separates idle, busy and memory-heavy behaviour")
	}
	if c.Window < c.K {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("clusters.window (%d) is smaller than clusters.k (%d)", c.Window, c.K),
			"Each cluster needs at least one sample")
	}
	if c.Window > capacity {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("clusters.window (%d) exceeds history.capacity (%d)", c.Window, capacity),
			"Lower the window or raise the history capacity")
	}
	if c.MinSamples < c.K {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("clusters.min_samples (%d) is smaller than clusters.k (%d)", c.MinSamples, c.K),
			"Clustering needs at least k samples")
	}
	if c.MinSamples > capacity {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("clusters.min_samples (%d) exceeds history.capacity (%d)", c.MinSamples, capacity),
			"Clustering would never run")
	}
	return nil
}

func validateRecommend(r RecommendConfig) error {
	if r.MinSamples < 1 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("recommend.min_samples must be positive, got %d", r.MinSamples),
			"The default is 5")
	}
	for name, v := range map[string]float64{
		"recommend.cpu_threshold":    r.CPUThreshold,
		"recommend.memory_threshold": r.MemoryThreshold,
	} {
		if v < 0 || v > 100 {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("%s must be a percentage between 0 and 100, got %g", name, v),
				"Thresholds are compared against mean utilisation")
		}
	}
	return nil
}
