package config

import (
	"time"

	"code.openvenue.io/engine/config/encoding"
	"code.openvenue.io/engine/logging"
	"code.openvenue.io/engine/matching"
	"code.openvenue.io/engine/metrics"
)

// Config ties together the configuration of every engine package.
type Config struct {
	Matching matching.Config `group:"Matching" namespace:"matching"`
	Logging  logging.Config  `group:"Logging" namespace:"logging"`
	Metrics  metrics.Config  `group:"Metrics" namespace:"metrics"`
	Watcher  WatcherConfig   `group:"Watcher" namespace:"watcher"`
}

// WatcherConfig holds the tunables of the config file watcher itself.
type WatcherConfig struct {
	RenameDebounce encoding.Duration `long:"rename-debounce" description:"How long to wait for an editor to recreate the file after a rename event"`
}

// NewDefaultConfig returns the per package defaults, as specified at the
// package config level.
func NewDefaultConfig() Config {
	return Config{
		Matching: matching.NewDefaultConfig(),
		Logging:  logging.NewDefaultConfig(),
		Metrics:  metrics.NewDefaultConfig(),
		Watcher: WatcherConfig{
			RenameDebounce: encoding.Duration{Duration: 50 * time.Millisecond},
		},
	}
}
