package metrics

import (
	"code.openvenue.io/engine/config/encoding"
	"code.openvenue.io/engine/logging"
)

// namedLogger is the identifier for package and should ideally match the package name
// this is simply emitted as a hierarchical label e.g. 'engine.matching'.
const namedLogger = "metrics"

// Config represents the configuration of the metrics package.
type Config struct {
	Level   encoding.LogLevel `long:"log-level"`
	Enabled encoding.Bool     `long:"enabled" description:"Serve prometheus metrics"`
	Path    string            `long:"path" description:"URL path of the metrics endpoint"`
	Port    int               `long:"port" description:"Listen port of the metrics endpoint"`
}

// NewDefaultConfig creates an instance of the package specific configuration.
func NewDefaultConfig() Config {
	return Config{
		Level:   encoding.LogLevel{Level: logging.InfoLevel},
		Enabled: false,
		Path:    "/metrics",
		Port:    2112,
	}
}
