package matching

import (
	"code.openvenue.io/engine/config/encoding"
	"code.openvenue.io/engine/logging"
)

// namedLogger is the identifier for package and should ideally match the package name
// this is simply emitted as a hierarchical label e.g. 'engine.matching'.
const namedLogger = "matching"

// Config represents the configuration of the matching engine.
type Config struct {
	Level encoding.LogLevel `long:"log-level"`

	LogPriceLevelsDebug   encoding.Bool `long:"log-price-levels-debug" description:"Log the state of the price levels after every mutation"`
	LogRemovedOrdersDebug encoding.Bool `long:"log-removed-orders-debug" description:"Log orders as they are removed from the book"`
}

// NewDefaultConfig creates an instance of the package specific configuration.
func NewDefaultConfig() Config {
	return Config{
		Level:                 encoding.LogLevel{Level: logging.InfoLevel},
		LogPriceLevelsDebug:   false,
		LogRemovedOrdersDebug: false,
	}
}
