package config

import "time"

// Default values for configuration.
const (
	// Server defaults
	DefaultServerHost      = "0.0.0.0"
	DefaultServerPort      = 8080
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 15 * time.Second
	DefaultMaxBodySizeMB   = 2

	// Userscript defaults
	DefaultExpectedPage = "supporttickets.php"
	DefaultDirectory    = "admin"
	DefaultURLWildcard  = "*"
	DefaultOptionLabel  = "New Button"
	DefaultOptionColor  = "#337ab7"
	DefaultTemplatePath = ""
	DefaultConfigFile   = "config.yml"
	DefaultEnvPrefix    = "QR_"

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)
