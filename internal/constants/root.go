package constants

const (
	AppName            = "burnoutguard"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/burnoutguard"
	DefaultConfigPath  = "~/.config/burnoutguard/config.yaml"
	DefaultStoragePath = "~/.config/burnoutguard/burnoutguard.db"
	Version            = "v0.1.0"

	// Environment overrides
	EnvDBConnection = "BURNOUTGUARD_DB_CONNECTION"
	EnvTimezone     = "BURNOUTGUARD_TIMEZONE"

	// Output formats
	FormatText       = "text"
	FormatJSON       = "json"
	FormatPrometheus = "prom"

	DefaultTimezone = "Local" // Use system local timezone by default
	DefaultFormat   = FormatText
)
