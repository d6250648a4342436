package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum level that gets logged (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info"`
	// Format is the output encoding, either console or json.
	Format string `mapstructure:"format" default:"console"`
}
