package server

import "time"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables authentication.
	ApiKey string `mapstructure:"api_key" default:""`
	// CacheSeconds is how long computed translation status is served from cache.
	CacheSeconds int `mapstructure:"cache_seconds" default:"30"`
}

// CacheTTL returns the status cache lifetime. Zero or negative disables caching.
func (c Config) CacheTTL() time.Duration {
	if c.CacheSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheSeconds) * time.Second
}
