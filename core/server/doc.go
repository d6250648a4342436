// Package server holds the HTTP server configuration and constants.
//
// While the serve command handles the server startup, this package defines
// the configuration structures and derived values for server settings,
// such as the status cache lifetime.
//
// # Configuration
//
// The Config struct defines the HTTP port, API key, and how long computed
// translation status may be served from cache.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings
// and by the status feature to size its cache.
package server
