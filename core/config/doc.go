// Package config provides configuration management for lcftrans.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file next to the working directory.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, status cache)
//   - Database: translation memory connection details (SQLite or MySQL)
//   - Storage: S3/MinIO credentials and bucket settings for unit sync
//   - Log: Logging level and format
//   - Project: extraction defaults (encoding, output directory, workers, matching)
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Project.Output)
package config
