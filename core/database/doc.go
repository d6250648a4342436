// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly configure
// SQLite and MySQL connections based on the application's configuration.
//
// # Connect
//
// The generic Connect function establishes a connection to the database. The translation
// memory defaults to a local SQLite file so the tool works without any server setup,
// MySQL is available for teams sharing one memory.
//
// # Schema Inspection
//
// The package includes tools to inspect the database schema, which the translation
// memory uses to verify its table after migration. It allows retrieving table columns
// and comparing them against the expected model.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "translation_memory")
package database
