package storage

// OpenMemory opens a migrated in-memory database. Every call returns an
// independent, empty database.
func OpenMemory() (*DB, error) {
	config := DefaultConfig(MemoryPath)
	config.AutoMigrate = true
	return Open(config)
}
