package metadata

// SQLite metadata keys.
const (
	// LastSnapshotFlushKey stores the unix timestamp of the last
	// successful snapshot flush from Redis to SQLite.
	LastSnapshotFlushKey = "last_snapshot_flush"

	// SchemaVersionKey records the migration baseline of this database file.
	SchemaVersionKey = "schema_version"
)
