package metadata

// Metadata is a simple key-value table for small pieces of application
// state that don't belong to any domain table.
type Metadata struct {
	Key   string `gorm:"primarykey;type:varchar(64)"`
	Value string
}
