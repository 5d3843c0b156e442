package domain

// Record is implemented by every entity the console lists. The identifier is
// the stable row key and the target of mutation calls; it survives refetches
// unless the upstream deletes and recreates the entity.
type Record interface {
	RecordID() string
}
