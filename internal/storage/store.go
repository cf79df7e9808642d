package storage

// Store is a keyed text-record store, the server-side counterpart of the
// browser's Web Storage API. Values are opaque text; callers own the
// (de)serialization of whatever they put in.
type Store interface {
	// Get returns the record for key. ok is false when no record exists.
	Get(key string) (value string, ok bool, err error)
	// Set writes the record for key, replacing any previous value.
	// Last write wins.
	Set(key, value string) error
	// Remove deletes the record for key. Removing a missing key is a no-op.
	Remove(key string) error
}
