package api

// Container is the operation surface common to goring containers,
// ordered or hashed. Methods that hand out cursors stay on the
// concrete types, their cursor types differ per package.
type Container[K, V any] interface {
	// ID return name supplied while creating this instance.
	ID() string

	// Count return number of entries in the container.
	Count() int64

	// IsEmpty return whether the container has no entries.
	IsEmpty() bool

	// Has return whether key is present.
	Has(key K) bool

	// Get return the value mapped to key.
	Get(key K) (value V, ok bool)

	// Set upsert value for key, returning the previous value when the
	// key was already present.
	Set(key K, value V) (old V, updated bool)

	// Delete remove one entry for key, returning its mapped value.
	Delete(key K) (value V, ok bool)

	// Clear remove every entry.
	Clear()

	// Stats return instance counters.
	Stats() map[string]interface{}

	// Log vital statistics.
	Log(what string, humanfmt bool)

	// Validate invariants, panic on violation.
	Validate()

	// Destroy release the container. Instance shall not be used after
	// this call.
	Destroy()
}
