// Package cache stores catalog responses between fetches so that conditional
// requests can be answered from a previous body.
package cache

// EvictCallback is called when an entry is evicted from the cache.
// Only the memory provider reports evictions; Redis expires keys server-side.
type EvictCallback func(key string, value []byte)

// Logger receives errors from cache backends that cannot return them to the caller.
type Logger interface {
	Error(msg string, err error)
}

// Cache is a byte-oriented key-value store with bounded lifetime entries.
type Cache interface {
	// Get retrieves a value by key. Returns the value and true if found, or nil and false if not.
	Get(key string) ([]byte, bool)

	// Set stores a value with the given key, overwriting any existing entry.
	Set(key string, value []byte)

	// Contains checks whether a key exists without refreshing it.
	Contains(key string) bool

	// Len returns the number of entries currently held.
	Len() int

	// Close releases any resources held by the cache (e.g., network connections).
	Close() error
}
