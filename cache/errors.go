package cache

import "errors"

var (
	// ErrKeyNotFound is returned by Get on a miss when no Loader is
	// configured, and by Touch on an absent key.
	ErrKeyNotFound = errors.New("loadcache: key not found")

	// ErrDuplicateKey is returned by Add when the key is already present.
	ErrDuplicateKey = errors.New("loadcache: duplicate key")

	// ErrNoLoader is returned by Refresh and GetUncached on a cache
	// constructed without a Loader.
	ErrNoLoader = errors.New("loadcache: no loader configured")

	// ErrInvalidCapacity is returned when a capacity <= 0 is requested.
	ErrInvalidCapacity = errors.New("loadcache: capacity must be positive")

	// ErrConcurrentModification is reported by an Iterator whose cache was
	// structurally mutated after the iterator was created.
	ErrConcurrentModification = errors.New("loadcache: cache modified during iteration")
)
