package store

import (
	"github.com/redhat-data-and-ai/usercache/pkg/cache"
)

// Store groups the sub-stores layered on a single cache
// It encapsulates key prefixing and JSON serialization
// NOTE: This store does NOT handle locking - callers are responsible for proper synchronization
type Store struct {
	User UserStoreInterface
}

// New creates a new Store instance with all sub-stores initialized
func New(cache cache.Cache) *Store {
	return &Store{
		User: newUserStore(cache),
	}
}

// NewUserStore creates a standalone user store over the given cache
func NewUserStore(cache cache.Cache) *UserStore {
	return newUserStore(cache)
}

// Compile-time interface compliance checks
var (
	_ UserStoreInterface = (*UserStore)(nil)
)
