package store

import (
	"fmt"
	"sync"

	"github.com/redhat-data-and-ai/usercache/pkg/cache/inmemory"
)

var (
	sharedOnce  sync.Once
	sharedStore *UserStore
)

// Shared returns the process-wide user store. It is created on first access
// over a never-expiring in-memory cache and lives until the process exits.
//
// Code that can take a UserStoreInterface should be handed this instance by
// its caller instead of calling Shared itself.
func Shared() *UserStore {
	sharedOnce.Do(func() {
		c, err := inmemory.NewCache(nil)
		if err != nil {
			panic(fmt.Sprintf("failed to create shared user cache: %v", err))
		}
		sharedStore = newUserStore(c)
	})
	return sharedStore
}
