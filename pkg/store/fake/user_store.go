// Package fake provides a test-local implementation of store.UserStoreInterface.
package fake

import (
	"context"
	"strconv"

	"github.com/redhat-data-and-ai/usercache/pkg/common/structs"
)

// UserStore records every Add under the running call count rather than the
// user id, so repeated ids are kept as separate entries. It is meant for
// asserting what a consumer sent to its store, not for identity semantics.
// Not safe for concurrent use.
type UserStore struct {
	users map[string]structs.User
	calls int
}

func NewUserStore() *UserStore {
	return &UserStore{
		users: make(map[string]structs.User),
	}
}

func (s *UserStore) Add(_ context.Context, user structs.User) error {
	if s.users == nil {
		s.users = make(map[string]structs.User)
	}
	s.calls++
	s.users[strconv.Itoa(s.calls)] = user
	return nil
}

func (s *UserStore) GetAll(_ context.Context) ([]structs.User, error) {
	users := make([]structs.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	return users, nil
}

// Calls reports how many times Add was invoked.
func (s *UserStore) Calls() int {
	return s.calls
}
