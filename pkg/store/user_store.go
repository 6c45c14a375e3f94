package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redhat-data-and-ai/usercache/pkg/cache"
	"github.com/redhat-data-and-ai/usercache/pkg/common/structs"
	"github.com/redhat-data-and-ai/usercache/pkg/logger"
)

const (
	userKeyPrefix = "user:"
)

// UserStore keeps users in the cache under "user:<id>", one entry per id
type UserStore struct {
	cache cache.Cache
}

func newUserStore(c cache.Cache) *UserStore {
	return &UserStore{cache: c}
}

func userKey(id string) string {
	return userKeyPrefix + id
}

// Add inserts or overwrites the entry for user.GetID()
func (s *UserStore) Add(ctx context.Context, user structs.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user %s: %w", user.GetID(), err)
	}

	if err := s.cache.Set(ctx, userKey(user.GetID()), string(data), cache.NoExpiration); err != nil {
		return fmt.Errorf("failed to store user %s: %w", user.GetID(), err)
	}

	logger.Logger(ctx).WithField("userID", user.GetID()).Debug("stored user")
	return nil
}

// GetAll returns the users currently in the cache, in no particular order
func (s *UserStore) GetAll(ctx context.Context) ([]structs.User, error) {
	entries, err := s.cache.GetByPattern(ctx, userKeyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]structs.User, 0, len(entries))
	for key, value := range entries {
		raw, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected value type %T for key %s", value, key)
		}

		var user structs.User
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			return nil, fmt.Errorf("failed to unmarshal user at key %s: %w", key, err)
		}
		users = append(users, user)
	}

	return users, nil
}
