package store

import (
	"context"

	"github.com/redhat-data-and-ai/usercache/pkg/common/structs"
)

//go:generate mockgen -destination=mocks/mock_interfaces.go -package=mocks . UserStoreInterface

// UserStoreInterface defines the operations a consumer needs from a user store
// This interface enables swapping the shared store for a fake or a mock in tests
type UserStoreInterface interface {
	// Add inserts the user, replacing any user already stored under the same ID
	Add(ctx context.Context, user structs.User) error

	// GetAll returns every stored user
	// Order is unspecified; an empty store returns an empty slice
	GetAll(ctx context.Context) ([]structs.User, error)
}
