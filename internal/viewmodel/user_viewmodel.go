/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package viewmodel provides the application-facing user API.
//
// Two consumers are offered. GlobalUserViewModel always talks to the
// process-wide store returned by store.Shared and therefore can't be tested
// in isolation. UserViewModel is handed its store at construction, so the
// same code runs against the shared store in production and against a fake
// or mock store in tests.
package viewmodel

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/redhat-data-and-ai/usercache/pkg/common/structs"
	"github.com/redhat-data-and-ai/usercache/pkg/logger"
	"github.com/redhat-data-and-ai/usercache/pkg/store"
)

// ViewModel is the API both consumers expose to the application.
type ViewModel interface {
	Cache(ctx context.Context, user structs.User) error
	FetchAll(ctx context.Context) ([]structs.User, error)
	RenderNames(ctx context.Context, w io.Writer) error
}

var (
	_ ViewModel = (*UserViewModel)(nil)
	_ ViewModel = (*GlobalUserViewModel)(nil)
)

// UserViewModel forwards cache and fetch calls to an injected store.
type UserViewModel struct {

	// store is the accessor all calls are forwarded to.
	store store.UserStoreInterface

	// cacheMutex serializes writers against readers of the store.
	// When several consumers share one store the composition root passes the
	// same mutex to each of them, the store itself does no locking.
	cacheMutex *sync.RWMutex

	logger *logrus.Entry
}

// Option configures a UserViewModel.
type Option func(*UserViewModel)

// WithMutex shares a lock with other consumers of the same store.
func WithMutex(mu *sync.RWMutex) Option {
	return func(vm *UserViewModel) {
		if mu != nil {
			vm.cacheMutex = mu
		}
	}
}

// WithLogger sets the base log entry, request scoped fields are added per call.
func WithLogger(entry *logrus.Entry) Option {
	return func(vm *UserViewModel) {
		if entry != nil {
			vm.logger = entry
		}
	}
}

// NewUserViewModel creates a view model over the given store.
//
// Parameters:
//   - userStore: the accessor to forward to, e.g. store.Shared() or a fake
//   - opts: optional shared mutex and logger
//
// Returns:
//   - *UserViewModel: a ready to use view model
func NewUserViewModel(userStore store.UserStoreInterface, opts ...Option) *UserViewModel {
	vm := &UserViewModel{
		store:      userStore,
		cacheMutex: &sync.RWMutex{},
	}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

func (vm *UserViewModel) log(ctx context.Context) *logrus.Entry {
	if vm.logger != nil {
		if id := logger.RequestId(ctx); id != "" {
			return vm.logger.WithField("requestId", id)
		}
		return vm.logger
	}
	return logger.Logger(ctx)
}

// Cache stores the user through the injected store.
func (vm *UserViewModel) Cache(ctx context.Context, user structs.User) error {
	vm.cacheMutex.Lock()
	defer vm.cacheMutex.Unlock()

	log := vm.log(ctx).WithFields(logrus.Fields{
		"userID": user.GetID(),
		"name":   user.GetName(),
	})

	if err := vm.store.Add(ctx, user); err != nil {
		log.WithError(err).Error("failed to cache user")
		return err
	}

	log.Debug("cached user")
	return nil
}

// FetchAll returns every user known to the injected store.
func (vm *UserViewModel) FetchAll(ctx context.Context) ([]structs.User, error) {
	vm.cacheMutex.RLock()
	defer vm.cacheMutex.RUnlock()

	users, err := vm.store.GetAll(ctx)
	if err != nil {
		vm.log(ctx).WithError(err).Error("failed to fetch users")
		return nil, err
	}

	vm.log(ctx).WithField("count", len(users)).Debug("fetched users")
	return users, nil
}

// RenderNames writes the name of every stored user to w, one per line.
func (vm *UserViewModel) RenderNames(ctx context.Context, w io.Writer) error {
	users, err := vm.FetchAll(ctx)
	if err != nil {
		return err
	}
	return renderNames(w, users)
}

// renderNames sorts by name so output doesn't depend on map iteration order.
func renderNames(w io.Writer, users []structs.User) error {
	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.GetName())
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return fmt.Errorf("failed to render user names: %w", err)
		}
	}
	return nil
}
