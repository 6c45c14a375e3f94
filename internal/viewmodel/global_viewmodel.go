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

package viewmodel

import (
	"context"
	"io"

	"github.com/redhat-data-and-ai/usercache/pkg/common/structs"
	"github.com/redhat-data-and-ai/usercache/pkg/logger"
	"github.com/redhat-data-and-ai/usercache/pkg/store"
)

// GlobalUserViewModel looks up store.Shared on every call. There is no way to
// point it at another store, every test that uses it touches live shared state.
type GlobalUserViewModel struct{}

func NewGlobalUserViewModel() *GlobalUserViewModel {
	return &GlobalUserViewModel{}
}

func (GlobalUserViewModel) Cache(ctx context.Context, user structs.User) error {
	if err := store.Shared().Add(ctx, user); err != nil {
		logger.Logger(ctx).WithError(err).WithField("userID", user.GetID()).Error("failed to cache user")
		return err
	}
	return nil
}

func (GlobalUserViewModel) FetchAll(ctx context.Context) ([]structs.User, error) {
	return store.Shared().GetAll(ctx)
}

func (vm GlobalUserViewModel) RenderNames(ctx context.Context, w io.Writer) error {
	users, err := vm.FetchAll(ctx)
	if err != nil {
		return err
	}
	return renderNames(w, users)
}
