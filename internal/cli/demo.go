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

package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/redhat-data-and-ai/usercache/internal/viewmodel"
	"github.com/redhat-data-and-ai/usercache/pkg/common/structs"
	"github.com/redhat-data-and-ai/usercache/pkg/logger"
	"github.com/redhat-data-and-ai/usercache/pkg/store"
	"github.com/redhat-data-and-ai/usercache/pkg/store/fake"
)

var (
	globalDemoUsers   = []string{"Ada", "Grace"}
	injectedDemoUsers = []string{"Ken", "Linus", "Rob"}
)

func newDemoCommand(_ *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Cache users through both consumers and print the stored names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

// runDemo caches users through the global-lookup consumer, through an
// injected consumer over the same shared store and through an injected
// consumer over a fake store, then renders what each store holds.
func runDemo(ctx context.Context, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithRequestId(ctx, uuid.NewString())
	log := logger.Logger(ctx).WithField("command", "demo")

	global := viewmodel.NewGlobalUserViewModel()
	for _, name := range globalDemoUsers {
		if err := global.Cache(ctx, structs.NewUser(name)); err != nil {
			return err
		}
	}

	// one shared instance, handed to the injected consumer by reference
	shared := store.Shared()
	cacheMutex := &sync.RWMutex{}
	injected := viewmodel.NewUserViewModel(shared, viewmodel.WithMutex(cacheMutex))

	g, gctx := errgroup.WithContext(ctx)
	for _, name := range injectedDemoUsers {
		g.Go(func() error {
			return injected.Cache(gctx, structs.NewUser(name))
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to seed shared store: %w", err)
	}

	fakeStore := fake.NewUserStore()
	isolated := viewmodel.NewUserViewModel(fakeStore)
	repeated := structs.NewUser("Tester")
	for i := 0; i < 3; i++ {
		if err := isolated.Cache(ctx, repeated); err != nil {
			return err
		}
	}

	log.WithFields(logrus.Fields{
		"globalUsers":   len(globalDemoUsers),
		"injectedUsers": len(injectedDemoUsers),
		"fakeCalls":     fakeStore.Calls(),
	}).Info("demo users cached")

	if _, err := fmt.Fprintln(out, "shared store (global lookup):"); err != nil {
		return err
	}
	if err := global.RenderNames(ctx, out); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(out, "shared store (injected):"); err != nil {
		return err
	}
	if err := injected.RenderNames(ctx, out); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(out, "fake store (injected):"); err != nil {
		return err
	}
	return isolated.RenderNames(ctx, out)
}
