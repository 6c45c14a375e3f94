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
	"errors"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/redhat-data-and-ai/usercache/internal/server"
	"github.com/redhat-data-and-ai/usercache/internal/viewmodel"
	"github.com/redhat-data-and-ai/usercache/pkg/cache"
	"github.com/redhat-data-and-ai/usercache/pkg/config"
	"github.com/redhat-data-and-ai/usercache/pkg/logger"
	"github.com/redhat-data-and-ai/usercache/pkg/store"
)

const (
	shutdownTimeout = 10 * time.Second
)

func newServeCommand(_ *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the user cache over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// loaded by the root command for the selected --env
			cfg, err := config.GetConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Address
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.address from config)")
	return cmd
}

// newUserViewModel is the composition root for the served view model: the
// store is built once from config and handed to the consumer by reference.
func newUserViewModel(cfg *config.AppConfig) (*viewmodel.UserViewModel, error) {
	c, err := cache.New(&cfg.Cache)
	if err != nil {
		return nil, err
	}
	dataStore := store.New(c)
	return viewmodel.NewUserViewModel(dataStore.User, viewmodel.WithMutex(&sync.RWMutex{})), nil
}

func runServe(ctx context.Context, cfg *config.AppConfig, addr string) error {
	log := logger.Logger(ctx).WithField("command", "serve")

	vm, err := newUserViewModel(cfg)
	if err != nil {
		log.WithError(err).Error("failed to build user store")
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(addr, server.NewRouter(vm))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()
	log.WithField("addr", addr).Info("serving user cache")

	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("server error")
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown error")
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
