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

// Package cli wires configuration, logging, stores and view models together
// behind the usercache command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/redhat-data-and-ai/usercache/pkg/config"
	"github.com/redhat-data-and-ai/usercache/pkg/logger"
)

type rootOptions struct {
	env      string
	logLevel string
}

// NewRootCommand builds the usercache command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "usercache",
		Short: "In-memory user cache with shared and injected store access",
		Long: `usercache keeps users in a process-wide in-memory store and shows two ways
of reaching it: a consumer that looks the shared store up globally, and a
consumer that is handed its store at construction.`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.init()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.env, "env", config.DefaultEnv, "config name, read from $WORKDIR/appconfig/<env>.yaml")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (overrides log.level from config)")

	cmd.AddCommand(newDemoCommand(opts))
	cmd.AddCommand(newServeCommand(opts))

	return cmd
}

func (o *rootOptions) init() error {
	cfg, err := config.LoadConfig(o.env)
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if o.logLevel != "" {
		level = o.logLevel
	}
	if err := logger.SetLevel(level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return nil
}
