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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redhat-data-and-ai/usercache/pkg/cache"
	"github.com/redhat-data-and-ai/usercache/pkg/common/structs"
	"github.com/redhat-data-and-ai/usercache/pkg/config"
)

// setupTestConfig points WORKDIR at a temp dir holding appconfig/default.yaml.
func setupTestConfig(t *testing.T, content string) {
	t.Helper()
	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, "appconfig")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	if content != "" {
		require.NoError(t, os.WriteFile(filepath.Join(configDir, "default.yaml"), []byte(content), 0644))
	}
	t.Setenv("WORKDIR", tempDir)
}

// section returns the lines printed under the given header.
func section(output, header string) []string {
	var lines []string
	inSection := false
	for _, line := range strings.Split(output, "\n") {
		if strings.HasSuffix(line, ":") {
			inSection = line == header
			continue
		}
		if inSection && line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func TestDemoCommand(t *testing.T) {
	setupTestConfig(t, `log:
  level: "warn"
`)

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"demo"})
	require.NoError(t, cmd.Execute())

	output := out.String()
	want := []string{"Ada", "Grace", "Ken", "Linus", "Rob"}

	// the shared store lives for the whole test binary, so earlier runs may
	// have left users behind; both consumers must still agree on its content
	globalNames := section(output, "shared store (global lookup):")
	injectedNames := section(output, "shared store (injected):")
	assert.Subset(t, globalNames, want)
	assert.Equal(t, globalNames, injectedNames)

	// the fake store keys by call count, the same user shows up three times
	assert.Equal(t, []string{"Tester", "Tester", "Tester"}, section(output, "fake store (injected):"))
}

func TestDemoCommand_Repeated(t *testing.T) {
	setupTestConfig(t, "")

	var first, second bytes.Buffer
	require.NoError(t, runDemo(context.Background(), &first))
	require.NoError(t, runDemo(context.Background(), &second))

	// every run adds its own users to the shared store
	header := "shared store (global lookup):"
	assert.Len(t, section(second.String(), header), len(section(first.String(), header))+5)
	assert.Equal(t, []string{"Tester", "Tester", "Tester"}, section(second.String(), "fake store (injected):"))
}

func TestServeCommand_UsesLoadedConfig(t *testing.T) {
	setupTestConfig(t, `cache:
  driver: "etcd"
`)

	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"serve", "--addr", "127.0.0.1:0"})
	assert.ErrorIs(t, cmd.Execute(), cache.ErrUnknownDriver)
}

func TestRootCommand_InvalidLogLevel(t *testing.T) {
	setupTestConfig(t, "")

	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"demo", "--log-level", "chatty"})
	assert.Error(t, cmd.Execute())
}

func TestNewUserViewModel(t *testing.T) {
	ctx := context.Background()

	vm, err := newUserViewModel(&config.AppConfig{Cache: cache.Config{Driver: cache.DriverMemory}})
	require.NoError(t, err)

	require.NoError(t, vm.Cache(ctx, structs.NewUserWithID("a", "first")))
	require.NoError(t, vm.Cache(ctx, structs.NewUserWithID("a", "second")))
	users, err := vm.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "second", users[0].GetName())
}

func TestNewUserViewModel_UnknownDriver(t *testing.T) {
	_, err := newUserViewModel(&config.AppConfig{Cache: cache.Config{Driver: "etcd"}})
	assert.ErrorIs(t, err, cache.ErrUnknownDriver)
}

func TestRunServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := &config.AppConfig{Cache: cache.Config{Driver: cache.DriverMemory}}

	done := make(chan error, 1)
	go func() {
		done <- runServe(ctx, cfg, "127.0.0.1:0")
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}
}

func TestRunServe_BadConfig(t *testing.T) {
	cfg := &config.AppConfig{Cache: cache.Config{Driver: "etcd"}}
	assert.Error(t, runServe(context.Background(), cfg, "127.0.0.1:0"))
}
