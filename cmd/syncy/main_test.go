// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/jonboulle/clockwork"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/syncy/cmd/syncy/opts"
	"github.com/walteh/syncy/pkg/config"
	"github.com/walteh/syncy/pkg/remote"
	"github.com/walteh/syncy/pkg/testutils"
)

const testProvider = "memory"

const testConfig = `version: "0.0.1"
source:
  owner: my_name
  name: test1
destinations:
  - owner: my_name
    name: test2
origin_files: glob("docs/**")
`

var (
	sourceRepo = remote.RepoRef{Owner: "my_name", Name: "test1"}
	destRepo   = remote.RepoRef{Owner: "my_name", Name: "test2"}
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	color.NoColor = true
	os.Exit(m.Run())
}

type harness struct {
	opts     *opts.RootOpts
	out      *bytes.Buffer
	memory   *testutils.MemoryProvider
	received remote.Options
}

func newHarness(t *testing.T, configContent string) *harness {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, ".syncy.yaml", []byte(configContent), 0o644), "writing config file")

	h := &harness{out: &bytes.Buffer{}, memory: testutils.NewMemoryProvider()}
	h.memory.AddFile(sourceRepo, "main", "docs/guide.md", "guide")
	h.memory.AddFile(sourceRepo, "main", "main.go", "package main")
	h.memory.AddBranch(destRepo, "main")

	remote.RegisterProvider(testProvider, func(ctx context.Context, o remote.Options) (remote.Provider, error) {
		h.received = o
		return h.memory, nil
	})

	h.opts = &opts.RootOpts{
		Provider: testProvider,
		Fs:       fs,
		Out:      h.out,
		Clock:    clockwork.NewFakeClockAt(time.UnixMilli(1700000000000)),
	}
	return h
}

func (h *harness) run(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd(h.opts)
	cmd.SetArgs(args)
	cmd.SetOut(h.out)
	cmd.SetErr(h.out)
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	return cmd.ExecuteContext(ctx)
}

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd(opts.New())
	require.NotNil(t, cmd, "command should not be nil")
	assert.Equal(t, "syncy", cmd.Use, "command name should match")
	assert.NotEmpty(t, cmd.Short, "should have short description")

	names := []string{}
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"sync", "plan", "validate", "version"}, names)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		config      string
		wantErr     bool
		errContains string
		outContains string
	}{
		{
			name:        "valid",
			config:      testConfig,
			outContains: "my_name/test1@main -> [my_name/test2]",
		},
		{
			name:        "malformed_destination",
			config:      testConfig + "destination_files: glob(\"unterminated\n",
			wantErr:     true,
			errContains: "destination_files",
		},
		{
			name:        "unsupported_version",
			config:      "version: \"2.0.0\"\nsource: {owner: a, name: b}\ndestinations: [{owner: c, name: d}]\n",
			wantErr:     true,
			errContains: "version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.config)
			err := h.run(t, "validate")
			if tt.wantErr {
				require.Error(t, err, "validate should fail")
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err, "validate should succeed")
			assert.Contains(t, h.out.String(), tt.outContains)
		})
	}
}

func TestValidateMalformedIsConfigError(t *testing.T) {
	h := newHarness(t, testConfig+"destination_files: glob(\"unterminated\n")
	err := h.run(t, "validate")
	require.Error(t, err)

	var cerr *config.ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "destination_files", cerr.Field)
}

func TestPlan(t *testing.T) {
	h := newHarness(t, testConfig)

	require.NoError(t, h.run(t, "plan", "--verbose"))

	out := h.out.String()
	assert.Contains(t, out, "my_name/test2")
	assert.Contains(t, out, "1 to create, 0 to update, 0 to delete")
	assert.Contains(t, out, "docs/guide.md")
	assert.NotContains(t, out, "main.go", "origin_files should filter the source")
	assert.Equal(t, []string{"main"}, h.memory.Branches(destRepo))
}

func TestSync(t *testing.T) {
	h := newHarness(t, testConfig)

	require.NoError(t, h.run(t, "sync"))

	const branch = "syncy/my_name/test1/1700000000000"
	assert.Equal(t, map[string]string{"docs/guide.md": "guide"}, h.memory.Files(destRepo, branch))
	require.Len(t, h.memory.PullRequests(destRepo), 1)
	assert.Contains(t, h.out.String(), "https://example.test/my_name/test2/pull/1")
}

func TestSyncDryRun(t *testing.T) {
	h := newHarness(t, testConfig)

	require.NoError(t, h.run(t, "sync", "--dry-run"))

	assert.Equal(t, []string{"main"}, h.memory.Branches(destRepo), "dry run must not push")
	assert.Empty(t, h.memory.PullRequests(destRepo))
	assert.Contains(t, h.out.String(), "1 to create, 0 to update, 0 to delete")
}

func TestEnvironmentBinding(t *testing.T) {
	t.Setenv("SYNCY_CONCURRENCY", "3")
	t.Setenv("SYNCY_API_URL", "https://ghe.example.test/api/v3/")

	h := newHarness(t, testConfig)
	require.NoError(t, h.run(t, "sync", "--debug"))

	assert.Equal(t, 3, h.opts.Concurrency)
	assert.True(t, h.opts.Debug)
	assert.Equal(t, "https://ghe.example.test/api/v3/", h.received.BaseURL)
}

func TestTokenResolution(t *testing.T) {
	tests := []struct {
		name        string
		configToken string
		envToken    string
		flagToken   string
		want        string
	}{
		{name: "none", want: ""},
		{name: "env_only", envToken: "env-token", want: "env-token"},
		{name: "config_over_env", configToken: "cfg-token", envToken: "env-token", want: "cfg-token"},
		{name: "flag_over_config", configToken: "cfg-token", flagToken: "flag-token", want: "flag-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SYNCY_TOKEN", tt.envToken)

			content := testConfig
			if tt.configToken != "" {
				content += "token: " + tt.configToken + "\n"
			}
			h := newHarness(t, content)

			args := []string{"plan"}
			if tt.flagToken != "" {
				args = append(args, "--token", tt.flagToken)
			}
			require.NoError(t, h.run(t, args...))
			assert.Equal(t, tt.want, h.received.Token)
		})
	}
}

func TestVersion(t *testing.T) {
	h := newHarness(t, testConfig)

	require.NoError(t, h.run(t, "version"))
	assert.Contains(t, h.out.String(), "syncy version info")

	h.out.Reset()
	require.NoError(t, h.run(t, "version", "--json"))
	assert.Contains(t, h.out.String(), `"go_version"`)
}
