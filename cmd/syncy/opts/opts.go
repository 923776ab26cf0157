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

package opts

import (
	"context"
	"io"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/syncy/pkg/config"
	"github.com/walteh/syncy/pkg/log"
	"github.com/walteh/syncy/pkg/operation"
	"github.com/walteh/syncy/pkg/remote"
)

// Viper keys shared by the flags and the SYNCY_* environment
const (
	KeyConfig      = "config"
	KeyToken       = "token"
	KeyAPIURL      = "api-url"
	KeyConcurrency = "concurrency"
	KeyDebug       = "debug"
	KeyDryRun      = "dry-run"
)

// DefaultProvider is the remote provider commands talk to
const DefaultProvider = "github"

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile    string
	Token         string
	TokenFromFlag bool // --token wins over the token in the config file
	APIURL        string
	Concurrency   int
	Debug         bool
	DryRun        bool

	Provider string // registered remote provider name
	Fs       afero.Fs
	Out      io.Writer
	Clock    clockwork.Clock
}

// New returns options that read from the OS and write to stdout
func New() *RootOpts {
	return &RootOpts{
		Provider: DefaultProvider,
		Fs:       afero.NewOsFs(),
		Out:      os.Stdout,
		Clock:    clockwork.NewRealClock(),
	}
}

// Bind copies the resolved flag and environment values out of v
func (o *RootOpts) Bind(v *viper.Viper, tokenFromFlag bool) {
	o.ConfigFile = v.GetString(KeyConfig)
	o.Token = v.GetString(KeyToken)
	o.TokenFromFlag = tokenFromFlag
	o.APIURL = v.GetString(KeyAPIURL)
	o.Concurrency = v.GetInt(KeyConcurrency)
	o.Debug = v.GetBool(KeyDebug)
	o.DryRun = v.GetBool(KeyDryRun)
}

// Level is the structured log level; console output is unaffected
func (o *RootOpts) Level() zerolog.Level {
	if o.Debug {
		return zerolog.DebugLevel
	}
	return zerolog.WarnLevel
}

// Logger builds the console logger commands print through
func (o *RootOpts) Logger(ctx context.Context) *log.Logger {
	return log.NewWithZerolog(o.Out, zerolog.Ctx(ctx).Level(o.Level()))
}

// LoadConfig loads, validates and compiles the config file
func (o *RootOpts) LoadConfig(ctx context.Context) (*config.Config, *config.Compiled, error) {
	cfg, err := config.Load(ctx, o.Fs, o.ConfigFile)
	if err != nil {
		return nil, nil, errors.Errorf("loading config: %w", err)
	}

	compiled, err := config.Compile(cfg)
	if err != nil {
		return nil, nil, err
	}

	return cfg, compiled, nil
}

// token resolves the token: --token, then the config file, then SYNCY_TOKEN.
// An empty result leaves the provider to its own fallback.
func (o *RootOpts) token(cfg *config.Config) string {
	if o.TokenFromFlag && o.Token != "" {
		return o.Token
	}
	if cfg.Token != "" {
		return cfg.Token
	}
	return o.Token
}

// NewOperator loads the config and wires it to the remote provider
func (o *RootOpts) NewOperator(ctx context.Context, dryRun bool) (*operation.Operator, *config.Config, error) {
	cfg, compiled, err := o.LoadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}

	provider, err := remote.NewProvider(ctx, o.Provider, remote.Options{
		Token:   o.token(cfg),
		BaseURL: o.APIURL,
	})
	if err != nil {
		return nil, nil, errors.Errorf("creating provider: %w", err)
	}

	op, err := operation.New(operation.Options{
		Config:      cfg,
		Compiled:    compiled,
		Provider:    provider,
		Logger:      o.Logger(ctx),
		Clock:       o.Clock,
		Concurrency: o.Concurrency,
		DryRun:      dryRun,
	})
	if err != nil {
		return nil, nil, err
	}

	return op, cfg, nil
}
