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

package operation

import (
	"fmt"
	"io"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/syncy/pkg/config"
	"github.com/walteh/syncy/pkg/log"
	"github.com/walteh/syncy/pkg/remote"
	"github.com/walteh/syncy/pkg/tree"
)

// 🔧 Options contains configuration for the operator
type Options struct {
	// Config is the validated syncy configuration
	Config *config.Config
	// Compiled holds the parsed expressions and rules; compiled from Config when nil
	Compiled *config.Compiled
	// Provider is the remote repository provider
	Provider remote.Provider
	// Logger receives console output; discarded when nil
	Logger *log.Logger
	// Clock stamps branch names; the real clock when nil
	Clock clockwork.Clock
	// Concurrency is how many destinations run at once; 1 or less is sequential
	Concurrency int
	// DryRun stops Sync after planning
	DryRun bool
}

// 📋 DestinationPlan is the set of events one destination needs
type DestinationPlan struct {
	Destination config.Destination
	Events      []tree.Event
}

// Summary counts the plan's events per kind
func (p DestinationPlan) Summary() tree.Summary {
	return tree.Summarize(p.Events)
}

// 📦 Result describes what Sync did for one destination
type Result struct {
	Destination    config.Destination
	Branch         string // Empty when nothing was pushed
	PullRequestURL string
	Events         []tree.Event
	Skipped        bool // No events, so no branch or pull request was created
	DryRun         bool
}

// ❌ DestinationError ties a failure to the destination it happened in
type DestinationError struct {
	Destination string
	Err         error
}

func (e *DestinationError) Error() string {
	return fmt.Sprintf("destination %s: %v", e.Destination, e.Err)
}

func (e *DestinationError) Unwrap() error { return e.Err }

// 🏭 New creates a new operator with the given options
func New(opts Options) (*Operator, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Provider == nil {
		return nil, errors.Errorf("provider is required")
	}

	compiled := opts.Compiled
	if compiled == nil {
		var err error
		compiled, err = config.Compile(opts.Config)
		if err != nil {
			return nil, err
		}
	}

	if err := checkTemplates(opts.Config.PullRequest); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithZerolog(io.Discard, zerolog.Nop())
	}

	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Operator{
		config:   opts.Config,
		compiled: compiled,
		provider: opts.Provider,
		logger:   logger,
		clock:    clock,
		runner:   NewRunner(opts.Concurrency),
		dryRun:   opts.DryRun,
	}, nil
}

// 🎮 Operator plans and applies syncs from the source to every destination
type Operator struct {
	config   *config.Config
	compiled *config.Compiled
	provider remote.Provider
	logger   *log.Logger
	clock    clockwork.Clock
	runner   *Runner
	dryRun   bool
}

func (o *Operator) sourceRepo() remote.RepoRef {
	return remote.RepoRef{Owner: o.config.Source.Owner, Name: o.config.Source.Name}
}

func destinationRepo(d config.Destination) remote.RepoRef {
	return remote.RepoRef{Owner: d.Owner, Name: d.Name}
}
