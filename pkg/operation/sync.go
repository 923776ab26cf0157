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
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/syncy/pkg/log"
	"github.com/walteh/syncy/pkg/remote"
)

// Sync plans every destination, then for each one with changes creates a
// branch off its base, applies the events in path order and opens a pull
// request. Results are returned in destination order, also on failure.
func (o *Operator) Sync(ctx context.Context) ([]Result, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("config", o.config.String()).Bool("dry_run", o.dryRun).Msg("syncing")

	plans, err := o.Plan(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(plans))
	for i, p := range plans {
		results[i] = Result{Destination: p.Destination, Events: p.Events, DryRun: o.dryRun}
	}

	if o.dryRun {
		for i, p := range plans {
			o.logPlan(ctx, p)
			results[i].Skipped = len(p.Events) == 0
		}
		return results, nil
	}

	branch := BranchName(o.config.Source, o.clock.Now())
	err = o.runner.Run(ctx, len(plans), func(ctx context.Context, i int) error {
		if err := o.syncDestination(ctx, plans[i], branch, &results[i]); err != nil {
			return &DestinationError{Destination: plans[i].Destination.FullName(), Err: err}
		}
		return nil
	})
	return results, err
}

func (o *Operator) logPlan(ctx context.Context, p DestinationPlan) {
	name := p.Destination.FullName()
	o.logger.StartDestination(ctx, log.DestinationOperation{
		Source:      o.config.Source.FullName(),
		Ref:         o.config.Source.GitRef,
		Destination: name,
		DryRun:      true,
	})
	for _, ev := range p.Events {
		o.logger.LogEvent(ctx, name, ev)
	}
	o.logger.EndDestination(ctx, name)
}

func (o *Operator) syncDestination(ctx context.Context, p DestinationPlan, branch string, result *Result) error {
	d := p.Destination
	name := d.FullName()
	repo := destinationRepo(d)

	if len(p.Events) == 0 {
		o.logger.Infof("%s is up to date, skipping", name)
		result.Skipped = true
		return nil
	}

	o.logger.StartDestination(ctx, log.DestinationOperation{
		Source:      o.config.Source.FullName(),
		Ref:         o.config.Source.GitRef,
		Destination: name,
		Branch:      branch,
	})
	defer o.logger.EndDestination(ctx, name)

	head, err := o.provider.BranchHead(ctx, repo, d.Base)
	if err != nil {
		return errors.Errorf("reading head of %s: %w", d.Base, err)
	}

	if err := o.provider.CreateBranch(ctx, repo, branch, head); err != nil {
		return errors.Errorf("creating branch %s: %w", branch, err)
	}
	result.Branch = branch

	for _, ev := range p.Events {
		if err := remote.ApplyEvent(ctx, o.provider, repo, branch, ev); err != nil {
			return errors.Errorf("applying %s: %w", ev, err)
		}
		o.logger.LogEvent(ctx, name, ev)
	}

	pr, err := o.pullRequest(d, branch, p)
	if err != nil {
		return err
	}

	url, err := o.provider.CreatePullRequest(ctx, repo, pr)
	if err != nil {
		return errors.Errorf("opening pull request: %w", err)
	}
	result.PullRequestURL = url

	o.logger.Successf("opened %s", url)
	return nil
}
