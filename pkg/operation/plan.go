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

	"github.com/walteh/syncy/pkg/config"
	"github.com/walteh/syncy/pkg/transform"
	"github.com/walteh/syncy/pkg/tree"
	"github.com/walteh/syncy/pkg/workdir"
)

// Plan lists and transforms the source once, then diffs it against every
// destination's base branch. No remote state is changed.
func (o *Operator) Plan(ctx context.Context) ([]DestinationPlan, error) {
	source, err := o.SourceTree(ctx)
	if err != nil {
		return nil, err
	}

	dests := o.config.Destinations
	plans := make([]DestinationPlan, len(dests))
	err = o.runner.Run(ctx, len(dests), func(ctx context.Context, i int) error {
		p, err := o.planDestination(ctx, source, dests[i])
		if err != nil {
			return &DestinationError{Destination: dests[i].FullName(), Err: err}
		}
		plans[i] = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plans, nil
}

// SourceTree lists the source at its ref, then filters it with origin_files
// and applies the transformations.
func (o *Operator) SourceTree(ctx context.Context) (*tree.Tree, error) {
	logger := zerolog.Ctx(ctx)
	src := o.config.Source

	listed, err := o.provider.ListTree(ctx, o.sourceRepo(), src.GitRef, "")
	if err != nil {
		return nil, errors.Errorf("listing source %s@%s: %w", src.FullName(), src.GitRef, err)
	}

	filtered, err := workdir.Filter(listed, o.compiled.OriginFiles, "")
	if err != nil {
		return nil, errors.Errorf("filtering source with %s: %w", o.compiled.OriginFiles, err)
	}

	transformed, report, err := transform.ApplyReport(filtered, o.compiled.Transformations)
	if err != nil {
		return nil, errors.Errorf("transforming source: %w", err)
	}

	logger.Debug().
		Str("source", src.FullName()).
		Int("listed", listed.Len()).
		Int("selected", filtered.Len()).
		Int("moved", report.Moved).
		Int("replacements", report.Replacements).
		Msg("built source tree")

	return transformed, nil
}

func (o *Operator) planDestination(ctx context.Context, source *tree.Tree, d config.Destination) (DestinationPlan, error) {
	listed, err := o.provider.ListTree(ctx, destinationRepo(d), d.Base, "")
	if err != nil {
		return DestinationPlan{}, errors.Errorf("listing %s@%s: %w", d.FullName(), d.Base, err)
	}

	filtered, err := workdir.Filter(listed, o.compiled.DestinationFiles, "")
	if err != nil {
		return DestinationPlan{}, errors.Errorf("filtering with %s: %w", o.compiled.DestinationFiles, err)
	}

	events := tree.Diff(source, filtered)

	zerolog.Ctx(ctx).Debug().
		Str("destination", d.FullName()).
		Stringer("summary", tree.Summarize(events)).
		Msg("planned destination")

	return DestinationPlan{Destination: d, Events: events}, nil
}
