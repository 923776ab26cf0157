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

package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/syncy/cmd/syncy/opts"
	"github.com/walteh/syncy/pkg/log"
	"github.com/walteh/syncy/pkg/operation"
	"github.com/walteh/syncy/pkg/tree"
)

// NewSyncCmd creates a new sync command
func NewSyncCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Push the source files to every destination",
		Long: `Sync mirrors the filtered and transformed source into each destination.
For every destination with changes it will:
1. Create a branch off the destination's base
2. Create, update and delete files on that branch
3. Open a pull request back into the base

With --dry-run it stops after planning.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "sync").Logger().WithContext(cmd.Context())

			op, _, err := o.NewOperator(ctx, o.DryRun)
			if err != nil {
				return err
			}

			results, syncErr := op.Sync(ctx)
			if err := reportResults(log.NewReport(ctx, o.Out), results); err != nil {
				return err
			}

			if syncErr != nil {
				return errors.Errorf("syncing: %w", syncErr)
			}
			return nil
		},
	}

	return cmd
}

func reportResults(report *log.Report, results []operation.Result) error {
	if len(results) == 0 {
		return nil
	}

	if results[0].DryRun {
		rows := make([]log.PlanRow, 0, len(results))
		for _, r := range results {
			rows = append(rows, log.PlanRow{
				Destination: r.Destination.FullName(),
				Base:        r.Destination.Base,
				Summary:     tree.Summarize(r.Events),
			})
		}
		return report.Plan(rows)
	}

	rows := make([]log.ResultRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, log.ResultRow{
			Destination:    r.Destination.FullName(),
			Branch:         r.Branch,
			PullRequestURL: r.PullRequestURL,
			Summary:        tree.Summarize(r.Events),
		})
	}
	return report.Results(rows)
}
