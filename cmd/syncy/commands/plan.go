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
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/syncy/cmd/syncy/opts"
	"github.com/walteh/syncy/pkg/log"
)

// NewPlanCmd creates a new plan command
func NewPlanCmd(o *opts.RootOpts) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the changes a sync would make",
		Long: `Plan lists the source and every destination and prints the events each
destination needs. Nothing is pushed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			op, _, err := o.NewOperator(ctx, true)
			if err != nil {
				return err
			}

			plans, err := op.Plan(ctx)
			if err != nil {
				return errors.Errorf("planning: %w", err)
			}

			report := log.NewReport(ctx, o.Out)
			rows := make([]log.PlanRow, 0, len(plans))
			for _, p := range plans {
				rows = append(rows, log.PlanRow{
					Destination: p.Destination.FullName(),
					Base:        p.Destination.Base,
					Summary:     p.Summary(),
				})
			}
			if err := report.Plan(rows); err != nil {
				return err
			}

			if !verbose {
				return nil
			}
			for _, p := range plans {
				if err := report.Events(p.Destination.FullName(), p.Events); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "list every event per destination")

	return cmd
}
