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

	"github.com/walteh/syncy/cmd/syncy/opts"
	"github.com/walteh/syncy/pkg/log"
)

// NewValidateCmd creates a new validate command
func NewValidateCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the config file without contacting any remote",
		Long: `Validate loads the config file, checks required fields and the schema version,
then compiles origin_files, destination_files and the transformations.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			report := log.NewReport(ctx, o.Out)

			cfg, _, err := o.LoadConfig(ctx)
			if err != nil {
				return err
			}

			report.Validation(true, cfg.String(), nil)
			return nil
		},
	}

	return cmd
}
