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
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/walteh/syncy/cmd/syncy/commands"
	"github.com/walteh/syncy/cmd/syncy/opts"
)

// envPrefix namespaces the environment variables viper reads, e.g. SYNCY_TOKEN
const envPrefix = "SYNCY"

// newRootCmd creates the root command with every subcommand attached
func newRootCmd(o *opts.RootOpts) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "syncy",
		Short: "Mirror files from one repository into many",
		Long: `syncy copies a filtered, path-rewritten view of a source repository into
one or more destination repositories, opening one pull request per destination.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			o.Bind(v, cmd.Flags().Changed(opts.KeyToken))
			cmd.SetContext(setupLogging(cmd.Context(), o))
			return nil
		},
	}

	addRootFlags(cmd, v)

	cmd.AddCommand(
		commands.NewSyncCmd(o),
		commands.NewPlanCmd(o),
		commands.NewValidateCmd(o),
		newVersionCmd(o),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command and binds them, with
// their SYNCY_* environment variables, into v
func addRootFlags(cmd *cobra.Command, v *viper.Viper) {
	flags := cmd.PersistentFlags()
	flags.StringP(opts.KeyConfig, "c", ".syncy.yaml", "config file path")
	flags.String(opts.KeyToken, "", "GitHub token (default: the config token, then $SYNCY_TOKEN, then $GITHUB_TOKEN)")
	flags.String(opts.KeyAPIURL, "", "GitHub API base URL, for GitHub Enterprise")
	flags.Int(opts.KeyConcurrency, 1, "number of destinations synced at once")
	flags.BoolP(opts.KeyDebug, "d", false, "enable debug logging")
	flags.Bool(opts.KeyDryRun, false, "plan only, push nothing")

	_ = v.BindPFlags(flags)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// setupLogging applies the selected level to the context logger
func setupLogging(ctx context.Context, o *opts.RootOpts) context.Context {
	logger := zerolog.Ctx(ctx).Level(o.Level())
	return logger.WithContext(ctx)
}
