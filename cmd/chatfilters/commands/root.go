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
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/walteh/chatfilters/cmd/chatfilters/opts"
	"github.com/walteh/chatfilters/pkg/config"
	"github.com/walteh/chatfilters/pkg/log"
)

// NewRootCmd creates the chatfilters command with every subcommand attached
func NewRootCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chatfilters",
		Short: "Match, rewrite and react to chat messages",
		Long: `chatfilters applies configurable filters to chat messages. A filter finds text
(literal, case-insensitive or regex), optionally rewrites the matches, and can
trigger narration or a sound.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(setupLogging(cmd, o))
		},
	}

	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", ".chatfilters", "filter file (json, yaml, hcl)")
	cmd.PersistentFlags().StringVar(&o.ConfigDir, "dir", "", "load every filter file under this directory instead")
	cmd.PersistentFlags().StringVar(&o.Pattern, "pattern", config.DefaultPattern, "glob used with --dir")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")

	cmd.AddCommand(
		NewRunCmd(o),
		NewCheckCmd(o),
		NewVersionCmd(o),
	)

	return cmd
}

// setupLogging configures zerolog based on flags and attaches both the
// structured logger and the console logger to the command context
func setupLogging(cmd *cobra.Command, o *opts.RootOpts) context.Context {
	zerolog.SetGlobalLevel(o.Level())
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).With().Timestamp().Logger()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = zlog.WithContext(ctx)
	return log.NewContext(ctx, log.New(cmd.ErrOrStderr(), zlog))
}
