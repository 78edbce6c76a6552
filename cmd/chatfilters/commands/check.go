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
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/chatfilters/cmd/chatfilters/opts"
	"github.com/walteh/chatfilters/pkg/config"
	"github.com/walteh/chatfilters/pkg/filter"
	"github.com/walteh/chatfilters/pkg/log"
	"github.com/walteh/chatfilters/pkg/process"
	"github.com/walteh/chatfilters/pkg/text"
)

// NewCheckCmd creates the check command
func NewCheckCmd(o *opts.RootOpts) *cobra.Command {
	var (
		try  []string
		save string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate filter configuration",
		Long: `Check loads the filter configuration and compiles every filter.
It will:
1. Report each filter with its find and replace settings
2. Run any --try messages through the chain and print the result as markup
3. Write the normalized configuration to --save, if given`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			console := log.New(cmd.OutOrStdout(), *zerolog.Ctx(ctx))

			cfgs, err := o.Filters(ctx)
			if err != nil {
				return err
			}

			chain, err := filter.BuildChain(cfgs, process.Services{
				Speaker: process.NewConsoleSpeaker(cmd.OutOrStdout()),
				Player:  process.NewConsolePlayer(cmd.OutOrStdout()),
			})
			if err != nil {
				return errors.Errorf("building filters: %w", err)
			}

			for _, f := range chain.Filters() {
				state := "active"
				if !f.Active() {
					state = "inactive"
				}
				console.Infof("%s (%s)", f.Config(), state)
			}
			console.Successf("%d filters ok", len(chain.Filters()))

			for _, msg := range try {
				res, err := chain.Process(ctx, text.ParseMarkup(msg))
				if err != nil {
					return errors.Errorf("trying %q: %w", msg, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s => %s\n", msg, res.Text.Markup())
			}

			if save != "" {
				saved := make([]filter.Config, 0, len(chain.Filters()))
				for _, f := range chain.Filters() {
					saved = append(saved, f.Config())
				}
				if err := config.Save(save, saved); err != nil {
					return errors.Errorf("saving config: %w", err)
				}
				console.Successf("saved %s", save)
			}

			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&try, "try", "t", nil, "run a message (markup) through the chain")
	cmd.Flags().StringVar(&save, "save", "", "write the normalized configuration to this file (.json, .yaml)")

	return cmd
}
