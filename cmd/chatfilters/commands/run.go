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
	"bytes"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/chatfilters/cmd/chatfilters/opts"
	"github.com/walteh/chatfilters/pkg/filter"
	"github.com/walteh/chatfilters/pkg/log"
	"github.com/walteh/chatfilters/pkg/pipeline"
	"github.com/walteh/chatfilters/pkg/process"
)

type runFlags struct {
	inFormat  string
	outFormat string
	parallel  int
	drop      bool
	verbose   bool
	noColor   bool
	notify    bool
	nfc       bool
}

// NewRunCmd creates the run command
func NewRunCmd(o *opts.RootOpts) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run [files...]",
		Short: "Filter chat logs",
		Long: `Run passes every line of the given chat logs (or stdin) through the filter chain.
Each line:
1. Is decoded from the input format
2. Runs through every active filter in order
3. Is written to stdout in the output format

Narration and sounds are printed to stderr (narration can go to desktop
notifications with --notify).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if flags.noColor {
				color.NoColor = true
			}

			cfgs, err := o.Filters(ctx)
			if err != nil {
				return err
			}

			svc := process.Services{
				Speaker: process.NewConsoleSpeaker(cmd.ErrOrStderr()),
				Player:  process.NewConsolePlayer(cmd.ErrOrStderr()),
			}
			if flags.notify {
				svc.Speaker = process.NewNotifySpeaker("chatfilters")
			}

			chain, err := filter.BuildChain(cfgs, svc)
			if err != nil {
				return errors.Errorf("building filters: %w", err)
			}

			runOpts := []pipeline.Option{
				pipeline.WithFormats(pipeline.Format(flags.inFormat), pipeline.Format(flags.outFormat)),
				pipeline.WithParallel(flags.parallel),
			}
			if flags.nfc {
				runOpts = append(runOpts, pipeline.WithNormalization())
			}
			if flags.drop {
				runOpts = append(runOpts, pipeline.DropForced())
			}
			if flags.verbose {
				runOpts = append(runOpts, pipeline.WithConsole(log.FromContext(ctx)))
			}
			runner := pipeline.NewRunner(chain, runOpts...)

			if len(args) == 0 {
				if _, err := runner.Run(ctx, "stdin", cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
					return errors.Errorf("filtering stdin: %w", err)
				}
				return nil
			}

			return runFiles(cmd, runner, args)
		},
	}

	cmd.Flags().StringVar(&flags.inFormat, "in", string(pipeline.FormatPlain), "input format (plain, markup, legacy)")
	cmd.Flags().StringVar(&flags.outFormat, "out", string(pipeline.FormatANSI), "output format (plain, markup, legacy, ansi)")
	cmd.Flags().IntVarP(&flags.parallel, "parallel", "p", 4, "files filtered at once (0 for no limit)")
	cmd.Flags().BoolVar(&flags.drop, "drop", false, "drop lines a processor stopped")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "report every matched line on stderr")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "disable colored output")
	cmd.Flags().BoolVar(&flags.notify, "notify", false, "show narration as desktop notifications")
	cmd.Flags().BoolVar(&flags.nfc, "nfc", false, "normalize input to Unicode NFC before filtering")

	return cmd
}

// runFiles filters files concurrently and writes their output in argument order
func runFiles(cmd *cobra.Command, runner *pipeline.Runner, paths []string) error {
	inputs := make([]pipeline.Input, 0, len(paths))
	outs := make([]*bytes.Buffer, 0, len(paths))
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return errors.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()

		buf := &bytes.Buffer{}
		outs = append(outs, buf)
		inputs = append(inputs, pipeline.Input{Name: path, Reader: f, Writer: buf})
	}

	if _, err := runner.RunAll(cmd.Context(), inputs); err != nil {
		return err
	}

	for _, buf := range outs {
		if _, err := io.Copy(cmd.OutOrStdout(), buf); err != nil {
			return errors.Errorf("writing output: %w", err)
		}
	}
	return nil
}
