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
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/chatfilters/cmd/chatfilters/opts"
	"github.com/walteh/chatfilters/pkg/match"
	"github.com/walteh/chatfilters/pkg/pipeline"
	"github.com/walteh/chatfilters/pkg/process"
)

// 🏷️ Build describes the running binary and what it can filter with
type Build struct {
	Version    string   `json:"version"`
	Commit     string   `json:"commit,omitempty"`
	Dirty      bool     `json:"dirty,omitempty"`
	Go         string   `json:"go"`
	Platform   string   `json:"platform"`
	FindTypes  []string `json:"find_types"`
	Processors []string `json:"processors"`
	Formats    []string `json:"formats"`
	Config     string   `json:"config,omitempty"`
	Filters    int      `json:"filters"`
}

// ReadBuild collects the embedded module and vcs info. Without build info the
// version reads "dev".
func ReadBuild() Build {
	b := Build{
		Version:    "dev",
		Go:         runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
		FindTypes:  stringsOf(match.FindTypes()),
		Processors: process.Keys(),
		Formats:    stringsOf(pipeline.Formats()),
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return b
	}
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		b.Version = v
	}
	for _, kv := range bi.Settings {
		switch kv.Key {
		case "vcs.revision":
			b.Commit = kv.Value[:min(len(kv.Value), 12)]
		case "vcs.modified":
			b.Dirty = kv.Value == "true"
		}
	}
	return b
}

func stringsOf[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}

// String renders the build as the human readable version banner
func (b Build) String() string {
	var sb strings.Builder

	version := b.Version
	if b.Commit != "" {
		version += " @ " + b.Commit
	}
	if b.Dirty {
		version += "+dirty"
	}
	fmt.Fprintf(&sb, "💬 chatfilters %s (%s, %s)\n", version, b.Go, b.Platform)
	fmt.Fprintf(&sb, "   find:       %s\n", strings.Join(b.FindTypes, ", "))
	fmt.Fprintf(&sb, "   processors: %s\n", strings.Join(b.Processors, ", "))
	fmt.Fprintf(&sb, "   formats:    %s\n", strings.Join(b.Formats, ", "))
	if b.Config != "" {
		fmt.Fprintf(&sb, "   config:     %s (%d filters)\n", b.Config, b.Filters)
	}
	return sb.String()
}

// NewVersionCmd creates the version command. When the configured filters
// load, their source and count are included.
func NewVersionCmd(o *opts.RootOpts) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version and supported features",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := ReadBuild()
			if cfgs, err := o.Filters(cmd.Context()); err == nil {
				b.Config, b.Filters = o.Source(), len(cfgs)
			}

			if !asJSON {
				fmt.Fprint(cmd.OutOrStdout(), b.String())
				return nil
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(b); err != nil {
				return errors.Errorf("encoding version: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	return cmd
}
