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

package pipeline

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/chatfilters/pkg/filter"
	"github.com/walteh/chatfilters/pkg/log"
	"github.com/walteh/chatfilters/pkg/match"
	"github.com/walteh/chatfilters/pkg/process"
	"github.com/walteh/chatfilters/pkg/replace"
	"github.com/walteh/chatfilters/pkg/text"
)

// muteProcessor stops the chain for every match
type muteProcessor struct{}

func (muteProcessor) Key() string { return "mute" }

func (muteProcessor) Process(context.Context, text.StyledText, *text.StyledText, match.Result) process.Result {
	return process.Force
}

func init() {
	process.Register("mute", func(process.Services) process.Processor { return muteProcessor{} })
}

func testContext() context.Context {
	return zerolog.Nop().WithContext(context.Background())
}

func buildChain(t *testing.T, cfgs ...filter.Config) *filter.Chain {
	t.Helper()
	chain, err := filter.BuildChain(cfgs, process.Services{})
	require.NoError(t, err)
	return chain
}

func swearFilter() filter.Config {
	return filter.Config{Name: "swear", Active: true, FindString: "darn", ReplaceTo: "****"}
}

func TestRunner_Run(t *testing.T) {
	gold := text.MustParseColor("gold")

	tests := []struct {
		name      string
		cfgs      []filter.Config
		opts      []Option
		input     string
		want      string
		wantStats Stats
	}{
		{
			name:      "plain_replace",
			cfgs:      []filter.Config{swearFilter()},
			input:     "oh darn it\nhello\n",
			want:      "oh **** it\nhello\n",
			wantStats: Stats{Lines: 2, Matched: 1, Changed: 1},
		},
		{
			name:      "crlf_and_missing_final_newline",
			cfgs:      []filter.Config{swearFilter()},
			input:     "darn\r\nfine",
			want:      "****\nfine\n",
			wantStats: Stats{Lines: 2, Matched: 1, Changed: 1},
		},
		{
			name: "colored_markup_output",
			cfgs: []filter.Config{{
				Name: "alex", Active: true, FindType: match.FindUpperLower, FindString: "ALEX",
				ReplaceTo: replace.MatchToken, Color: &gold,
			}},
			opts:      []Option{WithFormats(FormatPlain, FormatMarkup)},
			input:     "hi alex!\n",
			want:      "hi {gold}alex{/}!\n",
			wantStats: Stats{Lines: 1, Matched: 1, Changed: 1},
		},
		{
			name: "legacy_round_trip_keeps_style",
			cfgs: []filter.Config{{
				Name: "flip", Active: true, FindString: "alert", ReplaceType: replace.KindReverse,
			}},
			opts:      []Option{WithFormats(FormatLegacy, FormatLegacy)},
			input:     "§cred alert\n",
			want:      "§cred trela\n",
			wantStats: Stats{Lines: 1, Matched: 1, Changed: 1},
		},
		{
			name:      "decomposed_input_misses_composed_filter",
			cfgs:      []filter.Config{{Name: "cafe", Active: true, FindString: "caf\u00e9", ReplaceTo: "coffee"}},
			input:     "cafe\u0301\n",
			want:      "cafe\u0301\n",
			wantStats: Stats{Lines: 1},
		},
		{
			name:      "normalized_input_matches",
			cfgs:      []filter.Config{{Name: "cafe", Active: true, FindString: "caf\u00e9", ReplaceTo: "coffee"}},
			opts:      []Option{WithNormalization()},
			input:     "a cafe\u0301\n",
			want:      "a coffee\n",
			wantStats: Stats{Lines: 1, Matched: 1, Changed: 1},
		},
		{
			name: "processor_only_filter_matches_without_change",
			cfgs: []filter.Config{{
				Name: "ping", Active: true, FindString: "ping", ReplaceType: replace.KindNone,
			}},
			input:     "ping pong\n",
			want:      "ping pong\n",
			wantStats: Stats{Lines: 1, Matched: 1},
		},
		{
			name: "forced_lines_kept_by_default",
			cfgs: []filter.Config{{
				Name: "spam", Active: true, FindString: "buy", ReplaceType: replace.KindNone,
				Processors: []filter.ProcessorConfig{{Type: "mute"}},
			}},
			input:     "buy now\nhello\n",
			want:      "buy now\nhello\n",
			wantStats: Stats{Lines: 2, Matched: 1, Forced: 1},
		},
		{
			name: "forced_lines_dropped",
			cfgs: []filter.Config{{
				Name: "spam", Active: true, FindString: "buy", ReplaceType: replace.KindNone,
				Processors: []filter.ProcessorConfig{{Type: "mute"}},
			}},
			opts:      []Option{DropForced()},
			input:     "buy now\nhello\n",
			want:      "hello\n",
			wantStats: Stats{Lines: 2, Matched: 1, Forced: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(buildChain(t, tt.cfgs...), tt.opts...)

			var out bytes.Buffer
			stats, err := runner.Run(testContext(), "test", strings.NewReader(tt.input), &out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.String())
			assert.Equal(t, tt.wantStats, stats)
		})
	}
}

func TestRunner_Run_Console(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var console bytes.Buffer
	runner := NewRunner(buildChain(t, swearFilter()), WithConsole(log.New(&console, zerolog.Nop())))

	var out bytes.Buffer
	_, err := runner.Run(testContext(), "chat.log", strings.NewReader("hello\ndarn\n"), &out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(console.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "◆ chat.log • 1 filters", lines[0])
	assert.Contains(t, lines[1], "chat.log line 2")
	assert.Contains(t, lines[1], "swear")
	assert.Contains(t, lines[1], "CHANGED")
	assert.Equal(t, "2 lines • 1 matched • 1 changed", strings.TrimSpace(lines[2]))
}

func TestRunner_Run_Errors(t *testing.T) {
	t.Run("unreadable_input_format", func(t *testing.T) {
		runner := NewRunner(buildChain(t, swearFilter()), WithFormats(FormatANSI, FormatPlain))
		_, err := runner.Run(testContext(), "test", strings.NewReader("darn\n"), &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be read")
	})

	t.Run("unknown_output_format", func(t *testing.T) {
		runner := NewRunner(buildChain(t, swearFilter()), WithFormats(FormatPlain, Format("html")))
		_, err := runner.Run(testContext(), "test", strings.NewReader("darn\n"), &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown format")
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(testContext())
		cancel()
		runner := NewRunner(buildChain(t, swearFilter()))
		_, err := runner.Run(ctx, "test", strings.NewReader("darn\n"), &bytes.Buffer{})
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRunner_RunAll(t *testing.T) {
	runner := NewRunner(buildChain(t, swearFilter()), WithParallel(2))

	inputs := []string{"darn\nok\n", "fine\n", "darn darn\ndarn\n"}
	wants := []string{"****\nok\n", "fine\n", "**** ****\n****\n"}

	outs := make([]*bytes.Buffer, len(inputs))
	ins := make([]Input, len(inputs))
	for i, s := range inputs {
		outs[i] = &bytes.Buffer{}
		ins[i] = Input{Name: s, Reader: strings.NewReader(s), Writer: outs[i]}
	}

	total, err := runner.RunAll(testContext(), ins)
	require.NoError(t, err)
	assert.Equal(t, Stats{Lines: 5, Matched: 3, Changed: 3}, total)
	for i, want := range wants {
		assert.Equal(t, want, outs[i].String(), "input %d", i)
	}
}

func TestRunner_RunAll_Error(t *testing.T) {
	runner := NewRunner(buildChain(t, swearFilter()), WithFormats(FormatPlain, Format("html")))

	_, err := runner.RunAll(testContext(), []Input{
		{Name: "a", Reader: strings.NewReader("darn\n"), Writer: &bytes.Buffer{}},
		{Name: "b", Reader: strings.NewReader("darn\n"), Writer: &bytes.Buffer{}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "running inputs")
}

func TestFormat_Encode(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	red := text.MustParseColor("red")
	msg := text.New(text.Run{Text: "a "}, text.Run{Text: "b", Style: text.Style{Color: &red}})

	tests := []struct {
		format Format
		want   string
	}{
		{format: FormatPlain, want: "a b"},
		{format: FormatMarkup, want: "a {red}b{/}"},
		{format: FormatLegacy, want: "a §cb"},
		{format: FormatANSI, want: "a b"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			got, err := tt.format.Encode(msg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
