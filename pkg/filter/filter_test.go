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

package filter

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/chatfilters/pkg/match"
	"github.com/walteh/chatfilters/pkg/process"
	"github.com/walteh/chatfilters/pkg/replace"
	"github.com/walteh/chatfilters/pkg/text"
)

type recordingSpeaker struct {
	lines []string
}

func (r *recordingSpeaker) Say(text string, _ bool) {
	r.lines = append(r.lines, text)
}

type recordingPlayer struct {
	ids []string
}

func (r *recordingPlayer) Play(id string, _, _ float64) {
	r.ids = append(r.ids, id)
}

// stopProcessor forces the chain to stop
type stopProcessor struct{}

func (stopProcessor) Key() string { return "stop" }

func (stopProcessor) Process(context.Context, text.StyledText, *text.StyledText, match.Result) process.Result {
	return process.Force
}

func init() {
	process.Register("stop", func(process.Services) process.Processor { return stopProcessor{} })
}

func testContext() context.Context {
	return zerolog.Nop().WithContext(context.Background())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		errContains string
		check       func(t *testing.T, cfg Config)
	}{
		{
			name: "defaults",
			cfg:  Config{Name: " swear ", FindString: "darn"},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, "swear", cfg.Name)
				assert.Equal(t, match.FindLiteral, cfg.FindType)
				assert.Equal(t, replace.KindOnlyMatch, cfg.ReplaceType)
			},
		},
		{name: "missing_name", cfg: Config{FindString: "x"}, errContains: "name is required"},
		{name: "missing_find", cfg: Config{Name: "a"}, errContains: "find_string is required"},
		{name: "bad_find_type", cfg: Config{Name: "a", FindString: "x", FindType: "glob"}, errContains: "unknown find_type"},
		{name: "bad_replace_type", cfg: Config{Name: "a", FindString: "x", ReplaceType: "owo"}, errContains: "unknown replace type"},
		{
			name:        "bad_processor",
			cfg:         Config{Name: "a", FindString: "x", Processors: []ProcessorConfig{{Type: "sender"}}},
			errContains: "unknown type \"sender\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			err := cfg.Validate()
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestNew_BadRegex(t *testing.T) {
	_, err := New(Config{Name: "broken", Active: true, FindType: match.FindRegex, FindString: "("}, process.Services{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compiling regex")
}

func TestFilter_Apply(t *testing.T) {
	gold := text.MustParseColor("gold")

	tests := []struct {
		name        string
		cfg         Config
		input       text.StyledText
		wantMarkup  string
		wantMatched bool
		wantChanged bool
	}{
		{
			name: "only_match_with_color",
			cfg: Config{
				Name: "highlight", Active: true, FindType: match.FindUpperLower, FindString: "alex",
				ReplaceType: replace.KindOnlyMatch, ReplaceTo: "%MATCH%", Color: &gold,
			},
			input:       text.Plain("hi ALEX!"),
			wantMarkup:  "hi {gold}ALEX{/}!",
			wantMatched: true, wantChanged: true,
		},
		{
			name: "inactive",
			cfg: Config{
				Name: "off", Active: false, FindString: "a", ReplaceTo: "b",
			},
			input:      text.Plain("a"),
			wantMarkup: "a",
		},
		{
			name: "no_match",
			cfg: Config{
				Name: "nope", Active: true, FindString: "zzz", ReplaceTo: "b",
			},
			input:      text.Plain("abc"),
			wantMarkup: "abc",
		},
		{
			name: "reverse_single_chars_matches_without_change",
			cfg: Config{
				Name: "rev", Active: true, FindType: match.FindRegex, FindString: `\b\w\b`, ReplaceType: replace.KindReverse,
			},
			input:       text.Plain("a b"),
			wantMarkup:  "a b",
			wantMatched: true, wantChanged: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(tt.cfg, process.Services{})
			require.NoError(t, err)

			out, err := f.Apply(testContext(), tt.input, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMarkup, out.Text.Markup())
			assert.Equal(t, tt.wantMatched, out.Matched)
			assert.Equal(t, tt.wantChanged, out.Changed)
		})
	}
}

func TestFilter_Processors(t *testing.T) {
	speaker := &recordingSpeaker{}
	player := &recordingPlayer{}
	svc := process.Services{Speaker: speaker, Player: player}

	f, err := New(Config{
		Name: "mention", Active: true, FindType: match.FindRegex, FindString: `<(\w+)> .*@me`,
		ReplaceType: replace.KindNone,
		Processors: []ProcessorConfig{
			{Type: process.NarratorKey, Settings: json.RawMessage(`{"message": "$1 mentioned you"}`)},
			{Type: process.SoundKey},
		},
	}, svc)
	require.NoError(t, err)

	in := text.Plain("<Sam> hey @me")
	out, err := f.Apply(testContext(), in, &in)
	require.NoError(t, err)

	assert.True(t, out.Matched)
	assert.False(t, out.Changed, "processors should never change the text")
	assert.True(t, out.Text.Equal(in))
	assert.Equal(t, process.Processed, out.Result)
	assert.Equal(t, []string{"Sam mentioned you"}, speaker.lines)
	assert.Equal(t, []string{process.DefaultSound}, player.ids)
}

func TestFilter_ConfigRoundTrip(t *testing.T) {
	f, err := New(Config{
		Name: "n", Active: true, FindString: "x",
		Processors: []ProcessorConfig{{Type: process.NarratorKey, Settings: json.RawMessage(`{"message": "hi"}`)}},
	}, process.Services{})
	require.NoError(t, err)

	n := f.Processors()[0].(*process.Narrator)
	n.SetMessage("changed $1")

	cfg := f.Config()
	require.Len(t, cfg.Processors, 1)
	assert.JSONEq(t, `{"message": "changed $1"}`, string(cfg.Processors[0].Settings))

	again, err := New(cfg, process.Services{})
	require.NoError(t, err)
	assert.Equal(t, "changed $1", string(again.Processors()[0].(*process.Narrator).Message()))
}

func TestChain_Process(t *testing.T) {
	chain, err := BuildChain([]Config{
		{Name: "first", Active: true, FindString: "cat", ReplaceTo: "dog"},
		{Name: "second", Active: true, FindString: "dog", ReplaceTo: "wolf"},
		{Name: "third", Active: true, FindString: "bird", ReplaceTo: "plane"},
	}, process.Services{})
	require.NoError(t, err)

	res, err := chain.Process(testContext(), text.Plain("a cat"))
	require.NoError(t, err)
	assert.Equal(t, "a wolf", res.Text.String(), "later filters should see earlier output")
	assert.True(t, res.Changed)
	assert.Equal(t, []string{"first", "second"}, res.Matched)
	assert.Empty(t, res.Forced)
}

func TestChain_ForceStops(t *testing.T) {
	chain, err := BuildChain([]Config{
		{Name: "stopper", Active: true, FindString: "stop", ReplaceType: replace.KindNone, Processors: []ProcessorConfig{{Type: "stop"}}},
		{Name: "after", Active: true, FindString: "stop", ReplaceTo: "go"},
	}, process.Services{})
	require.NoError(t, err)

	res, err := chain.Process(testContext(), text.Plain("stop"))
	require.NoError(t, err)
	assert.Equal(t, "stop", res.Text.String())
	assert.Equal(t, "stopper", res.Forced)
	assert.Equal(t, []string{"stopper"}, res.Matched)
}

func TestBuildChain_Errors(t *testing.T) {
	_, err := BuildChain([]Config{
		{Name: "dup", FindString: "a"},
		{Name: "dup", FindString: "b"},
	}, process.Services{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate name")

	_, err = BuildChain([]Config{{Name: "bad"}}, process.Services{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "filter 0")
}
