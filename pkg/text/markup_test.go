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

package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStyle(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Style
		wantErr bool
	}{
		{name: "plain", in: "plain", want: Style{}},
		{name: "empty", in: "", want: Style{}},
		{name: "named_color", in: "gold", want: Style{Color: &gold}},
		{name: "color_and_flags", in: "red+bold+italic", want: Style{Color: &red, Bold: true, Italic: true}},
		{name: "hex", in: "#ff5555+underlined", want: Style{Color: &red, Underlined: true}},
		{name: "flags_only", in: "strikethrough+obfuscated", want: Style{Strikethrough: true, Obfuscated: true}},
		{name: "bare_hex_rejected", in: "add", wantErr: true},
		{name: "two_colors", in: "red+gold", wantErr: true},
		{name: "unknown", in: "sparkly", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStyle(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestParseMarkup(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want StyledText
	}{
		{
			name: "plain_text",
			in:   "hello there",
			want: Plain("hello there"),
		},
		{
			name: "one_tag",
			in:   "hi {gold}ALEX{/}!",
			want: New(Run{Text: "hi "}, Run{Text: "ALEX", Style: Style{Color: &gold}}, Run{Text: "!"}),
		},
		{
			name: "unclosed_tag_runs_to_end",
			in:   "{red+bold}loud",
			want: New(Run{Text: "loud", Style: Style{Color: &red, Bold: true}}),
		},
		{
			name: "literal_braces",
			in:   "{hello} {} {",
			want: Plain("{hello} {} {"),
		},
		{
			name: "escaped_brace",
			in:   "{{red}x{/} {{{{",
			want: New(Run{Text: "{red}x {{"}),
		},
		{
			name: "escaped_brace_in_styled_run",
			in:   "{bold}{{/}{/}",
			want: New(Run{Text: "{/}", Style: Style{Bold: true}}),
		},
		{
			name: "tag_switches_style",
			in:   "{red}a{gold}b{/}c",
			want: New(Run{Text: "a", Style: Style{Color: &red}}, Run{Text: "b", Style: Style{Color: &gold}}, Run{Text: "c"}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseMarkup(tt.in)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want.Markup(), got.Markup())
		})
	}
}

func TestMarkup_RoundTrip(t *testing.T) {
	txt := New(
		Run{Text: "a "},
		Run{Text: "b", Style: Style{Color: &red, Bold: true}},
		Run{Text: " c "},
		Run{Text: "d", Style: Style{Italic: true}},
	)
	assert.True(t, txt.Equal(ParseMarkup(txt.Markup())), "got %s", ParseMarkup(txt.Markup()).Markup())
}

func TestMarkup_EscapesBraces(t *testing.T) {
	tests := []struct {
		name string
		txt  StyledText
		want string
	}{
		{
			name: "plain_tag_lookalike",
			txt:  Plain("say {red} now"),
			want: "say {{red} now",
		},
		{
			name: "styled_close_lookalike",
			txt:  New(Run{Text: "a{/}b", Style: Style{Bold: true}}),
			want: "{bold}a{{/}b{/}",
		},
		{
			name: "closing_brace_untouched",
			txt:  Plain("}{"),
			want: "}{{",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.txt.Markup()
			assert.Equal(t, tt.want, got)
			assert.True(t, tt.txt.Equal(ParseMarkup(got)), "round trip of %q", got)
		})
	}
}

func TestParseLegacy(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want StyledText
	}{
		{
			name: "no_codes",
			in:   "hello",
			want: Plain("hello"),
		},
		{
			name: "color_then_bold",
			in:   "§6gold §lbold",
			want: New(Run{Text: "gold ", Style: Style{Color: &gold}}, Run{Text: "bold", Style: Style{Color: &gold, Bold: true}}),
		},
		{
			name: "color_resets_flags",
			in:   "§l§cred",
			want: New(Run{Text: "red", Style: Style{Color: &red}}),
		},
		{
			name: "reset",
			in:   "§cred§r plain",
			want: New(Run{Text: "red", Style: Style{Color: &red}}, Run{Text: " plain"}),
		},
		{
			name: "uppercase_code",
			in:   "§Cred",
			want: New(Run{Text: "red", Style: Style{Color: &red}}),
		},
		{
			name: "unknown_code_dropped",
			in:   "a§zb",
			want: Plain("ab"),
		},
		{
			name: "trailing_prefix_kept",
			in:   "end§",
			want: Plain("end§"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLegacy(tt.in)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want.Markup(), got.Markup())
		})
	}
}

func TestLegacy(t *testing.T) {
	txt := New(
		Run{Text: "a "},
		Run{Text: "b", Style: Style{Color: &red, Bold: true}},
		Run{Text: " c"},
	)
	assert.Equal(t, "a §c§lb§r c", txt.Legacy())
	assert.True(t, txt.Equal(ParseLegacy(txt.Legacy())))

	// off-palette colors snap to the closest chat color
	orange := Color{R: 0xff, G: 0xa5, B: 0x00}
	assert.Equal(t, "§6x", Colored("x", orange).Legacy())
}
