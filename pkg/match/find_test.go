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

package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name        string
		findType    FindType
		pattern     string
		input       string
		wantTexts   []string
		wantStarts  []int
		errContains string
	}{
		{
			name:       "literal",
			findType:   FindLiteral,
			pattern:    "ab",
			input:      "ab Ab abab",
			wantTexts:  []string{"ab", "ab", "ab"},
			wantStarts: []int{0, 6, 8},
		},
		{
			name:       "literal_non_overlapping",
			findType:   FindLiteral,
			pattern:    "aa",
			input:      "aaaa",
			wantTexts:  []string{"aa", "aa"},
			wantStarts: []int{0, 2},
		},
		{
			name:       "upperlower",
			findType:   FindUpperLower,
			pattern:    "hi.",
			input:      "HI. hi! Hi.",
			wantTexts:  []string{"HI.", "Hi."},
			wantStarts: []int{0, 8},
		},
		{
			name:       "regex",
			findType:   FindRegex,
			pattern:    `\d+`,
			input:      "a1 b22 c333",
			wantTexts:  []string{"1", "22", "333"},
			wantStarts: []int{1, 4, 8},
		},
		{
			name:       "multibyte_offsets",
			findType:   FindLiteral,
			pattern:    "ö",
			input:      "höhö",
			wantTexts:  []string{"ö", "ö"},
			wantStarts: []int{1, 4},
		},
		{
			name:        "bad_regex",
			findType:    FindRegex,
			pattern:     `(`,
			errContains: "compiling regex",
		},
		{
			name:        "empty_pattern",
			findType:    FindLiteral,
			pattern:     "",
			errContains: "pattern is required",
		},
		{
			name:        "unknown_type",
			findType:    "glob",
			pattern:     "*",
			errContains: "unknown find type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Compile(tt.findType, tt.pattern)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)

			res := s.Search(tt.input)
			assert.Equal(t, tt.input, res.Input)
			require.Len(t, res.Matches, len(tt.wantTexts))
			for i, m := range res.Matches {
				assert.Equal(t, tt.wantTexts[i], m.Text, "match %d text", i)
				assert.Equal(t, tt.wantStarts[i], m.Start, "match %d start", i)
				assert.Equal(t, tt.input[m.Start:m.End], m.Text, "match %d offsets", i)
				if i > 0 {
					assert.GreaterOrEqual(t, m.Start, res.Matches[i-1].End, "matches should not overlap")
				}
			}
		})
	}
}

func TestRegexSearcher_Groups(t *testing.T) {
	s, err := Compile(FindRegex, `(?P<name>\w+)(!)?`)
	require.NoError(t, err)

	res := s.Search("hey! you")
	require.Len(t, res.Matches, 2)

	first := res.Matches[0]
	assert.Equal(t, "hey!", first.Group(0).Text)
	assert.Equal(t, "hey", first.Group(1).Text)
	assert.Equal(t, "name", first.Group(1).Name)
	assert.True(t, first.Group(2).Matched)

	second := res.Matches[1]
	assert.Equal(t, "you", second.Text)
	assert.False(t, second.Group(2).Matched, "optional group should not participate")
	assert.Equal(t, "", second.Group(2).Text)

	g, ok := second.NamedGroup("name")
	assert.True(t, ok)
	assert.Equal(t, "you", g.Text)

	missing := second.Group(7)
	assert.False(t, missing.Matched)
	assert.Equal(t, 7, missing.Index)
}

func TestResult(t *testing.T) {
	empty := NewLiteralSearcher("x").Search("abc")
	assert.True(t, empty.Empty())
	_, ok := empty.First()
	assert.False(t, ok)

	res := NewLiteralSearcher("b").Search("abcb")
	first, ok := res.First()
	require.True(t, ok)
	assert.Equal(t, 1, first.Start)
	assert.Equal(t, 1, first.Len())
}

func TestFindType_Valid(t *testing.T) {
	for _, ft := range FindTypes() {
		assert.True(t, ft.Valid(), ft)
	}
	assert.False(t, FindType("glob").Valid())
}
