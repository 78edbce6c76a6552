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
	"strings"
)

// LegacyPrefix starts a legacy formatting code
const LegacyPrefix = '§'

// 📟 ParseLegacy reads text carrying legacy section-sign formatting codes
// ("§6gold §lbold"). Color codes 0-9 and a-f reset the formatting flags, k-o set
// them, and r resets everything. Unknown codes are dropped along with their
// prefix; a trailing prefix is kept as text.
func ParseLegacy(s string) StyledText {
	var runs []Run
	var cur strings.Builder
	style := Style{}

	flush := func() {
		if cur.Len() > 0 {
			runs = append(runs, Run{Text: cur.String(), Style: style})
			cur.Reset()
		}
	}

	rs := []rune(s)
	for i := 0; i < len(rs); i++ {
		if rs[i] != LegacyPrefix || i+1 >= len(rs) {
			cur.WriteRune(rs[i])
			continue
		}

		code := rs[i+1]
		i++
		next, ok := applyLegacyCode(style, code)
		if !ok {
			continue
		}
		if !next.Equal(style) {
			flush()
			style = next
		}
	}
	flush()

	return New(runs...)
}

func applyLegacyCode(s Style, code rune) (Style, bool) {
	if idx := strings.IndexRune("0123456789abcdef", toLowerASCII(code)); idx >= 0 {
		return Style{}.WithColor(namedColors[idx].color), true
	}
	switch toLowerASCII(code) {
	case 'k':
		s.Obfuscated = true
	case 'l':
		s.Bold = true
	case 'm':
		s.Strikethrough = true
	case 'n':
		s.Underlined = true
	case 'o':
		s.Italic = true
	case 'r':
		return Style{}, true
	default:
		return s, false
	}
	return s, true
}

func toLowerASCII(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// Legacy renders the text with section-sign codes. Colors that are not one
// of the sixteen chat colors are written as the nearest one.
func (t StyledText) Legacy() string {
	var sb strings.Builder
	prev := Style{}
	for _, r := range t.Runs() {
		if !r.Style.Equal(prev) {
			sb.WriteString(legacyCodes(r.Style))
			prev = r.Style
		}
		sb.WriteString(r.Text)
	}
	return sb.String()
}

func legacyCodes(s Style) string {
	var sb strings.Builder
	if s.Color != nil {
		sb.WriteRune(LegacyPrefix)
		sb.WriteByte("0123456789abcdef"[nearestNamed(*s.Color)])
	} else {
		sb.WriteRune(LegacyPrefix)
		sb.WriteByte('r')
	}
	flags := []struct {
		on   bool
		code byte
	}{
		{s.Obfuscated, 'k'},
		{s.Bold, 'l'},
		{s.Strikethrough, 'm'},
		{s.Underlined, 'n'},
		{s.Italic, 'o'},
	}
	for _, f := range flags {
		if f.on {
			sb.WriteRune(LegacyPrefix)
			sb.WriteByte(f.code)
		}
	}
	return sb.String()
}

// nearestNamed returns the index of the closest chat color in CIE L*a*b* space
func nearestNamed(c Color) int {
	want := c.colorful()
	best, bestDist := 0, -1.0
	for i, nc := range namedColors {
		d := want.DistanceLab(nc.color.colorful())
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
