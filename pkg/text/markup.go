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

	"gitlab.com/tozd/go/errors"
)

// ParseStyle parses the form written by Style.String, e.g. "red+bold" or
// "#12abef+italic". "plain" is the zero style.
func ParseStyle(s string) (Style, error) {
	var st Style
	s = strings.TrimSpace(s)
	if s == "" || s == "plain" {
		return st, nil
	}
	for _, part := range strings.Split(s, "+") {
		switch strings.ToLower(part) {
		case "bold":
			st.Bold = true
		case "italic":
			st.Italic = true
		case "underlined":
			st.Underlined = true
		case "strikethrough":
			st.Strikethrough = true
		case "obfuscated":
			st.Obfuscated = true
		default:
			if st.Color != nil {
				return Style{}, errors.Errorf("style %q has more than one color", s)
			}
			if !strings.HasPrefix(part, "#") && !isColorName(part) {
				return Style{}, errors.Errorf("parsing style %q: unknown attribute %q", s, part)
			}
			c, err := ParseColor(part)
			if err != nil {
				return Style{}, errors.Errorf("parsing style %q: %w", s, err)
			}
			st.Color = &c
		}
	}
	return st, nil
}

func isColorName(s string) bool {
	for _, nc := range namedColors {
		if nc.name == strings.ToLower(s) {
			return true
		}
	}
	return false
}

// 🏷️ ParseMarkup reads text written by Markup. A tag "{style}" starts a styled
// run and "{/}" ends it. "{{" is an escaped "{". Other braces that do not form
// a valid tag are kept as text.
func ParseMarkup(s string) StyledText {
	var runs []Run
	var cur strings.Builder
	style := Style{}

	flush := func() {
		if cur.Len() > 0 {
			runs = append(runs, Run{Text: cur.String(), Style: style})
			cur.Reset()
		}
	}

	for i := 0; i < len(s); {
		if s[i] != '{' {
			next := strings.IndexByte(s[i:], '{')
			if next < 0 {
				next = len(s) - i
			}
			cur.WriteString(s[i : i+next])
			i += next
			continue
		}

		if strings.HasPrefix(s[i:], "{{") {
			cur.WriteByte('{')
			i += 2
			continue
		}

		end := strings.IndexByte(s[i:], '}')
		if end < 0 {
			cur.WriteString(s[i:])
			break
		}
		tag := s[i+1 : i+end]

		if tag == "/" {
			flush()
			style = Style{}
			i += end + 1
			continue
		}
		if st, err := ParseStyle(tag); err == nil && tag != "" {
			flush()
			style = st
			i += end + 1
			continue
		}

		cur.WriteByte('{')
		i++
	}
	flush()

	return New(runs...)
}
