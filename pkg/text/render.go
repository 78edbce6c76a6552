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

	"github.com/fatih/color"
)

// 🖍️ ANSI renders the text with terminal escape codes. It honors
// color.NoColor, so output is plain when the terminal has no color support.
func (t StyledText) ANSI() string {
	var sb strings.Builder
	for _, r := range t.Runs() {
		sb.WriteString(terminalColor(r.Style).Sprint(r.Text))
	}
	return sb.String()
}

func terminalColor(s Style) *color.Color {
	var attrs []color.Attribute
	if s.Bold {
		attrs = append(attrs, color.Bold)
	}
	if s.Italic {
		attrs = append(attrs, color.Italic)
	}
	if s.Underlined {
		attrs = append(attrs, color.Underline)
	}
	if s.Strikethrough {
		attrs = append(attrs, color.CrossedOut)
	}
	if s.Obfuscated {
		attrs = append(attrs, color.BlinkRapid)
	}

	c := color.New(attrs...)
	if s.Color != nil {
		c = c.AddRGB(int(s.Color.R), int(s.Color.G), int(s.Color.B))
	}
	return c
}

// Markup renders the text with inline style tags, e.g. "hi {red+bold}there{/}".
// Unstyled runs are written bare. A literal "{" is doubled so ParseMarkup never
// mistakes message text for a tag.
func (t StyledText) Markup() string {
	var sb strings.Builder
	for _, r := range t.Runs() {
		body := strings.ReplaceAll(r.Text, "{", "{{")
		if r.Style.IsZero() {
			sb.WriteString(body)
			continue
		}
		sb.WriteString("{")
		sb.WriteString(r.Style.String())
		sb.WriteString("}")
		sb.WriteString(body)
		sb.WriteString("{/}")
	}
	return sb.String()
}
