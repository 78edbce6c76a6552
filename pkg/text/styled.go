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

// 🧵 Run is a segment of text sharing one style
type Run struct {
	Text  string
	Style Style
}

// 📜 StyledText is an immutable sequence of styled runs.
//
// Concatenating the run texts yields String(). Constructors drop empty runs
// and merge neighbors with equal styles, so two texts that display the same
// compare equal.
type StyledText struct {
	runs []Run
}

// New builds a StyledText from runs
func New(runs ...Run) StyledText {
	return StyledText{runs: normalize(runs)}
}

// Plain builds an unstyled StyledText
func Plain(s string) StyledText {
	return New(Run{Text: s})
}

// Colored builds a StyledText with one uniform color
func Colored(s string, c Color) StyledText {
	return New(Run{Text: s, Style: Style{}.WithColor(c)})
}

// Concat joins texts, keeping every run's own style
func Concat(parts ...StyledText) StyledText {
	var runs []Run
	for _, p := range parts {
		runs = append(runs, p.runs...)
	}
	return New(runs...)
}

// anchored returns an empty text that still remembers the style at a
// position, so zero-length spans can hand their surrounding style on.
func anchored(style Style) StyledText {
	return StyledText{runs: []Run{{Style: style}}}
}

func normalize(runs []Run) []Run {
	out := make([]Run, 0, len(runs))
	for _, r := range runs {
		if r.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Style.Equal(r.Style) {
			out[n-1].Text += r.Text
			continue
		}
		out = append(out, r)
	}
	return out
}

// Runs returns a copy of the runs
func (t StyledText) Runs() []Run {
	out := make([]Run, 0, len(t.runs))
	for _, r := range t.runs {
		if r.Text != "" {
			out = append(out, r)
		}
	}
	return out
}

// String returns the displayed text without styling
func (t StyledText) String() string {
	var sb strings.Builder
	for _, r := range t.runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Len returns the length of the displayed text in bytes
func (t StyledText) Len() int {
	n := 0
	for _, r := range t.runs {
		n += len(r.Text)
	}
	return n
}

// Empty reports whether there is no displayed text
func (t StyledText) Empty() bool {
	return t.Len() == 0
}

// Equal compares two texts run by run
func (t StyledText) Equal(o StyledText) bool {
	a, b := t.Runs(), o.Runs()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Text != b[i].Text || !a[i].Style.Equal(b[i].Style) {
			return false
		}
	}
	return true
}

// FirstStyle returns the style the text starts with
func (t StyledText) FirstStyle() Style {
	if len(t.runs) == 0 {
		return Style{}
	}
	return t.runs[0].Style
}

// StyleAt returns the style of the character at offset. At the very end of
// the text it returns the style of the last run.
func (t StyledText) StyleAt(offset int) Style {
	pos := 0
	for _, r := range t.runs {
		if offset < pos+len(r.Text) {
			return r.Style
		}
		pos += len(r.Text)
	}
	if len(t.runs) == 0 {
		return Style{}
	}
	return t.runs[len(t.runs)-1].Style
}

// WithMessage returns s styled like the start of this text
func (t StyledText) WithMessage(s string) StyledText {
	return New(Run{Text: s, Style: t.FirstStyle()})
}

// WithColor returns a copy of the text with every run recolored
func (t StyledText) WithColor(c Color) StyledText {
	runs := t.Runs()
	for i := range runs {
		runs[i].Style = runs[i].Style.WithColor(c)
	}
	return New(runs...)
}

// Slice returns the styled text between byte offsets start and end, splitting
// runs at the boundaries. Offsets are clamped into range. An empty slice keeps
// the style found at start.
func (t StyledText) Slice(start, end int) StyledText {
	total := t.Len()
	start = clamp(start, 0, total)
	end = clamp(end, start, total)
	if start == end {
		return anchored(t.StyleAt(start))
	}

	var runs []Run
	pos := 0
	for _, r := range t.runs {
		rStart, rEnd := pos, pos+len(r.Text)
		pos = rEnd
		if rEnd <= start || rStart >= end {
			continue
		}
		from := max(start, rStart) - rStart
		to := min(end, rEnd) - rStart
		runs = append(runs, Run{Text: r.Text[from:to], Style: r.Style})
	}
	return New(runs...)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
