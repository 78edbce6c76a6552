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
	"sort"
	"unicode/utf8"

	"github.com/walteh/chatfilters/pkg/match"
	"gitlab.com/tozd/go/errors"
)

// ErrContract is wrapped by every error caused by bindings that break the
// splice contract (out of range, overlapping, stale or mid-rune offsets).
var ErrContract = errors.Base("splice contract violation")

// 🔁 Replacement computes the fragment that takes the place of a match.
//
// current is the styled span of the match in the text being spliced. For a
// zero-length match it is empty but still carries the style at that position.
type Replacement interface {
	Fragment(current StyledText, m match.Match) StyledText
}

// ReplacementFunc adapts a function to Replacement
type ReplacementFunc func(current StyledText, m match.Match) StyledText

// Fragment implements Replacement.Fragment
func (f ReplacementFunc) Fragment(current StyledText, m match.Match) StyledText {
	return f(current, m)
}

// 🔗 Binding pairs a match with the replacement for its span
type Binding struct {
	Match       match.Match
	Replacement Replacement
}

// ✂️ Edit records where one binding landed
type Edit struct {
	Start    int // Start of the match in the original text
	End      int // End of the match in the original text
	OutStart int // Start of the fragment in the spliced text
	OutEnd   int // End of the fragment in the spliced text
}

// Drift returns how much the edit shifted everything after it
func (e Edit) Drift() int {
	return (e.OutEnd - e.OutStart) - (e.End - e.Start)
}

// Splice replaces every bound match span with its fragment and copies all
// other spans through unchanged. It reports false when there was nothing to
// replace, in which case original is returned as is.
func Splice(original StyledText, bindings []Binding) (StyledText, bool, error) {
	out, edits, err := SpliceEdits(original, bindings)
	if err != nil {
		return original, false, err
	}
	return out, len(edits) > 0, nil
}

// SpliceEdits is Splice that also returns where each fragment landed, in
// ascending order of the original offsets.
func SpliceEdits(original StyledText, bindings []Binding) (StyledText, []Edit, error) {
	if len(bindings) == 0 {
		return original, nil, nil
	}

	sorted := make([]Binding, len(bindings))
	copy(sorted, bindings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Match.Start < sorted[j].Match.Start
	})

	if err := validate(original.String(), sorted); err != nil {
		return original, nil, err
	}

	parts := make([]StyledText, 0, len(sorted)*2+1)
	edits := make([]Edit, 0, len(sorted))
	cursor, drift := 0, 0
	for _, b := range sorted {
		m := b.Match
		parts = append(parts, original.Slice(cursor, m.Start))

		frag := b.Replacement.Fragment(original.Slice(m.Start, m.End), m)
		parts = append(parts, frag)

		edit := Edit{
			Start:    m.Start,
			End:      m.End,
			OutStart: m.Start + drift,
		}
		edit.OutEnd = edit.OutStart + frag.Len()
		edits = append(edits, edit)

		drift += edit.Drift()
		cursor = m.End
	}
	parts = append(parts, original.Slice(cursor, original.Len()))

	return Concat(parts...), edits, nil
}

func validate(s string, sorted []Binding) error {
	prevEnd := 0
	for i, b := range sorted {
		m := b.Match
		if b.Replacement == nil {
			return errors.WithDetails(errors.Errorf("%w: binding %d has no replacement", ErrContract, i), "start", m.Start)
		}
		if m.Start < 0 || m.End < m.Start || m.End > len(s) {
			return errors.Errorf("%w: match [%d,%d) out of range for length %d", ErrContract, m.Start, m.End, len(s))
		}
		if m.Start < prevEnd {
			return errors.Errorf("%w: match [%d,%d) overlaps previous match ending at %d", ErrContract, m.Start, m.End, prevEnd)
		}
		if !onRuneBoundary(s, m.Start) || !onRuneBoundary(s, m.End) {
			return errors.Errorf("%w: match [%d,%d) splits a character", ErrContract, m.Start, m.End)
		}
		if s[m.Start:m.End] != m.Text {
			return errors.Errorf("%w: match [%d,%d) is %q, not %q", ErrContract, m.Start, m.End, s[m.Start:m.End], m.Text)
		}
		prevEnd = m.End
	}
	return nil
}

func onRuneBoundary(s string, offset int) bool {
	return offset == len(s) || utf8.RuneStart(s[offset])
}
