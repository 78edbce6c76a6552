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

// 🧩 Group is one captured sub-group of a match
type Group struct {
	Index   int    // Position of the group in the pattern, 0 is the whole match
	Name    string // Name of the group, empty when unnamed
	Text    string // Captured text, empty when the group did not participate
	Matched bool   // Whether the group participated in the match
}

// 🎯 Match is a located occurrence of a pattern within a message.
//
// Start and End are byte offsets into the searched string and always fall on
// rune boundaries.
type Match struct {
	Start  int
	End    int
	Text   string
	Groups []Group
}

// Len returns the length of the match in bytes
func (m Match) Len() int {
	return m.End - m.Start
}

// Group returns the captured group with the given index.
// A group that does not exist is reported as not matched.
func (m Match) Group(index int) Group {
	if index < 0 || index >= len(m.Groups) {
		return Group{Index: index}
	}
	return m.Groups[index]
}

// NamedGroup returns the first captured group with the given name
func (m Match) NamedGroup(name string) (Group, bool) {
	if name == "" {
		return Group{}, false
	}
	for _, g := range m.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return Group{Name: name}, false
}

// 📦 Result is the ordered output of one search over a message
type Result struct {
	Input   string  // The searched string
	Matches []Match // Non-overlapping matches ordered by Start
}

// Empty reports whether the search found nothing
func (r Result) Empty() bool {
	return len(r.Matches) == 0
}

// First returns the first match of the search
func (r Result) First() (Match, bool) {
	if r.Empty() {
		return Match{}, false
	}
	return r.Matches[0], true
}

// 🔍 Searcher finds matches in a message
type Searcher interface {
	// Search returns every non-overlapping match in s, left to right
	Search(s string) Result
}
