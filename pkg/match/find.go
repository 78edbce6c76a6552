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
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🔎 FindType selects how a filter's find string is interpreted
type FindType string

const (
	FindLiteral    FindType = "literal"    // Exact, case-sensitive text
	FindUpperLower FindType = "upperlower" // Exact text, ignoring case
	FindRegex      FindType = "regex"      // RE2 regular expression
)

// FindTypes lists every supported find type
func FindTypes() []FindType {
	return []FindType{FindLiteral, FindUpperLower, FindRegex}
}

// Valid reports whether the find type is known
func (f FindType) Valid() bool {
	for _, ft := range FindTypes() {
		if f == ft {
			return true
		}
	}
	return false
}

// 🏭 Compile builds a Searcher for the pattern
func Compile(findType FindType, pattern string) (Searcher, error) {
	if pattern == "" {
		return nil, errors.Errorf("pattern is required")
	}

	switch findType {
	case FindLiteral:
		return &LiteralSearcher{needle: pattern}, nil
	case FindUpperLower:
		re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(pattern))
		if err != nil {
			return nil, errors.Errorf("compiling case-insensitive pattern: %w", err)
		}
		return &RegexSearcher{re: re}, nil
	case FindRegex:
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, errors.Errorf("compiling regex %q: %w", pattern, err)
		}
		return &RegexSearcher{re: re}, nil
	default:
		return nil, errors.Errorf("unknown find type %q", findType)
	}
}

// 📝 LiteralSearcher finds exact occurrences of a string
type LiteralSearcher struct {
	needle string
}

// NewLiteralSearcher creates a LiteralSearcher
func NewLiteralSearcher(needle string) *LiteralSearcher {
	return &LiteralSearcher{needle: needle}
}

// Search implements Searcher.Search
func (l *LiteralSearcher) Search(s string) Result {
	res := Result{Input: s}
	if l.needle == "" {
		return res
	}

	offset := 0
	for {
		idx := strings.Index(s[offset:], l.needle)
		if idx < 0 {
			break
		}
		start := offset + idx
		end := start + len(l.needle)
		text := s[start:end]
		res.Matches = append(res.Matches, Match{
			Start:  start,
			End:    end,
			Text:   text,
			Groups: []Group{{Index: 0, Text: text, Matched: true}},
		})
		offset = end
	}

	return res
}

// 🧮 RegexSearcher finds matches of a compiled regular expression
type RegexSearcher struct {
	re *regexp.Regexp
}

// NewRegexSearcher wraps an already compiled expression
func NewRegexSearcher(re *regexp.Regexp) *RegexSearcher {
	return &RegexSearcher{re: re}
}

// Search implements Searcher.Search
func (r *RegexSearcher) Search(s string) Result {
	res := Result{Input: s}
	names := r.re.SubexpNames()

	for _, loc := range r.re.FindAllStringSubmatchIndex(s, -1) {
		m := Match{
			Start:  loc[0],
			End:    loc[1],
			Text:   s[loc[0]:loc[1]],
			Groups: make([]Group, 0, len(loc)/2),
		}
		for i := 0; i*2 < len(loc); i++ {
			g := Group{Index: i, Name: names[i]}
			if loc[i*2] >= 0 {
				g.Text = s[loc[i*2]:loc[i*2+1]]
				g.Matched = true
			}
			m.Groups = append(m.Groups, g)
		}
		res.Matches = append(res.Matches, m)
	}

	return res
}
