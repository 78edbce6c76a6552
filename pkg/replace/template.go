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

package replace

import (
	"strconv"
	"strings"

	"github.com/walteh/chatfilters/pkg/match"
)

// MatchToken is replaced by the full matched text
const MatchToken = "%MATCH%"

// 📝 Template is replacement text with placeholders:
//
//	%MATCH%   the matched text
//	$N        captured group N (the longest run of digits is used)
//	${N}      captured group N
//	${name}   the named group
//	$$        a literal $
//
// Placeholders are expanded in one pass; text coming from the match is never
// expanded again. References to groups that did not take part in the match,
// or do not exist, expand to "".
type Template string

// Resolve expands the template against m
func (t Template) Resolve(m match.Match) string {
	s := string(t)
	var sb strings.Builder
	sb.Grow(len(s))

	for i := 0; i < len(s); {
		if strings.HasPrefix(s[i:], MatchToken) {
			sb.WriteString(m.Text)
			i += len(MatchToken)
			continue
		}

		if s[i] == '$' && i+1 < len(s) {
			if text, n, ok := expandGroup(s[i+1:], m); ok {
				sb.WriteString(text)
				i += 1 + n
				continue
			}
		}

		sb.WriteByte(s[i])
		i++
	}

	return sb.String()
}

// ResolveFirst expands the template against the first match of a search.
// An empty search expands every placeholder to "".
func (t Template) ResolveFirst(res match.Result) string {
	first, _ := res.First()
	return t.Resolve(first)
}

// expandGroup expands the reference following a '$'. It returns the text, the
// number of bytes consumed and whether s started with a reference at all.
func expandGroup(s string, m match.Match) (string, int, bool) {
	switch {
	case s[0] == '$':
		return "$", 1, true
	case isDigit(s[0]):
		n := 1
		for n < len(s) && isDigit(s[n]) {
			n++
		}
		return groupByIndex(s[:n], m), n, true
	case s[0] == '{':
		end := strings.IndexByte(s, '}')
		if end < 2 {
			return "", 0, false
		}
		ref := s[1:end]
		if allDigits(ref) {
			return groupByIndex(ref, m), end + 1, true
		}
		g, _ := m.NamedGroup(ref)
		return g.Text, end + 1, true
	default:
		return "", 0, false
	}
}

func groupByIndex(digits string, m match.Match) string {
	idx, err := strconv.Atoi(digits)
	if err != nil {
		return ""
	}
	return m.Group(idx).Text
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return s != ""
}
