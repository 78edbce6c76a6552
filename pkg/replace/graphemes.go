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
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"

	"github.com/walteh/chatfilters/pkg/match"
	"github.com/walteh/chatfilters/pkg/text"
)

// styled grapheme cluster
type cluster struct {
	text  string
	style text.Style
}

func clusters(t text.StyledText) []cluster {
	var out []cluster
	for _, r := range t.Runs() {
		g := uniseg.NewGraphemes(r.Text)
		for g.Next() {
			out = append(out, cluster{text: g.Str(), style: r.Style})
		}
	}
	return out
}

func join(cs []cluster) text.StyledText {
	runs := make([]text.Run, 0, len(cs))
	for _, c := range cs {
		runs = append(runs, text.Run{Text: c.text, Style: c.style})
	}
	return text.New(runs...)
}

// 🔃 Reverse mirrors each match, one grapheme cluster at a time, keeping
// every cluster's own style. Matches of one cluster or less are left out of
// the bindings, so a search made only of those changes nothing.
type Reverse struct{}

// Bindings implements Rule
func (Reverse) Bindings(_ text.StyledText, res match.Result) []text.Binding {
	var bindings []text.Binding
	for _, m := range res.Matches {
		if uniseg.GraphemeClusterCount(m.Text) <= 1 {
			continue
		}
		bindings = append(bindings, text.Binding{Match: m, Replacement: reversal{}})
	}
	return bindings
}

type reversal struct{}

func (reversal) Fragment(current text.StyledText, _ match.Match) text.StyledText {
	cs := clusters(current)
	for i, j := 0, len(cs)-1; i < j; i, j = i+1, j-1 {
		cs[i], cs[j] = cs[j], cs[i]
	}
	return join(cs)
}

// ReverseString reverses s by grapheme cluster
func ReverseString(s string) string {
	return reversal{}.Fragment(text.Plain(s), match.Match{}).String()
}

// 🌈 Rainbow recolors each match along the hue wheel, one grapheme cluster at
// a time. Other style attributes are kept.
type Rainbow struct{}

// Bindings implements Rule
func (Rainbow) Bindings(_ text.StyledText, res match.Result) []text.Binding {
	var bindings []text.Binding
	for _, m := range res.Matches {
		if m.Len() == 0 {
			continue
		}
		bindings = append(bindings, text.Binding{Match: m, Replacement: rainbow{}})
	}
	return bindings
}

type rainbow struct{}

func (rainbow) Fragment(current text.StyledText, _ match.Match) text.StyledText {
	cs := clusters(current)
	for i := range cs {
		hue := float64(i) * 360 / float64(len(cs))
		cs[i].style = cs[i].style.WithColor(text.FromColorful(colorful.Hsv(hue, 0.7, 1)))
	}
	return join(cs)
}
