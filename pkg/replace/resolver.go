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
	"github.com/walteh/chatfilters/pkg/match"
	"github.com/walteh/chatfilters/pkg/text"
)

// 🎯 Resolver turns a match into a styled fragment using a template.
//
// With a color the fragment is that color only. Without one it takes the
// style found at the start of the match.
type Resolver struct {
	Template Template
	color    *text.Color
}

// NewResolver snapshots the template and optional color
func NewResolver(tmpl Template, c *text.Color) Resolver {
	r := Resolver{Template: tmpl}
	if c != nil {
		cc := *c
		r.color = &cc
	}
	return r
}

// Color returns the override color, if any
func (r Resolver) Color() (text.Color, bool) {
	if r.color == nil {
		return text.Color{}, false
	}
	return *r.color, true
}

// Fragment implements text.Replacement
func (r Resolver) Fragment(current text.StyledText, m match.Match) text.StyledText {
	return r.styled(current, r.Template.Resolve(m))
}

func (r Resolver) styled(current text.StyledText, s string) text.StyledText {
	if r.color != nil {
		return text.Colored(s, *r.color)
	}
	return current.WithMessage(s)
}
