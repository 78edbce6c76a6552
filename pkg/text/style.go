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
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gitlab.com/tozd/go/errors"
)

// 🎨 Color is a 24-bit RGB color
type Color struct {
	R, G, B uint8
}

// Hex returns the color as #rrggbb
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String implements fmt.Stringer, preferring the chat color name when there is one
func (c Color) String() string {
	for _, nc := range namedColors {
		if nc.color == c {
			return nc.name
		}
	}
	return c.Hex()
}

// MarshalText implements encoding.TextMarshaler
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// FromColorful converts a go-colorful color, clamping it into gamut
func FromColorful(cf colorful.Color) Color {
	r, g, b := cf.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

type namedColor struct {
	name  string
	color Color
}

// the sixteen chat formatting colors
var namedColors = []namedColor{
	{"black", Color{0x00, 0x00, 0x00}},
	{"dark_blue", Color{0x00, 0x00, 0xaa}},
	{"dark_green", Color{0x00, 0xaa, 0x00}},
	{"dark_aqua", Color{0x00, 0xaa, 0xaa}},
	{"dark_red", Color{0xaa, 0x00, 0x00}},
	{"dark_purple", Color{0xaa, 0x00, 0xaa}},
	{"gold", Color{0xff, 0xaa, 0x00}},
	{"gray", Color{0xaa, 0xaa, 0xaa}},
	{"dark_gray", Color{0x55, 0x55, 0x55}},
	{"blue", Color{0x55, 0x55, 0xff}},
	{"green", Color{0x55, 0xff, 0x55}},
	{"aqua", Color{0x55, 0xff, 0xff}},
	{"red", Color{0xff, 0x55, 0x55}},
	{"light_purple", Color{0xff, 0x55, 0xff}},
	{"yellow", Color{0xff, 0xff, 0x55}},
	{"white", Color{0xff, 0xff, 0xff}},
}

// 🔍 ParseColor parses a chat color name (e.g. "gold") or a #rrggbb hex value
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Color{}, errors.Errorf("empty color")
	}
	for _, nc := range namedColors {
		if nc.name == s {
			return nc.color, nil
		}
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	cf, err := colorful.Hex(s)
	if err != nil {
		return Color{}, errors.Errorf("parsing color %q: %w", s, err)
	}
	return FromColorful(cf), nil
}

// MustParseColor is ParseColor for constants; it panics on bad input
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// 💅 Style holds the visual attributes of a run of text
type Style struct {
	Color         *Color // nil means the client default color
	Bold          bool
	Italic        bool
	Underlined    bool
	Strikethrough bool
	Obfuscated    bool
}

// WithColor returns a copy of the style using the given color
func (s Style) WithColor(c Color) Style {
	s.Color = &c
	return s
}

// Equal compares styles by value
func (s Style) Equal(o Style) bool {
	if (s.Color == nil) != (o.Color == nil) {
		return false
	}
	if s.Color != nil && *s.Color != *o.Color {
		return false
	}
	return s.Bold == o.Bold &&
		s.Italic == o.Italic &&
		s.Underlined == o.Underlined &&
		s.Strikethrough == o.Strikethrough &&
		s.Obfuscated == o.Obfuscated
}

// IsZero reports whether the style carries no attributes
func (s Style) IsZero() bool {
	return s.Equal(Style{})
}

// String returns a compact description, used in logs and test failures
func (s Style) String() string {
	var parts []string
	if s.Color != nil {
		parts = append(parts, s.Color.String())
	}
	if s.Bold {
		parts = append(parts, "bold")
	}
	if s.Italic {
		parts = append(parts, "italic")
	}
	if s.Underlined {
		parts = append(parts, "underlined")
	}
	if s.Strikethrough {
		parts = append(parts, "strikethrough")
	}
	if s.Obfuscated {
		parts = append(parts, "obfuscated")
	}
	if len(parts) == 0 {
		return "plain"
	}
	return strings.Join(parts, "+")
}
