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
	"sort"

	"github.com/walteh/chatfilters/pkg/match"
	"github.com/walteh/chatfilters/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🏷️ Kind names a replacement rule
type Kind string

const (
	KindNone        Kind = "none"
	KindOnlyMatch   Kind = "only_match"
	KindFullMessage Kind = "full_message"
	KindReverse     Kind = "reverse"
	KindRainbow     Kind = "rainbow"
)

// ⚙️ Options is the per-filter configuration a rule reads
type Options struct {
	Template Template
	Color    *text.Color
}

// 🔌 Rule decides which matches get replaced and with what.
//
// Bindings returns nothing when the rule would not change the text.
type Rule interface {
	Bindings(t text.StyledText, res match.Result) []text.Binding
}

// Apply runs a rule and splices its bindings into t. It reports false when
// the rule produced no bindings.
func Apply(r Rule, t text.StyledText, res match.Result) (text.StyledText, bool, error) {
	bindings := r.Bindings(t, res)
	if len(bindings) == 0 {
		return t, false, nil
	}
	out, changed, err := text.Splice(t, bindings)
	if err != nil {
		return t, false, errors.Errorf("splicing %d bindings: %w", len(bindings), err)
	}
	return out, changed, nil
}

// Factory builds a rule from options
type Factory func(opts Options) Rule

var (
	// 🗺️ factories maps each kind to its constructor
	factories = map[Kind]Factory{}
)

// Register adds a rule kind
func Register(kind Kind, f Factory) {
	factories[kind] = f
}

func init() {
	Register(KindNone, func(Options) Rule { return None{} })
	Register(KindOnlyMatch, func(o Options) Rule { return NewOnlyMatch(o) })
	Register(KindFullMessage, func(o Options) Rule { return NewFullMessage(o) })
	Register(KindReverse, func(Options) Rule { return Reverse{} })
	Register(KindRainbow, func(Options) Rule { return Rainbow{} })
}

// Lookup builds the rule registered for kind
func Lookup(kind Kind, opts Options) (Rule, error) {
	f, ok := factories[kind]
	if !ok {
		return nil, errors.Errorf("unknown replace type %q", kind)
	}
	return f(opts), nil
}

// Kinds lists the registered kinds in name order
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// None never replaces anything; useful for filters that only trigger processors
type None struct{}

// Bindings implements Rule
func (None) Bindings(text.StyledText, match.Result) []text.Binding {
	return nil
}

// 🔄 OnlyMatch replaces each match with the resolved template
type OnlyMatch struct {
	resolver Resolver
}

// NewOnlyMatch creates an OnlyMatch rule
func NewOnlyMatch(opts Options) OnlyMatch {
	return OnlyMatch{resolver: NewResolver(opts.Template, opts.Color)}
}

// Bindings implements Rule
func (r OnlyMatch) Bindings(_ text.StyledText, res match.Result) []text.Binding {
	bindings := make([]text.Binding, 0, len(res.Matches))
	for _, m := range res.Matches {
		bindings = append(bindings, text.Binding{Match: m, Replacement: r.resolver})
	}
	return bindings
}

// 📃 FullMessage replaces the whole message with the template resolved
// against the first match
type FullMessage struct {
	resolver Resolver
}

// NewFullMessage creates a FullMessage rule
func NewFullMessage(opts Options) FullMessage {
	return FullMessage{resolver: NewResolver(opts.Template, opts.Color)}
}

// Bindings implements Rule
func (r FullMessage) Bindings(t text.StyledText, res match.Result) []text.Binding {
	first, ok := res.First()
	if !ok {
		return nil
	}
	whole := t.String()
	return []text.Binding{{
		Match:       match.Match{Start: 0, End: len(whole), Text: whole},
		Replacement: firstMatch{resolver: r.resolver, first: first},
	}}
}

// firstMatch resolves against a fixed match instead of the bound span
type firstMatch struct {
	resolver Resolver
	first    match.Match
}

func (f firstMatch) Fragment(current text.StyledText, _ match.Match) text.StyledText {
	return f.resolver.Fragment(current, f.first)
}
