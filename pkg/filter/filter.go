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

// Package filter combines a search, a replacement rule and processors into a
// configured chat filter, and runs ordered chains of them over messages.
package filter

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/walteh/chatfilters/pkg/match"
	"github.com/walteh/chatfilters/pkg/process"
	"github.com/walteh/chatfilters/pkg/replace"
	"github.com/walteh/chatfilters/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Filter is a compiled Config
type Filter struct {
	cfg        Config
	searcher   match.Searcher
	rule       replace.Rule
	processors []process.Processor
}

// 📦 Outcome is what one filter did to one message
type Outcome struct {
	Text    text.StyledText
	Matched bool           // The search found something
	Changed bool           // The text was rewritten
	Result  process.Result // The strongest processor result
}

// 🏭 New validates cfg and compiles it into a Filter
func New(cfg Config, svc process.Services) (*Filter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating filter: %w", err)
	}

	searcher, err := match.Compile(cfg.FindType, cfg.FindString)
	if err != nil {
		return nil, errors.Errorf("filter %q: %w", cfg.Name, err)
	}

	rule, err := replace.Lookup(cfg.ReplaceType, replace.Options{Template: cfg.ReplaceTo, Color: cfg.Color})
	if err != nil {
		return nil, errors.Errorf("filter %q: %w", cfg.Name, err)
	}

	f := &Filter{cfg: cfg, searcher: searcher, rule: rule}
	for _, pc := range cfg.Processors {
		p, err := process.New(pc.Type, svc, pc.Settings)
		if err != nil {
			return nil, errors.Errorf("filter %q: %w", cfg.Name, err)
		}
		f.processors = append(f.processors, p)
	}

	return f, nil
}

// Name returns the filter name
func (f *Filter) Name() string {
	return f.cfg.Name
}

// Active reports whether the filter runs at all
func (f *Filter) Active() bool {
	return f.cfg.Active
}

// Processors returns the filter's processors
func (f *Filter) Processors() []process.Processor {
	return f.processors
}

// Config returns the filter's configuration with the current processor
// settings saved into it
func (f *Filter) Config() Config {
	cfg := f.cfg
	cfg.Processors = make([]ProcessorConfig, 0, len(f.processors))
	for _, p := range f.processors {
		pc := ProcessorConfig{Type: p.Key()}
		if ps, ok := p.(process.Persistent); ok {
			if b, err := json.Marshal(ps.Save()); err == nil {
				pc.Settings = b
			}
		}
		cfg.Processors = append(cfg.Processors, pc)
	}
	return cfg
}

// Apply runs the filter on t. unfiltered is the message as it arrived and is
// handed to processors; it may be nil.
func (f *Filter) Apply(ctx context.Context, t text.StyledText, unfiltered *text.StyledText) (Outcome, error) {
	out := Outcome{Text: t, Result: process.Fail}
	if !f.cfg.Active {
		return out, nil
	}

	res := f.searcher.Search(t.String())
	if res.Empty() {
		return out, nil
	}
	out.Matched = true

	logger := zerolog.Ctx(ctx).With().Str("filter", f.cfg.Name).Logger()
	logger.Debug().Int("matches", len(res.Matches)).Msg("filter matched")

	replaced, changed, err := replace.Apply(f.rule, t, res)
	if err != nil {
		return out, errors.Errorf("filter %q: %w", f.cfg.Name, err)
	}
	out.Text, out.Changed = replaced, changed

	for _, p := range f.processors {
		r := p.Process(logger.WithContext(ctx), out.Text, unfiltered, res)
		logger.Debug().Str("processor", p.Key()).Stringer("result", r).Msg("processor ran")
		if r > out.Result {
			out.Result = r
		}
	}

	return out, nil
}
