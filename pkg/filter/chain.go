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

package filter

import (
	"context"

	"github.com/walteh/chatfilters/pkg/process"
	"github.com/walteh/chatfilters/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// ⛓️ Chain applies filters in order, each one seeing the previous output
type Chain struct {
	filters []*Filter
}

// NewChain creates a chain from compiled filters
func NewChain(filters ...*Filter) *Chain {
	return &Chain{filters: filters}
}

// BuildChain compiles every config into a filter, in order
func BuildChain(cfgs []Config, svc process.Services) (*Chain, error) {
	filters := make([]*Filter, 0, len(cfgs))
	seen := map[string]bool{}
	for i, cfg := range cfgs {
		f, err := New(cfg, svc)
		if err != nil {
			return nil, errors.Errorf("filter %d: %w", i, err)
		}
		if seen[f.Name()] {
			return nil, errors.Errorf("filter %d: duplicate name %q", i, f.Name())
		}
		seen[f.Name()] = true
		filters = append(filters, f)
	}
	return NewChain(filters...), nil
}

// Filters returns the filters in order
func (c *Chain) Filters() []*Filter {
	return c.filters
}

// 📦 ChainResult is what the whole chain did to one message
type ChainResult struct {
	Text    text.StyledText
	Changed bool
	Matched []string // Names of the filters that matched, in order
	Forced  string   // Name of the filter that stopped the chain, if any
}

// Process runs every active filter over t
func (c *Chain) Process(ctx context.Context, t text.StyledText) (ChainResult, error) {
	unfiltered := t
	res := ChainResult{Text: t}

	for _, f := range c.filters {
		out, err := f.Apply(ctx, res.Text, &unfiltered)
		if err != nil {
			return ChainResult{Text: t}, err
		}
		if !out.Matched {
			continue
		}
		res.Matched = append(res.Matched, f.Name())
		if out.Changed {
			res.Text = out.Text
			res.Changed = true
		}
		if out.Result == process.Force {
			res.Forced = f.Name()
			break
		}
	}

	return res, nil
}
