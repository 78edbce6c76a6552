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

// Package pipeline runs a filter chain over streams of chat lines.
package pipeline

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"github.com/walteh/chatfilters/pkg/filter"
	"github.com/walteh/chatfilters/pkg/log"
	"github.com/walteh/chatfilters/pkg/text"
)

// 📐 Format is how chat lines are encoded on input or output
type Format string

const (
	FormatPlain  Format = "plain"  // no styling
	FormatMarkup Format = "markup" // {style}text{/} tags
	FormatLegacy Format = "legacy" // section-sign codes
	FormatANSI   Format = "ansi"   // terminal escapes, output only
)

// Formats lists the valid output formats
func Formats() []Format {
	return []Format{FormatPlain, FormatMarkup, FormatLegacy, FormatANSI}
}

// Decode reads one line in format f
func (f Format) Decode(line string) (text.StyledText, error) {
	switch f {
	case FormatPlain, "":
		return text.Plain(line), nil
	case FormatMarkup:
		return text.ParseMarkup(line), nil
	case FormatLegacy:
		return text.ParseLegacy(line), nil
	default:
		return text.StyledText{}, errors.Errorf("format %q cannot be read", f)
	}
}

// Encode writes t in format f
func (f Format) Encode(t text.StyledText) (string, error) {
	switch f {
	case FormatPlain, "":
		return t.String(), nil
	case FormatMarkup:
		return t.Markup(), nil
	case FormatLegacy:
		return t.Legacy(), nil
	case FormatANSI:
		return t.ANSI(), nil
	default:
		return "", errors.Errorf("unknown format %q", f)
	}
}

// 📊 Stats counts what a run did
type Stats struct {
	Lines   int
	Matched int
	Changed int
	Forced  int
}

// Add sums two stats
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Lines:   s.Lines + o.Lines,
		Matched: s.Matched + o.Matched,
		Changed: s.Changed + o.Changed,
		Forced:  s.Forced + o.Forced,
	}
}

// 📥 Input is one named stream to filter
type Input struct {
	Name   string
	Reader io.Reader
	Writer io.Writer
}

// 🏃 Runner filters chat lines through a chain
type Runner struct {
	chain    *filter.Chain
	in       Format
	out      Format
	dropped  bool // skip lines a processor forced out of the chain
	nfc      bool
	console  *log.Logger
	parallel int
}

// Option configures a Runner
type Option func(*Runner)

// WithFormats sets the input and output formats
func WithFormats(in, out Format) Option {
	return func(r *Runner) {
		r.in, r.out = in, out
	}
}

// WithConsole reports every matched line to a console logger
func WithConsole(l *log.Logger) Option {
	return func(r *Runner) {
		r.console = l
	}
}

// WithParallel limits how many inputs RunAll filters at once; n <= 0 means no limit
func WithParallel(n int) Option {
	return func(r *Runner) {
		r.parallel = n
	}
}

// WithNormalization converts decoded lines to Unicode NFC before filtering,
// so composed and decomposed spellings match the same filters
func WithNormalization() Option {
	return func(r *Runner) {
		r.nfc = true
	}
}

// DropForced skips writing lines whose chain was stopped by a processor
func DropForced() Option {
	return func(r *Runner) {
		r.dropped = true
	}
}

// 🏗️ NewRunner creates a new runner
func NewRunner(chain *filter.Chain, opts ...Option) *Runner {
	r := &Runner{chain: chain, in: FormatPlain, out: FormatPlain}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// 🔄 Run filters in line by line into out. Lines are processed in order and
// each one runs to completion before the next is read.
func (r *Runner) Run(ctx context.Context, name string, in io.Reader, out io.Writer) (Stats, error) {
	logger := zerolog.Ctx(ctx).With().Str("input", name).Logger()
	ctx = logger.WithContext(ctx)

	var stats Stats
	if r.console != nil {
		r.console.StartInput(ctx, log.InputOperation{Name: name, Filters: len(r.chain.Filters())})
		defer func() {
			r.console.EndInput(ctx, log.InputSummary{Name: name, Lines: stats.Lines, Matched: stats.Matched, Changed: stats.Changed})
		}()
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	w := bufio.NewWriter(out)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, errors.Errorf("filtering %s cancelled: %w", name, err)
		}
		stats.Lines++

		line := strings.TrimSuffix(scanner.Text(), "\r")
		msg, err := r.in.Decode(line)
		if err != nil {
			return stats, errors.Errorf("%s line %d: %w", name, stats.Lines, err)
		}
		if r.nfc {
			msg = normalize(msg)
		}

		res, err := r.chain.Process(ctx, msg)
		if err != nil {
			return stats, errors.Errorf("%s line %d: %w", name, stats.Lines, err)
		}

		if len(res.Matched) > 0 {
			stats.Matched++
			if r.console != nil {
				r.console.LogFilterEvent(ctx, log.FilterEvent{
					Input:   name,
					Line:    stats.Lines,
					Filters: res.Matched,
					Changed: res.Changed,
					Forced:  res.Forced,
				})
			}
		}
		if res.Changed {
			stats.Changed++
		}
		if res.Forced != "" {
			stats.Forced++
			if r.dropped {
				continue
			}
		}

		encoded, err := r.out.Encode(res.Text)
		if err != nil {
			return stats, errors.Errorf("%s line %d: %w", name, stats.Lines, err)
		}
		if _, err := w.WriteString(encoded + "\n"); err != nil {
			return stats, errors.Errorf("writing %s: %w", name, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, errors.Errorf("reading %s: %w", name, err)
	}
	if err := w.Flush(); err != nil {
		return stats, errors.Errorf("writing %s: %w", name, err)
	}

	logger.Debug().Int("lines", stats.Lines).Int("matched", stats.Matched).Int("changed", stats.Changed).Msg("input filtered")
	return stats, nil
}

// normalize converts every run to NFC. Runs are normalized separately, so a
// combining mark styled apart from its base character stays decomposed.
func normalize(t text.StyledText) text.StyledText {
	runs := t.Runs()
	for i := range runs {
		runs[i].Text = norm.NFC.String(runs[i].Text)
	}
	return text.New(runs...)
}

// ⚡ RunAll filters several inputs concurrently. Each input is still filtered
// in order. The first error cancels the rest.
func (r *Runner) RunAll(ctx context.Context, inputs []Input) (Stats, error) {
	g, gctx := errgroup.WithContext(ctx)
	if r.parallel > 0 {
		g.SetLimit(r.parallel)
	}

	results := make([]Stats, len(inputs))
	for i, in := range inputs {
		g.Go(func() error {
			s, err := r.Run(gctx, in.Name, in.Reader, in.Writer)
			results[i] = s
			return err
		})
	}

	err := g.Wait()

	var total Stats
	for _, s := range results {
		total = total.Add(s)
	}
	if err != nil {
		return total, errors.Errorf("running inputs: %w", err)
	}
	return total, nil
}
