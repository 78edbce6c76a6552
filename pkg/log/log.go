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

package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	eventIndent  = 4  // spaces to indent event entries
	lineWidth    = 10 // Width for the line label
	filterWidth  = 35 // Base width for the filter list
	outcomeWidth = 10 // Width for outcome text
)

// 🎯 FilterEvent is what the chain did to one line of input
type FilterEvent struct {
	Input   string   // Input name, printed ahead of the line label when set
	Line    int      // 1-based line number within the input
	Filters []string // Filters that matched, in order
	Changed bool     // Whether the text was rewritten
	Forced  string   // Filter that stopped the chain, if any
}

// 📦 InputOperation describes one input stream being filtered
type InputOperation struct {
	Name    string // Input name (file path or "stdin")
	Filters int    // Number of filters in the chain
}

// 📊 InputSummary totals one input stream
type InputSummary struct {
	Name    string
	Lines   int
	Matched int
	Changed int
}

// 🎯 Logger handles structured logging with console output. Console writes
// are serialized, so inputs filtered concurrently may share one Logger.
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger. Structured records go to zlog; console lines
// always go to console.
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatFilterEvent formats a filter event for display
func (l *Logger) formatFilterEvent(ev FilterEvent) string {
	var symbol rune
	var symbolColor color.Attribute
	var outcome string
	switch {
	case ev.Forced != "":
		symbol = '■'
		symbolColor = color.FgRed
		outcome = "STOPPED"
	case ev.Changed:
		symbol = '⟳'
		symbolColor = color.FgBlue
		outcome = "CHANGED"
	default:
		symbol = '•'
		symbolColor = color.FgCyan
		outcome = "MATCHED"
	}

	// inputs run concurrently share the console, so name the source
	source := ""
	if ev.Input != "" {
		source = color.New(color.Faint).Sprint(ev.Input) + " "
	}

	return fmt.Sprintf("%s%s %s%s %s %s",
		fmt.Sprintf("%*s", eventIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		source,
		fmt.Sprintf("%-*s", lineWidth, fmt.Sprintf("line %d", ev.Line)),
		color.New(color.FgYellow).Sprint(fmt.Sprintf("%-*s", filterWidth, strings.Join(ev.Filters, ", "))),
		fmt.Sprintf("%-*s", outcomeWidth, outcome))
}

// 📝 LogFilterEvent logs one line the chain matched
func (l *Logger) LogFilterEvent(ctx context.Context, ev FilterEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatFilterEvent(ev))

	l.zlog.Info().
		Str("input", ev.Input).
		Int("line", ev.Line).
		Strs("filters", ev.Filters).
		Bool("changed", ev.Changed).
		Str("forced", ev.Forced).
		Msg("filter event")
}

// 📝 StartInput prints the header for an input stream
func (l *Logger) StartInput(ctx context.Context, op InputOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Name),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprintf("%d filters", op.Filters))

	l.zlog.Info().
		Str("input", op.Name).
		Int("filters", op.Filters).
		Msg("starting input")
}

// 📝 EndInput prints the summary for an input stream
func (l *Logger) EndInput(ctx context.Context, sum InputSummary) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "%*s%s\n", eventIndent, "",
		color.New(color.Faint).Sprintf("%s lines • %s matched • %s changed",
			humanize.Comma(int64(sum.Lines)), humanize.Comma(int64(sum.Matched)), humanize.Comma(int64(sum.Changed))))

	l.zlog.Info().
		Str("input", sum.Name).
		Int("lines", sum.Lines).
		Int("matched", sum.Matched).
		Int("changed", sum.Changed).
		Msg("input complete")
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("chatfilters")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
