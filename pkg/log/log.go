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
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/walteh/syncy/pkg/tree"
)

// 🎨 Display configuration
const (
	eventIndent   = 4  // spaces to indent event entries
	nameWidth     = 35 // Base width for the file path
	kindWidth     = 8  // Width for the event kind
	revisionWidth = 7  // Shown prefix of a revision
)

// 📦 DestinationOperation describes one destination being synced
type DestinationOperation struct {
	Source      string // Source repository name
	Ref         string // Source git ref
	Destination string // Destination repository name
	Branch      string // Branch the events are applied to
	DryRun      bool   // Whether events are only planned
}

type destinationState struct {
	op     DestinationOperation
	events []tree.Event
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	active  map[string]*destinationState
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return NewWithZerolog(console, zlog)
}

// 🏭 NewWithZerolog creates a logger mirroring records to zlog
func NewWithZerolog(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
		active:  map[string]*destinationState{},
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

// 📝 formatEvent formats an event for display
func formatEvent(ev tree.Event) string {
	var symbol rune
	var symbolColor color.Attribute
	switch ev.Kind {
	case tree.EventCreate:
		symbol = '✓'
		symbolColor = color.FgGreen
	case tree.EventUpdate:
		symbol = '⟳'
		symbolColor = color.FgBlue
	case tree.EventDelete:
		symbol = '✗'
		symbolColor = color.FgRed
	default:
		symbol = '-'
		symbolColor = color.FgYellow
	}

	rev := ev.Revision
	if len(rev) > revisionWidth {
		rev = rev[:revisionWidth]
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", eventIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, ev.Path),
		color.New(symbolColor).Sprint(fmt.Sprintf("%-*s", kindWidth, ev.Kind)),
		color.New(color.Faint).Sprint(rev))
}

// 📝 LogEvent logs one event applied (or planned) for destination
func (l *Logger) LogEvent(ctx context.Context, destination string, ev tree.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if st, ok := l.active[destination]; ok {
		st.events = append(st.events, ev)
	}

	fmt.Fprintln(l.console, formatEvent(ev))

	l.zlog.Info().
		Str("destination", destination).
		Str("file", ev.Path).
		Str("kind", ev.Kind.String()).
		Str("revision", ev.Revision).
		Msg("file event")
}

// 📝 StartDestination starts a new destination operation
func (l *Logger) StartDestination(ctx context.Context, op DestinationOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.active[op.Destination] = &destinationState{op: op}

	mode := "syncing"
	if op.DryRun {
		mode = "planning"
	}
	fmt.Fprintf(l.console, "[%s %s]\n", mode, color.New(color.FgCyan).Sprint(op.Destination))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Source),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(op.Ref))

	l.zlog.Info().
		Str("source", op.Source).
		Str("ref", op.Ref).
		Str("destination", op.Destination).
		Str("branch", op.Branch).
		Bool("dry_run", op.DryRun).
		Msg("starting destination")
}

// 📝 EndDestination ends the destination operation and summarizes the events it logged
func (l *Logger) EndDestination(ctx context.Context, destination string) tree.Summary {
	l.mu.Lock()
	defer l.mu.Unlock()

	st, ok := l.active[destination]
	if !ok {
		return tree.Summary{}
	}
	delete(l.active, destination)

	summary := tree.Summarize(st.events)
	l.zlog.Info().
		Str("destination", destination).
		Int("creates", summary.Creates).
		Int("updates", summary.Updates).
		Int("deletes", summary.Deletes).
		Msg("destination complete")

	return summary
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
	name := color.New(color.Bold, color.FgCyan).Sprint("syncy")
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
