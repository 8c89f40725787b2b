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

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent = 2  // spaces to indent file entries
	ruleWidth  = 60 // width of section rules
)

// 🚦 Outcome is the result of a single file operation
type Outcome int

const (
	OutcomeDone    Outcome = iota // operation performed
	OutcomeMissing                // target did not exist
	OutcomeFailed                 // operation attempted and failed
	OutcomeKept                   // target left in place
	OutcomePlanned                // dry run, nothing touched
)

// String returns a string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeDone:
		return "done"
	case OutcomeMissing:
		return "missing"
	case OutcomeFailed:
		return "failed"
	case OutcomeKept:
		return "kept"
	case OutcomePlanned:
		return "planned"
	default:
		return "unknown"
	}
}

// 🎯 FileOperation represents a file operation for logging
type FileOperation struct {
	Path    string  // File path
	Action  string  // What was attempted (delete/remove/rename/...)
	Outcome Outcome // What happened
	Detail  string  // Extra text shown after the path
	Err     error   // Failure cause, if any
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger writing human output to console and
// mirroring every line to zlog
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔇 Discard returns a logger that drops everything
func Discard() *Logger {
	return New(io.Discard, zerolog.Nop())
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context, falling back to a discarding logger
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		return Discard()
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 🖊️ Console returns the writer human output goes to
func (l *Logger) Console() io.Writer {
	return l.console
}

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) string {
	var symbol string
	var symbolColor color.Attribute
	switch op.Outcome {
	case OutcomeDone:
		symbol, symbolColor = "✓", color.FgGreen
	case OutcomeMissing:
		symbol, symbolColor = "-", color.FgYellow
	case OutcomeFailed:
		symbol, symbolColor = "✗", color.FgRed
	case OutcomeKept:
		symbol, symbolColor = "•", color.FgCyan
	default:
		symbol, symbolColor = "○", color.FgBlue
	}

	line := fmt.Sprintf("%s%s %s: %s",
		strings.Repeat(" ", fileIndent),
		color.New(symbolColor).Sprint(symbol),
		describe(op),
		op.Path)
	if op.Detail != "" {
		line += " " + color.New(color.Faint).Sprint(op.Detail)
	}
	if op.Err != nil {
		line += " - " + color.New(color.FgRed).Sprint(op.Err.Error())
	}
	return line
}

// 🏷️ describe turns an action and outcome into the console verb
func describe(op FileOperation) string {
	switch op.Outcome {
	case OutcomeDone:
		return op.Action + "d"
	case OutcomeMissing:
		return "not found"
	case OutcomeFailed:
		return op.Action + " failed"
	case OutcomeKept:
		return "kept"
	default:
		return "would " + op.Action
	}
}

// 📝 LogFileOperation logs a file operation
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatFileOperation(op))

	ev := l.zlog.Info()
	switch op.Outcome {
	case OutcomeFailed:
		ev = l.zlog.Error().Err(op.Err)
	case OutcomeMissing:
		ev = l.zlog.Debug()
	}
	ev.Str("path", op.Path).
		Str("action", op.Action).
		Str("outcome", op.Outcome.String()).
		Msg("file operation")
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
	name := color.New(color.Bold, color.FgCyan).Sprint("doctidy")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Section logs a titled section between two rules
func (l *Logger) Section(title string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintf(l.console, "\n%s\n%s\n%s\n", rule, color.New(color.Bold).Sprint(title), rule)
	l.zlog.Debug().Str("section", title).Msg("section")
}

// 📝 Rule prints a horizontal rule
func (l *Logger) Rule(ch string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console, strings.Repeat(ch, ruleWidth))
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

// 📝 Print writes text to the console verbatim, without a zerolog mirror
func (l *Logger) Print(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprint(l.console, text)
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

// 📝 Printf writes formatted text to the console verbatim
func (l *Logger) Printf(format string, args ...interface{}) {
	l.Print(fmt.Sprintf(format, args...))
}
