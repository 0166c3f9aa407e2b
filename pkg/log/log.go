// Copyright 2025 xliffkit LLC
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
)

// 🎨 Display configuration
const (
	unitIndent  = 4  // spaces to indent unit entries
	idWidth     = 20 // Base width for unit IDs
	fieldWidth  = 10 // Width for the searched field (source/target)
	statusWidth = 15 // Width for status text
)

// 🎯 UnitOperation represents a per-translation-unit result for logging
type UnitOperation struct {
	UnitID       string // Translation unit ID
	Field        string // Searched field (source/target)
	Status       string // Operation status
	IsMatch      bool   // Whether the pattern matched
	IsModified   bool   // Whether the unit was rewritten
	IsSkipped    bool   // Whether the unit was skipped (empty target etc.)
	Matches      int    // Number of matches found
	Replacements int    // Number of replacements made
}

// 📦 FileRun represents processing of one translation file for logging
type FileRun struct {
	Path    string // File path
	Pattern string // Pattern being applied
	DryRun  bool   // Whether changes are written back
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	currentRun *FileRun
	operations []UnitOperation
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
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

// 🎯 MaybeFromContext gets the logger from context, or nil when none is set
func MaybeFromContext(ctx context.Context) *Logger {
	logger, _ := ctx.Value(contextKey{}).(*Logger)
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatUnitOperation formats a unit result for display
func (l *Logger) formatUnitOperation(op UnitOperation) string {
	// Determine symbol and color
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.IsSkipped:
		symbol = '-'
		symbolColor = color.FgYellow
	case op.IsModified:
		symbol = '⟳'
		symbolColor = color.FgBlue
	case op.IsMatch:
		symbol = '✓'
		symbolColor = color.FgGreen
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	// Field color
	var fieldColor color.Attribute
	switch op.Field {
	case "source":
		fieldColor = color.FgCyan
	case "target":
		fieldColor = color.FgYellow
	default:
		fieldColor = color.FgBlue
	}

	// Build the line
	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", unitIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", idWidth, op.UnitID),
		color.New(fieldColor).Sprint(fmt.Sprintf("%-*s", fieldWidth, op.Field)),
		fmt.Sprintf("%-*s", statusWidth, op.Status))
}

// 📝 LogUnitOperation logs a per-unit result
func (l *Logger) LogUnitOperation(ctx context.Context, op UnitOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.operations = append(l.operations, op)

	fmt.Fprintln(l.console, l.formatUnitOperation(op))

	l.zlog.Info().
		Str("unit", op.UnitID).
		Str("field", op.Field).
		Str("status", op.Status).
		Bool("is_match", op.IsMatch).
		Bool("is_modified", op.IsModified).
		Bool("is_skipped", op.IsSkipped).
		Int("matches", op.Matches).
		Int("replacements", op.Replacements).
		Msg("unit processed")
}

// 📝 StartFileRun starts processing of one translation file
func (l *Logger) StartFileRun(ctx context.Context, run FileRun) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentRun = &run
	l.operations = nil

	// Print file header
	fmt.Fprintf(l.console, "[processing %s]\n",
		color.New(color.FgCyan).Sprint(run.Path))

	mode := "write"
	if run.DryRun {
		mode = "dry-run"
	}
	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(run.Pattern),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(mode))

	l.zlog.Info().
		Str("path", run.Path).
		Str("pattern", run.Pattern).
		Bool("dry_run", run.DryRun).
		Msg("starting file run")
}

// 📝 EndFileRun ends the current file run
func (l *Logger) EndFileRun(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentRun == nil {
		return
	}

	l.zlog.Info().
		Str("path", l.currentRun.Path).
		Int("units", len(l.operations)).
		Msg("file run complete")

	l.currentRun = nil
	l.operations = nil
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
	appText := color.New(color.Bold, color.FgCyan).Sprint("xliffqa")
	fmt.Fprintf(l.console, "\n%s %s\n\n", appText, color.New(color.Faint).Sprint("• "+msg))
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
