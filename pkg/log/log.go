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
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	rowIndent  = 4  // spaces to indent skipped rows
	lineWidth  = 12 // width for the "line N" column
	countWidth = 12 // width for the "fields a/b" column
)

// 🎯 SkippedRow describes a data row left out of the output
type SkippedRow struct {
	Line   int    // 1-based line number in the input file
	Fields int    // fields found on the line
	Want   int    // fields in the header
	Text   string // the line without its line ending
}

// 🎯 Logger writes user-facing messages to a console and mirrors them as
// structured events
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 📝 formatSkippedRow formats a skipped row for display
func (l *Logger) formatSkippedRow(row SkippedRow) string {
	return fmt.Sprintf("%s%s %s %s %q",
		fmt.Sprintf("%*s", rowIndent, ""),
		color.New(color.FgRed).Sprint("✗"),
		fmt.Sprintf("%-*s", lineWidth, fmt.Sprintf("line %d", row.Line)),
		color.New(color.FgYellow).Sprint(fmt.Sprintf("%-*s", countWidth, fmt.Sprintf("fields %d/%d", row.Fields, row.Want))),
		row.Text)
}

// 📝 LogSkippedRow reports a row whose field count does not match the header
func (l *Logger) LogSkippedRow(row SkippedRow) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatSkippedRow(row))

	l.zlog.Warn().
		Int("line", row.Line).
		Int("fields", row.Fields).
		Int("want", row.Want).
		Str("text", row.Text).
		Msg("skipping row with wrong field count")
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

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}
