/*
 * Cb - a statically typed, C-family interpreted systems language
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package pretty renders a runtime error and its stack trace for a
// terminal: a one-line summary, a "--> module:line:col" locator, a
// source snippet with a caret underline when the offending code is
// available, and the call frames innermost-first.
package pretty

import (
	"fmt"
	"io"
	"strings"

	"github.com/logrusorgru/aurora/v4"
	"golang.org/x/text/width"

	"github.com/cb-lang/cb/common"
	cberrors "github.com/cb-lang/cb/errors"
)

// Ranged is satisfied by any error that carries a source range, which is
// every error the interpreter throws (*errors.RuntimeError).
type Ranged interface {
	error
	SourceRange() common.Range
}

// ErrorPrettyPrinter writes formatted errors to an underlying writer,
// optionally colorizing them with ANSI escapes.
type ErrorPrettyPrinter struct {
	writer   io.Writer
	useColor bool
}

// NewErrorPrettyPrinter constructs a printer. useColor wraps the
// "error:" label and the caret underline in ANSI color codes; pass false
// for output destined for a file or a non-terminal.
func NewErrorPrettyPrinter(writer io.Writer, useColor bool) *ErrorPrettyPrinter {
	return &ErrorPrettyPrinter{
		writer:   writer,
		useColor: useColor,
	}
}

func (p *ErrorPrettyPrinter) colorizeError(s string) string {
	if !p.useColor {
		return s
	}
	return aurora.Colorize(s, aurora.RedFg|aurora.BrightFg).String()
}

// PrettyPrintError writes err's summary, locator, and (when the source
// for location is available in codes) an underlined snippet, followed by
// a stack trace if err is a *errors.RuntimeError with recorded frames.
func (p *ErrorPrettyPrinter) PrettyPrintError(
	err error,
	location common.ModuleLocation,
	codes map[common.ModuleLocation]string,
) error {
	ranged, ok := err.(Ranged)
	if !ok {
		_, writeErr := fmt.Fprintf(p.writer, "error: %s\n", err.Error())
		return writeErr
	}

	rng := ranged.SourceRange()

	if _, err := fmt.Fprintf(p.writer, "%s %s\n", p.colorizeError("error:"), summarize(err)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(
		p.writer,
		" --> %s:%d:%d\n",
		location.String(),
		rng.Start.Line,
		rng.Start.Column,
	); err != nil {
		return err
	}

	code, ok := codes[location]
	if ok {
		if err := p.printSnippet(code, rng); err != nil {
			return err
		}
	}

	if re, ok := err.(*cberrors.RuntimeError); ok {
		if err := p.printFrames(re.Frames); err != nil {
			return err
		}
	}

	return nil
}

// printSnippet prints the single source line the range starts on,
// prefixed with its 1-based line number, followed by a caret line
// underlining the column span. A start line past the end of the source
// is printed without a snippet at all — a best-effort policy for a range
// the printer cannot resolve against the available source text.
func (p *ErrorPrettyPrinter) printSnippet(code string, rng common.Range) error {
	lines := strings.Split(code, "\n")
	if rng.Start.Line < 1 || rng.Start.Line > len(lines) {
		return nil
	}
	line := lines[rng.Start.Line-1]

	if _, err := fmt.Fprintf(p.writer, "  |\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(p.writer, "%d | %s\n", rng.Start.Line, line); err != nil {
		return err
	}

	prefix := leadingWhitespace(line, rng.Start.Column)
	caret := strings.Repeat("^", caretWidth(rng))
	_, err := fmt.Fprintf(p.writer, "  | %s%s\n", prefix, p.colorizeError(caret))
	return err
}

// leadingWhitespace returns padding the width of the first upTo runes of
// line, so the caret line lines up under a snippet that mixes tabs,
// spaces, and (via golang.org/x/text/width) fullwidth CJK characters
// that occupy two terminal columns. Tabs are preserved verbatim so the
// terminal's own tab stops keep both lines aligned.
func leadingWhitespace(line string, upTo int) string {
	runes := []rune(line)
	if upTo > len(runes) {
		upTo = len(runes)
	}
	var b strings.Builder
	for _, r := range runes[:upTo] {
		switch {
		case r == '\t':
			b.WriteRune('\t')
		case isWideRune(r):
			b.WriteString("  ")
		default:
			b.WriteRune(' ')
		}
	}
	return b.String()
}

// isWideRune reports whether r renders as two terminal columns.
func isWideRune(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	default:
		return false
	}
}

// caretWidth is the inclusive column span of rng when it starts and ends
// on the same line, else a single caret marking just the start column.
func caretWidth(rng common.Range) int {
	if rng.Start.Line == rng.End.Line && rng.End.Column >= rng.Start.Column {
		return rng.End.Column - rng.Start.Column + 1
	}
	return 1
}

// printFrames writes the call stack innermost-first, matching the order
// RuntimeError.WithFrame appends them in.
func (p *ErrorPrettyPrinter) printFrames(frames []cberrors.Frame) error {
	for _, f := range frames {
		_, err := fmt.Fprintf(
			p.writer,
			"  at %s (%s:%d:%d)\n",
			f.Function,
			f.Module,
			f.Location.Start.Line,
			f.Location.Start.Column,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// summarize renders a RuntimeError as "Variant: message", omitting the
// "at module:line:col" suffix RuntimeError.Error() appends for a bare
// error.Error() call — the printer already renders that location on its
// own locator line.
func summarize(err error) string {
	if re, ok := err.(*cberrors.RuntimeError); ok {
		return fmt.Sprintf("%s: %s", re.Variant, re.Message)
	}
	return err.Error()
}

