/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: indent.go
Description: An in-process, pure-Go reformatter modeled on whatstyle.py's
IndentFormatter. Exists so the Formatter Abstraction's contract and the search
engine's phases can be exercised in tests without a clang-format binary, and to
demonstrate the abstraction does not assume subprocess execution.
*/

package formatter

import (
	"context"
	"strconv"
	"strings"

	"github.com/kleascm/whatstyle-go/pkg/style"
)

var indentOptions = []style.Option{
	{Name: "IndentWidth", Kind: style.KindInt, Default: "4", IntMin: 1, IntMax: 8, IntStep: 1},
	{Name: "UseTab", Kind: style.KindBool, Default: "false"},
	{Name: "BraceOnNewLine", Kind: style.KindBool, Default: "false"},
}

var indentBaseStyles = []string{"Default"}

// Indent is a brace-depth-driven reindenter: it tracks nesting depth by
// counting unmatched '{' / '}' per line and re-emits each line prefixed by
// depth * IndentWidth spaces (or depth tabs when UseTab is set). When
// BraceOnNewLine is true, a trailing '{' is moved to its own line at the
// same depth as the statement that opened it -- a deliberately small but
// representative echo of clang-format's BreakBeforeBraces behavior.
type Indent struct{}

// NewIndent constructs the in-process reference formatter.
func NewIndent() *Indent { return &Indent{} }

// Name implements Formatter.
func (Indent) Name() string { return "indent" }

// Options implements Formatter.
func (Indent) Options() []style.Option {
	out := make([]style.Option, len(indentOptions))
	copy(out, indentOptions)
	return out
}

// Styles implements Formatter.
func (Indent) Styles() []string {
	out := make([]string, len(indentBaseStyles))
	copy(out, indentBaseStyles)
	return out
}

// Format implements Formatter. It is a pure, stateless transform: the same
// (style, source) pair always produces the same bytes.
func (Indent) Format(_ context.Context, s style.Style, source []byte, _ string) ([]byte, error) {
	width := 4
	if v, ok := s.Values["IndentWidth"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			width = n
		}
	}
	useTab := s.Values["UseTab"] == "true"
	braceOnNewLine := s.Values["BraceOnNewLine"] == "true"

	lines := strings.Split(string(source), "\n")
	var out []string
	depth := 0

	for _, raw := range lines {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			out = append(out, "")
			continue
		}

		leadingCloses := 0
		for leadingCloses < len(trimmed) && trimmed[leadingCloses] == '}' {
			leadingCloses++
		}
		lineDepth := depth - leadingCloses
		if lineDepth < 0 {
			lineDepth = 0
		}

		if braceOnNewLine && strings.HasSuffix(trimmed, "{") && trimmed != "{" {
			body := strings.TrimSpace(strings.TrimSuffix(trimmed, "{"))
			out = append(out, indentPrefix(lineDepth, width, useTab)+body)
			out = append(out, indentPrefix(lineDepth, width, useTab)+"{")
		} else {
			out = append(out, indentPrefix(lineDepth, width, useTab)+trimmed)
		}

		depth += strings.Count(trimmed, "{") - strings.Count(trimmed, "}")
		if depth < 0 {
			depth = 0
		}
	}

	return []byte(strings.Join(out, "\n")), nil
}

// Fingerprint implements Formatter. Indent has no external binary, so its
// identity is simply a constant -- it can never drift between runs of the
// same build.
func (Indent) Fingerprint() (string, error) {
	return "indent-formatter-v1", nil
}

func indentPrefix(depth, width int, useTab bool) string {
	if useTab {
		return strings.Repeat("\t", depth)
	}
	return strings.Repeat(" ", depth*width)
}
