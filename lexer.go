// Copyright 2011 Google Inc. All Rights Reserved.
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

package fox

import (
	"regexp"
	"strings"
)

// Lexer splits a manifest into logical lines: escaped-newline continuations
// joined, comments stripped, indentation split off, blank lines skipped. It
// does not otherwise tokenize a line — Parser does that directly against
// the stripped text, the way original_source/buildfox/poc/fox_parser2.py's
// Parser.next_line/read_* pair does.
type Lexer struct {
	filename string
	lines    []string
	lineNum  int // next raw line index to consume, 0-based

	// Line is the raw (unstripped, continuation-joined) text of the most
	// recently produced logical line, used verbatim in error messages.
	Line string
	// LineNum1 is the 1-based line number of the FIRST physical line that
	// makes up Line, for positional errors.
	LineNum1 int
	// Indent is the leading whitespace of Line (all tabs or all spaces).
	Indent string
	// Text is Line with leading/trailing whitespace and any trailing,
	// un-escaped comment removed — what the parser reads tokens from.
	Text string
}

var (
	reTrailingDollars = regexp.MustCompile(`\$+$`)
	reIdentifier      = regexp.MustCompile(`^[a-zA-Z0-9_.-]+`)
	// rePath matches a run of path characters, treating $|, $ , $: as a
	// single unit so they are not split on, per spec.md §4.1's path token
	// and original_source/buildfox/poc/fox_parser2.py's re_path.
	rePath = regexp.MustCompile(`^(\$\||\$ |\$:|[^ :|\n])+`)
)

// NewLexer creates a Lexer over filename's already-read contents.
func NewLexer(filename, input string) *Lexer {
	input = strings.ReplaceAll(input, "\r\n", "\n")
	return &Lexer{filename: filename, lines: strings.Split(input, "\n")}
}

// Filename returns the name this lexer reports in positional errors.
func (l *Lexer) Filename() string {
	return l.filename
}

// stripComment removes a trailing "#...": unless the "#" is itself preceded
// by an odd run of "$" (an escaped hash), per spec.md §4.1 ("a `#` not
// preceded by an unbalanced `$`").
func stripComment(s string) string {
	dollars := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '$':
			dollars++
		case '#':
			if dollars%2 == 0 {
				return strings.TrimSpace(s[:i])
			}
			dollars = 0
		default:
			dollars = 0
		}
	}
	return s
}

// NextLine advances to the next non-blank logical line, joining escaped
// continuations and stripping comments, and reports whether one was found.
// Mirrors original_source/buildfox/poc/fox_parser2.py's next_line, with the
// "odd number of trailing $ means continue" rule from spec.md §4.1.
func (l *Lexer) NextLine() (bool, error) {
	for {
		if l.lineNum >= len(l.lines) {
			return false, nil
		}
		startLine := l.lineNum + 1 // 1-based
		line := l.lines[l.lineNum]
		l.lineNum++
		for {
			m := reTrailingDollars.FindString(line)
			if m == "" || len(m)%2 == 0 {
				break
			}
			if l.lineNum >= len(l.lines) {
				break
			}
			line = line[:len(line)-1] + l.lines[l.lineNum]
			l.lineNum++
		}

		stripped := stripComment(strings.TrimSpace(line))
		if stripped == "" {
			continue
		}

		indent := leadingWhitespace(line)
		if strings.Contains(indent, "\t") && strings.Contains(indent, " ") {
			return false, newError(l.filename, startLine, line, "inconsistent whitespace (mixed tabs and spaces)")
		}
		l.Line = line
		l.LineNum1 = startLine
		l.Indent = indent
		l.Text = stripped
		return true, nil
	}
}

func leadingWhitespace(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return s[:i]
}

// Errorf builds a PositionalError anchored at the current logical line.
func (l *Lexer) Errorf(format string, a ...interface{}) error {
	return newError(l.filename, l.LineNum1, l.Line, format, a...)
}
