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

import "fmt"

// PositionalError is a hard error tied to a specific line of a specific
// manifest file. Every parse and semantic error in this package is reported
// through one of these so the caller always knows where to look.
type PositionalError struct {
	Filename string
	Line     int
	Line1    string
	Message  string
}

func (e *PositionalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s\n%s", e.Filename, e.Line, e.Message, e.Line1)
	}
	return fmt.Sprintf("%s: %s", e.Filename, e.Message)
}

// newError builds a PositionalError for the current line of a lexer.
func newError(filename string, line int, line1, format string, a ...interface{}) error {
	return &PositionalError{
		Filename: filename,
		Line:     line,
		Line1:    line1,
		Message:  fmt.Sprintf(format, a...),
	}
}

// suggestName appends a "did you mean" hint computed via Levenshtein
// distance against a list of known names, naming the single closest one (the
// first candidate wins a tie). Mirrors ginja's State.SpellcheckNode, applied
// here to rule names instead of graph nodes.
func suggestName(name string, candidates []string) string {
	const allowReplacements = true
	const maxEditDistance = 3
	best := ""
	bestDistance := maxEditDistance + 1
	for _, c := range candidates {
		d := editDistance(name, c, allowReplacements, maxEditDistance)
		if d < bestDistance {
			bestDistance = d
			best = c
		}
	}
	if best == "" {
		return ""
	}
	return fmt.Sprintf(" (did you mean '%s'?)", best)
}
