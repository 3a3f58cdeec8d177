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

	"github.com/dlclark/regexp2"
)

// Pattern is a compiled wildcard/regex pattern: a match regex applied to
// candidate relative file paths, plus the set of its capture-group indices
// that may span path segments ("recursive" groups, from `**`). Grounded on
// original_source/lib_util.py's wildcard_regex(replace_groups=False).
type Pattern struct {
	Literal   bool // true: no wildcard syntax, pattern is a plain relative path
	Source    string
	regex     *regexp2.Regexp
	recGroups map[int]bool
	numGroups int
}

// OutputTemplate renders an output path from a matched input's capture
// tuple, via \N / \pN back-references. Grounded on the same function called
// with replace_groups=True, and on its group-renumbering "prepend recursive
// group" behavior for outputs with fewer wildcards than the input.
type OutputTemplate struct {
	Literal bool
	Source  string
	parts   []outputPart
}

type outputPart struct {
	literal  string
	group    int // 1-based; 0 means literal text only
	pathSafe bool
}

func isQuoted(s, quote string) bool {
	return strings.HasPrefix(s, quote) && strings.HasSuffix(s, `"`) && len(s) >= len(quote)+1
}

// stripLiteralQuoting strips a raw-regex r"..." wrapper or a plain "..."
// string-literal wrapper, reporting whether the pattern was raw (in which
// case it bypasses all wildcard translation, per spec.md §4.2).
func stripLiteralQuoting(s string) (text string, raw bool) {
	if isQuoted(s, `r"`) {
		return s[2 : len(s)-1], true
	}
	if isQuoted(s, `"`) {
		return s[1 : len(s)-1], false
	}
	return s, false
}

func hasWildcardSyntax(s string) bool {
	return strings.ContainsAny(s, "!*?[")
}

// CompilePattern compiles a user-facing wildcard/regex pattern into its
// match form. ok is false for a plain literal path (no wildcard, not raw),
// which the caller passes through unchanged per spec.md §4.3.
func CompilePattern(pattern string) (*Pattern, bool, error) {
	text, raw := stripLiteralQuoting(pattern)
	if raw {
		re, err := regexp2.Compile(text, regexp2.Singleline)
		if err != nil {
			return nil, false, err
		}
		return &Pattern{Source: pattern, regex: re}, true, nil
	}
	if !hasWildcardSyntax(text) {
		return nil, false, nil
	}
	recGroups := map[int]bool{}
	body, n, err := translateMatch(text, recGroups)
	if err != nil {
		return nil, false, err
	}
	re, err := regexp2.Compile(`^(?:`+body+`)$`, regexp2.Singleline)
	if err != nil {
		return nil, false, err
	}
	return &Pattern{Source: pattern, regex: re, recGroups: recGroups, numGroups: n}, true, nil
}

// CompileOutputTemplate compiles an output pattern sharing the recGroups
// bookkeeping of its paired input pattern, per spec.md §4.2 point 3 (group
// renumbering so every recursive input group appears in the filename).
func CompileOutputTemplate(pattern string, recGroups map[int]bool) (*OutputTemplate, bool, error) {
	text, raw := stripLiteralQuoting(pattern)
	if raw {
		return &OutputTemplate{Source: pattern, Literal: true, parts: []outputPart{{literal: text}}}, true, nil
	}
	if !hasWildcardSyntax(text) {
		return nil, false, nil
	}
	parts, err := translateOutput(text, recGroups)
	if err != nil {
		return nil, false, err
	}
	return &OutputTemplate{Source: pattern, parts: parts}, true, nil
}

// RecursiveGroups exposes the input pattern's recursive-group index set, so
// its paired output template can be compiled with the same bookkeeping.
func (p *Pattern) RecursiveGroups() map[int]bool {
	if p.recGroups == nil {
		return map[int]bool{}
	}
	return p.recGroups
}

// Match runs the compiled regex against a full candidate relative path and
// returns the capture tuple (nil if no match).
func (p *Pattern) Match(candidate string) ([]string, error) {
	m, err := p.regex.FindStringMatch(candidate)
	if err != nil || m == nil {
		return nil, err
	}
	groups := m.Groups()
	out := make([]string, len(groups)-1)
	for i := 1; i < len(groups); i++ {
		out[i-1] = groups[i].String()
	}
	return out, nil
}

// Render substitutes a matched capture tuple into the output template,
// flattening recursive (path-carrying) captures with "_" unless marked
// path-safe, per spec.md §4.2 point 2.
func (t *OutputTemplate) Render(captures []string) string {
	var b strings.Builder
	for _, part := range t.parts {
		if part.group == 0 {
			b.WriteString(part.literal)
			continue
		}
		idx := part.group - 1
		if idx < 0 || idx >= len(captures) {
			continue
		}
		v := captures[idx]
		if !part.pathSafe {
			v = strings.ReplaceAll(v, "/", "_")
		}
		b.WriteString(v)
	}
	out := strings.ReplaceAll(b.String(), "//", "/")
	return strings.TrimPrefix(out, "/")
}

func quoteMeta(c byte) string {
	return regexp.QuoteMeta(string(c))
}

// translateMatch is the replace_groups=False half of wildcard_regex: it
// walks the pattern once, emitting a match-regex body and recording which
// logical group indices are recursive (`**`). A `**` always collapses to a
// single path-carrying group — consuming a following literal "/" into it
// when present, exactly like the paired `(?:(.*)\/)?`
// re_recursive_glob substitution in original_source/lib_util.py, but
// performed inline instead of as a post-hoc regex rewrite, and applied
// whether or not a trailing "/" happens to follow (a deliberate
// simplification: it keeps the logical group index always equal to the
// actual regex group index, avoiding the off-by-one drift the original
// exhibits for a `**` not immediately followed by "/").
func translateMatch(s string, recGroups map[int]bool) (string, int, error) {
	var b strings.Builder
	groups := 0
	i, n := 0, len(s)
	for i < n {
		c := s[i]
		i++
		switch c {
		case '*':
			if i < n && s[i] == '*' {
				i++
				groups++
				recGroups[groups] = true
				if i < n && s[i] == '/' {
					i++
					b.WriteString(`(?:(.*)/)?`)
				} else {
					b.WriteString(`(.*)`)
				}
			} else {
				groups++
				b.WriteString(`([^/]*)`)
			}
		case '?':
			groups++
			b.WriteString(`([^/])`)
		case '!':
			j := i
			if j < n && s[j] == '(' {
				j++
			}
			for j < n && s[j] != ')' {
				j++
			}
			if j >= n {
				b.WriteString(`\!`)
			} else {
				stuff := strings.ReplaceAll(s[i+1:j], `\`, `\\`)
				i = j + 1
				groups++
				b.WriteString(`(?!`)
				b.WriteString(stuff)
				b.WriteString(`)([^/]*)`)
			}
		case '[':
			j := i
			if j < n && s[j] == '!' {
				j++
			}
			if j < n && s[j] == ']' {
				j++
			}
			for j < n && s[j] != ']' {
				j++
			}
			if j >= n {
				b.WriteString(`\[`)
			} else {
				stuff := strings.ReplaceAll(s[i:j], `\`, `\\`)
				i = j + 1
				if stuff[0] == '!' {
					stuff = "^" + stuff[1:]
				} else if stuff[0] == '^' {
					stuff = `\` + stuff
				}
				b.WriteByte('[')
				b.WriteString(stuff)
				b.WriteByte(']')
			}
		default:
			b.WriteString(quoteMeta(c))
		}
	}
	return b.String(), groups, nil
}

// translateOutput is the replace_groups=True half of wildcard_regex,
// producing output-template parts instead of regex text. When this output
// pattern has fewer wildcards than the input had recursive groups, unused
// recursive groups are prepended as "<value>_" so every recursive input
// capture still appears in the generated filename (spec.md §4.2 point 3);
// a prepended group is not path-safe, so its "/" separators become "_".
func translateOutput(s string, recGroups map[int]bool) ([]outputPart, error) {
	var parts []outputPart
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			parts = append(parts, outputPart{literal: lit.String()})
			lit.Reset()
		}
	}
	groups := 0
	i, n := 0, len(s)
	for i < n {
		c := s[i]
		i++
		switch c {
		case '*':
			if i < n && s[i] == '*' {
				i++
				groups++
				flush()
				parts = append(parts, outputPart{group: groups, pathSafe: true})
			} else {
				groups++
				for recGroups[groups] {
					flush()
					parts = append(parts, outputPart{group: groups})
					lit.WriteString("_")
					groups++
				}
				flush()
				parts = append(parts, outputPart{group: groups})
			}
		case '?':
			groups++
			flush()
			parts = append(parts, outputPart{group: groups})
		default:
			// original_source/lib_util.py's wildcard_regex checks
			// `elif replace_groups: res += c` before its "!" / "["
			// branches, so in replace_groups=True mode (output templates)
			// neither character is ever special-cased: both fall straight
			// through to plain literal text here, same as any other rune.
			// Only "*" and "?" consume a capture group in an output
			// template.
			lit.WriteByte(c)
		}
	}
	flush()
	return parts, nil
}
