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

// EvalString is a manifest value stored verbatim at parse time and
// evaluated against a Scope at the point of use, never eagerly — matching
// original_source/lib_engine.py's "store the raw right-hand side, evaluate
// later" treatment of assignments and rule bodies alike.
type EvalString struct {
	// raw marks a value written as r"..." in the manifest: base-escape
	// unescaping and the final $$-collapse are skipped for it, but
	// $name/${name} substitution still runs (spec.md §4.1, §4.4).
	raw  bool
	text string
}

// parseEvalString wraps a line fragment exactly as the lexer produced it
// (still containing its $-escapes), detecting a leading r"...". raw literal.
func parseEvalString(s string) EvalString {
	if strings.HasPrefix(s, `r"`) && strings.HasSuffix(s, `"`) && len(s) >= 3 {
		return EvalString{raw: true, text: s[2 : len(s)-1]}
	}
	return EvalString{text: s}
}

// Empty reports whether the string carries no text at all.
func (e *EvalString) Empty() bool {
	return e.text == ""
}

// IsRaw reports whether this value was written as an r"..." literal.
func (e *EvalString) IsRaw() bool {
	return e.raw
}

// Unparse renders the value back to source form, including the r"" quoting
// for raw literals. Used when a rule body is serialized without evaluation
// (spec.md §4.4 "Rule declaration").
func (e *EvalString) Unparse() string {
	if e.raw {
		return `r"` + e.text + `"`
	}
	return e.text
}

// varLookup resolves a single variable name against a local scope first,
// then the enclosing scope, exactly as original_source/lib_engine.py's
// Engine.eval does ("local_scope" takes precedence over "self.variables").
type varLookup interface {
	lookupLocal(name string) (string, bool)
	lookupVariable(name string) string
}

// Evaluate runs the substitution pipeline described in spec.md §4.4. A raw
// (r"...") literal still gets $name/${name} substitution — only the
// base-escape unescaping pass and the final "$$"->"$" collapse are waived
// for it, matching original_source/lib_engine.py's Engine.eval, which runs
// re_var.sub unconditionally whenever "$" appears in the text regardless of
// the raw flag.
func (e *EvalString) Evaluate(scope varLookup) string {
	if e.raw {
		return substituteVarsOnly(e.text, scope)
	}
	return substituteVars(unescapeBase(e.text), scope)
}

// --- Escaping helpers, shared by the parser and the substitution pass. ---

var (
	// reVar matches $name / ${name}, requiring an even number of preceding
	// "$" (so "$$foo" does not trigger a substitution of "foo"), exactly as
	// original_source/lib_engine.py's re_var does. The trailing "}" is
	// deliberately NOT part of this regex: Python's re_var closes the brace
	// with a conditional group, `(?(2)})`, consuming "}" only when "{" was
	// actually opened — RE2/Go regexp has no conditional-group syntax, so
	// substituteVarsOnly below checks the next literal byte by hand instead of
	// folding it into this pattern (a trailing "(\})?)" would wrongly treat
	// a bare "$name}" as if the "}" belonged to the reference). RE2 has no
	// lookbehind either, so it can still match the inner "$foo" of "$$foo";
	// substituteVarsOnly skips any match whose preceding byte is a "$".
	reVar = regexp.MustCompile(`(\$\$)*\$(\{)?([a-zA-Z0-9_.-]+)`)
	// reBaseEscaped un-escapes $|, $ , $:, $(, $) to their literal character
	// before substitution runs, per original_source/lib_engine.py's
	// re_base_escaped and spec.md §4.4 "Base escapes".
	reBaseEscaped = regexp.MustCompile(`\$([|: ()])`)
)

// unescapeBase performs the "Base escapes" pass described in spec.md §4.4:
// $|, $ , $:, $(, $) are unescaped to their literal character before
// variable substitution runs. Skipped for raw literals by the caller.
func unescapeBase(s string) string {
	return reBaseEscaped.ReplaceAllString(s, "$1")
}

// substituteVars runs the $name/${name} substitution pass described in
// spec.md §4.4, then collapses doubled "$$" to "$". Non-raw values only:
// raw literals run substituteVarsOnly instead, skipping the "$$" collapse.
func substituteVars(s string, scope varLookup) string {
	return strings.ReplaceAll(substituteVarsOnly(s, scope), "$$", "$")
}

// substituteVarsOnly is the $name/${name} substitution pass on its own, with
// no "$$" collapsing — the half of substituteVars a raw literal still runs.
// Walks reVar's matches by index (rather than ReplaceAllStringFunc) so it
// can look at the byte right after each match and only swallow a "}" when
// this reference actually opened with "{" — see reVar's doc comment.
func substituteVarsOnly(s string, scope varLookup) string {
	if !strings.Contains(s, "$") {
		return s
	}
	var b strings.Builder
	last := 0
	for _, m := range reVar.FindAllStringSubmatchIndex(s, -1) {
		start, end := m[0], m[1]
		if start > 0 && s[start-1] == '$' {
			// An odd run of "$" before this match makes it an escape.
			continue
		}
		b.WriteString(s[last:start])

		dollars := ""
		if m[2] >= 0 {
			dollars = s[m[2]:m[3]]
		}
		braced := m[4] >= 0
		name := s[m[6]:m[7]]

		consumedEnd := end
		if braced && consumedEnd < len(s) && s[consumedEnd] == '}' {
			consumedEnd++
		}

		var value string
		if scope != nil {
			if v, ok := scope.lookupLocal(name); ok {
				value = v
			} else {
				value = scope.lookupVariable(name)
			}
		}
		b.WriteString(dollars + value)
		last = consumedEnd
	}
	b.WriteString(s[last:])
	return b.String()
}

// localScope implements varLookup for a flat map, used for a build
// statement's per-build local scope (inputs_explicit_path_0, etc.).
type localScope struct {
	vars   map[string]string
	parent varLookup
}

func (l *localScope) lookupLocal(name string) (string, bool) {
	if l == nil {
		return "", false
	}
	if v, ok := l.vars[name]; ok {
		return v, true
	}
	return "", false
}

func (l *localScope) lookupVariable(name string) string {
	if l == nil || l.parent == nil {
		return ""
	}
	return l.parent.lookupVariable(name)
}
