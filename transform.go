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
	"path"
	"regexp"
	"strings"
)

// Transformer is either a user-declared macro (Template, substituted per
// whitespace-separated token into ${param}/${path}/${file} slots) or a
// built-in one backed by Go code (Builtin, applied to the whole token
// directly) — a manifest addresses both the same way, by name, through a
// `name(arg)` path transform or an assignment-name transform. Grounded on
// original_source/lib_engine.py's Engine.eval_transform for the Template
// case; the Builtin case has no original_source counterpart (it is how
// cxxhelpers' Go functions become reachable from a .fox manifest).
type Transformer struct {
	Name     string
	Template string                 // raw text, not an EvalString: substituted verbatim into ${param}/${path}/${file} slots before $-evaluation runs
	Builtin  func(value string) string // when set, takes priority over Template and runs once on the whole, untokenized value
}

// reWholePathTransform matches a value that, in its entirety, is a call
// `name(arg)` — grounded on re_path_transform, anchored the same way.
var reWholePathTransform = regexp.MustCompile(`^([a-zA-Z0-9_.-]+)\((.*)\)$`)

// splitUnescapedSpaces splits on literal spaces not preceded by an escaping
// "$", mirroring re_non_escaped_space without needing lookbehind. Transforms
// run before base-escape unescaping, so a "$ " escape is still present here
// and stays inside its token; empty tokens are dropped.
func splitUnescapedSpaces(s string) []string {
	var out []string
	start, dollars := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == '$' {
			dollars++
			continue
		}
		if s[i] == ' ' && dollars%2 == 0 {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
		dollars = 0
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

// applyOne renders the template's ${param}/${path}/${file} slots for a
// single token value.
func (t *Transformer) applyOne(value string) string {
	if value == "" {
		return ""
	}
	dir, file := path.Split(value)
	repl := strings.NewReplacer(
		"${param}", value,
		"${path}", dir,
		"${file}", file,
	)
	return repl.Replace(t.Template)
}

// Apply runs the transformer over value: a Builtin sees the whole value at
// once (so it can do its own tokenizing, e.g. cxxhelpers' multi-flag
// splitting); a template-based transformer is applied per whitespace-
// separated token and rejoined with a single space, per spec.md §4.4 "Path
// transforms".
func (t *Transformer) Apply(value string) string {
	if t.Builtin != nil {
		return t.Builtin(value)
	}
	tokens := splitUnescapedSpaces(value)
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = t.applyOne(tok)
	}
	return strings.Join(out, " ")
}

// transformerLookup resolves a declared transformer by name.
type transformerLookup interface {
	lookupTransformer(name string) (*Transformer, bool)
}

// applyAssignTransform mirrors Engine.on_assign's `eval_transform(name, rhs)`
// call: if the assignment's own target name happens to also be a declared
// transformer, the whole right-hand side is rewritten through it before
// further $-evaluation. Most assignments have no such transformer and pass
// through unchanged.
func applyAssignTransform(lhsName, rhs string, transformers transformerLookup) string {
	if transformers == nil {
		return rhs
	}
	if tr, ok := transformers.lookupTransformer(lhsName); ok {
		return tr.Apply(rhs)
	}
	return rhs
}

// evalWithPathTransform runs the full pipeline a path-list entry (build
// input/output, default/include/subninja argument) goes through before
// filesystem resolution: raw literals pass through untouched; otherwise a
// whole-string `name(arg)` call is rewritten through its transformer first,
// and the result (still possibly containing "$" references) is evaluated
// against scope last — mirroring Engine.eval_find_files's
// `eval_path_transform` immediately followed by `self.eval(...)`.
func evalWithPathTransform(e EvalString, scope *Scope) string {
	if e.IsRaw() {
		return e.text
	}
	text := applyPathTransform(e.text, scope)
	return substituteVars(unescapeBase(text), scope)
}

// applyPathTransform mirrors Engine.eval_path_transform: when a path value
// is, in its entirety, `name(arg)` for a declared transformer name, the
// value is replaced by the transformer's rendering of arg (not itself
// further $-evaluated at this step — the caller evaluates the result
// afterwards, same as the Python `return self.eval(value)` tail call).
func applyPathTransform(value string, transformers transformerLookup) string {
	if transformers == nil || !strings.Contains(value, "(") {
		return value
	}
	m := reWholePathTransform.FindStringSubmatch(value)
	if m == nil {
		return value
	}
	tr, ok := transformers.lookupTransformer(m[1])
	if !ok {
		return value
	}
	return tr.Apply(m[2])
}
