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

import "strings"

// Emitter accumulates the lines of a generated Ninja manifest in order,
// mirroring original_source/lib_engine.py's Engine.output/to_esc/text/save.
type Emitter struct {
	lines []string
}

// NewEmitter returns an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{}
}

// EscapeSimple escapes only the Ninja variable-reference sigil, used for
// top-level and nested assignment values (spec.md §4.7).
func EscapeSimple(v string) string {
	return strings.ReplaceAll(v, "$", "$$")
}

// EscapeFull escapes "$", then ":", newline, and space, used everywhere a
// value could be misparsed as a path separator or list delimiter (build
// targets/inputs, default/subninja/pool arguments).
func EscapeFull(v string) string {
	v = strings.ReplaceAll(v, "$", "$$")
	v = strings.ReplaceAll(v, ":", "$:")
	v = strings.ReplaceAll(v, "\n", "$\n")
	v = strings.ReplaceAll(v, " ", "$ ")
	return v
}

func escapeFullAll(vs []string) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = EscapeFull(v)
	}
	return out
}

// Raw appends a line verbatim, no escaping applied.
func (e *Emitter) Raw(line string) {
	e.lines = append(e.lines, line)
}

// Header emits the generator banner for the top-level manifest only — never
// for the bundled core, `include`d files, or `subninja` children.
func (e *Emitter) Header(sourceFile string) {
	e.Raw("# generated with love by buildfox from " + sourceFile)
}

// EmptyLines reproduces n consecutive blank source lines, preserving a
// manifest's original vertical spacing in its generated output.
func (e *Emitter) EmptyLines(n int) {
	for i := 0; i < n; i++ {
		e.lines = append(e.lines, "")
	}
}

// Comment emits a passthrough "#..." line.
func (e *Emitter) Comment(text string) {
	e.Raw("#" + text)
}

// Assign emits a top-level "name = value" line, simple-escaped.
func (e *Emitter) Assign(name, value string) {
	e.Raw(name + " = " + EscapeSimple(value))
}

// NestedAssign emits an indented "  name = value" line, simple-escaped, used
// under rule/pool/build/auto headers.
func (e *Emitter) NestedAssign(name, value string) {
	e.Raw("  " + name + " = " + EscapeSimple(value))
}

// RuleHeader emits a "rule name" line.
func (e *Emitter) RuleHeader(name string) {
	e.Raw("rule " + name)
}

// RuleBinding emits a rule-body "  name = value" line with its value passed
// through completely unevaluated and unescaped — Ninja itself evaluates a
// rule's $in/$out/nested variables, so BuildFox must not touch them.
func (e *Emitter) RuleBinding(name, rawValue string) {
	e.Raw("  " + name + " = " + rawValue)
}

// Pool emits a "pool name" line.
func (e *Emitter) Pool(name string) {
	e.Raw("pool " + name)
}

// Build emits one "build targets: rule inputs | implicit || order" line,
// each path component full-escaped, matching spec.md §4.4 step 7's layout.
func (e *Emitter) Build(targets, rule string, inputs, implicit, order []string) {
	line := "build " + strings.Join(escapeFullAll(targets), " ") + ": " + rule
	if len(inputs) > 0 {
		line += " " + strings.Join(escapeFullAll(inputs), " ")
	}
	if len(implicit) > 0 {
		line += " | " + strings.Join(escapeFullAll(implicit), " ")
	}
	if len(order) > 0 {
		line += " || " + strings.Join(escapeFullAll(order), " ")
	}
	e.Raw(line)
}

// Phony emits the "build <implicit>: phony <explicit>" compatibility line
// kept for Ninja versions without multiple-outputs support (spec.md §4.4
// step 8).
func (e *Emitter) Phony(targetsImplicit, targetsExplicit []string) {
	e.Raw("build " + strings.Join(escapeFullAll(targetsImplicit), " ") + ": phony " + strings.Join(escapeFullAll(targetsExplicit), " "))
}

// Default emits a "default path..." line.
func (e *Emitter) Default(paths []string) {
	e.Raw("default " + strings.Join(escapeFullAll(paths), " "))
}

// Subninja emits a "subninja path" line, full-escaped.
func (e *Emitter) Subninja(path string) {
	e.Raw("subninja " + EscapeFull(path))
}

// Text joins every accumulated line into the final manifest text, with a
// single trailing newline (mirroring Engine.text's "\n".join(...) + "\n").
func (e *Emitter) Text() string {
	return strings.Join(e.lines, "\n") + "\n"
}
