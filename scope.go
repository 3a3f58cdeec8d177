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
	"strings"

	"github.com/buildfox/buildfox/cxxhelpers"
)

// AutoPreset is a declarative input/output-pattern-to-rule mapping,
// consulted during `build ... : auto ...` deduction (spec.md §3, §4.5).
type AutoPreset struct {
	Name     string
	Inputs   []string // already $-evaluated pattern text, not resolved files
	Outputs  []string
	RuleName string
	Bindings []Binding
}

// Scope is the evaluator's environment: variables, rules, transformers,
// auto-presets, the excluded-dirs set, and the manifest-relative path,
// plus a pointer to the Context shared across the whole run. Entering a
// `subninja` clones a Scope (copy-on-write snapshot of its mappings);
// `include` evaluates in the very same Scope. Grounded on
// original_source/lib_engine.py's Engine.__init__/copy-constructor split
// and ginja's eval_env.go BindingEnv design. Unexported mutable state with
// exported helpers keeps callers from bypassing the rspfile/duplicate-
// target invariants enforced along the way.
type Scope struct {
	ctx      *Context
	Filename string

	variables    map[string]string
	rules        map[string]*Rule
	transformers map[string]*Transformer
	autoPresets  []*AutoPreset
	autoIndex    map[string]int
	excludedDirs map[string]bool
	relPath      string

	// rulesWereAdded tracks whether this scope, or any subninja child run
	// from it, has declared a rule. Clone does not copy it, so a child starts
	// false and reports back to its parent whether
	// ninja_required_version = 1.6 must be forced (spec.md §4.6).
	rulesWereAdded bool
}

// NewRootScope creates the top-level Scope for a fresh run, pre-registering
// the built-in cxxhelpers transforms (spec.md §6) so a manifest can reach
// them the same way it reaches a user-declared `transform`, by name through
// a `name(arg)` path transform or an assignment-name transform. cxxhelpers'
// FindFiles is deliberately not registered here: it takes a resolved file
// list, not a single token, so it has no Transformer-shaped call site.
func NewRootScope(ctx *Context, filename string) *Scope {
	s := &Scope{
		ctx:          ctx,
		Filename:     filename,
		variables:    map[string]string{},
		rules:        map[string]*Rule{},
		transformers: map[string]*Transformer{},
		autoIndex:    map[string]int{},
		excludedDirs: map[string]bool{},
	}
	s.addTransformer(&Transformer{Name: "cxx_defines", Builtin: func(v string) string {
		return strings.Join(cxxhelpers.Defines(v), " ")
	}})
	s.addTransformer(&Transformer{Name: "cxx_includedirs", Builtin: func(v string) string {
		return strings.Join(cxxhelpers.IncludeDirs(v), " ")
	}})
	return s
}

// Clone snapshots this scope's mappings into a fresh child Scope sharing
// the same Context, for `subninja` (spec.md §4.6).
func (s *Scope) Clone(filename string) *Scope {
	c := &Scope{
		ctx:          s.ctx,
		Filename:     filename,
		variables:    make(map[string]string, len(s.variables)),
		rules:        make(map[string]*Rule, len(s.rules)),
		transformers: make(map[string]*Transformer, len(s.transformers)),
		autoPresets:  append([]*AutoPreset(nil), s.autoPresets...),
		autoIndex:    make(map[string]int, len(s.autoIndex)),
		excludedDirs: make(map[string]bool, len(s.excludedDirs)),
		relPath:      s.relPath,
	}
	for k, v := range s.variables {
		c.variables[k] = v
	}
	for k, v := range s.rules {
		c.rules[k] = v
	}
	for k, v := range s.transformers {
		c.transformers[k] = v
	}
	for k, v := range s.autoIndex {
		c.autoIndex[k] = v
	}
	for k, v := range s.excludedDirs {
		c.excludedDirs[k] = v
	}
	return c
}

func (s *Scope) lookupLocal(string) (string, bool) { return "", false }

func (s *Scope) lookupVariable(name string) string {
	return s.variables[name]
}

// Var returns a variable's evaluated value (empty string if unset).
func (s *Scope) Var(name string) string {
	return s.variables[name]
}

func (s *Scope) hasVar(name string) bool {
	_, ok := s.variables[name]
	return ok
}

func (s *Scope) setVar(name, value string) {
	s.variables[name] = value
}

func (s *Scope) lookupRule(name string) (*Rule, bool) {
	r, ok := s.rules[name]
	return r, ok
}

// addRule registers r, silently overwriting any earlier rule of the same
// name, matching original_source/lib_engine.py's on_rule (an unconditional
// `self.rules[rule_name] = vars`, no existence check) and addAutoPreset's
// own overwrite-by-name behavior below.
func (s *Scope) addRule(r *Rule) {
	s.rules[r.Name] = r
	s.rulesWereAdded = true
}

func (s *Scope) ruleNames() []string {
	out := make([]string, 0, len(s.rules))
	for n := range s.rules {
		out = append(out, n)
	}
	return out
}

func (s *Scope) lookupTransformer(name string) (*Transformer, bool) {
	t, ok := s.transformers[name]
	return t, ok
}

func (s *Scope) addTransformer(t *Transformer) {
	s.transformers[t.Name] = t
}

func (s *Scope) addAutoPreset(p *AutoPreset) {
	if idx, exists := s.autoIndex[p.Name]; exists {
		s.autoPresets[idx] = p
		return
	}
	s.autoIndex[p.Name] = len(s.autoPresets)
	s.autoPresets = append(s.autoPresets, p)
}

// autoPresetsInOrder returns every declared auto-preset in insertion
// order, for the first-match-wins deduction pass (spec.md §4.5, §9).
func (s *Scope) autoPresetsInOrder() []*AutoPreset {
	return s.autoPresets
}

func (s *Scope) setExcludedDirs(dirs []string) {
	s.excludedDirs = make(map[string]bool, len(dirs))
	for _, d := range dirs {
		s.excludedDirs[d] = true
	}
}

func (s *Scope) isExcludedDir(name string) bool {
	return s.excludedDirs[name]
}
