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

// Statement is one parsed unit of a manifest: an assignment, a rule
// declaration, a build edge, and so on. The concrete payload lives in one of
// the Statement* types below; Tag says which one is live, mirroring the
// tagged-union Statement entity from spec.md §3.
type Statement struct {
	Tag      StatementTag
	Filename string
	Line     int // 1-based, first physical line of the statement's header

	Assign    *StatementAssign
	Rule      *StatementRule
	Build     *StatementBuild
	Default   *StatementDefault
	Pool      *StatementPool
	Filter    *StatementFilter
	Auto      *StatementAuto
	Include   *StatementInclude
	Subninja  *StatementSubninja
	Transform *StatementTransform
	Print     *StatementPrint
}

// StatementTag identifies which payload field of a Statement is populated.
type StatementTag int

const (
	TagAssign StatementTag = iota
	TagRule
	TagBuild
	TagDefault
	TagPool
	TagFilter
	TagAuto
	TagInclude
	TagSubninja
	TagTransform
	TagPrint
)

// AssignOp is the operator used by an assignment statement.
type AssignOp int

const (
	OpSet     AssignOp = iota // =
	OpAppend                  // +=
	OpRemove                  // -=
)

// StatementAssign is `name op value`.
type StatementAssign struct {
	Name  string
	Op    AssignOp
	Value EvalString
}

// Binding is one `name op value` pair nested under a rule/pool/build/auto
// header. Order is preserved since rule bodies are serialized verbatim.
type Binding struct {
	Name  string
	Op    AssignOp
	Value EvalString
}

// StatementRule is `rule name` plus its nested bindings.
type StatementRule struct {
	Name     string
	Bindings []Binding
	// Expand mirrors the nested `expand` metadata key: when true, a build
	// statement using this rule must emit one build line per input/target
	// pair instead of one line covering all of them (spec.md §4.4 step 7).
	Expand bool
}

// StatementBuild is a `build` edge: explicit/implicit targets, a rule name,
// explicit/implicit/order-only inputs, and nested bindings.
type StatementBuild struct {
	TargetsExplicit []EvalString
	TargetsImplicit []EvalString
	RuleName        string
	InputsExplicit  []EvalString
	InputsImplicit  []EvalString
	InputsOrder     []EvalString
	Bindings        []Binding
}

// StatementDefault is `default path+`.
type StatementDefault struct {
	Paths []EvalString
}

// StatementPool is `pool name` plus its nested bindings (e.g. `depth`).
type StatementPool struct {
	Name     string
	Bindings []Binding
}

// FilterPredicate is one `name=value` test inside a filter header.
type FilterPredicate struct {
	Name  string
	Value string
}

// StatementFilter is `filter pred [pred...]` governing a nested block.
type StatementFilter struct {
	Predicates []FilterPredicate
	Body       []Statement
}

// StatementAuto is `auto outputs : name inputs` plus nested bindings: it
// declares a reusable auto-deduction preset under `name`, later matched (and
// its own `name` returned as the rule to use) by a `build ... : auto ...`
// statement. Patterns are stored raw/unresolved since auto matching happens
// at build time against already-resolved filenames (spec.md §4.1, §4.5).
type StatementAuto struct {
	Name     string // == RuleName; the preset's lookup key and its deduced rule
	Outputs  []EvalString
	RuleName string
	Inputs   []EvalString
	Bindings []Binding
}

// StatementInclude is `include path`: same scope, no new output file.
type StatementInclude struct {
	Path EvalString
}

// StatementSubninja is `subninja path`: child scope, new output file.
type StatementSubninja struct {
	Path EvalString
}

// StatementTransform is a bare `target:pattern` statement declaring a
// transformer (spec.md §4.1 "Transform").
type StatementTransform struct {
	Name    string
	Pattern EvalString
}

// StatementPrint is a diagnostic emission statement.
type StatementPrint struct {
	Value EvalString
}
