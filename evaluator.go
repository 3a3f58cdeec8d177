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
	"fmt"
	"path"
	"regexp"
	"strings"
)

// reAlphanumeric strips everything but word characters from a subninja's
// basename when building its generated sibling filename (spec.md §4.6),
// grounded on original_source/lib_engine.py's re_alphanumeric. A pure
// character-class strip needs no lookahead, so the stdlib regexp engine is
// the right tool here rather than regexp2 (see DESIGN.md).
var reAlphanumeric = regexp.MustCompile(`\W+`)

// Evaluator walks a parsed Statement tree against a Scope, producing Ninja
// output through an Emitter. Grounded on the dispatch table formed by
// original_source/lib_engine.py's Engine.on_* methods; split here into a
// distinct pipeline stage instead of running inline with parsing, per
// spec.md §2's five-stage pipeline.
type Evaluator struct {
	ctx *Context
}

// NewEvaluator returns an Evaluator sharing ctx's registries/filesystem.
func NewEvaluator(ctx *Context) *Evaluator {
	return &Evaluator{ctx: ctx}
}

// Run evaluates every statement in order against scope, appending to emit.
func (ev *Evaluator) Run(scope *Scope, statements []Statement, emit *Emitter) error {
	for i := range statements {
		st := &statements[i]
		var err error
		switch st.Tag {
		case TagAssign:
			err = ev.onAssign(scope, emit, st.Assign)
		case TagRule:
			err = ev.onRule(scope, emit, st.Rule)
		case TagBuild:
			err = ev.onBuild(scope, emit, st.Build)
		case TagDefault:
			err = ev.onDefault(scope, emit, st.Default)
		case TagPool:
			err = ev.onPool(scope, emit, st.Pool)
		case TagFilter:
			err = ev.onFilter(scope, emit, st.Filter)
		case TagAuto:
			err = ev.onAuto(scope, st.Auto)
		case TagInclude:
			err = ev.onInclude(scope, emit, st.Include)
		case TagSubninja:
			err = ev.onSubninja(scope, emit, st.Subninja)
		case TagTransform:
			scope.addTransformer(&Transformer{Name: st.Transform.Name, Template: st.Transform.Pattern.text})
		case TagPrint:
			err = ev.onPrint(scope, st.Print)
		}
		if err != nil {
			return ev.wrapErr(st, err)
		}
	}
	return nil
}

func (ev *Evaluator) wrapErr(st *Statement, err error) error {
	if _, ok := err.(*PositionalError); ok {
		return err
	}
	return newError(st.Filename, st.Line, "", "%s", err.Error())
}

// evalAssignOp applies "=", "+=" or "-=" the way
// original_source/lib_engine.py's Engine.eval_assign_op does, including its
// "-=" quirk: remove the literal value if present verbatim, else remove its
// trimmed form.
func evalAssignOp(value, prev string, hasPrev bool, op AssignOp) (string, error) {
	if (op == OpAppend || op == OpRemove) && !hasPrev {
		return "", &simpleErr{"variable used with += or -= before being assigned with ="}
	}
	switch op {
	case OpAppend:
		return prev + value, nil
	case OpRemove:
		if strings.Contains(prev, value) {
			return strings.ReplaceAll(prev, value, ""), nil
		}
		return strings.ReplaceAll(prev, strings.TrimSpace(value), ""), nil
	default:
		return value, nil
	}
}

// evalAssignValue runs the name-triggered transform (if any) then the usual
// $-evaluation pass against scope, mirroring Engine.eval_transform's role in
// on_assign/write_assigns.
func evalAssignValue(name string, rhs EvalString, scope varLookup, transformers transformerLookup) string {
	if tr, ok := transformers.lookupTransformer(name); ok {
		return substituteVars(unescapeBase(tr.Apply(rhs.text)), scope)
	}
	return rhs.Evaluate(scope)
}

func (ev *Evaluator) onAssign(scope *Scope, emit *Emitter, a *StatementAssign) error {
	value := evalAssignValue(a.Name, a.Value, scope, scope)
	hasPrev := scope.hasVar(a.Name)
	prev := scope.Var(a.Name)
	value, err := evalAssignOp(value, prev, hasPrev, a.Op)
	if err != nil {
		return err
	}
	switch a.Name {
	case "buildfox_required_version":
		if err := CheckRequiredVersion(value); err != nil {
			return err
		}
	case "excluded_dirs":
		scope.setExcludedDirs(strings.Fields(value))
	}
	scope.setVar(a.Name, value)
	emit.Assign(a.Name, value)
	return nil
}

func (ev *Evaluator) onRule(scope *Scope, emit *Emitter, r *StatementRule) error {
	rule := &Rule{Name: r.Name, Expand: r.Expand, Bindings: r.Bindings}
	if err := rule.validate(); err != nil {
		return err
	}
	scope.addRule(rule)
	emit.RuleHeader(r.Name)
	for _, b := range r.Bindings {
		emit.RuleBinding(b.Name, b.Value.Unparse())
	}
	return nil
}

// writeBindings evaluates and emits a run of nested `name op value` lines
// (rule-body bindings excluded — those are written verbatim by onRule),
// threading a shared local scope so later bindings in the same run can see
// earlier ones, mirroring Engine.write_assigns.
func (ev *Evaluator) writeBindings(scope *Scope, emit *Emitter, bindings []Binding, local *localScope) error {
	for _, b := range bindings {
		value := evalAssignValue(b.Name, b.Value, local, scope)
		prev, hasPrev := local.lookupLocal(b.Name)
		if !hasPrev {
			prev = scope.Var(b.Name)
			hasPrev = scope.hasVar(b.Name)
		}
		var err error
		value, err = evalAssignOp(value, prev, hasPrev, b.Op)
		if err != nil {
			return err
		}
		emit.NestedAssign(b.Name, value)
		local.vars[b.Name] = value
	}
	return nil
}

func (ev *Evaluator) onDefault(scope *Scope, emit *Emitter, d *StatementDefault) error {
	paths, err := findFilesList(ev.ctx, scope, d.Paths)
	if err != nil {
		return err
	}
	emit.Default(paths)
	return nil
}

func (ev *Evaluator) onPool(scope *Scope, emit *Emitter, p *StatementPool) error {
	emit.Pool(p.Name)
	local := &localScope{vars: map[string]string{}, parent: scope}
	return ev.writeBindings(scope, emit, p.Bindings, local)
}

func (ev *Evaluator) onFilter(scope *Scope, emit *Emitter, f *StatementFilter) error {
	for _, pred := range f.Predicates {
		ok, err := evalFilterPredicate(scope, pred)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
	return ev.Run(scope, f.Body, emit)
}

// evalFilterPredicate mirrors Engine.eval_filter, with the one deliberate
// divergence recorded in SPEC_FULL.md §9: a wildcard/regex right-hand side
// is compiled the same fully-anchored way build/auto pattern matching is
// (via CompilePattern), not as a Python re.match prefix check, so a filter
// only succeeds on a complete match of the named variable's current value.
func evalFilterPredicate(scope *Scope, pred FilterPredicate) (bool, error) {
	value := scope.Var(pred.Name)
	rhs := substituteVars(unescapeBase(pred.Value), scope)
	pat, ok, err := CompilePattern(rhs)
	if err != nil {
		return false, err
	}
	if !ok {
		return rhs == value, nil
	}
	caps, err := pat.Match(value)
	if err != nil {
		return false, err
	}
	return caps != nil, nil
}

func (ev *Evaluator) onAuto(scope *Scope, a *StatementAuto) error {
	outputs := make([]string, len(a.Outputs))
	for i, o := range a.Outputs {
		outputs[i] = o.Evaluate(scope)
	}
	inputs := make([]string, len(a.Inputs))
	for i, in := range a.Inputs {
		inputs[i] = in.Evaluate(scope)
	}
	scope.addAutoPreset(&AutoPreset{
		Name: a.Name, RuleName: a.RuleName, Outputs: outputs, Inputs: inputs, Bindings: a.Bindings,
	})
	return nil
}

func (ev *Evaluator) onPrint(scope *Scope, p *StatementPrint) error {
	fmt.Fprintln(ev.ctx.Stdout, p.Value.Evaluate(scope))
	return nil
}

func (ev *Evaluator) onInclude(scope *Scope, emit *Emitter, inc *StatementInclude) error {
	paths, err := findFilesList(ev.ctx, scope, []EvalString{inc.Path})
	if err != nil {
		return err
	}
	for _, p := range paths {
		oldRel := scope.relPath
		scope.relPath = relDir(p)
		if err := ev.onAssign(scope, emit, &StatementAssign{Name: "rel_path", Op: OpSet, Value: parseEvalString(scope.relPath)}); err != nil {
			return err
		}
		content, err := ev.ctx.FileSystem.ReadFile(p)
		if err != nil {
			return err
		}
		statements, err := ParseFile(p, content)
		if err != nil {
			return err
		}
		if err := ev.Run(scope, statements, emit); err != nil {
			return err
		}
		// The restored rel_path is intentionally not re-emitted here,
		// matching the original's own on_include (its output carries the
		// included file's rel_path until the next assignment touches it,
		// even though resolution afterward correctly uses the restored
		// value).
		scope.relPath = oldRel
	}
	return nil
}

func (ev *Evaluator) onSubninja(scope *Scope, emit *Emitter, sub *StatementSubninja) error {
	paths, err := findFilesList(ev.ctx, scope, []EvalString{sub.Path})
	if err != nil {
		return err
	}
	for _, p := range paths {
		num := ev.ctx.nextSubninjaNum()
		slug := reAlphanumeric.ReplaceAllString(stripExt(path.Base(p)), "")
		genFilename := fmt.Sprintf("__gen_%d_%s.ninja", num, slug)

		child := scope.Clone(p)
		child.relPath = relDir(p)
		childEmit := NewEmitter()
		if err := ev.onAssign(child, childEmit, &StatementAssign{Name: "rel_path", Op: OpSet, Value: parseEvalString(child.relPath)}); err != nil {
			return err
		}
		content, err := ev.ctx.FileSystem.ReadFile(p)
		if err != nil {
			return err
		}
		statements, err := ParseFile(p, content)
		if err != nil {
			return err
		}
		if err := ev.Run(child, statements, childEmit); err != nil {
			return err
		}
		ev.ctx.recordGeneratedOutput(genFilename, childEmit.Text())

		if child.rulesWereAdded {
			if err := ev.onAssign(scope, emit, &StatementAssign{Name: "ninja_required_version", Op: OpSet, Value: parseEvalString("1.6")}); err != nil {
				return err
			}
		}
		scope.rulesWereAdded = scope.rulesWereAdded || child.rulesWereAdded
		emit.Subninja(genFilename)
	}
	return nil
}

func (ev *Evaluator) onBuild(scope *Scope, emit *Emitter, b *StatementBuild) error {
	inputsExplicit, targetsExplicit, err := findFiles(ev.ctx, scope, b.InputsExplicit, b.TargetsExplicit)
	if err != nil {
		return err
	}
	targetsImplicit, err := findFilesList(ev.ctx, scope, b.TargetsImplicit)
	if err != nil {
		return err
	}
	ruleName := b.RuleName
	inputsImplicit, err := findFilesList(ev.ctx, scope, b.InputsImplicit)
	if err != nil {
		return err
	}
	inputsOrder, err := findFilesList(ev.ctx, scope, b.InputsOrder)
	if err != nil {
		return err
	}

	for _, f := range inputsExplicit {
		ev.ctx.AllFiles.Add(f)
	}
	for _, f := range inputsImplicit {
		ev.ctx.AllFiles.Add(f)
	}
	for _, f := range inputsOrder {
		ev.ctx.AllFiles.Add(f)
	}
	for _, f := range targetsExplicit {
		ev.ctx.AllFiles.Add(f)
	}
	for _, f := range targetsImplicit {
		ev.ctx.AllFiles.Add(f)
	}
	for _, f := range targetsExplicit {
		if err := ev.ctx.Generated.Insert(f); err != nil {
			return err
		}
	}
	for _, f := range targetsImplicit {
		if err := ev.ctx.Generated.Insert(f); err != nil {
			return err
		}
	}

	assigns := b.Bindings
	if ruleName == "auto" {
		name, presetBindings, err := ev.evalAuto(scope, inputsExplicit, targetsExplicit)
		if err != nil {
			return err
		}
		ruleName = name
		assigns = append(append([]Binding{}, presetBindings...), assigns...)
	}

	var rule *Rule
	if ruleName != "phony" {
		r, ok := scope.lookupRule(ruleName)
		if !ok {
			return &simpleErr{"unknown rule '" + ruleName + "'" + suggestName(ruleName, scope.ruleNames())}
		}
		rule = r
	}

	local := &localScope{vars: map[string]string{}, parent: scope}
	addTargetInfo := func(prefix string, files []string) {
		for i, f := range files {
			dir, name := splitDirBase(f)
			local.vars[fmt.Sprintf("%s_path_%d", prefix, i)] = dir
			local.vars[fmt.Sprintf("%s_name_%d", prefix, i)] = name
		}
	}
	addTargetInfo("inputs_explicit", inputsExplicit)
	addTargetInfo("inputs_implicit", inputsImplicit)
	addTargetInfo("inputs_order", inputsOrder)
	addTargetInfo("targets_explicit", targetsExplicit)
	addTargetInfo("targets_implicit", targetsImplicit)

	if len(b.InputsExplicit) > 0 && len(inputsExplicit) == 0 {
		ev.ctx.warnf("no explicit input files matched")
	}
	if len(b.InputsImplicit) > 0 && len(inputsImplicit) == 0 {
		ev.ctx.warnf("no implicit input files matched")
	}
	if len(b.InputsOrder) > 0 && len(inputsOrder) == 0 {
		ev.ctx.warnf("no order-only input files matched")
	}

	expand := rule != nil && rule.Expand
	if expand {
		if len(targetsExplicit) != len(inputsExplicit) {
			return &simpleErr{fmt.Sprintf("cannot expand rule %q: %d explicit targets but %d explicit inputs", ruleName, len(targetsExplicit), len(inputsExplicit))}
		}
		for i, target := range targetsExplicit {
			emit.Build([]string{target}, ruleName, []string{inputsExplicit[i]}, inputsImplicit, inputsOrder)
			if err := ev.writeBindings(scope, emit, assigns, local); err != nil {
				return err
			}
		}
	} else {
		emit.Build(targetsExplicit, ruleName, inputsExplicit, inputsImplicit, inputsOrder)
		if err := ev.writeBindings(scope, emit, assigns, local); err != nil {
			return err
		}
	}

	if len(targetsImplicit) > 0 {
		emit.Phony(targetsImplicit, targetsExplicit)
	}
	return nil
}

// evalAuto deduces a rule name and its preset bindings for a build edge
// whose rule is `auto`, mirroring Engine.eval_auto: the first preset (in
// declaration order) whose every declared input pattern matches every
// actual input, AND whose every declared output pattern matches every
// actual output, wins.
func (ev *Evaluator) evalAuto(scope *Scope, inputs, outputs []string) (string, []Binding, error) {
	matchAll := func(declared, actual []string) (bool, error) {
		for _, d := range declared {
			pat, ok, err := CompilePattern(d)
			if err != nil {
				return false, err
			}
			for _, a := range actual {
				if ok {
					caps, err := pat.Match(a)
					if err != nil {
						return false, err
					}
					if caps == nil {
						return false, nil
					}
				} else if a != d {
					return false, nil
				}
			}
		}
		return true, nil
	}
	for _, preset := range scope.autoPresetsInOrder() {
		okIn, err := matchAll(preset.Inputs, inputs)
		if err != nil {
			return "", nil, err
		}
		if !okIn {
			continue
		}
		okOut, err := matchAll(preset.Outputs, outputs)
		if err != nil {
			return "", nil, err
		}
		if !okOut {
			continue
		}
		return preset.RuleName, preset.Bindings, nil
	}
	return "", nil, &simpleErr{"unable to deduce an auto rule for inputs [" + strings.Join(inputs, " ") + "] outputs [" + strings.Join(outputs, " ") + "]"}
}

// splitDirBase mirrors Python's os.path.split: the directory component
// never carries a trailing separator, unlike path.Split.
func splitDirBase(p string) (dir, base string) {
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[:i], p[i+1:]
	}
	return "", p
}

// stripExt removes a single trailing extension, e.g. "m.fox" -> "m".
func stripExt(base string) string {
	return strings.TrimSuffix(base, path.Ext(base))
}

// relDir returns the "/"-terminated directory of a resolved relative path,
// or "" if it is directly in the manifest root, the Go counterpart of
// original_source/lib_util.py's rel_dir (simplified to pure string
// manipulation since every path this sees is already relative to the
// working directory, never re-derived through os.path.abspath).
func relDir(p string) string {
	dir := path.Dir(normalizeSlashPath(p))
	if dir == "." {
		return ""
	}
	return dir + "/"
}
