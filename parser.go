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

// Parser turns manifest text into a Statement tree. It works directly
// against the Lexer's stripped line text the way
// original_source/buildfox/poc/fox_parser2.py's Parser does (read_build,
// read_rule, etc. all mutate self.line_stripped in place); here that mutable
// cursor is the text/pos pair tracked per call.
type Parser struct {
	lex *Lexer

	haveCur    bool
	curIndent  string
	curText    string
	curLine    int
	curRawLine string
}

// ParseFile parses the full contents of a manifest file into statements.
func ParseFile(filename, contents string) ([]Statement, error) {
	p := &Parser{lex: NewLexer(filename, contents)}
	return p.parseBlock(-1)
}

func (p *Parser) fill() error {
	if p.haveCur {
		return nil
	}
	ok, err := p.lex.NextLine()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	p.haveCur = true
	p.curIndent = p.lex.Indent
	p.curText = p.lex.Text
	p.curLine = p.lex.LineNum1
	p.curRawLine = p.lex.Line
	return nil
}

func (p *Parser) errorf(format string, a ...interface{}) error {
	return newError(p.lex.filename, p.curLine, p.curRawLine, format, a...)
}

// parseBlock reads statements whose indent is deeper than parentIndentLen,
// recursing for filter bodies; it stops (without consuming) at the first
// line at or above that indent level.
func (p *Parser) parseBlock(parentIndentLen int) ([]Statement, error) {
	var out []Statement
	for {
		if err := p.fill(); err != nil {
			return nil, err
		}
		if !p.haveCur {
			break
		}
		if len(p.curIndent) <= parentIndentLen {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
	return out, nil
}

// parseStatement consumes the currently buffered header line and parses the
// statement it introduces, including any nested block.
func (p *Parser) parseStatement() (Statement, error) {
	indentLen := len(p.curIndent)
	filename, line := p.lex.filename, p.curLine
	text := p.curText
	p.haveCur = false

	word, rest := splitIdentifier(text)
	switch word {
	case "rule":
		return p.parseRule(filename, line, rest, indentLen)
	case "build":
		return p.parseBuild(filename, line, rest, indentLen)
	case "default":
		return p.parseDefault(filename, line, rest)
	case "pool":
		return p.parsePool(filename, line, rest, indentLen)
	case "include":
		return p.parseInclude(filename, line, rest)
	case "subninja":
		return p.parseSubninja(filename, line, rest)
	case "auto":
		return p.parseAuto(filename, line, rest, indentLen)
	case "filter":
		return p.parseFilter(filename, line, rest, indentLen)
	case "print":
		return p.parsePrint(filename, line, rest)
	}
	if word == "" {
		return Statement{}, newError(filename, line, text, "expected statement, got %q", text)
	}
	// target:pattern transform, or name op value assignment.
	if strings.HasPrefix(rest, ":") && !strings.ContainsAny(word, "=") {
		return Statement{
			Tag: TagTransform, Filename: filename, Line: line,
			Transform: &StatementTransform{Name: word, Pattern: parseEvalString(strings.TrimSpace(rest[1:]))},
		}, nil
	}
	return p.parseAssign(filename, line, word, rest)
}

// splitIdentifier reads a leading identifier token and returns the
// remainder of the line, trimmed, matching Lexer's rePath/reIdentifier
// tokens used directly against stripped text.
func splitIdentifier(text string) (string, string) {
	m := reIdentifier.FindString(text)
	if m == "" {
		return "", text
	}
	return m, strings.TrimSpace(text[len(m):])
}

func (p *Parser) parseAssign(filename string, line int, name, rest string) (Statement, error) {
	op, value, err := splitAssignOp(rest)
	if err != nil {
		return Statement{}, newError(filename, line, rest, "%s", err.Error())
	}
	return Statement{
		Tag: TagAssign, Filename: filename, Line: line,
		Assign: &StatementAssign{Name: name, Op: op, Value: parseEvalString(value)},
	}, nil
}

// splitAssignOp recognizes a leading =, += or -= and returns the remaining
// (trimmed) right-hand side text.
func splitAssignOp(rest string) (AssignOp, string, error) {
	switch {
	case strings.HasPrefix(rest, "+="):
		return OpAppend, strings.TrimSpace(rest[2:]), nil
	case strings.HasPrefix(rest, "-="):
		return OpRemove, strings.TrimSpace(rest[2:]), nil
	case strings.HasPrefix(rest, "="):
		return OpSet, strings.TrimSpace(rest[1:]), nil
	}
	return 0, "", errExpected("'=', '+=' or '-='", rest)
}

func errExpected(what, got string) error {
	if got == "" {
		got = "end of line"
	}
	return &simpleErr{"expected " + what + ", got " + got}
}

type simpleErr struct{ msg string }

func (e *simpleErr) Error() string { return e.msg }

// parseBindings reads a deeper-indented run of `name op value` lines, used
// for rule/pool/build/auto bodies.
func (p *Parser) parseBindings(parentIndentLen int) ([]Binding, error) {
	var out []Binding
	for {
		if err := p.fill(); err != nil {
			return nil, err
		}
		if !p.haveCur || len(p.curIndent) <= parentIndentLen {
			break
		}
		name, rest := splitIdentifier(p.curText)
		if name == "" {
			return nil, p.errorf("expected binding, got %q", p.curText)
		}
		op, value, err := splitAssignOp(rest)
		if err != nil {
			return nil, p.errorf("%s", err.Error())
		}
		out = append(out, Binding{Name: name, Op: op, Value: parseEvalString(value)})
		p.haveCur = false
	}
	return out, nil
}

func (p *Parser) parseRule(filename string, line int, rest string, indentLen int) (Statement, error) {
	name, tail := splitIdentifier(rest)
	if name == "" {
		return Statement{}, newError(filename, line, rest, "expected rule name")
	}
	if tail != "" {
		return Statement{}, newError(filename, line, rest, "unexpected token %q after rule name", tail)
	}
	bindings, err := p.parseBindings(indentLen)
	if err != nil {
		return Statement{}, err
	}
	r := &StatementRule{Name: name}
	for _, b := range bindings {
		if b.Name == "expand" {
			v := b.Value.Evaluate(nil)
			r.Expand = v != "" && v != "0" && v != "false"
			continue
		}
		if b.Op != OpSet {
			return Statement{}, newError(filename, line, rest, "rule %q: only '=' is legal in a rule body", name)
		}
		r.Bindings = append(r.Bindings, b)
	}
	return Statement{Tag: TagRule, Filename: filename, Line: line, Rule: r}, nil
}

func (p *Parser) parsePool(filename string, line int, rest string, indentLen int) (Statement, error) {
	name, tail := splitIdentifier(rest)
	if name == "" {
		return Statement{}, newError(filename, line, rest, "expected pool name")
	}
	if tail != "" {
		return Statement{}, newError(filename, line, rest, "unexpected token %q after pool name", tail)
	}
	bindings, err := p.parseBindings(indentLen)
	if err != nil {
		return Statement{}, err
	}
	return Statement{Tag: TagPool, Filename: filename, Line: line, Pool: &StatementPool{Name: name, Bindings: bindings}}, nil
}

func (p *Parser) parseDefault(filename string, line int, rest string) (Statement, error) {
	paths, _, err := readPaths(rest, "")
	if err != nil {
		return Statement{}, newError(filename, line, rest, "%s", err.Error())
	}
	if len(paths) == 0 {
		return Statement{}, newError(filename, line, rest, "expected at least one path after 'default'")
	}
	return Statement{Tag: TagDefault, Filename: filename, Line: line, Default: &StatementDefault{Paths: paths}}, nil
}

func (p *Parser) parseInclude(filename string, line int, rest string) (Statement, error) {
	path, tail, err := readOnePath(rest)
	if err != nil {
		return Statement{}, newError(filename, line, rest, "%s", err.Error())
	}
	if tail != "" {
		return Statement{}, newError(filename, line, rest, "unexpected token %q after include path", tail)
	}
	return Statement{Tag: TagInclude, Filename: filename, Line: line, Include: &StatementInclude{Path: path}}, nil
}

func (p *Parser) parseSubninja(filename string, line int, rest string) (Statement, error) {
	path, tail, err := readOnePath(rest)
	if err != nil {
		return Statement{}, newError(filename, line, rest, "%s", err.Error())
	}
	if tail != "" {
		return Statement{}, newError(filename, line, rest, "unexpected token %q after subninja path", tail)
	}
	return Statement{Tag: TagSubninja, Filename: filename, Line: line, Subninja: &StatementSubninja{Path: path}}, nil
}

func (p *Parser) parsePrint(filename string, line int, rest string) (Statement, error) {
	return Statement{Tag: TagPrint, Filename: filename, Line: line, Print: &StatementPrint{Value: parseEvalString(rest)}}, nil
}

func readOnePath(rest string) (EvalString, string, error) {
	paths, tail, err := readPaths(rest, ":|")
	if err != nil {
		return EvalString{}, "", err
	}
	if len(paths) == 0 {
		return EvalString{}, "", errExpected("path", rest)
	}
	if len(paths) > 1 {
		return EvalString{}, "", &simpleErr{"expected a single path"}
	}
	return paths[0], tail, nil
}

// readPaths reads whitespace-separated path tokens until it hits a
// character in stopSet (or end of text), returning the remainder untouched.
func readPaths(text, stopSet string) ([]EvalString, string, error) {
	var out []EvalString
	rest := text
	for rest != "" {
		if stopSet != "" && strings.ContainsRune(stopSet, rune(rest[0])) {
			break
		}
		m := rePath.FindString(rest)
		if m == "" {
			return nil, "", errExpected("path", rest)
		}
		out = append(out, parseEvalString(m))
		rest = strings.TrimSpace(rest[len(m):])
	}
	return out, rest, nil
}

func (p *Parser) parseBuild(filename string, line int, rest string, indentLen int) (Statement, error) {
	b := &StatementBuild{}
	if rest == "" {
		return Statement{}, newError(filename, line, rest, "expected build targets")
	}
	targetsExplicit, rest2, err := readPaths(rest, ":|")
	if err != nil {
		return Statement{}, newError(filename, line, rest, "%s", err.Error())
	}
	b.TargetsExplicit = targetsExplicit
	rest = rest2
	if strings.HasPrefix(rest, "|") && !strings.HasPrefix(rest, "||") {
		rest = strings.TrimSpace(rest[1:])
		targetsImplicit, rest3, err := readPaths(rest, ":")
		if err != nil {
			return Statement{}, newError(filename, line, rest, "%s", err.Error())
		}
		b.TargetsImplicit = targetsImplicit
		rest = rest3
	}
	if !strings.HasPrefix(rest, ":") {
		return Statement{}, newError(filename, line, rest, "expected ':' after build targets")
	}
	rest = strings.TrimSpace(rest[1:])
	ruleName, rest4 := splitIdentifier(rest)
	if ruleName == "" {
		return Statement{}, newError(filename, line, rest, "expected rule name after ':'")
	}
	b.RuleName = ruleName
	rest = rest4

	if rest != "" {
		inputsExplicit, rest5, err := readPaths(rest, "|")
		if err != nil {
			return Statement{}, newError(filename, line, rest, "%s", err.Error())
		}
		b.InputsExplicit = inputsExplicit
		rest = rest5

		if strings.HasPrefix(rest, "|") && !strings.HasPrefix(rest, "||") {
			rest = strings.TrimSpace(rest[1:])
			inputsImplicit, rest6, err := readPaths(rest, "|")
			if err != nil {
				return Statement{}, newError(filename, line, rest, "%s", err.Error())
			}
			b.InputsImplicit = inputsImplicit
			rest = rest6
		}

		if strings.HasPrefix(rest, "||") {
			rest = strings.TrimSpace(rest[2:])
			inputsOrder, rest7, err := readPaths(rest, "")
			if err != nil {
				return Statement{}, newError(filename, line, rest, "%s", err.Error())
			}
			b.InputsOrder = inputsOrder
			rest = rest7
		}
	}
	if rest != "" {
		return Statement{}, newError(filename, line, rest, "unexpected token %q in build statement", rest)
	}

	bindings, err := p.parseBindings(indentLen)
	if err != nil {
		return Statement{}, err
	}
	b.Bindings = bindings
	return Statement{Tag: TagBuild, Filename: filename, Line: line, Build: b}, nil
}

func (p *Parser) parseAuto(filename string, line int, rest string, indentLen int) (Statement, error) {
	a := &StatementAuto{}
	if rest == "" {
		return Statement{}, newError(filename, line, rest, "expected auto outputs")
	}
	outputs, rest2, err := readPaths(rest, ":")
	if err != nil {
		return Statement{}, newError(filename, line, rest, "%s", err.Error())
	}
	a.Outputs = outputs
	rest = rest2
	if !strings.HasPrefix(rest, ":") {
		return Statement{}, newError(filename, line, rest, "expected ':' after auto outputs")
	}
	rest = strings.TrimSpace(rest[1:])
	ruleName, rest3 := splitIdentifier(rest)
	if ruleName == "" {
		return Statement{}, newError(filename, line, rest, "expected rule name after ':'")
	}
	a.RuleName = ruleName
	a.Name = ruleName
	rest = rest3
	inputs, rest4, err := readPaths(rest, "")
	if err != nil {
		return Statement{}, newError(filename, line, rest, "%s", err.Error())
	}
	a.Inputs = inputs
	if rest4 != "" {
		return Statement{}, newError(filename, line, rest, "unexpected token %q in auto statement", rest4)
	}
	bindings, err := p.parseBindings(indentLen)
	if err != nil {
		return Statement{}, err
	}
	a.Bindings = bindings
	return Statement{Tag: TagAuto, Filename: filename, Line: line, Auto: a}, nil
}

func (p *Parser) parseFilter(filename string, line int, rest string, indentLen int) (Statement, error) {
	if rest == "" {
		return Statement{}, newError(filename, line, rest, "expected at least one predicate after 'filter'")
	}
	var preds []FilterPredicate
	for _, tok := range strings.Fields(rest) {
		eq := strings.IndexByte(tok, '=')
		if eq <= 0 {
			return Statement{}, newError(filename, line, rest, "expected 'name=value' predicate, got %q", tok)
		}
		preds = append(preds, FilterPredicate{Name: tok[:eq], Value: tok[eq+1:]})
	}
	body, err := p.parseBlock(indentLen)
	if err != nil {
		return Statement{}, err
	}
	return Statement{Tag: TagFilter, Filename: filename, Line: line, Filter: &StatementFilter{Predicates: preds, Body: body}}, nil
}
