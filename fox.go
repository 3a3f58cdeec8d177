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

// Package fox compiles .fox high-level build manifests into low-level
// Ninja build manifests: lexer/parser, pattern compiler, filesystem
// resolver, evaluation engine and emitter, wired together by Generate.
// Grounded on the overall pipeline shape of ginja's own
// ManifestParser/State/Generator split, retargeted from "parse and execute
// a build" to "parse and translate a build description" (spec.md §2).
package fox

import (
	_ "embed"
	"fmt"
)

//go:embed fox_core.fox
var embeddedCore string

// Options configures a single Generate invocation.
type Options struct {
	// InputFile is the top-level manifest to compile (relative to the
	// FileSystem root).
	InputFile string
	// CoreText overrides the bundled fox_core.fox content, for -core.
	CoreText string
	// Verbose enables the EXPLAIN diagnostic trace.
	Verbose bool
	// Metrics, if non-nil, receives per-stage timings for -stats.
	Metrics *Metrics
	// Warnf, if non-nil, receives non-fatal warnings (zero-match patterns,
	// spec.md §4.3/§7) instead of Context's default os.Stderr printer.
	Warnf func(format string, a ...interface{})
}

// Result is everything Generate produced: the top-level manifest's text,
// plus every subninja child's text keyed by its generated filename.
type Result struct {
	MainText  string
	Generated map[string]string
}

// Generate compiles opts.InputFile (read through fs) into Ninja manifest
// text, the Go counterpart of original_source/lib_engine.py's top-level
// `load_core` + `load` + `text` sequence.
func Generate(fs FileSystem, opts Options) (*Result, error) {
	verbose = opts.Verbose
	ctx := NewContext(fs)
	if opts.Warnf != nil {
		ctx.Warnf = opts.Warnf
	}
	scope := NewRootScope(ctx, opts.InputFile)
	emit := NewEmitter()
	ev := NewEvaluator(ctx)

	coreText := opts.CoreText
	if coreText == "" {
		coreText = embeddedCore
	}
	if err := loadInto(ev, scope, emit, "<core>", coreText, opts.Metrics, "core"); err != nil {
		return nil, err
	}

	mainText, err := fs.ReadFile(opts.InputFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", opts.InputFile, err)
	}
	emit.Header(opts.InputFile)
	if err := loadInto(ev, scope, emit, opts.InputFile, mainText, opts.Metrics, opts.InputFile); err != nil {
		return nil, err
	}

	return &Result{MainText: emit.Text(), Generated: ctx.GeneratedOutputs}, nil
}

// loadInto parses contents and runs every statement against scope/emit,
// splitting the parse and evaluate stages out for -stats reporting.
func loadInto(ev *Evaluator, scope *Scope, emit *Emitter, filename, contents string, metrics *Metrics, label string) error {
	var statements []Statement
	var err error
	if metrics != nil {
		stop := metrics.Record("parse:" + label)
		statements, err = ParseFile(filename, contents)
		stop()
	} else {
		statements, err = ParseFile(filename, contents)
	}
	if err != nil {
		return err
	}
	if metrics != nil {
		stop := metrics.Record("eval:" + label)
		defer stop()
	}
	return ev.Run(scope, statements, emit)
}
