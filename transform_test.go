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

import "testing"

func TestTransformerApplyPerToken(t *testing.T) {
	tr := &Transformer{Name: "inc", Template: "-I${param}"}
	if got := tr.Apply("a b"); got != "-Ia -Ib" {
		t.Fatalf("Apply = %q", got)
	}
}

func TestTransformerApplyPathAndFileSlots(t *testing.T) {
	tr := &Transformer{Name: "obj", Template: "${path}build/${file}"}
	if got := tr.applyOne("src/sub/a.c"); got != "src/sub/build/a.c" {
		t.Fatalf("applyOne = %q", got)
	}
}

func TestApplyPathTransformRewritesWholeStringCall(t *testing.T) {
	ctx := newTestContext()
	scope := NewRootScope(ctx, "build.fox")
	scope.addTransformer(&Transformer{Name: "inc", Template: "-I${param}"})
	if got := applyPathTransform("inc(include)", scope); got != "-Iinclude" {
		t.Fatalf("applyPathTransform = %q", got)
	}
}

func TestApplyPathTransformLeavesUnknownCallUntouched(t *testing.T) {
	ctx := newTestContext()
	scope := NewRootScope(ctx, "build.fox")
	if got := applyPathTransform("missing(x)", scope); got != "missing(x)" {
		t.Fatalf("applyPathTransform = %q", got)
	}
}

func TestEvalWithPathTransformEvaluatesAfterTransform(t *testing.T) {
	ctx := newTestContext()
	scope := NewRootScope(ctx, "build.fox")
	scope.setVar("root", "/srv")
	scope.addTransformer(&Transformer{Name: "under", Template: "$root/${param}"})
	e := parseEvalString("under(lib)")
	if got := evalWithPathTransform(e, scope); got != "/srv/lib" {
		t.Fatalf("evalWithPathTransform = %q", got)
	}
}

func TestEvalWithPathTransformSkipsRawLiterals(t *testing.T) {
	e := parseEvalString(`r"literal(x)"`)
	if got := evalWithPathTransform(e, nil); got != "literal(x)" {
		t.Fatalf("evalWithPathTransform = %q, want passthrough", got)
	}
}

func TestBuiltinTransformerTakesPriorityOverTemplate(t *testing.T) {
	tr := &Transformer{Name: "x", Template: "should-not-run", Builtin: func(v string) string {
		return "builtin:" + v
	}}
	if got := tr.Apply("a b"); got != "builtin:a b" {
		t.Fatalf("Apply = %q, want the builtin to see the whole value untokenized", got)
	}
}

func TestRootScopeCxxIncludeDirsBuiltinTransform(t *testing.T) {
	ctx := newTestContext()
	scope := NewRootScope(ctx, "build.fox")
	if got := applyPathTransform("cxx_includedirs(-Iinc -I\"third party\")", scope); got != "inc third party" {
		t.Fatalf("applyPathTransform = %q", got)
	}
}

func TestRootScopeCxxDefinesBuiltinTransform(t *testing.T) {
	ctx := newTestContext()
	scope := NewRootScope(ctx, "build.fox")
	e := parseEvalString("cxx_defines(-DFOO -DBAR=1)")
	if got := evalWithPathTransform(e, scope); got != "FOO BAR=1" {
		t.Fatalf("evalWithPathTransform = %q", got)
	}
}
