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
	"sort"
	"testing"
)

func newTestContext(files ...string) *Context {
	return NewContext(&VirtualFileSystem{Files: files})
}

func evalStrings(values ...string) []EvalString {
	out := make([]EvalString, len(values))
	for i, v := range values {
		out[i] = parseEvalString(v)
	}
	return out
}

func TestFindFilesLiteralPassthrough(t *testing.T) {
	ctx := newTestContext("a.c")
	scope := NewRootScope(ctx, "build.fox")
	got, err := findFilesList(ctx, scope, evalStrings("a.c", "b.c"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a.c", "b.c"}
	if !equalStrings(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestFindFilesSingleStarFilename(t *testing.T) {
	ctx := newTestContext("a.c", "b.c", "a.h")
	scope := NewRootScope(ctx, "build.fox")
	got, err := findFilesList(ctx, scope, evalStrings("*.c"))
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(got)
	want := []string{"a.c", "b.c"}
	if !equalStrings(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestFindFilesRecursiveGlob(t *testing.T) {
	ctx := newTestContext("a.c", "sub/a.c", "sub/dir/a.c", "sub/a.h")
	scope := NewRootScope(ctx, "build.fox")
	got, err := findFilesList(ctx, scope, evalStrings("**/*.c"))
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(got)
	want := []string{"a.c", "sub/a.c", "sub/dir/a.c"}
	if !equalStrings(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestFindFilesExcludedDir(t *testing.T) {
	ctx := newTestContext("sub/a.c", "out/a.c")
	scope := NewRootScope(ctx, "build.fox")
	scope.setExcludedDirs([]string{"out"})
	got, err := findFilesList(ctx, scope, evalStrings("**/*.c"))
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(got)
	want := []string{"sub/a.c"}
	if !equalStrings(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestFindFilesPairedOutput(t *testing.T) {
	ctx := newTestContext("src/a.c", "src/b.c")
	scope := NewRootScope(ctx, "build.fox")
	inputs := evalStrings("src/*.c")
	outputs := evalStrings("obj/*.o")
	gotIn, gotOut, err := findFiles(ctx, scope, inputs, outputs)
	if err != nil {
		t.Fatal(err)
	}
	wantIn := []string{"src/a.c", "src/b.c"}
	wantOut := []string{"obj/a.o", "obj/b.o"}
	if !equalStrings(gotIn, wantIn) {
		t.Fatalf("inputs = %v, want %v", gotIn, wantIn)
	}
	if !equalStrings(gotOut, wantOut) {
		t.Fatalf("outputs = %v, want %v", gotOut, wantOut)
	}
}

func TestFindFilesGeneratedFolder(t *testing.T) {
	ctx := newTestContext()
	if err := ctx.Generated.Insert("gen/sub/a.c"); err != nil {
		t.Fatal(err)
	}
	scope := NewRootScope(ctx, "build.fox")
	got, err := findFilesList(ctx, scope, evalStrings("**/*.c"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"gen/sub/a.c"}
	if !equalStrings(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
