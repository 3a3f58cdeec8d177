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

func TestCompilePatternLiteralIsNotOk(t *testing.T) {
	_, ok, err := CompilePattern("src/a.c")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("plain literal path should not compile to a pattern")
	}
}

func TestCompilePatternStarMatchesOneSegment(t *testing.T) {
	pat, ok, err := CompilePattern("src/*.c")
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	caps, err := pat.Match("src/a.c")
	if err != nil || caps == nil {
		t.Fatalf("expected match, caps=%v err=%v", caps, err)
	}
	if caps[0] != "a" {
		t.Fatalf("capture = %q, want %q", caps[0], "a")
	}
	if caps2, _ := pat.Match("src/sub/a.c"); caps2 != nil {
		t.Fatalf("* must not cross a path separator, got %v", caps2)
	}
}

func TestCompilePatternDoubleStarCrossesSegments(t *testing.T) {
	pat, ok, err := CompilePattern("src/**/*.c")
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	caps, err := pat.Match("src/a/b/c.c")
	if err != nil || caps == nil {
		t.Fatalf("expected match, caps=%v err=%v", caps, err)
	}
	if caps[0] != "a/b" {
		t.Fatalf("recursive capture = %q, want %q", caps[0], "a/b")
	}
	if caps[1] != "c" {
		t.Fatalf("trailing capture = %q, want %q", caps[1], "c")
	}
}

func TestCompilePatternRawBypassesWildcardTranslation(t *testing.T) {
	pat, ok, err := CompilePattern(`r"^src/.*\.c$"`)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if caps, err := pat.Match("src/anything.c"); err != nil || caps == nil {
		t.Fatalf("expected raw regex match, caps=%v err=%v", caps, err)
	}
}

func TestOutputTemplateFlattensRecursiveCaptureWithUnderscore(t *testing.T) {
	recGroups := map[int]bool{}
	in, ok, err := CompilePattern("src/**/*.c")
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	recGroups = in.RecursiveGroups()
	out, ok, err := CompileOutputTemplate("obj/*.o", recGroups)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	caps, err := in.Match("src/a/b/c.c")
	if err != nil || caps == nil {
		t.Fatalf("match failed: %v %v", caps, err)
	}
	if got := out.Render(caps); got != "obj/a_b_c.o" {
		t.Fatalf("rendered = %q, want %q", got, "obj/a_b_c.o")
	}
}

func TestOutputTemplatePassesExclaimAndBracketThroughLiterally(t *testing.T) {
	// original_source/lib_util.py's wildcard_regex(replace_groups=True)
	// takes its "append literal" branch before ever special-casing "!" or
	// "[", so an output template never treats !(...) / [...] as
	// group-consuming syntax the way a match pattern does.
	out, ok, err := CompileOutputTemplate("!(x)/[abc]*.o", map[int]bool{})
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if got := out.Render([]string{"a"}); got != "!(x)/[abc]a.o" {
		t.Fatalf("rendered = %q, want %q", got, "!(x)/[abc]a.o")
	}
}

func TestOutputTemplatePathSafeDoubleStar(t *testing.T) {
	in, ok, err := CompilePattern("src/**/*.c")
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	out, ok, err := CompileOutputTemplate("obj/**/*.o", in.RecursiveGroups())
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	caps, err := in.Match("src/a/b/c.c")
	if err != nil || caps == nil {
		t.Fatalf("match failed: %v %v", caps, err)
	}
	if got := out.Render(caps); got != "obj/a/b/c.o" {
		t.Fatalf("rendered = %q, want %q", got, "obj/a/b/c.o")
	}
}

func TestCompilePatternCharClass(t *testing.T) {
	pat, ok, err := CompilePattern("src/[ab].c")
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if caps, _ := pat.Match("src/a.c"); caps == nil {
		t.Fatal("expected [ab] to match a")
	}
	if caps, _ := pat.Match("src/c.c"); caps != nil {
		t.Fatal("expected [ab] to reject c")
	}
}
