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

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
	return dir
}

func TestMainWritesGeneratedManifest(t *testing.T) {
	dir := chdirTemp(t)
	manifest := "rule cc\n  command = gcc -c $in -o $out\n\nbuild a.o : cc a.c\n"
	if err := os.WriteFile(filepath.Join(dir, "build.fox"), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.c"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if rc := Main("-o", "out.ninja"); rc != 0 {
		t.Fatalf("Main returned %d", rc)
	}

	out, err := os.ReadFile(filepath.Join(dir, "out.ninja"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "build a.o: cc a.c\n") {
		t.Fatalf("missing build line: %q", out)
	}
	if !strings.Contains(string(out), "generated with love by buildfox from build.fox") {
		t.Fatalf("missing banner: %q", out)
	}
}

func TestMainUnknownRuleIsError(t *testing.T) {
	dir := chdirTemp(t)
	if err := os.WriteFile(filepath.Join(dir, "build.fox"), []byte("build a.o : missing a.c\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.c"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if rc := Main("-o", "out.ninja"); rc == 0 {
		t.Fatal("expected non-zero return for unknown rule")
	}
}

func TestMainCFlagChangesDirectory(t *testing.T) {
	parent := chdirTemp(t)
	sub := filepath.Join(parent, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "build.fox"), []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if rc := Main("-C", sub, "-o", "out.ninja"); rc != 0 {
		t.Fatalf("Main returned %d", rc)
	}
	if _, err := os.Stat(filepath.Join(sub, "out.ninja")); err != nil {
		t.Fatalf("expected out.ninja under %s: %v", sub, err)
	}
}
