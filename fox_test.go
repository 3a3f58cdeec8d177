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
	"testing"
)

func TestGenerateRunsBundledCoreBeforeMainFile(t *testing.T) {
	fs := &VirtualFileSystem{
		Files:    []string{"build.fox", "main.c"},
		Contents: map[string]string{"build.fox": "build main.o : cc main.c\n"},
	}
	result, err := Generate(fs, Options{InputFile: "build.fox"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// The bundled core declares "cc", so the main manifest can reference it
	// without redeclaring the rule.
	if !strings.Contains(result.MainText, "build main.o: cc main.c\n") {
		t.Fatalf("missing build line: %q", result.MainText)
	}
	if !strings.Contains(result.MainText, "rule cc\n") {
		t.Fatalf("expected core's cc rule to be present: %q", result.MainText)
	}
}

func TestGenerateHeaderPlacedAfterCoreBeforeMainContent(t *testing.T) {
	fs := &VirtualFileSystem{
		Files:    []string{"build.fox"},
		Contents: map[string]string{"build.fox": "x = 1\n"},
	}
	result, err := Generate(fs, Options{InputFile: "build.fox"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	coreIdx := strings.Index(result.MainText, "rule cc")
	headerIdx := strings.Index(result.MainText, "generated with love by buildfox from build.fox")
	xIdx := strings.Index(result.MainText, "x = 1")
	if coreIdx < 0 || headerIdx < 0 || xIdx < 0 {
		t.Fatalf("missing expected section: %q", result.MainText)
	}
	if !(coreIdx < headerIdx && headerIdx < xIdx) {
		t.Fatalf("expected core, then header, then main content in that order: %q", result.MainText)
	}
}

func TestGenerateCoreTextOverride(t *testing.T) {
	fs := &VirtualFileSystem{
		Files:    []string{"build.fox"},
		Contents: map[string]string{"build.fox": "build out : mytool in.txt\n"},
	}
	result, err := Generate(fs, Options{
		InputFile: "build.fox",
		CoreText:  "rule mytool\n  command = mytool $in $out\n",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(result.MainText, "rule mytool\n") {
		t.Fatalf("expected overridden core's rule, got: %q", result.MainText)
	}
	if strings.Contains(result.MainText, "rule cc\n") {
		t.Fatalf("bundled core should not appear once overridden: %q", result.MainText)
	}
}

func TestGenerateCollectsSubninjaOutputs(t *testing.T) {
	fs := &VirtualFileSystem{
		Files: []string{"build.fox", "sub/child.fox"},
		Contents: map[string]string{
			"build.fox":     "subninja sub/child.fox\n",
			"sub/child.fox": "y = 2\n",
		},
	}
	result, err := Generate(fs, Options{InputFile: "build.fox"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(result.Generated) != 1 {
		t.Fatalf("expected one generated child file, got %d", len(result.Generated))
	}
	for _, text := range result.Generated {
		if !strings.Contains(text, "y = 2") {
			t.Fatalf("child text missing its own content: %q", text)
		}
	}
}

func TestGenerateReportsMetricsWhenRequested(t *testing.T) {
	fs := &VirtualFileSystem{
		Files:    []string{"build.fox"},
		Contents: map[string]string{"build.fox": "x = 1\n"},
	}
	metrics := NewMetrics()
	if _, err := Generate(fs, Options{InputFile: "build.fox", Metrics: metrics}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	names := metrics.sortedNames()
	if len(names) == 0 {
		t.Fatal("expected Generate to record at least one metric")
	}
}
