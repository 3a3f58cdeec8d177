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

func TestEditDistance_Empty(t *testing.T) {
	if got := editDistance("", "ninja", true, 0); got != 5 {
		t.Errorf("got %d, want 5", got)
	}
	if got := editDistance("ninja", "", true, 0); got != 5 {
		t.Errorf("got %d, want 5", got)
	}
	if got := editDistance("", "", true, 0); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
}

func TestEditDistance_MaxDistance(t *testing.T) {
	for maxDistance := 1; maxDistance < 7; maxDistance++ {
		got := editDistance("abcdefghijklmnop", "ponmlkjihgfedcba", true, maxDistance)
		if got != maxDistance+1 {
			t.Errorf("maxDistance=%d: got %d, want %d", maxDistance, got, maxDistance+1)
		}
	}
}

func TestEditDistance_AllowReplacements(t *testing.T) {
	if got := editDistance("ninja", "njnja", true, 0); got != 1 {
		t.Errorf("got %d, want 1", got)
	}
	if got := editDistance("njnja", "ninja", true, 0); got != 1 {
		t.Errorf("got %d, want 1", got)
	}
	if got := editDistance("ninja", "njnja", false, 0); got != 2 {
		t.Errorf("got %d, want 2", got)
	}
	if got := editDistance("njnja", "ninja", false, 0); got != 2 {
		t.Errorf("got %d, want 2", got)
	}
}

func TestEditDistance_Basics(t *testing.T) {
	if got := editDistance("build_fox", "build_fox", true, 0); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
	if got := editDistance("build_fo", "build_fox", true, 0); got != 1 {
		t.Errorf("got %d, want 1", got)
	}
	if got := editDistance("build_fox", "build_fo", true, 0); got != 1 {
		t.Errorf("got %d, want 1", got)
	}
}

func TestSuggestName(t *testing.T) {
	candidates := []string{"cc", "cxx", "link"}
	if got := suggestName("cxz", candidates); got != " (did you mean 'cxx'?)" {
		t.Errorf("got %q", got)
	}
	if got := suggestName("completely_unrelated_name_xyz", candidates); got != "" {
		t.Errorf("got %q, want no suggestion", got)
	}
}
