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

// reservedRuleBindings lists the rule-body keys Ninja itself interprets
// specially (besides rspfile/rspfile_content, which are validated as a
// pair below).
var reservedRuleBindings = map[string]bool{
	"command": true, "description": true, "depfile": true, "deps": true,
	"generator": true, "pool": true, "restat": true,
	"rspfile": true, "rspfile_content": true,
}

// Rule is a named command template: its bindings are stored unevaluated
// (spec.md §4.4 "Rule declaration"), evaluated per-build against that
// build's local scope.
type Rule struct {
	Name     string
	Bindings []Binding
	Expand   bool
}

// Binding looks up a rule-body key, returning its raw EvalString.
func (r *Rule) Binding(name string) (EvalString, bool) {
	for _, b := range r.Bindings {
		if b.Name == name {
			return b.Value, true
		}
	}
	return EvalString{}, false
}

// validate enforces the rspfile/rspfile_content pairing invariant (both or
// neither), a rule-body check not explicit in spec.md's prose but present
// in both the teacher's and a real Ninja manifest's semantics (§3's
// "Supplemented" note in SPEC_FULL.md).
func (r *Rule) validate() error {
	_, hasFile := r.Binding("rspfile")
	_, hasContent := r.Binding("rspfile_content")
	if hasFile != hasContent {
		return &simpleErr{"rule " + r.Name + ": rspfile and rspfile_content must both be present or both absent"}
	}
	return nil
}
