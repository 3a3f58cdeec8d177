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
	"io"
	"os"
)

// Context is the state shared by every Scope across a single top-level run,
// including every subninja child: the generated/all-files registries and
// the subninja file-naming counter. One Context per invocation of Generate,
// per spec.md §3.
type Context struct {
	Generated  *GeneratedRegistry
	AllFiles   *AllFilesRegistry
	FileSystem FileSystem

	subninjaNum int

	// GeneratedOutputs collects every subninja child's rendered text, keyed
	// by its "__gen_<N>_<slug>.ninja" filename, for the top-level driver to
	// write alongside the main output file (spec.md §4.6).
	GeneratedOutputs map[string]string

	// Stdout receives print-statement output, defaulting to the process's
	// stdout but overridable for tests.
	Stdout io.Writer
	// Warnf receives zero-match pattern warnings (spec.md §4.3, §7).
	Warnf func(format string, a ...interface{})
}

// NewContext creates the shared run state for a fresh top-level generation,
// defaulting Warnf to printing on os.Stderr so a warning is never silently
// dropped; Generate overrides it with opts.Warnf when the caller supplied
// one.
func NewContext(fs FileSystem) *Context {
	return &Context{
		Generated:        newGeneratedRegistry(),
		AllFiles:         newAllFilesRegistry(),
		FileSystem:       fs,
		GeneratedOutputs: map[string]string{},
		Stdout:           os.Stdout,
		Warnf: func(format string, a ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", a...)
		},
	}
}

// recordGeneratedOutput stores a subninja child's rendered text under its
// generated filename.
func (c *Context) recordGeneratedOutput(filename, text string) {
	c.GeneratedOutputs[filename] = text
}

// nextSubninjaNum returns the next subninja counter value and increments
// it, used to name "__gen_<N>_<slug>.ninja" files (spec.md §4.6).
func (c *Context) nextSubninjaNum() int {
	n := c.subninjaNum
	c.subninjaNum++
	return n
}

func (c *Context) warnf(format string, a ...interface{}) {
	if c.Warnf != nil {
		c.Warnf(format, a...)
	}
}
