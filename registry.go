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
	"path"
	"strings"
)

// splitFolderFile splits a "/"-separated relative path into its parent
// folder (always ending in "/", "" for the root) and its basename.
func splitFolderFile(p string) (folder, file string) {
	p = strings.TrimPrefix(p, "./")
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[:i+1], p[i+1:]
	}
	return "", p
}

// GeneratedRegistry tracks every build target declared as a statement
// output during the current run: folder -> set of basenames. Insertion of
// an already-present target is a hard error (spec.md §3's "a build target
// is inserted at most once").
type GeneratedRegistry struct {
	folders map[string]map[string]bool
}

func newGeneratedRegistry() *GeneratedRegistry {
	return &GeneratedRegistry{folders: map[string]map[string]bool{}}
}

// Insert registers target as a generated output, returning an error if it
// was already registered by an earlier statement.
func (g *GeneratedRegistry) Insert(target string) error {
	folder, file := splitFolderFile(target)
	files := g.folders[folder]
	if files == nil {
		files = map[string]bool{}
		g.folders[folder] = files
	}
	if files[file] {
		return &simpleErr{"duplicate build target: " + target}
	}
	files[file] = true
	return nil
}

// Contains reports whether target was already registered.
func (g *GeneratedRegistry) Contains(target string) bool {
	folder, file := splitFolderFile(target)
	return g.folders[folder][file]
}

// FilesIn returns the basenames registered directly under folder
// (a "/"-terminated or empty prefix), unsorted.
func (g *GeneratedRegistry) FilesIn(folder string) []string {
	files := g.folders[folder]
	if len(files) == 0 {
		return nil
	}
	out := make([]string, 0, len(files))
	for f := range files {
		out = append(out, f)
	}
	return out
}

// Folders returns every distinct folder prefix known to the registry, used
// by the resolver to prefix-scan the generated tree the way
// original_source/lib_util.py's glob_folders walks generated.keys().
func (g *GeneratedRegistry) Folders() []string {
	out := make([]string, 0, len(g.folders))
	for f := range g.folders {
		out = append(out, f)
	}
	return out
}

// AllFilesRegistry records every input and output file seen during the
// run, purely accretive (never errors). Nothing in the evaluator reads it
// back: the zero-match warnings come from each pattern's own match count.
type AllFilesRegistry struct {
	folders map[string]map[string]bool
}

func newAllFilesRegistry() *AllFilesRegistry {
	return &AllFilesRegistry{folders: map[string]map[string]bool{}}
}

func (a *AllFilesRegistry) Add(p string) {
	folder, file := splitFolderFile(p)
	files := a.folders[folder]
	if files == nil {
		files = map[string]bool{}
		a.folders[folder] = files
	}
	files[file] = true
}

func normalizeSlashPath(p string) string {
	return path.Clean(strings.ReplaceAll(p, "\\", "/"))
}
