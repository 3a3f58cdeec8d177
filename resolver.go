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
	"strings"

	"github.com/dlclark/regexp2"
)

// basePrefixAndRecursive splits a source pattern (pre-translation) into the
// literal directory prefix that glob_folders should expand, the optional
// "!(X)" filter carried by a recursive segment, and whether a recursive
// segment was found at all. Grounded on
// original_source/lib_util.py's glob_folders/re_recursive_glob_noslash,
// but operating on the source pattern text directly instead of on a
// post-hoc split of the compiled regex — a deliberate simplification (see
// DESIGN.md) that covers the documented/tested grammar: a literal prefix,
// then at most one recursive ("**") segment, then a final filename
// pattern. A single "*" standing alone as an intermediate directory
// segment is not expanded by folder-walking, matching the same limitation
// present in the original.
func basePrefixAndRecursive(pattern string) (prefix, filter string, hasRecursive bool) {
	segs := strings.Split(pattern, "/")
	for i, seg := range segs {
		if f, ok := recursiveSegmentFilter(seg); ok {
			return strings.Join(segs[:i], "/"), f, true
		}
	}
	if len(segs) > 1 {
		return strings.Join(segs[:len(segs)-1], "/"), "", false
	}
	return "", "", false
}

// recursiveSegmentFilter reports whether seg is a recursive-glob segment
// ("**", optionally prefixed by a "!(X)" filter) and returns its filter
// content.
func recursiveSegmentFilter(seg string) (string, bool) {
	if seg == "**" {
		return "", true
	}
	if strings.HasSuffix(seg, "**") {
		prefix := seg[:len(seg)-2]
		if strings.HasPrefix(prefix, "!(") && strings.HasSuffix(prefix, ")") {
			return prefix[2 : len(prefix)-1], true
		}
	}
	return "", false
}

// globFolders enumerates the real and generated candidate folders for a
// pattern's literal+recursive prefix, pruning by excluded-dirs and the
// recursive segment's own filter. Grounded on
// original_source/lib_util.py's glob_folders.
func globFolders(ctx *Context, scope *Scope, prefix, filter string, hasRecursive bool) ([]string, []string, error) {
	base := strings.TrimSuffix(prefix, "/")
	if !hasRecursive {
		return []string{base}, []string{base}, nil
	}

	var filterRe *regexp2.Regexp
	if filter != "" {
		re, err := regexp2.Compile(`^(?!`+strings.ReplaceAll(filter, `\`, `\\`)+`).*$`, regexp2.None)
		if err != nil {
			return nil, nil, err
		}
		filterRe = re
	}
	passesFilter := func(name string) bool {
		if scope.isExcludedDir(name) {
			return false
		}
		if filterRe == nil {
			return true
		}
		ok, _ := filterRe.MatchString(name)
		return ok
	}

	realFolders := []string{base}
	var walkReal func(dir string)
	walkReal = func(dir string) {
		dirs, _ := ctx.FileSystem.ListDir(joinSlash(scope.relPath, dir))
		sort.Strings(dirs)
		for _, d := range dirs {
			if !passesFilter(d) {
				continue
			}
			child := d
			if dir != "" {
				child = dir + "/" + d
			}
			realFolders = append(realFolders, child)
			walkReal(child)
		}
	}
	walkReal(base)

	genSet := map[string]bool{base: true}
	genPrefix := base
	if genPrefix != "" {
		genPrefix += "/"
	}
	for _, folder := range ctx.Generated.Folders() {
		f := strings.TrimSuffix(folder, "/")
		if f == base {
			continue
		}
		if genPrefix != "" && !strings.HasPrefix(f, genPrefix) {
			continue
		}
		if genPrefix == "" && f == "" {
			continue
		}
		rel := strings.TrimPrefix(f, genPrefix)
		if rel == "" {
			continue
		}
		acc := base
		for _, seg := range strings.Split(rel, "/") {
			if !passesFilter(seg) {
				break
			}
			if acc != "" {
				acc += "/"
			}
			acc += seg
			genSet[acc] = true
		}
	}
	genFolders := make([]string, 0, len(genSet))
	for f := range genSet {
		genFolders = append(genFolders, f)
	}
	sort.Strings(genFolders)
	return realFolders, genFolders, nil
}

// listCandidateFiles unions the real and generated files directly inside
// every candidate folder, relative to the manifest's rel_path, sorted
// lexicographically (spec.md §4.3 point 2, §3 "deterministic").
func listCandidateFiles(ctx *Context, scope *Scope, realFolders, genFolders []string) []string {
	seen := map[string]bool{}
	var out []string
	add := func(folder, file string) {
		rel := file
		if folder != "" {
			rel = folder + "/" + file
		}
		if !seen[rel] {
			seen[rel] = true
			out = append(out, rel)
		}
	}
	for _, folder := range realFolders {
		_, files := ctx.FileSystem.ListDir(joinSlash(scope.relPath, folder))
		for _, f := range files {
			add(folder, f)
		}
	}
	for _, folder := range genFolders {
		key := folder
		if key != "" {
			key += "/"
		}
		for _, f := range ctx.Generated.FilesIn(key) {
			add(folder, f)
		}
	}
	sort.Strings(out)
	return out
}

// joinRelPath prefixes a resolved file with the manifest's rel_path and
// normalizes slashes, mirroring find_files' final os.path.normpath pass.
func joinRelPath(relPath, file string) string {
	return normalizeSlashPath(relPath + file)
}

// resolveOnePattern runs one already-evaluated pattern string against the
// filesystem/registry, returning its matched relative files (already
// rel_path-prefixed) and their capture tuples (nil entries for a literal
// path, which passes through unchanged per spec.md §4.3).
func resolveOnePattern(ctx *Context, scope *Scope, text string, recGroups map[int]bool) (files []string, captures [][]string, err error) {
	pat, ok, err := CompilePattern(text)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return []string{joinRelPath(scope.relPath, text)}, [][]string{nil}, nil
	}
	for k := range pat.RecursiveGroups() {
		recGroups[k] = true
	}
	prefix, filter, hasRecursive := basePrefixAndRecursive(text)
	realFolders, genFolders, err := globFolders(ctx, scope, prefix, filter, hasRecursive)
	if err != nil {
		return nil, nil, err
	}
	candidates := listCandidateFiles(ctx, scope, realFolders, genFolders)
	for _, f := range candidates {
		caps, err := pat.Match(f)
		if err != nil {
			return nil, nil, err
		}
		if caps == nil {
			continue
		}
		files = append(files, joinRelPath(scope.relPath, f))
		captures = append(captures, caps)
	}
	return files, captures, nil
}

// findFiles resolves a list of input patterns and, if outputs is non-nil,
// pairs them with a list of output templates rendered from the inputs'
// combined capture tuples — the Go counterpart of
// original_source/lib_util.py's find_files / Engine.eval_find_files.
func findFiles(ctx *Context, scope *Scope, inputs, outputs []EvalString) (resolvedInputs, resolvedOutputs []string, err error) {
	recGroups := map[int]bool{}
	var matched [][]string
	for _, in := range inputs {
		text := evalWithPathTransform(in, scope)
		files, caps, err := resolveOnePattern(ctx, scope, text, recGroups)
		if err != nil {
			return nil, nil, err
		}
		resolvedInputs = append(resolvedInputs, files...)
		for _, c := range caps {
			if c != nil {
				matched = append(matched, c)
			}
		}
	}
	for i, f := range resolvedInputs {
		resolvedInputs[i] = normalizeSlashPath(f)
	}

	if outputs == nil {
		return resolvedInputs, nil, nil
	}
	for _, out := range outputs {
		text := evalWithPathTransform(out, scope)
		tmpl, ok, err := CompileOutputTemplate(text, recGroups)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			resolvedOutputs = append(resolvedOutputs, joinRelPath(scope.relPath, text))
			continue
		}
		for _, caps := range matched {
			resolvedOutputs = append(resolvedOutputs, joinRelPath(scope.relPath, tmpl.Render(caps)))
		}
	}
	for i, f := range resolvedOutputs {
		resolvedOutputs[i] = normalizeSlashPath(f)
	}
	return resolvedInputs, resolvedOutputs, nil
}

// findFilesList resolves a single list of patterns against the filesystem
// with no output pairing, used for implicit/order-only inputs, implicit
// outputs, default/include/subninja paths (spec.md §4.4 step 2).
func findFilesList(ctx *Context, scope *Scope, patterns []EvalString) ([]string, error) {
	files, _, err := findFiles(ctx, scope, patterns, nil)
	return files, err
}
