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
	"os"
	"path/filepath"
	"sort"
)

// FileSystem is the read-only directory-listing abstraction the resolver
// walks. Abstracted so tests can substitute an in-memory tree instead of
// touching disk, the same role ginja's DiskInterface plays for the real
// build executor — grounded on its shape, narrowed to what a generator
// needs (no stat/mtime, no writes beyond the final output).
type FileSystem interface {
	// IsDir reports whether path names a directory.
	IsDir(path string) bool
	// ListDir returns the direct child directory names and file names
	// under path, unsorted.
	ListDir(path string) (dirs []string, files []string)
	// ReadFile returns the full contents of path, for `include`/`subninja`
	// targets and the top-level manifest itself.
	ReadFile(path string) (string, error)
}

// RealFileSystem implements FileSystem against the OS.
type RealFileSystem struct{}

func (RealFileSystem) IsDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

func (RealFileSystem) ListDir(dir string) ([]string, []string) {
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil
	}
	var dirs, files []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		} else {
			files = append(files, e.Name())
		}
	}
	return dirs, files
}

func (RealFileSystem) ReadFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	return string(b), err
}

// joinSlash joins path segments with "/" and normalizes, matching spec.md
// §6's "forward-slash normalization mandatory" requirement regardless of
// host OS.
func joinSlash(elem ...string) string {
	return filepath.ToSlash(filepath.Join(elem...))
}

func sortStrings(s []string) []string {
	sort.Strings(s)
	return s
}
