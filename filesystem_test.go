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

// VirtualFileSystem is an in-memory FileSystem double for tests, the same
// role ginja's test.go VirtualFileSystem plays for build-graph tests —
// here it just needs to answer directory listings, not timestamps.
type VirtualFileSystem struct {
	// Files lists every real (non-generated) file path, "/"-separated,
	// relative to the resolver's base directory.
	Files []string
	// Contents optionally maps a file path to the text ReadFile returns for
	// it; a path absent from Contents reads as an error.
	Contents map[string]string
}

func (v *VirtualFileSystem) ReadFile(path string) (string, error) {
	if text, ok := v.Contents[path]; ok {
		return text, nil
	}
	return "", &simpleErr{"no such file: " + path}
}

func (v *VirtualFileSystem) dirsAndFilesUnder(path string) (dirs map[string]bool, files []string) {
	dirs = map[string]bool{}
	prefix := path
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	for _, f := range v.Files {
		if prefix != "" && !strings.HasPrefix(f, prefix) {
			continue
		}
		rest := strings.TrimPrefix(f, prefix)
		if rest == "" {
			continue
		}
		if slash := strings.IndexByte(rest, '/'); slash >= 0 {
			dirs[rest[:slash]] = true
		} else {
			files = append(files, rest)
		}
	}
	return dirs, files
}

func (v *VirtualFileSystem) IsDir(path string) bool {
	if path == "" || path == "." {
		return true
	}
	prefix := path + "/"
	for _, f := range v.Files {
		if f == path || strings.HasPrefix(f, prefix) {
			// A file at exactly this path is not a directory.
			if f == path {
				return false
			}
			return true
		}
	}
	return false
}

func (v *VirtualFileSystem) ListDir(path string) ([]string, []string) {
	dirSet, files := v.dirsAndFilesUnder(path)
	var dirs []string
	for d := range dirSet {
		dirs = append(dirs, d)
	}
	return dirs, files
}

func TestVirtualFileSystem_ListDir(t *testing.T) {
	vfs := &VirtualFileSystem{Files: []string{"a.c", "sub/b.c", "sub/dir/c.c", "other/d.c"}}
	dirs, files := vfs.ListDir("")
	if len(files) != 1 || files[0] != "a.c" {
		t.Fatalf("root files = %v, want [a.c]", files)
	}
	wantDirs := map[string]bool{"sub": true, "other": true}
	if len(dirs) != len(wantDirs) {
		t.Fatalf("root dirs = %v, want %v", dirs, wantDirs)
	}
	for _, d := range dirs {
		if !wantDirs[d] {
			t.Fatalf("unexpected dir %q", d)
		}
	}

	subDirs, subFiles := vfs.ListDir("sub")
	if len(subFiles) != 1 || subFiles[0] != "b.c" {
		t.Fatalf("sub files = %v, want [b.c]", subFiles)
	}
	if len(subDirs) != 1 || subDirs[0] != "dir" {
		t.Fatalf("sub dirs = %v, want [dir]", subDirs)
	}
}

func TestVirtualFileSystem_IsDir(t *testing.T) {
	vfs := &VirtualFileSystem{Files: []string{"a.c", "sub/b.c"}}
	if !vfs.IsDir("sub") {
		t.Fatal("expected sub to be a directory")
	}
	if vfs.IsDir("a.c") {
		t.Fatal("a.c should not be a directory")
	}
	if vfs.IsDir("missing") {
		t.Fatal("missing should not be a directory")
	}
}
