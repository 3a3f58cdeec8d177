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

// Package cxxhelpers ships a handful of opt-in C/C++ ergonomics helpers a
// bundled core manifest can invoke through path transforms: splitting a
// compiler-flags string into defines or include directories, and picking
// C/C++ sources out of a resolved file list. Grounded on
// original_source/lib_util.py's cxx_defines/cxx_includedirs/cxx_findfiles;
// not part of the three core subsystems (spec.md §1's "plumbing").
package cxxhelpers

import "strings"

// tokenize splits s on whitespace, treating a '"'- or '\''-quoted run as one
// token with its quotes stripped. This is a small hand-rolled splitter, not
// a shell-lexer port: it has no escape-character handling and no nested
// quoting, just enough to separate "-Dfoo -D\"bar baz\"" into two tokens.
func tokenize(s string) []string {
	var tokens []string
	var cur strings.Builder
	var quote byte
	has := false
	flush := func() {
		if has {
			tokens = append(tokens, cur.String())
			cur.Reset()
			has = false
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			} else {
				cur.WriteByte(c)
			}
		case c == '"' || c == '\'':
			quote = c
			has = true
		case c == ' ' || c == '\t' || c == '\n':
			flush()
		default:
			cur.WriteByte(c)
			has = true
		}
	}
	flush()
	return tokens
}

func stripPrefixed(tokens []string, prefixes ...string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		for _, p := range prefixes {
			if strings.HasPrefix(tok, p) {
				tok = tok[len(p):]
				break
			}
		}
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// Defines splits a compiler-flags string into preprocessor define values,
// stripping a leading "-D" or "/D" from each token.
func Defines(s string) []string {
	return stripPrefixed(tokenize(s), "-D", "/D")
}

// IncludeDirs splits a compiler-flags string into include directories,
// stripping a leading "-I" or "/I" from each token.
func IncludeDirs(s string) []string {
	return stripPrefixed(tokenize(s), "-I", "/I")
}

// sourceExtensions lists the file extensions FindFiles treats as C/C++
// sources or headers of interest, lowercased for case-insensitive matching.
var sourceExtensions = []string{".c", ".cpp", ".cxx", ".c++", ".cc", ".h", ".hpp", ".hxx", ".in"}

// FindFiles filters a resolved path list down to C/C++ sources and headers.
func FindFiles(paths []string) []string {
	var out []string
	for _, p := range paths {
		lower := strings.ToLower(p)
		for _, ext := range sourceExtensions {
			if strings.HasSuffix(lower, ext) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
