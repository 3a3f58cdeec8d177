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
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/buildfox/buildfox"
)

func main() {
	os.Exit(Main())
}

// fatalf logs a fatal message to stderr and exits 1.
func fatalf(msg string, s ...interface{}) {
	fmt.Fprintf(os.Stderr, "buildfox: fatal: ")
	fmt.Fprintf(os.Stderr, msg, s...)
	fmt.Fprintf(os.Stderr, "\n")
	os.Exit(1)
}

// warningf logs a warning message to stderr.
func warningf(msg string, s ...interface{}) {
	fmt.Fprintf(os.Stderr, "buildfox: warning: ")
	fmt.Fprintf(os.Stderr, msg, s...)
	fmt.Fprintf(os.Stderr, "\n")
}

// errorf logs an error message to stderr.
func errorf(msg string, s ...interface{}) {
	fmt.Fprintf(os.Stderr, "buildfox: error: ")
	fmt.Fprintf(os.Stderr, msg, s...)
	fmt.Fprintf(os.Stderr, "\n")
}

func usage(fs *flag.FlagSet) func() {
	return func() {
		fmt.Fprintf(os.Stderr, `usage: buildfox [options] [manifest]

Compiles a .fox build manifest into a Ninja build manifest.

manifest defaults to "build.fox".

options:
`)
		fs.PrintDefaults()
	}
}

// Main implements the CLI: it is factored out of main() so tests can drive
// it without an os.Exit, the same split the teacher's cmd/nin/main.go uses
// between main() and Main(). It parses args rather than relying on the
// package-level flag.CommandLine, so a test can invoke it more than once
// in a single process.
func Main(args ...string) int {
	fs := flag.NewFlagSet("buildfox", flag.ContinueOnError)
	output := fs.String("o", "build.ninja", "write the generated manifest to this file")
	workingDir := fs.String("C", "", "change to DIR before doing anything else")
	corePath := fs.String("core", "", "override the bundled core manifest")
	stats := fs.Bool("stats", false, "print generator stage timings")
	verbose := fs.Bool("v", false, "turn on the EXPLAIN trace flag (no resolution step emits trace lines)")
	fs.Usage = usage(fs)
	if len(args) == 0 {
		args = os.Args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *workingDir != "" {
		if err := os.Chdir(*workingDir); err != nil {
			fatalf("%s", err)
		}
	}

	input := "build.fox"
	if fs.NArg() > 0 {
		input = fs.Arg(0)
	}

	var coreText string
	if *corePath != "" {
		b, err := os.ReadFile(*corePath)
		if err != nil {
			fatalf("reading %s: %s", *corePath, err)
		}
		coreText = string(b)
	}

	var metrics *fox.Metrics
	if *stats {
		metrics = fox.NewMetrics()
	}

	result, err := fox.Generate(fox.RealFileSystem{}, fox.Options{
		InputFile: input,
		CoreText:  coreText,
		Verbose:   *verbose,
		Metrics:   metrics,
		Warnf:     warningf,
	})
	if err != nil {
		errorf("%s", err)
		return 1
	}

	if err := os.WriteFile(*output, []byte(result.MainText), 0o644); err != nil {
		fatalf("writing %s: %s", *output, err)
	}
	outDir := filepath.Dir(*output)
	for name, text := range result.Generated {
		path := filepath.Join(outDir, name)
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			fatalf("writing %s: %s", path, err)
		}
	}

	if metrics != nil {
		metrics.Report(os.Stdout)
	}
	return 0
}
