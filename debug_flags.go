// Copyright 2012 Google Inc. All Rights Reserved.
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
	"os"
)

// verbose toggles the EXPLAIN diagnostic trace (-v on the CLI).
var verbose = false

// EXPLAIN writes a diagnostic trace line to stderr when verbose mode is on.
// No resolver or evaluator code calls it, so verbose mode prints no trace
// lines of its own.
func EXPLAIN(f string, i ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "buildfox: "+f+"\n", i...)
	}
}
