// Copyright 2013 Google Inc. All Rights Reserved.
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
	"strconv"
	"strings"
)

// BuildFoxVersion is the running generator's own version, compared against
// a manifest's `buildfox_required_version` assignment (spec.md §3, §4.7
// reserved variables).
const BuildFoxVersion = "1.0.0"

// ParseVersion splits the major/minor components of a "X.Y..." version
// string, ignoring anything past the second dot.
func ParseVersion(version string) (int, int) {
	end := strings.Index(version, ".")
	if end == -1 {
		end = len(version)
	}
	major, _ := strconv.Atoi(keepNumbers(version[:end]))
	minor := 0
	if end != len(version) {
		start := end + 1
		end = strings.Index(version[start:], ".")
		if end == -1 {
			end = len(version)
		} else {
			end += start
		}
		minor, _ = strconv.Atoi(keepNumbers(version[start:end]))
	}
	return major, minor
}

func keepNumbers(s string) string {
	i := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if i != -1 {
		return s[:i]
	}
	return s
}

// CheckRequiredVersion validates a manifest's `buildfox_required_version`
// assignment against BuildFoxVersion, failing fast the moment the
// assignment is evaluated (spec.md §4.7 "Version errors").
func CheckRequiredVersion(version string) error {
	binMajor, binMinor := ParseVersion(BuildFoxVersion)
	fileMajor, fileMinor := ParseVersion(version)
	if binMajor < fileMajor || (binMajor == fileMajor && binMinor < fileMinor) {
		return fmt.Errorf("buildfox version (%s) is older than the build file's required version (%s)", BuildFoxVersion, version)
	}
	return nil
}
