// Copyright 2025 Google LLC
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

// Package fmt formats rewritten sources for display.
package fmt

import (
	"fmt"
	"strconv"
	"strings"
)

// Number prefixes every line with its number, padded to the width of the last number.
func Number(src string) string {
	lines := strings.SplitAfter(src, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	width := len(strconv.Itoa(len(lines)))
	var b strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&b, "%0*d %s", width, i+1, line)
	}
	return b.String()
}

// Indent prefixes every line with a tabulation.
func Indent(src string) string {
	var b strings.Builder
	for line := range strings.Lines(src) {
		b.WriteByte('\t')
		b.WriteString(line)
	}
	return b.String()
}
