// Copyright 2025 walteh LLC
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

// Package text splits delimited lines into fields, rewrites selected
// columns and joins fields back into lines.
//
// There is no quoting: a field that contains the delimiter cannot be told
// apart from two fields. Split and Join are exact inverses for any line.
package text

import "strings"

// Comma is the only delimiter the command line tool uses.
const Comma = ','

// 🔪 Split breaks line into fields on delim.
// An empty line yields a single empty field and a trailing delimiter
// yields a trailing empty field.
func Split(line string, delim rune) []string {
	return strings.Split(line, string(delim))
}

// 🧵 Join is the inverse of Split. No line terminator is appended.
func Join(fields []string, delim rune) string {
	return strings.Join(fields, string(delim))
}

// TrimLineEnding drops one trailing "\n" and then one trailing "\r".
func TrimLineEnding(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
