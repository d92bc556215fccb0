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

package text

import (
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrColumnNotFound is returned when a column name is absent from the header.
	ErrColumnNotFound = errors.Base("column name doesn't exist in the input file")

	// ErrDuplicateColumn is returned by strict lookups when a name appears more than once.
	ErrDuplicateColumn = errors.Base("duplicate column name in the input file")
)

// 📋 Header is the first row of a file. It is immutable once built.
type Header struct {
	line   string
	delim  rune
	fields []string
}

// 🏭 NewHeader tokenizes the header line.
func NewHeader(line string, delim rune) *Header {
	return &Header{
		line:   line,
		delim:  delim,
		fields: Split(line, delim),
	}
}

// Line returns the header exactly as read, without its line ending.
func (h *Header) Line() string {
	return h.line
}

// Len is the number of fields every data row must have.
func (h *Header) Len() int {
	return len(h.fields)
}

// Fields returns a copy of the column names.
func (h *Header) Fields() []string {
	out := make([]string, len(h.fields))
	copy(out, h.fields)
	return out
}

// 🔍 Locate returns the zero-based index of the first field equal to name.
// The comparison is exact and case-sensitive.
func (h *Header) Locate(name string) (int, error) {
	for i, field := range h.fields {
		if field == name {
			return i, nil
		}
	}
	return -1, errors.Errorf("%w: %q", ErrColumnNotFound, name)
}

// LocateStrict is Locate, but fails if name appears more than once.
func (h *Header) LocateStrict(name string) (int, error) {
	idx, err := h.Locate(name)
	if err != nil {
		return -1, err
	}
	for _, field := range h.fields[idx+1:] {
		if field == name {
			return -1, errors.Errorf("%w: %q", ErrDuplicateColumn, name)
		}
	}
	return idx, nil
}

// Duplicates lists every name that appears more than once, in first-seen order.
func (h *Header) Duplicates() []string {
	seen := make(map[string]int, len(h.fields))
	var dups []string
	for _, field := range h.fields {
		seen[field]++
		if seen[field] == 2 {
			dups = append(dups, field)
		}
	}
	return dups
}
