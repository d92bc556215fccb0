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
	"sort"

	"gitlab.com/tozd/go/errors"
)

// 🔄 ReplacementRule overwrites every value of Column with Value.
type ReplacementRule struct {
	Column string
	Value  string
}

// ValidateRules checks that no column is named twice. An empty column name
// is valid and matches an empty header field.
func ValidateRules(rules []ReplacementRule) error {
	seen := make(map[string]struct{}, len(rules))
	for i, rule := range rules {
		if _, ok := seen[rule.Column]; ok {
			return errors.Errorf("rule %d: column %q is replaced more than once", i, rule.Column)
		}
		seen[rule.Column] = struct{}{}
	}
	return nil
}

// 🛠️ ColumnReplacer rewrites rows that have exactly as many fields as the
// header it was built from.
type ColumnReplacer struct {
	width  int
	values map[int]string
}

// LocateFunc resolves a column name against a header.
type LocateFunc func(h *Header, name string) (int, error)

// 🏭 NewColumnReplacer resolves every rule against the header once.
// A nil locate uses (*Header).Locate.
func NewColumnReplacer(h *Header, rules []ReplacementRule, locate LocateFunc) (*ColumnReplacer, error) {
	if err := ValidateRules(rules); err != nil {
		return nil, errors.Errorf("validating rules: %w", err)
	}
	if locate == nil {
		locate = (*Header).Locate
	}

	values := make(map[int]string, len(rules))
	for _, rule := range rules {
		idx, err := locate(h, rule.Column)
		if err != nil {
			return nil, err
		}
		values[idx] = rule.Value
	}

	return &ColumnReplacer{
		width:  h.Len(),
		values: values,
	}, nil
}

// Width is the field count a row must have to be rewritten.
func (r *ColumnReplacer) Width() int {
	return r.width
}

// Indexes lists the replaced column positions in ascending order.
func (r *ColumnReplacer) Indexes() []int {
	idxs := make([]int, 0, len(r.values))
	for idx := range r.values {
		idxs = append(idxs, idx)
	}
	sort.Ints(idxs)
	return idxs
}

// 📝 Rewrite returns a copy of row with the replaced columns overwritten.
// It returns false, and no row, when the field count does not match the
// header. The input slice is never modified.
func (r *ColumnReplacer) Rewrite(row []string) ([]string, bool) {
	if len(row) != r.width {
		return nil, false
	}
	out := make([]string, len(row))
	for i, field := range row {
		if value, ok := r.values[i]; ok {
			out[i] = value
			continue
		}
		out[i] = field
	}
	return out, true
}
