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

package operation

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/csvcol/pkg/config"
	"github.com/walteh/csvcol/pkg/log"
	"github.com/walteh/csvcol/pkg/text"
	"gitlab.com/tozd/go/errors"
)

type harness struct {
	dir     string
	console bytes.Buffer
	ctx     context.Context
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	color.NoColor = true
	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
	return &harness{
		dir: t.TempDir(),
		ctx: logger.WithContext(context.Background()),
	}
}

func (h *harness) path(name string) string {
	return filepath.Join(h.dir, name)
}

func (h *harness) write(t *testing.T, name, content string) string {
	t.Helper()
	p := h.path(name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644), "writing %s", name)
	return p
}

func (h *harness) run(t *testing.T, cfg *config.Config) (*Result, error) {
	t.Helper()
	require.NoError(t, cfg.Validate())
	op, err := NewRewriteOperation(Options{
		Config:  cfg,
		Console: log.New(&h.console, *zerolog.Ctx(h.ctx)),
	})
	require.NoError(t, err)
	return op.Execute(h.ctx)
}

func (h *harness) assertNoTempFiles(t *testing.T) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(h.dir, ".*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches, "temporary files must not be left behind")
}

func TestRewriteOperation_Execute(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		column      string
		replacement string
		extra       []config.Replacement
		want        string
		wantSkipped []int
		wantRead    int
	}{
		{
			name:        "replace_city",
			input:       "Name,City\nAlice,Paris\nBob,Rome\n",
			column:      "City",
			replacement: "London",
			want:        "Name,City\nAlice,London\nBob,London\n",
			wantRead:    2,
		},
		{
			name:        "skip_short_row",
			input:       "A,B\n1,2\n3\n4,5\n",
			column:      "A",
			replacement: "X",
			want:        "A,B\nX,2\nX,5\n",
			wantSkipped: []int{3},
			wantRead:    3,
		},
		{
			name:        "skip_empty_line",
			input:       "A,B\n1,2\n\n4,5\n",
			column:      "B",
			replacement: "Y",
			want:        "A,B\n1,Y\n4,Y\n",
			wantSkipped: []int{3},
			wantRead:    3,
		},
		{
			name:        "skip_long_row",
			input:       "A,B\n1,2,3\n4,5\n",
			column:      "B",
			replacement: "Y",
			want:        "A,B\n4,Y\n",
			wantSkipped: []int{2},
			wantRead:    2,
		},
		{
			name:        "header_only",
			input:       "A,B\n",
			column:      "A",
			replacement: "X",
			want:        "A,B\n",
		},
		{
			name:        "header_without_newline",
			input:       "A,B",
			column:      "B",
			replacement: "X",
			want:        "A,B\n",
		},
		{
			name:        "last_row_without_newline",
			input:       "A,B\n1,2\n3,4",
			column:      "B",
			replacement: "X",
			want:        "A,B\n1,X\n3,X\n",
			wantRead:    2,
		},
		{
			name:        "crlf_input",
			input:       "A,B\r\n1,2\r\n",
			column:      "B",
			replacement: "X",
			want:        "A,B\n1,X\n",
			wantRead:    1,
		},
		{
			name:        "empty_fields_kept",
			input:       "A,B,C\n,,\n1,,3\n",
			column:      "C",
			replacement: "z",
			want:        "A,B,C\n,,z\n1,,z\n",
			wantRead:    2,
		},
		{
			name:        "duplicate_header_first_match",
			input:       "A,B,A\n1,2,3\n",
			column:      "A",
			replacement: "X",
			want:        "A,B,A\nX,2,3\n",
			wantRead:    1,
		},
		{
			name:        "empty_replacement",
			input:       "A,B\n1,2\n",
			column:      "A",
			replacement: "",
			want:        "A,B\n,2\n",
			wantRead:    1,
		},
		{
			name:        "extra_replacements",
			input:       "Name,City,Country\nAlice,Paris,FR\n",
			column:      "City",
			replacement: "London",
			extra:       []config.Replacement{{Column: "Country", Value: "UK"}},
			want:        "Name,City,Country\nAlice,London,UK\n",
			wantRead:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			cfg := &config.Config{
				Input:       h.write(t, "input.csv", tt.input),
				Column:      tt.column,
				Replacement: tt.replacement,
				Output:      h.path("output.csv"),
				FileConfig:  config.FileConfig{Replacements: tt.extra},
			}

			result, err := h.run(t, cfg)
			require.NoError(t, err)

			got, err := os.ReadFile(cfg.Output)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))

			assert.Equal(t, tt.wantRead, result.RowsRead)
			assert.Equal(t, tt.wantRead-len(tt.wantSkipped), result.RowsWritten)
			assert.Equal(t, tt.wantSkipped, result.Skipped)
			assert.Equal(t, cfg.Output, result.Output)

			if len(tt.wantSkipped) == 0 {
				assert.Empty(t, h.console.String())
			} else {
				assert.Contains(t, h.console.String(), "✗ line")
				assert.Contains(t, h.console.String(), "skipped")
			}

			h.assertNoTempFiles(t)
		})
	}
}

func TestRewriteOperation_OutputInvariants(t *testing.T) {
	h := newHarness(t)
	input := "id,name,score\n1,ann,10\n2,bob\n3,cid,30\n,,\nx,y,z,w\n"
	cfg := &config.Config{
		Input:       h.write(t, "input.csv", input),
		Column:      "name",
		Replacement: "anon",
		Output:      h.path("output.csv"),
	}

	_, err := h.run(t, cfg)
	require.NoError(t, err)

	got, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)

	outLines := text.Split(string(bytes.TrimSuffix(got, []byte("\n"))), '\n')
	inLines := text.Split(input, '\n')
	require.NotEmpty(t, outLines)
	assert.Equal(t, inLines[0], outLines[0], "header is preserved")

	header := text.NewHeader(outLines[0], text.Comma)
	for _, line := range outLines[1:] {
		fields := text.Split(line, text.Comma)
		assert.Len(t, fields, header.Len(), "every output row has the header's field count")
		assert.Equal(t, "anon", fields[1])
	}
	assert.Equal(t, []string{"id,name,score", "1,anon,10", "3,anon,30", ",anon,"}, outLines)
}

func TestRewriteOperation_Failures(t *testing.T) {
	tests := []struct {
		name      string
		input     *string
		column    string
		strict    bool
		wantError error
	}{
		{name: "input_missing", input: nil, column: "A", wantError: ErrInputMissing},
		{name: "input_empty", input: ptr(""), column: "A", wantError: ErrInputMissing},
		{name: "column_missing", input: ptr("A,B\n1,2\n"), column: "Z", wantError: text.ErrColumnNotFound},
		{name: "column_case_differs", input: ptr("A,B\n1,2\n"), column: "a", wantError: text.ErrColumnNotFound},
		{name: "strict_duplicate", input: ptr("A,B,A\n1,2,3\n"), column: "A", strict: true, wantError: text.ErrDuplicateColumn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			input := h.path("input.csv")
			if tt.input != nil {
				h.write(t, "input.csv", *tt.input)
			}
			cfg := &config.Config{
				Input:       input,
				Column:      tt.column,
				Replacement: "X",
				Output:      h.path("output.csv"),
				FileConfig:  config.FileConfig{StrictHeader: tt.strict},
			}

			result, err := h.run(t, cfg)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, errors.Is(err, tt.wantError), "got %v", err)

			_, statErr := os.Stat(cfg.Output)
			assert.True(t, os.IsNotExist(statErr), "no output file may be created")
			h.assertNoTempFiles(t)
		})
	}
}

func TestRewriteOperation_InputIsDirectory(t *testing.T) {
	h := newHarness(t)
	cfg := &config.Config{Input: h.dir, Column: "A", Output: h.path("out.csv")}

	_, err := h.run(t, cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInputMissing))
}

func TestRewriteOperation_ExistingOutput(t *testing.T) {
	t.Run("untouched_on_failure", func(t *testing.T) {
		h := newHarness(t)
		output := h.write(t, "output.csv", "previous contents\n")
		cfg := &config.Config{
			Input:  h.write(t, "input.csv", "A,B\n1,2\n"),
			Column: "Z",
			Output: output,
		}

		_, err := h.run(t, cfg)
		require.Error(t, err)

		got, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Equal(t, "previous contents\n", string(got))
		h.assertNoTempFiles(t)
	})

	t.Run("overwritten_on_success", func(t *testing.T) {
		h := newHarness(t)
		output := h.write(t, "output.csv", "previous contents\nthat is longer than the new file\n")
		require.NoError(t, os.Chmod(output, 0600))
		cfg := &config.Config{
			Input:       h.write(t, "input.csv", "A,B\n1,2\n"),
			Column:      "A",
			Replacement: "X",
			Output:      output,
		}

		_, err := h.run(t, cfg)
		require.NoError(t, err)

		got, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Equal(t, "A,B\nX,2\n", string(got))

		info, err := os.Stat(output)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "existing permissions are kept")
	})

	t.Run("in_place", func(t *testing.T) {
		h := newHarness(t)
		path := h.write(t, "data.csv", "A,B\n1,2\n")
		cfg := &config.Config{Input: path, Column: "B", Replacement: "Y", Output: path}

		_, err := h.run(t, cfg)
		require.NoError(t, err)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "A,B\n1,Y\n", string(got))
	})
}

func TestRewriteOperation_OutputDirMissing(t *testing.T) {
	h := newHarness(t)
	cfg := &config.Config{
		Input:  h.write(t, "input.csv", "A,B\n1,2\n"),
		Column: "A",
		Output: filepath.Join(h.dir, "missing", "out.csv"),
	}

	_, err := h.run(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating output file")
	assert.False(t, errors.Is(err, ErrInputMissing))
}

func TestNewRewriteOperation_Validation(t *testing.T) {
	_, err := NewRewriteOperation(Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config is required")

	_, err = NewRewriteOperation(Options{Config: &config.Config{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "console is required")
}

func ptr(s string) *string {
	return &s
}
