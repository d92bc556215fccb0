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
	"bufio"
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/csvcol/pkg/config"
	"github.com/walteh/csvcol/pkg/log"
	"github.com/walteh/csvcol/pkg/text"
	"gitlab.com/tozd/go/errors"
)

var _ Operation = (*RewriteOperation)(nil)

// 📦 RewriteOperation overwrites the configured columns of every
// well-formed row
type RewriteOperation struct {
	config  *config.Config
	console *log.Logger
	delim   rune
}

// 🏭 NewRewriteOperation creates a new rewrite operation
func NewRewriteOperation(opts Options) (*RewriteOperation, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &RewriteOperation{
		config:  opts.Config,
		console: opts.Console,
		delim:   text.Comma,
	}, nil
}

// 🏃 Execute runs the rewrite. The output is only created when the header
// and every replacement column were resolved and all rows were written.
func (op *RewriteOperation) Execute(ctx context.Context) (*Result, error) {
	logger := zerolog.Ctx(ctx).With().
		Str("input", op.config.Input).
		Str("output", op.config.Output).
		Logger()

	in, err := openInput(op.config.Input)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	reader := bufio.NewReader(in)

	headerLine, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Errorf("%w: reading header: %s", ErrInputMissing, err.Error())
	}
	if headerLine == "" {
		return nil, errors.Errorf("%w: %s is empty", ErrInputMissing, op.config.Input)
	}

	header := text.NewHeader(text.TrimLineEnding(headerLine), op.delim)
	if dups := header.Duplicates(); len(dups) > 0 {
		logger.Debug().Strs("columns", dups).Msg("header has duplicate column names")
	}

	var locate text.LocateFunc = (*text.Header).Locate
	if op.config.StrictHeader {
		locate = (*text.Header).LocateStrict
	}

	replacer, err := text.NewColumnReplacer(header, op.config.Rules(), locate)
	if err != nil {
		return nil, errors.Errorf("resolving columns: %w", err)
	}
	logger.Debug().Ints("columns", replacer.Indexes()).Int("width", replacer.Width()).Msg("columns resolved")

	out, err := createAtomic(op.config.Output)
	if err != nil {
		return nil, errors.Errorf("creating output file: %w", err)
	}
	defer out.Discard()

	if err := out.WriteLine(text.Join(header.Fields(), op.delim)); err != nil {
		return nil, err
	}

	result := &Result{Output: op.config.Output}
	lineNo := 1
	for {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, errors.Errorf("reading line %d: %w", lineNo+1, readErr)
		}
		if line == "" {
			break
		}
		lineNo++
		result.RowsRead++

		raw := text.TrimLineEnding(line)
		row := text.Split(raw, op.delim)
		rewritten, ok := replacer.Rewrite(row)
		if !ok {
			result.Skipped = append(result.Skipped, lineNo)
			op.console.LogSkippedRow(log.SkippedRow{
				Line:   lineNo,
				Fields: len(row),
				Want:   replacer.Width(),
				Text:   raw,
			})
			continue
		}

		if err := out.WriteLine(text.Join(rewritten, op.delim)); err != nil {
			return nil, err
		}
		result.RowsWritten++
	}

	if err := out.Commit(); err != nil {
		return nil, errors.Errorf("writing output file: %w", err)
	}

	if n := len(result.Skipped); n > 0 {
		op.console.Warningf("skipped %d of %d rows with a field count other than %d", n, result.RowsRead, replacer.Width())
	}

	logger.Debug().
		Int("rows_read", result.RowsRead).
		Int("rows_written", result.RowsWritten).
		Int("rows_skipped", len(result.Skipped)).
		Msg("rewrite complete")

	return result, nil
}

// openInput opens path for reading. Anything that cannot be read as a
// regular file is reported as ErrInputMissing.
func openInput(path string) (*os.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Errorf("%w: %s", ErrInputMissing, err.Error())
	}
	if info.IsDir() {
		return nil, errors.Errorf("%w: %s is a directory", ErrInputMissing, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Errorf("%w: %s", ErrInputMissing, err.Error())
	}
	return f, nil
}
