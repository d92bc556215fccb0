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
	"context"

	"github.com/walteh/csvcol/pkg/config"
	"github.com/walteh/csvcol/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// ErrInputMissing is returned when the input file is absent, unreadable or empty.
var ErrInputMissing = errors.Base("input file missing")

// 🎯 Operation is a single run over one input file
type Operation interface {
	Execute(ctx context.Context) (*Result, error)
}

// 🔧 Options contains configuration for an operation
type Options struct {
	// Config describes the files and the replacements
	Config *config.Config
	// Console receives user-facing diagnostics
	Console *log.Logger
}

// 📊 Result summarises a successful run
type Result struct {
	Output      string // path that was written
	RowsRead    int    // data rows read, header excluded
	RowsWritten int    // data rows written, header excluded
	Skipped     []int  // 1-based line numbers of rows left out
}

func (o Options) validate() error {
	if o.Config == nil {
		return errors.Errorf("config is required")
	}
	if o.Console == nil {
		return errors.Errorf("console is required")
	}
	return nil
}
