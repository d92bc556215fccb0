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

package main

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/csvcol/pkg/log"
	"github.com/walteh/csvcol/pkg/operation"
	"github.com/walteh/csvcol/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// Exit codes
const (
	exitOK            = 0
	exitUsage         = 1
	exitInputMissing  = 2
	exitColumnMissing = 3
	exitFailure       = 4
)

func main() {
	os.Exit(Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// Run executes the command with args and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	ctx = cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	console := log.New(stderr, *zerolog.Ctx(ctx))

	switch {
	case errors.Is(err, ErrUsage):
		console.Error(err.Error())
		_, _ = io.WriteString(stderr, cmd.UsageString())
		return exitUsage
	case errors.Is(err, operation.ErrInputMissing):
		zerolog.Ctx(ctx).Debug().Err(err).Msg("input")
		console.Error(operation.ErrInputMissing.Error())
		return exitInputMissing
	case errors.Is(err, text.ErrDuplicateColumn):
		zerolog.Ctx(ctx).Debug().Err(err).Msg("header")
		console.Error(text.ErrDuplicateColumn.Error())
		return exitColumnMissing
	case errors.Is(err, text.ErrColumnNotFound):
		zerolog.Ctx(ctx).Debug().Err(err).Msg("header")
		console.Error(text.ErrColumnNotFound.Error())
		return exitColumnMissing
	default:
		console.Error(err.Error())
		return exitFailure
	}
}
