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

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/csvcol/pkg/config"
	"github.com/walteh/csvcol/pkg/log"
	"github.com/walteh/csvcol/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// ErrUsage marks errors caused by how the command was invoked.
var ErrUsage = errors.Base("invalid usage")

// rootOpts holds the flag values of one command instance
type rootOpts struct {
	configFile string
	debug      bool
}

// NewCommand creates the csvcol command
func NewCommand() *cobra.Command {
	opts := &rootOpts{}

	cmd := &cobra.Command{
		Use:   "csvcol <input.csv> <column_name> <replacement_value> <output.csv>",
		Short: "Overwrite one column of a CSV file with a fixed value",
		Long: `csvcol copies a comma separated file, replacing every value in the named
column with the replacement value.
It will:
1. Read the header line of the input and find the column
2. Rewrite every row that has as many fields as the header
3. Report and drop rows with any other number of fields
4. Write the result to the output file, replacing it if it exists

Fields are split on every comma; quoting is not supported.
Nothing is written when the input is missing or the column does not exist.`,
		Args:          exactArgs(4),
		Version:       buildVersion(),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(setupLogging(cmd.Context(), cmd.ErrOrStderr(), opts.debug))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	cmd.SetVersionTemplate(versionTemplate())
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Errorf("%w: %s", ErrUsage, err.Error())
	})
	addRootFlags(cmd, opts)
	// flags must come before the input path; later arguments are data
	cmd.Flags().SetInterspersed(false)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, opts *rootOpts) {
	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "config file with extra replacements (.hcl, .yaml, .json)")
	cmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging")
}

// exactArgs is cobra.ExactArgs returning ErrUsage
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return errors.Errorf("%w: expected %d arguments, got %d", ErrUsage, n, len(args))
		}
		return nil
	}
}

// setupLogging attaches a zerolog logger to ctx. Structured events are only
// written with --debug; user-facing messages go through pkg/log.
func setupLogging(ctx context.Context, w io.Writer, debug bool) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	level := zerolog.Disabled
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: color.NoColor}).
		Level(level).
		With().Timestamp().Logger()
	return logger.WithContext(ctx)
}

func run(cmd *cobra.Command, opts *rootOpts, args []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	cfg, err := config.Load(ctx, args, opts.configFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	logger.Debug().Str("config", cfg.String()).Msg("starting rewrite")

	op, err := operation.NewRewriteOperation(operation.Options{
		Config:  cfg,
		Console: log.New(cmd.ErrOrStderr(), *logger),
	})
	if err != nil {
		return errors.Errorf("creating operation: %w", err)
	}

	result, err := op.Execute(ctx)
	if err != nil {
		return err
	}

	logger.Debug().
		Str("output", result.Output).
		Int("rows_written", result.RowsWritten).
		Ints("skipped_lines", result.Skipped).
		Msg("done")

	return nil
}
