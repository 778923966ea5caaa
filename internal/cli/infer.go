// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/wdamron/seqinfer"
	"github.com/wdamron/seqinfer/graphio"
	"github.com/wdamron/seqinfer/internal/config"
	"github.com/wdamron/seqinfer/ops"
)

// InferOptions holds flags of the infer command.
type InferOptions struct {
	DefaultDType  string
	MaxIterations int
}

// InferResult is the JSON output of the infer command.
type InferResult struct {
	Status string              `json:"status"` // "ok" or "error"
	Values []graphio.ValueType `json:"values"`
	Errors []Diagnostic        `json:"errors,omitempty"`
}

// Diagnostic is the JSON form of a refinement failure.
type Diagnostic struct {
	Op      string `json:"op,omitempty"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// NewInferCommand creates the infer command.
func NewInferCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InferOptions{}

	cmd := &cobra.Command{
		Use:   "infer <graph.yaml>",
		Short: "Infer the types of all values in a graph",
		Long: `Load a YAML graph description, refine the types of its sequence values until
no type changes, and print every value with its type.

Failing operations are reported one per line and leave their results unrefined.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfer(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DefaultDType, "default-dtype", "", "element type of empty sequences without a dtype attribute (default f32)")
	cmd.Flags().IntVar(&opts.MaxIterations, "max-iterations", 0, "maximum passes and loop body iterations (default 64)")

	return cmd
}

func commandError(err error) error {
	return &ExitError{Code: ExitCommandError, Err: err}
}

func runInfer(rootOpts *RootOptions, opts *InferOptions, path string, cmd *cobra.Command) error {
	cfg, cfgPath, err := loadConfig(rootOpts.Config)
	if err != nil {
		return commandError(err)
	}
	inferOpts, err := cfg.Options(config.Overrides{
		DefaultDType:  opts.DefaultDType,
		MaxIterations: opts.MaxIterations,
	})
	if err != nil {
		return commandError(err)
	}

	logWriter := io.Discard
	if rootOpts.Verbose {
		logWriter = cmd.ErrOrStderr()
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{Level: slog.LevelDebug}))
	if cfgPath != "" {
		logger.Debug("loaded config", "path", cfgPath)
	}
	inferOpts = append(inferOpts, seqinfer.WithLogger(logger))

	region, err := graphio.LoadFile(path)
	if err != nil {
		return commandError(err)
	}

	ctx := seqinfer.NewContext(inferOpts...)
	if err := ctx.Infer(region); err != nil {
		if _, ok := err.(seqinfer.Errors); !ok {
			return commandError(errors.Wrap(err, path))
		}
	}
	logger.Debug("inference finished", "passes", ctx.Passes(), "errors", len(ctx.Diagnostics()))

	if err := writeResult(cmd.OutOrStdout(), rootOpts.Format, region, ctx.Diagnostics()); err != nil {
		return commandError(err)
	}
	if n := len(ctx.Diagnostics()); n > 0 {
		return &ExitError{Code: ExitFailure, Err: errors.Errorf("inference reported %d error(s)", n)}
	}
	return nil
}

func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		cfg, err := config.LoadFile(path)
		return cfg, path, err
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, "", errors.Wrap(err, "working directory")
	}
	return config.Find(wd)
}

func writeResult(w io.Writer, format string, region *ops.Region, diags seqinfer.Errors) error {
	if format == "json" {
		result := InferResult{Status: "ok", Values: graphio.Values(region)}
		for _, d := range diags {
			diag := Diagnostic{Kind: d.Kind.String(), Message: d.Message}
			if d.Op != nil {
				diag.Op = ops.OpString(d.Op)
			}
			result.Errors = append(result.Errors, diag)
		}
		if len(diags) > 0 {
			result.Status = "error"
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(result), "write result")
	}

	if err := graphio.Dump(w, region); err != nil {
		return err
	}
	for _, d := range diags {
		if _, err := fmt.Fprintln(w, d.Error()); err != nil {
			return errors.Wrap(err, "write diagnostics")
		}
	}
	return nil
}
