// Copyright 2018 The CUE Authors
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

// Package cmd implements the solc-vfs command line surface described in
// spec §6: positional source paths, --base-path, remapping arguments
// interleaved with positionals, "-" for stdin, and --standard-json.
//
// Grounded on cmd/cue/cmd's cobra-based command tree; the CLI argument
// grammar documented in cue/load/config.go's FromArgsUsage constant is the
// model for usageMessage below.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	pcerrors "github.com/solc-go/pathcore/errors"
	"github.com/solc-go/pathcore/diag"
	"github.com/solc-go/pathcore/session"
	"github.com/solc-go/pathcore/standardjson"
	"github.com/solc-go/pathcore/sun"
)

const usageMessage = `
solc-vfs resolves import paths and loads source files the same way the
compiler's path resolution core does, independent of any parser.

<args> is a list of arguments of the form:

  <path>*  <remapping>*  [-]

A remapping has the form [context:]prefix=[target] and may be interleaved
freely with source paths; any argument containing an unescaped '=' is
treated as a remapping, never as a file name. The single token "-" reads
one source from standard input, stored under the Source Unit Name
"<stdin>".
`

// Exit codes, per spec §6.
const (
	ExitSuccess      = 0
	ExitCompileError = 1
	ExitUsageError   = 2
)

// New returns the root *cobra.Command for solc-vfs.
func New() *cobra.Command {
	var (
		basePath     string
		standardJSON bool
		imports      []string
	)

	root := &cobra.Command{
		Use:           "solc-vfs [flags] <args>...",
		Short:         "Resolve imports and load sources through the path resolution core",
		Long:          usageMessage,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return run(c, args, basePath, standardJSON, imports)
		},
	}

	root.Flags().StringVar(&basePath, "base-path", "", "directory prepended, as a literal string join, to every source unit name by the host filesystem loader")
	root.Flags().BoolVar(&standardJSON, "standard-json", false, "read a {language, sources, settings} document from standard input instead of positional arguments")
	root.Flags().StringArrayVar(&imports, "import", nil, "simulate an import literal encountered while parsing an importer, as importer=literal; repeatable")

	return root
}

// run is the single RunE body for solc-vfs; it returns an error tagged
// with an exit code via errExit so main can translate it, keeping this
// function itself free of os.Exit calls and therefore testable.
func run(c *cobra.Command, args []string, basePath string, standardJSON bool, imports []string) error {
	sess := session.New()
	sink := diag.New(c.ErrOrStderr())
	sink.Infof("session %s", sess.ID)

	if basePath != "" {
		sess.SetBasePath(basePath)
	}

	if standardJSON {
		if len(args) > 0 {
			return errExit(ExitUsageError, fmt.Errorf("--standard-json does not take positional arguments"))
		}
		if err := populateStandardJSON(sess, c.InOrStdin()); err != nil {
			return errExit(ExitUsageError, err)
		}
	} else {
		if err := populateArgs(sess, args, c.InOrStdin()); err != nil {
			return errExit(ExitUsageError, err)
		}
	}

	ctx := context.Background()
	for _, spec := range imports {
		importer, literal, ok := strings.Cut(spec, "=")
		if !ok {
			return errExit(ExitUsageError, fmt.Errorf("--import value %q must have the form importer=literal", spec))
		}
		resolved, err := sess.Resolve(sun.Name(importer), literal)
		if err != nil {
			sink.Report(diag.LevelError, importer, err)
			continue
		}
		if _, err := sess.Load(ctx, resolved); err != nil {
			sink.Report(diag.LevelError, resolved.String(), err)
			continue
		}
		sink.Infof("%s imports %q -> %s (loaded)", importer, literal, resolved)
	}

	if sink.HasErrors() {
		return errExit(ExitCompileError, fmt.Errorf("%d error(s)", sink.ErrorCount()))
	}
	return nil
}

// populateArgs classifies each positional argument as a remapping (contains
// an unescaped '='), the stdin marker "-", or a source file path, and
// populates sess accordingly, left to right so remapping ordinals match
// declaration order.
func populateArgs(sess *session.Session, args []string, stdin io.Reader) error {
	sawStdin := false
	for _, arg := range args {
		switch {
		case arg == "-":
			if sawStdin {
				return fmt.Errorf("at most one \"-\" (stdin) source is allowed")
			}
			sawStdin = true
			data, err := io.ReadAll(stdin)
			if err != nil {
				return fmt.Errorf("reading standard input: %w", err)
			}
			if err := sess.InsertStdin(data); err != nil {
				return err
			}
		case looksLikeRemapping(arg):
			if err := sess.AddRemapping(arg); err != nil {
				return err
			}
		default:
			data, err := os.ReadFile(arg)
			if err != nil {
				return fmt.Errorf("reading %q: %w", arg, err)
			}
			name := sun.Name(filepathToSUN(arg))
			if err := sess.InsertCLI(name, data, arg); err != nil {
				return err
			}
		}
	}
	return nil
}

func populateStandardJSON(sess *session.Session, stdin io.Reader) error {
	data, err := io.ReadAll(stdin)
	if err != nil {
		return fmt.Errorf("reading standard input: %w", err)
	}
	doc, err := standardjson.Decode(data)
	if err != nil {
		return err
	}
	return standardjson.Populate(sess, doc)
}

// looksLikeRemapping reports whether arg should be parsed as a remapping
// rule rather than a file path: it contains an unescaped '=', the only
// character sequence a remapping and a plausible file path can never both
// contain (an '=' is not a valid character in any of the example fixtures'
// file names).
func looksLikeRemapping(arg string) bool {
	for i := 0; i < len(arg); i++ {
		if arg[i] == '\\' {
			i++
			continue
		}
		if arg[i] == '=' {
			return true
		}
	}
	return false
}

// filepathToSUN rewrites OS-specific separators in an explicitly supplied
// CLI path to "/", per spec §4.B's initial population rule; it performs no
// other normalization.
func filepathToSUN(p string) string {
	return strings.ReplaceAll(p, string(os.PathSeparator), "/")
}

// exitError carries the process exit code a CLI error should produce.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func errExit(code int, err error) error {
	return &exitError{code: code, err: err}
}

// ExitCode extracts the process exit code from an error returned by
// Execute, defaulting to ExitCompileError for an untagged error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ee *exitError
	if pcerrors.As(err, &ee) {
		return ee.code
	}
	return ExitCompileError
}

// Main runs the root command against os.Args and returns the process exit
// code, for use both by package main and by testscript's RunMain.
func Main() int {
	root := New()
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "solc-vfs:", err)
	}
	return ExitCode(err)
}
