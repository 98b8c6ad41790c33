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

// Package diag is the core's leveled diagnostics sink. It intentionally
// stays a thin wrapper around the standard library's log package: the
// teacher's own packages (cue/load, cmd/cue/cmd) report errors by returning
// them or by a direct fmt.Fprintf to stderr, never through a third-party
// logging library, and this core follows the same practice (see
// DESIGN.md).
package diag

import (
	"fmt"
	"io"
	"log"
)

// Level classifies a diagnostic as informational, a warning, or an error.
// Reporting at any level does not stop the run: a driver keeps going after
// a resolution or load failure for one import so it can report as many
// errors as possible (per spec §7); only LevelError diagnostics are counted
// by HasErrors and ErrorCount.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Sink collects diagnostics for a single compilation session. The zero
// value has no logger and is not usable; use New.
type Sink struct {
	logger *log.Logger
	errs   int
}

// New returns a Sink writing leveled lines to w, with no timestamp prefix
// -- compiler diagnostics are read by a human scanning a terminal, not by a
// log aggregator.
func New(w io.Writer) *Sink {
	return &Sink{logger: log.New(w, "", 0)}
}

// Report records one diagnostic at the given level, formatted in the
// "<level>: <subject>: <message>" shape used throughout.
func (s *Sink) Report(level Level, subject string, err error) {
	if level == LevelError {
		s.errs++
	}
	if subject == "" {
		s.logger.Printf("%s: %v", level, err)
		return
	}
	s.logger.Printf("%s: %s: %v", level, subject, err)
}

// Infof logs an informational line with no associated error.
func (s *Sink) Infof(format string, args ...interface{}) {
	s.logger.Printf("%s: %s", LevelInfo, fmt.Sprintf(format, args...))
}

// HasErrors reports whether any LevelError diagnostic has been reported,
// which the CLI front end uses to pick between exit codes 0 and 1.
func (s *Sink) HasErrors() bool { return s.errs > 0 }

// ErrorCount returns the number of LevelError diagnostics reported so far.
func (s *Sink) ErrorCount() int { return s.errs }
