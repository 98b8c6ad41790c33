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

// Package errors defines the typed error kinds raised by the path
// resolution core (spec: remapping parser, VFS, resolver, loaders), plus
// thin wrappers around the standard library's errors.Is/As/New so callers
// need only import one errors package.
package errors

import "errors"

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's chain matching target's type.
func As(err error, target interface{}) bool { return errors.As(err, target) }

// New is a convenience wrapper around the standard library's errors.New.
func New(msg string) error { return errors.New(msg) }

// Kind identifies which of the core's error conditions an Error reports,
// letting a driver branch on kind without string-matching Error().
type Kind string

const (
	// KindInvalidRemapping is raised by the remapping parser: empty prefix,
	// or otherwise malformed rule syntax.
	KindInvalidRemapping Kind = "InvalidRemapping"

	// KindDuplicateSourceUnit is raised by the VFS on insertion of differing
	// bytes under an already-present SUN.
	KindDuplicateSourceUnit Kind = "DuplicateSourceUnit"

	// KindFileNotFound is raised by the loader dispatcher when no callback
	// produced bytes for a SUN.
	KindFileNotFound Kind = "FileNotFound"

	// KindIOError is raised by loaders when a read fails after the file was
	// located.
	KindIOError Kind = "IOError"

	// KindForbidden is raised by the Host Filesystem Loader when a resolved
	// path lies outside every allow-listed directory.
	KindForbidden Kind = "Forbidden"

	// KindImportPathEmpty is raised by the resolver when the import literal
	// was the empty string.
	KindImportPathEmpty Kind = "ImportPathEmpty"
)

// InvalidRemappingError reports a malformed remapping rule.
type InvalidRemappingError struct {
	Rule   string
	Reason string
}

func (e *InvalidRemappingError) Kind() Kind { return KindInvalidRemapping }

func (e *InvalidRemappingError) Error() string {
	return "invalid remapping " + quote(e.Rule) + ": " + e.Reason
}

// DuplicateSourceUnitError reports a re-insert of differing content under
// an existing Source Unit Name.
type DuplicateSourceUnitError struct {
	SUN string
}

func (e *DuplicateSourceUnitError) Kind() Kind { return KindDuplicateSourceUnit }

func (e *DuplicateSourceUnitError) Error() string {
	return "duplicate source unit " + quote(e.SUN) + " with differing content"
}

// FileNotFoundError reports that no callback (including the Host Filesystem
// Loader, if installed) produced bytes for a SUN.
type FileNotFoundError struct {
	SUN string
}

func (e *FileNotFoundError) Kind() Kind { return KindFileNotFound }

func (e *FileNotFoundError) Error() string {
	return "file not found: " + quote(e.SUN)
}

// IOError reports a read failure after a loader located the file.
type IOError struct {
	SUN     string
	Path    string
	Details error
}

func (e *IOError) Kind() Kind { return KindIOError }

func (e *IOError) Unwrap() error { return e.Details }

func (e *IOError) Error() string {
	msg := "I/O error loading " + quote(e.SUN)
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.Details != nil {
		msg += ": " + e.Details.Error()
	}
	return msg
}

// ForbiddenError reports that a resolved disk path fell outside every
// allow-listed directory.
type ForbiddenError struct {
	SUN  string
	Path string
}

func (e *ForbiddenError) Kind() Kind { return KindForbidden }

func (e *ForbiddenError) Error() string {
	return quote(e.SUN) + " resolves to " + quote(e.Path) + ", which is outside the allowed directories"
}

// ImportPathEmptyError reports that an import literal in source was the
// empty string.
type ImportPathEmptyError struct {
	Importer string
}

func (e *ImportPathEmptyError) Kind() Kind { return KindImportPathEmpty }

func (e *ImportPathEmptyError) Error() string {
	return "empty import path in " + quote(e.Importer)
}

func quote(s string) string {
	return "\"" + s + "\""
}
