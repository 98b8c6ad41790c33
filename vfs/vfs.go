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

// Package vfs implements the Virtual Filesystem: an in-memory registry
// keyed by Source Unit Name that never itself touches a real filesystem.
// The loader dispatcher populates it; the resolver never touches it.
//
// A VFS belongs to exactly one compilation session and is accessed
// cooperatively within it (see the session package); it is not safe for
// concurrent use by multiple goroutines without external synchronization.
package vfs

import (
	"bytes"

	pcerrors "github.com/solc-go/pathcore/errors"
	"github.com/solc-go/pathcore/sun"
)

// Origin tags how a Unit's bytes were obtained.
type Origin string

const (
	OriginCLI         Origin = "cli"
	OriginJSONContent Origin = "json-content"
	OriginJSONURL     Origin = "json-url"
	OriginStdin       Origin = "stdin"
	OriginCallback    Origin = "callback"
)

// Unit is the record the VFS keeps for every Source Unit Name it holds.
// It is immutable once inserted.
type Unit struct {
	SUN     sun.Name
	Content []byte
	Origin  Origin

	// DiskPath is an optional hint to a resolved on-disk path, used only for
	// diagnostics; it has no bearing on identity or lookup.
	DiskPath string

	// URL and Callback record provenance when Origin is OriginCallback:
	// Callback names the callback that produced the bytes, and URL is the
	// entry of the urls fallback list it was handed, or empty when it was
	// handed the SUN directly (see the loader package).
	URL      string
	Callback string
}

// VFS is the Source Unit registry. The zero value is not usable; use New.
type VFS struct {
	units map[sun.Name]*Unit
	order []sun.Name
}

// New returns an empty, ready to use VFS.
func New() *VFS {
	return &VFS{units: make(map[sun.Name]*Unit)}
}

// Insert adds bytes under the given SUN with the given origin. Re-inserting
// under an existing SUN with byte-identical content is a no-op; re-inserting
// with different content returns a DuplicateSourceUnit error.
func (v *VFS) Insert(name sun.Name, content []byte, origin Origin) error {
	return v.insert(name, content, origin, "", "")
}

// InsertFromCallback records provenance of a url/callback-sourced unit in
// addition to its content; used by the loader dispatcher only.
func (v *VFS) InsertFromCallback(name sun.Name, content []byte, url, callback string) error {
	return v.insert(name, content, OriginCallback, url, callback)
}

func (v *VFS) insert(name sun.Name, content []byte, origin Origin, url, callback string) error {
	if existing, ok := v.units[name]; ok {
		if bytes.Equal(existing.Content, content) {
			return nil
		}
		return &pcerrors.DuplicateSourceUnitError{SUN: name.String()}
	}
	v.units[name] = &Unit{
		SUN:      name,
		Content:  content,
		Origin:   origin,
		URL:      url,
		Callback: callback,
	}
	v.order = append(v.order, name)
	return nil
}

// Get returns the content stored under name, and whether it was present.
func (v *VFS) Get(name sun.Name) ([]byte, bool) {
	u, ok := v.units[name]
	if !ok {
		return nil, false
	}
	return u.Content, true
}

// Unit returns the full record stored under name, and whether it was present.
func (v *VFS) Unit(name sun.Name) (Unit, bool) {
	u, ok := v.units[name]
	if !ok {
		return Unit{}, false
	}
	return *u, true
}

// Contains reports whether name is present in the VFS.
func (v *VFS) Contains(name sun.Name) bool {
	_, ok := v.units[name]
	return ok
}

// Iter calls f once for every Unit in insertion order, stopping early if f
// returns false. Diagnostics and metadata-hash reporting rely on this order
// being deterministic and reproducible across runs.
func (v *VFS) Iter(f func(Unit) bool) {
	for _, name := range v.order {
		if !f(*v.units[name]) {
			return
		}
	}
}

// Len returns the number of units currently stored.
func (v *VFS) Len() int {
	return len(v.units)
}
