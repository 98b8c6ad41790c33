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

package loader

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	pcerrors "github.com/solc-go/pathcore/errors"
)

// HostFSName is the Register name conventionally used for the Host
// Filesystem Loader, so diagnostics can tell it apart from user callbacks.
const HostFSName = "hostfs"

// HostFS is the default on-demand backfill: it maps a SUN to bytes on disk
// under a base path and allow-list policy. It performs the only filesystem
// access in the core; it never writes to the VFS itself -- the Dispatcher
// does that with whatever HostFS returns.
type HostFS struct {
	// BasePath is prepended, as a literal string join, to every SUN before
	// disk lookup, absolute-looking or not. It may be empty.
	BasePath string

	// AllowDirs lists the directories a resolved candidate path must lie
	// within. A candidate outside all of them is rejected with Forbidden.
	AllowDirs []string
}

// Callback adapts HostFS to the loader.Callback signature.
func (h *HostFS) Callback(_ context.Context, target string) Result {
	b, path, err := h.load(target)
	if err != nil {
		if pe, ok := err.(*pcerrors.ForbiddenError); ok {
			return Failed(pe)
		}
		if os.IsNotExist(err) {
			return Absent()
		}
		return Failed(&pcerrors.IOError{SUN: target, Path: path, Details: err})
	}
	return Found(b)
}

func (h *HostFS) load(target string) (content []byte, candidate string, err error) {
	s := strings.TrimPrefix(target, "file://")

	// An absolute-looking SUN is only loaded as an absolute disk path when
	// the base path is empty; a non-empty base path is still prepended as a
	// literal join, even to an absolute-looking SUN. This can yield a
	// doubled leading slash, which is deliberate: collapsing it is a
	// platform-compatibility decision left to callers that need it (see
	// DESIGN.md).
	if h.BasePath != "" {
		candidate = h.BasePath + s
	} else {
		candidate = s
	}

	// This is the first and only point at which platform-specific separator
	// interpretation or case folding occurs.
	candidate = filepath.FromSlash(candidate)

	if !h.allowed(candidate) {
		return nil, candidate, &pcerrors.ForbiddenError{SUN: target, Path: candidate}
	}

	data, err := os.ReadFile(candidate)
	if err != nil {
		return nil, candidate, err
	}
	return data, candidate, nil
}

// allowed reports whether candidate lies inside at least one directory in
// AllowDirs. An empty AllowDirs list allows nothing -- hosts must add at
// least the directories of explicitly supplied CLI files or remapping
// targets, per spec §3.
func (h *HostFS) allowed(candidate string) bool {
	abs, err := filepath.Abs(candidate)
	if err != nil {
		abs = candidate
	}
	for _, dir := range h.AllowDirs {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			absDir = dir
		}
		rel, err := filepath.Rel(absDir, abs)
		if err != nil {
			continue
		}
		if rel == "." || (!strings.HasPrefix(rel, ".."+string(filepath.Separator)) && rel != "..") {
			return true
		}
	}
	return false
}
