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

// Package session wires the VFS, remapping engine, resolver, and loader
// dispatcher into the one object a compilation driver actually talks to.
// It is the Go expression of spec §5's "single session, single-threaded
// cooperative from the perspective of a compilation" model: a Session owns
// its VFS, remapping list, base path, and allow-list, and shares nothing
// mutable with any other Session.
//
// Grounded on cue/load.Config and the *loader/*build.Instance split it
// drives, generalized from "one CUE module on disk" to "one set of inputs
// from any combination of CLI, JSON, and stdin".
package session

import (
	"context"
	pathpkg "path"
	"path/filepath"

	"github.com/google/uuid"

	pcerrors "github.com/solc-go/pathcore/errors"
	"github.com/solc-go/pathcore/loader"
	"github.com/solc-go/pathcore/remap"
	"github.com/solc-go/pathcore/resolve"
	"github.com/solc-go/pathcore/sun"
	"github.com/solc-go/pathcore/vfs"
)

// Session is the unit of compilation: one VFS, one remapping engine, one
// base path, one allow-list, and one dispatcher, all scoped to a single
// compile. Construct with New; configure with SetBasePath, AllowDir,
// AddRemapping, and RegisterCallback before the first call to Resolve or
// Load.
type Session struct {
	// ID uniquely identifies this session for diagnostics; it has no
	// bearing on resolution semantics.
	ID uuid.UUID

	vfs      *vfs.VFS
	remap    *remap.Engine
	resolver *resolve.Resolver
	urls     map[sun.Name][]string
	hostFS   *loader.HostFS

	// extra holds user callbacks in registration order; they precede the
	// Host Filesystem Loader once the dispatcher is built.
	extra []namedUserCallback

	// dispatcher is built lazily, on first Load, so that every callback
	// registered via RegisterCallback before then ends up ahead of the
	// Host Filesystem Loader, which always goes last.
	dispatcher *loader.Dispatcher
}

type namedUserCallback struct {
	name string
	fn   loader.Callback
}

// New returns an empty Session with its own VFS and remapping engine. The
// Host Filesystem Loader is installed last in the dispatch order, per
// spec §6 ("the default CLI host registers the Host Filesystem Loader
// last"), once the dispatcher is built on first use.
func New() *Session {
	s := &Session{
		ID:     uuid.New(),
		vfs:    vfs.New(),
		remap:  remap.New(),
		urls:   make(map[sun.Name][]string),
		hostFS: &loader.HostFS{},
	}
	s.resolver = resolve.New(s.remap)
	return s
}

// dispatch returns the session's Dispatcher, building it on first call so
// that every callback registered beforehand lands ahead of the Host
// Filesystem Loader.
func (s *Session) dispatch() *loader.Dispatcher {
	if s.dispatcher == nil {
		s.dispatcher = loader.New(s.vfs, urlListerOf(s))
		for _, cb := range s.extra {
			s.dispatcher.Register(cb.name, cb.fn)
		}
		s.dispatcher.Register(loader.HostFSName, s.hostFS.Callback)
	}
	return s.dispatcher
}

// VFS returns the session's Source Unit registry.
func (s *Session) VFS() *vfs.VFS { return s.vfs }

// SetBasePath sets the Host Filesystem Loader's base path and allow-lists
// its directory, matching spec §3's allow-list population rule for the
// base path's own directory when it is non-empty.
func (s *Session) SetBasePath(path string) {
	s.hostFS.BasePath = path
	if path != "" {
		s.AllowDir(path)
	}
}

// AllowDir adds dir to the allow-list the Host Filesystem Loader enforces.
func (s *Session) AllowDir(dir string) {
	s.hostFS.AllowDirs = append(s.hostFS.AllowDirs, dir)
}

// AddRemapping parses and appends a textual remapping rule
// "[context:]prefix=[target]" to the session's remapping engine, per
// spec §4.C. When the rule's target names a local directory, that
// directory is also allow-listed, per spec §3.
func (s *Session) AddRemapping(text string) error {
	if err := s.remap.Parse(text); err != nil {
		return err
	}
	rules := s.remap.Rules()
	target := rules[len(rules)-1].Target
	if dir := pathpkg.Dir(target); dir != "" && dir != "." {
		s.AllowDir(dir)
	}
	return nil
}

// RegisterCallback installs a user loader callback ahead of the Host
// Filesystem Loader. Callbacks registered earlier are tried first. It must
// be called before the first Load, since the dispatch order is fixed once
// built.
func (s *Session) RegisterCallback(name string, fn loader.Callback) {
	s.extra = append(s.extra, namedUserCallback{name, fn})
}

// InsertCLI records SUN name's content as coming from an explicit
// command-line source path, per spec §4.B. The directory of path is
// allow-listed, per spec §3's allow-list population rule.
func (s *Session) InsertCLI(name sun.Name, content []byte, diskPath string) error {
	if err := s.vfs.Insert(name, content, vfs.OriginCLI); err != nil {
		return err
	}
	if dir := filepath.Dir(diskPath); dir != "" && dir != "." {
		s.AllowDir(dir)
	}
	return nil
}

// InsertJSONContent records SUN name's content as coming from a standard-
// JSON `content` entry, per spec §4.B.
func (s *Session) InsertJSONContent(name sun.Name, content []byte) error {
	return s.vfs.Insert(name, content, vfs.OriginJSONContent)
}

// InsertJSONURLs records that SUN name should be loaded, on demand, from
// the given ordered list of URL-like strings, per spec §4.B and §4.E.
func (s *Session) InsertJSONURLs(name sun.Name, urls []string) {
	s.urls[name] = urls
}

// InsertStdin records the single "<stdin>" Source Unit allowed per session,
// per spec §4.B. It fails if a stdin unit has already been inserted.
func (s *Session) InsertStdin(content []byte) error {
	const stdinSUN = sun.Name("<stdin>")
	if s.vfs.Contains(stdinSUN) {
		return &pcerrors.DuplicateSourceUnitError{SUN: stdinSUN.String()}
	}
	return s.vfs.Insert(stdinSUN, content, vfs.OriginStdin)
}

// Resolve maps importer's import literal p to a final SUN, per spec §4.D.
// It never performs I/O and never fails except on an empty import literal.
func (s *Session) Resolve(importer sun.Name, p string) (sun.Name, error) {
	return s.resolver.Resolve(importer, p)
}

// Load ensures name is present in the VFS, invoking the loader dispatcher
// if necessary, and returns its bytes. ctx lets a driver bound how long it
// waits on a blocking callback; a callback observing ctx's cancellation
// should return promptly, and any result it still produces is discarded.
func (s *Session) Load(ctx context.Context, name sun.Name) ([]byte, error) {
	return s.dispatch().Load(ctx, name)
}

// Remappings returns the ordered rule set exactly as configured, for an
// out-of-scope metadata-hash component to record verbatim, per spec §6.
func (s *Session) Remappings() []remap.Rule {
	return s.remap.Rules()
}

func urlListerOf(s *Session) loader.URLLister {
	return urlListerFunc(func(name sun.Name) ([]string, bool) {
		u, ok := s.urls[name]
		return u, ok
	})
}

type urlListerFunc func(sun.Name) ([]string, bool)

func (f urlListerFunc) URLs(name sun.Name) ([]string, bool) { return f(name) }
