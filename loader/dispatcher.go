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

// Package loader implements the Loader Dispatcher and the default Host
// Filesystem Loader. The dispatcher holds an ordered list of callbacks --
// zero or more user-supplied ones, then (by convention, not by requirement
// of this package) the Host Filesystem Loader last -- and backfills the
// VFS with whatever the first successful callback returns.
package loader

import (
	"context"

	pcerrors "github.com/solc-go/pathcore/errors"
	"github.com/solc-go/pathcore/sun"
	"github.com/solc-go/pathcore/vfs"
)

// Result is the tagged result a Callback returns: exactly one of Contents,
// NotFound, or Err is meaningful, mirroring the
// callback(sun) -> {contents} | {error} | {not_found} contract.
type Result struct {
	Contents []byte
	NotFound bool
	Err      error
}

// Found returns a Result carrying bytes.
func Found(b []byte) Result { return Result{Contents: b} }

// Absent returns a not_found Result.
func Absent() Result { return Result{NotFound: true} }

// Failed returns an error Result.
func Failed(err error) Result { return Result{Err: err} }

// Callback is a pluggable source of bytes for a SUN the VFS does not
// already hold. It is handed either a SUN directly, or -- when a urls list
// is associated with that SUN -- one URL-like string at a time.
type Callback func(ctx context.Context, target string) Result

// URLLister supplies, for a SUN, the ordered list of URL-like strings
// associated with it by the standard-JSON `urls` form, if any. It lets the
// dispatcher stay decoupled from how a host chose to decode its input.
type URLLister interface {
	URLs(name sun.Name) ([]string, bool)
}

// urlListerFunc adapts a function to a URLLister.
type urlListerFunc func(name sun.Name) ([]string, bool)

func (f urlListerFunc) URLs(name sun.Name) ([]string, bool) { return f(name) }

// Dispatcher backfills a VFS by invoking an ordered list of callbacks. It
// guarantees that repeated resolver requests for the same SUN attempt a
// load at most once: once a SUN has been inserted (or definitively failed),
// later calls for the same SUN observe that outcome without re-invoking any
// callback.
type Dispatcher struct {
	vfs       *vfs.VFS
	callbacks []namedCallback
	urls      URLLister
	attempted map[sun.Name]error // nil error => FileNotFound was the terminal outcome
}

type namedCallback struct {
	name string
	fn   Callback
}

// New returns a Dispatcher backfilling the given VFS. urls may be nil if
// the host never associates a urls list with any SUN.
func New(v *vfs.VFS, urls URLLister) *Dispatcher {
	if urls == nil {
		urls = urlListerFunc(func(sun.Name) ([]string, bool) { return nil, false })
	}
	return &Dispatcher{
		vfs:       v,
		urls:      urls,
		attempted: make(map[sun.Name]error),
	}
}

// Register appends a named callback to the end of the dispatch list. Hosts
// register the Host Filesystem Loader last, after any of their own
// callbacks, per spec §6.
func (d *Dispatcher) Register(name string, fn Callback) {
	d.callbacks = append(d.callbacks, namedCallback{name: name, fn: fn})
}

// Load ensures name is present in the VFS, invoking callbacks as needed,
// and returns its content. If name is already present, no callback runs.
func (d *Dispatcher) Load(ctx context.Context, name sun.Name) ([]byte, error) {
	if b, ok := d.vfs.Get(name); ok {
		return b, nil
	}
	if err, tried := d.attempted[name]; tried {
		if err != nil {
			return nil, err
		}
		return nil, &pcerrors.FileNotFoundError{SUN: name.String()}
	}

	content, err := d.dispatch(ctx, name)
	if err != nil {
		d.attempted[name] = err
		return nil, err
	}
	if content == nil {
		d.attempted[name] = nil
		return nil, &pcerrors.FileNotFoundError{SUN: name.String()}
	}
	return content, nil
}

// dispatch runs the urls-list fallback (if any) or a direct pass over the
// callback list, and inserts the winning bytes into the VFS under name --
// never under the URL that produced them.
func (d *Dispatcher) dispatch(ctx context.Context, name sun.Name) ([]byte, error) {
	if urls, ok := d.urls.URLs(name); ok && len(urls) > 0 {
		for _, url := range urls {
			for _, cb := range d.callbacks {
				if err := ctx.Err(); err != nil {
					return nil, &pcerrors.IOError{SUN: name.String(), Details: err}
				}
				res := cb.fn(ctx, url)
				if err := ctx.Err(); err != nil {
					return nil, &pcerrors.IOError{SUN: name.String(), Details: err}
				}
				switch {
				case res.Err != nil:
					return nil, res.Err
				case res.NotFound:
					continue
				default:
					if err := d.vfs.InsertFromCallback(name, res.Contents, url, cb.name); err != nil {
						return nil, err
					}
					return res.Contents, nil
				}
			}
		}
		return nil, nil
	}

	for _, cb := range d.callbacks {
		if err := ctx.Err(); err != nil {
			return nil, &pcerrors.IOError{SUN: name.String(), Details: err}
		}
		res := cb.fn(ctx, name.String())
		if err := ctx.Err(); err != nil {
			return nil, &pcerrors.IOError{SUN: name.String(), Details: err}
		}
		switch {
		case res.Err != nil:
			return nil, res.Err
		case res.NotFound:
			continue
		default:
			if err := d.vfs.InsertFromCallback(name, res.Contents, "", cb.name); err != nil {
				return nil, err
			}
			return res.Contents, nil
		}
	}
	return nil, nil
}
