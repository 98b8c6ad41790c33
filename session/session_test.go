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

package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-quicktest/qt"

	pcerrors "github.com/solc-go/pathcore/errors"
	"github.com/solc-go/pathcore/loader"
	"github.com/solc-go/pathcore/sun"
)

func TestResolveAndLoadFromHostFilesystem(t *testing.T) {
	dir := t.TempDir()
	qt.Assert(t, qt.IsNil(os.WriteFile(filepath.Join(dir, "util.sol"), []byte("contract Util {}"), 0o644)))

	s := New()
	s.SetBasePath(dir + "/")

	got, err := s.Resolve("math.sol", "util.sol")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got, sun.Name("util.sol")))

	b, err := s.Load(context.Background(), got)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(string(b), "contract Util {}"))
}

func TestUserCallbackPrecedesHostFS(t *testing.T) {
	s := New()
	s.RegisterCallback("mem", func(_ context.Context, target string) loader.Result {
		if target == "a.sol" {
			return loader.Found([]byte("from-mem"))
		}
		return loader.Absent()
	})

	b, err := s.Load(context.Background(), "a.sol")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(string(b), "from-mem"))
}

func TestRegisterCallbackAfterFirstLoadHasNoEffect(t *testing.T) {
	s := New()
	s.SetBasePath(t.TempDir() + "/")
	_, _ = s.Load(context.Background(), "a.sol") // builds the dispatcher

	s.RegisterCallback("late", func(context.Context, string) loader.Result {
		return loader.Found([]byte("too-late"))
	})

	_, err := s.Load(context.Background(), "b.sol")
	var fnf *pcerrors.FileNotFoundError
	qt.Assert(t, qt.IsTrue(pcerrors.As(err, &fnf)))
}

func TestInsertCLIAllowListsSourceDirectory(t *testing.T) {
	dir := t.TempDir()
	entry := filepath.Join(dir, "main.sol")
	sibling := filepath.Join(dir, "util.sol")
	qt.Assert(t, qt.IsNil(os.WriteFile(entry, []byte("main"), 0o644)))
	qt.Assert(t, qt.IsNil(os.WriteFile(sibling, []byte("util"), 0o644)))

	s := New()
	entrySUN := filepath.ToSlash(entry)
	qt.Assert(t, qt.IsNil(s.InsertCLI(sun.Name(entrySUN), []byte("main"), entry)))

	siblingSUN := sun.Name(filepath.ToSlash(sibling))
	b, err := s.Load(context.Background(), siblingSUN)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(string(b), "util"))
}

func TestInsertStdinRejectsSecondCall(t *testing.T) {
	s := New()
	qt.Assert(t, qt.IsNil(s.InsertStdin([]byte("one"))))
	err := s.InsertStdin([]byte("two"))

	var dup *pcerrors.DuplicateSourceUnitError
	qt.Assert(t, qt.IsTrue(pcerrors.As(err, &dup)))
}

func TestAddRemappingAllowListsTargetDirectory(t *testing.T) {
	s := New()
	qt.Assert(t, qt.IsNil(s.AddRemapping("a/=lib/vendor/")))

	rules := s.Remappings()
	qt.Assert(t, qt.Equals(len(rules), 1))
	qt.Assert(t, qt.Equals(rules[0].Target, "lib/vendor/"))
	qt.Assert(t, qt.DeepEquals(s.hostFS.AllowDirs, []string{"lib/vendor"}))
}

func TestLoadFromURLsFallback(t *testing.T) {
	s := New()
	s.SetBasePath(t.TempDir() + "/")
	s.InsertJSONURLs("a.sol", []string{"http://x/1", "http://x/2"})
	s.RegisterCallback("fetch", func(_ context.Context, target string) loader.Result {
		if target == "http://x/2" {
			return loader.Found([]byte("fetched"))
		}
		return loader.Absent()
	})

	b, err := s.Load(context.Background(), "a.sol")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(string(b), "fetched"))
}
