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
	"testing"

	"github.com/go-quicktest/qt"

	pcerrors "github.com/solc-go/pathcore/errors"
)

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	qt.Assert(t, qt.IsNil(os.WriteFile(p, []byte(content), 0o644)))
	return p
}

func TestHostFSLoadsWithinBasePath(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "util.sol", "contract Util {}")

	h := &HostFS{BasePath: dir + "/", AllowDirs: []string{dir}}
	res := h.Callback(context.Background(), "util.sol")
	qt.Assert(t, qt.IsNil(res.Err))
	qt.Assert(t, qt.Equals(string(res.Contents), "contract Util {}"))
}

func TestHostFSAbsentOnMissingFile(t *testing.T) {
	dir := t.TempDir()
	h := &HostFS{BasePath: dir + "/", AllowDirs: []string{dir}}
	res := h.Callback(context.Background(), "missing.sol")
	qt.Assert(t, qt.IsTrue(res.NotFound))
}

func TestHostFSForbiddenOutsideAllowDirs(t *testing.T) {
	dir := t.TempDir()
	outside := t.TempDir()
	writeTemp(t, outside, "secret.sol", "contract Secret {}")

	h := &HostFS{BasePath: outside + "/", AllowDirs: []string{dir}}
	res := h.Callback(context.Background(), "secret.sol")

	var fe *pcerrors.ForbiddenError
	qt.Assert(t, qt.IsTrue(pcerrors.As(res.Err, &fe)))
}

func TestHostFSStripsFileScheme(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "util.sol", "x")

	h := &HostFS{AllowDirs: []string{dir}}
	res := h.Callback(context.Background(), "file://"+dir+"/util.sol")
	qt.Assert(t, qt.IsNil(res.Err))
	qt.Assert(t, qt.Equals(string(res.Contents), "x"))
}

func TestHostFSEmptyAllowDirsAllowsNothing(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "util.sol", "x")

	h := &HostFS{BasePath: dir + "/"}
	res := h.Callback(context.Background(), "util.sol")

	var fe *pcerrors.ForbiddenError
	qt.Assert(t, qt.IsTrue(pcerrors.As(res.Err, &fe)))
}
