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

package sun

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestNormalize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"util.sol", "util.sol"},
		{"./util.sol", "util.sol"},
		{"./util/./util.sol", "util/util.sol"},
		{"../token.sol", "../token.sol"},
		{"../util/../array/util.sol", "../array/util.sol"},
		{"../.././../util.sol", "../../../util.sol"},
		{"a/b//c.sol", "a/b/c.sol"},
		{"/a/b/../c.sol", "/a/c.sol"},
		{"/../a.sol", "/a.sol"},
	}
	for _, c := range cases {
		got := Normalize(c.in)
		qt.Assert(t, qt.Equals(got, c.want), qt.Commentf("Normalize(%q)", c.in))
	}
}

func TestStripLastSegment(t *testing.T) {
	cases := []struct{ in, want string }{
		{"a/b//c.sol", "a/b"},
		{"a", ""},
		{"/a", ""},
		{"/", ""},
		{"lib/math.sol", "lib"},
		{"lib/src/../contract.sol", "lib/src/.."},
		{"https://example.com/a/b.sol", "https://example.com/a"},
	}
	for _, c := range cases {
		got := StripLastSegment(c.in)
		qt.Assert(t, qt.Equals(got, c.want), qt.Commentf("StripLastSegment(%q)", c.in))
	}
}

func TestCountLeadingParent(t *testing.T) {
	cases := []struct {
		in         string
		wantCount  int
		wantRest   string
	}{
		{"util.sol", 0, "util.sol"},
		{"../token.sol", 1, "token.sol"},
		{"../../../util.sol", 3, "util.sol"},
		{"..", 1, ""},
	}
	for _, c := range cases {
		count, rest := CountLeadingParent(c.in)
		qt.Assert(t, qt.Equals(count, c.wantCount), qt.Commentf("count(%q)", c.in))
		qt.Assert(t, qt.Equals(rest, c.wantRest), qt.Commentf("rest(%q)", c.in))
	}
}

func TestJoin(t *testing.T) {
	qt.Assert(t, qt.Equals(Join("", "util.sol"), "util.sol"))
	qt.Assert(t, qt.Equals(Join("lib", "util.sol"), "lib/util.sol"))
	qt.Assert(t, qt.Equals(Join("/project", "token.sol"), "/project/token.sol"))
}

func TestIsRelativeImport(t *testing.T) {
	qt.Assert(t, qt.IsTrue(IsRelativeImport("./a.sol")))
	qt.Assert(t, qt.IsTrue(IsRelativeImport("../a.sol")))
	qt.Assert(t, qt.IsFalse(IsRelativeImport("a.sol")))
	qt.Assert(t, qt.IsFalse(IsRelativeImport("lib/a.sol")))
}
