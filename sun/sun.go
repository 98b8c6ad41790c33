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

// Package sun defines the Source Unit Name type and the small set of pure,
// UNIX-style path operations the rest of the path resolution core is allowed
// to perform on it.
//
// A SUN is an opaque, unstructured, case-sensitive identifier. It is never
// normalized or canonicalized by the VFS; only the operations in this
// package may be applied to it, and only by the resolver and the loaders.
// Wrapping it in a distinct named string type (rather than passing around
// bare strings) keeps accidental normalization or separator translation out
// of reach of the rest of the core.
package sun

import "strings"

// Name is a Source Unit Name: an opaque identifier, not a filesystem path.
// Two Names that differ by a single character -- including a "/./", "//",
// or "/../" segment -- are distinct and may carry different content.
type Name string

// String returns n as a plain string.
func (n Name) String() string { return string(n) }

// IsAbsolute reports whether n has a leading "/". This is the only notion of
// absoluteness the core recognizes; it says nothing about the host
// filesystem.
func (n Name) IsAbsolute() bool {
	return strings.HasPrefix(string(n), "/")
}

// HasPrefix reports whether n starts with the literal string prefix.
func (n Name) HasPrefix(prefix string) bool {
	return strings.HasPrefix(string(n), prefix)
}

// IsRelativeImport reports whether a literal import path (not a SUN) begins
// with "./" or "../", which classifies it as a relative import per the
// resolver's rules.
func IsRelativeImport(importPath string) bool {
	return strings.HasPrefix(importPath, "./") || strings.HasPrefix(importPath, "../")
}

// Normalize collapses every internal "./" segment and, for every internal
// "../" segment, removes the immediately preceding segment. A leading
// "../" is never cancelled -- there is nothing to cancel it against -- so
// it is kept on a relative path and dropped on an absolute one ("/../a"
// becomes "/a"). Runs of "/" collapse to one. Absoluteness (a leading "/") is preserved.
// A trailing "/" on the input is preserved iff the last logical segment is
// empty after collapsing.
//
// Backslashes are never treated as separators here; this operates purely on
// "/"-delimited segments, as import paths and SUNs always are.
func Normalize(p string) string {
	if p == "" {
		return ""
	}
	absolute := strings.HasPrefix(p, "/")
	trailingSlash := strings.HasSuffix(p, "/")

	segments := strings.Split(p, "/")
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		switch seg {
		case "":
			// Collapses runs of "/"; re-inserted below if the result
			// ends up empty so a bare "/" round-trips.
			continue
		case ".":
			continue
		case "..":
			if n := len(out); n > 0 && out[n-1] != ".." {
				out = out[:n-1]
				continue
			}
			if !absolute {
				out = append(out, "..")
				continue
			}
			// Leading ".." segments on an absolute path have nothing to
			// cancel against and are dropped, mirroring how an absolute
			// filesystem root absorbs excess ".." components.
			continue
		default:
			out = append(out, seg)
		}
	}

	result := strings.Join(out, "/")
	if absolute {
		result = "/" + result
	}
	if trailingSlash && !strings.HasSuffix(result, "/") {
		if result == "" && !absolute {
			// Nothing logical is left to hang a trailing slash on.
			return result
		}
		result += "/"
	}
	return result
}

// StripLastSegment removes everything after (and including) the final "/"
// in p, then trims any trailing "/"s left over. It performs exactly one
// logical "go up one directory" step and is the only operation ever applied
// to an importer SUN, which is never otherwise normalized.
//
//	"a/b//c.sol" -> "a/b"
//	"a"          -> ""
//	"/a"         -> ""
//	"/"          -> ""
func StripLastSegment(p string) string {
	idx := strings.LastIndexByte(p, '/')
	if idx < 0 {
		return ""
	}
	head := p[:idx+1] // keep the separator
	head = strings.TrimRight(head, "/")
	return head
}

// CountLeadingParent counts the consecutive leading "../" segments in a
// normalized import path p and returns that count together with the
// remainder of the string after them.
func CountLeadingParent(p string) (count int, rest string) {
	for {
		if p == ".." {
			count++
			p = ""
			break
		}
		if strings.HasPrefix(p, "../") {
			count++
			p = p[len("../"):]
			continue
		}
		break
	}
	return count, p
}

// Join concatenates prefix and rest with exactly one "/" between them when
// both are non-empty; if prefix is empty the result is rest verbatim.
func Join(prefix, rest string) string {
	if prefix == "" {
		return rest
	}
	return prefix + "/" + rest
}
