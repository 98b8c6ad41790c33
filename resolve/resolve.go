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

// Package resolve implements the Import Resolver: it turns an import
// literal appearing in some importer's source into a Source Unit Name,
// classifying it as direct or relative, normalizing relative imports, and
// applying the remapping engine exactly once.
//
// Resolution itself never fails -- it always produces a SUN, per spec; the
// one exception is the empty import literal, which is rejected up front so
// callers don't have to special-case an otherwise-valid-looking SUN of "".
package resolve

import (
	pcerrors "github.com/solc-go/pathcore/errors"
	"github.com/solc-go/pathcore/remap"
	"github.com/solc-go/pathcore/sun"
)

// Resolver maps (importer SUN, import literal) pairs to a final SUN using a
// shared remapping engine. It holds no other state and is safe to reuse
// across every import statement in a session.
type Resolver struct {
	Remap *remap.Engine
}

// New returns a Resolver backed by the given remapping engine.
func New(engine *remap.Engine) *Resolver {
	return &Resolver{Remap: engine}
}

// Resolve computes the final SUN for an import literal p appearing in the
// source identified by importer. It depends only on importer, p, and the
// remapping engine's current rule set.
func (r *Resolver) Resolve(importer sun.Name, p string) (sun.Name, error) {
	if p == "" {
		return "", &pcerrors.ImportPathEmptyError{Importer: importer.String()}
	}

	var candidate sun.Name
	if sun.IsRelativeImport(p) {
		candidate = resolveRelative(importer, p)
	} else {
		// Direct import: the candidate SUN is the literal verbatim, with no
		// normalization.
		candidate = sun.Name(p)
	}

	if rule, ok := r.Remap.Select(importer, candidate); ok {
		candidate = rule.Apply(candidate)
	}
	return candidate, nil
}

// resolveRelative implements spec §4.D's five-step algorithm for import
// literals beginning with "./" or "../". The importer SUN is never
// normalized -- strip_last_segment is the only operation ever applied to
// it -- so a scheme-like importer such as "https://example.com/a/b.sol"
// keeps its "//" intact while its ancestor directories are walked.
func resolveRelative(importer sun.Name, p string) sun.Name {
	pNorm := sun.Normalize(p)
	k, tail := sun.CountLeadingParent(pNorm)

	prefix := sun.StripLastSegment(importer.String())
	for i := 0; i < k; i++ {
		prefix = sun.StripLastSegment(prefix)
	}

	return sun.Name(sun.Join(prefix, tail))
}
