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

// Package remap implements the remapping engine: an ordered list of
// context:prefix=target rules and the longest-prefix-then-last-wins
// selection algorithm used to rewrite a candidate Source Unit Name.
//
// Rule counts in practice are small (tens, not thousands), so a plain
// ordered slice with a linear scan is used rather than a prefix trie; both
// satisfy the selection contract as long as ties break on ordinal.
package remap

import (
	"strings"

	pcerrors "github.com/solc-go/pathcore/errors"
	"github.com/solc-go/pathcore/sun"
)

// Rule is one parsed remapping: context:prefix=target. Context may be
// empty (matches every importer); target defaults to prefix when omitted
// from the source text (an identity remap). Ordinal is the rule's
// insertion index and is the sole tie-breaker among rules that otherwise
// match equally well.
type Rule struct {
	Context string
	Prefix  string
	Target  string
	Ordinal int
}

// Engine holds an ordered, read-only-after-setup list of remapping rules
// for one compilation session.
type Engine struct {
	rules []Rule
}

// New returns an Engine with no rules.
func New() *Engine {
	return &Engine{}
}

// Parse parses the textual form "[context:]prefix=[target]" and appends the
// resulting Rule to the engine with the next ordinal. The first unescaped
// "=" separates the left-hand side from the target; on the left-hand side,
// the rule adopted here is "the first ':' at column > 0 delimits context",
// so a literal leading ":" denotes an explicitly empty context -- this is
// the documented workaround for prefixes that themselves contain a scheme,
// e.g. ":https://example.com/=/local/".
func (e *Engine) Parse(text string) error {
	r, err := parseRule(text, len(e.rules))
	if err != nil {
		return err
	}
	e.rules = append(e.rules, r)
	return nil
}

// Add appends an already-constructed rule, assigning it the next ordinal
// regardless of the value the caller set.
func (e *Engine) Add(r Rule) {
	r.Ordinal = len(e.rules)
	e.rules = append(e.rules, r)
}

// Rules returns the ordered rule set exactly as configured, for an
// out-of-scope metadata-hash component to record verbatim.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Select picks the winning rule, if any, for importer SUN i and candidate
// SUN s: the rule with the longest Prefix among those where i has Context
// as a prefix and s has Prefix as a prefix, breaking ties by the highest
// Ordinal (the most recently declared). It returns ok=false if no rule
// matches, in which case the candidate passes through unchanged.
func (e *Engine) Select(i sun.Name, s sun.Name) (Rule, bool) {
	var best Rule
	found := false
	for _, r := range e.rules {
		if !i.HasPrefix(r.Context) || !s.HasPrefix(r.Prefix) {
			continue
		}
		if !found || better(r, best) {
			best = r
			found = true
		}
	}
	return best, found
}

// better reports whether candidate should replace current as the winning
// rule: strictly longer prefix wins outright; on a tie, the higher ordinal
// (declared later) wins.
func better(candidate, current Rule) bool {
	if len(candidate.Prefix) != len(current.Prefix) {
		return len(candidate.Prefix) > len(current.Prefix)
	}
	return candidate.Ordinal > current.Ordinal
}

// Apply rewrites s by replacing its leading Prefix with Target verbatim --
// no slash is inserted if Target lacks one, and the result is not
// normalized.
func (r Rule) Apply(s sun.Name) sun.Name {
	return sun.Name(r.Target + strings.TrimPrefix(s.String(), r.Prefix))
}

func parseRule(text string, ordinal int) (Rule, error) {
	eq := indexUnescaped(text, '=')
	if eq < 0 {
		return Rule{}, &pcerrors.InvalidRemappingError{
			Rule:   text,
			Reason: "missing '=' separating prefix from target",
		}
	}
	lhs, target := text[:eq], text[eq+1:]

	context := ""
	prefix := lhs
	if colon := indexUnescaped(lhs, ':'); colon >= 0 {
		context = lhs[:colon]
		prefix = lhs[colon+1:]
	}

	if prefix == "" {
		return Rule{}, &pcerrors.InvalidRemappingError{
			Rule:   text,
			Reason: "empty prefix",
		}
	}
	if target == "" {
		target = prefix
	}

	return Rule{Context: context, Prefix: prefix, Target: target, Ordinal: ordinal}, nil
}

// indexUnescaped returns the index of the first unescaped occurrence of b
// in s, or -1. A backslash escapes the following byte.
func indexUnescaped(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if s[i] == b {
			return i
		}
	}
	return -1
}
