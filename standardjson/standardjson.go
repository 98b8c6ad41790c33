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

// Package standardjson decodes the structured JSON input document described
// in spec §6 -- {"language", "sources", "settings"} -- and replays it
// against a session.Session. Parsing and validation of "settings" and
// "language" are out of the path resolution core's scope; they are handed
// back to the caller untouched as json.RawMessage.
package standardjson

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/solc-go/pathcore/session"
	"github.com/solc-go/pathcore/sun"
)

// Document mirrors the top-level shape of the standard-JSON input.
type Document struct {
	Language string                 `json:"language"`
	Sources  map[string]SourceEntry `json:"sources"`
	Settings json.RawMessage        `json:"settings"`
}

// SourceEntry is one value in the "sources" map: either a literal content
// string, or an ordered list of URLs to try on demand. Exactly one of
// Content or URLs should be set; Decode rejects an entry setting neither.
type SourceEntry struct {
	Content *string  `json:"content,omitempty"`
	URLs    []string `json:"urls,omitempty"`
}

// Decode parses data as a Document and reports a descriptive error if it is
// not well-formed JSON or if a sources entry sets neither content nor urls.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding standard-json input: %w", err)
	}
	for key, entry := range doc.Sources {
		if entry.Content == nil && len(entry.URLs) == 0 {
			return nil, fmt.Errorf("sources[%q]: must set either \"content\" or \"urls\"", key)
		}
	}
	return &doc, nil
}

// Populate inserts every entry of doc.Sources into s: "content" entries
// become json-content Source Units immediately; "urls" entries are
// registered with the dispatcher's urls-list fallback and are loaded lazily
// the first time the resolver produces that SUN, per spec §4.E.
func Populate(s *session.Session, doc *Document) error {
	keys := make([]string, 0, len(doc.Sources))
	for key := range doc.Sources {
		keys = append(keys, key)
	}
	// Go map iteration order is randomized; a Go map is not itself part of
	// the reproducibility contract, but sorting here keeps VFS.Iter's
	// insertion-order diagnostics stable across runs of the same input,
	// which is what spec's "reproducible across platforms" goal needs in
	// practice.
	sort.Strings(keys)

	for _, key := range keys {
		entry := doc.Sources[key]
		name := sun.Name(key)
		if entry.Content != nil {
			if err := s.InsertJSONContent(name, []byte(*entry.Content)); err != nil {
				return err
			}
			continue
		}
		s.InsertJSONURLs(name, entry.URLs)
	}
	return nil
}
