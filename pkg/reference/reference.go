// Copyright 2025 Interlynk.io
//
// SPDX-License-Identifier: Apache-2.0
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

// Package reference holds the bibliographic input data the core reads
// from (§6 "References: iterable set with stable ids; each reference
// supplies typed fields"). It is deliberately thin: the core depends
// only on typed field access, not on any particular source format.
package reference

import (
	"fmt"
	"sync"

	"github.com/go-csl/citeproc/pkg/names"
)

// NameVariable identifies which role a name list plays on a reference
// (author, editor, translator, ...).
type NameVariable string

const (
	Author      NameVariable = "author"
	Editor      NameVariable = "editor"
	Translator  NameVariable = "translator"
	Interviewer NameVariable = "interviewer"
)

// Reference is one bibliographic entry, grounded on the teacher's
// SBOMDocument split (pkg/sbom.SBOMDocument): a stable id plus typed
// field accessors. The source record a Reference was loaded from is not
// kept.
type Reference struct {
	ID      string
	Title   string
	Year    int
	Issued  bool // false when the reference has no issued date at all
	Names   map[NameVariable][]names.PersonName
	Fields  map[string]string // locator labels, container-title, etc.
}

// PersonNames returns the reference's name list for variable, or nil
// if it has none — the §7 "missing required variable" case the Names
// element is expected to surface as GroupVars::OnlyEmpty rather than
// an error.
func (r *Reference) PersonNames(variable NameVariable) []names.PersonName {
	return r.Names[variable]
}

// Field returns a plain string field (e.g. "container-title"), or ""
// if absent.
func (r *Reference) Field(key string) string {
	return r.Fields[key]
}

// Store is an in-memory, non-persistent reference collection — the
// minimal "References: iterable set with stable ids" collaborator the
// core needs to exercise global disambiguation and per-cite rendering
// end to end. Safe for concurrent reads and writes, mirroring the
// edge interner's synchronization discipline (§5).
type Store struct {
	mu    sync.RWMutex
	byID  map[string]*Reference
	order []string
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{byID: make(map[string]*Reference)}
}

// Add inserts or replaces a reference, preserving first-insertion order
// for ids not seen before (ids are stable: §6).
func (s *Store) Add(ref *Reference) error {
	if ref.ID == "" {
		return fmt.Errorf("reference: id must not be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[ref.ID]; !exists {
		s.order = append(s.order, ref.ID)
	}
	s.byID[ref.ID] = ref
	return nil
}

// Get looks up a reference by id.
func (s *Store) Get(id string) (*Reference, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.byID[id]
	return r, ok
}

// All returns every reference in insertion order.
func (s *Store) All() []*Reference {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Reference, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Len reports how many references are stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
