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

// Package query implements the in-process query layer collaborator
// (§6 "Query layer: memoizes all_person_names(), lookup_disamb_name(id),
// style(), get_formatter(), and edge(payload)"). It is not a
// persistent store — every memoized value lives only as long as the
// process holds this Layer.
package query

import (
	"sync"

	"github.com/go-csl/citeproc/pkg/disamb"
	"github.com/go-csl/citeproc/pkg/edge"
	"github.com/go-csl/citeproc/pkg/format"
	"github.com/go-csl/citeproc/pkg/names"
	"github.com/go-csl/citeproc/pkg/reference"
	"github.com/go-csl/citeproc/pkg/style"
)

// Layer is the query-layer collaborator the core reads from. Reads
// are safe for concurrent use (§5: "an incremental query layer may
// invoke core functions from multiple threads").
type Layer struct {
	mu sync.RWMutex

	refs      *reference.Store
	st        style.Style
	formatter format.Formatter
	interner  *edge.Interner

	disambiguated map[disamb.DisambName]disamb.DisambNameData
	allNamesCache []names.PersonName
	namesCached   bool
}

// NewLayer wires a query layer over the given collaborators.
func NewLayer(refs *reference.Store, st style.Style, formatter format.Formatter, interner *edge.Interner) *Layer {
	return &Layer{
		refs:      refs,
		st:        st,
		formatter: formatter,
		interner:  interner,
	}
}

// Style returns the immutable style record.
func (l *Layer) Style() style.Style { return l.st }

// GetFormatter returns the output formatter.
func (l *Layer) GetFormatter() format.Formatter { return l.formatter }

// Edge interns payload via the shared interner.
func (l *Layer) Edge(payload edge.Payload) edge.Edge {
	return l.interner.Edge(payload)
}

// SetDisambiguated stores the result of a C6 run, making
// LookupDisambName answer from it.
func (l *Layer) SetDisambiguated(result map[disamb.DisambName]disamb.DisambNameData) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.disambiguated = result
}

// LookupDisambName returns the expanded data for id, if global
// disambiguation has run and produced one.
func (l *Layer) LookupDisambName(id disamb.DisambName) (disamb.DisambNameData, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	d, ok := l.disambiguated[id]
	return d, ok
}

// AllPersonNames memoizes the full, flattened list of every person
// name across every reference in the store — the input global
// disambiguation needs before it can build variant matchers. Computed
// once; invalidated only by ResetCache.
func (l *Layer) AllPersonNames() []names.PersonName {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.namesCached {
		return l.allNamesCache
	}
	var all []names.PersonName
	for _, ref := range l.refs.All() {
		for _, list := range ref.Names {
			all = append(all, list...)
		}
	}
	l.allNamesCache = all
	l.namesCached = true
	return all
}

// ResetCache drops every memoized value, forcing the next call to
// recompute — used when the reference set changes between documents.
func (l *Layer) ResetCache() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.namesCached = false
	l.allNamesCache = nil
	l.disambiguated = nil
}
