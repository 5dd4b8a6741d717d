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

// Package disamb implements the reference variant matcher (C5) and the
// global name disambiguator (C6): across every interned person name in
// a document, find the smallest per-name expansion that makes each
// reference's rendered name edge unique, per spec.md §4.5/§4.6.
package disamb

import (
	"context"

	"github.com/mitchellh/copystructure"
	"github.com/samber/lo"

	"github.com/go-csl/citeproc/pkg/edge"
	"github.com/go-csl/citeproc/pkg/logger"
	"github.com/go-csl/citeproc/pkg/names"
	"github.com/go-csl/citeproc/pkg/style"
)

// DisambName is an interned identifier for the tuple (reference id,
// name variable, NameElement, PersonName, primary flag) — §3
// "DisambName".
type DisambName int

// DisambNameData is the mutable working copy an expansion pass edits.
// A fresh copy is cloned via copystructure before any pass mutates it,
// the way the teacher clones a component before editing it in place
// (pkg/assemble/cdx's cloneComp pattern), so the original ("d0") always
// survives for the reset rule in §4.6 step 3b.
type DisambNameData struct {
	ReferenceID string
	Variable    string
	Element     style.NameElement
	Person      names.PersonName
	Primary     bool
}

func (d DisambNameData) render() string {
	return names.Render(d.Element, d.Person, !d.Primary)
}

func cloneData(d DisambNameData) DisambNameData {
	cloned, err := copystructure.Copy(d)
	if err != nil {
		// Copy only fails on unsupported field kinds; DisambNameData
		// holds none, so this is a logic error, never a data condition.
		panic("disamb: could not clone DisambNameData: " + err.Error())
	}
	return cloned.(DisambNameData)
}

// VariantMatcher is the small ordered edge set C5 describes: every
// edge the name could produce under the original NameElement and each
// of C3's expansion passes in order, typically 1-3 entries.
type VariantMatcher struct {
	variants []edge.Edge
}

// BuildVariantMatcher renders d0 and each of its available C3 passes,
// interning each rendering, and returns the resulting ordered set
// (§4.5: "start from the original NameElement, intern its edge; apply
// each pass from C3 in order, re-render, intern, push").
func BuildVariantMatcher(interner *edge.Interner, method names.Method, d0 DisambNameData) *VariantMatcher {
	vm := &VariantMatcher{}
	vm.variants = append(vm.variants, interner.Edge(edge.OutputPayload(d0.render())))

	working := cloneData(d0)
	if working.Person.IsLiteral() {
		return vm
	}
	it := names.NewSingleNameDisambIter(method, working.Element)
	for {
		pass, ok := it.Next()
		if !ok {
			break
		}
		pass.Apply(&working.Element)
		vm.variants = append(vm.variants, interner.Edge(edge.OutputPayload(working.render())))
	}
	return vm
}

// Accepts is linear membership over the variant set (§4.5).
func (vm *VariantMatcher) Accepts(e edge.Edge) bool {
	for _, v := range vm.variants {
		if v == e {
			return true
		}
	}
	return false
}

// Len reports how many distinct renderings this matcher accepts.
func (vm *VariantMatcher) Len() int { return len(vm.variants) }

// GlobalDisambiguator runs C6 across every DisambName observed so far.
// Grounded on the teacher's ComponentIndex/CompositeComponentMatcher
// split in pkg/assemble/matcher: BuildIndex's "build once, query many"
// shape becomes "build every variant matcher once, then re-check
// ambiguity as each name expands"; CompositeComponentMatcher's ordered,
// short-circuiting strategy chain becomes C3's ordered expansion
// passes, stopping at the first unambiguous rendering instead of the
// first matching strategy.
type GlobalDisambiguator struct {
	interner *edge.Interner
	method   func(primary bool) names.Method

	order   []DisambName
	data    map[DisambName]DisambNameData
	indices map[DisambName]int
}

// NewGlobalDisambiguator returns a disambiguator over interner's edge
// space. method derives each name's C3 expansion method from its
// primary flag (§4.3's DeriveMethod, threaded through by the caller so
// this package doesn't need to know the style's disambiguation rule
// directly).
func NewGlobalDisambiguator(interner *edge.Interner, method func(primary bool) names.Method) *GlobalDisambiguator {
	return &GlobalDisambiguator{
		interner: interner,
		method:   method,
		data:     make(map[DisambName]DisambNameData),
		indices:  make(map[DisambName]int),
	}
}

// Register interns one DisambName in insertion order — the stable
// iteration order §4.6's "ordering note" requires — and stores its
// original data as d0.
func (g *GlobalDisambiguator) Register(n DisambName, d0 DisambNameData) {
	if _, exists := g.indices[n]; exists {
		return
	}
	g.indices[n] = len(g.order)
	g.order = append(g.order, n)
	g.data[n] = d0
}

// Run executes the §4.6 algorithm and returns the name → expanded-data
// map. ctx is checked between names so a long global-disambiguation
// pass over a large reference set can be cancelled at a component
// boundary (§7 "Cancellation").
func (g *GlobalDisambiguator) Run(ctx context.Context) (map[DisambName]DisambNameData, error) {
	log := logger.FromContext(ctx)

	matchers := make([]*VariantMatcher, len(g.order))
	for i, n := range g.order {
		d0 := g.data[n]
		matchers[i] = BuildVariantMatcher(g.interner, g.method(d0.Primary), d0)
	}

	// ambiguous(e) short-circuits at the second acceptor per §4.6 step
	// 2; lo.CountBy would keep scanning past that point, so the count
	// is still capped by hand, but the "does any matcher accept e"
	// predicate itself is expressed with lo.SomeBy the way the teacher
	// composes small predicates over a matcher list in
	// pkg/assemble/combiner.go.
	ambiguous := func(e edge.Edge) bool {
		count := 0
		for _, m := range matchers {
			if lo.SomeBy([]edge.Edge{e}, m.Accepts) {
				count++
				if count > 1 {
					return true
				}
			}
		}
		return false
	}

	result := make(map[DisambName]DisambNameData, len(g.order))
	for _, n := range g.order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		d0 := g.data[n]
		working := cloneData(d0)
		e := g.interner.Edge(edge.OutputPayload(working.render()))

		if !working.Person.IsLiteral() {
			it := names.NewSingleNameDisambIter(g.method(d0.Primary), working.Element)
			for ambiguous(e) {
				pass, ok := it.Next()
				if !ok {
					log.Debugw("global disambiguation exhausted, resetting to original", "name", n)
					working = cloneData(d0)
					e = g.interner.Edge(edge.OutputPayload(working.render()))
					break
				}
				pass.Apply(&working.Element)
				e = g.interner.Edge(edge.OutputPayload(working.render()))
			}
		}

		result[n] = working
	}

	return result, nil
}
