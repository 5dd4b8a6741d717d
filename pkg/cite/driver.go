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

// Package cite implements the per-cite disambiguation driver (C8) and
// cite grouping & collapsing (C9), per spec.md §4.8/§4.9.
package cite

import (
	"context"

	"github.com/go-csl/citeproc/pkg/automaton"
	"github.com/go-csl/citeproc/pkg/edge"
	"github.com/go-csl/citeproc/pkg/ir"
	"github.com/go-csl/citeproc/pkg/logger"
	"github.com/go-csl/citeproc/pkg/names"
)

// ReferenceAutomaton pairs one reference's id with the NFA built from
// its rendered IR (§4.2/§4.8: "building a per-reference NFA once").
type ReferenceAutomaton struct {
	ReferenceID string
	Nfa         *automaton.Nfa
}

// Cite is one in-text citation instance being disambiguated: its own
// reference id, the tree it renders into, and the name blocks the
// add-names/add-given-name passes may still advance.
type Cite struct {
	ReferenceID string
	Tree        *ir.Tree
	NameMethod  names.Method

	yearSuffixHook ir.NodeID
	hasYearSuffix  bool
}

// NewCite wires a cite to its tree. The cite starts with no year-suffix
// hook; SetYearSuffixHook records the node step 5 assigns a suffix
// number to.
func NewCite(referenceID string, tree *ir.Tree, method names.Method) *Cite {
	return &Cite{ReferenceID: referenceID, Tree: tree, NameMethod: method}
}

// SetYearSuffixHook records the node step 5 should update, if this
// cite's style emits one.
func (c *Cite) SetYearSuffixHook(id ir.NodeID) {
	c.yearSuffixHook = id
	c.hasYearSuffix = true
}

// HasYearSuffixHook reports whether SetYearSuffixHook was ever called
// on c — a grouping/collapsing caller uses this to tell a cite that
// actually received a pass-5 suffix from one that never needed one.
func (c *Cite) HasYearSuffixHook() bool {
	return c.hasYearSuffix
}

// Driver runs the five §4.8 passes, given the full set of per-reference
// automata built for the document (so each pass can recheck ambiguity
// against every other reference).
type Driver struct {
	interner *edge.Interner
	refs     []ReferenceAutomaton
}

// NewDriver returns a driver that checks ambiguity against refs, in
// document order (the ordering documents' "year-suffix assignment is
// ordered by document cite order" guarantee depends on refs staying in
// a stable order across the whole run).
func NewDriver(interner *edge.Interner, refs []ReferenceAutomaton) *Driver {
	return &Driver{interner: interner, refs: refs}
}

// ambiguousCount returns how many reference automata accept stream,
// short-circuiting once a second acceptor is found (mirrors
// pkg/disamb's ambiguous(e) short-circuit at C6's "more than one
// matcher accepts").
func (d *Driver) ambiguousCount(stream []edge.Edge) int {
	count := 0
	for _, r := range d.refs {
		if r.Nfa.Accepts(stream) {
			count++
			if count >= 2 {
				return count
			}
		}
	}
	return count
}

func (d *Driver) isAmbiguous(c *Cite) bool {
	stream := c.Tree.ToEdgeStream(c.Tree.Root, d.interner)
	return d.ambiguousCount(stream) >= 2
}

// IsAmbiguous reports whether c's current rendering still matches more
// than one reference automaton. A caller drives the year-suffix pass
// (5) with it: call after Disambiguate returns, and only mark a cite's
// year-suffix hook (SetYearSuffixHook) when this still reports true,
// so suffixes are reserved for cites passes 1-4 could not resolve
// (§4.8 step 5).
func (d *Driver) IsAmbiguous(c *Cite) bool {
	return d.isAmbiguous(c)
}

// Disambiguate runs passes 1-4 in strict order against c, stopping as
// soon as the cite becomes unique or every pass is exhausted (§4.8,
// §7 "Exhausted disambiguation": never fail, emit maximal expansion).
// Pass 5 (year-suffix assignment) is document-scoped and run
// separately via AssignYearSuffixes once every cite has been
// individually disambiguated.
func (d *Driver) Disambiguate(ctx context.Context, c *Cite) error {
	log := logger.FromContext(ctx)

	if !d.isAmbiguous(c) {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	d.addNames(c)
	if !d.isAmbiguous(c) {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	d.addGivenName(c)
	if !d.isAmbiguous(c) {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	d.resolveConditionalDisambiguate(c)
	if !d.isAmbiguous(c) {
		return nil
	}

	log.Debugw("cite remains ambiguous after all passes, emitting maximal expansion", "reference", c.ReferenceID)
	return nil
}

// addNames is pass 2: bump every name block's visible count by one
// (respecting et-al truncation, which NameIR.VisibleCount already
// honors) and recompute group-vars up the tree.
func (d *Driver) addNames(c *Cite) {
	d.walkNames(c.Tree, c.Tree.Root, func(id ir.NodeID) {
		n := c.Tree.Name(id)
		if n.BumpCount < len(n.Ratchets)-n.EtAl.UseFirst {
			n.BumpCount++
		}
	})
	d.recomputeAllSeqs(c.Tree, c.Tree.Root)
}

// addGivenName is pass 3: advance every ratchet's C3 iterator one
// step, re-rendering in place.
func (d *Driver) addGivenName(c *Cite) {
	d.walkNames(c.Tree, c.Tree.Root, func(id ir.NodeID) {
		n := c.Tree.Name(id)
		for i := range n.Ratchets {
			n.Ratchets[i].AdvancePass(c.NameMethod)
		}
	})
	d.recomputeAllSeqs(c.Tree, c.Tree.Root)
}

// resolveConditionalDisambiguate is pass 4: flip every
// ConditionalDisamb node's selected branch to its disambiguate=true
// arm, if one exists, and mark it done so later passes don't reopen
// it.
func (d *Driver) resolveConditionalDisambiguate(c *Cite) {
	d.walkConditionals(c.Tree, c.Tree.Root, func(id ir.NodeID) {
		cond := c.Tree.ConditionalDisamb(id)
		if cond.Done {
			return
		}
		for i, b := range cond.Branches {
			if b.RequiresDisambiguate {
				cond.Selected = i
				break
			}
		}
		cond.Done = true
	})
	d.recomputeAllSeqs(c.Tree, c.Tree.Root)
}

func (d *Driver) walkNames(t *ir.Tree, id ir.NodeID, visit func(ir.NodeID)) {
	switch t.Kind(id) {
	case ir.KindName:
		visit(id)
	case ir.KindConditionalDisamb:
		cond := t.ConditionalDisamb(id)
		if cond.Selected >= 0 && cond.Selected < len(cond.Branches) {
			d.walkNames(t, cond.Branches[cond.Selected].Root, visit)
		}
	case ir.KindSeq:
		for _, child := range t.Seq(id).Children {
			d.walkNames(t, child, visit)
		}
	}
}

func (d *Driver) walkConditionals(t *ir.Tree, id ir.NodeID, visit func(ir.NodeID)) {
	switch t.Kind(id) {
	case ir.KindConditionalDisamb:
		visit(id)
		cond := t.ConditionalDisamb(id)
		if cond.Selected >= 0 && cond.Selected < len(cond.Branches) {
			d.walkConditionals(t, cond.Branches[cond.Selected].Root, visit)
		}
	case ir.KindSeq:
		for _, child := range t.Seq(id).Children {
			d.walkConditionals(t, child, visit)
		}
	}
}

// recomputeAllSeqs recomputes group-vars bottom-up for every Seq in
// the subtree, per §9's "store per Seq and recompute after mutation".
func (d *Driver) recomputeAllSeqs(t *ir.Tree, id ir.NodeID) ir.GroupVars {
	switch t.Kind(id) {
	case ir.KindSeq:
		for _, child := range t.Seq(id).Children {
			d.recomputeAllSeqs(t, child)
		}
		t.RecomputeGroupVars(id)
		return t.GroupVars(id)
	case ir.KindConditionalDisamb:
		cond := t.ConditionalDisamb(id)
		if cond.Selected >= 0 && cond.Selected < len(cond.Branches) {
			cond.GroupVars = d.recomputeAllSeqs(t, cond.Branches[cond.Selected].Root)
		}
		return cond.GroupVars
	default:
		return ir.Plain
	}
}

// AssignYearSuffixes runs pass 5 across every cite in document order:
// the first reference id seen gets suffix 0 ("a"), a repeated
// reference id sharing the same rendered name-year gets the same
// suffix, and each newly distinct one gets the next letter in sequence
// (§4.8 step 5).
func AssignYearSuffixes(cites []*Cite) {
	assigned := make(map[string]int)
	next := 0
	for _, c := range cites {
		if !c.hasYearSuffix {
			continue
		}
		n, ok := assigned[c.ReferenceID]
		if !ok {
			n = next
			assigned[c.ReferenceID] = n
			next++
		}
		hook := c.Tree.YearSuffix(c.yearSuffixHook)
		hook.Number = &n
	}
}
