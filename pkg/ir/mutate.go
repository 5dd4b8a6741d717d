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

package ir

// childGroupVars reports the group-vars contribution of a single node,
// per §4.7: a Rendered leaf is Important when it carries real output,
// OnlyEmpty when empty, Missing when it's the explicit "variable
// referenced but absent" marker (a nil RenderedValue); a Name block is
// Important when any ratchet currently renders, OnlyEmpty when the
// variable it names simply has no names at all (§7 "missing required
// variable": an empty edge, not an error), and Missing only when its
// ratchets were intentionally cleared by SuppressNames; a
// ConditionalDisamb or Seq node contributes its own already-folded
// state; a YearSuffix hook is Missing until a number has been
// assigned; a NameCounter always renders (§9 open question).
func (t *Tree) childGroupVars(id NodeID) GroupVars {
	n := t.at(id)
	switch n.kind {
	case KindRendered:
		if n.rendered == nil {
			return Missing
		}
		if n.rendered.Text == "" {
			return OnlyEmpty
		}
		return Important
	case KindName:
		if len(n.name.Ratchets) == 0 {
			if n.name.Suppressed {
				return Missing
			}
			return OnlyEmpty
		}
		if n.name.VisibleCount() > 0 {
			return Important
		}
		return OnlyEmpty
	case KindConditionalDisamb:
		return n.cond.GroupVars
	case KindYearSuffix:
		if n.yearSuffix.Number == nil {
			return Missing
		}
		return Important
	case KindSeq:
		return n.seq.stored
	case KindNameCounter:
		return Important
	default:
		return Plain
	}
}

// RecomputeGroupVars folds a Seq node's stored group-vars from its
// current children plus any DroppedGroupVars, per §4.7. Must be called
// after any mutation that changes a Seq's children or a descendant's
// renderable state. SuppressNames, SuppressRendered and SuppressYear
// call it for the one ancestor Seq they are given; other changes, such
// as a ConditionalDisamb branch re-selection or a Name block's et-al
// bump, leave the recomputation to the caller.
func (t *Tree) RecomputeGroupVars(id NodeID) {
	n := t.at(id)
	mustBe(n.kind, KindSeq)
	vars := make([]GroupVars, 0, len(n.seq.Children)+1)
	for _, c := range n.seq.Children {
		vars = append(vars, t.childGroupVars(c))
	}
	vars = append(vars, n.seq.DroppedGroupVars)
	n.seq.stored = Fold(vars...)
}

// GroupVars returns a Seq node's current folded state.
func (t *Tree) GroupVars(id NodeID) GroupVars {
	return t.Seq(id).stored
}

// SuppressNames zeroes out a Name block's rendered output in place —
// used by the collapsing pass (C9) when a repeated name list should be
// replaced by an empty placeholder rather than re-rendered (§4.9). It
// does not remove the node; it empties its ratchets' visible count by
// clearing the slice, so VisibleCount and Render both report nothing.
// ancestor is recomputed afterward since the Name's contribution may
// have flipped from Important to Missing.
func (t *Tree) SuppressNames(nameID, ancestorSeq NodeID) {
	n := t.Name(nameID)
	n.Ratchets = nil
	n.RenderedCount = 0
	n.BumpCount = 0
	n.Suppressed = true
	t.RecomputeGroupVars(ancestorSeq)
}

// SuppressRendered clears a Rendered leaf's payload in place, turning
// it into `Rendered(None)` — used by collapsing (C9) to drop a
// cite's year literal while keeping its year-suffix hook, the same
// way SuppressNames drops a repeated name list (§4.9).
func (t *Tree) SuppressRendered(id, ancestorSeq NodeID) {
	n := t.at(id)
	mustBe(n.kind, KindRendered)
	n.rendered = nil
	t.RecomputeGroupVars(ancestorSeq)
}

// SuppressYear clears a year-suffix hook's assigned number, reverting
// it to Missing — used by year-suffix-ranged collapsing (C9) to hide
// the hooks of a run that has been folded into its first hook's range
// (§4.9).
func (t *Tree) SuppressYear(yearID, ancestorSeq NodeID) {
	y := t.YearSuffix(yearID)
	y.Number = nil
	t.RecomputeGroupVars(ancestorSeq)
}

// SplitFirstField splits a Seq's children into a "first field" segment
// (used for hanging-indent bibliography layouts: the citation number
// or author sits in a left margin, the rest block-flows) and the
// remainder, per §4.7. at is the index of the first child to land in
// the remainder; children before it form the margin. Returns two new
// Seq nodes with the left-margin and right-inline display modes; only
// the right one carries the original's delimiter and text case, neither
// carries its affixes or quotes, and the original node is not mutated.
func (t *Tree) SplitFirstField(seqID NodeID, at int) (left, right NodeID) {
	s := t.Seq(seqID)
	if at < 0 {
		at = 0
	}
	if at > len(s.Children) {
		at = len(s.Children)
	}
	leftChildren := append([]NodeID(nil), s.Children[:at]...)
	rightChildren := append([]NodeID(nil), s.Children[at:]...)

	left = t.NewSeq(SeqNode{
		Children: leftChildren,
		Display:  DisplayLeftMargin,
	})
	right = t.NewSeq(SeqNode{
		Children:  rightChildren,
		Delimiter: s.Delimiter,
		TextCase:  s.TextCase,
		Display:   DisplayRightInline,
	})
	return left, right
}
