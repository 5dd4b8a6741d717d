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

// Package ir implements the intermediate representation tree (C7): a
// typed, mutable tree built from the style program and a cite, carrying
// enough structure that disambiguation can edit it in place. Per
// spec.md §9's re-architecture note, the tree lives in one arena per
// generation, addressed by stable NodeIDs, with mutations expressed as
// operations on those ids rather than through shared, interior-mutable
// pointers.
package ir

import (
	"github.com/go-csl/citeproc/pkg/edge"
	"github.com/go-csl/citeproc/pkg/names"
	"github.com/go-csl/citeproc/pkg/style"
)

// NodeID addresses one node within a single Tree's arena. Ids are
// never reused across generations: a new cite generation gets a fresh
// Tree and fresh ids (§3 "Lifecycles").
type NodeID int

// Kind tags the closed sum type a node holds (§3, §9 "tagged variants
// over inheritance").
type Kind int

const (
	KindRendered Kind = iota
	KindName
	KindConditionalDisamb
	KindYearSuffix
	KindSeq
	KindNameCounter
)

// RenderedValue is the payload of a Rendered leaf. A nil *RenderedValue
// on a node means `Rendered(None)`: an empty leaf contributing no
// edges (§3 "Key invariants").
type RenderedValue struct {
	Sentinel edge.Sentinel // SentinelNone when Text carries real output
	Text     string
}

// RatchetKind distinguishes the two DisambNameRatchet variants (§3).
type RatchetKind int

const (
	RatchetLiteral RatchetKind = iota
	RatchetPerson
)

// DisambNameRatchet is either a literal fallback rendering (a name the
// style data couldn't structure, or a substitute) or a handle to a
// person name paired with its own expansion iterator, per §3's
// DisambNameRatchet definition. The Person variant is where C3's
// SingleNameDisambIter is actually driven, incrementally, by the
// per-cite disambiguation driver (C8 step 3).
type DisambNameRatchet struct {
	Kind RatchetKind

	Literal string

	Person  names.PersonName
	Element style.NameElement // working copy; passes mutate this in place
	Primary bool
	iter    *names.SingleNameDisambIter // lazily created on first AdvancePass
}

// Render formats this ratchet's current working state.
func (r *DisambNameRatchet) Render() string {
	if r.Kind == RatchetLiteral {
		return r.Literal
	}
	return names.Render(r.Element, r.Person, false)
}

// AdvancePass pulls the next expansion pass from this ratchet's C3
// iterator (creating it on first use from method) and applies it to
// Element in place. Returns false once the ratchet's iterator is
// exhausted or it has no iterator (literal ratchets never expand).
func (r *DisambNameRatchet) AdvancePass(method names.Method) bool {
	if r.Kind != RatchetPerson {
		return false
	}
	if r.iter == nil {
		r.iter = names.NewSingleNameDisambIter(method, r.Element)
	}
	pass, ok := r.iter.Next()
	if !ok {
		return false
	}
	pass.Apply(&r.Element)
	return true
}

// EtAl configures et-al truncation for a name block (threading
// style.NameElement.EtAlMin/EtAlUseFirst the way the original
// implementation's names_to_builds takes a &style.et_al parameter,
// §3 "SUPPLEMENTED FEATURES").
type EtAl struct {
	Min       int // 0 disables truncation
	UseFirst  int
}

// NameIR is the per-cite, per-<names> working state (§3). Its
// "children" are not materialized as separate arena nodes:
// Flatten/ToEdgeStream compute the rendered sequence
// directly from Ratchets/RenderedCount/BumpCount, which is equivalent
// in observable behavior and avoids keeping two copies of the same
// state in sync after every mutation.
type NameIR struct {
	Element      style.NameElement
	Variable     string
	EtAl         EtAl
	MaxNameCount int
	RenderedCount int
	BumpCount    int
	Ratchets     []DisambNameRatchet
	Delimiter    string
	AndLast      string // "&", "and", "" — joins the final two names when not truncated

	// Suppressed marks a Name block whose Ratchets were cleared by
	// SuppressNames (C9 collapsing), as opposed to one that simply
	// never had any ratchets to begin with (§7 "missing required
	// variable"). The two cases fold to different GroupVars: a
	// suppressed block still dominates as Missing (it had content that
	// is now intentionally hidden), while a block that was always empty
	// reports OnlyEmpty so it doesn't blank a surrounding <group> on its
	// own.
	Suppressed bool
}

// VisibleCount returns how many ratchets should currently be shown,
// honoring et-al truncation and any accumulated bump count from C8's
// add-names pass.
func (n *NameIR) VisibleCount() int {
	total := len(n.Ratchets) + n.BumpCount
	if total > len(n.Ratchets) {
		total = len(n.Ratchets)
	}
	if n.EtAl.Min > 0 && len(n.Ratchets) >= n.EtAl.Min {
		shown := n.EtAl.UseFirst
		if shown <= 0 {
			shown = 1
		}
		shown += n.BumpCount
		if shown > len(n.Ratchets) {
			shown = len(n.Ratchets)
		}
		return shown
	}
	return total
}

// TruncatedByEtAl reports whether fewer names are shown than exist.
func (n *NameIR) TruncatedByEtAl() bool {
	return n.VisibleCount() < len(n.Ratchets)
}

// Branch is one arm of a ConditionalDisamb node.
type Branch struct {
	RequiresDisambiguate bool // true for an <if disambiguate="true"> arm
	Root                 NodeID
}

// ConditionalDisambNode models a <choose> whose branch selection may
// be re-evaluated when the disambiguate flag flips (§3).
type ConditionalDisambNode struct {
	Branches []Branch
	Selected int
	Done     bool
	GroupVars GroupVars
}

// YearSuffixHookNode is a placeholder where a year-suffix will be
// injected by a later driver pass (§3). Number is nil until C8 step 5
// assigns it. RangeEnd is set by C9's year-suffix-ranged collapsing
// when this hook represents a run of consecutive suffixes folded into
// one "a-c"-style range rather than a single letter (§4.9); nil means
// "render Number alone".
type YearSuffixHookNode struct {
	Number   *int
	RangeEnd *int
}

// Affixes wraps a prefix/suffix pair applied around a Seq's content.
type Affixes struct {
	Prefix string
	Suffix string
}

// TextCase enumerates the Seq text-case transform (§4.7).
type TextCase int

const (
	CaseNone TextCase = iota
	CaseLower
	CaseUpper
	CaseTitle
	CaseSentence
	CaseCapitalizeFirst
)

// Display enumerates the Seq display/margin mode used by
// SplitFirstField (§4.7).
type Display int

const (
	DisplayNone Display = iota
	DisplayLeftMargin
	DisplayRightInline
	DisplayBlock
)

// SeqNode is an ordered sequence of children with formatting, affixes,
// delimiter, display mode, quotes, and text-case (§3).
type SeqNode struct {
	Children  []NodeID
	Delimiter string
	Affixes   Affixes
	Display   Display
	Quotes    bool
	TextCase  TextCase

	// DroppedGroupVars accounts for a variable the element itself
	// references but has no corresponding child node for (e.g. a
	// <group> testing a variable purely to decide whether to render,
	// with no visible output of its own).
	DroppedGroupVars GroupVars

	// stored is the cached fold computed by RecomputeGroupVars; never
	// read directly — use node accessor methods.
	stored GroupVars
}

// NameCounterNode aggregates a cite's name blocks for
// <name form="count">. Per spec.md §9's open question, it is never
// considered empty: it always renders a number.
type NameCounterNode struct {
	Count int
}

type node struct {
	kind Kind

	rendered    *RenderedValue
	name        *NameIR
	cond        *ConditionalDisambNode
	yearSuffix  *YearSuffixHookNode
	seq         *SeqNode
	nameCounter *NameCounterNode
}
