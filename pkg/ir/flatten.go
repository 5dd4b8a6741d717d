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

import (
	"strconv"

	"github.com/go-csl/citeproc/pkg/edge"
	"github.com/go-csl/citeproc/pkg/format"
)

// IsEmpty reports whether id renders no visible content at all — the
// traversal-level counterpart to childGroupVars, used by a <group>'s
// parent to decide whether the whole group is worth descending into
// (§4.7, §8 property 7: "Missing never renders").
func (t *Tree) IsEmpty(id NodeID) bool {
	switch t.childGroupVars(id) {
	case Important:
		return false
	default:
		return true
	}
}

// Flatten renders id to plain text using f, descending through every
// node kind (§4.7 "flatten"). Seq nodes whose folded group-vars report
// Missing render as "" per §8 property 7; a rendering Seq joins its
// children through the formatter's Group call with its delimiter and
// then applies Affixed, Quoted and TextCase, always in that fixed order.
// A Seq's display mode is not applied here.
func (t *Tree) Flatten(id NodeID, f format.Formatter) string {
	n := t.at(id)
	switch n.kind {
	case KindRendered:
		if n.rendered == nil {
			return ""
		}
		return f.TextNode(n.rendered.Text)

	case KindName:
		return t.flattenName(n.name, f)

	case KindConditionalDisamb:
		if len(n.cond.Branches) == 0 {
			return ""
		}
		idx := n.cond.Selected
		if idx < 0 || idx >= len(n.cond.Branches) {
			idx = 0
		}
		return t.Flatten(n.cond.Branches[idx].Root, f)

	case KindYearSuffix:
		if n.yearSuffix.Number == nil {
			return ""
		}
		letters := yearSuffixLetters(*n.yearSuffix.Number)
		if n.yearSuffix.RangeEnd != nil && *n.yearSuffix.RangeEnd != *n.yearSuffix.Number {
			letters += "–" + yearSuffixLetters(*n.yearSuffix.RangeEnd)
		}
		return f.TextNode(letters)

	case KindSeq:
		if !n.seq.stored.Renders() {
			return ""
		}
		parts := make([]string, 0, len(n.seq.Children))
		for _, c := range n.seq.Children {
			parts = append(parts, t.Flatten(c, f))
		}
		out := f.Group(parts, n.seq.Delimiter)
		out = f.Affixed(out, n.seq.Affixes.Prefix, n.seq.Affixes.Suffix)
		if n.seq.Quotes {
			out = f.Quoted(out)
		}
		if n.seq.TextCase != CaseNone {
			out = f.TextCase(out, textCaseMode(n.seq.TextCase))
		}
		return f.OutputInContext(out)

	case KindNameCounter:
		return f.TextNode(strconv.Itoa(n.nameCounter.Count))

	default:
		return ""
	}
}

func (t *Tree) flattenName(n *NameIR, f format.Formatter) string {
	visible := n.VisibleCount()
	if visible == 0 {
		return ""
	}
	parts := make([]string, 0, visible)
	for i := 0; i < visible; i++ {
		parts = append(parts, f.TextNode(n.Ratchets[i].Render()))
	}
	joined := f.Group(parts, n.Delimiter)
	if n.TruncatedByEtAl() {
		return joined
	}
	if n.AndLast != "" && len(parts) > 1 {
		last := f.TextNode(n.Ratchets[visible-1].Render())
		rest := f.Group(parts[:len(parts)-1], n.Delimiter)
		return f.Group([]string{rest, last}, " "+n.AndLast+" ")
	}
	return joined
}

func textCaseMode(c TextCase) string {
	switch c {
	case CaseLower:
		return "lower"
	case CaseUpper:
		return "upper"
	case CaseTitle:
		return "title"
	case CaseSentence:
		return "sentence"
	case CaseCapitalizeFirst:
		return "capitalize-first"
	default:
		return ""
	}
}

// yearSuffixLetters renders a 0-based year-suffix ordinal as CSL's
// base-26 letter sequence: 0 -> "a", 25 -> "z", 26 -> "aa" (§4.8 step
// 5).
func yearSuffixLetters(n int) string {
	if n < 0 {
		n = 0
	}
	var letters []byte
	for {
		letters = append([]byte{byte('a' + n%26)}, letters...)
		n = n/26 - 1
		if n < 0 {
			break
		}
	}
	return string(letters)
}

// ListYearSuffixHooks walks id's subtree and returns every
// YearSuffix-hook node reachable from it, in document order — the
// driver's step 5 uses this to assign suffixes across an entire
// bibliography in rendered order (§4.8).
func (t *Tree) ListYearSuffixHooks(id NodeID) []NodeID {
	var hooks []NodeID
	t.walk(id, func(n NodeID) {
		if t.Kind(n) == KindYearSuffix {
			hooks = append(hooks, n)
		}
	})
	return hooks
}

func (t *Tree) walk(id NodeID, visit func(NodeID)) {
	visit(id)
	switch t.Kind(id) {
	case KindConditionalDisamb:
		c := t.ConditionalDisamb(id)
		idx := c.Selected
		if idx >= 0 && idx < len(c.Branches) {
			t.walk(c.Branches[idx].Root, visit)
		}
	case KindSeq:
		for _, c := range t.Seq(id).Children {
			t.walk(c, visit)
		}
	}
}

// ToEdgeStream interns every leaf this subtree would render — in
// rendered order, skipping anything a Missing fold or et-al truncation
// hides — into interner, returning the resulting edge sequence. This
// is the bridge the per-reference matching NFA (C5/C8) is built from:
// a reference's rendered edge stream is exactly what a disambiguating
// cite must be distinguishable against (§4.2, §6 "to_edge_stream").
func (t *Tree) ToEdgeStream(id NodeID, interner *edge.Interner) []edge.Edge {
	var out []edge.Edge
	t.collectEdges(id, interner, &out)
	return out
}

func (t *Tree) collectEdges(id NodeID, interner *edge.Interner, out *[]edge.Edge) {
	n := t.at(id)
	switch n.kind {
	case KindRendered:
		if n.rendered == nil {
			return
		}
		if n.rendered.Sentinel != edge.SentinelNone {
			*out = append(*out, interner.Edge(edge.SentinelPayload(n.rendered.Sentinel)))
			return
		}
		if n.rendered.Text == "" {
			return
		}
		*out = append(*out, interner.Edge(edge.OutputPayload(n.rendered.Text)))

	case KindName:
		visible := n.name.VisibleCount()
		for i := 0; i < visible; i++ {
			text := n.name.Ratchets[i].Render()
			if text == "" {
				continue
			}
			*out = append(*out, interner.Edge(edge.OutputPayload(text)))
		}

	case KindConditionalDisamb:
		idx := n.cond.Selected
		if idx >= 0 && idx < len(n.cond.Branches) {
			t.collectEdges(n.cond.Branches[idx].Root, interner, out)
		}

	case KindYearSuffix:
		if n.yearSuffix.Number == nil {
			return
		}
		*out = append(*out, interner.Edge(edge.SentinelPayload(edge.YearSuffix)))

	case KindSeq:
		if !n.seq.stored.Renders() {
			return
		}
		for _, c := range n.seq.Children {
			t.collectEdges(c, interner, out)
		}

	case KindNameCounter:
		*out = append(*out, interner.Edge(edge.OutputPayload(strconv.Itoa(n.nameCounter.Count))))
	}
}
