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

import "github.com/google/uuid"

// Tree is one arena of IR nodes: one cite, one disambiguation
// generation. Generation is a stable external handle (§3
// "Lifecycles": "IR trees: created per cite per disambiguation
// generation ... replaced atomically when a new generation is
// produced") — modeled as a uuid the way the teacher mints a fresh
// BOM-ref per cloned component.
type Tree struct {
	Generation string
	Root       NodeID
	nodes      []node
}

// NewTree allocates an empty arena and stamps it with a fresh
// generation id.
func NewTree() *Tree {
	return &Tree{Generation: uuid.NewString()}
}

func (t *Tree) alloc(n node) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, n)
	return id
}

func (t *Tree) at(id NodeID) *node {
	return &t.nodes[id]
}

// NewRendered allocates a Rendered leaf. value == nil produces
// `Rendered(None)`.
func (t *Tree) NewRendered(value *RenderedValue) NodeID {
	return t.alloc(node{kind: KindRendered, rendered: value})
}

// NewName allocates a Name block node.
func (t *Tree) NewName(n NameIR) NodeID {
	nn := n
	return t.alloc(node{kind: KindName, name: &nn})
}

// NewNamesBlock allocates a <names> element's Name node. Callers
// should route every <names> element through this constructor rather
// than skipping the node entirely when a reference has no values for
// the variable it names (e.g. no editors): the block still belongs in
// the tree, contributing an empty edge and GroupVars::OnlyEmpty rather
// than being omitted, so a surrounding <group> isn't blanked just
// because one optional name list was absent (§7 "missing required
// variable" fallback path).
func (t *Tree) NewNamesBlock(n NameIR) NodeID {
	return t.NewName(n)
}

// NewConditionalDisamb allocates a <choose>-style node.
func (t *Tree) NewConditionalDisamb(c ConditionalDisambNode) NodeID {
	cn := c
	return t.alloc(node{kind: KindConditionalDisamb, cond: &cn})
}

// NewYearSuffix allocates a year-suffix hook.
func (t *Tree) NewYearSuffix(y YearSuffixHookNode) NodeID {
	yn := y
	return t.alloc(node{kind: KindYearSuffix, yearSuffix: &yn})
}

// NewSeq allocates a Seq node and recomputes its stored group-vars
// from its (already-built) children.
func (t *Tree) NewSeq(s SeqNode) NodeID {
	sn := s
	id := t.alloc(node{kind: KindSeq, seq: &sn})
	t.RecomputeGroupVars(id)
	return id
}

// NewNameCounter allocates a name-counter node.
func (t *Tree) NewNameCounter(c NameCounterNode) NodeID {
	cn := c
	return t.alloc(node{kind: KindNameCounter, nameCounter: &cn})
}

// Kind returns the node's tag.
func (t *Tree) Kind(id NodeID) Kind { return t.at(id).kind }

// Rendered returns the node's RenderedValue payload. Panics if id is
// not a Rendered node (a caller-side logic error, not a data
// condition).
func (t *Tree) Rendered(id NodeID) *RenderedValue {
	n := t.at(id)
	mustBe(n.kind, KindRendered)
	return n.rendered
}

// Name returns the node's NameIR payload for direct inspection or
// mutation by the driver.
func (t *Tree) Name(id NodeID) *NameIR {
	n := t.at(id)
	mustBe(n.kind, KindName)
	return n.name
}

// ConditionalDisamb returns the node's branch-selection state.
func (t *Tree) ConditionalDisamb(id NodeID) *ConditionalDisambNode {
	n := t.at(id)
	mustBe(n.kind, KindConditionalDisamb)
	return n.cond
}

// YearSuffix returns the node's year-suffix hook state.
func (t *Tree) YearSuffix(id NodeID) *YearSuffixHookNode {
	n := t.at(id)
	mustBe(n.kind, KindYearSuffix)
	return n.yearSuffix
}

// Seq returns the node's sequence state.
func (t *Tree) Seq(id NodeID) *SeqNode {
	n := t.at(id)
	mustBe(n.kind, KindSeq)
	return n.seq
}

// NameCounter returns the node's name-counter state.
func (t *Tree) NameCounter(id NodeID) *NameCounterNode {
	n := t.at(id)
	mustBe(n.kind, KindNameCounter)
	return n.nameCounter
}

func mustBe(got, want Kind) {
	if got != want {
		panic("ir: node kind mismatch")
	}
}
