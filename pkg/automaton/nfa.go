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

// Package automaton implements the reference-matching NFA (C2): a
// graph with epsilon edges and edges labeled by interned edge.Edge
// values, supporting union (multiple start nodes), sequential
// extension, and subset-construction matching against an edge stream.
package automaton

import "github.com/go-csl/citeproc/pkg/edge"

// NodeID identifies a node within one Nfa.
type NodeID int

// Label is either Epsilon or a Token carrying one interned edge. The
// sentinel edges described in spec.md §6 (YearSuffix, Locator, ...)
// are ordinary Token labels: because the edge interner gives every
// sentinel tag exactly one Edge id regardless of the concrete value it
// stands for (§3), comparing by Edge equality already implements the
// "wildcard" matching spec.md §6 describes — a YearSuffix token
// matches any position in the stream that was itself emitted as a
// YearSuffix sentinel, with no separate wildcard machinery needed.
type Label struct {
	Epsilon bool
	Tok     edge.Edge
}

// EpsilonLabel returns the epsilon label.
func EpsilonLabel() Label { return Label{Epsilon: true} }

// TokenLabel returns a label consuming exactly one occurrence of e.
func TokenLabel(e edge.Edge) Label { return Label{Tok: e} }

type transition struct {
	label Label
	to    NodeID
}

// Nfa is a directed graph with node set N, start-node set S, and
// accept-node set A, per spec.md §3. Multiple start nodes express
// union: "pick any expansion".
type Nfa struct {
	adj     [][]transition
	starts  map[NodeID]struct{}
	accepts map[NodeID]struct{}
}

// New returns an empty Nfa with no nodes, starts, or accepts.
func New() *Nfa {
	return &Nfa{
		starts:  make(map[NodeID]struct{}),
		accepts: make(map[NodeID]struct{}),
	}
}

// AddNode allocates and returns a fresh node.
func (n *Nfa) AddNode() NodeID {
	id := NodeID(len(n.adj))
	n.adj = append(n.adj, nil)
	return id
}

// AddEdge adds a labeled transition from -> to.
func (n *Nfa) AddEdge(from, to NodeID, label Label) {
	n.adj[from] = append(n.adj[from], transition{label: label, to: to})
}

// MarkStart marks node as a start node.
func (n *Nfa) MarkStart(node NodeID) { n.starts[node] = struct{}{} }

// MarkAccept marks node as accepting. Invariant: every accepting node
// must be reachable from some start (the caller is responsible for
// this; Accepts does not validate it).
func (n *Nfa) MarkAccept(node NodeID) { n.accepts[node] = struct{}{} }

// IsAccept reports whether node was marked accepting.
func (n *Nfa) IsAccept(node NodeID) bool {
	_, ok := n.accepts[node]
	return ok
}

// NodeCount returns the number of nodes allocated so far.
func (n *Nfa) NodeCount() int { return len(n.adj) }

func (n *Nfa) epsilonClosure(set map[NodeID]struct{}) map[NodeID]struct{} {
	closure := make(map[NodeID]struct{}, len(set))
	stack := make([]NodeID, 0, len(set))
	for node := range set {
		closure[node] = struct{}{}
		stack = append(stack, node)
	}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, tr := range n.adj[node] {
			if !tr.label.Epsilon {
				continue
			}
			if _, seen := closure[tr.to]; !seen {
				closure[tr.to] = struct{}{}
				stack = append(stack, tr.to)
			}
		}
	}
	return closure
}

func (n *Nfa) step(set map[NodeID]struct{}, tok edge.Edge) map[NodeID]struct{} {
	next := make(map[NodeID]struct{})
	for node := range set {
		for _, tr := range n.adj[node] {
			if tr.label.Epsilon {
				continue
			}
			if tr.label.Tok == tok {
				next[tr.to] = struct{}{}
			}
		}
	}
	return next
}

// Accepts reports whether some path from a start node consumes the
// entire stream and ends in an accepting node, via subset construction
// with epsilon-closure.
func (n *Nfa) Accepts(stream []edge.Edge) bool {
	startSet := make(map[NodeID]struct{}, len(n.starts))
	for s := range n.starts {
		startSet[s] = struct{}{}
	}
	current := n.epsilonClosure(startSet)

	for _, tok := range stream {
		if len(current) == 0 {
			return false
		}
		current = n.epsilonClosure(n.step(current, tok))
	}

	for node := range current {
		if n.IsAccept(node) {
			return true
		}
	}
	return false
}

// Append is a pure linearization helper: it adds a chain of Token
// transitions for tokens, starting at from, and returns the new
// frontier node — the node reached after consuming every token. It
// never mutates the caller's notion of "from" (per spec.md §9's
// "avoid hidden mutation of the caller's frontier"); the caller
// decides what to do with the returned frontier (thread it onward,
// mark it accepting, union it with another branch, ...).
func Append(n *Nfa, from NodeID, tokens []edge.Edge) NodeID {
	frontier := from
	for _, tok := range tokens {
		next := n.AddNode()
		n.AddEdge(frontier, next, TokenLabel(tok))
		frontier = next
	}
	return frontier
}

// Union adds an epsilon edge from "from" to each of the given
// alternative start nodes, expressing "pick any one of these
// branches". It is the mechanism behind multi-start NFAs built from a
// single attachment point (e.g. one name block's several expansion
// levels).
func Union(n *Nfa, from NodeID, branchStarts ...NodeID) {
	for _, b := range branchStarts {
		n.AddEdge(from, b, EpsilonLabel())
	}
}
