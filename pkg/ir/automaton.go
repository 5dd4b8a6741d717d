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
	"github.com/go-csl/citeproc/pkg/automaton"
	"github.com/go-csl/citeproc/pkg/edge"
)

// NameAlternatives supplies, for one Name block, every rendering a
// disambiguation pass could still produce for it — the "or any of
// these other expansions" a reference's automaton must also accept, so
// that adding disambiguating detail to a cite can never make it stop
// matching its own reference (§4.2, original_source's add_to_graph).
// A nil or empty return means "this name block has no further
// alternatives to offer" (it is already at its final form).
type NameAlternatives func(n *NameIR) [][]string

// AppendToAutomaton threads id's subtree onto an in-progress NFA
// starting at `from`, returning the new frontier — the automaton
// analogue of Flatten. Rendered and NameCounter leaves append a single
// token. A Name block whose alt supplies further expansions becomes a
// union of branches, one per alternative rendering, exactly as
// original_source's graph_with_stack builds one parallel branch per
// name-disambiguation option instead of enumerating the cross product
// up front. A ConditionalDisamb node also unions over all of its
// branches, since disambiguation may still flip which one is selected
// (§4.8's re-evaluation of <if disambiguate="true">); a caller that
// wants only the currently-selected branch should call Flatten/
// ToEdgeStream instead, which follow Selected alone.
func (t *Tree) AppendToAutomaton(id NodeID, interner *edge.Interner, n *automaton.Nfa, from automaton.NodeID, alt NameAlternatives) automaton.NodeID {
	node := t.at(id)
	switch node.kind {
	case KindRendered:
		if node.rendered == nil {
			return from
		}
		var e edge.Edge
		if node.rendered.Sentinel != edge.SentinelNone {
			e = interner.Edge(edge.SentinelPayload(node.rendered.Sentinel))
		} else {
			if node.rendered.Text == "" {
				return from
			}
			e = interner.Edge(edge.OutputPayload(node.rendered.Text))
		}
		return automaton.Append(n, from, []edge.Edge{e})

	case KindName:
		return t.appendNameAlternatives(node.name, interner, n, from, alt)

	case KindConditionalDisamb:
		if len(node.cond.Branches) == 0 {
			return from
		}
		branches := make([]automaton.NodeID, 0, len(node.cond.Branches))
		for _, b := range node.cond.Branches {
			branches = append(branches, t.AppendToAutomaton(b.Root, interner, n, from, alt))
		}
		return unionFrontier(n, branches)

	case KindYearSuffix:
		if node.yearSuffix.Number == nil {
			return from
		}
		e := interner.Edge(edge.SentinelPayload(edge.YearSuffix))
		return automaton.Append(n, from, []edge.Edge{e})

	case KindSeq:
		if !node.seq.stored.Renders() {
			return from
		}
		cur := from
		for _, c := range node.seq.Children {
			cur = t.AppendToAutomaton(c, interner, n, cur, alt)
		}
		return cur

	case KindNameCounter:
		e := interner.Edge(edge.OutputPayload(itoa(node.nameCounter.Count)))
		return automaton.Append(n, from, []edge.Edge{e})

	default:
		return from
	}
}

// appendNameAlternatives builds one branch per alternative rendering
// alt offers for n (plus n's own current rendering), unions them at a
// shared new node, and returns it as the new frontier. The current
// rendering contributes one token per visible ratchet; each alternative
// contributes one token per non-empty string alt returns. There is no
// separate token-counting guard, so the automaton grows with the number
// of alternatives alt supplies.
func (t *Tree) appendNameAlternatives(nm *NameIR, interner *edge.Interner, n *automaton.Nfa, from automaton.NodeID, alt NameAlternatives) automaton.NodeID {
	renderings := currentNameTokens(nm)
	if alt != nil {
		renderings = append(renderings, alt(nm)...)
	}
	if len(renderings) == 0 {
		return from
	}
	branches := make([]automaton.NodeID, 0, len(renderings))
	for _, tokens := range renderings {
		edges := make([]edge.Edge, 0, len(tokens))
		for _, tok := range tokens {
			if tok == "" {
				continue
			}
			edges = append(edges, interner.Edge(edge.OutputPayload(tok)))
		}
		branches = append(branches, automaton.Append(n, from, edges))
	}
	return unionFrontier(n, branches)
}

func currentNameTokens(nm *NameIR) [][]string {
	visible := nm.VisibleCount()
	if visible == 0 {
		return nil
	}
	tokens := make([]string, 0, visible)
	for i := 0; i < visible; i++ {
		tokens = append(tokens, nm.Ratchets[i].Render())
	}
	return [][]string{tokens}
}

// unionFrontier collapses several frontiers into one shared node via
// epsilon edges, so the rest of the chain can continue from a single
// NodeID regardless of how many alternatives led into it.
func unionFrontier(n *automaton.Nfa, frontiers []automaton.NodeID) automaton.NodeID {
	if len(frontiers) == 1 {
		return frontiers[0]
	}
	joined := n.AddNode()
	for _, f := range frontiers {
		n.AddEdge(f, joined, automaton.EpsilonLabel())
	}
	return joined
}

func itoa(v int) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
