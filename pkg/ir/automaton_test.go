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
	"testing"

	"github.com/go-csl/citeproc/pkg/automaton"
	"github.com/go-csl/citeproc/pkg/edge"
	"github.com/go-csl/citeproc/pkg/names"
	"github.com/go-csl/citeproc/pkg/style"
)

func TestAppendToAutomatonAcceptsCurrentRendering(t *testing.T) {
	tree := NewTree()
	a := tree.NewRendered(&RenderedValue{Text: "Smith"})
	b := tree.NewRendered(&RenderedValue{Text: "2020"})
	seq := tree.NewSeq(SeqNode{Children: []NodeID{a, b}})

	interner := edge.New()
	nfa := automaton.New()
	start := nfa.AddNode()
	nfa.MarkStart(start)
	end := tree.AppendToAutomaton(seq, interner, nfa, start, nil)
	nfa.MarkAccept(end)

	stream := tree.ToEdgeStream(seq, interner)
	if !nfa.Accepts(stream) {
		t.Fatalf("expected the automaton built from the same subtree to accept its own edge stream")
	}
}

func TestAppendToAutomatonUnionsNameAlternatives(t *testing.T) {
	tree := NewTree()
	el := style.NameElement{}
	n := NameIR{
		Ratchets: []DisambNameRatchet{
			{Kind: RatchetPerson, Element: el, Person: names.PersonName{Family: "Smith", Given: "A."}},
		},
	}
	nameID := tree.NewName(n)

	interner := edge.New()
	nfa := automaton.New()
	start := nfa.AddNode()
	nfa.MarkStart(start)

	alt := func(nm *NameIR) [][]string {
		return [][]string{{"Alice Smith"}}
	}
	end := tree.AppendToAutomaton(nameID, interner, nfa, start, alt)
	nfa.MarkAccept(end)

	expanded := []edge.Edge{interner.Edge(edge.OutputPayload("Alice Smith"))}
	if !nfa.Accepts(expanded) {
		t.Fatalf("expected the automaton to accept the alternative expansion via union")
	}

	current := []edge.Edge{interner.Edge(edge.OutputPayload("A. Smith"))}
	if !nfa.Accepts(current) {
		t.Fatalf("expected the automaton to still accept the current rendering too")
	}
}
