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

	"github.com/go-csl/citeproc/pkg/edge"
	"github.com/go-csl/citeproc/pkg/format"
	"github.com/go-csl/citeproc/pkg/names"
	"github.com/go-csl/citeproc/pkg/style"
)

func TestFlattenSeqJoinsChildrenWithDelimiter(t *testing.T) {
	tree := NewTree()
	a := tree.NewRendered(&RenderedValue{Text: "Smith"})
	b := tree.NewRendered(&RenderedValue{Text: "2020"})
	seq := tree.NewSeq(SeqNode{Children: []NodeID{a, b}, Delimiter: ", "})

	f := format.NewPlainFormatter()
	got := tree.Flatten(seq, f)
	if got != "Smith, 2020" {
		t.Fatalf("got %q", got)
	}
}

func TestFlattenMissingSeqRendersEmpty(t *testing.T) {
	tree := NewTree()
	missing := tree.NewRendered(nil)
	seq := tree.NewSeq(SeqNode{Children: []NodeID{missing}})

	if tree.GroupVars(seq) != Missing {
		t.Fatalf("expected Missing, got %v", tree.GroupVars(seq))
	}
	f := format.NewPlainFormatter()
	if got := tree.Flatten(seq, f); got != "" {
		t.Fatalf("expected empty render for a Missing seq, got %q", got)
	}
}

func TestFlattenAppliesAffixesAndCase(t *testing.T) {
	tree := NewTree()
	a := tree.NewRendered(&RenderedValue{Text: "hello"})
	seq := tree.NewSeq(SeqNode{
		Children: []NodeID{a},
		Affixes:  Affixes{Prefix: "(", Suffix: ")"},
		TextCase: CaseUpper,
	})
	f := format.NewPlainFormatter()
	if got := tree.Flatten(seq, f); got != "(HELLO)" {
		t.Fatalf("got %q", got)
	}
}

func TestFlattenNameHonorsEtAlTruncation(t *testing.T) {
	tree := NewTree()
	el := style.NameElement{}
	n := NameIR{
		Element:   el,
		Delimiter: ", ",
		EtAl:      EtAl{Min: 2, UseFirst: 1},
		Ratchets: []DisambNameRatchet{
			{Kind: RatchetPerson, Element: el, Person: names.PersonName{Family: "Smith", Given: "Alice"}},
			{Kind: RatchetPerson, Element: el, Person: names.PersonName{Family: "Jones", Given: "Bob"}},
			{Kind: RatchetPerson, Element: el, Person: names.PersonName{Family: "Lee", Given: "Cora"}},
		},
	}
	id := tree.NewName(n)
	f := format.NewPlainFormatter()
	got := tree.Flatten(id, f)
	if got != "Alice Smith" {
		t.Fatalf("expected et-al truncation to one name, got %q", got)
	}
}

func TestToEdgeStreamInternsInRenderedOrder(t *testing.T) {
	tree := NewTree()
	a := tree.NewRendered(&RenderedValue{Text: "Smith"})
	b := tree.NewRendered(&RenderedValue{Sentinel: edge.YearSuffix})
	seq := tree.NewSeq(SeqNode{Children: []NodeID{a, b}})

	interner := edge.New()
	stream := tree.ToEdgeStream(seq, interner)
	if len(stream) != 2 {
		t.Fatalf("expected 2 edges, got %d", len(stream))
	}
	if interner.Payload(stream[0]).Output != "Smith" {
		t.Fatalf("first edge should be the literal text")
	}
	if interner.Payload(stream[1]).Sentinel != edge.YearSuffix {
		t.Fatalf("second edge should be the year-suffix sentinel")
	}
}

func TestListYearSuffixHooksFindsNestedHook(t *testing.T) {
	tree := NewTree()
	hook := tree.NewYearSuffix(YearSuffixHookNode{})
	inner := tree.NewSeq(SeqNode{Children: []NodeID{hook}})
	outer := tree.NewSeq(SeqNode{Children: []NodeID{inner}})

	hooks := tree.ListYearSuffixHooks(outer)
	if len(hooks) != 1 || hooks[0] != hook {
		t.Fatalf("expected to find the single nested hook, got %v", hooks)
	}
}
