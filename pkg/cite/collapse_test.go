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

package cite

import (
	"context"
	"reflect"
	"testing"

	"github.com/go-csl/citeproc/pkg/automaton"
	"github.com/go-csl/citeproc/pkg/edge"
	"github.com/go-csl/citeproc/pkg/format"
	"github.com/go-csl/citeproc/pkg/ir"
	"github.com/go-csl/citeproc/pkg/names"
	"github.com/go-csl/citeproc/pkg/style"
)

func TestCollapseRangesScenarioS4(t *testing.T) {
	got := CollapseRanges([]int{1, 2, 3, 5, 6, 9})
	want := []RangePiece{
		{Lo: 1, Hi: 3},
		{Lo: 5, Hi: 6},
		{Lo: 9, Hi: 9, Single: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestCollapseRangesProperty6(t *testing.T) {
	cases := []struct {
		in   []int
		want []RangePiece
	}{
		{[]int{1, 2, 3}, []RangePiece{{Lo: 1, Hi: 3}}},
		{[]int{1, 2, 4}, []RangePiece{{Lo: 1, Hi: 2}, {Lo: 4, Hi: 4, Single: true}}},
		{nil, nil},
	}
	for _, c := range cases {
		got := CollapseRanges(c.in)
		if !reflect.DeepEqual(got, c.want) {
			t.Fatalf("CollapseRanges(%v) = %+v, want %+v", c.in, got, c.want)
		}
	}
}

func buildNameBlockTree(literal string) (*ir.Tree, ir.NodeID, ir.NodeID) {
	tree := ir.NewTree()
	nameID := tree.NewName(ir.NameIR{
		Ratchets: []ir.DisambNameRatchet{{Kind: ir.RatchetLiteral, Literal: literal}},
	})
	seq := tree.NewSeq(ir.SeqNode{Children: []ir.NodeID{nameID}})
	return tree, nameID, seq
}

func TestScenarioS6SuppressNamesCollapsing(t *testing.T) {
	f := format.NewPlainFormatter()

	tree1, name1, seq1 := buildNameBlockTree("Smith")
	tree2, name2, seq2 := buildNameBlockTree("Smith")
	tree3, name3, seq3 := buildNameBlockTree("Smith")

	cites := []GroupedCite{
		{FirstNameBlock: name1},
		{FirstNameBlock: name2},
		{FirstNameBlock: name3},
	}
	trees := map[ir.NodeID]*ir.Tree{name1: tree1, name2: tree2, name3: tree3}

	Group(cites, f, trees)

	if !cites[0].IsFirst || cites[0].ShouldCollapse {
		t.Fatalf("expected cite 1 to be first and not collapse")
	}
	if cites[1].IsFirst || !cites[1].ShouldCollapse {
		t.Fatalf("expected cite 2 to collapse")
	}
	if cites[2].IsFirst || !cites[2].ShouldCollapse {
		t.Fatalf("expected cite 3 to collapse")
	}

	ancestor := map[ir.NodeID]ir.NodeID{name1: seq1, name2: seq2, name3: seq3}
	Collapse(style.CollapseYear, cites, ancestor, trees)

	if tree1.Flatten(seq1, f) != "Smith" {
		t.Fatalf("expected first cite's name block to survive, got %q", tree1.Flatten(seq1, f))
	}
	if got := tree2.Flatten(seq2, f); got != "" {
		t.Fatalf("expected second cite's name block suppressed to Rendered(None), got %q", got)
	}
	if got := tree3.Flatten(seq3, f); got != "" {
		t.Fatalf("expected third cite's name block suppressed to Rendered(None), got %q", got)
	}
}

// buildYearSuffixCiteTree builds a one-cite tree with a name block, a
// plain year literal, and a year-suffix hook pre-assigned to
// suffixNumber, all joined under one Seq — the shape a per-cite render
// produces once C8 step 5 has assigned suffixes.
func buildYearSuffixCiteTree(literal string, suffixNumber int) (tree *ir.Tree, nameID, yearID, hookID, seq ir.NodeID) {
	tree = ir.NewTree()
	nameID = tree.NewName(ir.NameIR{
		Ratchets: []ir.DisambNameRatchet{{Kind: ir.RatchetLiteral, Literal: literal}},
	})
	yearID = tree.NewRendered(&ir.RenderedValue{Text: "2020"})
	n := suffixNumber
	hookID = tree.NewYearSuffix(ir.YearSuffixHookNode{Number: &n})
	seq = tree.NewSeq(ir.SeqNode{Children: []ir.NodeID{nameID, yearID, hookID}, Delimiter: " "})
	return tree, nameID, yearID, hookID, seq
}

func TestCollapseYearSuffixSuppressesYearLiteral(t *testing.T) {
	f := format.NewPlainFormatter()
	tree1, name1, year1, hook1, seq1 := buildYearSuffixCiteTree("Smith", 0)
	tree2, name2, year2, hook2, seq2 := buildYearSuffixCiteTree("Smith", 1)

	cites := []GroupedCite{
		{FirstNameBlock: name1, YearLiteral: year1, HasYearLiteral: true, YearSuffixHook: hook1, HasYearSuffix: true},
		{FirstNameBlock: name2, YearLiteral: year2, HasYearLiteral: true, YearSuffixHook: hook2, HasYearSuffix: true},
	}
	trees := map[ir.NodeID]*ir.Tree{
		name1: tree1, year1: tree1, hook1: tree1,
		name2: tree2, year2: tree2, hook2: tree2,
	}
	Group(cites, f, trees)

	ancestor := map[ir.NodeID]ir.NodeID{
		name1: seq1, year1: seq1, hook1: seq1,
		name2: seq2, year2: seq2, hook2: seq2,
	}
	Collapse(style.CollapseYearSuffix, cites, ancestor, trees)

	if got := tree1.Flatten(seq1, f); got != "Smith 2020 a" {
		t.Fatalf("expected the first cite unchanged, got %q", got)
	}
	if got := tree2.Flatten(seq2, f); got != "b" {
		t.Fatalf("expected the second cite's name and year literal suppressed, keeping only the suffix, got %q", got)
	}
}

func TestCollapseYearSuffixRangedFoldsConsecutiveLetters(t *testing.T) {
	f := format.NewPlainFormatter()
	tree1, name1, year1, hook1, seq1 := buildYearSuffixCiteTree("Doe", 0)
	tree2, name2, year2, hook2, seq2 := buildYearSuffixCiteTree("Doe", 1)
	tree3, name3, year3, hook3, seq3 := buildYearSuffixCiteTree("Doe", 2)

	cites := []GroupedCite{
		{FirstNameBlock: name1, YearLiteral: year1, HasYearLiteral: true, YearSuffixHook: hook1, HasYearSuffix: true},
		{FirstNameBlock: name2, YearLiteral: year2, HasYearLiteral: true, YearSuffixHook: hook2, HasYearSuffix: true},
		{FirstNameBlock: name3, YearLiteral: year3, HasYearLiteral: true, YearSuffixHook: hook3, HasYearSuffix: true},
	}
	trees := map[ir.NodeID]*ir.Tree{
		name1: tree1, year1: tree1, hook1: tree1,
		name2: tree2, year2: tree2, hook2: tree2,
		name3: tree3, year3: tree3, hook3: tree3,
	}
	Group(cites, f, trees)

	ancestor := map[ir.NodeID]ir.NodeID{
		name1: seq1, year1: seq1, hook1: seq1,
		name2: seq2, year2: seq2, hook2: seq2,
		name3: seq3, year3: seq3, hook3: seq3,
	}
	Collapse(style.CollapseYearSuffixRanged, cites, ancestor, trees)

	if got := tree1.Flatten(seq1, f); got != "Doe 2020 a–c" {
		t.Fatalf("expected the first cite to render the folded range, got %q", got)
	}
	if got := tree2.Flatten(seq2, f); got != "" {
		t.Fatalf("expected the second cite fully suppressed, got %q", got)
	}
	if got := tree3.Flatten(seq3, f); got != "" {
		t.Fatalf("expected the third cite fully suppressed, got %q", got)
	}
}

func TestGroupRespectsUserAffixedBarrier(t *testing.T) {
	f := format.NewPlainFormatter()
	tree1, name1, _ := buildNameBlockTree("Smith")
	tree2, name2, _ := buildNameBlockTree("Smith")

	cites := []GroupedCite{
		{FirstNameBlock: name1},
		{FirstNameBlock: name2, UserAffixed: true},
	}
	trees := map[ir.NodeID]*ir.Tree{name1: tree1, name2: tree2}

	Group(cites, f, trees)

	if cites[1].ShouldCollapse {
		t.Fatalf("a user-supplied affix should act as a grouping barrier")
	}
}

func TestAssignYearSuffixesOrdersByFirstAppearance(t *testing.T) {
	tree1 := ir.NewTree()
	hook1 := tree1.NewYearSuffix(ir.YearSuffixHookNode{})
	tree2 := ir.NewTree()
	hook2 := tree2.NewYearSuffix(ir.YearSuffixHookNode{})
	tree3 := ir.NewTree()
	hook3 := tree3.NewYearSuffix(ir.YearSuffixHookNode{})

	c1 := &Cite{ReferenceID: "refA", Tree: tree1}
	c1.SetYearSuffixHook(hook1)
	c2 := &Cite{ReferenceID: "refB", Tree: tree2}
	c2.SetYearSuffixHook(hook2)
	c3 := &Cite{ReferenceID: "refA", Tree: tree3}
	c3.SetYearSuffixHook(hook3)

	AssignYearSuffixes([]*Cite{c1, c2, c3})

	if *tree1.YearSuffix(hook1).Number != 0 {
		t.Fatalf("expected refA's first appearance to get suffix 0")
	}
	if *tree2.YearSuffix(hook2).Number != 1 {
		t.Fatalf("expected refB to get the next distinct suffix 1")
	}
	if *tree3.YearSuffix(hook3).Number != 0 {
		t.Fatalf("expected refA's repeat cite to reuse suffix 0")
	}
}

func TestDriverLeavesUnambiguousCiteUntouched(t *testing.T) {
	tree := ir.NewTree()
	tree.Root = tree.NewRendered(&ir.RenderedValue{Text: "Unique Author 2020"})

	interner := edge.New()
	tok := interner.Edge(edge.OutputPayload("Unique Author 2020"))
	nfa := automaton.New()
	start := nfa.AddNode()
	nfa.MarkStart(start)
	end := automaton.Append(nfa, start, []edge.Edge{tok})
	nfa.MarkAccept(end)

	c := NewCite("ref1", tree, names.MethodNone)

	d := NewDriver(interner, []ReferenceAutomaton{{ReferenceID: "ref1", Nfa: nfa}})
	if err := d.Disambiguate(context.Background(), c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
