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
	"github.com/go-csl/citeproc/pkg/format"
	"github.com/go-csl/citeproc/pkg/ir"
	"github.com/go-csl/citeproc/pkg/style"
)

// GroupedCite augments a cite with its §4.9 grouping/collapsing state.
type GroupedCite struct {
	Cite *Cite

	IsFirst        bool
	ShouldCollapse bool
	FirstNameBlock ir.NodeID
	YearLiteral    ir.NodeID // the plain Rendered(year) node, distinct from the suffix hook
	HasYearLiteral bool
	YearSuffixHook ir.NodeID
	HasYearSuffix  bool
	UserAffixed    bool // a user-supplied prefix/suffix on this cite
	CitationNumber int
}

// Group marks adjacent cites sharing an identical first-name-block
// rendering (§4.9 "adjacent cites with identical first-name-block
// flatten output"), honoring the barrier exception: a user-supplied
// prefix or suffix on either side of a boundary stops grouping across
// it, the same way the teacher's combine() step refuses to merge
// inputs of different spec types (canCombine's "all input specs should
// be of the same type" early-exit).
func Group(cites []GroupedCite, f format.Formatter, trees map[ir.NodeID]*ir.Tree) {
	for i := range cites {
		cites[i].IsFirst = true
		cites[i].ShouldCollapse = false
	}
	for i := 1; i < len(cites); i++ {
		prev, cur := &cites[i-1], &cites[i]
		if prev.UserAffixed || cur.UserAffixed {
			continue
		}
		prevTree := trees[prev.FirstNameBlock]
		curTree := trees[cur.FirstNameBlock]
		if prevTree == nil || curTree == nil {
			continue
		}
		if prevTree.Flatten(prev.FirstNameBlock, f) != curTree.Flatten(cur.FirstNameBlock, f) {
			continue
		}
		cur.IsFirst = false
		cur.ShouldCollapse = true
	}
}

// Collapse applies style.Collapse to a grouped run, mutating each
// collapsible cite's tree per §4.9: CitationNumber collapsing is left
// to the caller (it operates on citation numbers across the whole run,
// not per-cite IR mutation — see RangePiece/CollapseRanges below);
// every other mode suppresses the collapsed cite's first name block.
// CollapseYearSuffix and CollapseYearSuffixRanged additionally suppress
// the plain year literal, keeping only the year-suffix letter, and
// CollapseYearSuffixRanged further folds consecutive suffix letters
// within a run into a single "a-c"-style range (reusing CollapseRanges,
// the same rule citation-number collapsing applies to reference
// numbers).
func Collapse(mode style.CollapseMode, cites []GroupedCite, ancestorSeq map[ir.NodeID]ir.NodeID, trees map[ir.NodeID]*ir.Tree) {
	if mode == style.CollapseNone || mode == style.CollapseCitationNumber {
		return
	}
	for i := range cites {
		c := &cites[i]
		if !c.ShouldCollapse {
			continue
		}
		if t := trees[c.FirstNameBlock]; t != nil {
			if anc, ok := ancestorSeq[c.FirstNameBlock]; ok {
				t.SuppressNames(c.FirstNameBlock, anc)
			}
		}
		if mode == style.CollapseYearSuffix || mode == style.CollapseYearSuffixRanged {
			suppressYearLiteral(c, ancestorSeq, trees)
		}
	}
	if mode == style.CollapseYearSuffixRanged {
		collapseYearSuffixRuns(cites, ancestorSeq, trees)
	}
}

// suppressYearLiteral clears c's plain year-literal Rendered node,
// leaving only its year-suffix hook visible. A cite with no year-suffix
// hook of its own has nothing to fall back on, so it keeps its plain
// year instead of going blank.
func suppressYearLiteral(c *GroupedCite, ancestorSeq map[ir.NodeID]ir.NodeID, trees map[ir.NodeID]*ir.Tree) {
	if !c.HasYearLiteral || !c.HasYearSuffix {
		return
	}
	t := trees[c.YearLiteral]
	if t == nil {
		return
	}
	if anc, ok := ancestorSeq[c.YearLiteral]; ok {
		t.SuppressRendered(c.YearLiteral, anc)
	}
}

// collapseYearSuffixRuns walks cites in document order, regrouping
// them into the same adjacency runs Group() built (each run starts at
// an IsFirst cite and extends through the following ShouldCollapse
// ones), and range-collapses each run's year-suffix numbers.
func collapseYearSuffixRuns(cites []GroupedCite, ancestorSeq map[ir.NodeID]ir.NodeID, trees map[ir.NodeID]*ir.Tree) {
	i := 0
	for i < len(cites) {
		j := i + 1
		for j < len(cites) && !cites[j].IsFirst {
			j++
		}
		collapseRunYearSuffixRange(cites[i:j], ancestorSeq, trees)
		i = j
	}
}

// collapseRunYearSuffixRange folds run's year-suffix numbers into
// RangePieces. A non-single piece keeps its first hook rendering the
// whole span ("a-c") and suppresses the interior/trailing hooks in the
// piece, the same shape CollapseRanges already gives citation numbers.
func collapseRunYearSuffixRange(run []GroupedCite, ancestorSeq map[ir.NodeID]ir.NodeID, trees map[ir.NodeID]*ir.Tree) {
	if len(run) < 2 {
		return
	}
	nums := make([]int, 0, len(run))
	for _, c := range run {
		if !c.HasYearSuffix {
			return
		}
		t := trees[c.YearSuffixHook]
		if t == nil {
			return
		}
		n := t.YearSuffix(c.YearSuffixHook).Number
		if n == nil {
			return
		}
		nums = append(nums, *n)
	}

	idx := 0
	for _, p := range CollapseRanges(nums) {
		if p.Single {
			idx++
			continue
		}
		span := p.Hi - p.Lo + 1
		firstHook := run[idx].YearSuffixHook
		firstTree := trees[firstHook]
		end := p.Hi
		firstTree.YearSuffix(firstHook).RangeEnd = &end
		for k := 1; k < span; k++ {
			hookID := run[idx+k].YearSuffixHook
			if anc, ok := ancestorSeq[hookID]; ok {
				trees[hookID].SuppressYear(hookID, anc)
			}
		}
		idx += span
	}
}

// RangePiece is either a single citation number or an inclusive range
// of consecutive ones (§3 "RangePiece").
type RangePiece struct {
	Lo, Hi int
	Single bool
}

// CollapseRanges implements the range-compression rule (§8 property 6,
// S4): consecutive integers collapse into a Range; a non-consecutive
// value breaks the run into a new piece. Input must already be sorted
// ascending; CollapseRanges does not sort.
func CollapseRanges(nums []int) []RangePiece {
	if len(nums) == 0 {
		return nil
	}
	pieces := make([]RangePiece, 0, len(nums))
	start := nums[0]
	prev := nums[0]
	flush := func(end int) {
		if start == end {
			pieces = append(pieces, RangePiece{Lo: start, Hi: start, Single: true})
		} else {
			pieces = append(pieces, RangePiece{Lo: start, Hi: end})
		}
	}
	for _, n := range nums[1:] {
		if n == prev+1 {
			prev = n
			continue
		}
		flush(prev)
		start = n
		prev = n
	}
	flush(prev)
	return pieces
}
