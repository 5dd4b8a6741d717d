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
package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/go-csl/citeproc/pkg/automaton"
	"github.com/go-csl/citeproc/pkg/cite"
	"github.com/go-csl/citeproc/pkg/edge"
	"github.com/go-csl/citeproc/pkg/format"
	"github.com/go-csl/citeproc/pkg/ir"
	"github.com/go-csl/citeproc/pkg/logger"
	"github.com/go-csl/citeproc/pkg/names"
	"github.com/go-csl/citeproc/pkg/reference"
	"github.com/go-csl/citeproc/pkg/style"
)

var renderCmd = &cobra.Command{
	Use:          "render",
	Short:        "Render a plain bibliography from a reference set",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		refsPath, _ := cmd.Flags().GetString("references")
		if refsPath == "" {
			return fmt.Errorf("--references is required")
		}
		noColor, _ := cmd.Flags().GetBool("no-color")
		st := mustLoadStyleOrDefault(cmd)

		refs, err := LoadReferences(refsPath)
		if err != nil {
			return err
		}

		ctx := loggerContext(cmd)
		log := logger.FromContext(ctx)

		entries, err := renderBibliography(ctx, refs, st)
		if err != nil {
			return err
		}
		log.Debugw("bibliography rendered", "entries", len(entries))

		w := format.NewBibliographyWriter(os.Stdout, noColor)
		w.WriteEntries(entries)
		return nil
	},
}

// renderBibliography runs the whole per-cite pipeline over every
// reference in refs, in store order, one cite per reference: build a
// per-reference matching automaton (C2, via ir.AppendToAutomaton), run
// the per-cite disambiguation driver (C8) against the full set, assign
// year suffixes document-wide, then group adjacent identical cites and
// collapse them (C9) before flattening each cite's tree to text.
func renderBibliography(ctx context.Context, refs *reference.Store, st style.Style) ([]format.Entry, error) {
	all := refs.All()
	interner := edge.New()

	refAutomata := make([]cite.ReferenceAutomaton, 0, len(all))
	for _, r := range all {
		refTree, _, _, _ := buildCiteTree(r)
		nfa := automaton.New()
		start := nfa.AddNode()
		nfa.MarkStart(start)
		end := refTree.AppendToAutomaton(refTree.Root, interner, nfa, start, nil)
		nfa.MarkAccept(end)
		refAutomata = append(refAutomata, cite.ReferenceAutomaton{ReferenceID: r.ID, Nfa: nfa})
	}
	driver := cite.NewDriver(interner, refAutomata)

	method := names.DeriveMethod(st.GivenNameDisambiguationRule, true)

	type citeMeta struct {
		c      *cite.Cite
		nameID ir.NodeID
		yearID ir.NodeID
		hookID ir.NodeID
		seqID  ir.NodeID
	}
	metas := make([]citeMeta, 0, len(all))
	for _, r := range all {
		tree, nameID, yearID, hookID := buildCiteTree(r)
		c := cite.NewCite(r.ID, tree, method)
		metas = append(metas, citeMeta{c: c, nameID: nameID, yearID: yearID, hookID: hookID, seqID: tree.Root})
	}

	cites := make([]*cite.Cite, len(metas))
	for i, m := range metas {
		cites[i] = m.c
	}
	for i, c := range cites {
		if err := driver.Disambiguate(ctx, c); err != nil {
			return nil, err
		}
		// Passes 1-4 already tried to break the tie; a cite that is
		// still ambiguous afterward is exactly what pass 5's
		// year-suffix hook exists for (§4.8 step 5).
		if driver.IsAmbiguous(c) {
			c.SetYearSuffixHook(metas[i].hookID)
		}
	}
	cite.AssignYearSuffixes(cites)

	f := format.NewPlainFormatter()
	grouped := make([]cite.GroupedCite, len(metas))
	ancestorSeq := make(map[ir.NodeID]ir.NodeID, len(metas)*3)
	trees := make(map[ir.NodeID]*ir.Tree, len(metas)*3)
	for i, m := range metas {
		grouped[i] = cite.GroupedCite{
			Cite:           m.c,
			FirstNameBlock: m.nameID,
			YearLiteral:    m.yearID,
			HasYearLiteral: true,
			YearSuffixHook: m.hookID,
			HasYearSuffix:  m.c.HasYearSuffixHook(),
			CitationNumber: i + 1,
		}
		ancestorSeq[m.nameID] = m.seqID
		ancestorSeq[m.yearID] = m.seqID
		ancestorSeq[m.hookID] = m.seqID
		trees[m.nameID] = m.c.Tree
		trees[m.yearID] = m.c.Tree
		trees[m.hookID] = m.c.Tree
	}
	cite.Group(grouped, f, trees)
	cite.Collapse(st.Collapse, grouped, ancestorSeq, trees)

	entries := make([]format.Entry, 0, len(metas))
	for _, m := range metas {
		entries = append(entries, format.Entry{
			Label: m.c.ReferenceID,
			Text:  m.c.Tree.Flatten(m.c.Tree.Root, f),
		})
	}
	return entries, nil
}

// buildCiteTree lays out one reference's per-cite rendering as a
// single space-delimited Seq: an author name block, a plain year
// literal, a year-suffix hook immediately following it (left at
// Number == nil until the driver's pass 5 assigns one), and the title.
// Every <names> element routes through NewNamesBlock, not NewName
// directly, so a reference missing the variable still contributes an
// empty edge (§7) instead of skipping the node.
func buildCiteTree(r *reference.Reference) (tree *ir.Tree, nameID, yearID, hookID ir.NodeID) {
	tree = ir.NewTree()

	authors := r.PersonNames(reference.Author)
	nameID = tree.NewNamesBlock(ir.NameIR{
		Delimiter: ", ",
		Ratchets:  ratchetsFor(authors),
	})
	children := []ir.NodeID{nameID}

	if r.Issued {
		yearID = tree.NewRendered(&ir.RenderedValue{Text: strconv.Itoa(r.Year)})
	} else {
		yearID = tree.NewRendered(nil)
	}
	children = append(children, yearID)

	hookID = tree.NewYearSuffix(ir.YearSuffixHookNode{})
	children = append(children, hookID)

	if r.Title != "" {
		children = append(children, tree.NewRendered(&ir.RenderedValue{Text: r.Title}))
	}

	seq := tree.NewSeq(ir.SeqNode{Children: children, Delimiter: " "})
	tree.Root = seq
	return tree, nameID, yearID, hookID
}

func ratchetsFor(people []names.PersonName) []ir.DisambNameRatchet {
	out := make([]ir.DisambNameRatchet, 0, len(people))
	for i, p := range people {
		out = append(out, ir.DisambNameRatchet{
			Kind:    ir.RatchetPerson,
			Person:  p,
			Primary: i == 0,
		})
	}
	return out
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringP("references", "r", "", "path to a YAML references file")
	renderCmd.Flags().StringP("style", "s", "", "path to a YAML style descriptor")
	renderCmd.Flags().Bool("no-color", false, "disable colored terminal output")
}
