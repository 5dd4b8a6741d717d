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

package format

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
)

// ColorScheme names the roles the terminal bibliography view colors,
// grounded on the teacher's pkg/view.ColorScheme.
type ColorScheme struct {
	YearSuffix *color.Color
	Suppressed *color.Color
	Heading    *color.Color
}

// DefaultColorScheme returns the scheme used when colored output is
// enabled.
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		YearSuffix: color.New(color.FgYellow, color.Bold),
		Suppressed: color.New(color.FgHiBlack),
		Heading:    color.New(color.FgCyan, color.Bold),
	}
}

// NoColorScheme returns a scheme whose colorers are plain passthrough.
func NoColorScheme() *ColorScheme {
	plain := color.New()
	plain.DisableColor()
	return &ColorScheme{YearSuffix: plain, Suppressed: plain, Heading: plain}
}

// BibliographyWriter renders a list of already-flattened bibliography
// entries as an aligned, optionally colored terminal table — the one
// concrete "output format backend" a complete repository needs to
// demonstrate the core end to end, grounded on the teacher's
// pkg/view.TreeRenderer column-alignment and color-scheme handling.
type BibliographyWriter struct {
	Out    io.Writer
	Scheme *ColorScheme
}

// NewBibliographyWriter wires up colorable/isatty detection the way
// the teacher's view package does, so piping output to a file or
// another process automatically disables ANSI codes.
func NewBibliographyWriter(out io.Writer, noColor bool) *BibliographyWriter {
	w := out
	if f, ok := out.(*os.File); ok {
		if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
			noColor = true
		}
		w = colorable.NewColorable(f)
	}
	scheme := DefaultColorScheme()
	if noColor {
		scheme = NoColorScheme()
	}
	return &BibliographyWriter{Out: w, Scheme: scheme}
}

func anyFile(w io.Writer) *fileWriter { return &fileWriter{w} }

type fileWriter struct{ io.Writer }

func (f *fileWriter) Write(p []byte) (int, error) { return f.Writer.Write(p) }

// Entry is one rendered bibliography item plus the label column shown
// beside it (a citation number, or a short author-year key).
type Entry struct {
	Label string
	Text  string
}

// WriteEntries prints entries as a label-aligned table, padding labels
// to the widest label's display width (rune-width aware, so wide
// glyphs in a label don't misalign the table).
func (w *BibliographyWriter) WriteEntries(entries []Entry) {
	width := 0
	for _, e := range entries {
		if rw := runewidth.StringWidth(e.Label); rw > width {
			width = rw
		}
	}
	for _, e := range entries {
		pad := width - runewidth.StringWidth(e.Label)
		fmt.Fprintf(w.Out, "%s%s  %s\n", w.Scheme.Heading.Sprint(e.Label), strings.Repeat(" ", pad), e.Text)
	}
}
