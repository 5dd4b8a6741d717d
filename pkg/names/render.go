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

package names

import (
	"strings"

	"github.com/clipperhouse/uax29/v2/words"
	"github.com/go-csl/citeproc/pkg/style"
)

// splitGivenWords tokenizes a given-name string on Unicode word
// boundaries (not naive whitespace splitting, so names using
// non-breaking spaces or hyphen-joined compound given names tokenize
// correctly), grounded on the teacher pack's cogentcore csl.Name
// splitter, reimplemented with a real Unicode segmenter instead of
// strings.Fields.
func splitGivenWords(given string) []string {
	if given == "" {
		return nil
	}
	var out []string
	seg := words.NewSegmenter([]byte(given))
	for seg.Next() {
		w := strings.TrimSpace(string(seg.Value()))
		if w == "" {
			continue
		}
		// Drop pure-punctuation segments (the segmenter yields
		// spaces and hyphens as their own "words").
		isWord := false
		for _, r := range w {
			if r != '-' && r != '.' {
				isWord = true
				break
			}
		}
		if isWord {
			out = append(out, w)
		}
	}
	return out
}

func initial(word string) string {
	r := []rune(word)
	if len(r) == 0 {
		return ""
	}
	return string(r[0])
}

// renderGiven formats the given-name portion of a person name under
// el's form/initialize settings (§4.4).
func renderGiven(el style.NameElement, given string) string {
	words := splitGivenWords(given)
	if len(words) == 0 {
		return ""
	}
	if !el.Initialize || el.Form == style.Long {
		return strings.Join(strings.Fields(given), " ")
	}

	delim := el.InitializeWith
	joiner := " "
	if el.InitializeWithHyphen {
		joiner = "-"
	}

	parts := make([]string, 0, len(words))
	for _, w := range words {
		parts = append(parts, initial(w)+delim)
	}
	return strings.Join(parts, joiner)
}

// Render formats one person-name under a given name-element
// configuration (§4.4). suppressGivenIfNotPrimary drops the given-name
// part entirely — used when rendering non-primary names in contexts
// where only family names are shown (e.g. an et-al-truncated list's
// trailing entries).
func Render(el style.NameElement, p PersonName, suppressGivenIfNotPrimary bool) string {
	if p.IsLiteral() {
		return p.Literal
	}

	family := p.Family
	if !el.DemoteNonDroppingParticle && p.NonDroppingParticle != "" {
		family = p.NonDroppingParticle + " " + family
	}
	if p.Suffix != "" {
		family = family + ", " + p.Suffix
	}

	var given string
	if !suppressGivenIfNotPrimary {
		given = renderGiven(el, p.Given)
		if p.DroppingParticle != "" {
			if given != "" {
				given = given + " " + p.DroppingParticle
			} else {
				given = p.DroppingParticle
			}
		}
	}
	if el.DemoteNonDroppingParticle && p.NonDroppingParticle != "" {
		if given != "" {
			given = given + " " + p.NonDroppingParticle
		} else {
			given = p.NonDroppingParticle
		}
	}

	if given == "" {
		return family
	}
	return given + " " + family
}
