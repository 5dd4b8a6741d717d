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

// Package format defines the output-formatter contract the core
// consumes from the (out of scope) output-format backends, plus the
// one reference implementation needed to exercise and test the core
// end to end (§1 Non-goals: "no output-format backends", but a
// complete repository still needs a concrete instance of the contract
// it depends on).
package format

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Formatter is the contract §6 calls out: text_node, group, affixed,
// output_in_context, is_empty, plain, and (via TextCase) a tag-stack
// style transform. The IR package depends only on this interface, not
// on any concrete backend.
type Formatter interface {
	// TextNode wraps a raw piece of text with no further semantics —
	// the formatter's minimal passthrough.
	TextNode(text string) string
	// Group joins already-formatted parts with delimiter.
	Group(parts []string, delimiter string) string
	// Affixed wraps s with a literal prefix/suffix.
	Affixed(s, prefix, suffix string) string
	// Quoted wraps s in the formatter's quotation marks.
	Quoted(s string) string
	// TextCase applies one of "lower", "upper", "title", "sentence",
	// "capitalize-first", or "" (no-op) to s.
	TextCase(s, mode string) string
	// OutputInContext finalizes s under the current formatting
	// context (e.g. resolving a tag stack to inline markup).
	OutputInContext(s string) string
	// IsEmpty reports whether s carries no visible content.
	IsEmpty(s string) bool
	// Plain strips any inline formatting markup back to plain text.
	Plain(s string) string
}

// PlainFormatter is the minimal reference backend: every method is a
// pure string transform with no inline markup, grounded on the
// teacher's pkg/view formatter split but reduced to its simplest
// concrete case.
type PlainFormatter struct {
	caser cases.Caser
}

// NewPlainFormatter returns a Formatter with no inline markup.
func NewPlainFormatter() *PlainFormatter {
	return &PlainFormatter{caser: cases.Title(language.English)}
}

func (f *PlainFormatter) TextNode(text string) string { return text }

func (f *PlainFormatter) Group(parts []string, delimiter string) string {
	nonEmpty := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, delimiter)
}

func (f *PlainFormatter) Affixed(s, prefix, suffix string) string {
	if s == "" {
		return ""
	}
	return prefix + s + suffix
}

func (f *PlainFormatter) Quoted(s string) string {
	if s == "" {
		return ""
	}
	return "“" + s + "”"
}

func (f *PlainFormatter) TextCase(s, mode string) string {
	switch mode {
	case "lower":
		return strings.ToLower(s)
	case "upper":
		return strings.ToUpper(s)
	case "title":
		return cases.Title(language.English).String(s)
	case "sentence":
		if s == "" {
			return s
		}
		lower := cases.Lower(language.English).String(s)
		r := []rune(lower)
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		return string(r)
	case "capitalize-first":
		if s == "" {
			return s
		}
		r := []rune(s)
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		return string(r)
	default:
		return s
	}
}

func (f *PlainFormatter) OutputInContext(s string) string { return s }

func (f *PlainFormatter) IsEmpty(s string) bool { return s == "" }

func (f *PlainFormatter) Plain(s string) string { return s }
