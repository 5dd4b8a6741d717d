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

// Package style carries the immutable style-program inputs the core
// consumes from the (out of scope) style-file parser: the handful of
// style-level switches that drive disambiguation (§6), plus the name
// element configuration the IR and name-rendering packages mutate
// during expansion.
package style

// GivenNameDisambiguationRule selects how aggressively given names may
// be expanded during global name disambiguation (§4.3).
type GivenNameDisambiguationRule int

const (
	ByCite GivenNameDisambiguationRule = iota
	AllNames
	AllNamesWithInitials
	PrimaryName
	PrimaryNameWithInitials
)

// Form is a person name's given-name rendering form.
type Form int

const (
	Short Form = iota
	Long
)

// NameElement is the style's naming configuration for one <names>
// block. It is clonable and editable by expansion passes (§3): every
// pass mutates a copy, never the original, so Clone must be a deep
// copy.
type NameElement struct {
	Form                Form
	Initialize          bool
	InitializeWith      string // empty means "not set"
	SortOrder           bool
	EtAlMin             int // 0 means "no et-al truncation"
	EtAlUseFirst        int
	DemoteNonDroppingParticle bool
	InitializeWithHyphen      bool
}

// HasInitializeWith reports whether initialize_with is configured,
// per the §4.3 state table's "initialize_with?" column.
func (n NameElement) HasInitializeWith() bool {
	return n.InitializeWith != ""
}

// Clone returns a deep, independent copy. NameElement currently has no
// reference fields, so a value copy already satisfies "deep", but the
// method exists so that future fields added to this struct cannot
// silently alias. The global disambiguator does not call Clone: pkg/disamb
// deep-copies whole DisambNameData values, NameElement included, with
// copystructure.Copy.
func (n NameElement) Clone() NameElement {
	return n
}

// CollapseMode controls cite grouping & collapsing (C9, §4.9).
type CollapseMode int

const (
	CollapseNone CollapseMode = iota
	CollapseCitationNumber
	CollapseYear
	CollapseYearSuffix
	CollapseYearSuffixRanged
)

// Style is the immutable subset of the style program the
// disambiguation core consumes (§6). Bibliography layout, sorting, and
// citation-number assignment are inputs produced elsewhere and are not
// modeled here.
type Style struct {
	DemoteNonDroppingParticle bool
	InitializeWithHyphen      bool
	GivenNameDisambiguationRule GivenNameDisambiguationRule
	DisambiguateAddGivenName    bool
	DisambiguateAddNames        bool
	Collapse                    CollapseMode

	// NameCitation is the base <name> configuration merged into every
	// per-reference name block before cite-specific overrides apply
	// (mirrors db.name_citation() in the original implementation).
	NameCitation NameElement
}
