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
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/go-csl/citeproc/pkg/names"
	"github.com/go-csl/citeproc/pkg/reference"
	"github.com/go-csl/citeproc/pkg/style"
)

// styleDoc is the YAML shape a style descriptor file is parsed into,
// the CLI-only mirror of pkg/style.Style the core has no dependency
// on (SPEC_FULL.md "Configuration").
type styleDoc struct {
	DemoteNonDroppingParticle bool   `yaml:"demote_non_dropping_particle"`
	InitializeWithHyphen      bool   `yaml:"initialize_with_hyphen"`
	GivenNameDisambiguationRule string `yaml:"givenname_disambiguation_rule"`
	DisambiguateAddGivenName  bool   `yaml:"disambiguate_add_givenname"`
	DisambiguateAddNames      bool   `yaml:"disambiguate_add_names"`
	Collapse                  string `yaml:"collapse"`

	NameCitation struct {
		Form           string `yaml:"form"`
		Initialize     bool   `yaml:"initialize"`
		InitializeWith string `yaml:"initialize_with"`
		EtAlMin        int    `yaml:"et_al_min"`
		EtAlUseFirst   int    `yaml:"et_al_use_first"`
	} `yaml:"name_citation"`
}

// LoadStyle reads a YAML style descriptor from path and converts it
// into the core's immutable style.Style record.
func LoadStyle(path string) (style.Style, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return style.Style{}, fmt.Errorf("reading style file %s: %w", path, err)
	}

	var doc styleDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return style.Style{}, fmt.Errorf("parsing style file %s: %w", path, err)
	}

	rule, err := parseRule(doc.GivenNameDisambiguationRule)
	if err != nil {
		return style.Style{}, fmt.Errorf("style file %s: %w", path, err)
	}
	collapse, err := parseCollapse(doc.Collapse)
	if err != nil {
		return style.Style{}, fmt.Errorf("style file %s: %w", path, err)
	}

	form := style.Short
	if doc.NameCitation.Form == "long" {
		form = style.Long
	}

	return style.Style{
		DemoteNonDroppingParticle:   doc.DemoteNonDroppingParticle,
		InitializeWithHyphen:        doc.InitializeWithHyphen,
		GivenNameDisambiguationRule: rule,
		DisambiguateAddGivenName:    doc.DisambiguateAddGivenName,
		DisambiguateAddNames:        doc.DisambiguateAddNames,
		Collapse:                    collapse,
		NameCitation: style.NameElement{
			Form:           form,
			Initialize:     doc.NameCitation.Initialize,
			InitializeWith: doc.NameCitation.InitializeWith,
			EtAlMin:        doc.NameCitation.EtAlMin,
			EtAlUseFirst:   doc.NameCitation.EtAlUseFirst,
		},
	}, nil
}

func parseRule(s string) (style.GivenNameDisambiguationRule, error) {
	switch s {
	case "", "by-cite":
		return style.ByCite, nil
	case "all-names":
		return style.AllNames, nil
	case "all-names-with-initials":
		return style.AllNamesWithInitials, nil
	case "primary-name":
		return style.PrimaryName, nil
	case "primary-name-with-initials":
		return style.PrimaryNameWithInitials, nil
	default:
		return 0, fmt.Errorf("unknown givenname_disambiguation_rule %q", s)
	}
}

func parseCollapse(s string) (style.CollapseMode, error) {
	switch s {
	case "", "none":
		return style.CollapseNone, nil
	case "citation-number":
		return style.CollapseCitationNumber, nil
	case "year":
		return style.CollapseYear, nil
	case "year-suffix":
		return style.CollapseYearSuffix, nil
	case "year-suffix-ranged":
		return style.CollapseYearSuffixRanged, nil
	default:
		return 0, fmt.Errorf("unknown collapse mode %q", s)
	}
}

// referencesDoc is the YAML shape a reference file is parsed into.
type referencesDoc struct {
	References []referenceDoc `yaml:"references"`
}

type referenceDoc struct {
	ID      string            `yaml:"id"`
	Title   string            `yaml:"title"`
	Year    int               `yaml:"year"`
	Authors []personNameDoc   `yaml:"authors"`
	Editors []personNameDoc   `yaml:"editors"`
	Fields  map[string]string `yaml:"fields"`
}

type personNameDoc struct {
	Family              string `yaml:"family"`
	Given               string `yaml:"given"`
	DroppingParticle    string `yaml:"dropping_particle"`
	NonDroppingParticle string `yaml:"non_dropping_particle"`
	Suffix              string `yaml:"suffix"`
	Literal             string `yaml:"literal"`
}

func (p personNameDoc) toPersonName() names.PersonName {
	return names.PersonName{
		Family:              p.Family,
		Given:               p.Given,
		DroppingParticle:    p.DroppingParticle,
		NonDroppingParticle: p.NonDroppingParticle,
		Suffix:              p.Suffix,
		Literal:             p.Literal,
	}
}

// LoadReferences reads a YAML reference file from path into a Store.
func LoadReferences(path string) (*reference.Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading references file %s: %w", path, err)
	}

	var doc referencesDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing references file %s: %w", path, err)
	}

	store := reference.NewStore()
	for _, r := range doc.References {
		ref := &reference.Reference{
			ID:     r.ID,
			Title:  r.Title,
			Year:   r.Year,
			Issued: r.Year != 0,
			Fields: r.Fields,
			Names:  map[reference.NameVariable][]names.PersonName{},
		}
		for _, a := range r.Authors {
			ref.Names[reference.Author] = append(ref.Names[reference.Author], a.toPersonName())
		}
		for _, e := range r.Editors {
			ref.Names[reference.Editor] = append(ref.Names[reference.Editor], e.toPersonName())
		}
		if err := store.Add(ref); err != nil {
			return nil, fmt.Errorf("references file %s: %w", path, err)
		}
	}
	return store, nil
}
