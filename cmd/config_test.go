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
	"os"
	"path/filepath"
	"testing"

	"github.com/go-csl/citeproc/pkg/reference"
	"github.com/go-csl/citeproc/pkg/style"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoadStyleParsesRuleAndCollapseMode(t *testing.T) {
	path := writeTemp(t, "style.yaml", `
givenname_disambiguation_rule: all-names-with-initials
collapse: year-suffix
name_citation:
  form: long
  et_al_min: 4
  et_al_use_first: 1
`)
	st, err := LoadStyle(path)
	if err != nil {
		t.Fatalf("LoadStyle: %v", err)
	}
	if st.GivenNameDisambiguationRule != style.AllNamesWithInitials {
		t.Errorf("rule = %v", st.GivenNameDisambiguationRule)
	}
	if st.Collapse != style.CollapseYearSuffix {
		t.Errorf("collapse = %v", st.Collapse)
	}
	if st.NameCitation.Form != style.Long {
		t.Errorf("form = %v", st.NameCitation.Form)
	}
	if st.NameCitation.EtAlMin != 4 || st.NameCitation.EtAlUseFirst != 1 {
		t.Errorf("et-al fields = %+v", st.NameCitation)
	}
}

func TestLoadStyleRejectsUnknownRule(t *testing.T) {
	path := writeTemp(t, "style.yaml", "givenname_disambiguation_rule: not-a-rule\n")
	if _, err := LoadStyle(path); err == nil {
		t.Fatal("expected an error for an unknown rule")
	}
}

func TestLoadStyleDefaultsAreZeroValue(t *testing.T) {
	path := writeTemp(t, "style.yaml", "{}\n")
	st, err := LoadStyle(path)
	if err != nil {
		t.Fatalf("LoadStyle: %v", err)
	}
	if st.GivenNameDisambiguationRule != style.ByCite {
		t.Errorf("default rule = %v, want ByCite", st.GivenNameDisambiguationRule)
	}
	if st.Collapse != style.CollapseNone {
		t.Errorf("default collapse = %v, want CollapseNone", st.Collapse)
	}
}

func TestLoadReferencesBuildsStoreWithAuthorsAndEditors(t *testing.T) {
	path := writeTemp(t, "references.yaml", `
references:
  - id: smith2020
    title: "Example Title"
    year: 2020
    authors:
      - family: Smith
        given: Jane
    editors:
      - family: Doe
        given: Alex
`)
	store, err := LoadReferences(path)
	if err != nil {
		t.Fatalf("LoadReferences: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 reference, got %d", store.Len())
	}
	ref, ok := store.Get("smith2020")
	if !ok {
		t.Fatal("expected reference smith2020 to be present")
	}
	authors := ref.PersonNames(reference.Author)
	if len(authors) != 1 || authors[0].Family != "Smith" {
		t.Errorf("authors = %+v", authors)
	}
	editors := ref.PersonNames(reference.Editor)
	if len(editors) != 1 || editors[0].Family != "Doe" {
		t.Errorf("editors = %+v", editors)
	}
	if !ref.Issued || ref.Year != 2020 {
		t.Errorf("issued/year = %v/%d", ref.Issued, ref.Year)
	}
}

func TestLoadReferencesRejectsEmptyID(t *testing.T) {
	path := writeTemp(t, "references.yaml", `
references:
  - id: ""
    title: "No ID"
`)
	if _, err := LoadReferences(path); err == nil {
		t.Fatal("expected an error for a reference with an empty id")
	}
}
