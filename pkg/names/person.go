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

// PersonName is a structured person-name value, immutable once built
// (§3). Field names mirror the CSL data model: family/given plus the
// dropping and non-dropping particles ("van", "de"), an honorific
// suffix, and a literal fallback for names that cannot be split into
// parts (corporate authors, "et al." stand-ins, ...).
type PersonName struct {
	Family              string
	Given               string
	DroppingParticle    string
	NonDroppingParticle string
	Suffix              string
	Literal             string
}

// IsLiteral reports whether this name has no structured parts and
// should be rendered as-is.
func (p PersonName) IsLiteral() bool {
	return p.Literal != "" && p.Family == "" && p.Given == ""
}
