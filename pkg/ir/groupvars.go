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

package ir

// GroupVars is the tri-state (in practice five-state, §3) marker used
// to decide whether a <group> element renders.
type GroupVars int

const (
	Plain GroupVars = iota
	Important
	Missing
	Unresolved
	OnlyEmpty
)

func (g GroupVars) String() string {
	switch g {
	case Important:
		return "Important"
	case Missing:
		return "Missing"
	case Unresolved:
		return "Unresolved"
	case OnlyEmpty:
		return "OnlyEmpty"
	default:
		return "Plain"
	}
}

// Neighbour folds two sibling group-vars per §4.7. Important always
// dominates (something rendered); otherwise Missing dominates (a
// referenced variable was absent); otherwise Unresolved; otherwise
// Plain unless both sides agree on OnlyEmpty.
func Neighbour(a, b GroupVars) GroupVars {
	switch {
	case a == Important || b == Important:
		return Important
	case a == Missing || b == Missing:
		return Missing
	case a == Unresolved || b == Unresolved:
		return Unresolved
	case a == OnlyEmpty && b == OnlyEmpty:
		return OnlyEmpty
	default:
		return Plain
	}
}

// Fold reduces a slice of group-vars via Neighbour. Plain values are
// skipped, so Plain acts as the fold identity and a set made only of
// OnlyEmpty values folds to OnlyEmpty; an empty or all-Plain slice
// folds to Plain.
func Fold(vars ...GroupVars) GroupVars {
	acc := Plain
	seen := false
	for _, v := range vars {
		if v == Plain {
			continue
		}
		if !seen {
			acc, seen = v, true
			continue
		}
		acc = Neighbour(acc, v)
	}
	return acc
}

// Renders reports whether a Seq whose overall group-vars equal g
// should render: every state renders except Missing (§4.7, §8
// property 7).
func (g GroupVars) Renders() bool {
	return g != Missing
}
