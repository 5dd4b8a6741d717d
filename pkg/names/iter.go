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

import "github.com/go-csl/citeproc/pkg/style"

// Pass is one expansion pass a SingleNameDisambIter can yield (§3).
type Pass int

const (
	NoPass Pass = iota
	WithFormLong
	WithInitializeFalse
)

func (p Pass) String() string {
	switch p {
	case WithFormLong:
		return "WithFormLong"
	case WithInitializeFalse:
		return "WithInitializeFalse"
	default:
		return "NoPass"
	}
}

// Apply mutates el according to the pass, in place. A pass is
// idempotent: applying it twice yields the same NameElement (§8
// property 2).
func (p Pass) Apply(el *style.NameElement) {
	switch p {
	case WithFormLong:
		el.Form = style.Long
	case WithInitializeFalse:
		el.Initialize = false
	}
}

// Method is derived from the style's given-name disambiguation rule
// and whether the name is primary (§3, §4.3).
type Method int

const (
	MethodNone Method = iota
	MethodAddInitials
	MethodAddInitialsThenGivenName
)

// DeriveMethod implements the rule table in §4.3.
func DeriveMethod(rule style.GivenNameDisambiguationRule, primary bool) Method {
	switch rule {
	case style.ByCite, style.AllNames:
		return MethodAddInitialsThenGivenName
	case style.AllNamesWithInitials:
		return MethodAddInitials
	case style.PrimaryName:
		if primary {
			return MethodAddInitialsThenGivenName
		}
		return MethodNone
	case style.PrimaryNameWithInitials:
		if primary {
			return MethodAddInitials
		}
		return MethodNone
	default:
		return MethodNone
	}
}

type iterState int

const (
	stateOriginal iterState = iota
	stateAddedInitials
	stateAddedGivenName
)

// UnreachableStateIsFatal controls the §7 "iterator misuse" policy: a
// logic-invariant violation between the method table and the state
// machine is a hard fault when true (debug builds), and silently
// treated as "stop" when false (release builds).
var UnreachableStateIsFatal = true

func unreachable(why string) (Pass, bool) {
	if UnreachableStateIsFatal {
		panic("names: unreachable disambiguation-iterator state: " + why)
	}
	return NoPass, false
}

// SingleNameDisambIter is a finite, non-restartable sequence of passes
// (C3). It terminates in at most two yields (§8 property 1) and never
// revisits a state.
type SingleNameDisambIter struct {
	method            Method
	hasInitializeWith bool
	form              style.Form
	state             iterState
	done              bool
}

// NewSingleNameDisambIter builds an iterator from the derived method
// and a snapshot of the name element's form/initialize_with at the
// start of this ratchet's lifetime.
func NewSingleNameDisambIter(method Method, snapshot style.NameElement) *SingleNameDisambIter {
	return &SingleNameDisambIter{
		method:            method,
		hasInitializeWith: snapshot.HasInitializeWith(),
		form:              snapshot.Form,
	}
}

// Next returns the next pass to apply, or (NoPass, false) once the
// iterator is exhausted. Implements the §4.3 state table exactly.
func (it *SingleNameDisambIter) Next() (Pass, bool) {
	if it.done {
		return NoPass, false
	}

	switch it.method {
	case MethodNone:
		it.done = true
		return NoPass, false

	case MethodAddInitials:
		if !it.hasInitializeWith || it.form == style.Long {
			it.done = true
			return NoPass, false
		}
		switch it.state {
		case stateOriginal:
			it.state = stateAddedInitials
			return WithFormLong, true
		case stateAddedInitials:
			it.done = true
			return NoPass, false
		case stateAddedGivenName:
			it.done = true
			return unreachable("AddInitials never advances to AddedGivenName")
		}

	case MethodAddInitialsThenGivenName:
		if it.hasInitializeWith && it.form == style.Short {
			switch it.state {
			case stateOriginal:
				it.state = stateAddedInitials
				return WithFormLong, true
			case stateAddedInitials:
				it.state = stateAddedGivenName
				return WithInitializeFalse, true
			case stateAddedGivenName:
				it.done = true
				return NoPass, false
			}
		}
		if it.hasInitializeWith && it.form == style.Long {
			switch it.state {
			case stateOriginal:
				it.state = stateAddedGivenName
				return WithInitializeFalse, true
			case stateAddedInitials:
				it.done = true
				return unreachable("AddInitialsThenGivenName/long never visits AddedInitials")
			case stateAddedGivenName:
				it.done = true
				return NoPass, false
			}
		}
		if !it.hasInitializeWith && it.form == style.Short {
			switch it.state {
			case stateOriginal:
				it.state = stateAddedGivenName
				return WithFormLong, true
			case stateAddedInitials:
				it.done = true
				return unreachable("AddInitialsThenGivenName/no-initialize never visits AddedInitials")
			case stateAddedGivenName:
				it.done = true
				return NoPass, false
			}
		}
		// !hasInitializeWith && form == Long
		it.done = true
		return NoPass, false
	}

	it.done = true
	return NoPass, false
}

// Done reports whether the iterator is exhausted.
func (it *SingleNameDisambIter) Done() bool { return it.done }
