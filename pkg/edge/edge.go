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

// Package edge implements the edge interner (C1): it deduplicates
// rendered output fragments and sentinel tokens down to stable integer
// identifiers used as the automaton alphabet.
package edge

import (
	"fmt"
	"sync"
)

// Edge is an opaque, process-lifetime-stable identifier for one
// rendered fragment or sentinel. Two edges are equal iff their
// underlying payloads are equal.
type Edge uint32

// Sentinel enumerates the closed set of non-text alphabet symbols.
type Sentinel int

const (
	// SentinelNone marks a Payload that carries formatted text rather
	// than a sentinel tag.
	SentinelNone Sentinel = iota
	YearSuffix
	Locator
	LocatorLabel
	CitationNumber
	CitationNumberLabel
	Frnn
	FrnnLabel
	Accessed
)

func (s Sentinel) String() string {
	switch s {
	case YearSuffix:
		return "YearSuffix"
	case Locator:
		return "Locator"
	case LocatorLabel:
		return "LocatorLabel"
	case CitationNumber:
		return "CitationNumber"
	case CitationNumberLabel:
		return "CitationNumberLabel"
	case Frnn:
		return "Frnn"
	case FrnnLabel:
		return "FrnnLabel"
	case Accessed:
		return "Accessed"
	default:
		return "None"
	}
}

// Payload is the sum type interned edges are built from: either a
// formatted output string rendered under some formatting context, or
// one of the sentinel tags.
type Payload struct {
	Sentinel Sentinel
	Output   string
}

// OutputPayload builds a Payload carrying rendered text.
func OutputPayload(s string) Payload {
	return Payload{Sentinel: SentinelNone, Output: s}
}

// SentinelPayload builds a Payload carrying one of the fixed sentinel
// tags (the payload carries no text of its own).
func SentinelPayload(s Sentinel) Payload {
	return Payload{Sentinel: s}
}

// IsSentinel reports whether this payload is a sentinel tag rather
// than rendered output.
func (p Payload) IsSentinel() bool {
	return p.Sentinel != SentinelNone
}

func (p Payload) key() string {
	if p.Sentinel != SentinelNone {
		return "s:" + p.Sentinel.String()
	}
	return "o:" + p.Output
}

// Interner deduplicates payloads to stable Edge ids. It is safe for
// concurrent use: edge() is atomic and idempotent per §4.1. Modeled on
// the teacher's uniqueComponentService, which assigns a stable id to
// the first-seen occurrence of a lookup key and returns the same id on
// every later occurrence.
type Interner struct {
	mu       sync.Mutex
	byKey    map[string]Edge
	payloads []Payload
}

// New returns an empty, thread-safe Interner.
func New() *Interner {
	return &Interner{byKey: make(map[string]Edge)}
}

// Edge interns payload and returns its stable identifier, allocating a
// new one the first time this payload is seen.
func (in *Interner) Edge(payload Payload) Edge {
	key := payload.key()

	in.mu.Lock()
	defer in.mu.Unlock()

	if e, ok := in.byKey[key]; ok {
		return e
	}

	e := Edge(len(in.payloads))
	in.payloads = append(in.payloads, payload)
	in.byKey[key] = e
	return e
}

// Payload returns the payload a previously interned edge stands for.
// Panics if e was never produced by this Interner (a logic error,
// never a data-dependent condition).
func (in *Interner) Payload(e Edge) Payload {
	in.mu.Lock()
	defer in.mu.Unlock()

	if int(e) >= len(in.payloads) {
		panic(fmt.Sprintf("edge: unknown edge id %d", e))
	}
	return in.payloads[e]
}

// Len returns the number of distinct edges interned so far.
func (in *Interner) Len() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return len(in.payloads)
}
