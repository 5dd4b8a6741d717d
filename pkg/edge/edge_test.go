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

package edge

import (
	"sync"
	"testing"
)

func TestInternerDeduplicates(t *testing.T) {
	tests := []struct {
		name     string
		payloads []Payload
		wantLen  int
	}{
		{
			name: "repeated output collapses to one edge",
			payloads: []Payload{
				OutputPayload("Smith"),
				OutputPayload("Smith"),
				OutputPayload("Jones"),
			},
			wantLen: 2,
		},
		{
			name: "sentinel and output with same text are distinct",
			payloads: []Payload{
				OutputPayload("YearSuffix"),
				SentinelPayload(YearSuffix),
			},
			wantLen: 2,
		},
		{
			name: "all eight sentinels are distinct",
			payloads: []Payload{
				SentinelPayload(YearSuffix),
				SentinelPayload(Locator),
				SentinelPayload(LocatorLabel),
				SentinelPayload(CitationNumber),
				SentinelPayload(CitationNumberLabel),
				SentinelPayload(Frnn),
				SentinelPayload(FrnnLabel),
				SentinelPayload(Accessed),
			},
			wantLen: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := New()
			for _, p := range tt.payloads {
				in.Edge(p)
			}
			if got := in.Len(); got != tt.wantLen {
				t.Errorf("Len() = %d, want %d", got, tt.wantLen)
			}
		})
	}
}

func TestInternerStableAcrossCalls(t *testing.T) {
	in := New()
	e1 := in.Edge(OutputPayload("Smith"))
	e2 := in.Edge(OutputPayload("Jones"))
	e3 := in.Edge(OutputPayload("Smith"))

	if e1 != e3 {
		t.Fatalf("expected same edge for repeated payload, got %d and %d", e1, e3)
	}
	if e1 == e2 {
		t.Fatalf("expected distinct edges for distinct payloads")
	}

	if got := in.Payload(e1); got.Output != "Smith" {
		t.Errorf("Payload(e1).Output = %q, want %q", got.Output, "Smith")
	}
}

func TestInternerConcurrent(t *testing.T) {
	in := New()
	var wg sync.WaitGroup
	results := make([]Edge, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = in.Edge(OutputPayload("shared"))
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(results); i++ {
		if results[i] != results[0] {
			t.Fatalf("concurrent Edge() calls returned different ids: %v", results)
		}
	}
	if in.Len() != 1 {
		t.Errorf("Len() = %d, want 1", in.Len())
	}
}
