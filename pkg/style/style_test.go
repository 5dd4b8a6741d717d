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
package style

import "testing"

func TestHasInitializeWithReportsUnsetAsFalse(t *testing.T) {
	var n NameElement
	if n.HasInitializeWith() {
		t.Fatal("expected unset InitializeWith to report false")
	}
	n.InitializeWith = "."
	if !n.HasInitializeWith() {
		t.Fatal("expected configured InitializeWith to report true")
	}
}

func TestCloneIsIndependentOfOriginal(t *testing.T) {
	original := NameElement{Form: Long, EtAlMin: 4}
	clone := original.Clone()
	clone.EtAlMin = 99
	if original.EtAlMin != 4 {
		t.Fatalf("mutating clone affected original: %+v", original)
	}
}
