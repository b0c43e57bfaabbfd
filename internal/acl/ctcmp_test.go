// Copyright 2024 Kelvin Clement Mwinuka
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package acl

import "testing"

func TestConstantTimeCompareEqual(t *testing.T) {
	if ConstantTimeCompare([]byte("hunter2"), []byte("hunter2")) != 0 {
		t.Fatal("expected equal byte strings to compare equal")
	}
}

func TestConstantTimeCompareDifferentContent(t *testing.T) {
	if ConstantTimeCompare([]byte("hunter2"), []byte("hunter3")) == 0 {
		t.Fatal("expected differing byte strings to compare unequal")
	}
}

func TestConstantTimeCompareDifferentLength(t *testing.T) {
	if ConstantTimeCompare([]byte("short"), []byte("a-much-longer-string")) == 0 {
		t.Fatal("expected differing lengths to compare unequal")
	}
}

func TestConstantTimeCompareRejectsOverLength(t *testing.T) {
	huge := make([]byte, MaxPassLen+1)
	if ConstantTimeCompare(huge, huge) == 0 {
		t.Fatal("expected inputs over MaxPassLen to never compare equal")
	}
}

func TestConstantTimeCompareEmptyStrings(t *testing.T) {
	if ConstantTimeCompare([]byte{}, []byte{}) != 0 {
		t.Fatal("expected two empty byte strings to compare equal")
	}
}
