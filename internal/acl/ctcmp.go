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

// ConstantTimeCompare reports whether a and b are byte-for-byte equal,
// without leaking their length or content through timing. It returns 0
// when the inputs are equal, non-zero otherwise.
//
// Both inputs are copied into fixed MaxPassLen buffers and XOR'd across
// their full length, never the shorter of the two, so the number of XOR
// operations performed is always exactly MaxPassLen regardless of input.
// The only data-dependent branch is the upfront length-bound check, which
// rejects oversized input before it can leak anything through the loop
// below; in normal operation (passwords capped at MaxPassLen by the rule
// parser) that branch is never taken.
func ConstantTimeCompare(a, b []byte) int {
	if len(a) > MaxPassLen || len(b) > MaxPassLen {
		return 1
	}

	var bufA, bufB [MaxPassLen]byte
	copy(bufA[:], a)
	copy(bufB[:], b)

	var diff uint64
	for j := 0; j < MaxPassLen; j++ {
		diff |= uint64(bufA[j] ^ bufB[j])
	}
	diff |= uint64(len(a) ^ len(b))

	return int(diff)
}
