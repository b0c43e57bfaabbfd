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

// AuthOutcome is the result of a credential check.
type AuthOutcome int

const (
	AuthOk AuthOutcome = iota
	AuthNotFound
	AuthBadCredentials
)

// noPasswordSentinel is compared against when a user has neither NOPASS
// nor any stored password, so that every code path through Check performs
// at least one constant-time comparison. Without this, "user has zero
// passwords" and "user has passwords but none matched" would take a
// different number of comparisons and so be distinguishable by timing.
var noPasswordSentinel = []byte("\x00acl-no-password-configured\x00")

// Check authenticates (username, password) and reports the outcome.
// Every terminating path executes at least one ConstantTimeCompare.
func (c *Context) Check(username string, password []byte) AuthOutcome {
	u, err := c.Lookup(username)
	if err != nil {
		return AuthNotFound
	}

	if !u.Has(FlagEnabled) {
		ConstantTimeCompare(password, noPasswordSentinel)
		return AuthBadCredentials
	}

	if u.Has(FlagNoPass) {
		ConstantTimeCompare(password, noPasswordSentinel)
		return AuthOk
	}

	if len(u.Passwords) == 0 {
		ConstantTimeCompare(password, noPasswordSentinel)
		return AuthBadCredentials
	}

	matched := false
	for _, stored := range u.Passwords {
		if ConstantTimeCompare(password, stored) == 0 {
			matched = true
		}
	}
	if matched {
		return AuthOk
	}
	return AuthBadCredentials
}
