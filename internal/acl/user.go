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

// Flag is a bitmask over the boolean properties of a user.
type Flag uint8

const (
	FlagEnabled Flag = 1 << iota
	FlagAllKeys
	FlagAllCommands
	FlagNoPass
)

// User is a single ACL policy: the commands it may run, the key patterns
// it may touch, and the passwords that authenticate it. Every mutation
// happens through ApplyRule (see rules.go) so that the invariants in the
// package doc stay intact; fields are otherwise safe to read directly.
type User struct {
	Name  string
	Flags Flag

	Passwords [][]byte
	Patterns  []string

	allowedCommands [cmdWords]uint64
	// allowedSubcommands maps a command ID to the list of subcommand
	// names (matched case-insensitively against argv[1]) that are
	// permitted even though the command's own bit is unset.
	allowedSubcommands map[uint64][]string
}

// New constructs a user with every flag cleared, no passwords, no
// patterns and no permitted commands; this is the state "reset" restores a
// user to.
func New(name string) *User {
	return &User{
		Name:               name,
		allowedSubcommands: make(map[uint64][]string),
	}
}

func (u *User) Has(f Flag) bool {
	return u.Flags&f != 0
}

func (u *User) setFlag(f Flag)   { u.Flags |= f }
func (u *User) clearFlag(f Flag) { u.Flags &^= f }

// SetAllCommands sets every bit in the command bitmap, used by
// "allcommands" / "+@all".
func (u *User) SetAllCommands() {
	for i := range u.allowedCommands {
		u.allowedCommands[i] = ^uint64(0)
	}
}

// ClearAllCommands zeroes the command bitmap, used by "reset" / "-@all".
func (u *User) ClearAllCommands() {
	for i := range u.allowedCommands {
		u.allowedCommands[i] = 0
	}
}

// AllowCommand sets the bit for the given command ID.
func (u *User) AllowCommand(id uint64) {
	wordID := id / bitsPerWord
	bit := uint64(1) << (id % bitsPerWord)
	u.allowedCommands[wordID] |= bit
}

// DenyCommand clears the bit for the given command ID.
func (u *User) DenyCommand(id uint64) {
	wordID := id / bitsPerWord
	bit := uint64(1) << (id % bitsPerWord)
	u.allowedCommands[wordID] &^= bit
}

// CommandAllowed reports whether the bit for id is set. id must be less
// than MaxCmdBits; callers that haven't already checked this should do so
// before calling (see Authorise).
func (u *User) CommandAllowed(id uint64) bool {
	wordID := id / bitsPerWord
	bit := uint64(1) << (id % bitsPerWord)
	return u.allowedCommands[wordID]&bit != 0
}

// AllowSubcommand records sub as permitted for the given command ID, even
// though the command's own top-level bit may be unset.
func (u *User) AllowSubcommand(id uint64, sub string) {
	for _, existing := range u.allowedSubcommands[id] {
		if equalFoldASCII(existing, sub) {
			return
		}
	}
	u.allowedSubcommands[id] = append(u.allowedSubcommands[id], sub)
}

// SubcommandAllowed reports whether sub is in the allowlist recorded for
// command id.
func (u *User) SubcommandAllowed(id uint64, sub string) bool {
	for _, allowed := range u.allowedSubcommands[id] {
		if equalFoldASCII(allowed, sub) {
			return true
		}
	}
	return false
}

// AddPassword appends p to the password list if it isn't already present,
// and clears NOPASS (invariant 3). Duplicate suppression is by exact byte
// equality, not the constant-time comparator: ACL edits are an admin-only
// path, not the authentication hot path, so there's nothing to protect
// against timing here.
func (u *User) AddPassword(p []byte) {
	for _, existing := range u.Passwords {
		if bytesEqual(existing, p) {
			u.clearFlag(FlagNoPass)
			return
		}
	}
	u.Passwords = append(u.Passwords, p)
	u.clearFlag(FlagNoPass)
}

// RemovePassword removes the first password equal to p, if any.
func (u *User) RemovePassword(p []byte) {
	for i, existing := range u.Passwords {
		if bytesEqual(existing, p) {
			u.Passwords = append(u.Passwords[:i], u.Passwords[i+1:]...)
			return
		}
	}
}

// AddPattern appends pat to the pattern list if it isn't already present,
// and clears ALLKEYS (invariant 1).
func (u *User) AddPattern(pat string) {
	for _, existing := range u.Patterns {
		if existing == pat {
			u.clearFlag(FlagAllKeys)
			return
		}
	}
	u.Patterns = append(u.Patterns, pat)
	u.clearFlag(FlagAllKeys)
}

// SetAllKeys sets ALLKEYS and empties the pattern list (invariant 1).
func (u *User) SetAllKeys() {
	u.setFlag(FlagAllKeys)
	u.Patterns = nil
}

// ResetKeys clears ALLKEYS and empties the pattern list.
func (u *User) ResetKeys() {
	u.clearFlag(FlagAllKeys)
	u.Patterns = nil
}

// SetNoPass sets NOPASS and empties the password list (invariant 3).
func (u *User) SetNoPass() {
	u.setFlag(FlagNoPass)
	u.Passwords = nil
}

// ResetPass clears NOPASS and empties the password list.
func (u *User) ResetPass() {
	u.clearFlag(FlagNoPass)
	u.Passwords = nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
