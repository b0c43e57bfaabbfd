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

func TestNewUserIsBlank(t *testing.T) {
	u := New("fresh")
	if u.Flags != 0 {
		t.Fatalf("expected zero flags, got %b", u.Flags)
	}
	if len(u.Passwords) != 0 || len(u.Patterns) != 0 {
		t.Fatal("expected empty passwords and patterns")
	}
	for _, word := range u.allowedCommands {
		if word != 0 {
			t.Fatal("expected an all-zero command bitmap")
		}
	}
}

func TestAllowDenyCommandBit(t *testing.T) {
	u := New("u")
	u.AllowCommand(5)
	if !u.CommandAllowed(5) {
		t.Fatal("expected bit 5 to be set")
	}
	if u.CommandAllowed(6) {
		t.Fatal("expected bit 6 to remain unset")
	}
	u.DenyCommand(5)
	if u.CommandAllowed(5) {
		t.Fatal("expected bit 5 to be cleared")
	}
}

func TestAllowDenyCommandBitAcrossWordBoundary(t *testing.T) {
	u := New("u")
	u.AllowCommand(63)
	u.AllowCommand(64)
	if !u.CommandAllowed(63) || !u.CommandAllowed(64) {
		t.Fatal("expected bits either side of a 64-bit word boundary to be independently settable")
	}
	u.DenyCommand(63)
	if u.CommandAllowed(63) {
		t.Fatal("expected bit 63 cleared")
	}
	if !u.CommandAllowed(64) {
		t.Fatal("expected bit 64 to remain set after clearing bit 63")
	}
}

func TestAddPasswordClearsNoPassAndSuppressesDuplicates(t *testing.T) {
	u := New("u")
	u.SetNoPass()
	u.AddPassword([]byte("pw"))
	if u.Has(FlagNoPass) {
		t.Fatal("expected NOPASS to be cleared by AddPassword")
	}
	u.AddPassword([]byte("pw"))
	if len(u.Passwords) != 1 {
		t.Fatalf("expected duplicate password to be suppressed, got %d entries", len(u.Passwords))
	}
}

func TestRemovePassword(t *testing.T) {
	u := New("u")
	u.AddPassword([]byte("pw"))
	u.RemovePassword([]byte("pw"))
	if len(u.Passwords) != 0 {
		t.Fatalf("expected password to be removed, got %v", u.Passwords)
	}
}

func TestAddPatternClearsAllKeys(t *testing.T) {
	u := New("u")
	u.SetAllKeys()
	u.AddPattern("foo:*")
	if u.Has(FlagAllKeys) {
		t.Fatal("expected ALLKEYS to be cleared by AddPattern")
	}
	u.AddPattern("foo:*")
	if len(u.Patterns) != 1 {
		t.Fatalf("expected duplicate pattern to be suppressed, got %v", u.Patterns)
	}
}

func TestSubcommandAllowlistCaseInsensitive(t *testing.T) {
	u := New("u")
	u.AllowSubcommand(1, "Sleep")
	if !u.SubcommandAllowed(1, "sleep") {
		t.Fatal("expected case-insensitive subcommand match")
	}
	u.AllowSubcommand(1, "sleep")
	if len(u.allowedSubcommands[1]) != 1 {
		t.Fatalf("expected duplicate subcommand entry to be suppressed, got %v", u.allowedSubcommands[1])
	}
}
