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

// MaxPassLen bounds the size of the fixed buffers used by the
// constant-time password comparison. Any password longer than this is
// rejected outright (and cannot be timed against, since it never reaches
// the comparison loop).
const MaxPassLen = 512

// MaxCmdBits is the capacity of a user's allowed-commands bitmap. A
// command whose allocated ID reaches or exceeds this is denied outright;
// the bitmap is sized so that it comfortably covers every command a
// process will ever register while still fitting in two cache lines
// (1024 bits = 16 uint64 words = 128 bytes).
const MaxCmdBits = 1024

const bitsPerWord = 64

const cmdWords = MaxCmdBits / bitsPerWord

// DefaultUsername is the user every connection is bound to before it
// authenticates.
const DefaultUsername = "default"
