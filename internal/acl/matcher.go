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

import (
	"sync"

	"github.com/gobwas/glob"
)

// Matcher is the glob-matching capability the key gate consults. It is an
// injected dependency so tests can substitute a trivial matcher instead of
// compiling real globs.
type Matcher interface {
	Match(pattern, s string) bool
}

// GlobMatcher compiles and caches glob.Glob instances per pattern, the
// same way the server's pub/sub and key-space ACL checks share a single
// compiled-pattern cache rather than recompiling on every call.
type GlobMatcher struct {
	mu    sync.Mutex
	cache map[string]glob.Glob
}

func NewGlobMatcher() *GlobMatcher {
	return &GlobMatcher{cache: make(map[string]glob.Glob)}
}

func (m *GlobMatcher) Match(pattern, s string) bool {
	m.mu.Lock()
	g, ok := m.cache[pattern]
	if !ok {
		g = glob.MustCompile(pattern)
		m.cache[pattern] = g
	}
	m.mu.Unlock()
	return g.Match(s)
}
