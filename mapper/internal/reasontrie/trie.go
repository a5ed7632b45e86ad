/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package reasontrie is a segment-aware longest-prefix matcher over
// dot-separated reasons. "*" in a pattern matches exactly one segment.
//
// Lookups are read-only; a Trie may be shared across goroutines once
// populated.
package reasontrie

import (
	"errors"
	"strings"

	"dirpx.dev/contracts/reason"
)

// ErrInvalidPattern is returned by Insert for an empty pattern, a pattern
// with an invalid segment, or one made of wildcards only.
var ErrInvalidPattern = errors.New("reasontrie: invalid pattern")

// Trie maps reason patterns to values of type T.
type Trie[T any] struct {
	root node[T]
}

type node[T any] struct {
	children map[string]*node[T]
	set      bool
	val      T
	pattern  string
}

// New returns an empty Trie.
func New[T any]() *Trie[T] { return &Trie[T]{} }

// Insert stores v under pattern, replacing any earlier value for the same
// pattern. The pattern must already be normalized.
func (t *Trie[T]) Insert(pattern string, v T) error {
	segs := strings.Split(pattern, ".")
	wild := 0
	for _, s := range segs {
		switch {
		case s == "*":
			wild++
		case !validSegment(s):
			return ErrInvalidPattern
		}
	}
	if wild == len(segs) {
		return ErrInvalidPattern
	}

	n := &t.root
	for _, s := range segs {
		if n.children == nil {
			n.children = make(map[string]*node[T])
		}
		next, ok := n.children[s]
		if !ok {
			next = &node[T]{}
			n.children[s] = next
		}
		n = next
	}
	n.set, n.val, n.pattern = true, v, pattern
	return nil
}

// Lookup returns the value of the deepest pattern covering r and that
// pattern. At equal depth a literal segment beats "*".
func (t *Trie[T]) Lookup(r reason.Reason) (v T, pattern string, ok bool) {
	segs := r.Segments()
	best := -1
	var walk func(n *node[T], depth int)
	walk = func(n *node[T], depth int) {
		if n.set && depth > best {
			best, v, pattern = depth, n.val, n.pattern
		}
		if depth == len(segs) {
			return
		}
		if next, found := n.children[segs[depth]]; found {
			walk(next, depth+1)
		}
		if next, found := n.children["*"]; found {
			walk(next, depth+1)
		}
	}
	walk(&t.root, 0)
	return v, pattern, best >= 0
}

func validSegment(s string) bool {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '_' {
			return false
		}
	}
	return true
}
