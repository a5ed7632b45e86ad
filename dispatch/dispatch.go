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

// Package dispatch resolves calls to overloaded callables: several Specs
// registered under one name, tried in registration order until one accepts
// the arguments.
//
// Every registered Spec is marked pattern-matching, so its argument
// mismatches always raise PatternMatchingError whatever failure policy is
// installed. The registry treats that error, and an arity mismatch, as
// "try the next variant". Any other error, including a return-contract
// failure of a variant that already ran, ends the call.
package dispatch

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"go.uber.org/multierr"

	"dirpx.dev/contracts"
	"dirpx.dev/contracts/code"
	"dirpx.dev/contracts/reason"
)

// Registry holds the variants of overloaded callables by name. It is safe
// for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	variants map[string][]*contracts.Spec
	log      logr.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger logs every fallthrough to the next variant at V(1).
func WithLogger(log logr.Logger) Option {
	return func(r *Registry) { r.log = log }
}

// New returns an empty Registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		variants: make(map[string][]*contracts.Spec),
		log:      logr.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Define appends s as the next variant of name and marks it
// pattern-matching.
func (r *Registry) Define(name string, s *contracts.Spec) {
	s.MarkPatternMatching()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.variants[name] = append(r.variants[name], s)
}

// Declare builds a Spec from decl (see contracts.Declare) named name and
// defines it.
func (r *Registry) Declare(name string, target contracts.Target, decl ...any) (*contracts.Spec, error) {
	s, err := contracts.Declare(target, append([]any{contracts.WithName(name)}, decl...)...)
	if err != nil {
		return nil, err
	}
	r.Define(name, s)
	return s, nil
}

// Variants returns the variants of name in trial order.
func (r *Registry) Variants(name string) []*contracts.Spec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*contracts.Spec(nil), r.variants[name]...)
}

// Names returns the defined names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.variants))
	for n := range r.variants {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Call tries each variant of name with recv, args and callback, returning
// the first result that is not a pattern-matching or arity failure. When
// every variant rejects the call, the error has code NoMatch and wraps the
// rejections of all variants.
func (r *Registry) Call(recv any, name string, args []any, callback any) (any, error) {
	vs := r.Variants(name)
	if len(vs) == 0 {
		return nil, contracts.E(code.NoMatch, fmt.Sprintf("no callable named %q", name),
			contracts.WithReasonOption(reason.Dispatch))
	}

	var rejected error
	for i, v := range vs {
		res, err := v.Call(recv, args, callback)
		if err == nil {
			return res, nil
		}
		if !errors.Is(err, contracts.ErrPatternMatching) && !errors.Is(err, contracts.ErrArityMismatch) {
			return nil, err
		}
		r.log.V(1).Info("variant rejected call", "name", name, "variant", i, "contract", v.String(), "code", string(contracts.Ensure(err).Code))
		rejected = multierr.Append(rejected, err)
	}
	return nil, contracts.E(code.NoMatch,
		fmt.Sprintf("no variant of %s accepts the arguments (%d tried)", name, len(vs)),
		contracts.WithReasonOption(reason.Dispatch),
		contracts.WithCauseOption(rejected),
	)
}

// Invoke calls name without a receiver or callback.
func (r *Registry) Invoke(name string, args ...any) (any, error) {
	return r.Call(nil, name, args, nil)
}

// Functype renders the signatures of every variant of name, one per line:
//
//	fact :: Eq[1] => Eq[1]
//	fact :: Num => Num
func (r *Registry) Functype(name string) string {
	vs := r.Variants(name)
	lines := make([]string, len(vs))
	for i, v := range vs {
		lines[i] = v.Functype()
	}
	return strings.Join(lines, "\n")
}
