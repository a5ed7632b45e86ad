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

package contracts

import "github.com/go-logr/logr"

// Option configures a Spec at construction time.
type Option func(*Spec)

// WithName sets the method name reported in failures and used as the
// method identity for invariant checks.
func WithName(name string) Option {
	return func(s *Spec) { s.name = name }
}

// WithOwner sets the owning type name reported in failures.
func WithOwner(owner string) Option {
	return func(s *Spec) { s.owner = owner }
}

// WithPolicy routes the Spec's mismatches through p instead of the
// process-wide policy.
func WithPolicy(p *Policy) Option {
	return func(s *Spec) {
		if p != nil {
			s.policy = p
		}
	}
}

// WithLogger sets the logger for tolerated and aborted mismatches.
func WithLogger(log logr.Logger) Option {
	return func(s *Spec) { s.log = log }
}
