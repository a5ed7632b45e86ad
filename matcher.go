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

import (
	"fmt"

	"dirpx.dev/contracts/code"
	"dirpx.dev/contracts/reason"
)

// slot is one (argument, validator, contract) check produced by match.
type slot struct {
	// pos is the 0-based index into the effective argument list.
	pos       int
	contract  Contract
	validator Validator
	// template wraps the argument after it passes, for Func contracts.
	template *Spec
	region   reason.Reason
}

// match partitions n runtime arguments against the argument contracts and
// returns the checks in validation order: prefix, splat run, suffix, each
// left to right.
//
// Without a splat n must equal the number of contracts. With a splat at
// index p followed by k fixed contracts, the first p arguments match the
// prefix, the last k match the suffix and the max(n-p-k, 0) arguments in
// between match the splat element. n < p+k is an arity mismatch, reported
// before any element is checked.
func (s *Spec) match(n int) ([]slot, error) {
	if s.splat < 0 {
		if n != len(s.args) {
			return nil, s.arityError(n, fmt.Sprintf("given %d, expected %d", n, len(s.args)))
		}
		slots := make([]slot, n)
		for i := range slots {
			slots[i] = s.fixed(i, i, reason.ArgsPrefix)
		}
		return slots, nil
	}

	p := s.splat
	k := len(s.args) - p - 1
	if n < p+k {
		return nil, s.arityError(n, fmt.Sprintf("given %d, expected at least %d", n, p+k))
	}
	middle := n - p - k

	slots := make([]slot, 0, n)
	for i := 0; i < p; i++ {
		slots = append(slots, s.fixed(i, i, reason.ArgsPrefix))
	}
	elem := s.args[p].(Splat).Elem
	for i := p; i < p+middle; i++ {
		slots = append(slots, slot{
			pos:       i,
			contract:  elem,
			validator: s.validators[p],
			template:  s.templates[p],
			region:    reason.ArgsSplat,
		})
	}
	for j := 0; j < k; j++ {
		slots = append(slots, s.fixed(p+middle+j, p+1+j, reason.ArgsSuffix))
	}
	return slots, nil
}

// fixed checks argument pos against contract index ci.
func (s *Spec) fixed(pos, ci int, region reason.Reason) slot {
	return slot{
		pos:       pos,
		contract:  s.args[ci],
		validator: s.validators[ci],
		template:  s.templates[ci],
		region:    region,
	}
}

func (s *Spec) arityError(n int, detail string) *Error {
	rec := &FailureRecord{
		Owner:  s.owner,
		Method: s.name,
		Spec:   s,
		Total:  n,
		Region: reason.ArgsArity,
	}
	guarded := rec.Guarded()
	if guarded == "" {
		guarded = "<anonymous>"
	}
	msg := fmt.Sprintf("wrong number of arguments for %s (%s)\n        With Contract: %s", guarded, detail, s.String())
	return E(code.ArityMismatch, msg,
		WithReasonOption(reason.ArgsArity),
		WithRecordOption(rec),
	)
}
