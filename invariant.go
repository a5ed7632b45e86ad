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
	"strings"

	"dirpx.dev/contracts/apis"
	"dirpx.dev/contracts/code"
	"dirpx.dev/contracts/reason"
)

// Invariant is a named condition on a receiver's state, checked after
// every guarded call on that receiver.
type Invariant struct {
	Name string
	Cond func() bool
}

// Invariants is a list of conditions. Receivers usually build one in their
// CheckInvariants method:
//
//	func (a *Account) CheckInvariants(method string) error {
//	    return contracts.Invariants{
//	        {Name: "balance >= 0", Cond: func() bool { return a.balance >= 0 }},
//	    }.CheckInvariants(method)
//	}
type Invariants []Invariant

var _ apis.InvariantChecker = Invariants(nil)

// CheckInvariants evaluates every condition in order and fails with an
// InvariantViolation error naming the first one that does not hold.
func (inv Invariants) CheckInvariants(method string) error {
	for _, i := range inv {
		if i.Cond == nil || i.Cond() {
			continue
		}
		var b strings.Builder
		b.WriteString("Invariant violation:\n")
		b.WriteString("        Expected: ")
		b.WriteString(i.Name)
		b.WriteString("\n        Actual: false")
		if method != "" {
			b.WriteString("\n        Value guarded in: ")
			b.WriteString(method)
		}
		return E(code.InvariantViolation, b.String(),
			WithReasonOption(reason.Invariant),
			WithDetailOption("invariant", i.Name),
			WithDetailOption("method", method),
		)
	}
	return nil
}
