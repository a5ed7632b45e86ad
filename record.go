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
	"strconv"

	"dirpx.dev/contracts/reason"
)

// FailureRecord describes one mismatch between a value and its contract.
// A fresh record is built per mismatch and handed synchronously to the
// failure policy; raised errors carry it unchanged.
type FailureRecord struct {
	// Value is the offending argument or return value.
	Value any

	// Contract is the contract Value failed. For splat elements this is the
	// splat's element contract.
	Contract Contract

	// Owner and Method identify the guarded callable for diagnostics.
	Owner  string
	Method string

	// Spec is the contract whose check failed.
	Spec *Spec

	// Position is the 1-based index of the argument in the effective
	// argument list; zero for return mismatches.
	Position int

	// Total is the number of effective arguments of the call.
	Total int

	// Return marks a mismatch on the return value.
	Return bool

	// Region names the part of the call that failed (reason.ArgsPrefix,
	// reason.ArgsSplat, reason.ArgsSuffix or reason.Result).
	Region reason.Reason
}

// Contracts returns the argument contracts of the owning Spec.
func (r *FailureRecord) Contracts() []Contract {
	if r.Spec == nil {
		return nil
	}
	return r.Spec.Args()
}

// Field names the failing position: "arg[2]" or "return".
func (r *FailureRecord) Field() string {
	if r.Return {
		return "return"
	}
	return "arg[" + strconv.Itoa(r.Position) + "]"
}

// Guarded returns "Owner::Method", "Method" or "" when neither is known.
func (r *FailureRecord) Guarded() string {
	switch {
	case r.Owner != "" && r.Method != "":
		return r.Owner + "::" + r.Method
	case r.Method != "":
		return r.Method
	default:
		return r.Owner
	}
}
