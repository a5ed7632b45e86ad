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

package code

// Declaration errors. Raised while a contract is built, never during a call.
const (
	// MalformedDeclaration: the declaration cannot be compiled. The return
	// contract is missing, Ret/Returns is misplaced, more than one Splat is
	// declared, an element is not a contract, or a Spec has no callable
	// bound.
	//
	// Can be mapped to an HTTP 500.
	MalformedDeclaration Code = "malformed_declaration"
)

// Call errors. Raised by a guarded call.
const (
	// ArityMismatch: the call supplied fewer arguments than the contract's
	// fixed positions, or more than a splat-free contract allows. It is
	// raised directly and never routed through a failure handler.
	//
	// Can be mapped to an HTTP 400.
	ArityMismatch Code = "arity_mismatch"

	// ParamContract: an argument failed its contract and the failure
	// handler raised.
	//
	// Can be mapped to an HTTP 400.
	ParamContract Code = "param_contract"

	// PatternMatching: an argument or result of one variant of an
	// overloaded callable failed. Dispatch treats it as "try the next
	// variant"; it is not meant to reach callers.
	//
	// Can be mapped to an HTTP 400.
	PatternMatching Code = "pattern_matching"

	// ReturnContract: the result failed its contract and the failure
	// handler raised. The callable already ran.
	//
	// Can be mapped to an HTTP 500.
	ReturnContract Code = "return_contract"

	// InvariantViolation: a receiver invariant did not hold after a call.
	//
	// Can be mapped to an HTTP 500.
	InvariantViolation Code = "invariant_violation"

	// NoMatch: no variant of an overloaded callable accepted the arguments.
	// The per-variant failures are attached as the cause.
	//
	// Can be mapped to an HTTP 400.
	NoMatch Code = "no_match"
)

// Internal: anything else, usually a non-contract error converted with
// contracts.Ensure. The original error is the cause.
//
// Can be mapped to an HTTP 500.
const Internal Code = "internal"

var all = []Code{
	MalformedDeclaration,
	ArityMismatch,
	ParamContract,
	PatternMatching,
	ReturnContract,
	InvariantViolation,
	NoMatch,
	Internal,
}
