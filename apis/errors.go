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

package apis

// CodedError represents an error classified by a machine-readable *code*.
//
// The code answers "what kind of check failed", for example:
//   - "malformed_declaration" - the contract itself could not be built;
//   - "arity_mismatch"        - the call had the wrong number of arguments;
//   - "param_contract"        - an argument was outside its contract;
//   - "return_contract"       - the result was outside its contract.
//
// Codes are stable and enumerable. They are the primary value the HTTP and
// gRPC adapters use to pick a status for the client.
//
// Implementations are expected to return a canonical code, normalized the
// way the code package enforces (lowercase, underscores, length limits).
// Adapters treat empty or unknown codes as internal errors.
type CodedError interface {
	error

	// ErrorCode returns the machine-readable code.
	//
	// The returned value MUST be non-empty and MUST already be normalized.
	// Callers should not try to repair it; an invalid code is reported as
	// an internal error at the boundary.
	ErrorCode() string
}

// ReasonedError represents an error that also says *where* the failure is
// located, in addition to the high-level code.
//
// While the code answers "what kind of check failed?", the reason answers
// "which part of the call failed it?".
//
// Examples:
//
//	code: param_contract         reason: args.splat
//	code: param_contract         reason: args.suffix
//	code: return_contract        reason: result
//	code: malformed_declaration  reason: decl.splat
//
// Mappers may key status overrides on a reason prefix, so reasons are
// dot-separated, most general segment first.
type ReasonedError interface {
	error

	// ErrorReason returns the reason of the failure.
	//
	// It MAY be empty when the code alone describes the failure. When set,
	// it MUST already be normalized the way the reason package enforces.
	ErrorReason() string
}

// DetailedError exposes structured details, typically one per offending
// argument or result. Returning nil means no details.
type DetailedError interface {
	error

	ErrorDetails() []Detail
}

// InvariantChecker is implemented by receivers whose state is re-checked
// after every guarded call on them. method is the name of the guarded
// method that just returned. A non-nil error fails that call.
type InvariantChecker interface {
	CheckInvariants(method string) error
}
