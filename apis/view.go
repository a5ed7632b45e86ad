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

// ViewProvider is implemented by errors that can render a client-safe,
// self-contained snapshot of themselves.
//
// The HTTP and gRPC adapters use it to send the canonical form of a contract
// failure without knowing the concrete error type.
//
// The returned view MUST be safe to marshal (to JSON and to a protobuf
// Struct) and SHOULD hold only what may be disclosed to the client: the
// guarded method, the expected contract and the offending value, never the
// receiver or the target.
type ViewProvider interface {
	error

	// ErrorView returns the serializable snapshot of the error.
	ErrorView() ErrorView
}

// ErrorView is the serializable form of a contract error.
//
// It is *not* the Error type the engine raises; it is the shape exposed over
// the wire and in logs. Keeping it in apis lets the HTTP and gRPC adapters
// share the same struct.
type ErrorView struct {
	// Code is the canonical failure code, e.g. "param_contract" or
	// "arity_mismatch".
	//
	// Implementations SHOULD store only normalized, validated codes here.
	Code string `json:"code"`

	// Reason locates the failure, e.g. "args.prefix" or "result".
	//
	// It MAY be empty when the code alone describes the failure.
	// Implementations SHOULD store only normalized, validated reasons here.
	Reason string `json:"reason,omitempty"`

	// Message is the human-readable failure message, typically the
	// multi-line "Contract violation for ..." text or the default message of
	// the code's descriptor.
	Message string `json:"message,omitempty"`

	// Details carries one entry per offending argument or result. It is
	// empty for failures not tied to a value, such as malformed
	// declarations.
	Details []Detail `json:"details,omitempty"`
}
