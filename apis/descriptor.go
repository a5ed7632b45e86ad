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

// ErrorDescriptor describes how one (code, reason) pair is exposed: the
// transport statuses a mapper resolves for it and a default message.
//
// Strings are used instead of the code and reason types so adapters and
// configuration files can carry descriptors without importing them.
type ErrorDescriptor struct {
	Code   string `json:"code"`
	Reason string `json:"reason,omitempty"`

	// HTTPStatus and GRPCCode are 0 when not specified.
	HTTPStatus int `json:"http_status,omitempty"`
	GRPCCode   int `json:"grpc_code,omitempty"`

	Message string `json:"message,omitempty"`
}
