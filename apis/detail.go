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

// Detail is one structured fact attached to an error, in a shape that
// survives JSON and proto round-trips.
//
// For contract failures:
//   - Type is "argument" or "return";
//   - Field is "arg[N]" (1-based) or "return";
//   - Reason is a short "expected X" phrase;
//   - Info carries "expected", "actual", "method" and, for arguments,
//     "position" and "total".
type Detail struct {
	Type   string            `json:"type,omitempty"`
	Field  string            `json:"field,omitempty"`
	Reason string            `json:"reason,omitempty"`
	Info   map[string]string `json:"info,omitempty"`
}
