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

// Package code defines the machine-readable classification of contract
// failures.
//
// A code answers "what kind of check failed": a malformed declaration, a
// wrong number of arguments, an argument or result outside its contract, a
// broken invariant, or an overloaded call no variant accepted. Codes are
// stable snake_case strings suitable for JSON payloads, gRPC error details
// and mapper rules.
package code
