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

// Package reason defines where a contract failure happened.
//
// A code says what kind of check failed; a reason refines it with the
// location: "decl.splat" for a declaration with two splats, "args.suffix"
// for an argument after the variable-length region, "result" for the
// return value. Reasons are hierarchical, so mapper rules and log filters
// can match a whole family ("args") at once.
//
// Reason is optional: the zero value means no location is known.
package reason
