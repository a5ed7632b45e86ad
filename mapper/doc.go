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

// Package mapper resolves contract failures to transport statuses for HTTP
// and gRPC.
//
// A failure is identified by its code (what kind of check failed) and an
// optional reason (where: "args.splat", "result", "decl.splat"). A Mapper
// resolves the pair in this order:
//
//  1. exact override for the code;
//  2. longest reason-prefix rule for the code;
//  3. default for the code (library or adjusted with WithHTTPDefault /
//     WithGRPCDefault);
//  4. fallback (500 / codes.Internal unless changed with WithFallback).
//
// Prefix rules are segment-aware: "args" covers "args.splat" but not
// "argsx", and "*" matches exactly one segment.
//
//	m, err := mapper.New(
//	    mapper.WithHTTPPrefix(code.ParamContract, "args.splat", http.StatusUnprocessableEntity),
//	    mapper.WithGRPCOverride(code.NoMatch, codes.Unimplemented),
//	)
//
// # Library defaults
//
// Failures the caller can fix (arity, parameter, pattern-matching, no
// matching variant) map to 400 / InvalidArgument. Failures of the server's
// own code (malformed declaration, return contract, internal) map to
// 500 / Internal. Invariant violations map to 500 / FailedPrecondition.
//
// Mappers are immutable snapshots and safe for concurrent use.
package mapper
