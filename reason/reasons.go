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

package reason

// Declaration reasons, carried by MalformedDeclaration errors.
const (
	// Decl covers every declaration problem.
	Decl Reason = "decl"
	// DeclReturn: the declaration has no return contract, or an element is
	// not a contract.
	DeclReturn Reason = "decl.return"
	// DeclSplat: more than one Splat.
	DeclSplat Reason = "decl.splat"
	// DeclArrow: Ret/Returns used anywhere but last.
	DeclArrow Reason = "decl.arrow"
	// DeclTarget: the Spec has no usable callable.
	DeclTarget Reason = "decl.target"
	// DeclFile: a declaration file could not be read or parsed.
	DeclFile Reason = "decl.file"
)

// Argument reasons, naming the region of the argument list that failed.
const (
	// Args covers every argument failure.
	Args Reason = "args"
	// ArgsArity: the argument count does not fit the contract.
	ArgsArity Reason = "args.arity"
	// ArgsPrefix: a fixed position before the splat (or any position when
	// there is no splat).
	ArgsPrefix Reason = "args.prefix"
	// ArgsSplat: a position inside the variable-length region.
	ArgsSplat Reason = "args.splat"
	// ArgsSuffix: a fixed position after the splat.
	ArgsSuffix Reason = "args.suffix"
)

const (
	// Result: the return value failed.
	Result Reason = "result"
	// Invariant: a receiver invariant failed after the call.
	Invariant Reason = "invariant"
	// Dispatch: no variant of an overloaded callable matched.
	Dispatch Reason = "dispatch"
	// Decode: a transport could not decode the call's arguments.
	Decode Reason = "transport.decode"
)
