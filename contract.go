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
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Contract is a declarative description of the values acceptable at one
// position of a call boundary (an argument or the return value).
//
// The set of implementations is closed: Type, Callable, Pred, Shape,
// Keywords, Splat, Func, Or, And, Not, Maybe, ArrayOf, HashOf and the values
// returned by Custom. Behavior outside that set plugs in through Validatable.
//
// Contracts are immutable and safe to share between Specs and goroutines.
type Contract interface {
	fmt.Stringer
	isContract()
}

// Validatable is the single extension point for user-defined contracts.
// Valid must be pure: it may be called concurrently and more than once per
// value.
type Validatable interface {
	Valid(v any) bool
}

// Type matches values whose dynamic type is T, is assignable to T, or (when
// T is an interface type) implements T. A zero Type matches nil only.
type Type struct {
	T reflect.Type
}

// TypeOf returns the exact-type contract for T.
//
//	contracts.TypeOf[int]()
//	contracts.TypeOf[io.Reader]() // any implementer
func TypeOf[T any]() Type { return Type{T: reflect.TypeFor[T]()} }

func (Type) isContract() {}

func (c Type) String() string {
	if c.T == nil {
		return "nil"
	}
	return c.T.String()
}

type callable struct{}

// Callable is the exact-type contract for callables of any signature: a
// non-nil Go func, a Target or a *Spec.
var Callable Contract = callable{}

func (callable) isContract()    {}
func (callable) String() string { return "Callable" }

// Pred is a named predicate contract.
type Pred struct {
	Name string
	Fn   func(v any) bool
}

func (Pred) isContract() {}

func (c Pred) String() string {
	if c.Name == "" {
		return "Pred"
	}
	return c.Name
}

var (
	// Any accepts every value, nil included.
	Any Contract = Pred{Name: "Any", Fn: func(any) bool { return true }}

	// Nil accepts nil and typed nil pointers, maps, slices, funcs, chans
	// and interfaces.
	Nil Contract = Pred{Name: "nil", Fn: isNil}
)

type custom struct {
	v Validatable
}

// Custom turns a Validatable into a Contract.
func Custom(v Validatable) Contract { return custom{v: v} }

func (custom) isContract() {}

func (c custom) String() string {
	if s, ok := c.v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", c.v)
}

// Shape matches mappings with string keys. Every key named by the shape
// must hold a value satisfying its sub-contract; a missing key is checked as
// nil. Keys the shape does not name are ignored.
type Shape map[string]Contract

func (Shape) isContract() {}

func (c Shape) String() string { return shapeString(c) }

// Keywords is a Shape describing named options passed as the trailing
// mapping of a call. It validates like Shape; Specs use it to inject an
// empty mapping when the caller omits the options entirely.
type Keywords map[string]Contract

func (Keywords) isContract() {}

func (c Keywords) String() string { return "Keywords" + shapeString(c) }

// Splat marks the single variable-length region of an argument list. Each
// argument in the region is checked against Elem independently.
type Splat struct {
	Elem Contract
}

func (Splat) isContract() {}

func (c Splat) String() string { return "Splat[" + describe(c.Elem) + "]" }

// Func is a higher-order contract. The value must be callable; once it
// passes, it is replaced by a *Spec that enforces Args and Ret on every
// later call through it.
type Func struct {
	Args []Contract
	Ret  Contract
}

func (Func) isContract() {}

func (c Func) String() string {
	return "Func[" + signature(c.Args, c.Ret) + "]"
}

// Or accepts a value satisfying at least one of its contracts.
type Or []Contract

func (Or) isContract() {}

func (c Or) String() string { return "Or[" + joinContracts(c) + "]" }

// And accepts a value satisfying all of its contracts.
type And []Contract

func (And) isContract() {}

func (c And) String() string { return "And[" + joinContracts(c) + "]" }

// Not accepts a value that does not satisfy Elem.
type Not struct {
	Elem Contract
}

func (Not) isContract() {}

func (c Not) String() string { return "Not[" + describe(c.Elem) + "]" }

// Maybe accepts nil or a value satisfying Elem.
type Maybe struct {
	Elem Contract
}

func (Maybe) isContract() {}

func (c Maybe) String() string { return "Maybe[" + describe(c.Elem) + "]" }

// ArrayOf accepts a slice or array whose every element satisfies Elem.
type ArrayOf struct {
	Elem Contract
}

func (ArrayOf) isContract() {}

func (c ArrayOf) String() string { return "ArrayOf[" + describe(c.Elem) + "]" }

// HashOf accepts a map whose every key satisfies Key and every value
// satisfies Val.
type HashOf struct {
	Key Contract
	Val Contract
}

func (HashOf) isContract() {}

func (c HashOf) String() string {
	return "HashOf[" + describe(c.Key) + ", " + describe(c.Val) + "]"
}

// Arrow closes a declaration: it carries the return contract and,
// optionally, the last argument contract. See Declare.
type Arrow struct {
	arg    Contract
	hasArg bool
	ret    Contract
}

// Ret builds the closing element of a declaration: arg is the last argument
// contract and ret the return contract.
//
//	contracts.Declare(add, contracts.TypeOf[int](), contracts.Ret(contracts.TypeOf[int](), contracts.TypeOf[int]()))
func Ret(arg, ret Contract) Arrow { return Arrow{arg: arg, hasArg: true, ret: ret} }

// Returns builds a closing element that only carries the return contract.
func Returns(ret Contract) Arrow { return Arrow{ret: ret} }

// describe renders a contract for messages; nil is the nil-value contract.
func describe(c Contract) string {
	if c == nil {
		return "nil"
	}
	return c.String()
}

func joinContracts(cs []Contract) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = describe(c)
	}
	return strings.Join(parts, ", ")
}

func signature(args []Contract, ret Contract) string {
	if len(args) == 0 {
		return "=> " + describe(ret)
	}
	return joinContracts(args) + " => " + describe(ret)
}

func shapeString(m map[string]Contract) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + describe(m[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// isCallbackContract reports whether c describes a trailing callback slot.
func isCallbackContract(c Contract) bool {
	switch c := c.(type) {
	case callable, Func:
		return true
	case Type:
		return c.T != nil && c.T.Kind() == reflect.Func
	case Maybe:
		return isCallbackContract(c.Elem)
	default:
		return false
	}
}

// isMappingContract reports whether c describes a trailing options mapping.
func isMappingContract(c Contract) bool {
	switch c.(type) {
	case Shape, Keywords:
		return true
	default:
		return false
	}
}
