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
	"sync/atomic"

	"github.com/go-logr/logr"

	"dirpx.dev/contracts/code"
	"dirpx.dev/contracts/reason"
)

// Spec is the compiled contract of one callable: the argument contracts,
// the return contract, their validators and the callable itself.
//
// A Spec is immutable after construction except for the pattern-matching
// flag, which can only be set. Calls through one Spec may run concurrently.
type Spec struct {
	args []Contract
	ret  Contract

	validators   []Validator
	retValidator Validator

	// templates holds the nested Spec for every Func argument position
	// (nil elsewhere); retTemplate does the same for a Func return.
	templates   []*Spec
	retTemplate *Spec

	// splat is the index of the Splat contract, -1 when there is none.
	splat int

	hasTrailingCallback bool
	hasTrailingMapping  bool

	patternMatching *atomic.Bool

	target Target
	name   string
	owner  string
	policy *Policy
	log    logr.Logger
}

// Parse splits a declaration into argument contracts and the return
// contract. The declaration is
//
//	c1, c2, ..., Ret(cn, ret)    // n arguments
//	c1, c2, ..., Returns(ret)    // the listed arguments
//	ret                          // no arguments
//
// Elements may be Contracts, nil (the nil-value contract) or reflect.Types
// (exact-type contracts). Anything else, an Arrow before the last element,
// several elements without a closing Arrow, or more than one Splat is a
// MalformedDeclarationError.
func Parse(decl ...any) ([]Contract, Contract, error) {
	if len(decl) == 0 {
		return nil, nil, malformed(reason.DeclReturn, "declaration is empty: write it as arg1, arg2, Ret(arg3, result)")
	}
	last := len(decl) - 1
	arrow, ok := decl[last].(Arrow)
	if !ok {
		if len(decl) != 1 {
			return nil, nil, malformed(reason.DeclReturn,
				"declaration has no return contract: write it as arg1, arg2, Ret(arg3, result)")
		}
		ret, err := asContract(decl[0], 0)
		if err != nil {
			return nil, nil, err
		}
		return nil, ret, nil
	}
	args := make([]Contract, 0, len(decl))
	for i, d := range decl[:last] {
		c, err := asContract(d, i)
		if err != nil {
			return nil, nil, err
		}
		args = append(args, c)
	}
	if arrow.hasArg {
		args = append(args, arrow.arg)
	}
	return args, arrow.ret, nil
}

// Declare parses decl and builds a Spec guarding target. Elements of type
// Option configure the Spec and are not part of the contract list.
//
//	add, err := contracts.Declare(contracts.Reflect(func(a, b int) int { return a + b }),
//	    contracts.WithName("add"),
//	    contracts.TypeOf[int](), contracts.Ret(contracts.TypeOf[int](), contracts.TypeOf[int]()))
func Declare(target Target, decl ...any) (*Spec, error) {
	var opts []Option
	rest := make([]any, 0, len(decl))
	for _, d := range decl {
		if opt, ok := d.(Option); ok {
			opts = append(opts, opt)
			continue
		}
		rest = append(rest, d)
	}
	args, ret, err := Parse(rest...)
	if err != nil {
		return nil, err
	}
	return New(args, ret, target, opts...)
}

// MustDeclare is the panic-on-error variant of Declare, for package-level
// declarations.
func MustDeclare(target Target, decl ...any) *Spec {
	s, err := Declare(target, decl...)
	if err != nil {
		panic(err)
	}
	return s
}

// New compiles args and ret into a Spec guarding target. It fails with a
// MalformedDeclarationError when args holds more than one Splat or a nested
// Func contract is itself malformed.
//
// A nil target yields a template: it can be bound with Bind but calling it
// fails.
func New(args []Contract, ret Contract, target Target, opts ...Option) (*Spec, error) {
	s := &Spec{
		args:            append([]Contract(nil), args...),
		ret:             ret,
		splat:           -1,
		patternMatching: new(atomic.Bool),
		target:          target,
		policy:          defaultPolicy,
		log:             logr.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.validators = make([]Validator, len(s.args))
	s.templates = make([]*Spec, len(s.args))
	for i, c := range s.args {
		if _, ok := c.(Splat); ok {
			if s.splat >= 0 {
				return nil, malformed(reason.DeclSplat,
					fmt.Sprintf("declaration %s has more than one Splat (positions %d and %d)", signature(s.args, ret), s.splat+1, i+1))
			}
			s.splat = i
		}
		s.validators[i] = Compile(c)
		t, err := s.template(c)
		if err != nil {
			return nil, err
		}
		s.templates[i] = t
	}
	s.retValidator = Compile(ret)
	if f, ok := ret.(Func); ok {
		t, err := s.nested(f)
		if err != nil {
			return nil, err
		}
		s.retTemplate = t
	}

	if n := len(s.args); n > 0 {
		s.hasTrailingCallback = isCallbackContract(s.args[n-1])
		switch {
		case s.hasTrailingCallback && n >= 2:
			s.hasTrailingMapping = isMappingContract(s.args[n-2])
		case !s.hasTrailingCallback:
			s.hasTrailingMapping = isMappingContract(s.args[n-1])
		}
	}
	return s, nil
}

// template returns the nested Spec for a Func contract, looking through a
// Splat so every splat element is wrapped as well.
func (s *Spec) template(c Contract) (*Spec, error) {
	switch c := c.(type) {
	case Func:
		return s.nested(c)
	case Splat:
		return s.template(c.Elem)
	default:
		return nil, nil
	}
}

func (s *Spec) nested(f Func) (*Spec, error) {
	return New(f.Args, f.Ret, nil,
		WithOwner(s.owner),
		WithName(s.name),
		WithPolicy(s.policy),
		WithLogger(s.log),
	)
}

// Bind returns a Spec with the same compiled contracts guarding target.
// Every call returns a new Spec; the pattern-matching flag is not carried
// over. Options apply to the new Spec only.
func (s *Spec) Bind(target Target, opts ...Option) *Spec {
	b := &Spec{
		args:                s.args,
		ret:                 s.ret,
		validators:          s.validators,
		retValidator:        s.retValidator,
		templates:           s.templates,
		retTemplate:         s.retTemplate,
		splat:               s.splat,
		hasTrailingCallback: s.hasTrailingCallback,
		hasTrailingMapping:  s.hasTrailingMapping,
		patternMatching:     new(atomic.Bool),
		target:              target,
		name:                s.name,
		owner:               s.owner,
		policy:              s.policy,
		log:                 s.log,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Policy returns the failure policy s reports to.
func (s *Spec) Policy() *Policy { return s.policy }

// MarkPatternMatching flags s as one variant of an overloaded callable. The
// flag is never cleared; mismatches then always raise PatternMatchingError.
func (s *Spec) MarkPatternMatching() { s.patternMatching.Store(true) }

// IsPatternMatching reports whether MarkPatternMatching was called.
func (s *Spec) IsPatternMatching() bool { return s.patternMatching.Load() }

// Args returns a copy of the argument contracts.
func (s *Spec) Args() []Contract { return append([]Contract(nil), s.args...) }

// Result returns the return contract.
func (s *Spec) Result() Contract { return s.ret }

// Name returns the method name used in diagnostics.
func (s *Spec) Name() string { return s.name }

// Owner returns the owning type name used in diagnostics.
func (s *Spec) Owner() string { return s.owner }

// HasSplat reports whether the argument list has a variable-length region.
func (s *Spec) HasSplat() bool { return s.splat >= 0 }

// HasTrailingCallback reports whether the last argument is a callback slot.
func (s *Spec) HasTrailingCallback() bool { return s.hasTrailingCallback }

// HasTrailingMapping reports whether an options mapping precedes the
// callback slot (or ends the list when there is no callback).
func (s *Spec) HasTrailingMapping() bool { return s.hasTrailingMapping }

// String renders the contract, e.g. "int, Splat[string] => bool".
func (s *Spec) String() string {
	if s == nil {
		return "<nil>"
	}
	return signature(s.args, s.ret)
}

// Functype renders "name :: contract".
func (s *Spec) Functype() string {
	name := s.name
	if name == "" {
		name = "<anonymous>"
	}
	return name + " :: " + s.String()
}

func malformed(r reason.Reason, msg string) *Error {
	return E(code.MalformedDeclaration, msg, WithReasonOption(r))
}

func asContract(v any, i int) (Contract, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case Contract:
		return v, nil
	case reflect.Type:
		return Type{T: v}, nil
	case Arrow:
		return nil, malformed(reason.DeclArrow,
			fmt.Sprintf("element %d: Ret/Returns must close the declaration", i+1))
	default:
		return nil, malformed(reason.DeclReturn,
			fmt.Sprintf("element %d: %T is not a contract", i+1, v))
	}
}
