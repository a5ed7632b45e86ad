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
	"dirpx.dev/contracts/apis"
	"dirpx.dev/contracts/code"
	"dirpx.dev/contracts/reason"
)

// attempt is the per-call state of one invocation through a Spec.
type attempt struct {
	recv any
	// args is the effective argument list: what the caller passed plus the
	// callback and any injected placeholder or mapping.
	args []any
	// placeholder marks a nil appended for an omitted callback.
	placeholder bool
	// mappingAt is the index of an injected empty mapping, -1 for none.
	mappingAt int
}

// Call invokes the guarded callable through the contract:
//
//  1. prepare: append callback (or a nil placeholder when the trailing
//     callback slot was omitted), insert an empty mapping when the trailing
//     options mapping was omitted;
//  2. validate every argument (see match), reporting mismatches to the
//     failure policy and re-wrapping Func arguments;
//  3. invoke the callable exactly once with what the caller supplied;
//  4. validate the result;
//  5. run recv's invariant checks, if recv implements apis.InvariantChecker;
//  6. wrap a Func result in a new Spec.
//
// Errors are an *Error with code ArityMismatch, ParamContract,
// PatternMatching or ReturnContract, whatever the failure handler raised,
// whatever the callable returned, or whatever the invariant check returned.
// When the handler aborts, Call returns (nil, nil).
func (s *Spec) Call(recv any, args []any, callback any) (any, error) {
	if s.target == nil {
		return nil, E(code.MalformedDeclaration, "contract "+s.String()+" is not bound to a callable",
			WithReasonOption(reason.DeclTarget))
	}

	a := s.prepare(recv, args, callback)

	slots, err := s.match(len(a.args))
	if err != nil {
		return nil, err
	}
	for _, sl := range slots {
		v := a.args[sl.pos]
		if !sl.validator(v) {
			o := s.report(&FailureRecord{
				Value:    v,
				Contract: sl.contract,
				Owner:    s.owner,
				Method:   s.name,
				Spec:     s,
				Position: sl.pos + 1,
				Total:    len(a.args),
				Region:   sl.region,
			})
			switch {
			case o.IsRaise():
				return nil, o.Err()
			case o.IsAbort():
				return nil, nil
			}
			continue
		}
		if sl.template != nil {
			a.args[sl.pos] = sl.template.Bind(asTarget(v))
		}
	}

	result, err := s.target(recv, a.invokeArgs())
	if err != nil {
		return nil, err
	}

	if !s.retValidator(result) {
		o := s.report(&FailureRecord{
			Value:    result,
			Contract: s.ret,
			Owner:    s.owner,
			Method:   s.name,
			Spec:     s,
			Total:    len(a.args),
			Return:   true,
			Region:   reason.Result,
		})
		switch {
		case o.IsRaise():
			return nil, o.Err()
		case o.IsAbort():
			return nil, nil
		}
	}

	if ic, ok := recv.(apis.InvariantChecker); ok {
		if err := ic.CheckInvariants(s.name); err != nil {
			return nil, err
		}
	}

	if s.retTemplate != nil && IsCallable(result) {
		return s.retTemplate.Bind(asTarget(result)), nil
	}
	return result, nil
}

// Invoke calls the Spec without a receiver or callback.
func (s *Spec) Invoke(args ...any) (any, error) { return s.Call(nil, args, nil) }

func (s *Spec) prepare(recv any, args []any, callback any) *attempt {
	a := &attempt{
		recv:      recv,
		args:      make([]any, len(args), len(args)+2),
		mappingAt: -1,
	}
	copy(a.args, args)

	switch {
	case callback != nil:
		a.args = append(a.args, callback)
	case s.hasTrailingCallback && (s.splat >= 0 || len(a.args) < len(s.args)):
		a.args = append(a.args, nil)
		a.placeholder = true
	}

	if s.hasTrailingMapping && (s.splat >= 0 || len(a.args) < len(s.args)) {
		at := len(a.args)
		if s.hasTrailingCallback {
			at--
		}
		if at < 0 {
			at = 0
		}
		if at == 0 || !isMapping(a.args[at-1]) {
			a.args = append(a.args, nil)
			copy(a.args[at+1:], a.args[at:])
			a.args[at] = map[string]any{}
			a.mappingAt = at
		}
	}
	return a
}

// invokeArgs strips the injected placeholder and mapping.
func (a *attempt) invokeArgs() []any {
	out := a.args
	if a.placeholder {
		out = out[:len(out)-1]
	}
	if a.mappingAt >= 0 {
		stripped := make([]any, 0, len(out)-1)
		stripped = append(stripped, out[:a.mappingAt]...)
		out = append(stripped, out[a.mappingAt+1:]...)
	}
	return out
}

func (s *Spec) report(rec *FailureRecord) Outcome {
	o := s.policy.Handle(rec)
	switch {
	case o.IsContinue():
		s.log.V(1).Info("contract mismatch tolerated", "functype", s.Functype(), "field", rec.Field())
	case o.IsAbort():
		s.log.V(1).Info("call aborted on contract mismatch", "functype", s.Functype(), "field", rec.Field())
	}
	return o
}
