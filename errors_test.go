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
	"errors"
	"fmt"
	"strings"
	"testing"

	"dirpx.dev/contracts/code"
	"dirpx.dev/contracts/reason"
)

func TestError_Basics(t *testing.T) {
	e := E(code.ParamContract, "bad argument",
		WithReasonOption(reason.ArgsSplat),
		WithDetailOption("position", 3),
	)

	if e.Code != code.ParamContract {
		t.Fatal("code mismatch")
	}
	if e.Details["position"] != 3 {
		t.Fatal("detail missing")
	}
	if got, want := e.Error(), "param_contract:args.splat: bad argument"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if got, want := E(code.NoMatch, "none").Error(), "no_match: none"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatal("nil error rendering")
	}
}

func TestError_Immutability_CopyOnWrite(t *testing.T) {
	e1 := E(code.Internal, "x").WithDetail("k1", 1)
	e2 := e1.WithDetail("k2", 2)

	if len(e1.Details) != 1 || len(e2.Details) != 2 {
		t.Fatal("details size mismatch")
	}
	if _, ok := e1.Details["k2"]; ok {
		t.Fatal("original mutated")
	}
	if e3 := e1.WithMessage("y"); e1.Message != "x" || e3.Message != "y" {
		t.Fatal("WithMessage mutated the original")
	}
	if e4 := e1.WithReason(reason.Result); e1.Reason != "" || e4.Reason != reason.Result {
		t.Fatal("WithReason mutated the original")
	}
}

func TestError_WithCause_Unwrap(t *testing.T) {
	root := errors.New("root")
	e := E(code.Internal, "x").WithCause(root)
	if !errors.Is(e, root) {
		t.Fatal("errors.Is failed")
	}
	if errors.Unwrap(e) != root {
		t.Fatal("Unwrap failed")
	}
	if E(code.Internal, "x").WithCause(nil).Cause != nil {
		t.Fatal("nil cause attached")
	}
}

func TestError_Is(t *testing.T) {
	e := E(code.ParamContract, "x", WithReasonOption(reason.ArgsSuffix))
	wrapped := fmt.Errorf("call failed: %w", e)

	if !errors.Is(wrapped, ErrParamContract) {
		t.Fatal("sentinel by code must match")
	}
	if !errors.Is(wrapped, ErrParamContract.WithReason(reason.ArgsSuffix)) {
		t.Fatal("sentinel by code and reason must match")
	}
	if errors.Is(wrapped, ErrParamContract.WithReason(reason.ArgsPrefix)) {
		t.Fatal("reason mismatch must not match")
	}
	if errors.Is(wrapped, ErrReturnContract) {
		t.Fatal("code mismatch must not match")
	}
}

func TestRecordOf(t *testing.T) {
	rec := &FailureRecord{Value: 1, Position: 1, Total: 1}
	err := fmt.Errorf("outer: %w", NewFailureError(rec))

	got, ok := RecordOf(err)
	if !ok || got != rec {
		t.Fatal("record not found through the chain")
	}
	if _, ok := RecordOf(E(code.Internal, "x")); ok {
		t.Fatal("error without record reported one")
	}
	if _, ok := RecordOf(errors.New("plain")); ok {
		t.Fatal("foreign error reported a record")
	}
}

func TestEnsure(t *testing.T) {
	if Ensure(nil) != nil {
		t.Fatal("Ensure(nil) must be nil")
	}

	e := E(code.NoMatch, "x")
	if Ensure(fmt.Errorf("wrap: %w", e)) != e {
		t.Fatal("existing *Error must be returned as-is")
	}

	plain := errors.New("disk full")
	got := Ensure(plain)
	if got.Code != code.Internal || got.Message != "disk full" || !errors.Is(got, plain) {
		t.Fatalf("Ensure(plain) = %+v", got)
	}
}

func TestError_DetailsAndView(t *testing.T) {
	s := MustDeclare(nil, WithName("add"), WithOwner("Calc"), intC, Ret(intC, intC))
	e := NewFailureError(&FailureRecord{
		Value: "x", Contract: intC, Owner: "Calc", Method: "add", Spec: s,
		Position: 2, Total: 2, Region: reason.ArgsPrefix,
	})

	v := e.ErrorView()
	if v.Code != "param_contract" || v.Reason != "args.prefix" {
		t.Fatalf("view = %+v", v)
	}
	if !strings.HasPrefix(v.Message, "Contract violation for argument 2 of 2:") {
		t.Fatalf("message = %q", v.Message)
	}
	if len(v.Details) != 1 {
		t.Fatalf("details = %+v", v.Details)
	}
	d := v.Details[0]
	want := map[string]string{"expected": "int", "actual": `"x"`, "position": "2", "total": "2", "method": "Calc::add"}
	if d.Type != "argument" || d.Field != "arg[2]" || d.Reason != "expected int" {
		t.Fatalf("detail = %+v", d)
	}
	for k, w := range want {
		if d.Info[k] != w {
			t.Fatalf("Info[%q] = %q, want %q", k, d.Info[k], w)
		}
	}

	ret := NewFailureError(&FailureRecord{Value: nil, Contract: intC, Spec: s, Total: 2, Return: true, Region: reason.Result})
	rd := ret.ErrorDetails()[0]
	if rd.Type != "return" || rd.Field != "return" {
		t.Fatalf("return detail = %+v", rd)
	}
	if _, ok := rd.Info["position"]; ok {
		t.Fatal("return detail must not carry a position")
	}

	if E(code.Internal, "x").ErrorDetails() != nil {
		t.Fatal("error without record must have no details")
	}
}

func TestError_ArityDetail(t *testing.T) {
	s := MustDeclare(func(any, []any) (any, error) { return nil, nil }, WithName("add"), intC, Ret(intC, Any))
	_, err := s.Invoke(1)

	e := Ensure(err)
	if e.ErrorCode() != "arity_mismatch" || e.ErrorReason() != "args.arity" {
		t.Fatalf("got %v", e)
	}
	d := e.ErrorDetails()[0]
	if d.Info["given"] != "1" || d.Info["contract"] != "int, int => Any" || d.Info["method"] != "add" {
		t.Fatalf("arity detail = %+v", d)
	}
	if !strings.Contains(e.Message, "wrong number of arguments for add (given 1, expected 2)") {
		t.Fatalf("message = %q", e.Message)
	}
}
