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
	"strconv"

	"dirpx.dev/contracts/apis"
	"dirpx.dev/contracts/code"
	"dirpx.dev/contracts/reason"
)

// Error is the error type raised by contract enforcement.
//
// It carries:
//   - Code: which kind of failure happened (required);
//   - Reason: where it happened (declaration, argument region, result, ...);
//   - Message: the formatted, human-oriented description;
//   - Record: the FailureRecord for argument and return mismatches, so
//     callers can render their own message without re-deriving state;
//   - Details: optional extra key/value payload;
//   - Cause: wrapped underlying error.
//
// All mutation helpers (WithX) return a shallow copy.
type Error struct {
	Code    code.Code
	Reason  reason.Reason
	Message string
	Record  *FailureRecord
	Details map[string]any
	Cause   error
}

// Sentinels for errors.Is. An *Error matches a sentinel when the codes are
// equal; the sentinels carry no reason, record or message.
var (
	ErrMalformedDeclaration = &Error{Code: code.MalformedDeclaration}
	ErrArityMismatch        = &Error{Code: code.ArityMismatch}
	ErrParamContract        = &Error{Code: code.ParamContract}
	ErrPatternMatching      = &Error{Code: code.PatternMatching}
	ErrReturnContract       = &Error{Code: code.ReturnContract}
	ErrInvariantViolation   = &Error{Code: code.InvariantViolation}
	ErrNoMatch              = &Error{Code: code.NoMatch}
)

var (
	_ apis.CodedError    = (*Error)(nil)
	_ apis.ReasonedError = (*Error)(nil)
	_ apis.DetailedError = (*Error)(nil)
	_ apis.ViewProvider  = (*Error)(nil)
)

// E is a convenience constructor for Error. It always returns a new Error
// and applies all provided options in order.
func E(c code.Code, msg string, opts ...ErrorOption) *Error {
	e := &Error{Code: c, Message: msg}
	for _, opt := range opts {
		e = opt(e)
	}
	return e
}

// NewFailureError builds the error the default failure handler raises for
// rec: ReturnContractError for return mismatches, PatternMatchingError when
// the owning Spec is pattern-matching, ParamContractError otherwise.
func NewFailureError(rec *FailureRecord) *Error {
	c := code.ParamContract
	switch {
	case rec.Return:
		c = code.ReturnContract
	case rec.Spec != nil && rec.Spec.IsPatternMatching():
		c = code.PatternMatching
	}
	return &Error{Code: c, Reason: rec.Region, Message: Format(rec), Record: rec}
}

// Error implements the built-in error interface.
//
// The format is:
//
//	<code>: <message>
//
// or, when Reason is present:
//
//	<code>:<reason>: <message>
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Reason != "" {
		return fmt.Sprintf("%s:%s: %s", e.Code, e.Reason, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, enabling errors.Is / errors.As chains.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same Code and, when the
// target names one, the same Reason.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	if t.Code != e.Code {
		return false
	}
	return t.Reason == "" || t.Reason == e.Reason
}

// ErrorCode implements apis.CodedError.
func (e *Error) ErrorCode() string { return string(e.Code) }

// ErrorReason implements apis.ReasonedError.
func (e *Error) ErrorReason() string { return string(e.Reason) }

// ErrorDetails implements apis.DetailedError. A failure record becomes one
// detail describing the offending position.
func (e *Error) ErrorDetails() []apis.Detail {
	rec := e.Record
	if rec == nil {
		return nil
	}
	if rec.Region == reason.ArgsArity {
		d := apis.Detail{
			Type:   "arity",
			Field:  "args",
			Reason: "wrong number of arguments",
			Info: map[string]string{
				"given":    strconv.Itoa(rec.Total),
				"contract": rec.Spec.String(),
			},
		}
		if m := rec.Guarded(); m != "" {
			d.Info["method"] = m
		}
		return []apis.Detail{d}
	}
	d := apis.Detail{
		Type:   "argument",
		Field:  rec.Field(),
		Reason: "expected " + describe(rec.Contract),
		Info: map[string]string{
			"expected": describe(rec.Contract),
			"actual":   inspect(rec.Value),
		},
	}
	if rec.Return {
		d.Type = "return"
	} else {
		d.Info["position"] = strconv.Itoa(rec.Position)
		d.Info["total"] = strconv.Itoa(rec.Total)
	}
	if m := rec.Guarded(); m != "" {
		d.Info["method"] = m
	}
	return []apis.Detail{d}
}

// ErrorView implements apis.ViewProvider.
func (e *Error) ErrorView() apis.ErrorView {
	return apis.ErrorView{
		Code:    string(e.Code),
		Reason:  string(e.Reason),
		Message: e.Message,
		Details: e.ErrorDetails(),
	}
}

// WithReason returns a shallow copy of e with the given Reason set.
func (e *Error) WithReason(r reason.Reason) *Error {
	cp := *e
	cp.Reason = r
	return &cp
}

// WithMessage returns a shallow copy of e with a replaced message.
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.Message = msg
	return &cp
}

// WithRecord returns a shallow copy of e carrying rec.
func (e *Error) WithRecord(rec *FailureRecord) *Error {
	cp := *e
	cp.Record = rec
	return &cp
}

// WithDetail returns a shallow copy of e with one extra key/value in Details.
// The map is always copied.
func (e *Error) WithDetail(k string, v any) *Error {
	cp := *e
	m := make(map[string]any, len(cp.Details)+1)
	for k0, v0 := range cp.Details {
		m[k0] = v0
	}
	m[k] = v
	cp.Details = m
	return &cp
}

// WithCause returns a shallow copy of e with the given cause attached.
// If err is nil, the original error is returned unchanged.
func (e *Error) WithCause(err error) *Error {
	if err == nil {
		return e
	}
	cp := *e
	cp.Cause = err
	return &cp
}

// RecordOf returns the FailureRecord carried by the first *Error in err's
// chain, if any.
func RecordOf(err error) (*FailureRecord, bool) {
	var e *Error
	if !errors.As(err, &e) || e.Record == nil {
		return nil, false
	}
	return e.Record, true
}

// Ensure converts any error into an *Error. Existing *Errors in the chain
// are returned as-is; anything else is wrapped with code.Internal.
func Ensure(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return E(code.Internal, err.Error(), WithCauseOption(err))
}

// ErrorOption is a functional option for constructing an Error with E.
type ErrorOption func(*Error) *Error

// WithReasonOption sets the Reason on the error being constructed.
func WithReasonOption(r reason.Reason) ErrorOption {
	return func(e *Error) *Error { return e.WithReason(r) }
}

// WithDetailOption adds a single detail key/value on construction.
func WithDetailOption(k string, v any) ErrorOption {
	return func(e *Error) *Error { return e.WithDetail(k, v) }
}

// WithRecordOption attaches a failure record on construction.
func WithRecordOption(rec *FailureRecord) ErrorOption {
	return func(e *Error) *Error { return e.WithRecord(rec) }
}

// WithCauseOption attaches a cause on construction.
func WithCauseOption(err error) ErrorOption {
	return func(e *Error) *Error { return e.WithCause(err) }
}
