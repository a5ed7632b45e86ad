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
	"sync/atomic"

	"github.com/go-logr/logr"
)

type outcomeKind uint8

const (
	outcomeRaise outcomeKind = iota
	outcomeContinue
	outcomeAbort
)

// Outcome is the decision a failure handler returns for one mismatch.
type Outcome struct {
	kind outcomeKind
	err  error
}

var (
	// Continue tolerates the mismatch: validation proceeds and the guarded
	// callable is still invoked (or its result still returned).
	Continue = Outcome{kind: outcomeContinue}

	// Abort stops the call without an error. On the argument side the
	// callable is not invoked; on the return side the result is dropped.
	// Either way the call returns (nil, nil).
	Abort = Outcome{kind: outcomeAbort}
)

// Raise fails the call with err. A nil err raises the default error for the
// record.
func Raise(err error) Outcome { return Outcome{kind: outcomeRaise, err: err} }

// IsRaise reports whether the outcome fails the call.
func (o Outcome) IsRaise() bool { return o.kind == outcomeRaise }

// IsContinue reports whether the outcome tolerates the mismatch.
func (o Outcome) IsContinue() bool { return o.kind == outcomeContinue }

// IsAbort reports whether the outcome silently stops the call.
func (o Outcome) IsAbort() bool { return o.kind == outcomeAbort }

// Err returns the error to raise; nil unless IsRaise.
func (o Outcome) Err() error { return o.err }

// Handler decides what happens on a mismatch.
type Handler func(rec *FailureRecord) Outcome

// DefaultHandler always raises NewFailureError(rec).
func DefaultHandler(rec *FailureRecord) Outcome { return Raise(NewFailureError(rec)) }

// LogHandler returns a soft-fail handler: every mismatch is logged with the
// formatted message and then tolerated.
func LogHandler(log logr.Logger) Handler {
	return func(rec *FailureRecord) Outcome {
		log.Info(Format(rec),
			"method", rec.Guarded(),
			"field", rec.Field(),
			"region", string(rec.Region),
		)
		return Continue
	}
}

// Policy holds the failure handler used by a set of Specs. It is safe for
// concurrent use; Override and Restore take effect for calls that start
// afterwards.
//
// Specs flagged pattern-matching bypass the installed handler and always
// use DefaultHandler, so overload dispatch can rely on PatternMatchingError.
type Policy struct {
	h atomic.Pointer[Handler]
}

// NewPolicy returns a policy with h installed (DefaultHandler when nil).
func NewPolicy(h Handler) *Policy {
	p := &Policy{}
	p.Override(h)
	return p
}

// Override installs h. A nil h restores the default.
func (p *Policy) Override(h Handler) {
	if h == nil {
		h = DefaultHandler
	}
	p.h.Store(&h)
}

// Restore reinstalls DefaultHandler.
func (p *Policy) Restore() { p.Override(nil) }

// Handler returns the installed handler.
func (p *Policy) Handler() Handler {
	if h := p.h.Load(); h != nil {
		return *h
	}
	return DefaultHandler
}

// Handle routes rec to the installed handler, or to DefaultHandler when the
// owning Spec is pattern-matching.
func (p *Policy) Handle(rec *FailureRecord) Outcome {
	if rec.Spec != nil && rec.Spec.IsPatternMatching() {
		return DefaultHandler(rec)
	}
	o := p.Handler()(rec)
	if o.IsRaise() && o.err == nil {
		return DefaultHandler(rec)
	}
	return o
}

var defaultPolicy = NewPolicy(nil)

// DefaultPolicy returns the process-wide policy used by Specs built without
// WithPolicy.
func DefaultPolicy() *Policy { return defaultPolicy }

// OverrideFailureHandler installs h on the process-wide policy. Prefer a
// dedicated Policy passed with WithPolicy: the process-wide one is shared by
// every goroutine.
func OverrideFailureHandler(h Handler) { defaultPolicy.Override(h) }

// RestoreDefaultFailureHandler reinstalls DefaultHandler on the process-wide
// policy.
func RestoreDefaultFailureHandler() { defaultPolicy.Restore() }
