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

import (
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Reason locates a contract failure: which part of the declaration or of
// the call it concerns. Reasons are dot-separated, one to four lowercase
// segments, most general first, so "args" covers "args.prefix" and
// "args.splat".
//
// The empty Reason means "not located" and is always valid.
type Reason string

const (
	// MinLength is the minimum length of a non-empty reason.
	MinLength = 3
	// MaxLength is the maximum length of a reason.
	MaxLength = 128
)

// reasonFmt accepts 1..4 segments, each a letter followed by letters,
// digits or underscores.
const reasonFmt = `^[a-z][a-z0-9_]*(\.[a-z][a-z0-9_]*){0,3}$`

var reasonRe = regexp.MustCompile(reasonFmt)

var (
	// ErrReasonInvalidFormat is returned for a reason with bad segments.
	ErrReasonInvalidFormat = errors.New("contracts: invalid reason format")
	// ErrReasonInvalidLength is returned for a reason that is too short or
	// too long.
	ErrReasonInvalidLength = errors.New("contracts: invalid reason length")
)

var (
	_ encoding.TextMarshaler   = (*Reason)(nil)
	_ encoding.TextUnmarshaler = (*Reason)(nil)
)

// Empty is the "not located" reason.
var Empty Reason = ""

// Normalize trims and lowercases s, turns "/" into "." and "-" into "_".
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("/", ".", "-", "_").Replace(s)
}

// Parse normalizes s and validates the result. The empty string parses to
// Empty.
func Parse(s string) (Reason, error) {
	s = Normalize(s)
	if s == "" {
		return Empty, nil
	}
	if err := validate(s); err != nil {
		return Empty, err
	}
	return Reason(s), nil
}

// MustParse is Parse for package-level declarations. It panics on error
// and on the empty string.
func MustParse(s string) Reason {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	if r == Empty {
		panic("contracts: empty reason in MustParse")
	}
	return r
}

// Validate reports whether r is canonical. Empty is valid.
func Validate(r Reason) error {
	if r == Empty {
		return nil
	}
	return validate(string(r))
}

// Segments splits r at the dots. Empty has no segments.
func (r Reason) Segments() []string {
	if r == Empty {
		return nil
	}
	return strings.Split(string(r), ".")
}

// Parent drops the last segment: "args.splat" becomes "args", a
// single-segment reason becomes Empty.
func (r Reason) Parent() Reason {
	i := strings.LastIndexByte(string(r), '.')
	if i < 0 {
		return Empty
	}
	return r[:i]
}

// Under reports whether r equals prefix or lies below it, segment-wise:
// "args.splat" is under "args" but "argsx" is not. Every reason is under
// Empty.
func (r Reason) Under(prefix Reason) bool {
	if prefix == Empty || r == prefix {
		return true
	}
	return strings.HasPrefix(string(r), string(prefix)+".")
}

func (r Reason) String() string { return string(r) }

// MarshalText implements encoding.TextMarshaler. Empty marshals to no
// bytes.
func (r Reason) MarshalText() ([]byte, error) {
	if err := Validate(r); err != nil {
		return nil, err
	}
	return []byte(r), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via Parse.
func (r *Reason) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func validate(s string) error {
	if len(s) < MinLength || len(s) > MaxLength {
		return ErrReasonInvalidLength
	}
	if !reasonRe.MatchString(s) {
		return ErrReasonInvalidFormat
	}
	return nil
}
