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

package code

import (
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Code classifies a contract failure: what kind of check failed.
//
// It is a separate type (not just string) so that failure handlers, mappers
// and transports state explicitly that they expect a normalized value, and
// raw user input (a flag, a config key, a header) is never mixed with it by
// accident.
//
// Codes are lowercase snake_case identifiers such as "param_contract" or
// "arity_mismatch". The set this module raises is listed in codes.go;
// transports and custom failure handlers may introduce their own, as long
// as they validate.
//
// IMPORTANT: Empty codes ("") are NOT allowed. Every contract failure MUST
// carry a non-empty code; an Error without one is reported as internal.
type Code string

// MinLength and MaxLength bound the length of a canonical code.
//
// They are exported so validation errors, mapper configuration and tests can
// refer to the same limits the regular expression below enforces.
const (
	// MinLength is the minimum length of a valid code. Three characters
	// keep out ambiguous identifiers like "a" or "x1".
	MinLength = 3

	// MaxLength is the maximum length of a valid code. 64 characters fit
	// descriptive codes like "malformed_declaration" and still bound what a
	// gRPC ErrorInfo or an HTTP payload may carry.
	MaxLength = 64
)

// codeFmt is the canonical pattern of a code. It MUST stay in sync with
// MinLength and MaxLength.
//
// Pattern breakdown:
//
//	^                - start of string;
//	[a-z]            - first character is a lowercase ASCII letter;
//	[a-z0-9_]{2,63}  - then lowercase letters, digits or underscores, so the
//	                   total length is 3..64 (1 + 2..63);
//	$                - end of string.
//
// Dashes and spaces are not part of the canonical form; Normalize turns
// them into underscores before validation.
const codeFmt = `^[a-z][a-z0-9_]{2,63}$`

var codeRe = regexp.MustCompile(codeFmt)

// ErrCodeInvalid is returned when a string is not a canonical code.
var ErrCodeInvalid = errors.New("contracts: invalid code")

var (
	_ encoding.TextMarshaler   = (*Code)(nil)
	_ encoding.TextUnmarshaler = (*Code)(nil)
)

// Empty is the zero code. It never validates.
var Empty Code = ""

// Parse normalizes s and validates the result.
func Parse(s string) (Code, error) {
	s = Normalize(s)
	if !codeRe.MatchString(s) {
		return Empty, ErrCodeInvalid
	}
	return Code(s), nil
}

// MustParse is Parse for package-level declarations; it panics on error.
func MustParse(s string) Code {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Normalize trims s, lowercases it and turns dashes and spaces into
// underscores. The result still has to be validated.
//
//	Normalize(" Param-Contract ") == "param_contract"
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}

// Validate reports whether c is canonical.
func Validate(c Code) error {
	if !codeRe.MatchString(string(c)) {
		return ErrCodeInvalid
	}
	return nil
}

// Known reports whether c is one of the codes this module raises.
func Known(c Code) bool {
	for _, k := range all {
		if k == c {
			return true
		}
	}
	return false
}

// All returns the codes this module raises, in declaration order.
func All() []Code { return append([]Code(nil), all...) }

func (c Code) String() string { return string(c) }

// MarshalText implements encoding.TextMarshaler. Invalid codes fail to
// marshal.
func (c Code) MarshalText() ([]byte, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via Parse.
func (c *Code) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
