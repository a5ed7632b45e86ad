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
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trim and lower", "  Args.Splat  ", "args.splat"},
		{"slash to dot", "decl/return", "decl.return"},
		{"dash to underscore", "transport.decode-json", "transport.decode_json"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	valid := []struct {
		in   string
		want Reason
	}{
		{"args/suffix", ArgsSuffix},
		{"RESULT", Result},
		{"", Empty},
		{"a.b.c.d", Reason("a.b.c.d")},
	}
	for _, tt := range valid {
		got, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q) unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	invalid := []struct {
		in   string
		want error
	}{
		{"args..splat", ErrReasonInvalidFormat},
		{".args", ErrReasonInvalidFormat},
		{"args.", ErrReasonInvalidFormat},
		{"1args", ErrReasonInvalidFormat},
		{"a.b.c.d.e", ErrReasonInvalidFormat},
		{"ab", ErrReasonInvalidLength},
		{"args." + strings.Repeat("x", MaxLength), ErrReasonInvalidLength},
	}
	for _, tt := range invalid {
		got, err := Parse(tt.in)
		if err != tt.want {
			t.Fatalf("Parse(%q) error = %v, want %v", tt.in, err, tt.want)
		}
		if got != Empty {
			t.Fatalf("Parse(%q) on error must return Empty, got %q", tt.in, got)
		}
	}
}

func TestDeclaredReasonsAreValid(t *testing.T) {
	for _, r := range []Reason{
		Decl, DeclReturn, DeclSplat, DeclArrow, DeclTarget, DeclFile,
		Args, ArgsArity, ArgsPrefix, ArgsSplat, ArgsSuffix,
		Result, Invariant, Dispatch, Decode,
	} {
		if err := Validate(r); err != nil {
			t.Fatalf("Validate(%q): %v", r, err)
		}
	}
}

func TestMustParse(t *testing.T) {
	if r := MustParse("args.splat"); r != ArgsSplat {
		t.Fatalf("MustParse = %q, want %q", r, ArgsSplat)
	}
	for _, in := range []string{"", "args..splat"} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("MustParse(%q) must panic", in)
				}
			}()
			_ = MustParse(in)
		}()
	}
}

func TestHierarchy(t *testing.T) {
	if got := ArgsSplat.Parent(); got != Args {
		t.Fatalf("Parent(args.splat) = %q, want args", got)
	}
	if got := Result.Parent(); got != Empty {
		t.Fatalf("Parent(result) = %q, want empty", got)
	}
	if got := Decode.Segments(); len(got) != 2 || got[0] != "transport" || got[1] != "decode" {
		t.Fatalf("Segments(transport.decode) = %v", got)
	}
	if Empty.Segments() != nil {
		t.Fatalf("Segments(empty) must be nil")
	}

	under := []struct {
		r, prefix Reason
		want      bool
	}{
		{ArgsSplat, Args, true},
		{Args, Args, true},
		{ArgsSplat, Empty, true},
		{Reason("argsx"), Args, false},
		{Args, ArgsSplat, false},
		{Result, Args, false},
	}
	for _, tt := range under {
		if got := tt.r.Under(tt.prefix); got != tt.want {
			t.Fatalf("%q.Under(%q) = %v, want %v", tt.r, tt.prefix, got, tt.want)
		}
	}
}

func TestReason_Text(t *testing.T) {
	text, err := ArgsPrefix.MarshalText()
	if err != nil || string(text) != "args.prefix" {
		t.Fatalf("MarshalText = %q, %v", text, err)
	}
	text, err = Empty.MarshalText()
	if err != nil || len(text) != 0 {
		t.Fatalf("MarshalText(empty) = %q, %v", text, err)
	}
	if _, err := Reason("Bad.Reason").MarshalText(); err == nil {
		t.Fatalf("MarshalText on invalid reason must fail")
	}

	var r Reason
	if err := r.UnmarshalText([]byte("  DECL/SPLAT ")); err != nil {
		t.Fatalf("UnmarshalText unexpected error: %v", err)
	}
	if r != DeclSplat {
		t.Fatalf("UnmarshalText = %q, want %q", r, DeclSplat)
	}
	if err := r.UnmarshalText([]byte("a/b/c/d/e")); err == nil {
		t.Fatalf("UnmarshalText expected error for five segments")
	}
}
