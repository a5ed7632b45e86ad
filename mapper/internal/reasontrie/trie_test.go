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

package reasontrie

import (
	"testing"

	"dirpx.dev/contracts/reason"
)

func TestLookup_LongestPrefix(t *testing.T) {
	tr := New[int]()
	must(t, tr.Insert("args", 400))
	must(t, tr.Insert("args.splat", 422))

	cases := []struct {
		in      reason.Reason
		want    int
		pattern string
		ok      bool
	}{
		{"args.splat", 422, "args.splat", true},
		{"args.prefix", 400, "args", true},
		{"args", 400, "args", true},
		{"argsx", 0, "", false},
		{"result", 0, "", false},
		{reason.Empty, 0, "", false},
	}
	for _, tt := range cases {
		v, p, ok := tr.Lookup(tt.in)
		if ok != tt.ok || v != tt.want || p != tt.pattern {
			t.Fatalf("Lookup(%q) = %d, %q, %v; want %d, %q, %v", tt.in, v, p, ok, tt.want, tt.pattern, tt.ok)
		}
	}
}

func TestLookup_Wildcard(t *testing.T) {
	tr := New[int]()
	must(t, tr.Insert("decl.*", 500))
	must(t, tr.Insert("decl.splat", 501))
	must(t, tr.Insert("a.*.c", 7))
	must(t, tr.Insert("a.b", 1))

	if v, p, _ := tr.Lookup("decl.splat"); v != 501 || p != "decl.splat" {
		t.Fatalf("literal must beat wildcard: %d %q", v, p)
	}
	if v, p, _ := tr.Lookup("decl.arrow"); v != 500 || p != "decl.*" {
		t.Fatalf("wildcard match failed: %d %q", v, p)
	}
	if _, _, ok := tr.Lookup("decl"); ok {
		t.Fatalf("wildcard must not match zero segments")
	}
	if v, p, _ := tr.Lookup("a.b.c"); v != 7 || p != "a.*.c" {
		t.Fatalf("deeper wildcard path must win: %d %q", v, p)
	}
}

func TestInsert_Invalid(t *testing.T) {
	tr := New[int]()
	for _, p := range []string{"", "*", "*.*", "args..splat", "Args", "1x", "args.sp-lat"} {
		if err := tr.Insert(p, 1); err != ErrInvalidPattern {
			t.Fatalf("Insert(%q) = %v, want ErrInvalidPattern", p, err)
		}
	}
}

func TestInsert_Replaces(t *testing.T) {
	tr := New[int]()
	must(t, tr.Insert("result", 1))
	must(t, tr.Insert("result", 2))
	if v, _, _ := tr.Lookup("result"); v != 2 {
		t.Fatalf("Lookup = %d, want 2", v)
	}
}

func BenchmarkLookup(b *testing.B) {
	tr := New[int]()
	_ = tr.Insert("args", 400)
	_ = tr.Insert("args.*", 422)
	_ = tr.Insert("decl.splat", 500)
	r := reason.ArgsSuffix
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _, _ = tr.Lookup(r)
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
