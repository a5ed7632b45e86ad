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

package builtin

import (
	"fmt"
	"io"
	"math"
	"strings"
	"testing"

	"dirpx.dev/contracts"
)

type celsius float64

func TestPredicates(t *testing.T) {
	tests := []struct {
		c    contracts.Contract
		v    any
		want bool
	}{
		{Num, 1, true},
		{Num, uint8(3), true},
		{Num, 2.5, true},
		{Num, celsius(-4), true},
		{Num, "1", false},
		{Num, nil, false},
		{Num, math.NaN(), false},

		{Int, 3, true},
		{Int, 3.0, true},
		{Int, 3.5, false},
		{Int, math.Inf(1), false},

		{Pos, 1, true},
		{Pos, 0, false},
		{Pos, -0.5, false},
		{Neg, -1, true},
		{Neg, 0, false},
		{Nat, 0, true},
		{Nat, 7.0, true},
		{Nat, -1, false},
		{Nat, 1.5, false},
		{NatPos, 0, false},
		{NatPos, 1, true},

		{Bool, true, true},
		{Bool, 1, false},
		{Str, "x", true},
		{Str, []byte("x"), false},

		{Eq(3), 3, true},
		{Eq(3), 3.0, true},
		{Eq(3.0), int64(3), true},
		{Eq(3), 3.5, false},
		{Eq(3), "3", false},
		{Eq(1), true, false},
		{Eq([]int{1}), []int{1}, true},
		{Among("a", "b"), "b", true},
		{Among("a", "b"), "c", false},
		{Among("a", 3.0), 3, true},
		{Among("a", 3.0), uint8(4), false},

		{Len(1, 3), "ab", true},
		{Len(1, 3), "", false},
		{Len(1, 3), []int{1, 2, 3, 4}, false},
		{Len(1, -1), map[string]int{"a": 1}, true},
		{Len(0, -1), 5, false},
		{Len(0, -1), nil, false},

		{Range(0, 1), 0.5, true},
		{Range(0, 1), 1, true},
		{Range(0, 1), 1.01, false},

		{Implements[fmt.Stringer](), contracts.Callable, true},
		{Implements[io.Reader](), strings.NewReader(""), true},
		{Implements[io.Reader](), "x", false},
		{Implements[io.Reader](), nil, false},

		{RespondTo("Read", "Len"), strings.NewReader(""), true},
		{RespondTo("Write"), strings.NewReader(""), false},
	}
	for _, tt := range tests {
		if got := contracts.Valid(tt.v, tt.c); got != tt.want {
			t.Fatalf("Valid(%#v, %s) = %v, want %v", tt.v, tt.c, got, tt.want)
		}
	}
}

func TestNames(t *testing.T) {
	tests := map[string]contracts.Contract{
		"Num":                      Num,
		"NatPos":                   NatPos,
		"Eq[\"x\"]":                Eq("x"),
		"Among[1, \"a\"]":          Among(1, "a"),
		"Len[1..3]":                Len(1, 3),
		"Len[2..]":                 Len(2, -1),
		"Range[0..1.5]":            Range(0, 1.5),
		"Implements[io.Reader]":    Implements[io.Reader](),
		"RespondTo[Read, Close]":   RespondTo("Read", "Close"),
		"Maybe[Str]":               contracts.Maybe{Elem: Str},
		"Or[Nat, Among[\"auto\"]]": contracts.Or{Nat, Among("auto")},
	}
	for want, c := range tests {
		if got := c.String(); got != want {
			t.Fatalf("String() = %q, want %q", got, want)
		}
	}
}

func TestImplements_PanicsOnConcreteType(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Implements[int] must panic")
		}
	}()
	_ = Implements[int]()
}
