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
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type evenNumber struct{}

func (evenNumber) Valid(v any) bool {
	n, ok := v.(int)
	return ok && n%2 == 0
}

func (evenNumber) String() string { return "Even" }

var even = Pred{Name: "even", Fn: func(v any) bool {
	n, ok := v.(int)
	return ok && n%2 == 0
}}

func TestCompile(t *testing.T) {
	noop := Target(func(any, []any) (any, error) { return nil, nil })

	tests := []struct {
		name string
		c    Contract
		ok   []any
		bad  []any
	}{
		{"nil contract", nil, []any{nil, (*int)(nil), []int(nil)}, []any{0, "", false}},
		{"zero type", Type{}, []any{nil}, []any{1}},
		{"exact type", TypeOf[int](), []any{1, -7}, []any{int64(1), "1", 1.0, nil}},
		{"interface type", TypeOf[fmt.Stringer](), []any{time.Second}, []any{1, nil}},
		{"io interface", TypeOf[io.Reader](), []any{strings.NewReader("x")}, []any{"x"}},
		{"callable", Callable, []any{func() {}, noop, MustDeclare(nil, Returns(nil))}, []any{nil, (func())(nil), 1, "f"}},
		{"pred", even, []any{2, 0}, []any{3, "2", nil}},
		{"pred without fn", Pred{Name: "never"}, nil, []any{1, nil}},
		{"custom", Custom(evenNumber{}), []any{4}, []any{5, "4"}},
		{
			"shape",
			Shape{"name": TypeOf[string](), "age": Maybe{Elem: TypeOf[int]()}},
			[]any{
				map[string]any{"name": "a"},
				map[string]any{"name": "a", "age": 3, "extra": true},
				map[string]string{"name": "a"},
			},
			[]any{map[string]any{"age": 3}, map[string]any{"name": 1}, nil, map[int]any{1: "a"}, "name"},
		},
		{"keywords", Keywords{"n": TypeOf[int]()}, []any{map[string]int{"n": 1}}, []any{map[string]int{}, []any{1}}},
		{"splat element", Splat{Elem: TypeOf[string]()}, []any{"a"}, []any{1, nil}},
		{"func checks invocability only", Func{Args: []Contract{TypeOf[int]()}, Ret: TypeOf[int]()}, []any{func(string) {}, noop}, []any{nil, 3}},
		{"or", Or{TypeOf[int](), TypeOf[string]()}, []any{1, "a"}, []any{1.5, nil}},
		{"empty or", Or{}, nil, []any{1, nil}},
		{"and", And{TypeOf[int](), even}, []any{2}, []any{3, "2"}},
		{"empty and", And{}, []any{1, nil}, nil},
		{"not", Not{Elem: TypeOf[int]()}, []any{"a", nil}, []any{1}},
		{"maybe", Maybe{Elem: TypeOf[int]()}, []any{nil, 1, (*int)(nil)}, []any{"a"}},
		{"array of", ArrayOf{Elem: TypeOf[int]()}, []any{[]int{1, 2}, []any{1}, [2]int{}, []any{}}, []any{[]any{1, "a"}, "ab", nil, map[string]int{}}},
		{"hash of", HashOf{Key: TypeOf[string](), Val: even}, []any{map[string]int{"a": 2}, map[string]any{}}, []any{map[string]int{"a": 1}, map[int]int{1: 2}, nil, []int{2}}},
		{"any", Any, []any{nil, 1, "x"}, nil},
		{"nil", Nil, []any{nil, map[string]int(nil)}, []any{0, map[string]int{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Compile(tt.c)
			for _, x := range tt.ok {
				require.True(t, v(x), "%s should accept %#v", describe(tt.c), x)
			}
			for _, x := range tt.bad {
				require.False(t, v(x), "%s should reject %#v", describe(tt.c), x)
			}
		})
	}
}

func TestValid(t *testing.T) {
	require.True(t, Valid(3, Or{Nil, TypeOf[int]()}))
	require.False(t, Valid("3", Or{Nil, TypeOf[int]()}))
}

func TestContract_String(t *testing.T) {
	tests := []struct {
		c    Contract
		want string
	}{
		{TypeOf[int](), "int"},
		{Type{}, "nil"},
		{Callable, "Callable"},
		{Pred{}, "Pred"},
		{Custom(evenNumber{}), "Even"},
		{Shape{"b": TypeOf[int](), "a": nil}, "{a: nil, b: int}"},
		{Keywords{"x": Any}, "Keywords{x: Any}"},
		{Splat{Elem: TypeOf[string]()}, "Splat[string]"},
		{Func{Args: []Contract{TypeOf[int]()}, Ret: TypeOf[bool]()}, "Func[int => bool]"},
		{Func{Ret: nil}, "Func[=> nil]"},
		{Or{TypeOf[int](), nil}, "Or[int, nil]"},
		{And{even, Not{Elem: TypeOf[string]()}}, "And[even, Not[string]]"},
		{Maybe{Elem: ArrayOf{Elem: TypeOf[int]()}}, "Maybe[ArrayOf[int]]"},
		{HashOf{Key: TypeOf[string](), Val: Any}, "HashOf[string, Any]"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.c.String())
	}
}

func TestIsCallable(t *testing.T) {
	var nilSpec *Spec
	var nilTarget Target
	require.True(t, IsCallable(strings.ToUpper))
	require.True(t, IsCallable(Unconstrained(func(any, []any) (any, error) { return nil, nil })))
	require.False(t, IsCallable(nilSpec))
	require.False(t, IsCallable(nilTarget))
	require.False(t, IsCallable(42))
}
