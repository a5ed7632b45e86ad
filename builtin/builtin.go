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

// Package builtin provides ready-made predicate contracts for common value
// checks: numbers and their signs, booleans, strings, equality,
// membership, lengths and interface conformance.
//
//	contracts.Declare(target, builtin.Nat, builtin.Len(1, -1), contracts.Ret(builtin.Bool, builtin.Pos))
//
// All contracts here are contracts.Pred values; they are safe to share.
package builtin

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"dirpx.dev/contracts"
)

var (
	// Num accepts any integer or floating-point value.
	Num contracts.Contract = contracts.Pred{Name: "Num", Fn: func(v any) bool {
		_, ok := number(v)
		return ok
	}}

	// Int accepts integers, and floats with no fractional part (JSON
	// numbers decode as float64).
	Int contracts.Contract = contracts.Pred{Name: "Int", Fn: isInt}

	// Pos accepts numbers greater than zero.
	Pos contracts.Contract = contracts.Pred{Name: "Pos", Fn: func(v any) bool {
		f, ok := number(v)
		return ok && f > 0
	}}

	// Neg accepts numbers less than zero.
	Neg contracts.Contract = contracts.Pred{Name: "Neg", Fn: func(v any) bool {
		f, ok := number(v)
		return ok && f < 0
	}}

	// Nat accepts integers greater than or equal to zero.
	Nat contracts.Contract = contracts.Pred{Name: "Nat", Fn: func(v any) bool {
		f, _ := number(v)
		return isInt(v) && f >= 0
	}}

	// NatPos accepts integers greater than zero.
	NatPos contracts.Contract = contracts.Pred{Name: "NatPos", Fn: func(v any) bool {
		f, _ := number(v)
		return isInt(v) && f > 0
	}}

	// Bool accepts values of boolean kind.
	Bool contracts.Contract = contracts.Pred{Name: "Bool", Fn: func(v any) bool {
		return v != nil && reflect.TypeOf(v).Kind() == reflect.Bool
	}}

	// Str accepts values of string kind.
	Str contracts.Contract = contracts.Pred{Name: "Str", Fn: func(v any) bool {
		return v != nil && reflect.TypeOf(v).Kind() == reflect.String
	}}
)

// Eq accepts values equal to want. Numbers compare by value whatever their
// Go type; anything else must be deeply equal.
func Eq(want any) contracts.Contract {
	return contracts.Pred{
		Name: "Eq[" + literal(want) + "]",
		Fn:   func(v any) bool { return same(v, want) },
	}
}

// Among accepts values equal to one of vs, compared as by Eq.
func Among(vs ...any) contracts.Contract {
	names := make([]string, len(vs))
	for i, v := range vs {
		names[i] = literal(v)
	}
	return contracts.Pred{
		Name: "Among[" + strings.Join(names, ", ") + "]",
		Fn: func(v any) bool {
			for _, w := range vs {
				if same(v, w) {
					return true
				}
			}
			return false
		},
	}
}

// Len accepts strings, slices, arrays, maps and channels whose length is in
// [lo, hi]. A negative hi means no upper bound.
func Len(lo, hi int) contracts.Contract {
	name := fmt.Sprintf("Len[%d..%d]", lo, hi)
	if hi < 0 {
		name = fmt.Sprintf("Len[%d..]", lo)
	}
	return contracts.Pred{Name: name, Fn: func(v any) bool {
		if v == nil {
			return false
		}
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.String, reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		default:
			return false
		}
		n := rv.Len()
		return n >= lo && (hi < 0 || n <= hi)
	}}
}

// Range accepts numbers in [lo, hi].
func Range(lo, hi float64) contracts.Contract {
	return contracts.Pred{
		Name: "Range[" + strconv.FormatFloat(lo, 'g', -1, 64) + ".." + strconv.FormatFloat(hi, 'g', -1, 64) + "]",
		Fn: func(v any) bool {
			f, ok := number(v)
			return ok && f >= lo && f <= hi
		},
	}
}

// Implements accepts values implementing the interface type T. It panics
// when T is not an interface type.
func Implements[T any]() contracts.Contract {
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Interface {
		panic("builtin: Implements of non-interface type " + t.String())
	}
	return contracts.Pred{
		Name: "Implements[" + t.String() + "]",
		Fn:   func(v any) bool { return v != nil && reflect.TypeOf(v).Implements(t) },
	}
}

// RespondTo accepts values whose method set includes every named method.
func RespondTo(methods ...string) contracts.Contract {
	return contracts.Pred{
		Name: "RespondTo[" + strings.Join(methods, ", ") + "]",
		Fn: func(v any) bool {
			if v == nil {
				return false
			}
			t := reflect.TypeOf(v)
			for _, m := range methods {
				if _, ok := t.MethodByName(m); !ok {
					return false
				}
			}
			return true
		},
	}
}

func number(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f, !math.IsNaN(f)
	default:
		return 0, false
	}
}

func same(v, w any) bool {
	if a, ok := number(v); ok {
		b, ok := number(w)
		return ok && a == b
	}
	return reflect.DeepEqual(v, w)
}

func isInt(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Float32, reflect.Float64:
		f, ok := number(v)
		return ok && !math.IsInf(f, 0) && f == math.Trunc(f)
	}
	_, ok := number(v)
	return ok
}

func literal(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprint(v)
}
