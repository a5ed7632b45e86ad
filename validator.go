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
	"reflect"
)

// Validator is a compiled, pure predicate for one contract. Validators are
// stateless and safe for concurrent use.
type Validator func(v any) bool

// Compile turns a contract into a Validator. Nested contracts (shapes,
// combinators, splat elements) are compiled once, up front, so the returned
// Validator does no further dispatch on the contract tree.
//
// A nil contract compiles to the nil-value check.
func Compile(c Contract) Validator {
	switch c := c.(type) {
	case nil:
		return isNil
	case Type:
		return typeValidator(c.T)
	case callable:
		return IsCallable
	case Pred:
		if c.Fn == nil {
			return func(any) bool { return false }
		}
		return c.Fn
	case custom:
		return c.v.Valid
	case Shape:
		return shapeValidator(c)
	case Keywords:
		return shapeValidator(c)
	case Splat:
		return Compile(c.Elem)
	case Func:
		// Only invocability is checked here; the nested contracts are
		// enforced by the Spec that replaces the value.
		return IsCallable
	case Or:
		subs := compileAll(c)
		return func(v any) bool {
			for _, sub := range subs {
				if sub(v) {
					return true
				}
			}
			return false
		}
	case And:
		subs := compileAll(c)
		return func(v any) bool {
			for _, sub := range subs {
				if !sub(v) {
					return false
				}
			}
			return true
		}
	case Not:
		sub := Compile(c.Elem)
		return func(v any) bool { return !sub(v) }
	case Maybe:
		sub := Compile(c.Elem)
		return func(v any) bool { return isNil(v) || sub(v) }
	case ArrayOf:
		return arrayValidator(Compile(c.Elem))
	case HashOf:
		return hashValidator(Compile(c.Key), Compile(c.Val))
	default:
		// Unreachable for the closed set above.
		return func(any) bool { return false }
	}
}

// Valid reports whether v satisfies c.
func Valid(v any, c Contract) bool { return Compile(c)(v) }

// IsCallable reports whether v can be invoked through a Spec: a non-nil Go
// func, Target or *Spec.
func IsCallable(v any) bool {
	switch f := v.(type) {
	case nil:
		return false
	case *Spec:
		return f != nil
	case Target:
		return f != nil
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Func && !rv.IsNil()
}

func compileAll(cs []Contract) []Validator {
	out := make([]Validator, len(cs))
	for i, c := range cs {
		out[i] = Compile(c)
	}
	return out
}

func typeValidator(t reflect.Type) Validator {
	if t == nil {
		return isNil
	}
	if t.Kind() == reflect.Interface {
		return func(v any) bool {
			if v == nil {
				return false
			}
			return reflect.TypeOf(v).Implements(t)
		}
	}
	return func(v any) bool {
		if v == nil {
			return false
		}
		return reflect.TypeOf(v).AssignableTo(t)
	}
}

func shapeValidator(m map[string]Contract) Validator {
	subs := make(map[string]Validator, len(m))
	for k, c := range m {
		subs[k] = Compile(c)
	}
	return func(v any) bool {
		rv, ok := mappingValue(v)
		if !ok {
			return false
		}
		kt := rv.Type().Key()
		for k, sub := range subs {
			var field any
			if e := rv.MapIndex(reflect.ValueOf(k).Convert(kt)); e.IsValid() {
				field = e.Interface()
			}
			if !sub(field) {
				return false
			}
		}
		return true
	}
}

func arrayValidator(elem Validator) Validator {
	return func(v any) bool {
		if v == nil {
			return false
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return false
		}
		for i := 0; i < rv.Len(); i++ {
			if !elem(rv.Index(i).Interface()) {
				return false
			}
		}
		return true
	}
}

func hashValidator(key, val Validator) Validator {
	return func(v any) bool {
		if v == nil {
			return false
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Map {
			return false
		}
		it := rv.MapRange()
		for it.Next() {
			if !key(it.Key().Interface()) || !val(it.Value().Interface()) {
				return false
			}
		}
		return true
	}
}

// mappingValue returns the reflect value of v when v is a non-nil map keyed
// by a string kind.
func mappingValue(v any) (reflect.Value, bool) {
	if v == nil {
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.IsNil() || rv.Type().Key().Kind() != reflect.String {
		return reflect.Value{}, false
	}
	return rv, true
}

// isMapping reports whether v is mapping-shaped for option injection.
func isMapping(v any) bool {
	_, ok := mappingValue(v)
	return ok
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
