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
	"reflect"

	"dirpx.dev/contracts/code"
	"dirpx.dev/contracts/reason"
)

// Target is the uniform calling convention of a guarded callable. recv is
// the receiver for methods (nil for plain functions); args are the
// arguments as the caller supplied them, with the callback, when given, as
// the last element.
type Target func(recv any, args []any) (any, error)

var errorType = reflect.TypeFor[error]()

// Reflect adapts an arbitrary Go func to a Target.
//
// Arguments are converted to the parameter types: nil becomes the zero
// value of nilable kinds, numeric values are converted between numeric
// kinds, and a *Spec or Target passed for a func parameter is turned into a
// func of that type. Variadic funcs take the trailing arguments as the
// variadic part.
//
// Results: a trailing error result is returned as the error; zero remaining
// results yield nil, one yields that value, more yield a []any.
//
// fn may also be a Target or a *Spec, which are returned as Targets
// unchanged. Reflect panics when fn is not a func.
func Reflect(fn any) Target {
	switch f := fn.(type) {
	case Target:
		return f
	case func(recv any, args []any) (any, error):
		return f
	case *Spec:
		return f.AsTarget()
	}
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		panic(fmt.Sprintf("contracts: Reflect of non-func %T", fn))
	}
	return func(_ any, args []any) (any, error) {
		return callReflect(rv, args)
	}
}

// ReflectMethod adapts a method expression such as (*T).M: the receiver is
// passed as the first argument.
func ReflectMethod(fn any) Target {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func || rv.IsNil() || rv.Type().NumIn() == 0 {
		panic(fmt.Sprintf("contracts: ReflectMethod of %T", fn))
	}
	return func(recv any, args []any) (any, error) {
		full := make([]any, 0, len(args)+1)
		full = append(full, recv)
		full = append(full, args...)
		return callReflect(rv, full)
	}
}

// AsTarget returns s as a Target, so a Spec can stand wherever a Target is
// expected. The Target never passes a callback.
func (s *Spec) AsTarget() Target {
	return func(recv any, args []any) (any, error) { return s.Call(recv, args, nil) }
}

// MakeFunc returns a func of type t that calls through s. When t's last
// result is error a contract failure surfaces there; otherwise the func
// panics with the *Error. MakeFunc panics when t is not a func type.
func (s *Spec) MakeFunc(t reflect.Type) reflect.Value {
	if t.Kind() != reflect.Func {
		panic(E(code.MalformedDeclaration,
			fmt.Sprintf("cannot expose %s as %s", s.Functype(), t),
			WithReasonOption(reason.DeclTarget)))
	}
	return reflect.MakeFunc(t, func(in []reflect.Value) []reflect.Value {
		args := make([]any, 0, len(in))
		for i, v := range in {
			if t.IsVariadic() && i == len(in)-1 {
				for j := 0; j < v.Len(); j++ {
					args = append(args, v.Index(j).Interface())
				}
				continue
			}
			args = append(args, v.Interface())
		}
		res, err := s.Call(nil, args, nil)
		return packOut(t, res, err)
	})
}

func packOut(t reflect.Type, res any, err error) []reflect.Value {
	n := t.NumOut()
	withErr := n > 0 && t.Out(n-1) == errorType
	k := n
	if withErr {
		k--
	}
	out := make([]reflect.Value, n)
	if err == nil && k > 0 {
		vals := []any{res}
		if k > 1 {
			if many, ok := res.([]any); ok && len(many) == k {
				vals = many
			}
		}
		for i := 0; i < k && i < len(vals); i++ {
			v, cerr := convert(vals[i], t.Out(i))
			if cerr != nil {
				err = E(code.Internal, fmt.Sprintf("result %d: %v", i+1, cerr), WithCauseOption(cerr))
				break
			}
			out[i] = v
		}
	}
	if err != nil && !withErr {
		panic(err)
	}
	for i := 0; i < k; i++ {
		if err != nil || !out[i].IsValid() {
			out[i] = reflect.Zero(t.Out(i))
		}
	}
	if withErr {
		if err != nil {
			out[k] = reflect.ValueOf(&err).Elem()
		} else {
			out[k] = reflect.Zero(errorType)
		}
	}
	return out
}

func callReflect(fn reflect.Value, args []any) (any, error) {
	ft := fn.Type()
	n := ft.NumIn()
	if ft.IsVariadic() {
		if len(args) < n-1 {
			return nil, callArityError(ft, len(args))
		}
	} else if len(args) != n {
		return nil, callArityError(ft, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		pt := paramType(ft, i)
		v, err := convert(a, pt)
		if err != nil {
			return nil, E(code.Internal, fmt.Sprintf("argument %d: %v", i+1, err), WithCauseOption(err))
		}
		in[i] = v
	}

	out := fn.Call(in)
	if k := len(out); k > 0 && ft.Out(k-1) == errorType {
		if e := out[k-1]; !e.IsNil() {
			return nil, e.Interface().(error)
		}
		out = out[:k-1]
	}
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0].Interface(), nil
	default:
		vals := make([]any, len(out))
		for i, o := range out {
			vals[i] = o.Interface()
		}
		return vals, nil
	}
}

func paramType(ft reflect.Type, i int) reflect.Type {
	if ft.IsVariadic() && i >= ft.NumIn()-1 {
		return ft.In(ft.NumIn() - 1).Elem()
	}
	return ft.In(i)
}

// convert turns a into a value of type t.
func convert(a any, t reflect.Type) (reflect.Value, error) {
	if a == nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("nil is not a %s", t)
	}
	if t.Kind() == reflect.Func {
		switch f := a.(type) {
		case *Spec:
			return f.MakeFunc(t), nil
		case Target:
			return Unconstrained(f).MakeFunc(t), nil
		}
	}
	v := reflect.ValueOf(a)
	if v.Type().AssignableTo(t) {
		return v, nil
	}
	if isNumeric(v.Kind()) && isNumeric(t.Kind()) {
		return v.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("%T is not a %s", a, t)
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func callArityError(ft reflect.Type, given int) error {
	return E(code.Internal, fmt.Sprintf("%s called with %d arguments", ft, given))
}

// Unconstrained wraps t in a Spec accepting any number of arguments of any
// kind and any result.
func Unconstrained(t Target) *Spec {
	return unconstrained.Bind(t)
}

var unconstrained = &Spec{
	args:         []Contract{Splat{Elem: Any}},
	ret:          Any,
	validators:   []Validator{Compile(Any)},
	retValidator: Compile(Any),
	templates:    []*Spec{nil},
	splat:        0,
	policy:       defaultPolicy,
}

// asTarget turns a callable value into a Target. v must satisfy IsCallable.
func asTarget(v any) Target {
	return Reflect(v)
}
