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

package declfile

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"dirpx.dev/contracts"
	"dirpx.dev/contracts/code"
	"dirpx.dev/contracts/reason"
)

func TestParseExpr(t *testing.T) {
	tests := map[string]string{
		"int":                     "Int",
		" Num ":                   "Num",
		"maybe(string)":           "Maybe[Str]",
		"splat(nat)":              "Splat[Nat]",
		"array_of(or(int, nil))":  "ArrayOf[Or[Int, nil]]",
		"hash_of(string, any)":    "HashOf[Str, Any]",
		"and(num, not(neg))":      "And[Num, Not[Neg]]",
		"func(int, int -> bool)":  "Func[Int, Int => Bool]",
		"func(-> callable)":       "Func[=> Callable]",
		`eq("x")`:                 `Eq["x"]`,
		`among(1, -2.5, true)`:    "Among[1, -2.5, true]",
		"len(1)":                  "Len[1..]",
		"len(0, 3)":               "Len[0..3]",
		"maybe(func(string->nil))": "Maybe[Func[Str => nil]]",
	}
	for in, want := range tests {
		c, err := ParseExpr(in)
		require.NoError(t, err, in)
		require.Equal(t, want, c.String(), in)
	}
}

func TestParseExpr_Errors(t *testing.T) {
	for _, in := range []string{
		"",
		"integer",
		"maybe(int",
		"maybe(int, num)",
		"hash_of(int)",
		"int int",
		"func(int)",
		"eq(1, 2)",
		"eq(x)",
		`eq("open)`,
		"len(1.5)",
		"len()",
		"splat()",
		"frob(int)",
		"int?",
	} {
		_, err := ParseExpr(in)
		require.Error(t, err, in)
	}
}

func TestParseExpr_IntegerLiterals(t *testing.T) {
	var args []any
	require.NoError(t, yaml.Unmarshal([]byte("[3, 3.0, 4, b]"), &args))
	require.IsType(t, 3, args[0])

	eq, err := ParseExpr("eq(3)")
	require.NoError(t, err)
	require.True(t, contracts.Valid(args[0], eq))
	require.True(t, contracts.Valid(args[1], eq))
	require.False(t, contracts.Valid(args[2], eq))

	among, err := ParseExpr(`among("a", "b", 3)`)
	require.NoError(t, err)
	require.True(t, contracts.Valid(args[0], among))
	require.True(t, contracts.Valid(args[3], among))
	require.False(t, contracts.Valid(args[2], among))
}

func TestParse_ScalarReturns(t *testing.T) {
	f, err := Parse([]byte("contracts:\n  add:\n    args: [num, num]\n    returns: num\n"))
	require.NoError(t, err)
	d, ok := f.Decl("add")
	require.True(t, ok)
	require.Equal(t, "Num", d.Ret.String())

	f, err = Parse([]byte("contracts:\n  f:\n    args: [int]\n    returns: {n: int}\n"))
	require.NoError(t, err)
	d, _ = f.Decl("f")
	require.Equal(t, "{n: Int}", d.Ret.String())
}

func TestLoad(t *testing.T) {
	f, err := Load("testdata/calc.yaml")
	require.NoError(t, err)
	require.Equal(t, "testdata/calc.yaml", f.Path)
	require.Equal(t, []string{"add", "greet", "pick", "sum"}, f.Names())

	d, ok := f.Decl("greet")
	require.True(t, ok)
	require.Equal(t, "Greeter", d.Owner)
	got := make([]string, len(d.Args))
	for i, c := range d.Args {
		got[i] = c.String()
	}
	want := []string{"Str", "Keywords{polite: Maybe[Bool]}", "Maybe[Func[Str => nil]]"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("greet args mismatch (-want +got):\n%s", diff)
	}

	s, err := f.Spec("greet", nil)
	require.NoError(t, err)
	require.True(t, s.HasTrailingCallback())
	require.True(t, s.HasTrailingMapping())
	require.Equal(t, "greet :: Str, Keywords{polite: Maybe[Bool]}, Maybe[Func[Str => nil]] => Str", s.Functype())
}

func TestSpec_Enforces(t *testing.T) {
	f, err := Load("testdata/calc.yaml")
	require.NoError(t, err)

	add, err := f.Spec("add", contracts.Reflect(func(a, b float64) float64 { return a + b }),
		contracts.WithPolicy(contracts.NewPolicy(nil)))
	require.NoError(t, err)

	res, err := add.Invoke(2.0, 3)
	require.NoError(t, err)
	require.Equal(t, 5.0, res)

	_, err = add.Invoke(2.0, "3")
	require.ErrorIs(t, err, contracts.ErrParamContract)
	rec, ok := contracts.RecordOf(err)
	require.True(t, ok)
	require.Equal(t, 2, rec.Position)
	require.Equal(t, "Calc::add", rec.Guarded())

	pick, err := f.Spec("pick", func(_ any, args []any) (any, error) { return len(args), nil },
		contracts.WithPolicy(contracts.NewPolicy(nil)))
	require.NoError(t, err)
	_, err = pick.Invoke("a", map[string]any{"name": "n", "tags": []any{"x"}})
	require.ErrorIs(t, err, contracts.ErrReturnContract)
	_, err = pick.Invoke("c", map[string]any{"name": "n", "tags": []any{}})
	require.ErrorIs(t, err, contracts.ErrParamContract)

	_, err = f.Spec("missing", nil)
	require.ErrorIs(t, err, contracts.ErrMalformedDeclaration)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want reason.Reason
	}{
		{"bad yaml", "contracts: [", reason.DeclFile},
		{"missing returns", "contracts:\n  f:\n    args: [int]\n", reason.DeclReturn},
		{"bad expr", "contracts:\n  f:\n    args: [integer]\n    returns: int\n", reason.DeclFile},
		{"two splats", "contracts:\n  f:\n    args: [splat(int), splat(int)]\n    returns: int\n", reason.DeclSplat},
		{"sequence arg", "contracts:\n  f:\n    args: [[int]]\n    returns: int\n", reason.DeclFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			e := contracts.Ensure(err)
			require.Equal(t, code.MalformedDeclaration, e.Code)
			require.Equal(t, tt.want, e.Reason)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("testdata/nope.yaml")
	require.ErrorIs(t, err, contracts.ErrMalformedDeclaration)
}
