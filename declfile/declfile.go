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

// Package declfile loads contract declarations from YAML files.
//
//	contracts:
//	  add:
//	    args: [num, num]
//	    returns: num
//	  greet:
//	    owner: Greeter
//	    args:
//	      - string
//	      - kwargs: {polite: maybe(bool)}
//	      - maybe(func(string -> nil))
//	    returns: string
//
// Each argument and the return value is a contract expression (see
// ParseExpr) or a mapping: a mapping becomes a Shape of its values, and a
// mapping with the single key "kwargs" becomes Keywords.
package declfile

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"dirpx.dev/contracts"
	"dirpx.dev/contracts/code"
	"dirpx.dev/contracts/reason"
)

// File is a parsed declaration file.
type File struct {
	Path  string
	decls map[string]Decl
}

// Decl is one compiled declaration.
type Decl struct {
	Name  string
	Owner string
	Args  []contracts.Contract
	Ret   contracts.Contract
}

type rawFile struct {
	Contracts map[string]rawDecl `yaml:"contracts"`
}

type rawDecl struct {
	Owner   string      `yaml:"owner"`
	Args    []yaml.Node `yaml:"args"`
	Returns yaml.Node   `yaml:"returns"`
}

// Load reads and parses the file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, contracts.E(code.MalformedDeclaration, fmt.Sprintf("read %s: %v", path, err),
			contracts.WithReasonOption(reason.DeclFile),
			contracts.WithCauseOption(err))
	}
	f, err := Parse(data)
	if err != nil {
		return nil, err
	}
	f.Path = path
	return f, nil
}

// Parse compiles every declaration in data. Errors are
// MalformedDeclarationErrors naming the declaration at fault.
func Parse(data []byte) (*File, error) {
	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fileError("", err)
	}
	f := &File{decls: make(map[string]Decl, len(raw.Contracts))}
	for name, rd := range raw.Contracts {
		d, err := compile(name, rd)
		if err != nil {
			return nil, fileError(name, err)
		}
		f.decls[name] = d
	}
	return f, nil
}

// Names returns the declared names, sorted.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.decls))
	for n := range f.decls {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Decl returns the declaration called name.
func (f *File) Decl(name string) (Decl, bool) {
	d, ok := f.decls[name]
	return d, ok
}

// Spec builds the Spec of declaration name guarding target (nil for a
// template to Bind later). The declaration's name and owner are applied
// before opts.
func (f *File) Spec(name string, target contracts.Target, opts ...contracts.Option) (*contracts.Spec, error) {
	d, ok := f.decls[name]
	if !ok {
		return nil, contracts.E(code.MalformedDeclaration, fmt.Sprintf("no declaration named %q", name),
			contracts.WithReasonOption(reason.DeclFile))
	}
	all := append([]contracts.Option{contracts.WithName(d.Name), contracts.WithOwner(d.Owner)}, opts...)
	return contracts.New(d.Args, d.Ret, target, all...)
}

func compile(name string, rd rawDecl) (Decl, error) {
	d := Decl{Name: name, Owner: rd.Owner}
	if rd.Returns.Kind == 0 {
		return d, contracts.E(code.MalformedDeclaration, "missing returns",
			contracts.WithReasonOption(reason.DeclReturn))
	}
	for i := range rd.Args {
		c, err := node(&rd.Args[i])
		if err != nil {
			return d, fmt.Errorf("args[%d]: %w", i, err)
		}
		d.Args = append(d.Args, c)
	}
	ret, err := node(&rd.Returns)
	if err != nil {
		return d, fmt.Errorf("returns: %w", err)
	}
	d.Ret = ret
	if _, err := contracts.New(d.Args, d.Ret, nil); err != nil {
		return d, err
	}
	return d, nil
}

func node(n *yaml.Node) (contracts.Contract, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return ParseExpr(n.Value)
	case yaml.MappingNode:
		if len(n.Content) == 2 && n.Content[0].Value == "kwargs" {
			inner, err := shape(n.Content[1])
			if err != nil {
				return nil, err
			}
			return contracts.Keywords(inner), nil
		}
		return shape(n)
	default:
		return nil, fmt.Errorf("line %d: expected a contract expression or a mapping", n.Line)
	}
}

func shape(n *yaml.Node) (contracts.Shape, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping", n.Line)
	}
	s := make(contracts.Shape, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		c, err := node(n.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", n.Content[i].Value, err)
		}
		s[n.Content[i].Value] = c
	}
	return s, nil
}

func fileError(name string, err error) error {
	msg := err.Error()
	if name != "" {
		msg = name + ": " + msg
	}
	r := reason.DeclFile
	if ce := contracts.Ensure(err); ce.Code == code.MalformedDeclaration && ce.Reason != "" {
		r = ce.Reason
	}
	return contracts.E(code.MalformedDeclaration, msg,
		contracts.WithReasonOption(r),
		contracts.WithCauseOption(err))
}
