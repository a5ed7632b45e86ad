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
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"dirpx.dev/contracts"
	"dirpx.dev/contracts/builtin"
)

// named are the contracts an identifier alone can stand for.
var named = map[string]contracts.Contract{
	"any":      contracts.Any,
	"nil":      contracts.Nil,
	"callable": contracts.Callable,
	"int":      builtin.Int,
	"num":      builtin.Num,
	"pos":      builtin.Pos,
	"neg":      builtin.Neg,
	"nat":      builtin.Nat,
	"natpos":   builtin.NatPos,
	"bool":     builtin.Bool,
	"string":   builtin.Str,
	"str":      builtin.Str,
}

// ParseExpr parses one contract expression:
//
//	int | num | string | bool | nil | any | callable | pos | neg | nat | natpos
//	maybe(x) | not(x) | splat(x) | array_of(x) | hash_of(k, v)
//	or(a, b, ...) | and(a, b, ...)
//	eq(lit) | among(lit, ...)          lit: number, "string", true, false
//	len(lo) | len(lo, hi)
//	func(a, b -> r) | func(-> r)
func ParseExpr(s string) (contracts.Contract, error) {
	p := &parser{lex: lexer{src: s}}
	p.advance()
	c, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.errorf("unexpected %s after expression", p.tok)
	}
	return c, nil
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokIdent
	tokNumber
	tokString
	tokLParen
	tokRParen
	tokComma
	tokArrow
	tokInvalid
)

type token struct {
	kind tokKind
	text string
	pos  int
}

func (t token) String() string {
	if t.kind == tokEOF {
		return "end of expression"
	}
	return strconv.Quote(t.text)
}

type lexer struct {
	src string
	pos int
}

func (l *lexer) next() token {
	for l.pos < len(l.src) && l.src[l.pos] == ' ' {
		l.pos++
	}
	start := l.pos
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, pos: start}
	}
	c := rune(l.src[l.pos])
	switch {
	case c == '(':
		l.pos++
		return token{tokLParen, "(", start}
	case c == ')':
		l.pos++
		return token{tokRParen, ")", start}
	case c == ',':
		l.pos++
		return token{tokComma, ",", start}
	case c == '-' && strings.HasPrefix(l.src[l.pos:], "->"):
		l.pos += 2
		return token{tokArrow, "->", start}
	case c == '"':
		end := l.pos + 1
		for end < len(l.src) && l.src[end] != '"' {
			if l.src[end] == '\\' {
				end++
			}
			end++
		}
		if end >= len(l.src) {
			l.pos = len(l.src)
			return token{tokInvalid, l.src[start:], start}
		}
		l.pos = end + 1
		return token{tokString, l.src[start:l.pos], start}
	case c == '-' || c == '.' || unicode.IsDigit(c):
		end := l.pos + 1
		for end < len(l.src) && (unicode.IsDigit(rune(l.src[end])) || strings.IndexByte(".eE+-", l.src[end]) >= 0) {
			end++
		}
		l.pos = end
		return token{tokNumber, l.src[start:end], start}
	case unicode.IsLetter(c) || c == '_':
		end := l.pos + 1
		for end < len(l.src) && (unicode.IsLetter(rune(l.src[end])) || unicode.IsDigit(rune(l.src[end])) || l.src[end] == '_') {
			end++
		}
		l.pos = end
		return token{tokIdent, l.src[start:end], start}
	default:
		l.pos++
		return token{tokInvalid, string(c), start}
	}
}

type parser struct {
	lex lexer
	tok token
}

func (p *parser) advance() { p.tok = p.lex.next() }

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%q at %d: %s", p.lex.src, p.tok.pos, fmt.Sprintf(format, args...))
}

func (p *parser) expect(k tokKind, what string) error {
	if p.tok.kind != k {
		return p.errorf("expected %s, got %s", what, p.tok)
	}
	p.advance()
	return nil
}

func (p *parser) expr() (contracts.Contract, error) {
	if p.tok.kind != tokIdent {
		return nil, p.errorf("expected contract name, got %s", p.tok)
	}
	name := strings.ToLower(p.tok.text)
	p.advance()
	if p.tok.kind != tokLParen {
		c, ok := named[name]
		if !ok {
			return nil, p.errorf("unknown contract %q", name)
		}
		return c, nil
	}
	p.advance()

	switch name {
	case "func":
		return p.funcBody()
	case "eq", "among":
		lits, err := p.literals()
		if err != nil {
			return nil, err
		}
		if name == "eq" {
			if len(lits) != 1 {
				return nil, p.errorf("eq takes one literal")
			}
			return builtin.Eq(lits[0]), nil
		}
		return builtin.Among(lits...), nil
	case "len":
		lits, err := p.literals()
		if err != nil {
			return nil, err
		}
		bounds := []int{0, -1}
		if len(lits) < 1 || len(lits) > 2 {
			return nil, p.errorf("len takes one or two bounds")
		}
		for i, l := range lits {
			f, ok := l.(float64)
			if !ok || f != float64(int(f)) {
				return nil, p.errorf("len bound %v is not an integer", l)
			}
			bounds[i] = int(f)
		}
		return builtin.Len(bounds[0], bounds[1]), nil
	}

	args, err := p.list()
	if err != nil {
		return nil, err
	}
	arity := func(n int) error {
		if len(args) != n {
			return p.errorf("%s takes %d argument(s), got %d", name, n, len(args))
		}
		return nil
	}
	switch name {
	case "maybe", "not", "splat", "array_of":
		if err := arity(1); err != nil {
			return nil, err
		}
		switch name {
		case "maybe":
			return contracts.Maybe{Elem: args[0]}, nil
		case "not":
			return contracts.Not{Elem: args[0]}, nil
		case "splat":
			return contracts.Splat{Elem: args[0]}, nil
		default:
			return contracts.ArrayOf{Elem: args[0]}, nil
		}
	case "hash_of":
		if err := arity(2); err != nil {
			return nil, err
		}
		return contracts.HashOf{Key: args[0], Val: args[1]}, nil
	case "or":
		return contracts.Or(args), nil
	case "and":
		return contracts.And(args), nil
	default:
		return nil, p.errorf("unknown contract %q", name)
	}
}

// list parses "a, b, c)" after the opening parenthesis.
func (p *parser) list() ([]contracts.Contract, error) {
	var out []contracts.Contract
	if p.tok.kind == tokRParen {
		p.advance()
		return out, nil
	}
	for {
		c, err := p.expr()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
		if p.tok.kind == tokComma {
			p.advance()
			continue
		}
		return out, p.expect(tokRParen, `")"`)
	}
}

// funcBody parses "a, b -> r)" after "func(".
func (p *parser) funcBody() (contracts.Contract, error) {
	var f contracts.Func
	for p.tok.kind != tokArrow {
		c, err := p.expr()
		if err != nil {
			return nil, err
		}
		f.Args = append(f.Args, c)
		if p.tok.kind == tokComma {
			p.advance()
			continue
		}
		if p.tok.kind != tokArrow {
			return nil, p.errorf(`expected "," or "->", got %s`, p.tok)
		}
	}
	p.advance()
	ret, err := p.expr()
	if err != nil {
		return nil, err
	}
	f.Ret = ret
	return f, p.expect(tokRParen, `")"`)
}

// literals parses "lit, lit)" after the opening parenthesis.
func (p *parser) literals() ([]any, error) {
	var out []any
	for {
		var v any
		switch p.tok.kind {
		case tokNumber:
			f, err := strconv.ParseFloat(p.tok.text, 64)
			if err != nil {
				return nil, p.errorf("bad number %s", p.tok)
			}
			v = f
		case tokString:
			s, err := strconv.Unquote(p.tok.text)
			if err != nil {
				return nil, p.errorf("bad string %s", p.tok)
			}
			v = s
		case tokIdent:
			switch p.tok.text {
			case "true":
				v = true
			case "false":
				v = false
			default:
				return nil, p.errorf("expected literal, got %s", p.tok)
			}
		default:
			return nil, p.errorf("expected literal, got %s", p.tok)
		}
		out = append(out, v)
		p.advance()
		if p.tok.kind == tokComma {
			p.advance()
			continue
		}
		return out, p.expect(tokRParen, `")"`)
	}
}
