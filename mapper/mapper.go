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

package mapper

import (
	"fmt"
	"strings"

	"google.golang.org/grpc/codes"

	"dirpx.dev/contracts/apis"
	"dirpx.dev/contracts/code"
	"dirpx.dev/contracts/mapper/internal/reasontrie"
	"dirpx.dev/contracts/reason"
)

// New builds an immutable Mapper from the library defaults adjusted by
// opts. It fails when a rule names an invalid code, an invalid reason
// prefix, or an HTTP status outside 100..599.
func New(opts ...Option) (apis.Mapper, error) {
	cfg := newConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	h, err := freeze(cfg.http, checkHTTP)
	if err != nil {
		return nil, fmt.Errorf("mapper: http: %w", err)
	}
	g, err := freeze(cfg.grpc, checkGRPC)
	if err != nil {
		return nil, fmt.Errorf("mapper: grpc: %w", err)
	}
	return &mapper{http: h, grpc: g}, nil
}

// MustNew is New for package-level mappers; it panics on error.
func MustNew(opts ...Option) apis.Mapper {
	m, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return m
}

var defaultMapper = MustNew()

// Default returns the mapper built from the library defaults alone.
func Default() apis.Mapper { return defaultMapper }

type mapper struct {
	http *table[int]
	grpc *table[codes.Code]
}

var _ apis.Mapper = (*mapper)(nil)

// table is the frozen form of rules. Resolution order: override, longest
// matching reason prefix, default, fallback.
type table[T any] struct {
	overrides map[code.Code]T
	tries     map[code.Code]*reasontrie.Trie[T]
	defaults  map[code.Code]T
	fallback  T
}

type source string

const (
	fromOverride source = "override"
	fromPrefix   source = "prefix"
	fromDefault  source = "default"
	fromFallback source = "fallback"
)

func (t *table[T]) resolve(c code.Code, r reason.Reason) (T, source, string) {
	if v, ok := t.overrides[c]; ok {
		return v, fromOverride, ""
	}
	if tr, ok := t.tries[c]; ok {
		if v, p, ok := tr.Lookup(r); ok {
			return v, fromPrefix, p
		}
	}
	if v, ok := t.defaults[c]; ok {
		return v, fromDefault, ""
	}
	return t.fallback, fromFallback, ""
}

func freeze[T any](r *rules[T], check func(T) error) (*table[T], error) {
	t := &table[T]{
		overrides: make(map[code.Code]T, len(r.overrides)),
		tries:     make(map[code.Code]*reasontrie.Trie[T], len(r.prefixes)),
		defaults:  make(map[code.Code]T, len(r.defaults)),
		fallback:  r.fallback,
	}
	if err := check(r.fallback); err != nil {
		return nil, fmt.Errorf("fallback: %w", err)
	}
	for _, m := range []struct {
		src, dst map[code.Code]T
	}{{r.defaults, t.defaults}, {r.overrides, t.overrides}} {
		for c, v := range m.src {
			if err := code.Validate(c); err != nil {
				return nil, fmt.Errorf("code %q: %w", c, err)
			}
			if err := check(v); err != nil {
				return nil, fmt.Errorf("code %q: %w", c, err)
			}
			m.dst[c] = v
		}
	}
	for c, prs := range r.prefixes {
		if err := code.Validate(c); err != nil {
			return nil, fmt.Errorf("code %q: %w", c, err)
		}
		tr := reasontrie.New[T]()
		for _, pr := range prs {
			p := reason.Normalize(pr.prefix)
			if err := tr.Insert(p, pr.val); err != nil {
				return nil, fmt.Errorf("reason prefix %q for code %q: %w", pr.prefix, c, err)
			}
			if err := check(pr.val); err != nil {
				return nil, fmt.Errorf("reason prefix %q for code %q: %w", pr.prefix, c, err)
			}
		}
		t.tries[c] = tr
	}
	return t, nil
}

func checkHTTP(status int) error {
	if status < 100 || status > 599 {
		return fmt.Errorf("status %d out of range", status)
	}
	return nil
}

func checkGRPC(gc codes.Code) error {
	if gc > codes.Unauthenticated {
		return fmt.Errorf("unknown grpc code %d", uint32(gc))
	}
	return nil
}

func (m *mapper) HTTPStatus(c code.Code, r reason.Reason) int {
	v, _, _ := m.http.resolve(c, r)
	return v
}

func (m *mapper) GRPCStatus(c code.Code, r reason.Reason) codes.Code {
	v, _, _ := m.grpc.resolve(c, r)
	return v
}

func (m *mapper) Status(c code.Code, r reason.Reason) apis.Status {
	return apis.Status{HTTP: m.HTTPStatus(c, r), GRPC: m.GRPCStatus(c, r)}
}

// Explain renders one line per transport:
//
//	code="param_contract" reason="args.splat"
//	http: source=prefix pattern="args.splat" -> 422
//	grpc: source=default -> InvalidArgument(3)
func (m *mapper) Explain(c code.Code, r reason.Reason) string {
	var b strings.Builder
	fmt.Fprintf(&b, "code=%q reason=%q\n", c, r)

	hv, hs, hp := m.http.resolve(c, r)
	b.WriteString("http: ")
	writeSource(&b, hs, hp)
	fmt.Fprintf(&b, " -> %d\n", hv)

	gv, gs, gp := m.grpc.resolve(c, r)
	b.WriteString("grpc: ")
	writeSource(&b, gs, gp)
	fmt.Fprintf(&b, " -> %s(%d)", gv, uint32(gv))
	return b.String()
}

func writeSource(b *strings.Builder, s source, pattern string) {
	b.WriteString("source=")
	b.WriteString(string(s))
	if pattern != "" {
		fmt.Fprintf(b, " pattern=%q", pattern)
	}
}
