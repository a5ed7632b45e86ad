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
	"net/http"

	"google.golang.org/grpc/codes"

	"dirpx.dev/contracts/apis"
	"dirpx.dev/contracts/code"
)

type prefixRule[T any] struct {
	prefix string
	val    T
}

// rules collects one transport's adjustments before New freezes them.
type rules[T any] struct {
	defaults  map[code.Code]T
	overrides map[code.Code]T
	prefixes  map[code.Code][]prefixRule[T]
	fallback  T
}

func newRules[T any](defaults map[code.Code]T, fallback T) *rules[T] {
	r := &rules[T]{
		defaults:  make(map[code.Code]T, len(defaults)),
		overrides: make(map[code.Code]T),
		prefixes:  make(map[code.Code][]prefixRule[T]),
		fallback:  fallback,
	}
	for k, v := range defaults {
		r.defaults[k] = v
	}
	return r
}

type config struct {
	http *rules[int]
	grpc *rules[codes.Code]
}

func newConfig() *config {
	return &config{
		http: newRules(defaultHTTP, http.StatusInternalServerError),
		grpc: newRules(defaultGRPC, codes.Internal),
	}
}

// Option adjusts the rules a Mapper is built from.
type Option func(*config)

// WithHTTPDefault replaces the library default HTTP status for c.
func WithHTTPDefault(c code.Code, status int) Option {
	return func(cfg *config) { cfg.http.defaults[c] = status }
}

// WithGRPCDefault replaces the library default gRPC code for c.
func WithGRPCDefault(c code.Code, gc codes.Code) Option {
	return func(cfg *config) { cfg.grpc.defaults[c] = gc }
}

// WithHTTPOverride forces status for c regardless of the reason.
func WithHTTPOverride(c code.Code, status int) Option {
	return func(cfg *config) { cfg.http.overrides[c] = status }
}

// WithGRPCOverride forces gc for c regardless of the reason.
func WithGRPCOverride(c code.Code, gc codes.Code) Option {
	return func(cfg *config) { cfg.grpc.overrides[c] = gc }
}

// WithHTTPPrefix maps c to status when the reason lies under prefix.
//
//	WithHTTPPrefix(code.ParamContract, "args.splat", http.StatusUnprocessableEntity)
func WithHTTPPrefix(c code.Code, prefix string, status int) Option {
	return func(cfg *config) {
		cfg.http.prefixes[c] = append(cfg.http.prefixes[c], prefixRule[int]{prefix, status})
	}
}

// WithGRPCPrefix maps c to gc when the reason lies under prefix.
func WithGRPCPrefix(c code.Code, prefix string, gc codes.Code) Option {
	return func(cfg *config) {
		cfg.grpc.prefixes[c] = append(cfg.grpc.prefixes[c], prefixRule[codes.Code]{prefix, gc})
	}
}

// WithFallback sets the statuses used for codes with no rule at all.
func WithFallback(status int, gc codes.Code) Option {
	return func(cfg *config) {
		cfg.http.fallback = status
		cfg.grpc.fallback = gc
	}
}

// WithDescriptors turns descriptors, typically loaded from configuration,
// into rules: a descriptor with a reason becomes a prefix rule, one without
// replaces the code's default. Zero statuses are skipped.
func WithDescriptors(ds ...apis.ErrorDescriptor) Option {
	return func(cfg *config) {
		for _, d := range ds {
			c := code.Code(code.Normalize(d.Code))
			if d.HTTPStatus != 0 {
				if d.Reason != "" {
					cfg.http.prefixes[c] = append(cfg.http.prefixes[c], prefixRule[int]{d.Reason, d.HTTPStatus})
				} else {
					cfg.http.defaults[c] = d.HTTPStatus
				}
			}
			if d.GRPCCode != 0 {
				gc := codes.Code(d.GRPCCode)
				if d.Reason != "" {
					cfg.grpc.prefixes[c] = append(cfg.grpc.prefixes[c], prefixRule[codes.Code]{d.Reason, gc})
				} else {
					cfg.grpc.defaults[c] = gc
				}
			}
		}
	}
}
