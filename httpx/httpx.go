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

package httpx

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-logr/logr"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"dirpx.dev/contracts"
	"dirpx.dev/contracts/adapter"
	"dirpx.dev/contracts/apis"
	"dirpx.dev/contracts/code"
	"dirpx.dev/contracts/mapper"
	"dirpx.dev/contracts/reason"
)

var marshal = protojson.MarshalOptions{EmitUnpopulated: false}

// Writer renders errors as JSON error views with the HTTP status resolved
// by Mapper (mapper.Default when nil).
type Writer struct {
	Mapper apis.Mapper
	Log    logr.Logger
}

// Write serializes err's view and writes it with the mapped status. Any
// error is accepted; non-contract errors are reported as internal. Nothing
// is redacted.
func (w Writer) Write(rw http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	m := w.Mapper
	if m == nil {
		m = mapper.Default()
	}
	e := contracts.Ensure(err)
	st := m.Status(e.Code, e.Reason)
	w.Log.V(1).Info("contract failure", "code", string(e.Code), "reason", string(e.Reason), "http", st.HTTP)

	body, merr := viewJSON(e.ErrorView())
	if merr != nil {
		w.Log.Error(merr, "encode error view")
		http.Error(rw, e.Message, st.HTTP)
		return
	}
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(st.HTTP)
	_, _ = rw.Write(body)
}

func viewJSON(v apis.ErrorView) ([]byte, error) {
	s, err := adapter.ToStruct(v)
	if err != nil {
		return nil, err
	}
	return marshal.Marshal(s)
}

// DecodeFunc extracts the call's arguments from a request.
type DecodeFunc func(r *http.Request) ([]any, error)

// HandlerFunc is the guarded operation behind an endpoint.
type HandlerFunc func(ctx context.Context, args []any) (any, error)

// DecodeJSONArgs reads the body as a JSON array, one element per argument.
// Numbers decode as float64, objects as map[string]any.
func DecodeJSONArgs(r *http.Request) ([]any, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	var lv structpb.ListValue
	if err := protojson.Unmarshal(body, &lv); err != nil {
		return nil, err
	}
	return lv.AsSlice(), nil
}

// Guard serves handler behind spec: arguments come from decode
// (DecodeJSONArgs when nil), are checked against the Spec's argument
// contracts, and the result is checked and written as JSON. Contract
// failures and handler errors go through w. A nil result, including the
// one of a call aborted by the failure policy, answers 204 No Content.
func Guard(spec *contracts.Spec, decode DecodeFunc, handler HandlerFunc, w Writer) http.Handler {
	if decode == nil {
		decode = DecodeJSONArgs
	}
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		args, err := decode(r)
		if err != nil {
			w.Write(rw, contracts.E(code.ParamContract, fmt.Sprintf("cannot decode arguments: %v", err),
				contracts.WithReasonOption(reason.Decode),
				contracts.WithCauseOption(err)))
			return
		}
		bound := spec.Bind(func(_ any, args []any) (any, error) {
			return handler(r.Context(), args)
		})
		res, err := bound.Call(nil, args, nil)
		if err != nil {
			w.Write(rw, err)
			return
		}
		if res == nil {
			rw.WriteHeader(http.StatusNoContent)
			return
		}
		v, err := structpb.NewValue(res)
		if err != nil {
			w.Write(rw, contracts.Ensure(fmt.Errorf("encode result: %w", err)))
			return
		}
		body, err := marshal.Marshal(v)
		if err != nil {
			w.Write(rw, contracts.Ensure(fmt.Errorf("encode result: %w", err)))
			return
		}
		rw.Header().Set("Content-Type", "application/json")
		_, _ = rw.Write(body)
	})
}
