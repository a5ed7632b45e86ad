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

package grpcx

import (
	"context"
	"errors"

	"github.com/go-logr/logr"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"dirpx.dev/contracts"
	"dirpx.dev/contracts/adapter"
	"dirpx.dev/contracts/apis"
	"dirpx.dev/contracts/mapper"
)

// UnaryServerInterceptor turns contract errors returned by the handler
// into gRPC statuses. The status code comes from m (mapper.Default when
// nil); the status carries three details:
//
//   - google.rpc.ErrorInfo with the failure code and location;
//   - google.rpc.BadRequest with one violation per offending value;
//   - a google.protobuf.Struct holding the full apis.ErrorView.
//
// Errors that are not contract errors are returned unchanged.
func UnaryServerInterceptor(m apis.Mapper, log logr.Logger) grpc.UnaryServerInterceptor {
	if m == nil {
		m = mapper.Default()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		var ce *contracts.Error
		if !errors.As(err, &ce) {
			return nil, err
		}
		st := m.Status(ce.Code, ce.Reason)
		log.V(1).Info("contract failure", "method", info.FullMethod, "code", string(ce.Code), "reason", string(ce.Reason), "grpc", st.GRPC.String())
		return nil, ToStatus(ce, st.GRPC).Err()
	}
}

// ToStatus builds the status for a contract error with gc as its code.
// Details that cannot be encoded are left out.
func ToStatus(e *contracts.Error, gc codes.Code) *status.Status {
	v := e.ErrorView()
	base := status.New(gc, e.Message)

	with, err := base.WithDetails(adapter.ToErrorInfo(v))
	if err != nil {
		return base
	}
	if br := adapter.ToBadRequest(v); br != nil {
		if s, err := with.WithDetails(br); err == nil {
			with = s
		}
	}
	if sv, err := adapter.ToStruct(v); err == nil {
		if s, err := with.WithDetails(sv); err == nil {
			with = s
		}
	}
	return with
}

// Guard validates requests against specs keyed by full method name
// ("/pkg.Service/Method") before the handler runs. Each Spec declares one
// argument, the request, and the response as its result. Methods without
// a Spec pass through.
//
// A failure policy that aborts the call yields codes.Aborted, since a gRPC
// handler cannot return an empty response. A nil response from the handler
// itself is passed on as is.
//
// Chain it inside UnaryServerInterceptor so its errors are translated:
//
//	grpc.ChainUnaryInterceptor(grpcx.UnaryServerInterceptor(m, log), grpcx.Guard(specs))
func Guard(specs map[string]*contracts.Spec) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		s, ok := specs[info.FullMethod]
		if !ok {
			return handler(ctx, req)
		}
		policy := s.Policy()
		aborted := false
		watch := contracts.NewPolicy(func(rec *contracts.FailureRecord) contracts.Outcome {
			o := policy.Handle(rec)
			aborted = aborted || o.IsAbort()
			return o
		})
		bound := s.Bind(func(_ any, args []any) (any, error) {
			return handler(ctx, args[0])
		}, contracts.WithPolicy(watch))
		resp, err := bound.Call(nil, []any{req}, nil)
		if err == nil && aborted {
			return nil, status.Errorf(codes.Aborted, "%s: call aborted by failure policy", info.FullMethod)
		}
		return resp, err
	}
}

// ExtractInfo returns the ErrorInfo detail of a status error.
func ExtractInfo(err error) (*errdetails.ErrorInfo, bool) {
	for _, d := range details(err) {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == adapter.Domain {
			return info, true
		}
	}
	return nil, false
}

// ExtractView rebuilds the apis.ErrorView carried by a status error.
func ExtractView(err error) (apis.ErrorView, bool) {
	for _, d := range details(err) {
		s, ok := d.(*structpb.Struct)
		if !ok {
			continue
		}
		f := s.GetFields()
		v := apis.ErrorView{
			Code:    f["code"].GetStringValue(),
			Reason:  f["reason"].GetStringValue(),
			Message: f["message"].GetStringValue(),
		}
		for _, dv := range f["details"].GetListValue().GetValues() {
			df := dv.GetStructValue().GetFields()
			d := apis.Detail{
				Type:   df["type"].GetStringValue(),
				Field:  df["field"].GetStringValue(),
				Reason: df["reason"].GetStringValue(),
			}
			if info := df["info"].GetStructValue().GetFields(); len(info) > 0 {
				d.Info = make(map[string]string, len(info))
				for k, iv := range info {
					d.Info[k] = iv.GetStringValue()
				}
			}
			v.Details = append(v.Details, d)
		}
		return v, v.Code != ""
	}
	return apis.ErrorView{}, false
}

func details(err error) []any {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return nil
	}
	return st.Details()
}
