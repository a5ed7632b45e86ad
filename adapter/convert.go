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

package adapter

import (
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/protobuf/types/known/structpb"

	"dirpx.dev/contracts"
	"dirpx.dev/contracts/apis"
)

// Domain is the ErrorInfo domain attached to contract failures sent over
// gRPC.
const Domain = "contracts.dirpx.dev"

// ToView renders err for clients. Errors that provide their own view are
// used as-is; any other error is first converted with contracts.Ensure.
// A nil err yields the zero view.
func ToView(err error) apis.ErrorView {
	if err == nil {
		return apis.ErrorView{}
	}
	var vp apis.ViewProvider
	if errors.As(err, &vp) {
		return vp.ErrorView()
	}
	return contracts.Ensure(err).ErrorView()
}

// ToDescriptor pairs err's code and reason with the statuses m resolves
// for them. The descriptor is meant for structured logs and traces.
func ToDescriptor(err error, m apis.Mapper) apis.ErrorDescriptor {
	if err == nil {
		return apis.ErrorDescriptor{}
	}
	e := contracts.Ensure(err)
	st := m.Status(e.Code, e.Reason)
	return apis.ErrorDescriptor{
		Code:       string(e.Code),
		Reason:     string(e.Reason),
		HTTPStatus: st.HTTP,
		GRPCCode:   int(st.GRPC),
		Message:    e.Message,
	}
}

// ToStruct converts a view into a protobuf Struct, the wire shape shared
// by the HTTP writer and gRPC details.
func ToStruct(v apis.ErrorView) (*structpb.Struct, error) {
	m := map[string]any{"code": v.Code}
	if v.Reason != "" {
		m["reason"] = v.Reason
	}
	if v.Message != "" {
		m["message"] = v.Message
	}
	if len(v.Details) > 0 {
		ds := make([]any, 0, len(v.Details))
		for _, d := range v.Details {
			dm := map[string]any{}
			if d.Type != "" {
				dm["type"] = d.Type
			}
			if d.Field != "" {
				dm["field"] = d.Field
			}
			if d.Reason != "" {
				dm["reason"] = d.Reason
			}
			if len(d.Info) > 0 {
				info := make(map[string]any, len(d.Info))
				for k, s := range d.Info {
					info[k] = s
				}
				dm["info"] = info
			}
			ds = append(ds, dm)
		}
		m["details"] = ds
	}
	return structpb.NewStruct(m)
}

// ToErrorInfo builds the google.rpc.ErrorInfo for a view: the code is the
// reason field, the location goes into metadata.
func ToErrorInfo(v apis.ErrorView) *errdetails.ErrorInfo {
	info := &errdetails.ErrorInfo{
		Reason:   v.Code,
		Domain:   Domain,
		Metadata: map[string]string{},
	}
	if v.Reason != "" {
		info.Metadata["reason"] = v.Reason
	}
	for _, d := range v.Details {
		if m := d.Info["method"]; m != "" {
			info.Metadata["method"] = m
			break
		}
	}
	return info
}

// ToBadRequest lists every detail of a view as a field violation. It
// returns nil when there is nothing to report.
func ToBadRequest(v apis.ErrorView) *errdetails.BadRequest {
	if len(v.Details) == 0 {
		return nil
	}
	br := &errdetails.BadRequest{}
	for _, d := range v.Details {
		desc := d.Reason
		if a := d.Info["actual"]; a != "" {
			desc += ", got " + a
		}
		br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
			Field:       d.Field,
			Description: desc,
		})
	}
	return br
}
