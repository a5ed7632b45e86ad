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

	"dirpx.dev/contracts/code"
)

var defaultHTTP = map[code.Code]int{
	code.MalformedDeclaration: http.StatusInternalServerError, // The server's own declaration is broken.
	code.ArityMismatch:        http.StatusBadRequest,
	code.ParamContract:        http.StatusBadRequest,
	code.PatternMatching:      http.StatusBadRequest,
	code.NoMatch:              http.StatusBadRequest,
	code.ReturnContract:       http.StatusInternalServerError, // The callable broke its promise; the caller did nothing wrong.
	code.InvariantViolation:   http.StatusInternalServerError,
	code.Internal:             http.StatusInternalServerError,
}

var defaultGRPC = map[code.Code]codes.Code{
	code.MalformedDeclaration: codes.Internal,
	code.ArityMismatch:        codes.InvalidArgument,
	code.ParamContract:        codes.InvalidArgument,
	code.PatternMatching:      codes.InvalidArgument,
	code.NoMatch:              codes.InvalidArgument,
	code.ReturnContract:       codes.Internal,
	code.InvariantViolation:   codes.FailedPrecondition, // Receiver state no longer satisfies its invariants.
	code.Internal:             codes.Internal,
}
