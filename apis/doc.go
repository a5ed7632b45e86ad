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

// Package apis holds the small interfaces and view types shared by the
// contract engine and its transports.
//
// The engine's *Error implements CodedError, ReasonedError, DetailedError
// and ViewProvider; receivers implement InvariantChecker; the mapper
// implements Mapper. Adapters (gRPC, HTTP, the CLI) depend on these
// interfaces rather than on the engine's concrete types wherever they can.
//
// The package carries no logic and imports only code, reason and the gRPC
// codes package.
package apis
