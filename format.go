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

package contracts

import (
	"fmt"
	"strings"
)

// Format renders rec the way the default failure handler reports it:
//
//	Contract violation for argument 2 of 2:
//	        Expected: int,
//	        Actual: "x"
//	        Value guarded in: Calc::add
//	        With Contract: int, int => int
func Format(rec *FailureRecord) string {
	var b strings.Builder
	if rec.Return {
		b.WriteString("Contract violation for return value:\n")
	} else {
		fmt.Fprintf(&b, "Contract violation for argument %d of %d:\n", rec.Position, rec.Total)
	}
	fmt.Fprintf(&b, "        Expected: %s,\n", describe(rec.Contract))
	fmt.Fprintf(&b, "        Actual: %s\n", inspect(rec.Value))
	guarded := rec.Guarded()
	if guarded == "" {
		guarded = "<anonymous>"
	}
	fmt.Fprintf(&b, "        Value guarded in: %s\n", guarded)
	if rec.Spec != nil {
		fmt.Fprintf(&b, "        With Contract: %s", rec.Spec.String())
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// inspect renders a value for the Actual line: strings quoted, nil spelled
// out, everything else in its default format.
func inspect(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case string:
		return fmt.Sprintf("%q", v)
	case *Spec:
		return "#<Spec " + v.String() + ">"
	case fmt.Stringer:
		return v.String()
	}
	if IsCallable(v) {
		return fmt.Sprintf("#<%T>", v)
	}
	return fmt.Sprintf("%v", v)
}
