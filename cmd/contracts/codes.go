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

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"dirpx.dev/contracts/code"
	"dirpx.dev/contracts/mapper"
	"dirpx.dev/contracts/reason"
)

func newCodesCmd(e *env) *cobra.Command {
	var r string

	cmd := &cobra.Command{
		Use:   "codes",
		Short: "List error codes and their HTTP and gRPC statuses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rs := reason.Empty
			if r != "" {
				var err error
				if rs, err = reason.Parse(r); err != nil {
					return err
				}
			}
			m := mapper.Default()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tHTTP\tGRPC")
			for _, c := range code.All() {
				st := m.Status(c, rs)
				fmt.Fprintf(w, "%s\t%d\t%s\n", c, st.HTTP, st.GRPC)
			}
			e.log.V(1).Info("listed codes", "reason", string(rs))
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&r, "reason", "", "reason to resolve statuses for")
	return cmd
}
