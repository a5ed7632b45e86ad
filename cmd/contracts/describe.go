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

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"dirpx.dev/contracts/declfile"
)

func newDescribeCmd(e *env) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "describe [name...]",
		Short: "Print the contracts declared in a file",
		RunE: func(cmd *cobra.Command, names []string) error {
			f, err := declfile.Load(file)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				names = f.Names()
			}
			e.log.V(1).Info("describing", "file", f.Path, "count", len(names))
			for _, name := range names {
				d, ok := f.Decl(name)
				if !ok {
					return fmt.Errorf("%s: no declaration named %q", file, name)
				}
				s, err := f.Spec(name, nil)
				if err != nil {
					return err
				}
				owner := ""
				if d.Owner != "" {
					owner = color.CyanString(d.Owner) + "::"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", owner, s.Functype())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "declaration file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
