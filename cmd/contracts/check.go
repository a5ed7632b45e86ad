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
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"dirpx.dev/contracts"
	"dirpx.dev/contracts/declfile"
)

func newCheckCmd(e *env) *cobra.Command {
	var file, name, argsText, resultText string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check an argument list and a result against a declaration",
		Long: `Check runs a guarded call of the named declaration. The call's target
returns the --result value unchanged, so both the arguments and the result
are checked.

Values are YAML (JSON is accepted):
  contracts check --file calc.yaml --name add --args '[2, 3]' --result 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := declfile.Load(file)
			if err != nil {
				return err
			}
			args, err := parseArgs(argsText)
			if err != nil {
				return err
			}
			var result any
			if cmd.Flags().Changed("result") {
				if result, err = parseValue(resultText); err != nil {
					return fmt.Errorf("parsing --result: %w", err)
				}
			}

			target := func(any, []any) (any, error) { return result, nil }
			s, err := f.Spec(name, target,
				contracts.WithPolicy(contracts.NewPolicy(handlerFor(e))),
				contracts.WithLogger(e.log),
			)
			if err != nil {
				return err
			}

			e.log.V(1).Info("checking", "name", name, "contract", s.String(), "args", len(args))
			out, err := s.Call(nil, args, nil)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.GreenString("ok"), s.Functype())
			fmt.Fprintf(cmd.OutOrStdout(), "=> %s\n", render(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "declaration file")
	cmd.Flags().StringVarP(&name, "name", "n", "", "declaration name")
	cmd.Flags().StringVarP(&argsText, "args", "a", "[]", "argument list")
	cmd.Flags().StringVarP(&resultText, "result", "r", "", "value the call returns")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func handlerFor(e *env) contracts.Handler {
	if e.cfg != nil && e.cfg.Mode == ModeSoft {
		return contracts.LogHandler(e.log)
	}
	return contracts.DefaultHandler
}

func parseArgs(s string) ([]any, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var args []any
	if err := yaml.Unmarshal([]byte(s), &args); err != nil {
		return nil, fmt.Errorf("parsing --args: want a list: %w", err)
	}
	return args, nil
}

func parseValue(s string) (any, error) {
	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return nil, err
	}
	return v, nil
}

func render(v any) string {
	if v == nil {
		return "nil"
	}
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimSpace(string(b))
}
