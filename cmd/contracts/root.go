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
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/spf13/cobra"
)

// env carries what every subcommand needs once the config is loaded.
type env struct {
	cfg *Config
	log logr.Logger
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		e          = &env{log: logr.Discard()}
	)

	root := &cobra.Command{
		Use:   "contracts",
		Short: "Check values against contract declarations",
		Long: `contracts loads YAML declaration files and checks argument lists and
results against the declared contracts, reporting violations the same way
a guarded call would.

Configuration is read from .contracts.yaml in the working directory (or
--config) and from CONTRACTS_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath, cmd.Flags())
			if err != nil {
				return err
			}
			if !cfg.Color {
				color.NoColor = true
			}
			e.cfg = cfg
			e.log = newLogger(cmd.ErrOrStderr(), cfg.Verbosity)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default .contracts.yaml)")
	root.PersistentFlags().String("mode", ModeStrict, "failure mode: strict or soft")
	root.PersistentFlags().IntP("verbosity", "v", 0, "log verbosity")
	root.PersistentFlags().Bool("color", true, "colorize output")

	root.AddCommand(newCheckCmd(e))
	root.AddCommand(newDescribeCmd(e))
	root.AddCommand(newCodesCmd(e))
	return root
}

// Execute runs the command line and prints a failing command's error.
func Execute(args []string) error {
	root := newRootCmd()
	root.SetArgs(args)
	err := root.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("error:"), err)
	}
	return err
}

func newLogger(w io.Writer, verbosity int) logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(w, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(w, args)
	}, funcr.Options{Verbosity: verbosity})
}
