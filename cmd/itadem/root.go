// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command itadem demangles Itanium C++ ABI mangled symbol names.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	itadem "github.com/gormangle/itadem"
)

var (
	outputFile string
	output     io.Writer

	optNoANSI   bool
	optNoParams bool
	optSimple   bool
)

var rootCmd = &cobra.Command{
	Use:   "itadem [symbol ...]",
	Short: "Itanium C++ ABI symbol demangler",
	Long: `itadem converts Itanium C++ ABI mangled symbol names back into
human-readable C++ declarations.

Symbols may be given as arguments; with none, itadem reads one symbol
per line from standard input, matching the behavior of c++filt.`,
	Args: cobra.ArbitraryArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if outputFile != "" {
			f, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			output = f
		} else {
			output = os.Stdout
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if f, ok := output.(*os.File); ok && f != os.Stdout {
			f.Close()
		}
	},
	RunE: runDemangle,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "write output to file instead of stdout")

	rootCmd.Flags().BoolVar(&optNoANSI, "no-ansi", false, "drop cv-qualifiers (const/volatile/restrict) from the output")
	rootCmd.Flags().BoolVar(&optNoParams, "no-params", false, "drop function parameter lists from the output")
	rootCmd.Flags().BoolVarP(&optSimple, "simple", "s", false, "collapse verbose std:: spellings (basic_string -> string, and similar)")

	rootCmd.AddCommand(filterCmd)
}

func demangleOptions() itadem.Option {
	opts := itadem.ANSI | itadem.Params
	if optNoANSI {
		opts &^= itadem.ANSI
	}
	if optNoParams {
		opts &^= itadem.Params
	}
	if optSimple {
		opts |= itadem.Simple
	}
	return opts
}

func runDemangle(cmd *cobra.Command, args []string) error {
	opts := demangleOptions()
	if len(args) == 0 {
		return demangleStream(os.Stdin, opts)
	}
	for _, sym := range args {
		printOne(sym, opts)
	}
	return nil
}

func printOne(sym string, opts itadem.Option) {
	demangled, err := itadem.ToString(sym, opts)
	if err != nil {
		fmt.Fprintln(output, sym)
		return
	}
	fmt.Fprintln(output, demangled)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
