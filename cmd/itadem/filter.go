// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	itadem "github.com/gormangle/itadem"
)

var filterCmd = &cobra.Command{
	Use:   "filter [file ...]",
	Short: "demangle the lines of a text that are mangled names",
	Long: `filter scans its input (stdin, or the named files) line by line
and replaces each line that is, as a whole, an Itanium-mangled symbol
with its demangled form, printing every other line unchanged. A
mangled name embedded inside a longer line is not rewritten.`,
	Args: cobra.ArbitraryArgs,
	RunE: runFilter,
}

func runFilter(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return filterStream(os.Stdin)
	}
	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		err = filterStream(f)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// filterStream rewrites each line of r that is itself a mangled name,
// leaving any line that is not untouched.
func filterStream(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fmt.Fprintln(output, itadem.Filter(scanner.Text()))
	}
	return scanner.Err()
}

// demangleStream demangles each line of r as a whole symbol, printing
// the line unchanged when it is not one this demangler recognizes.
func demangleStream(r io.Reader, opts itadem.Option) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		printOne(scanner.Text(), opts)
	}
	return scanner.Err()
}
