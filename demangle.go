// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package demangle converts Itanium C++ ABI mangled symbol names back
// into human-readable C++ declarations.
package demangle

import "bytes"

// Option is the demangler's options bitmask (§6). The historical zero
// value means "all minus simplification": a caller that passes 0 gets
// ANSI qualifiers and parameter lists, but not the simplification
// pass, matching the behavior long-lived callers of the C demangler
// already depend on.
type Option uint8

const (
	// ANSI emits cv-qualifiers (const/volatile/restrict) on types and
	// member functions. Without it, qualifiers are silently dropped.
	ANSI Option = 1 << iota
	// Params emits each function's real parameter-type list. Without
	// it, every function prints with an empty, bare "()".
	Params
	// Simple applies the §4.7 simplification pass to the final
	// output (basic_string<...> -> string, and similar aliases).
	Simple
)

// All requests every option, including simplification.
const All = ANSI | Params | Simple

// defaultOptions is substituted for the historical zero value.
const defaultOptions = ANSI | Params

// Demangle converts a single Itanium-mangled symbol into its C++
// declaration (§4.8, §6). It returns ErrNotMangled (or another error
// from the taxonomy in §7) when symbol is not a name this demangler
// recognizes; in that case the caller's own dispatcher is expected to
// retry with a different scheme.
//
// Demangle touches no file, network, or process state (§5) and is
// safe to call concurrently on disjoint inputs: all state lives in a
// parser and printState created fresh for this one call.
func Demangle(symbol []byte, opts Option) (string, error) {
	if opts == 0 {
		opts = defaultOptions
	}

	data := stripVendorUnderscores(symbol)
	p := newParser(data, opts)
	root, err := p.parseMangledName()
	if err != nil {
		return "", err
	}

	ps := newPrintState(opts)
	out := ps.render(root)
	if opts&Simple != 0 {
		out = simplify(out)
	}
	return out, nil
}

// ToString is a convenience wrapper over Demangle for callers working
// with Go strings rather than byte slices.
func ToString(symbol string, opts Option) (string, error) {
	return Demangle([]byte(symbol), opts)
}

// Filter demangles symbol and returns the result, or symbol unchanged
// if it is not a mangled name this demangler recognizes — the
// behavior a linker map or profiler wants when scanning a mixed
// stream of mangled and unmangled identifiers.
func Filter(symbol string) string {
	out, err := ToString(symbol, defaultOptions)
	if err != nil {
		return symbol
	}
	return out
}

// stripVendorUnderscores removes leading underscores added by a
// platform's symbol-table convention (e.g. an extra "_" on Darwin)
// until either the input is exhausted or what remains starts with the
// "_Z" every Itanium encoding requires (§6).
func stripVendorUnderscores(symbol []byte) []byte {
	for len(symbol) > 0 && symbol[0] == '_' && !bytes.HasPrefix(symbol, []byte("_Z")) {
		symbol = symbol[1:]
	}
	return symbol
}
