// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demangle

import "testing"

func TestSimplify(t *testing.T) {
	tests := []struct{ in, want string }{
		{
			"std::basic_string<char, std::char_traits<char>, std::allocator<char>>",
			"std::string",
		},
		{
			"void foo(unsigned long long, unsigned short, unsigned char)",
			"void foo(uint64_t, uint16_t, uint8_t)",
		},
		{
			"std::basic_ostream<char, std::char_traits<char>>&",
			"std::ostream&",
		},
		{"int", "int"},
	}
	for _, tt := range tests {
		if got := simplify(tt.in); got != tt.want {
			t.Errorf("simplify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// §8 testable property 8: the simplification pass is idempotent.
func TestSimplifyIdempotent(t *testing.T) {
	inputs := []string{
		"std::basic_string<char, std::char_traits<char>, std::allocator<char>>",
		"unsigned long long int foo(long long, unsigned short)",
		"std::basic_iostream<char, std::char_traits<char>>",
	}
	for _, in := range inputs {
		once := simplify(in)
		twice := simplify(once)
		if once != twice {
			t.Errorf("simplify not idempotent on %q: simplify once = %q, twice = %q", in, once, twice)
		}
	}
}
