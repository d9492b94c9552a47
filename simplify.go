// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demangle

import "strings"

// simplifyRule is one entry of the §4.7 simplification table: a
// literal substring rewrite applied to the fully rendered output.
type simplifyRule struct {
	from, to string
}

// simplifyTable must be applied in declared order (§4.7): later rules
// assume earlier ones have already run (e.g. the uint64_t rule would
// misfire inside a not-yet-collapsed basic_string instantiation that
// happens to name "unsigned long long" as a different template
// argument, so the long-form collapses are listed first). None of the
// replacement texts reappears as a later rule's search text, so the
// pass is idempotent (§8 property 8: simplify(simplify(s)) == simplify(s)).
var simplifyTable = []simplifyRule{
	{"std::basic_string<char, std::char_traits<char>, std::allocator<char>>", "std::string"},
	{"std::basic_string<char, std::char_traits<char>, std::allocator<char> >", "std::string"},
	{"basic_string<char, char_traits<char>, allocator<char>>", "string"},
	{"std::basic_istream<char, std::char_traits<char>>", "std::istream"},
	{"std::basic_ostream<char, std::char_traits<char>>", "std::ostream"},
	{"std::basic_iostream<char, std::char_traits<char>>", "std::iostream"},
	{"unsigned long long", "uint64_t"},
	{"long long", "int64_t"},
	{"unsigned short", "uint16_t"},
	{"unsigned char", "uint8_t"},
}

// simplify applies simplifyTable to s in order.
func simplify(s string) string {
	for _, r := range simplifyTable {
		s = strings.ReplaceAll(s, r.from, r.to)
	}
	return s
}
