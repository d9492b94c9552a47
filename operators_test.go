// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demangle

import "testing"

// The table's sort order is checked by operators.go's own init() panic
// guard; this test just confirms lookup behaves correctly for a few
// codes, present and absent, rather than re-checking the sort invariant.
func TestOperatorLookup(t *testing.T) {
	tests := []struct {
		code string
		want string
		ok   bool
	}{
		{"pl", "+", true},
		{"mi", "-", true},
		{"aS", "=", true},
		{"cl", "", true}, // call: no fixed spelling
		{"zz", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		info, ok := operatorLookup(tt.code)
		if ok != tt.ok {
			t.Errorf("operatorLookup(%q) ok = %v, want %v", tt.code, ok, tt.ok)
			continue
		}
		if ok && info.spelling != tt.want {
			t.Errorf("operatorLookup(%q).spelling = %q, want %q", tt.code, info.spelling, tt.want)
		}
	}
}

func TestOperatorLookupFirstAndLast(t *testing.T) {
	if _, ok := operatorLookup(operatorTable[0].code); !ok {
		t.Fatalf("operatorLookup failed on first table entry %q", operatorTable[0].code)
	}
	last := operatorTable[len(operatorTable)-1].code
	if _, ok := operatorLookup(last); !ok {
		t.Fatalf("operatorLookup failed on last table entry %q", last)
	}
}
