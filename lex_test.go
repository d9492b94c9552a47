// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demangle

import "testing"

func TestParseNonNegInteger(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"0", 0, true},
		{"42abc", 42, true},
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		p := newParser([]byte(tt.in), 0)
		got, ok := p.parseNonNegInteger()
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("parseNonNegInteger(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseNumberNegative(t *testing.T) {
	p := newParser([]byte("n5_"), 0)
	v, neg, ok := p.parseNumber()
	if !ok || !neg || v != 5 {
		t.Fatalf("parseNumber(n5_) = (%d, %v, %v), want (5, true, true)", v, neg, ok)
	}
}

func TestParseBase36(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"0_", 0},
		{"1_", 1},
		{"9_", 9},
		{"A_", 10},
		{"Z_", 35},
		{"10_", 36},
	}
	for _, tt := range tests {
		p := newParser([]byte(tt.in), 0)
		got, ok := p.parseBase36()
		if !ok || got != tt.want {
			t.Errorf("parseBase36(%q) = (%d, %v), want (%d, true)", tt.in, got, ok, tt.want)
		}
	}
}

// parseBase36 must never treat an out-of-range read (which peek()
// reports as NUL) as a trailing digit.
func TestParseBase36NoTrailingGarbage(t *testing.T) {
	p := newParser([]byte("3"), 0)
	got, ok := p.parseBase36()
	if !ok || got != 3 {
		t.Fatalf("parseBase36(%q) at end of input = (%d, %v), want (3, true)", "3", got, ok)
	}
}

func TestParseSourceName(t *testing.T) {
	p := newParser([]byte("3foo"), 0)
	n, ok := p.parseSourceName()
	if !ok || string(n.val) != "foo" {
		t.Fatalf("parseSourceName(3foo) = (%q, %v), want (foo, true)", n.val, ok)
	}
}

func TestParseSourceNameTruncated(t *testing.T) {
	p := newParser([]byte("9ab"), 0)
	if _, ok := p.parseSourceName(); ok {
		t.Fatal("parseSourceName should fail when fewer bytes remain than the declared length")
	}
}

func TestParseCVQualifiersOrder(t *testing.T) {
	p := newParser([]byte("rVK"), 0)
	cv := p.parseCVQualifiers()
	if cv != cvRestrict|cvVolatile|cvConst {
		t.Fatalf("parseCVQualifiers(rVK) = %v, want all three bits set", cv)
	}
}
