// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demangle

import (
	"errors"
	"testing"
)

// TestDemangleScenarios exercises the worked examples used throughout
// the design notes: a templated container parameter list built purely
// from the substitution table, a member-function template inside a
// std:: container, a reference-returning member-function template, a
// std::-qualified free function with repeated pointer/reference
// parameters, and a nested template-of-template parameter.
func TestDemangleScenarios(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "function taking vector<int> and its allocator",
			in:   "_Z3fooSt6vectorIiSaIiEES0_",
			want: "foo(std::vector<int, std::allocator<int>>, std::allocator<int>)",
		},
		{
			name: "std::function<void()>::target",
			in:   "_ZNSt8functionIFvvEE6targetEv",
			want: "std::function<void ()>::target()",
		},
		{
			name: "std::ostream::_M_insert<unsigned long>",
			in:   "_ZNSo9_M_insertImEERSoT_",
			want: "std::ostream& std::ostream::_M_insert<unsigned long>(unsigned long)",
		},
		{
			name: "std::_Rb_tree_insert_and_rebalance",
			in:   "_ZSt29_Rb_tree_insert_and_rebalancebPSt18_Rb_tree_node_baseS0_RS_",
			want: "std::_Rb_tree_insert_and_rebalance(bool, std::_Rb_tree_node_base*, std::_Rb_tree_node_base*, std::_Rb_tree_node_base&)",
		},
		{
			name: "vector<pair<int,int>> with its allocator",
			in:   "_Z3barSt6vectorISt4pairIiiESaIS1_EE",
			want: "bar(std::vector<std::pair<int, int>, std::allocator<std::pair<int, int>>>)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToString(tt.in, 0)
			if err != nil {
				t.Fatalf("ToString(%q) returned error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ToString(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDemangleNotMangled(t *testing.T) {
	tests := []string{
		"",
		"NS0",
		"hello world",
		"_not_a_mangled_name",
	}
	for _, in := range tests {
		_, err := ToString(in, 0)
		if !errors.Is(err, ErrNotMangled) {
			t.Errorf("ToString(%q) error = %v, want ErrNotMangled", in, err)
		}
	}
}

func TestFilterPassesThroughUnmangled(t *testing.T) {
	in := "main"
	if got := Filter(in); got != in {
		t.Errorf("Filter(%q) = %q, want unchanged input", in, got)
	}
}

func TestFilterDemanglesKnownSymbol(t *testing.T) {
	got := Filter("_Z3fooSt6vectorIiSaIiEES0_")
	want := "foo(std::vector<int, std::allocator<int>>, std::allocator<int>)"
	if got != want {
		t.Errorf("Filter = %q, want %q", got, want)
	}
}

func TestDemangleZeroOptionDefaultsToANSIAndParams(t *testing.T) {
	// opts == 0 must behave like ANSI|Params, not "no options at all":
	// cv-qualifiers and parameter lists must still appear.
	got, err := ToString("_Z1fPKi", 0)
	if err != nil {
		t.Fatalf("ToString returned error: %v", err)
	}
	want := "f(int const*)"
	if got != want {
		t.Errorf("ToString with opts=0 = %q, want %q", got, want)
	}
}

func TestDemangleParamsOptionSuppressesParameterList(t *testing.T) {
	got, err := ToString("_Z1fPKi", ANSI)
	if err != nil {
		t.Fatalf("ToString returned error: %v", err)
	}
	if got != "f()" {
		t.Errorf("ToString without Params = %q, want f()", got)
	}
}

func TestDemangleANSIOptionSuppressesQualifiers(t *testing.T) {
	got, err := ToString("_Z1fPKi", Params)
	if err != nil {
		t.Fatalf("ToString returned error: %v", err)
	}
	if got != "f(int*)" {
		t.Errorf("ToString without ANSI = %q, want f(int*)", got)
	}
}

func TestDemangleSimpleOption(t *testing.T) {
	got, err := ToString("_Z1fSt6vectorISsSaISsEE", All)
	if err != nil {
		t.Fatalf("ToString returned error: %v", err)
	}
	want := "f(std::vector<std::string, std::allocator<std::string>>)"
	if got != want {
		t.Errorf("ToString with Simple = %q, want %q", got, want)
	}
}

func TestStripVendorUnderscores(t *testing.T) {
	tests := []struct{ in, want string }{
		{"_Z3foov", "_Z3foov"},
		{"__Z3foov", "_Z3foov"},
		{"___Z3foov", "_Z3foov"},
		{"not_mangled", "not_mangled"},
	}
	for _, tt := range tests {
		got := string(stripVendorUnderscores([]byte(tt.in)))
		if got != tt.want {
			t.Errorf("stripVendorUnderscores(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
