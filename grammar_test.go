// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demangle

import "testing"

func TestUnscopedNameNotSubstitutableWithoutTemplateArgs(t *testing.T) {
	// A plain top-level function name is not itself a substitution
	// candidate; only the combination of it with template-args is. If
	// "foo" leaked into the table, every index would shift by one and
	// S0_ below would wrongly resolve to std::vector instead of the
	// allocator parameter.
	got, err := ToString("_Z3fooSt6vectorIiSaIiEES0_", 0)
	if err != nil {
		t.Fatalf("ToString returned error: %v", err)
	}
	want := "foo(std::vector<int, std::allocator<int>>, std::allocator<int>)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNestedNameTerminalComponentNotSubstitutable(t *testing.T) {
	// A nested-name's last component, when it carries no template-args
	// of its own, must not pick up a spurious substitution-table entry
	// right as the nested-name closes: only the fully qualified type
	// (Foo::bar, Baz::qux) is substitutable there, not the bare
	// terminal component alone. If the "bar" and "qux" components each
	// leaked an extra entry, S2_ below would resolve one slot early and
	// print "Baz" instead of "Baz::qux" for the third parameter.
	got, err := ToString("_Z1fN3Foo3barEN3Baz3quxES2_", 0)
	if err != nil {
		t.Fatalf("ToString returned error: %v", err)
	}
	want := "f(Foo::bar, Baz::qux, Baz::qux)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestGenericLambdaOwnTemplateParam(t *testing.T) {
	// A generic lambda's parameter list can reference its own
	// template-param decl via a bare T_ (e.g. the mangling GCC/Clang
	// emit for `[](auto x){}`). That T_ must bind to the lambda's own
	// synthesized "auto:1" placeholder, not fail to resolve or pick up
	// whatever frame happens to be active from an enclosing context.
	got, err := ToString("_Z1fUlTyT_E_", 0)
	if err != nil {
		t.Fatalf("ToString returned error: %v", err)
	}
	want := "f({lambda(auto:1)#1})"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestVendorSuffixBlockInvoke(t *testing.T) {
	got, err := ToString("_Z3foov_block_invoke", 0)
	if err != nil {
		t.Fatalf("ToString returned error: %v", err)
	}
	if got != "foo() block_invoke" {
		t.Errorf("got %q, want %q", got, "foo() block_invoke")
	}
}

func TestVendorSuffixBlockInvokeNumbered(t *testing.T) {
	got, err := ToString("_Z3foov_block_invoke_2", 0)
	if err != nil {
		t.Fatalf("ToString returned error: %v", err)
	}
	if got != "foo() block_invoke_2" {
		t.Errorf("got %q, want %q", got, "foo() block_invoke_2")
	}
}

func TestLinkageMarkerIgnored(t *testing.T) {
	withL, err := ToString("_ZL3foov", 0)
	if err != nil {
		t.Fatalf("ToString returned error: %v", err)
	}
	withoutL, err := ToString("_Z3foov", 0)
	if err != nil {
		t.Fatalf("ToString returned error: %v", err)
	}
	if withL != withoutL {
		t.Errorf("internal-linkage marker changed output: %q vs %q", withL, withoutL)
	}
}

func TestTemplateFunctionParameter(t *testing.T) {
	// template<class T> T min(T, T) instantiated with int, each T
	// written out as its own T_ rather than via a substitution
	// back-reference.
	got, err := ToString("_Z3minIiET_T_T_", 0)
	if err != nil {
		t.Fatalf("ToString returned error: %v", err)
	}
	want := "int min<int>(int, int)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAnonymousNamespace(t *testing.T) {
	got, err := ToString("_ZN12_GLOBAL__N_13fooEv", 0)
	if err != nil {
		t.Fatalf("ToString returned error: %v", err)
	}
	want := "(anonymous namespace)::foo()"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
