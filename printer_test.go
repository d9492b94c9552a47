// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demangle

import "testing"

// demangleWith is a small test helper that parses and renders in one
// step, used where a test wants to name the exact opts rather than go
// through ToString's zero-value substitution.
func demangleWith(t *testing.T, mangled string, opts Option) string {
	t.Helper()
	got, err := ToString(mangled, opts)
	if err != nil {
		t.Fatalf("ToString(%q, %v) returned error: %v", mangled, opts, err)
	}
	return got
}

func TestPointerToConstInt(t *testing.T) {
	got := demangleWith(t, "_Z1fPKi", All)
	want := "f(int const*)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPointerToFunction(t *testing.T) {
	// void (*)() as a parameter: PFvvE.
	got := demangleWith(t, "_Z1fPFvvE", All)
	want := "f(void (*)())"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPointerToArray(t *testing.T) {
	// int (*)[5]: pointer to an array of 5 ints.
	got := demangleWith(t, "_Z1fPA5_i", All)
	want := "f(int (*)[5])"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPointerToMemberFunction(t *testing.T) {
	// void (Foo::*)(): pointer to a member function of class Foo.
	got := demangleWith(t, "_Z1fM3FooFvvE", All)
	want := "f(void (Foo::*)())"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReferenceToReference(t *testing.T) {
	// RKS_ (reference to const-qualified-substitution-to-reference):
	// the printer keeps this exactly as the grammar produces it rather
	// than trying to collapse it, matching the open question left
	// explicit in the design notes.
	got := demangleWith(t, "_Z1fRiRKS_", All)
	want := "f(int&, int& const&)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCtorDtorBaseName(t *testing.T) {
	// std::allocator<char>::allocator(std::allocator<char> const&)
	got := demangleWith(t, "_ZNSaIcEC1ERKS_", All)
	want := "std::allocator<char>::allocator(std::allocator<char> const&)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDestructorBaseName(t *testing.T) {
	got := demangleWith(t, "_ZN3FooD1Ev", All)
	want := "Foo::~Foo()"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRvalueReferenceParameter(t *testing.T) {
	got := demangleWith(t, "_Z1fOi", All)
	want := "f(int&&)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestConstMemberFunction(t *testing.T) {
	got := demangleWith(t, "_ZNK3Foo3barEv", All)
	want := "Foo::bar() const"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
