// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demangle

import "testing"

func TestCloneDeepCopiesOwnedFields(t *testing.T) {
	leaf := newNode(tagName)
	leaf.val = []byte("foo")

	wrapper := newNode(tagQualifiedType)
	wrapper.inner = leaf
	wrapper.children = []*node{leaf}

	c := wrapper.clone()
	if c == wrapper || c.inner == wrapper.inner {
		t.Fatal("clone must allocate new nodes, not alias the original")
	}
	if c.children[0] == wrapper.children[0] {
		t.Fatal("clone must deep-copy the children slice")
	}
	if string(c.inner.val) != "foo" {
		t.Fatalf("clone.inner.val = %q, want foo", c.inner.val)
	}
}

// scope is the one field clone must NOT deep-copy: a ctor/dtor name's
// scope is a non-owning handle into the enclosing nested-name.
func TestCloneScopeIsNotDeepCopied(t *testing.T) {
	scope := newNode(tagName)
	scope.val = []byte("Foo")

	ctor := newNode(tagCtorDtorName)
	ctor.scope = scope

	c := ctor.clone()
	if c.scope != scope {
		t.Fatal("clone must share the scope pointer, not copy it")
	}
}

func TestCloneNil(t *testing.T) {
	var n *node
	if got := n.clone(); got != nil {
		t.Fatalf("clone of nil node = %v, want nil", got)
	}
}
