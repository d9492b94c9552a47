// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demangle

// tag discriminates the concrete shape of a node. The grammar in
// grammar.go builds nodes of these kinds; printer.go walks them.
type tag int

const (
	tagInvalid tag = iota

	// types
	tagBuiltinType
	tagQualifiedType      // cv-qualified inner type
	tagVendorExtQualified // u<source-name>[<template-args>] vendor type
	tagPointerType
	tagReferenceType
	tagRvalueReferenceType
	tagArrayType
	tagVectorType
	tagPointerToMemberType
	tagFunctionType
	tagComplexType
	tagImaginaryType
	tagDecltypeType

	// names
	tagName // plain identifier (source-name or operator spelling)
	tagNestedName
	tagLocalName
	tagNameWithTemplateArgs
	tagModuleName
	tagClosureTyName
	tagCtorDtorName
	tagConvOpTy
	tagAbiTagTy
	tagQualifiedStdName // "St" + unqualified name -> std::name
	tagAnonymousNamespace
	tagStructuredBinding
	tagUnnamedType

	// templates
	tagTemplateArgs
	tagTemplateParam
	tagTemplateParamDecl
	tagTemplateArgumentPack
	tagParameterPack
	tagParameterPackExpansion
	tagFwdTemplateRef

	// substitutions
	tagSubstitution
	tagSpecialSubstitution
	tagExpandedSpecialSubstitution

	// top level
	tagEncoding
	tagSpecialName // vtable/typeinfo/VTT/guard/etc, pre-rendered val

	// exception specs
	tagNoexceptSpec
	tagDynamicExceptionSpec
	tagComputedNoexceptSpec

	// expressions
	tagBinaryExpr
	tagPrefixExpr
	tagPostfixExpr
	tagMemberExpr
	tagFoldExpr
	tagBracedExpr
	tagBracedRangeExpr
	tagInitListExpr
	tagNewExpr
	tagDeleteExpr
	tagCallExpr
	tagFunctionalCastExpr
	tagConditionalExpr
	tagIntegerLiteral
	tagExprPrimary // generic (type)value literal
	tagThrowExpr
	tagSizeofParamPackExpr
	tagPackExpansionExpr
	tagTypeidExpr
	tagUnresolvedName

	// container
	tagMany // sequence of children printed with Sep
)

// cvQual is a bitmask of cv-qualifiers (§4.2 parse_cv_qualifiers).
type cvQual uint8

const (
	cvRestrict cvQual = 1 << iota
	cvVolatile
	cvConst
)

func (cv cvQual) String() string {
	var s string
	if cv&cvConst != 0 {
		s += " const"
	}
	if cv&cvVolatile != 0 {
		s += " volatile"
	}
	if cv&cvRestrict != 0 {
		s += " restrict"
	}
	return s
}

// refQual is the optional ref-qualifier on a member function (§4.2).
type refQual uint8

const (
	refNone refQual = iota
	refLValue
	refRValue
)

// prec is the precedence class used by the printer (§3.2).
type prec int

const (
	precPrimary prec = iota
	precPostfix
	precUnary
	precCast
	precPtrMem
	precMultiplicative
	precAdditive
	precShift
	precSpaceship
	precRelational
	precEquality
	precAnd
	precXor
	precIor
	precAndIf
	precOrIf
	precConditional
	precAssign
	precComma
	precDefault
)

// specialSubKind identifies which of the seven two-letter std aliases
// (§3.3) a SpecialSubstitution/ExpandedSpecialSubstitution node stands
// for.
type specialSubKind int

const (
	specStd specialSubKind = iota
	specAllocator
	specBasicString
	specString
	specIstream
	specOstream
	specIostream
)

var specialSubSpelling = [...]string{
	specStd:         "std",
	specAllocator:   "std::allocator",
	specBasicString: "std::basic_string",
	specString:      "std::string",
	specIstream:     "std::istream",
	specOstream:     "std::ostream",
	specIostream:    "std::iostream",
}

// node is the single tagged AST representation (§3.2): every parsed
// construct is one of these, discriminated by tag. Only the fields
// relevant to a given tag are populated; see grammar.go for which
// production sets which fields.
type node struct {
	tg   tag
	val  []byte // literal fragment of the original input, never used as identity
	pr   prec
	sub  int // subtag: discriminates closely related variants of the same tag

	// generic single-child / binary relationships
	inner *node // QualifiedType.inner, PointerType target, ArrayType element, ...
	ret   *node // FunctionType return type
	name  *node // NestedName/Encoding name component
	qual  *node // NestedName qualifying scope, or cv-qualified-type's qualifier host
	lhs   *node
	rhs   *node
	scope *node // CtorDtorName enclosing scope (non-owning: never cloned through)
	entry *node // LocalName entity

	// sequences
	children []*node // Many.children, NestedName path, template args, params
	sep      string  // Many.sep

	// type-specific
	cv  cvQual
	ref refQual

	// function type
	params        *node // Many of parameter types
	requires      *node // trailing requires-clause expression, or nil
	exceptionSpec *node

	// template param / fwd ref
	level, index int
	fwd          *fwdTemplateRef

	// ctor/dtor
	isDtor bool

	// operator / expression
	op string

	// closure
	count []byte // ClosureTyName counter digits ("" means the first/only closure)

	// module name
	isPartition bool

	// special substitution kind
	specKind specialSubKind

	// vendor extension
	vendorExt []byte
}

func newNode(tg tag) *node { return &node{tg: tg, pr: precDefault} }

func newMany(sep string) *node { return &node{tg: tagMany, sep: sep, pr: precDefault} }

func (n *node) append(child *node) { n.children = append(n.children, child) }

// clone performs a deep copy of n and all owned children. There are two
// exceptions: a CtorDtorName's scope (see below), and a FwdTemplateRef's
// target, which is a handle into the
// shared forward-reference arena and must never be cloned through —
// forward refs hold only (level, index) until resolved, after which
// the resolver fills fwd.ref with a deep clone taken once (§3.4).
func (n *node) clone() *node {
	if n == nil {
		return nil
	}
	c := *n
	c.inner = n.inner.clone()
	c.ret = n.ret.clone()
	c.name = n.name.clone()
	c.qual = n.qual.clone()
	c.lhs = n.lhs.clone()
	c.rhs = n.rhs.clone()
	c.entry = n.entry.clone()
	c.params = n.params.clone()
	c.requires = n.requires.clone()
	c.exceptionSpec = n.exceptionSpec.clone()
	// scope is non-owning: copy the pointer, never deep-clone it, so
	// ctor/dtor name printing still finds the live enclosing scope.
	c.scope = n.scope
	if n.children != nil {
		c.children = make([]*node, len(n.children))
		for i, ch := range n.children {
			c.children[i] = ch.clone()
		}
	}
	return &c
}

// fwdTemplateRef is one entry of the per-parse forward-reference list
// (§3.4). It is allocated once when a T_/T<n>_ is seen in
// forward-reference-permitted mode before its frame is bound, and is
// resolved by a single post-parse pass in state.go.
type fwdTemplateRef struct {
	level, index int
	ref          *node // filled in by resolveForwardRefs; nil until then
}
