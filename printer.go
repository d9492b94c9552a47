// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demangle

import "strings"

// printState is the pretty-printer's context (§4.7): the option
// bitmask, pack-expansion bookkeeping, and a recursion guard separate
// from the parser's own (printing happens in a second pass, after the
// whole AST already exists).
type printState struct {
	opts Option

	insideTemplate   bool
	currentPackIndex int // -1 means "not currently expanding a pack"
	currentPackLen   int

	depth int
}

func newPrintState(opts Option) *printState {
	return &printState{opts: opts, currentPackIndex: -1}
}

func (ps *printState) enter() bool {
	ps.depth++
	return ps.depth <= maxRecursionDepth
}
func (ps *printState) leave() { ps.depth-- }

func (ps *printState) cvStr(cv cvQual) string {
	if ps.opts&ANSI == 0 {
		return ""
	}
	return cv.String()
}

func refQualStr(r refQual) string {
	switch r {
	case refLValue:
		return " &"
	case refRValue:
		return " &&"
	}
	return ""
}

// render is the single entry point: every node, of any tag, is
// printed through this method. Grouping all variants behind one
// recursive function keeps the printer simple (§9 design note) while
// the switch on tg plays the role of dynamic dispatch over the
// otherwise-uniform node type.
func (ps *printState) render(n *node) string {
	if n == nil {
		return ""
	}
	if !ps.enter() {
		return "..."
	}
	defer ps.leave()

	switch n.tg {
	// ---- declarator-shaped types: handled by the peel/decoration
	// algorithm below, which also covers the function encoding itself
	// when it reaches this node directly as the parse root.
	case tagPointerType, tagReferenceType, tagRvalueReferenceType,
		tagQualifiedType, tagArrayType, tagFunctionType, tagPointerToMemberType:
		return ps.renderDeclarator(n)

	case tagBuiltinType:
		return string(n.val)
	case tagVectorType:
		dim := ""
		if n.lhs != nil {
			dim = ps.render(n.lhs)
		}
		return ps.render(n.inner) + " __vector(" + dim + ")"
	case tagComplexType:
		return ps.render(n.inner) + " complex"
	case tagImaginaryType:
		return ps.render(n.inner) + " imaginary"
	case tagDecltypeType:
		return "decltype(" + ps.render(n.inner) + ")"
	case tagVendorExtQualified:
		s := string(n.vendorExt)
		if len(n.children) > 0 {
			s += "<" + ps.renderList(n.children, ", ") + ">"
		}
		if n.inner != nil {
			return ps.render(n.inner) + " " + s
		}
		return s

	// ---- names ----
	case tagName:
		return string(n.val)
	case tagQualifiedStdName:
		return "std::" + ps.render(n.name)
	case tagNestedName:
		return ps.render(n.qual) + "::" + ps.render(n.name)
	case tagNameWithTemplateArgs:
		was := ps.insideTemplate
		ps.insideTemplate = true
		args := ps.renderList(n.children, ", ")
		ps.insideTemplate = was
		return ps.render(n.name) + "<" + args + ">"
	case tagModuleName:
		if n.qual != nil {
			return ps.render(n.qual) + "." + string(n.name.val)
		}
		return string(n.name.val)
	case tagClosureTyName:
		s := "{lambda("
		s += ps.renderList(n.params.childrenOrEmpty(), ", ")
		s += ")#"
		if len(n.count) == 0 {
			s += "1}"
		} else {
			s += string(n.count) + "}"
		}
		return s
	case tagUnnamedType:
		s := "{unnamed type#"
		if len(n.count) == 0 {
			s += "1}"
		} else {
			s += string(n.count) + "}"
		}
		return s
	case tagCtorDtorName:
		base := ps.render(baseNameOf(n.scope))
		scopeText := ps.render(n.scope)
		prefix := ""
		if n.isDtor {
			prefix = "~"
		}
		if scopeText == "" {
			return prefix + base
		}
		return scopeText + "::" + prefix + base
	case tagConvOpTy:
		return "operator " + ps.render(n.inner)
	case tagAbiTagTy:
		return ps.render(n.inner) + "[abi:" + string(n.name.val) + "]"
	case tagAnonymousNamespace:
		return string(n.val)
	case tagStructuredBinding:
		return "[" + ps.renderList(n.children, ", ") + "]"
	case tagLocalName:
		return ps.render(n.entry) + "::" + ps.render(n.name)
	case tagSpecialName:
		return string(n.val) + ps.render(n.name)

	// ---- substitutions ----
	case tagSpecialSubstitution:
		return specialSubSpelling[n.specKind]
	case tagExpandedSpecialSubstitution:
		return expandedSpecialSpelling(n.specKind)

	// ---- templates / packs ----
	case tagTemplateParamDecl:
		return "typename"
	case tagFwdTemplateRef:
		if n.fwd != nil && n.fwd.ref != nil {
			return ps.render(n.fwd.ref)
		}
		return "{forward-template-parameter}"
	case tagParameterPack, tagTemplateArgumentPack:
		if ps.currentPackIndex >= 0 {
			if ps.currentPackIndex < len(n.children) {
				return ps.render(n.children[ps.currentPackIndex])
			}
			return ""
		}
		return ps.renderList(n.children, ", ")
	case tagParameterPackExpansion:
		return ps.renderPackExpansion(n.inner)

	// ---- container ----
	case tagMany:
		return ps.renderList(n.children, n.sep)

	// ---- exception specs ----
	case tagNoexceptSpec:
		return "noexcept"
	case tagComputedNoexceptSpec:
		return "noexcept(" + ps.render(n.inner) + ")"
	case tagDynamicExceptionSpec:
		return "throw(" + ps.renderList(n.children, ", ") + ")"

	// ---- expressions ----
	default:
		return ps.renderExpr(n)
	}
}

func (n *node) childrenOrEmpty() []*node {
	if n == nil {
		return nil
	}
	return n.children
}

func (ps *printState) renderList(ns []*node, sep string) string {
	parts := make([]string, 0, len(ns))
	for _, c := range ns {
		parts = append(parts, ps.render(c))
	}
	return strings.Join(parts, sep)
}

// renderPackExpansion implements §4.7's pack-expansion algorithm:
// find the pack inner refers to, switch currentPackIndex from the
// sentinel (-1) through every index, printing inner once per element
// and joining with ", ". If no ParameterPack is reachable, a literal
// "..." is appended instead (non-dependent / unresolved expansion).
func (ps *printState) renderPackExpansion(inner *node) string {
	length := findPackLength(inner)
	if length < 0 {
		return ps.render(inner) + "..."
	}
	savedIdx, savedLen := ps.currentPackIndex, ps.currentPackLen
	defer func() { ps.currentPackIndex, ps.currentPackLen = savedIdx, savedLen }()
	ps.currentPackLen = length

	parts := make([]string, 0, length)
	for i := 0; i < length; i++ {
		ps.currentPackIndex = i
		parts = append(parts, ps.render(inner))
	}
	return strings.Join(parts, ", ")
}

// findPackLength walks n looking for the first ParameterPack /
// TemplateArgumentPack reachable without crossing into a nested
// ParameterPackExpansion (which has its own, independent pack), and
// returns its length, or -1 if none is found.
func findPackLength(n *node) int {
	if n == nil {
		return -1
	}
	if n.tg == tagParameterPack || n.tg == tagTemplateArgumentPack {
		return len(n.children)
	}
	if n.tg == tagParameterPackExpansion {
		return -1
	}
	if n.fwd != nil && n.fwd.ref != nil {
		if l := findPackLength(n.fwd.ref); l >= 0 {
			return l
		}
	}
	fields := []*node{n.inner, n.ret, n.name, n.qual, n.lhs, n.rhs, n.entry, n.params, n.requires, n.exceptionSpec}
	for _, f := range fields {
		if l := findPackLength(f); l >= 0 {
			return l
		}
	}
	for _, c := range n.children {
		if l := findPackLength(c); l >= 0 {
			return l
		}
	}
	return -1
}

var specialSubBaseName = [...]string{
	specStd:         "std",
	specAllocator:   "allocator",
	specBasicString: "basic_string",
	specString:      "string",
	specIstream:     "istream",
	specOstream:     "ostream",
	specIostream:    "iostream",
}

// baseNameOf descends a ctor/dtor's scope node to find the final
// unqualified base name (§4.7 "Ctor/dtor names"), unwrapping
// NameWithTemplateArgs, NestedName, QualifiedStdName, AbiTagTy, and
// the special substitutions (whose spelling otherwise carries the
// "std::" prefix that must not be repeated after the "::" this
// printer already inserts), so that foo<T>::foo prints the final foo,
// not foo<T> (grounded on original_source's
// extract_last_unqualified_name, v3.c).
func baseNameOf(n *node) *node {
	for n != nil {
		switch n.tg {
		case tagNameWithTemplateArgs:
			n = n.name
		case tagNestedName:
			n = n.name
		case tagQualifiedStdName:
			n = n.name
		case tagAbiTagTy:
			n = n.inner
		case tagSpecialSubstitution, tagExpandedSpecialSubstitution:
			base := newNode(tagName)
			base.val = []byte(specialSubBaseName[n.specKind])
			return base
		default:
			return n
		}
	}
	return n
}

func expandedSpecialSpelling(k specialSubKind) string {
	switch k {
	case specAllocator:
		return "std::allocator<char>"
	case specBasicString, specString:
		return "std::basic_string<char, std::char_traits<char>, std::allocator<char>>"
	case specIstream:
		return "std::basic_istream<char, std::char_traits<char>>"
	case specOstream:
		return "std::basic_ostream<char, std::char_traits<char>>"
	case specIostream:
		return "std::basic_iostream<char, std::char_traits<char>>"
	}
	return "std"
}

// -------------------- declarator printing (§4.7) --------------------
//
// peel walks through the chain of Pointer/Reference/RvalueReference/
// QualifiedType/PointerToMember wrappers around a type, accumulating
// a C declarator-style decoration string on the way back up the
// recursion (ascent-phase accumulation), so that an outer wrapper's
// marker ends up rightmost: PKi (pointer to const int) peels to
// core=int, decoration=" const*", printed as "int const*". A
// PointerToMember additionally folds the class name into the
// decoration as "Class::*", which composes with an enclosing Pointer
// or Reference exactly the way a literal "*"/"&" would.
func (ps *printState) peel(n *node) (*node, string) {
	switch n.tg {
	case tagPointerType:
		core, dec := ps.peel(n.inner)
		return core, dec + "*"
	case tagReferenceType:
		core, dec := ps.peel(n.inner)
		return core, dec + "&"
	case tagRvalueReferenceType:
		core, dec := ps.peel(n.inner)
		return core, dec + "&&"
	case tagQualifiedType:
		core, dec := ps.peel(n.inner)
		return core, dec + ps.cvStr(n.cv)
	case tagPointerToMemberType:
		core, dec := ps.peel(n.rhs)
		return core, dec + " " + ps.render(n.lhs) + "::*"
	default:
		return n, ""
	}
}

// renderDeclarator is the entry point for every type tag that peel
// understands, plus the two tags that terminate a peel (Array and
// Function): it peels the wrapper chain down to a core type and then
// prints that core with the accumulated decoration in the right
// place — inside parentheses adjacent to the core for a function or
// array core, simply appended otherwise.
func (ps *printState) renderDeclarator(n *node) string {
	core, decoration := ps.peel(n)
	switch core.tg {
	case tagFunctionType:
		if core.name != nil {
			// The parse root of a full function encoding: peel never
			// produces decoration here since nothing wraps the root.
			return ps.renderEncoding(core)
		}
		return ps.printFunctionTypeWithDecoration(core, decoration)
	case tagArrayType:
		return ps.printArrayTypeWithDecoration(core, decoration)
	default:
		return ps.render(core) + decoration
	}
}

func (ps *printState) printFunctionTypeWithDecoration(fn *node, decoration string) string {
	ret := ps.render(fn.ret)
	params := ps.renderParams(fn.params)
	decPart := ""
	if decoration != "" {
		decPart = "(" + strings.TrimLeft(decoration, " ") + ")"
	}
	s := ret + " "
	s += decPart
	s += "(" + params + ")"
	return s
}

func (ps *printState) printArrayTypeWithDecoration(arr *node, decoration string) string {
	elem := ps.render(arr.inner)
	dim := ""
	if arr.lhs != nil {
		dim = ps.render(arr.lhs)
	}
	decPart := ""
	if decoration != "" {
		decPart = "(" + strings.TrimLeft(decoration, " ") + ")"
	}
	return elem + " " + decPart + "[" + dim + "]"
}

// renderParams prints a bare-function-type parameter list, honoring
// the Params option (§6): when it is not set, every function prints
// with an empty, bare "()" instead of its real argument types.
func (ps *printState) renderParams(params *node) string {
	if ps.opts&Params == 0 {
		return ""
	}
	return ps.renderList(params.childrenOrEmpty(), ", ")
}

// renderEncoding prints a full <encoding> node (§4.5.1): the function
// or variable name together with its return type, parameter list,
// cv/ref-qualifiers and exception specification, when present. Most
// AST roots reach here only through renderDeclarator, since
// tagFunctionType is shared between "an encoding" (name != nil) and
// "a bare function type used as a pointee" (name == nil).
func (ps *printState) renderEncoding(fn *node) string {
	name := ps.render(fn.name)
	params := ps.renderParams(fn.params)
	tail := ps.cvStr(fn.cv) + refQualStr(fn.ref)
	if exc := ps.render(fn.exceptionSpec); exc != "" {
		tail += " " + exc
	}
	if fn.ret == nil {
		return name + "(" + params + ")" + tail
	}
	return ps.render(fn.ret) + " " + name + "(" + params + ")" + tail
}

// -------------------- expressions (§4.5.5, §4.7) --------------------

// renderSub prints child, parenthesizing it when its precedence class
// is looser than parentPrec requires (§3.2 prec, §9 design note).
func (ps *printState) renderSub(child *node, parentPrec prec) string {
	s := ps.render(child)
	if child != nil && child.pr > parentPrec {
		return "(" + s + ")"
	}
	return s
}

func (ps *printState) renderExpr(n *node) string {
	switch n.tg {
	case tagBinaryExpr:
		if n.sub == int(opArray) {
			return ps.renderSub(n.lhs, precPostfix) + "[" + ps.render(n.rhs) + "]"
		}
		return ps.renderSub(n.lhs, n.pr) + " " + n.op + " " + ps.renderSub(n.rhs, n.pr)
	case tagPrefixExpr:
		return n.op + ps.renderSub(n.inner, n.pr)
	case tagPostfixExpr:
		return ps.renderSub(n.inner, n.pr) + n.op
	case tagMemberExpr:
		if n.sub == int(opNamedCast) {
			return n.op + "<" + ps.render(n.lhs) + ">(" + ps.render(n.rhs) + ")"
		}
		return ps.renderSub(n.lhs, precPostfix) + n.op + ps.render(n.rhs)
	case tagFoldExpr:
		ell := string(n.val)
		if n.rhs == nil {
			if n.isDtor { // left fold with no initializer: "(... op pack)"
				return "(... " + n.op + " " + ps.render(n.lhs) + ")"
			}
			return "(" + ps.render(n.lhs) + " " + n.op + " ... " + n.op + " " + ell + ")"
		}
		return "(" + ps.render(n.lhs) + " " + n.op + " ... " + n.op + " " + ps.render(n.rhs) + ")"
	case tagBracedExpr:
		if string(n.val) == "." {
			return "." + ps.render(n.name) + " = " + ps.render(n.inner)
		}
		return "[" + ps.render(n.lhs) + "] = " + ps.render(n.inner)
	case tagBracedRangeExpr:
		return "[" + ps.render(n.lhs) + " ... " + ps.render(n.rhs) + "] = " + ps.render(n.inner)
	case tagInitListExpr:
		prefix := ""
		if n.inner != nil {
			prefix = ps.render(n.inner)
		}
		return prefix + "{" + ps.renderList(n.children, ", ") + "}"
	case tagNewExpr:
		prefix := ""
		if n.isDtor {
			prefix = "::"
		}
		s := prefix + "new"
		if args := n.params.childrenOrEmpty(); len(args) > 0 {
			s += "(" + ps.renderList(args, ", ") + ")"
		}
		s += " " + ps.render(n.inner)
		if n.requires != nil {
			if n.requires.tg == tagMany {
				s += "(" + ps.renderList(n.requires.children, ", ") + ")"
			} else {
				s += ps.render(n.requires)
			}
		}
		return s
	case tagDeleteExpr:
		prefix := ""
		if n.isDtor {
			prefix = "::"
		}
		return prefix + "delete " + ps.render(n.inner)
	case tagCallExpr:
		return ps.renderSub(n.inner, precPostfix) + "(" + ps.renderList(n.params.childrenOrEmpty(), ", ") + ")"
	case tagFunctionalCastExpr:
		if n.params != nil {
			return ps.render(n.inner) + "(" + ps.renderList(n.params.children, ", ") + ")"
		}
		return ps.render(n.inner) + "(" + ps.render(n.rhs) + ")"
	case tagConditionalExpr:
		return ps.renderSub(n.lhs, precConditional) + " ? " + ps.render(n.rhs) + " : " + ps.renderSub(n.qual, precAssign)
	case tagIntegerLiteral:
		sign := ""
		if n.isDtor {
			sign = "-"
		}
		return "(" + ps.render(n.inner) + ")" + sign + string(n.val)
	case tagExprPrimary:
		return string(n.val)
	case tagThrowExpr:
		if n.inner == nil {
			return "throw"
		}
		return "throw " + ps.render(n.inner)
	case tagSizeofParamPackExpr:
		return "sizeof...(" + ps.render(n.inner) + ")"
	case tagPackExpansionExpr:
		return ps.render(n.inner) + "..."
	case tagTypeidExpr:
		return string(n.val) + ps.render(n.inner) + n.op
	case tagUnresolvedName:
		return string(n.val) + ps.render(n.inner)
	}
	return ""
}
