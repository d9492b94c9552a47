// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demangle

import "sort"

// operatorKind classifies how an operator production is printed
// (§4.5.3).
type operatorKind int

const (
	opPrefix operatorKind = iota
	opPostfix
	opBinary
	opArray
	opMember
	opPtrMem
	opNew
	opDel
	opCall
	opCCast
	opConditional
	opNameOnly
	opNamedCast
	opOfIdOp
	opUnnameable
)

// operatorInfo is one entry of the operator table: two-character
// mangled code, kind, precedence, and spelling (§4.5.3, §9 — kept as a
// compile-time-sorted static array with binary search, never
// table-driven dynamic dispatch).
type operatorInfo struct {
	code     string
	kind     operatorKind
	operands int // number of expression operands this operator consumes, -1 if variable/handled specially
	prec     prec
	spelling string
}

// operatorTable must stay sorted by code: operatorLookup binary
// searches it. The init function below panics if this invariant
// is broken.
var operatorTable = []operatorInfo{
	{"aN", opBinary, 2, precAssign, "&="},
	{"aS", opBinary, 2, precAssign, "="},
	{"aa", opBinary, 2, precAndIf, "&&"},
	{"ad", opPrefix, 1, precUnary, "&"},
	{"an", opBinary, 2, precAnd, "&"},
	{"at", opOfIdOp, 1, precUnary, "alignof "},
	{"az", opOfIdOp, 1, precUnary, "alignof "},
	{"cc", opNamedCast, 1, precPostfix, "const_cast"},
	{"cl", opCall, -1, precPostfix, ""},
	{"cm", opBinary, 2, precComma, ","},
	{"co", opPrefix, 1, precUnary, "~"},
	{"cv", opCCast, 1, precCast, ""},
	{"dV", opBinary, 2, precMultiplicative, "/="},
	{"da", opDel, 1, precUnary, "delete[] "},
	{"dc", opNamedCast, 1, precPostfix, "dynamic_cast"},
	{"de", opPrefix, 1, precUnary, "*"},
	{"dl", opDel, 1, precUnary, "delete "},
	{"dn", opOfIdOp, 1, precUnary, ""},
	{"ds", opPtrMem, 2, precPtrMem, ".*"},
	{"dt", opMember, 2, precPostfix, "."},
	{"dv", opBinary, 2, precMultiplicative, "/"},
	{"eO", opBinary, 2, precAssign, "^="},
	{"eo", opBinary, 2, precXor, "^"},
	{"eq", opBinary, 2, precEquality, "=="},
	{"ge", opBinary, 2, precRelational, ">="},
	{"gt", opBinary, 2, precRelational, ">"},
	{"ix", opArray, 2, precPostfix, ""},
	{"lS", opBinary, 2, precAssign, "<<="},
	{"le", opBinary, 2, precRelational, "<="},
	{"li", opOfIdOp, 1, precUnary, "operator\"\" "},
	{"ls", opBinary, 2, precShift, "<<"},
	{"lt", opBinary, 2, precRelational, "<"},
	{"mI", opBinary, 2, precAssign, "-="},
	{"mL", opBinary, 2, precAssign, "*="},
	{"mi", opBinary, 2, precAdditive, "-"},
	{"ml", opBinary, 2, precMultiplicative, "*"},
	{"mm", opPostfix, 1, precPostfix, "--"},
	{"na", opNew, -1, precUnary, "new[] "},
	{"ne", opBinary, 2, precEquality, "!="},
	{"ng", opPrefix, 1, precUnary, "-"},
	{"nt", opPrefix, 1, precUnary, "!"},
	{"nw", opNew, -1, precUnary, "new "},
	{"oR", opBinary, 2, precAssign, "|="},
	{"oo", opBinary, 2, precOrIf, "||"},
	{"or", opBinary, 2, precIor, "|"},
	{"pL", opBinary, 2, precAssign, "+="},
	{"pl", opBinary, 2, precAdditive, "+"},
	{"pm", opPtrMem, 2, precPtrMem, "->*"},
	{"pp", opPostfix, 1, precPostfix, "++"},
	{"ps", opPrefix, 1, precUnary, "+"},
	{"pt", opMember, 2, precPostfix, "->"},
	{"qu", opConditional, 3, precConditional, "?"},
	{"rM", opBinary, 2, precAssign, "%="},
	{"rS", opBinary, 2, precAssign, ">>="},
	{"rc", opNamedCast, 1, precPostfix, "reinterpret_cast"},
	{"rm", opBinary, 2, precMultiplicative, "%"},
	{"rs", opBinary, 2, precShift, ">>"},
	{"sc", opNamedCast, 1, precPostfix, "static_cast"},
	{"ss", opBinary, 2, precSpaceship, "<=>"},
	{"st", opOfIdOp, 1, precUnary, "sizeof "},
	{"sz", opOfIdOp, 1, precUnary, "sizeof "},
	{"tw", opUnnameable, 1, precUnary, "throw "},
}

func init() {
	if !sort.SliceIsSorted(operatorTable, func(i, j int) bool {
		return operatorTable[i].code < operatorTable[j].code
	}) {
		panic("demangle: operatorTable is not sorted")
	}
}

// operatorLookup binary-searches operatorTable by two-character code.
func operatorLookup(code string) (operatorInfo, bool) {
	i := sort.Search(len(operatorTable), func(i int) bool {
		return operatorTable[i].code >= code
	})
	if i < len(operatorTable) && operatorTable[i].code == code {
		return operatorTable[i], true
	}
	return operatorInfo{}, false
}
