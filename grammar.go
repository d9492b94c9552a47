// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demangle

import "strings"

// nameState threads the bits that accumulate while parsing a <name>
// production and are needed by its caller (§4.5.1 step 2): cv/ref
// qualifiers gathered from a nested-name, whether the name is a
// constructor/destructor/conversion-operator (which suppresses the
// trailing return type), and whether the name ends in template-args.
type nameState struct {
	cv                   cvQual
	ref                  refQual
	isCtorDtorOrConv     bool
	endsWithTemplateArgs bool
}

// parseMangledName implements §4.5.1 mangled_name: _Z [L] <encoding>
// [<vendor-suffix>]. Vendor underscore prefixes have already been
// stripped by the caller (demangle.go).
func (p *parser) parseMangledName() (*node, error) {
	if !p.cur.acceptStr("_Z") {
		return nil, ErrNotMangled
	}
	p.cur.acceptChar('L') // internal linkage marker, no semantic effect on output
	enc, err := p.parseEncodingTop()
	if err != nil {
		return nil, err
	}
	suffix := p.parseVendorSuffix()
	if suffix != "" {
		wrapped := newNode(tagMany)
		wrapped.sep = ""
		wrapped.append(enc)
		n := newNode(tagName)
		n.val = []byte(suffix)
		wrapped.append(n)
		return wrapped, nil
	}
	return enc, nil
}

// parseVendorSuffix recognizes the '.'/'_'-introduced suffix (§6):
// "ptr" is consumed silently, "block_invoke[_<n>]" is rendered, and
// anything else is preserved verbatim as " (<suffix>)".
func (p *parser) parseVendorSuffix() string {
	if p.cur.atEnd() {
		return ""
	}
	if p.cur.peek() != '.' && p.cur.peek() != '_' {
		return ""
	}
	rest := string(p.cur.data[p.cur.cur:])
	// consume the rest unconditionally: a trailing suffix is never
	// itself part of the grammar this core parses.
	for !p.cur.atEnd() {
		p.cur.advance()
	}
	body := strings.TrimLeft(rest, "._")
	if body == "ptr" {
		return ""
	}
	if strings.HasPrefix(body, "block_invoke") {
		tail := strings.TrimPrefix(body, "block_invoke")
		tail = strings.TrimPrefix(tail, "_")
		if tail == "" {
			return " block_invoke"
		}
		return " block_invoke_" + tail
	}
	return " (" + rest + ")"
}

// parseEncodingTop parses §4.5.1 encoding at the top level (where the
// function's own template parameters, if any, establish a frame that
// the rest of the encoding can reference via T_).
func (p *parser) parseEncodingTop() (*node, error) {
	n, err := p.parseEncoding(true)
	if err != nil {
		return nil, err
	}
	if err := p.resolveForwardRefs(); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *parser) parseEncoding(tagTemplates bool) (*node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	if b := p.cur.peek(); b == 'G' || b == 'T' {
		sn, ok := p.parseSpecialName()
		if ok {
			return sn, nil
		}
		return nil, ErrNotMangled
	}

	m := p.mark()
	nm, ns, ok := p.parseName(tagTemplates)
	if !ok {
		p.restore(m)
		return nil, ErrNotMangled
	}

	if p.atEncodingEnd() {
		return nm, nil
	}

	enc := newNode(tagFunctionType)
	enc.name = nm
	enc.cv = ns.cv
	enc.ref = ns.ref

	if ns.endsWithTemplateArgs && !ns.isCtorDtorOrConv {
		ret, ok := p.parseType()
		if !ok {
			p.restore(m)
			return nil, ErrNotMangled
		}
		enc.ret = ret
	}

	params := newMany(", ")
	if p.cur.peek() == 'v' {
		// Bare "v" in parameter position always means "no parameters"
		// (§4.5.1): unlike every other builtin-type code, void can
		// never itself be one of several real parameter types.
		p.cur.advance()
	} else {
		for !p.atEncodingEnd() {
			if b := p.cur.peek(); b == 'R' || b == 'O' {
				// Trailing ref-qualifier appearing in parameter
				// position (§4.5.1 step 6 fallback): only treated
				// this way when it cannot also start a valid type.
				save := p.mark()
				if _, ok := p.parseType(); ok {
					p.restore(save)
				} else {
					p.restore(save)
					enc.ref = p.parseRefQualifiers()
					break
				}
			}
			t, ok := p.parseType()
			if !ok {
				break
			}
			params.append(t)
		}
	}
	if len(params.children) == 0 {
		params = nil
	}
	enc.params = params
	return enc, nil
}

// atEncodingEnd reports whether the cursor is at a position that ends
// an <encoding>/<bare-function-type>: end of input, or the start of a
// vendor suffix.
func (p *parser) atEncodingEnd() bool {
	if p.cur.atEnd() {
		return true
	}
	b := p.cur.peek()
	return b == '.' || b == '_' && p.looksLikeVendorSuffix()
}

func (p *parser) looksLikeVendorSuffix() bool {
	// A bare '_' here is ambiguous with "_n" clone suffixes; since the
	// core never has more grammar to try once bare-function-type
	// parsing stalls, it is safe to always treat a stall on '_' as a
	// suffix boundary, matching the entry point's behavior.
	return true
}


// -------------------- names (§4.5.2) --------------------

func (p *parser) parseName(tagTemplates bool) (*node, nameState, bool) {
	switch p.cur.peek() {
	case 'N':
		return p.parseNestedName(tagTemplates)
	case 'Z':
		n, ok := p.parseLocalName()
		return n, nameState{}, ok
	}
	n, ok := p.parseUnscopedName()
	if !ok {
		return nil, nameState{}, false
	}
	var ns nameState
	if p.cur.peek() == 'I' {
		// A bare <unscoped-name> is not itself a substitution
		// candidate; only <unscoped-template-name> — this name
		// immediately followed by template-args — is. So the bare
		// form is appended here, at the point we learn template-args
		// follow, not unconditionally in parseUnscopedName.
		p.appendSubstitution(n)
		args, ok := p.parseTemplateArgsWithMode(tagTemplates)
		if !ok {
			return nil, nameState{}, false
		}
		wrapped := newNode(tagNameWithTemplateArgs)
		wrapped.name = n
		wrapped.children = args
		p.appendSubstitution(wrapped)
		n = wrapped
		ns.endsWithTemplateArgs = true
	}
	return n, ns, true
}

// parseUnscopedName implements <unscoped-name> (§4.5.2). Unlike the
// nested-name and <type> productions, a bare <unscoped-name> used
// directly as a whole <name> is never added to the substitution
// table by itself (§4.6) — see parseName.
func (p *parser) parseUnscopedName() (*node, bool) {
	if p.cur.acceptStr("St") {
		raw, ok := p.parseUnqualifiedName()
		if !ok {
			return nil, false
		}
		n := newNode(tagQualifiedStdName)
		n.name = raw
		return n, true
	}
	raw, ok := p.parseUnqualifiedName()
	if !ok {
		return nil, false
	}
	return raw, true
}

// parseNestedName implements N [<cv-qualifiers>] [<ref-qualifier>]
// <prefix-chain> E (§4.5.2). Each chain component except the last one
// is appended to the substitution table at the moment it is produced.
func (p *parser) parseNestedName(tagTemplates bool) (*node, nameState, bool) {
	m := p.mark()
	if !p.cur.acceptChar('N') {
		return nil, nameState{}, false
	}
	var ns nameState
	ns.cv = p.parseCVQualifiers()
	ns.ref = p.parseRefQualifiers()

	var scope *node
	first := true
	for {
		if p.cur.peek() == 'E' {
			p.cur.advance()
			break
		}
		comp, endsArgs, ok := p.parseNestedNameComponent(&scope, first, tagTemplates)
		if !ok {
			p.restore(m)
			return nil, nameState{}, false
		}
		first = false
		scope = comp
		ns.endsWithTemplateArgs = endsArgs
		ns.isCtorDtorOrConv = p.lastComponentWasCtorDtorOrConv
	}
	if scope == nil {
		p.restore(m)
		return nil, nameState{}, false
	}
	return scope, ns, true
}

// lastComponentWasCtorDtorOrConv is a one-shot flag set by
// parseNestedNameComponent/parseUnqualifiedName so parseNestedName can
// populate nameState.isCtorDtorOrConv without threading an extra
// return value through every caller.
// It is reset at the start of every unqualified-name parse.

func (p *parser) parseNestedNameComponent(scope **node, first, tagTemplates bool) (*node, bool, bool) {
	if p.cur.peek() == 'T' && p.cur.peekAt(1) != 'L' {
		if tp, ok := p.parseTemplateParamOrForwardRef(); ok {
			combined := p.qualify(*scope, tp)
			if p.cur.peek() != 'E' {
				p.appendSubstitution(combined)
			}
			endsArgs := false
			if p.cur.peek() == 'I' {
				args, ok := p.parseTemplateArgsWithMode(false)
				if !ok {
					return nil, false, false
				}
				wrapped := newNode(tagNameWithTemplateArgs)
				wrapped.name = combined
				wrapped.children = args
				if p.cur.peek() != 'E' {
					p.appendSubstitution(wrapped)
				}
				combined = wrapped
				endsArgs = true
			}
			p.lastComponentWasCtorDtorOrConv = false
			return combined, endsArgs, true
		}
	}
	if p.cur.peek() == 'D' && (p.cur.peekAt(1) == 't' || p.cur.peekAt(1) == 'T') {
		dt, ok := p.parseDecltype()
		if !ok {
			return nil, false, false
		}
		combined := p.qualify(*scope, dt)
		if p.cur.peek() != 'E' {
			p.appendSubstitution(combined)
		}
		p.lastComponentWasCtorDtorOrConv = false
		return combined, false, true
	}
	if p.cur.peek() == 'S' {
		sub, ok := p.parseSubstitution()
		if ok {
			combined := sub
			endsArgs := false
			if p.cur.peek() == 'I' {
				args, ok := p.parseTemplateArgsWithMode(false)
				if !ok {
					return nil, false, false
				}
				wrapped := newNode(tagNameWithTemplateArgs)
				wrapped.name = sub
				wrapped.children = args
				if p.cur.peek() != 'E' {
					p.appendSubstitution(wrapped)
				}
				combined = wrapped
				endsArgs = true
			}
			*scope = combined
			p.lastComponentWasCtorDtorOrConv = false
			return combined, endsArgs, true
		}
	}
	p.cur.acceptChar('L')
	raw, ok := p.parseUnqualifiedNameIn(*scope)
	if !ok {
		return nil, false, false
	}
	// A ctor/dtor name already carries its own scope pointer (§3.2
	// CtorDtorName.scope) and prints the full qualification itself;
	// wrapping it in another NestedName would duplicate the scope text.
	var combined *node
	if raw.tg == tagCtorDtorName {
		combined = raw
	} else {
		combined = p.qualify(*scope, raw)
	}
	if p.cur.peek() != 'E' {
		p.appendSubstitution(combined)
	}
	endsArgs := false
	if p.cur.peek() == 'I' {
		args, ok := p.parseTemplateArgsWithMode(tagTemplates && first)
		if !ok {
			return nil, false, false
		}
		wrapped := newNode(tagNameWithTemplateArgs)
		wrapped.name = combined
		wrapped.children = args
		if p.cur.peek() != 'E' {
			p.appendSubstitution(wrapped)
		}
		combined = wrapped
		endsArgs = true
	}
	return combined, endsArgs, true
}

// qualify wraps name in a NestedName scoped by scope, or returns name
// unchanged if there is no enclosing scope yet.
func (p *parser) qualify(scope, name *node) *node {
	if scope == nil {
		return name
	}
	n := newNode(tagNestedName)
	n.qual = scope
	n.name = name
	return n
}

func (p *parser) parseLocalName() (*node, bool) {
	m := p.mark()
	if !p.cur.acceptChar('Z') {
		return nil, false
	}
	enc, err := p.parseEncoding(false)
	if err != nil {
		p.restore(m)
		return nil, false
	}
	if !p.cur.acceptChar('E') {
		p.restore(m)
		return nil, false
	}
	ln := newNode(tagLocalName)
	ln.entry = enc

	if p.cur.acceptChar('s') {
		lit := newNode(tagName)
		lit.val = []byte("string literal")
		ln.name = lit
		p.parseDiscriminator()
		return ln, true
	}
	if p.cur.acceptChar('d') {
		p.parseNonNegInteger() // default-arg index, discarded
		p.cur.acceptChar('_')
		name, _, ok := p.parseName(false)
		if !ok {
			p.restore(m)
			return nil, false
		}
		ln.name = name
		return ln, true
	}
	name, _, ok := p.parseName(false)
	if !ok {
		p.restore(m)
		return nil, false
	}
	ln.name = name
	p.parseDiscriminator()
	return ln, true
}

func (p *parser) parseDiscriminator() {
	if p.cur.acceptChar('_') {
		if p.cur.acceptChar('_') {
			p.parseNonNegInteger()
			p.cur.acceptChar('_')
		} else {
			p.parseNonNegInteger()
		}
	}
}

// -------------------- unqualified names (§4.5.2) --------------------

func (p *parser) parseUnqualifiedName() (*node, bool) {
	return p.parseUnqualifiedNameIn(nil)
}

func (p *parser) parseUnqualifiedNameIn(scope *node) (*node, bool) {
	p.lastComponentWasCtorDtorOrConv = false
	m := p.mark()

	if mod, ok := p.parseModuleName(); ok {
		_ = mod // module-qualified unqualified names are rare; fall through to name parse after consuming
	} else {
		p.restore(m)
	}

	p.cur.acceptChar('F') // member-like friend marker, no print effect
	p.cur.acceptChar('L') // internal linkage, no print effect

	if p.cur.acceptStr("DC") {
		m2 := newMany(", ")
		for {
			sn, ok := p.parseSourceName()
			if !ok {
				break
			}
			m2.append(sn)
			if !p.cur.acceptChar('E') {
				continue
			}
			break
		}
		wrap := newNode(tagStructuredBinding)
		wrap.children = m2.children
		return wrap, true
	}

	if p.cur.peek() == 'U' {
		if n, ok := p.parseUnnamedTypeName(); ok {
			return n, true
		}
	}

	if scope != nil && (p.cur.peek() == 'C' || p.cur.peek() == 'D') {
		if n, ok := p.parseCtorDtorName(scope); ok {
			p.lastComponentWasCtorDtorOrConv = true
			return p.parseAbiTags(n), true
		}
	}

	if p.cur.acceptStr("12_GLOBAL__N_1") {
		n := newNode(tagAnonymousNamespace)
		n.val = []byte("(anonymous namespace)")
		return n, true
	}

	if isDigit(p.cur.peek()) {
		n, ok := p.parseSourceName()
		if ok {
			return p.parseAbiTags(n), true
		}
	}

	if n, ok := p.parseOperatorName(); ok {
		if n.tg == tagConvOpTy {
			p.lastComponentWasCtorDtorOrConv = true
		}
		return p.parseAbiTags(n), true
	}

	p.restore(m)
	return nil, false
}

// parseCtorDtorName parses C1/C2/C3/CI1.../D0/D1/D2 (§4.5.2, §4.7). The
// scope pointer is non-owning: the printer descends it later to find
// the base name, never cloning through it (§3.2 Ownership).
func (p *parser) parseCtorDtorName(scope *node) (*node, bool) {
	m := p.mark()
	if p.cur.acceptChar('C') {
		switch p.cur.peek() {
		case '1', '2', '3':
			p.cur.advance()
			n := newNode(tagCtorDtorName)
			n.scope = scope
			return n, true
		case 'I':
			p.cur.advance()
			// inheriting constructor: CI1<base-class> or CI2<base-class>,
			// optionally followed by a ctor kind digit
			if p.cur.peek() != '1' && p.cur.peek() != '2' {
				p.restore(m)
				return nil, false
			}
			p.cur.advance()
			if _, ok := p.parseType(); !ok {
				p.restore(m)
				return nil, false
			}
			if p.cur.peek() == '1' || p.cur.peek() == '2' || p.cur.peek() == '3' {
				p.cur.advance()
			}
			n := newNode(tagCtorDtorName)
			n.scope = scope
			return n, true
		}
		p.restore(m)
		return nil, false
	}
	if p.cur.acceptChar('D') {
		switch p.cur.peek() {
		case '0', '1', '2', '5':
			p.cur.advance()
			n := newNode(tagCtorDtorName)
			n.scope = scope
			n.isDtor = true
			return n, true
		}
		p.restore(m)
		return nil, false
	}
	return nil, false
}

// parseUnnamedTypeName parses U[lambda: Ul<params>E[n]_ | t[n]_] (§4.5.2).
func (p *parser) parseUnnamedTypeName() (*node, bool) {
	m := p.mark()
	if !p.cur.acceptChar('U') {
		return nil, false
	}
	if p.cur.acceptChar('t') {
		n := newNode(tagUnnamedType)
		n.count, _ = p.parseUnnamedCounter()
		if !p.cur.acceptChar('_') {
			p.restore(m)
			return nil, false
		}
		return n, true
	}
	if p.cur.acceptStr("lsr") {
		// Apple block extension "Ulsr..." treated as a closure too.
	} else if !p.cur.acceptChar('l') {
		p.restore(m)
		return nil, false
	}
	return p.parseClosureTypeNameBody(m)
}

func (p *parser) parseClosureTypeName() (*node, bool) {
	m := p.mark()
	if !p.cur.acceptStr("Ul") {
		return nil, false
	}
	return p.parseClosureTypeNameBody(m)
}

func (p *parser) parseClosureTypeNameBody(m parseMark) (*node, bool) {
	n := newNode(tagClosureTyName)
	var tparams *node
	var frame []*node
	if p.cur.peek() == 'T' || p.cur.peek() == 'Q' {
		tparams = newMany(", ")
		for {
			tp, ok := p.parseTemplateParamDecl()
			if !ok {
				break
			}
			tparams.append(tp)
			ph := newNode(tagName)
			ph.val = []byte("auto:" + itoa(len(frame)+1))
			frame = append(frame, ph)
		}
	}
	n.name = tparams

	// A generic lambda's own template-param decls (parsed above) must
	// be live as the innermost (level 0) frame while its parameter
	// list is parsed, so a bare T_/T0_ there binds to the lambda's own
	// "auto:N" placeholder rather than an enclosing template's args
	// (§4.5.2, one of the three tag-templates contexts in spec.md:60).
	prevLevel := p.parseLambdaParamsAtLevel
	if frame != nil {
		p.pushTemplateFrame(frame)
		p.parseLambdaParamsAtLevel = len(p.frames) - 1
	}
	params := newMany(", ")
	for {
		t, ok := p.parseType()
		if !ok {
			break
		}
		params.append(t)
	}
	if frame != nil {
		p.popTemplateFrame()
	}
	p.parseLambdaParamsAtLevel = prevLevel
	if !p.cur.acceptChar('E') {
		p.restore(m)
		return nil, false
	}
	n.params = params
	n.count, _ = p.parseUnnamedCounter()
	if !p.cur.acceptChar('_') {
		p.restore(m)
		return nil, false
	}
	return n, true
}

func (p *parser) parseUnnamedCounter() ([]byte, bool) {
	if p.cur.peek() == '_' {
		return nil, true
	}
	start := p.cur.cur
	if _, ok := p.parseNonNegInteger(); !ok {
		return nil, false
	}
	return p.cur.data[start:p.cur.cur], true
}

func (p *parser) parseTemplateParamDecl() (*node, bool) {
	m := p.mark()
	if !p.cur.acceptChar('T') {
		return nil, false
	}
	switch p.cur.peek() {
	case 'y', 'n', 't', 'p', 'k':
		sub := p.cur.peek()
		p.cur.advance()
		n := newNode(tagTemplateParamDecl)
		n.sub = int(sub)
		if sub == 'p' || sub == 'k' {
			if _, ok := p.parseTemplateParamDecl(); !ok {
				p.restore(m)
				return nil, false
			}
		}
		return n, true
	}
	p.restore(m)
	return nil, false
}

// -------------------- operators (§4.5.3) --------------------

func (p *parser) parseOperatorName() (*node, bool) {
	m := p.mark()

	if p.cur.acceptStr("cv") {
		save := p.permitForwardTemplateRefs
		p.permitForwardTemplateRefs = true
		t, ok := p.parseType()
		p.permitForwardTemplateRefs = save
		if !ok {
			p.restore(m)
			return nil, false
		}
		n := newNode(tagConvOpTy)
		n.inner = t
		return n, true
	}
	if p.cur.acceptStr("li") {
		sn, ok := p.parseSourceName()
		if !ok {
			p.restore(m)
			return nil, false
		}
		n := newNode(tagName)
		n.val = append([]byte(`operator"" `), sn.val...)
		return n, true
	}
	if p.cur.peek() == 'v' && isDigit(p.cur.peekAt(1)) {
		p.cur.advance()
		p.cur.advance()
		sn, ok := p.parseSourceName()
		if !ok {
			p.restore(m)
			return nil, false
		}
		n := newNode(tagName)
		n.val = append([]byte("operator "), sn.val...)
		return n, true
	}

	if p.cur.remaining() < 2 {
		return nil, false
	}
	code := string(p.cur.data[p.cur.cur : p.cur.cur+2])
	info, ok := operatorLookup(code)
	if !ok {
		return nil, false
	}
	p.cur.advance()
	p.cur.advance()
	n := newNode(tagName)
	switch info.kind {
	case opArray:
		n.val = []byte("operator[]")
	case opCall:
		n.val = []byte("operator()")
	case opNamedCast:
		n.val = []byte("operator " + info.spelling)
	default:
		n.val = []byte("operator" + info.spelling)
	}
	n.sub = int(info.kind)
	n.pr = info.prec
	n.op = code
	return n, true
}

// -------------------- types (§4.5.4) --------------------

var builtinTypeNames = map[byte]string{
	'v': "void", 'w': "wchar_t", 'b': "bool", 'c': "char",
	'a': "signed char", 'h': "unsigned char", 's': "short",
	't': "unsigned short", 'i': "int", 'j': "unsigned int",
	'l': "long", 'm': "unsigned long", 'x': "long long",
	'y': "unsigned long long", 'n': "__int128", 'o': "unsigned __int128",
	'f': "float", 'd': "double", 'e': "long double", 'g': "__float128",
	'z': "...",
}

var extendedBuiltinNames = map[string]string{
	"Dd": "decimal64", "De": "decimal128", "Df": "decimal32",
	"Dh": "decimal16", "Di": "char32_t", "Ds": "char16_t",
	"Du": "char8_t", "Da": "auto", "Dc": "decltype(auto)",
	"Dn": "decltype(nullptr)",
}

func (p *parser) parseType() (*node, bool) {
	if err := p.enter(); err != nil {
		return nil, false
	}
	defer p.leave()

	n, substitutable, ok := p.parseTypeInner()
	if !ok {
		return nil, false
	}
	if substitutable {
		p.appendSubstitution(n)
	}
	return n, true
}

func (p *parser) parseTypeInner() (*node, bool, bool) {
	switch p.cur.peek() {
	case 'F':
		t, ok := p.parseFunctionType()
		return t, ok, ok
	case 'r', 'V', 'K':
		m := p.mark()
		cv := p.parseCVQualifiers()
		if cv == 0 {
			p.restore(m)
			break
		}
		inner, ok := p.parseType()
		if !ok {
			p.restore(m)
			return nil, false, false
		}
		n := newNode(tagQualifiedType)
		n.inner = inner
		n.cv = cv
		return n, true, true
	case 'U':
		if t, ok := p.parseUnnamedTypeName(); ok {
			return t, true, true
		}
		if t, ok := p.parseVendorExtQualified(); ok {
			return t, true, true
		}
	case 'M':
		if t, ok := p.parsePointerToMemberType(); ok {
			return t, true, true
		}
	case 'A':
		if t, ok := p.parseArrayType(); ok {
			return t, true, true
		}
	case 'C':
		m := p.mark()
		p.cur.advance()
		inner, ok := p.parseType()
		if ok {
			n := newNode(tagComplexType)
			n.inner = inner
			return n, true, true
		}
		p.restore(m)
	case 'G':
		m := p.mark()
		p.cur.advance()
		inner, ok := p.parseType()
		if ok {
			n := newNode(tagImaginaryType)
			n.inner = inner
			return n, true, true
		}
		p.restore(m)
	case 'P':
		m := p.mark()
		p.cur.advance()
		inner, ok := p.parseType()
		if !ok {
			p.restore(m)
			break
		}
		n := newNode(tagPointerType)
		n.inner = inner
		return n, true, true
	case 'R':
		m := p.mark()
		p.cur.advance()
		inner, ok := p.parseType()
		if !ok {
			p.restore(m)
			break
		}
		return collapseRef(tagReferenceType, inner), true, true
	case 'O':
		m := p.mark()
		p.cur.advance()
		inner, ok := p.parseType()
		if !ok {
			p.restore(m)
			break
		}
		return collapseRef(tagRvalueReferenceType, inner), true, true
	}

	if p.cur.acceptStr("Dp") {
		inner, ok := p.parseType()
		if !ok {
			return nil, false, false
		}
		n := newNode(tagParameterPackExpansion)
		n.inner = inner
		return n, true, true
	}
	if p.cur.acceptStr("Dv") {
		n, ok := p.parseVectorType()
		return n, ok, ok
	}
	if p.cur.peek() == 'D' && (p.cur.peekAt(1) == 't' || p.cur.peekAt(1) == 'T') {
		n, ok := p.parseDecltype()
		return n, ok, ok
	}
	if p.cur.peek() == 'T' && p.cur.peekAt(1) != 'L' && !isUpperOrDigit(p.cur.peekAt(1)) || p.cur.peek() == 'T' && (isDigit(p.cur.peekAt(1)) || p.cur.peekAt(1) == '_') {
		m := p.mark()
		tp, ok := p.parseTemplateParamOrForwardRef()
		if ok {
			if p.cur.peek() == 'I' {
				args, ok := p.parseTemplateArgsWithMode(false)
				if !ok {
					p.restore(m)
					return nil, false, false
				}
				n := newNode(tagNameWithTemplateArgs)
				n.name = tp
				n.children = args
				return n, true, true
			}
			return tp, true, true
		}
		p.restore(m)
	}
	if p.cur.peek() == 'T' && p.cur.peekAt(1) == 'L' {
		m := p.mark()
		tp, ok := p.parseTemplateParamOrForwardRef()
		if ok {
			return tp, true, true
		}
		p.restore(m)
	}
	if p.cur.acceptStr("St") {
		raw, ok := p.parseUnqualifiedName()
		if !ok {
			return nil, false, false
		}
		n := newNode(tagQualifiedStdName)
		n.name = raw
		p.appendSubstitution(n)
		if p.cur.peek() == 'I' {
			args, ok := p.parseTemplateArgsWithMode(false)
			if !ok {
				return nil, false, false
			}
			w := newNode(tagNameWithTemplateArgs)
			w.name = n
			w.children = args
			return w, true, true
		}
		// already appended above: do not let parseType add it again
		return n, false, true
	}
	if p.cur.peek() == 'S' {
		m := p.mark()
		sub, ok := p.parseSubstitution()
		if ok {
			if p.cur.peek() == 'I' {
				args, ok := p.parseTemplateArgsWithMode(false)
				if !ok {
					p.restore(m)
					return nil, false, false
				}
				n := newNode(tagNameWithTemplateArgs)
				n.name = sub
				n.children = args
				return n, true, true
			}
			return sub, false, true
		}
		p.restore(m)
	}
	if p.cur.acceptStr("Ts") || p.cur.acceptStr("Tu") || p.cur.acceptStr("Te") {
		// class-enum-type elaboration prefix: no printed effect here.
	}
	if p.cur.peek() == 'N' || p.cur.peek() == 'Z' {
		m := p.mark()
		n, _, ok := p.parseName(false)
		if ok {
			return n, true, true
		}
		p.restore(m)
	}
	if n, ok := p.parseBuiltinType(); ok {
		return n, n.tg == tagVendorExtQualified, true
	}
	if isDigit(p.cur.peek()) {
		sn, ok := p.parseSourceName()
		if ok {
			n := sn
			if p.cur.peek() == 'I' {
				args, ok := p.parseTemplateArgsWithMode(false)
				if ok {
					w := newNode(tagNameWithTemplateArgs)
					w.name = n
					w.children = args
					n = w
				}
			}
			return n, true, true
		}
	}
	return nil, false, false
}

// collapseRef implements reference collapsing (&+&=&, &+&&=&, &&+&=&,
// &&+&&=&&) when stacking R/O during parsing (§4.5.4). Only a directly
// nested reference collapses; a reference under a cv-qualifier is kept.
func collapseRef(outer tag, inner *node) *node {
	switch inner.tg {
	case tagReferenceType:
		return inner
	case tagRvalueReferenceType:
		if outer == tagReferenceType {
			n := newNode(tagReferenceType)
			n.inner = inner.inner
			return n
		}
		return inner
	}
	n := newNode(outer)
	n.inner = inner
	return n
}

func (p *parser) parseVendorExtQualified() (*node, bool) {
	m := p.mark()
	if !p.cur.acceptChar('U') {
		return nil, false
	}
	sn, ok := p.parseSourceName()
	if !ok {
		p.restore(m)
		return nil, false
	}
	n := newNode(tagVendorExtQualified)
	n.vendorExt = sn.val
	if p.cur.peek() == 'I' {
		args, ok := p.parseTemplateArgsWithMode(false)
		if !ok {
			p.restore(m)
			return nil, false
		}
		n.children = args
	}
	inner, ok := p.parseType()
	if !ok {
		p.restore(m)
		return nil, false
	}
	n.inner = inner
	return n, true
}

func (p *parser) parseBuiltinType() (*node, bool) {
	b := p.cur.peek()
	if name, ok := builtinTypeNames[b]; ok {
		p.cur.advance()
		n := newNode(tagBuiltinType)
		n.val = []byte(name)
		return n, true
	}
	if b == 'D' {
		two := string(p.cur.data[p.cur.cur:min(p.cur.cur+2, len(p.cur.data))])
		if name, ok := extendedBuiltinNames[two]; ok {
			p.cur.advance()
			p.cur.advance()
			n := newNode(tagBuiltinType)
			n.val = []byte(name)
			return n, true
		}
		if p.cur.acceptStr("DF") {
			n, ok := p.parseBitIntOrFloatN()
			return n, ok
		}
		if p.cur.acceptStr("DB") || p.cur.acceptStr("DU") {
			n, ok := p.parseBitIntSized()
			return n, ok
		}
		if p.cur.acceptStr("DA") {
			if _, ok := p.parseNonNegInteger(); ok {
				n := newNode(tagBuiltinType)
				n.val = []byte("auto")
				return n, true
			}
		}
		if p.cur.acceptStr("DR") {
			if _, ok := p.parseType(); ok {
				n := newNode(tagBuiltinType)
				n.val = []byte("decltype(auto)")
				return n, true
			}
		}
		if p.cur.acceptStr("DS") {
			n := newNode(tagBuiltinType)
			n.val = []byte("char32_t")
			return n, true
		}
	}
	if b == 'u' {
		m := p.mark()
		p.cur.advance()
		sn, ok := p.parseSourceName()
		if !ok {
			p.restore(m)
			return nil, false
		}
		n := newNode(tagVendorExtQualified)
		n.vendorExt = sn.val
		if p.cur.peek() == 'I' {
			args, ok := p.parseTemplateArgsWithMode(false)
			if ok {
				n.children = args
			}
		}
		return n, true
	}
	return nil, false
}

func (p *parser) parseBitIntOrFloatN() (*node, bool) {
	width, ok := p.parseNonNegInteger()
	if !ok {
		return nil, false
	}
	p.cur.acceptChar('x')
	n := newNode(tagBuiltinType)
	n.val = []byte("_Float" + itoa(width))
	return n, true
}

func (p *parser) parseBitIntSized() (*node, bool) {
	width, ok := p.parseNonNegInteger()
	if !ok {
		return nil, false
	}
	n := newNode(tagBuiltinType)
	n.val = []byte("unsigned _BitInt(" + itoa(width) + ")")
	return n, true
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func (p *parser) parseFunctionType() (*node, bool) {
	m := p.mark()
	if !p.cur.acceptChar('F') {
		return nil, false
	}
	n := newNode(tagFunctionType)
	p.cur.acceptChar('Y') // extern "C", no printed effect
	ret, ok := p.parseType()
	if !ok {
		p.restore(m)
		return nil, false
	}
	n.ret = ret
	params := newMany(", ")
	for {
		if p.cur.peek() == 'v' && len(params.children) == 0 {
			p.cur.advance()
			break
		}
		t, ok := p.parseType()
		if !ok {
			break
		}
		params.append(t)
	}
	n.params = params
	if exc, ok := p.parseExceptionSpec(); ok {
		n.exceptionSpec = exc
	}
	n.ref = p.parseRefQualifiers()
	if !p.cur.acceptChar('E') {
		p.restore(m)
		return nil, false
	}
	return n, true
}

func (p *parser) parseExceptionSpec() (*node, bool) {
	if p.cur.acceptStr("Do") {
		n := newNode(tagNoexceptSpec)
		return n, true
	}
	if p.cur.acceptStr("DO") {
		expr, ok := p.parseExpression()
		if !ok || !p.cur.acceptChar('E') {
			return nil, false
		}
		n := newNode(tagComputedNoexceptSpec)
		n.inner = expr
		return n, true
	}
	if p.cur.acceptStr("Dw") {
		n := newNode(tagDynamicExceptionSpec)
		m := newMany(", ")
		for {
			t, ok := p.parseType()
			if !ok {
				break
			}
			m.append(t)
		}
		if !p.cur.acceptChar('E') {
			return nil, false
		}
		n.children = m.children
		return n, true
	}
	return nil, false
}

func (p *parser) parseArrayType() (*node, bool) {
	m := p.mark()
	if !p.cur.acceptChar('A') {
		return nil, false
	}
	n := newNode(tagArrayType)
	if dim, ok := p.parseNonNegInteger(); ok {
		dn := newNode(tagBuiltinType)
		dn.val = []byte(itoa(dim))
		n.lhs = dn
	} else if p.cur.peek() != '_' {
		expr, ok := p.parseExpression()
		if ok {
			n.lhs = expr
		}
	}
	if !p.cur.acceptChar('_') {
		p.restore(m)
		return nil, false
	}
	inner, ok := p.parseType()
	if !ok {
		p.restore(m)
		return nil, false
	}
	n.inner = inner
	return n, true
}

func (p *parser) parseVectorType() (*node, bool) {
	n := newNode(tagVectorType)
	if dim, ok := p.parseNonNegInteger(); ok {
		dn := newNode(tagBuiltinType)
		dn.val = []byte(itoa(dim))
		n.lhs = dn
	} else if p.cur.peek() != '_' {
		expr, ok := p.parseExpression()
		if ok {
			n.lhs = expr
		}
	}
	if !p.cur.acceptChar('_') {
		return nil, false
	}
	inner, ok := p.parseType()
	if !ok {
		return nil, false
	}
	n.inner = inner
	return n, true
}

func (p *parser) parsePointerToMemberType() (*node, bool) {
	m := p.mark()
	if !p.cur.acceptChar('M') {
		return nil, false
	}
	class, ok := p.parseType()
	if !ok {
		p.restore(m)
		return nil, false
	}
	member, ok := p.parseType()
	if !ok {
		p.restore(m)
		return nil, false
	}
	n := newNode(tagPointerToMemberType)
	n.lhs = class
	n.rhs = member
	return n, true
}

func (p *parser) parseDecltype() (*node, bool) {
	m := p.mark()
	if !p.cur.acceptStr("Dt") && !p.cur.acceptStr("DT") {
		return nil, false
	}
	expr, ok := p.parseExpression()
	if !ok || !p.cur.acceptChar('E') {
		p.restore(m)
		return nil, false
	}
	n := newNode(tagDecltypeType)
	n.inner = expr
	return n, true
}

// -------------------- template args/params (§4.5.6) --------------------

func (p *parser) parseTemplateArgsWithMode(tagTemplates bool) ([]*node, bool) {
	m := p.mark()
	if !p.cur.acceptChar('I') {
		return nil, false
	}
	var args []*node
	for p.cur.peek() != 'E' {
		arg, ok := p.parseTemplateArg()
		if !ok {
			p.restore(m)
			return nil, false
		}
		if p.cur.acceptChar('Q') {
			if _, ok := p.parseExpression(); !ok {
				p.restore(m)
				return nil, false
			}
			p.cur.acceptChar('E')
		}
		args = append(args, arg)
	}
	p.cur.advance() // E
	if tagTemplates {
		p.replaceCurrentFrame(cloneAll(args))
	} else if len(p.frames) == 0 {
		p.pushTemplateFrame(cloneAll(args))
	}
	return args, true
}

func cloneAll(ns []*node) []*node {
	out := make([]*node, len(ns))
	for i, n := range ns {
		out[i] = n.clone()
	}
	return out
}

func (p *parser) parseTemplateArg() (*node, bool) {
	if p.cur.acceptChar('X') {
		expr, ok := p.parseExpression()
		if !ok || !p.cur.acceptChar('E') {
			return nil, false
		}
		return expr, true
	}
	if p.cur.acceptChar('J') {
		n := newNode(tagTemplateArgumentPack)
		for p.cur.peek() != 'E' {
			arg, ok := p.parseTemplateArg()
			if !ok {
				return nil, false
			}
			n.append(arg)
		}
		p.cur.advance()
		wrap := newNode(tagParameterPack)
		wrap.children = n.children
		return wrap, true
	}
	if p.cur.peek() == 'L' {
		return p.parseExprPrimary()
	}
	if p.cur.peek() == 'T' {
		if tp, ok := p.parseTemplateParamDecl(); ok {
			return tp, true
		}
	}
	return p.parseType()
}

// parseTemplateParamOrForwardRef implements T_ / T<n>_ / TL<n>_<m>_
// (§3.4, §4.5). When permitForwardTemplateRefs is set and the index is
// not yet bound, a FwdTemplateRef node is produced instead of failing.
func (p *parser) parseTemplateParamOrForwardRef() (*node, bool) {
	m := p.mark()
	if !p.cur.acceptChar('T') {
		return nil, false
	}
	level := 0
	if p.cur.acceptChar('L') {
		lvl, ok := p.parseNonNegInteger()
		if !ok || !p.cur.acceptChar('_') {
			p.restore(m)
			return nil, false
		}
		level = lvl + 1
	}
	index := 0
	if !p.cur.acceptChar('_') {
		n, ok := p.parseNonNegInteger()
		if !ok || !p.cur.acceptChar('_') {
			p.restore(m)
			return nil, false
		}
		index = n + 1
	}
	if target, ok := p.templateParamGet(level, index); ok {
		return target.clone(), true
	}
	if p.permitForwardTemplateRefs {
		fw := p.newForwardRef(level, index)
		n := newNode(tagFwdTemplateRef)
		n.fwd = fw
		n.level = level
		n.index = index
		return n, true
	}
	p.restore(m)
	return nil, false
}

// -------------------- substitutions (§3.3, §4.5.4) --------------------

var specialSubCodes = map[string]specialSubKind{
	"St": specStd, "Sa": specAllocator, "Sb": specBasicString,
	"Ss": specString, "Si": specIstream, "So": specOstream, "Sd": specIostream,
}

func (p *parser) parseSubstitution() (*node, bool) {
	m := p.mark()
	if !p.cur.acceptChar('S') {
		return nil, false
	}
	if p.cur.remaining() >= 1 {
		two := "S" + string(p.cur.peek())
		if kind, ok := specialSubCodes[two]; ok {
			p.cur.advance()
			n := newNode(tagSpecialSubstitution)
			n.specKind = kind
			return n, true
		}
	}
	if p.cur.acceptChar('_') {
		target, ok := p.substituteGet(0)
		if !ok {
			p.restore(m)
			return nil, false
		}
		return target, true
	}
	id36, ok := p.parseBase36()
	if !ok || !p.cur.acceptChar('_') {
		p.restore(m)
		return nil, false
	}
	target, ok := p.substituteGet(id36 + 1)
	if !ok {
		p.restore(m)
		return nil, false
	}
	return target, true
}

// -------------------- special names (§4.5.1, §4.7) --------------------

func (p *parser) parseSpecialName() (*node, bool) {
	m := p.mark()
	switch {
	case p.cur.acceptStr("TV"):
		return p.specialOf(m, "vtable for ")
	case p.cur.acceptStr("TT"):
		return p.specialOf(m, "VTT for ")
	case p.cur.acceptStr("TI"):
		return p.specialOf(m, "typeinfo for ")
	case p.cur.acceptStr("TS"):
		return p.specialOf(m, "typeinfo name for ")
	case p.cur.acceptStr("Tc"):
		if _, ok := p.parseCallOffset(); !ok {
			p.restore(m)
			return nil, false
		}
		if _, ok := p.parseCallOffset(); !ok {
			p.restore(m)
			return nil, false
		}
		return p.specialOf(m, "covariant return thunk to ")
	case p.cur.acceptStr("GV"):
		return p.specialOf(m, "guard variable for ")
	case p.cur.acceptStr("GR"):
		nm, _, ok := p.parseName(true)
		if !ok {
			p.restore(m)
			return nil, false
		}
		p.parseNonNegInteger()
		p.cur.acceptChar('_')
		res := newNode(tagSpecialName)
		res.name = nm
		res.val = []byte("reference temporary for ")
		return res, true
	case p.cur.acceptStr("GTt"):
		return p.specialOf(m, "transaction clone for ")
	case p.cur.acceptStr("TW"):
		return p.specialOf(m, "thread-local wrapper routine for ")
	case p.cur.acceptStr("TH"):
		return p.specialOf(m, "thread-local initialization routine for ")
	case p.cur.acceptStr("TA"):
		arg, ok := p.parseTemplateArg()
		if !ok {
			p.restore(m)
			return nil, false
		}
		res := newNode(tagSpecialName)
		res.name = arg
		res.val = []byte("template parameter object for ")
		return res, true
	case p.cur.acceptStr("TC"):
		if _, ok := p.parseType(); !ok {
			p.restore(m)
			return nil, false
		}
		p.parseNonNegInteger()
		p.cur.acceptChar('_')
		if _, ok := p.parseType(); !ok {
			p.restore(m)
			return nil, false
		}
		return p.specialOf(m, "construction vtable for ")
	case p.cur.peek() == 'T' && (p.cur.peekAt(1) == 'v' || p.cur.peekAt(1) == 'V'):
		p.cur.advance()
		p.cur.advance()
		if _, ok := p.parseCallOffset(); !ok {
			p.restore(m)
			return nil, false
		}
		return p.specialOf(m, "virtual thunk to ")
	}
	p.restore(m)
	return nil, false
}

func (p *parser) specialOf(m parseMark, prefix string) (*node, bool) {
	nm, _, ok := p.parseName(true)
	if !ok {
		p.restore(m)
		return nil, false
	}
	if err := p.resolveForwardRefs(); err != nil {
		p.restore(m)
		return nil, false
	}
	n := newNode(tagSpecialName)
	n.name = nm
	n.val = []byte(prefix)
	return n, true
}

func (p *parser) parseCallOffset() (*node, bool) {
	m := p.mark()
	if p.cur.acceptChar('h') {
		p.parseNumber()
		if !p.cur.acceptChar('_') {
			p.restore(m)
			return nil, false
		}
		return newNode(tagName), true
	}
	if p.cur.acceptChar('v') {
		p.parseNumber()
		if !p.cur.acceptChar('_') {
			p.restore(m)
			return nil, false
		}
		p.parseNumber()
		if !p.cur.acceptChar('_') {
			p.restore(m)
			return nil, false
		}
		return newNode(tagName), true
	}
	p.restore(m)
	return nil, false
}

// -------------------- expressions (§4.5.5) --------------------

func (p *parser) parseExpression() (*node, bool) {
	if err := p.enter(); err != nil {
		return nil, false
	}
	defer p.leave()

	switch {
	case p.cur.acceptStr("il"):
		return p.parseBracedList(tagInitListExpr, "")
	case p.cur.acceptStr("tl"):
		t, ok := p.parseType()
		if !ok {
			return nil, false
		}
		n, ok := p.parseBracedList(tagInitListExpr, "")
		if !ok {
			return nil, false
		}
		n.inner = t
		return n, true
	case p.cur.acceptStr("fL"):
		return p.parseFoldExpr("...", true)
	case p.cur.acceptStr("fR"):
		return p.parseFoldExpr("...", false)
	case p.cur.acceptStr("fl"):
		return p.parseFoldExpr("", true)
	case p.cur.acceptStr("fr"):
		return p.parseFoldExpr("", false)
	case p.cur.acceptStr("ti"):
		return p.unaryExpr("typeid (", ")", p.parseType)
	case p.cur.acceptStr("te"):
		return p.unaryExpr("typeid (", ")", p.parseExpressionAsAny)
	case p.cur.acceptStr("sZ"):
		return p.parseSizeofParamPack()
	case p.cur.acceptStr("sP"):
		return p.parsePackSizeofExprList()
	case p.cur.acceptStr("sp"):
		inner, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		n := newNode(tagPackExpansionExpr)
		n.inner = inner
		return n, true
	case p.cur.acceptStr("nx"):
		return p.unaryExpr("noexcept (", ")", p.parseExpressionAsAny)
	case p.cur.acceptStr("tw"):
		inner, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		n := newNode(tagThrowExpr)
		n.inner = inner
		n.pr = precUnary
		return n, true
	case p.cur.acceptStr("tr"):
		n := newNode(tagThrowExpr)
		n.val = []byte("throw")
		n.pr = precUnary
		return n, true
	}

	if b2 := p.peekTwo(); b2 == "cc" || b2 == "dc" || b2 == "sc" || b2 == "rc" {
		return p.parseNamedCast(b2)
	}
	if p.cur.acceptStr("cv") {
		return p.parseFunctionalCast()
	}
	if p.cur.acceptStr("nw") || p.cur.acceptStr("na") {
		return p.parseNewExpr(false)
	}
	if p.cur.acceptStr("gs") {
		if p.cur.acceptStr("nw") || p.cur.acceptStr("na") {
			return p.parseNewExpr(true)
		}
		if p.cur.acceptStr("dl") || p.cur.acceptStr("da") {
			return p.parseDeleteExpr(true)
		}
		// ::-qualified name
		n, _, ok := p.parseName(false)
		if !ok {
			return nil, false
		}
		wrap := newNode(tagUnresolvedName)
		wrap.val = []byte("::")
		wrap.inner = n
		return wrap, true
	}
	if p.cur.acceptStr("dl") || p.cur.acceptStr("da") {
		return p.parseDeleteExpr(false)
	}
	if p.cur.peek() == 'L' {
		return p.parseExprPrimary()
	}
	if p.cur.peek() == 'T' {
		m := p.mark()
		tp, ok := p.parseTemplateParamOrForwardRef()
		if ok {
			return tp, true
		}
		p.restore(m)
	}
	if p.cur.peek() == 'f' && isDigit(p.cur.peekAt(1)) {
		return p.parseFunctionParam()
	}

	// Generic operator-table-driven forms: prefix/postfix/binary/
	// ternary/member/array/call/ptr-mem.
	if b2 := p.peekTwo(); b2 != "" {
		if info, ok := operatorLookup(b2); ok {
			return p.parseOperatorExpr(b2, info)
		}
	}

	// unresolved-name fallback: a bare (possibly qualified) name used
	// as an expression, e.g. inside a requires-clause or noexcept.
	if n, _, ok := p.parseName(false); ok {
		wrap := newNode(tagUnresolvedName)
		wrap.inner = n
		return wrap, true
	}
	return nil, false
}

func (p *parser) parseExpressionAsAny() (*node, bool) { return p.parseExpression() }

func (p *parser) peekTwo() string {
	if p.cur.remaining() < 2 {
		return ""
	}
	return string(p.cur.data[p.cur.cur : p.cur.cur+2])
}

func (c *cursor) peekStrAt(n int, s string) bool {
	if c.cur+n+len(s) > len(c.data) {
		return false
	}
	return string(c.data[c.cur+n:c.cur+n+len(s)]) == s
}

func (p *parser) unaryExpr(prefix, suffix string, sub func() (*node, bool)) (*node, bool) {
	inner, ok := sub()
	if !ok {
		return nil, false
	}
	n := newNode(tagTypeidExpr)
	n.val = []byte(prefix)
	n.inner = inner
	n.op = suffix
	return n, true
}

func (p *parser) parseOperatorExpr(code string, info operatorInfo) (*node, bool) {
	m := p.mark()
	p.cur.advance()
	p.cur.advance()
	switch info.kind {
	case opPrefix, opPostfix:
		operand, ok := p.parseExpression()
		if !ok {
			p.restore(m)
			return nil, false
		}
		tg := tagPrefixExpr
		if info.kind == opPostfix {
			tg = tagPostfixExpr
		}
		n := newNode(tg)
		n.op = info.spelling
		n.inner = operand
		n.pr = info.prec
		return n, true
	case opBinary:
		lhs, ok := p.parseExpression()
		if !ok {
			p.restore(m)
			return nil, false
		}
		rhs, ok := p.parseExpression()
		if !ok {
			p.restore(m)
			return nil, false
		}
		n := newNode(tagBinaryExpr)
		n.op = info.spelling
		n.lhs = lhs
		n.rhs = rhs
		n.pr = info.prec
		return n, true
	case opArray:
		lhs, ok := p.parseExpression()
		if !ok {
			p.restore(m)
			return nil, false
		}
		rhs, ok := p.parseExpression()
		if !ok {
			p.restore(m)
			return nil, false
		}
		n := newNode(tagBinaryExpr)
		n.sub = int(opArray)
		n.lhs = lhs
		n.rhs = rhs
		n.pr = precPostfix
		return n, true
	case opMember, opPtrMem:
		lhs, ok := p.parseExpression()
		if !ok {
			p.restore(m)
			return nil, false
		}
		rhs, ok := p.parseExpression()
		if !ok {
			p.restore(m)
			return nil, false
		}
		n := newNode(tagMemberExpr)
		n.op = info.spelling
		n.lhs = lhs
		n.rhs = rhs
		n.pr = precPostfix
		return n, true
	case opConditional:
		cond, ok := p.parseExpression()
		if !ok {
			p.restore(m)
			return nil, false
		}
		then, ok := p.parseExpression()
		if !ok {
			p.restore(m)
			return nil, false
		}
		els, ok := p.parseExpression()
		if !ok {
			p.restore(m)
			return nil, false
		}
		n := newNode(tagConditionalExpr)
		n.lhs = cond
		n.rhs = then
		n.qual = els
		n.pr = precConditional
		return n, true
	case opOfIdOp:
		if code == "at" || code == "st" {
			if t, ok := p.parseType(); ok {
				n := newNode(tagPrefixExpr)
				n.op = info.spelling
				n.inner = t
				n.pr = precUnary
				return n, true
			}
		}
		operand, ok := p.parseExpression()
		if !ok {
			p.restore(m)
			return nil, false
		}
		n := newNode(tagPrefixExpr)
		n.op = info.spelling
		n.inner = operand
		n.pr = precUnary
		return n, true
	case opCall:
		callee, ok := p.parseExpression()
		if !ok {
			p.restore(m)
			return nil, false
		}
		n := newNode(tagCallExpr)
		n.inner = callee
		n.pr = precPostfix
		for p.exprArgFollows() {
			arg, ok := p.parseExpression()
			if !ok {
				break
			}
			if n.params == nil {
				n.params = newMany(", ")
			}
			n.params.append(arg)
		}
		return n, true
	}
	p.restore(m)
	return nil, false
}

// exprArgFollows is a conservative lookahead used only to decide
// whether more call arguments follow: it never consumes input.
func (p *parser) exprArgFollows() bool {
	return !p.cur.atEnd() && p.cur.peek() != 'E'
}

func (p *parser) parseNamedCast(code string) (*node, bool) {
	m := p.mark()
	p.cur.advance()
	p.cur.advance()
	t, ok := p.parseType()
	if !ok {
		p.restore(m)
		return nil, false
	}
	operand, ok := p.parseExpression()
	if !ok {
		p.restore(m)
		return nil, false
	}
	info, _ := operatorLookup(code)
	n := newNode(tagMemberExpr)
	n.sub = int(opNamedCast)
	n.op = info.spelling
	n.lhs = t
	n.rhs = operand
	n.pr = precPostfix
	return n, true
}

func (p *parser) parseFunctionalCast() (*node, bool) {
	t, ok := p.parseType()
	if !ok {
		return nil, false
	}
	if p.cur.peek() == '_' || p.cur.peek() == 'i' {
		// braced-init functional cast: cv _ <expr>* E, or il...
		if init, ok := p.parseBracedList(tagInitListExpr, ""); ok {
			n := newNode(tagFunctionalCastExpr)
			n.inner = t
			n.params = init
			return n, true
		}
	}
	operand, ok := p.parseExpression()
	if !ok {
		return nil, false
	}
	n := newNode(tagFunctionalCastExpr)
	n.inner = t
	n.rhs = operand
	n.pr = precCast
	return n, true
}

func (p *parser) parseNewExpr(global bool) (*node, bool) {
	n := newNode(tagNewExpr)
	n.isDtor = global // reuse field: prefix with "::" when true
	args := newMany(", ")
	for p.cur.peek() != '_' {
		a, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		args.append(a)
	}
	if !p.cur.acceptChar('_') {
		return nil, false
	}
	n.params = args
	t, ok := p.parseType()
	if !ok {
		return nil, false
	}
	n.inner = t
	if p.cur.acceptStr("pi") {
		init := newMany(", ")
		for p.cur.peek() != 'E' {
			a, ok := p.parseExpression()
			if !ok {
				return nil, false
			}
			init.append(a)
		}
		n.requires = init
	} else if p.cur.peek() == 'i' && p.cur.peekAt(1) == 'l' {
		init, ok := p.parseBracedList(tagInitListExpr, "")
		if !ok {
			return nil, false
		}
		n.requires = init
	}
	p.cur.acceptChar('E')
	return n, true
}

func (p *parser) parseDeleteExpr(global bool) (*node, bool) {
	operand, ok := p.parseExpression()
	if !ok {
		return nil, false
	}
	n := newNode(tagDeleteExpr)
	n.isDtor = global
	n.inner = operand
	n.pr = precUnary
	return n, true
}

func (p *parser) parseFunctionParam() (*node, bool) {
	p.cur.advance() // 'f'
	p.cur.acceptChar('L')
	p.parseNonNegInteger()
	p.cur.acceptChar('p')
	p.cur.acceptChar('_')
	n := newNode(tagUnresolvedName)
	n.val = []byte("{parm}")
	return n, true
}

func (p *parser) parseFoldExpr(ellipsis string, isLeft bool) (*node, bool) {
	// operator code is the two characters immediately following "fL"/"fR"/"fl"/"fr"
	oc := p.peekTwo()
	info, ok := operatorLookup(oc)
	if !ok {
		return nil, false
	}
	p.cur.advance()
	p.cur.advance()
	lhs, ok := p.parseExpression()
	if !ok {
		return nil, false
	}
	n := newNode(tagFoldExpr)
	n.op = info.spelling
	n.isDtor = isLeft
	n.val = []byte(ellipsis)
	n.lhs = lhs
	if p.cur.peek() != 'E' {
		rhs, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		n.rhs = rhs
	}
	if !p.cur.acceptChar('E') {
		return nil, false
	}
	return n, true
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (p *parser) parseBracedList(tg tag, _ string) (*node, bool) {
	m := newMany(", ")
	for p.cur.peek() != 'E' {
		el, ok := p.parseBracedElement()
		if !ok {
			break
		}
		m.append(el)
	}
	if !p.cur.acceptChar('E') {
		return nil, false
	}
	n := newNode(tg)
	n.children = m.children
	return n, true
}

func (p *parser) parseBracedElement() (*node, bool) {
	if p.cur.acceptStr("di") {
		name, ok := p.parseSourceName()
		if !ok {
			return nil, false
		}
		val, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		n := newNode(tagBracedExpr)
		n.name = name
		n.inner = val
		n.val = []byte(".")
		return n, true
	}
	if p.cur.acceptStr("dx") {
		idx, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		val, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		n := newNode(tagBracedExpr)
		n.lhs = idx
		n.inner = val
		n.val = []byte("[")
		return n, true
	}
	if p.cur.acceptStr("dX") {
		lo, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		hi, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		val, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		n := newNode(tagBracedRangeExpr)
		n.lhs = lo
		n.rhs = hi
		n.inner = val
		return n, true
	}
	return p.parseExpression()
}

func (p *parser) parseSizeofParamPack() (*node, bool) {
	if tp, ok := p.parseTemplateParamOrForwardRef(); ok {
		n := newNode(tagSizeofParamPackExpr)
		n.inner = tp
		n.pr = precUnary
		return n, true
	}
	return nil, false
}

func (p *parser) parsePackSizeofExprList() (*node, bool) {
	inner, ok := p.parseExpression()
	if !ok {
		return nil, false
	}
	n := newNode(tagSizeofParamPackExpr)
	n.inner = inner
	n.pr = precUnary
	return n, true
}

// parseExprPrimary parses L...E literal/nested-name/expr-primary forms
// (§4.5.5).
func (p *parser) parseExprPrimary() (*node, bool) {
	m := p.mark()
	if !p.cur.acceptChar('L') {
		return nil, false
	}
	if p.cur.acceptStr("_Z") {
		p.cur.cur -= 2 // parseMangledNameInner expects to see _Z itself
		enc, err := p.parseMangledNameInner()
		if err != nil {
			p.restore(m)
			return nil, false
		}
		if !p.cur.acceptChar('E') {
			p.restore(m)
			return nil, false
		}
		return enc, true
	}
	if p.cur.acceptStr("Pb0") {
		if p.cur.acceptChar('E') {
			n := newNode(tagExprPrimary)
			n.val = []byte("(bool*)0")
			return n, true
		}
	}
	if p.cur.acceptStr("Dn0") {
		if p.cur.acceptChar('E') {
			n := newNode(tagExprPrimary)
			n.val = []byte("nullptr")
			return n, true
		}
	}
	if p.cur.peek() == 'b' {
		if p.cur.acceptStr("b0E") {
			n := newNode(tagExprPrimary)
			n.val = []byte("false")
			return n, true
		}
		if p.cur.acceptStr("b1E") {
			n := newNode(tagExprPrimary)
			n.val = []byte("true")
			return n, true
		}
	}
	// <type> <number> E, or char-like/integer literal forms.
	typ, ok := p.parseType()
	if !ok {
		p.restore(m)
		return nil, false
	}
	start := p.cur.cur
	neg := p.cur.acceptChar('n')
	for isDigit(p.cur.peek()) {
		p.cur.advance()
	}
	digits := p.cur.data[start:p.cur.cur]
	if !p.cur.acceptChar('E') {
		p.restore(m)
		return nil, false
	}
	n := newNode(tagIntegerLiteral)
	n.inner = typ
	n.val = digits
	n.isDtor = neg
	return n, true
}

// parseMangledNameInner re-enters _Z parsing for a nested encoding
// inside an expr-primary (the `_Z<encoding>E` form).
func (p *parser) parseMangledNameInner() (*node, error) {
	if !p.cur.acceptStr("_Z") {
		return nil, ErrNotMangled
	}
	p.cur.acceptChar('L')
	return p.parseEncoding(true)
}
