// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demangle

import "errors"

// Sentinel errors surfaced only at the demangle boundary (§7); every
// internal production failure is a plain "ordered choice didn't match"
// backtrack and never escapes as one of these until every alternative
// at every enclosing level has also failed.
var (
	// ErrNotMangled means the input is not a mangled name this
	// demangler recognizes (§6, §7 "Syntactic").
	ErrNotMangled = errors.New("demangle: not a mangled name")
	// errOutOfRange names the §7 "Resource" failure, but no code path
	// returns it: an out-of-range substitution or template-parameter
	// index, or a length-prefixed field running past the end of input,
	// fails its production and surfaces as ErrNotMangled.
	errOutOfRange = errors.New("demangle: index out of range")
	// errOverflow is returned by enter when parser recursion exceeds
	// maxRecursionDepth. A numeric field that overflows fails its
	// production and surfaces as ErrNotMangled instead.
	errOverflow = errors.New("demangle: recursion depth exceeded")
	// errUnresolvedForwardRef is raised by the post-parse resolution
	// pass (§3.4, §4.6) when a forward template reference's binding
	// frame never appears.
	errUnresolvedForwardRef = errors.New("demangle: unresolved forward template reference")
)

// parseMark is a full parser checkpoint (§4.1, §9): cursor position
// plus the lengths of every append-only table, so that restoring it
// truncates all of them back to their state at the start of the
// alternative that is about to be abandoned.
type parseMark struct {
	cursor    cursorMark
	subsLen   int
	frameLens []int // length of each currently-pushed template frame
	fwdLen    int
}

// parser is the lifetime-of-one-demangle-call context (§3.5). It owns
// the cursor, the substitution table, the template-parameter frame
// stack, the forward-reference list, and the parsing-mode flags.
// Nothing here is shared across calls to Demangle.
type parser struct {
	cur  *cursor
	opts Option

	// §3.3 substitution table: append-only, one entry per
	// substitutable construct, in parse order. Never deduplicated.
	subs []*node

	// §3.4 template-parameter environment: a stack of frames, each an
	// ordered list of template-argument nodes. Levels count from the
	// top: the last frame is level 0 (the current one) and level L is
	// frames[len-1-L]; see templateParamGet.
	frames [][]*node

	// §3.4 forward-reference list: entries created when a template
	// parameter is referenced before its frame exists, resolved in one
	// pass after the enclosing name is complete.
	fwdRefs []*fwdTemplateRef

	// parsing-mode flags (§3.5)
	permitForwardTemplateRefs bool
	notParseTemplateArgs      bool
	parseLambdaParamsAtLevel  int // -1 when not currently inside a lambda param list

	// lastComponentWasCtorDtorOrConv is a one-shot flag set by
	// parseUnqualifiedNameIn/parseNestedNameComponent so parseNestedName can
	// populate nameState.isCtorDtorOrConv without threading an extra
	// return value through every caller.
	lastComponentWasCtorDtorOrConv bool

	depth int // parser recursion guard; the printer keeps its own counter against the same maxRecursionDepth (§5)
}

const maxRecursionDepth = 2048

func newParser(data []byte, opts Option) *parser {
	return &parser{
		cur:                      newCursorAt(data, 0),
		opts:                     opts,
		parseLambdaParamsAtLevel: -1,
	}
}

func (p *parser) mark() parseMark {
	m := parseMark{
		cursor:  p.cur.mark(),
		subsLen: len(p.subs),
		fwdLen:  len(p.fwdRefs),
	}
	m.frameLens = make([]int, len(p.frames))
	for i, f := range p.frames {
		m.frameLens[i] = len(f)
	}
	return m
}

// restore truncates every append-only table back to its recorded
// length and resets the cursor (§4.1). Any nodes an abandoned
// alternative produced are simply unreferenced by the truncation and
// collected by the garbage collector — "dropped" in Go's idiom of
// §4.1's "any AST nodes a failed alternative produced must be dropped
// before restore returns".
func (p *parser) restore(m parseMark) {
	p.cur.restore(m.cursor)
	p.subs = p.subs[:m.subsLen]
	p.fwdRefs = p.fwdRefs[:m.fwdLen]
	// Frames: truncate existing ones and drop any pushed since the mark.
	if len(m.frameLens) <= len(p.frames) {
		p.frames = p.frames[:len(m.frameLens)]
		for i, l := range m.frameLens {
			p.frames[i] = p.frames[i][:l]
		}
	}
}

// appendSubstitution appends n itself (not a copy) to the substitution
// table at the boundary of the production that produced it (§4.4
// Discipline): callers invoke this only after a production fully
// succeeds, never speculatively inside a not-yet-committed
// alternative, so restore's truncation is sufficient to undo it.
func (p *parser) appendSubstitution(n *node) {
	p.subs = append(p.subs, n)
}

// substituteGet resolves S_ (id==0) or S<base36>_ (id==base36+1).
func (p *parser) substituteGet(id int) (*node, bool) {
	if id < 0 || id >= len(p.subs) {
		return nil, false
	}
	return p.subs[id], true
}

func (p *parser) pushTemplateFrame(args []*node) {
	p.frames = append(p.frames, args)
}

func (p *parser) popTemplateFrame() {
	if len(p.frames) > 0 {
		p.frames = p.frames[:len(p.frames)-1]
	}
}

// replaceCurrentFrame clears and replaces the top frame (§4.4, used by
// template_args in tag-templates mode).
func (p *parser) replaceCurrentFrame(args []*node) {
	if len(p.frames) == 0 {
		p.frames = append(p.frames, args)
		return
	}
	p.frames[len(p.frames)-1] = args
}

// templateParamGet resolves T_ / T<n>_ (level 0, the current frame) or
// TL<lvl>_<n>_ (level lvl+1, an outer frame counted down from the top
// of the frame stack).
func (p *parser) templateParamGet(level, index int) (*node, bool) {
	if len(p.frames) == 0 {
		return nil, false
	}
	frameIdx := len(p.frames) - 1 - level
	if frameIdx < 0 || frameIdx >= len(p.frames) {
		return nil, false
	}
	frame := p.frames[frameIdx]
	if index < 0 || index >= len(frame) {
		return nil, false
	}
	return frame[index], true
}

// newForwardRef allocates a forward-reference entry (§3.4) and
// appends it to the per-parse list; the caller wraps it in a
// tagFwdTemplateRef node.
func (p *parser) newForwardRef(level, index int) *fwdTemplateRef {
	f := &fwdTemplateRef{level: level, index: index}
	p.fwdRefs = append(p.fwdRefs, f)
	return f
}

// resolveForwardRefs runs once after the top-level name has been
// fully parsed (§4.6): every recorded forward reference is looked up
// in the (by-then fully populated) template-parameter environment and
// a deep clone of the target is attached. Any reference that still
// cannot be resolved fails the whole parse.
func (p *parser) resolveForwardRefs() error {
	for _, f := range p.fwdRefs {
		if f.ref != nil {
			continue
		}
		target, ok := p.templateParamGet(f.level, f.index)
		if !ok {
			return errUnresolvedForwardRef
		}
		f.ref = target.clone()
	}
	return nil
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > maxRecursionDepth {
		return errOverflow
	}
	return nil
}

func (p *parser) leave() { p.depth-- }
