package span

import (
	"fmt"
	"sync"
)

// Mark identifies a single macro-expansion event. Marks are allocated
// monotonically by the hygiene engine and form a tree through their
// parents. The zero Mark is the root and represents "no expansion".
type Mark uint32

// RootMark is the sentinel parent of all expansions.
const RootMark Mark = 0

// SyntaxContext identifies a chain of expansion Marks. The zero
// context is the empty (root) context.
type SyntaxContext uint32

// EmptyCtxt is the context of code that was never produced by an
// expansion.
const EmptyCtxt SyntaxContext = 0

// Transparency controls how an expansion's marks interact with name
// resolution when a context is projected with Modern or
// ModernAndLegacy.
type Transparency uint8

const (
	// Transparent marks are invisible to both projections.
	Transparent Transparency = iota

	// SemiTransparent marks survive ModernAndLegacy but not Modern.
	// This is the behavior of legacy declarative macros and the
	// default for fresh marks.
	SemiTransparent

	// Opaque marks survive both projections.
	Opaque
)

// ExpnInfo describes an expansion event: where the expansion was
// requested and, when known, where the expanded definition lives.
type ExpnInfo struct {
	// CallSite is the span of the call that triggered the expansion.
	CallSite Span

	// DefSite is the span of the definition being expanded, when the
	// engine knows it.
	DefSite *Span

	// AllowInternalUnstable marks expansions whose output may use
	// compiler-internal helpers.
	AllowInternalUnstable bool
}

type markData struct {
	parent       Mark
	transparency Transparency
	expnInfo     *ExpnInfo
}

type ctxtData struct {
	outerMark Mark
	prev      SyntaxContext

	// Projections of this context, maintained incrementally: opaque
	// keeps only Opaque marks, opaqueAndSemi keeps Opaque and
	// SemiTransparent marks.
	opaque        SyntaxContext
	opaqueAndSemi SyntaxContext
}

type markingKey struct {
	ctxt         SyntaxContext
	mark         Mark
	transparency Transparency
}

// hygieneData is the flat mark/context table. Marks are indices,
// contexts refer to marks by index, and expansion info refers to spans
// by handle, which keeps the mark -> info -> span -> context graph
// acyclic at the ownership level.
type hygieneData struct {
	mu       sync.Mutex
	marks    []markData
	ctxts    []ctxtData
	markings map[markingKey]SyntaxContext
}

func (h *hygieneData) init() {
	h.marks = []markData{{parent: RootMark, transparency: Opaque}}
	h.ctxts = []ctxtData{{}}
	h.markings = make(map[markingKey]SyntaxContext)
}

func hygiene() *hygieneData { return &curGlobals().hygiene }

// FreshMark allocates a new expansion mark below parent.
func FreshMark(parent Mark) Mark {
	h := hygiene()
	h.mu.Lock()
	defer h.mu.Unlock()
	h.marks = append(h.marks, markData{parent: parent, transparency: SemiTransparent})
	return Mark(len(h.marks) - 1)
}

// Parent returns the mark this mark was allocated under.
func (m Mark) Parent() Mark {
	h := hygiene()
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.marks[m].parent
}

// ExpnInfo returns the expansion info attached to the mark, or nil.
func (m Mark) ExpnInfo() *ExpnInfo {
	h := hygiene()
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.marks[m].expnInfo
}

// SetExpnInfo attaches expansion info to the mark.
func (m Mark) SetExpnInfo(info *ExpnInfo) {
	h := hygiene()
	h.mu.Lock()
	defer h.mu.Unlock()
	h.marks[m].expnInfo = info
}

// Transparency returns the mark's transparency.
func (m Mark) Transparency() Transparency {
	h := hygiene()
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.marks[m].transparency
}

// SetTransparency overrides the mark's transparency. The root mark is
// immutable.
func (m Mark) SetTransparency(t Transparency) {
	if m == RootMark {
		panic("span: cannot set transparency of the root mark")
	}
	h := hygiene()
	h.mu.Lock()
	defer h.mu.Unlock()
	h.marks[m].transparency = t
}

// IsDescendantOf reports whether ancestor lies on m's parent chain
// (inclusive).
func (m Mark) IsDescendantOf(ancestor Mark) bool {
	h := hygiene()
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.isDescendantOf(m, ancestor)
}

func (h *hygieneData) isDescendantOf(m, ancestor Mark) bool {
	for m != ancestor {
		if m == RootMark {
			return false
		}
		m = h.marks[m].parent
	}
	return true
}

func (m Mark) String() string {
	if m == RootMark {
		return "#root"
	}
	return fmt.Sprintf("#%d", uint32(m))
}

// Outer returns the outermost mark of the context, or RootMark for the
// empty context.
func (c SyntaxContext) Outer() Mark {
	h := hygiene()
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ctxts[c].outerMark
}

// ApplyMark extends the context with mark at the mark's own
// transparency (semi-transparent unless changed with SetTransparency).
// Interned: applying equal inputs yields the identical handle.
func (c SyntaxContext) ApplyMark(m Mark) SyntaxContext {
	return c.ApplyMarkWithTransparency(m, m.Transparency())
}

// ApplyMarkWithTransparency extends the context with mark at an
// explicit transparency.
func (c SyntaxContext) ApplyMarkWithTransparency(m Mark, t Transparency) SyntaxContext {
	h := hygiene()
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.applyMark(c, m, t)
}

func (h *hygieneData) applyMark(c SyntaxContext, m Mark, t Transparency) SyntaxContext {
	opaque := h.ctxts[c].opaque
	opaqueAndSemi := h.ctxts[c].opaqueAndSemi

	if t >= Opaque {
		opaque = h.internCtxt(opaque, m, t, func(id SyntaxContext) (SyntaxContext, SyntaxContext) {
			return id, id
		})
	}
	if t >= SemiTransparent {
		parentOpaque := opaque
		opaqueAndSemi = h.internCtxt(opaqueAndSemi, m, t, func(id SyntaxContext) (SyntaxContext, SyntaxContext) {
			return parentOpaque, id
		})
	}

	key := markingKey{ctxt: c, mark: m, transparency: t}
	if id, ok := h.markings[key]; ok {
		return id
	}
	id := SyntaxContext(len(h.ctxts))
	h.ctxts = append(h.ctxts, ctxtData{
		outerMark:     m,
		prev:          c,
		opaque:        opaque,
		opaqueAndSemi: opaqueAndSemi,
	})
	h.markings[key] = id
	return id
}

// internCtxt memoizes the (prev, mark, transparency) extension used by
// the projection chains. proj computes the projection fields of the
// newly created context from its own id.
func (h *hygieneData) internCtxt(prev SyntaxContext, m Mark, t Transparency, proj func(SyntaxContext) (SyntaxContext, SyntaxContext)) SyntaxContext {
	key := markingKey{ctxt: prev, mark: m, transparency: t}
	if id, ok := h.markings[key]; ok {
		return id
	}
	id := SyntaxContext(len(h.ctxts))
	opaque, opaqueAndSemi := proj(id)
	h.ctxts = append(h.ctxts, ctxtData{
		outerMark:     m,
		prev:          prev,
		opaque:        opaque,
		opaqueAndSemi: opaqueAndSemi,
	})
	h.markings[key] = id
	return id
}

// RemoveMark pops the outermost mark, returning the shortened context
// and the removed mark. Removing from the empty context returns the
// root sentinel.
func (c SyntaxContext) RemoveMark() (SyntaxContext, Mark) {
	h := hygiene()
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.removeMark(c)
}

func (h *hygieneData) removeMark(c SyntaxContext) (SyntaxContext, Mark) {
	d := h.ctxts[c]
	return d.prev, d.outerMark
}

// Marks returns the context's mark chain in application order,
// outermost last.
func (c SyntaxContext) Marks() []Mark {
	h := hygiene()
	h.mu.Lock()
	defer h.mu.Unlock()

	var rev []Mark
	for c != EmptyCtxt {
		d := h.ctxts[c]
		rev = append(rev, d.outerMark)
		c = d.prev
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}

// Adjust rebases the context so that marks from the given expansion
// are removed: marks are popped until the expansion is a descendant of
// the context's outer mark. Returns the adjusted context, the first
// mark removed, and whether any mark was removed at all. Used when an
// identifier defined in one expansion is referenced from another
// context.
func (c SyntaxContext) Adjust(expansion Mark) (SyntaxContext, Mark, bool) {
	h := hygiene()
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.adjust(c, expansion)
}

func (h *hygieneData) adjust(c SyntaxContext, expansion Mark) (SyntaxContext, Mark, bool) {
	var (
		scope   Mark
		removed bool
	)
	for !h.isDescendantOf(expansion, h.ctxts[c].outerMark) {
		var m Mark
		c, m = h.removeMark(c)
		if !removed {
			scope = m
		}
		removed = true
	}
	return c, scope, removed
}

// GlobAdjustResult is the three-way answer of GlobAdjust and
// ReverseGlobAdjust: Eligible=false means the context cannot be
// adjusted through the glob import at all; otherwise Removed/HasMark
// carry the last mark removed from the glob context when one exists.
type GlobAdjustResult struct {
	Eligible bool
	HasMark  bool
	Removed  Mark
}

// GlobAdjust is the Adjust variant used for glob imports: the marks
// removed from the context must match, in order, the marks that would
// be removed from the glob import's own context.
func (c SyntaxContext) GlobAdjust(expansion Mark, globCtxt SyntaxContext) (SyntaxContext, GlobAdjustResult) {
	h := hygiene()
	h.mu.Lock()
	defer h.mu.Unlock()

	var res GlobAdjustResult
	for !h.isDescendantOf(expansion, h.ctxts[globCtxt].outerMark) {
		var scope, got Mark
		globCtxt, scope = h.removeMark(globCtxt)
		res.Removed, res.HasMark = scope, true
		c, got = h.removeMark(c)
		if got != scope {
			return c, GlobAdjustResult{}
		}
	}
	if _, _, removed := h.adjust(c, expansion); removed {
		return c, GlobAdjustResult{}
	}
	res.Eligible = true
	return c, res
}

// ReverseGlobAdjust undoes GlobAdjust: the marks that a glob import
// strips are re-applied to the context.
func (c SyntaxContext) ReverseGlobAdjust(expansion Mark, globCtxt SyntaxContext) (SyntaxContext, GlobAdjustResult) {
	h := hygiene()
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, _, removed := h.adjust(c, expansion); removed {
		return c, GlobAdjustResult{}
	}

	var marks []Mark
	for !h.isDescendantOf(expansion, h.ctxts[globCtxt].outerMark) {
		var scope Mark
		globCtxt, scope = h.removeMark(globCtxt)
		marks = append(marks, scope)
	}

	res := GlobAdjustResult{Eligible: true}
	if len(marks) > 0 {
		res.Removed, res.HasMark = marks[len(marks)-1], true
	}
	for i := len(marks) - 1; i >= 0; i-- {
		c = h.applyMark(c, marks[i], h.marks[marks[i]].transparency)
	}
	return c, res
}

// Modern projects the context to its hygienic subset: only marks
// applied opaquely remain.
func (c SyntaxContext) Modern() SyntaxContext {
	h := hygiene()
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ctxts[c].opaque
}

// ModernAndLegacy projects the context to the union of hygienic and
// legacy marks: transparent applications are dropped, everything else
// remains.
func (c SyntaxContext) ModernAndLegacy() SyntaxContext {
	h := hygiene()
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ctxts[c].opaqueAndSemi
}

func (c SyntaxContext) String() string {
	if c == EmptyCtxt {
		return "#0"
	}
	return fmt.Sprintf("#%d", uint32(c))
}
