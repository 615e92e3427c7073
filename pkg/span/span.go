package span

import "fmt"

// Lo returns the span's low bound.
func (s Span) Lo() BytePos { return s.Data().Lo }

// Hi returns the span's high bound.
func (s Span) Hi() BytePos { return s.Data().Hi }

// Ctxt returns the span's expansion context.
func (s Span) Ctxt() SyntaxContext { return s.Data().Ctxt }

// WithLo returns the span with its low bound replaced.
func (s Span) WithLo(lo BytePos) Span { return s.Data().WithLo(lo) }

// WithHi returns the span with its high bound replaced.
func (s Span) WithHi(hi BytePos) Span { return s.Data().WithHi(hi) }

// WithCtxt returns the span with its context replaced.
func (s Span) WithCtxt(ctxt SyntaxContext) Span { return s.Data().WithCtxt(ctxt) }

// IsDummy reports whether this is a dummy span, with any hygienic
// context.
func (s Span) IsDummy() bool {
	d := s.Data()
	return d.Lo == 0 && d.Hi == 0
}

// ShrinkToLo returns the empty span at the beginning of this span.
func (s Span) ShrinkToLo() Span {
	d := s.Data()
	return d.WithHi(d.Lo)
}

// ShrinkToHi returns the empty span at the end of this span.
func (s Span) ShrinkToHi() Span {
	d := s.Data()
	return d.WithLo(d.Hi)
}

// SubstituteDummy returns s unless it is the dummy span, in which case
// other is returned.
func (s Span) SubstituteDummy(other Span) Span {
	if s.IsDummy() {
		return other
	}
	return s
}

// Contains reports whether s fully encloses other.
func (s Span) Contains(other Span) bool {
	a, b := s.Data(), other.Data()
	return a.Lo <= b.Lo && b.Hi <= a.Hi
}

// SourceEqual reports whether the spans point at the same bytes of
// source text, ignoring context. Use this instead of == when either
// span could be generated code.
func (s Span) SourceEqual(other Span) bool {
	a, b := s.Data(), other.Data()
	return a.Lo == b.Lo && a.Hi == b.Hi
}

// TrimStart trims the start of s by the end of other. ok is false when
// nothing of s lies past other.
func (s Span) TrimStart(other Span) (Span, bool) {
	a, b := s.Data(), other.Data()
	if a.Hi <= b.Hi {
		return DummySpan, false
	}
	lo := a.Lo
	if b.Hi > lo {
		lo = b.Hi
	}
	return a.WithLo(lo), true
}

// To returns a span enclosing both s and end: bounds are always
// min(lo), max(hi). When the contexts differ and one is the root, the
// expansion context is adopted; when both fall within expansions, s's
// context is kept, the merge is best-effort, and the mismatch is
// reported through the session's context-mismatch handler as a
// diagnostic note.
func (s Span) To(end Span) Span {
	merged, mismatch := s.ToChecked(end)
	if mismatch {
		reportContextMismatch(s, end)
	}
	return merged
}

// ToChecked is To without the mismatch reporting: it returns the
// enclosing span plus whether s and end carry two distinct non-root
// contexts.
func (s Span) ToChecked(end Span) (Span, bool) {
	a, b := s.Data(), end.Data()

	lo, hi := a.Lo, a.Hi
	if b.Lo < lo {
		lo = b.Lo
	}
	if b.Hi > hi {
		hi = b.Hi
	}

	ctxt := a.Ctxt
	if ctxt == EmptyCtxt {
		ctxt = b.Ctxt
	}
	mismatch := a.Ctxt != b.Ctxt && a.Ctxt != EmptyCtxt && b.Ctxt != EmptyCtxt
	return NewSpan(lo, hi, ctxt), mismatch
}

// Between returns the span from the end of s to the beginning of end.
func (s Span) Between(end Span) Span {
	a, b := s.Data(), end.Data()
	ctxt := a.Ctxt
	if b.Ctxt == EmptyCtxt {
		ctxt = b.Ctxt
	}
	return NewSpan(a.Hi, b.Lo, ctxt)
}

// Until returns the span from the beginning of s to the beginning of
// end.
func (s Span) Until(end Span) Span {
	a, b := s.Data(), end.Data()
	ctxt := a.Ctxt
	if b.Ctxt == EmptyCtxt {
		ctxt = b.Ctxt
	}
	return NewSpan(a.Lo, b.Lo, ctxt)
}

// FromInnerBytePos translates offsets relative to the span's low bound
// into an absolute span with the same context.
func (s Span) FromInnerBytePos(start, end int) Span {
	d := s.Data()
	return NewSpan(d.Lo+BytePos(start), d.Lo+BytePos(end), d.Ctxt)
}

// SourceCallsite walks the expansion chain and returns the span of the
// original, non-expanded call that ultimately produced s.
func (s Span) SourceCallsite() Span {
	info := s.Ctxt().Outer().ExpnInfo()
	if info == nil {
		return s
	}
	return info.CallSite.SourceCallsite()
}

// Parent returns the span of the tokens in the previous expansion from
// which s was generated, if any.
func (s Span) Parent() (Span, bool) {
	info := s.Ctxt().Outer().ExpnInfo()
	if info == nil {
		return DummySpan, false
	}
	return info.CallSite, true
}

// SourceCallee returns the expansion info of the macro definition
// corresponding to the source callsite: the deepest ExpnInfo whose own
// call site is not itself expanded. ok is false when s has no
// expansion trace.
func (s Span) SourceCallee() (*ExpnInfo, bool) {
	info := s.Ctxt().Outer().ExpnInfo()
	if info == nil {
		return nil, false
	}
	for {
		next := info.CallSite.Ctxt().Outer().ExpnInfo()
		if next == nil {
			return info, true
		}
		info = next
	}
}

// AllowsUnstable reports whether s is internal to an expansion that
// may use compiler-internal helpers.
func (s Span) AllowsUnstable() bool {
	if info := s.Ctxt().Outer().ExpnInfo(); info != nil {
		return info.AllowInternalUnstable
	}
	return false
}

// ApplyMark extends the span's context with an expansion mark.
func (s Span) ApplyMark(m Mark) Span {
	d := s.Data()
	return d.WithCtxt(d.Ctxt.ApplyMark(m))
}

// RemoveMark pops the outermost mark from the span's context.
func (s Span) RemoveMark() (Span, Mark) {
	d := s.Data()
	ctxt, m := d.Ctxt.RemoveMark()
	return d.WithCtxt(ctxt), m
}

// Adjust rebases the span's context against the given expansion; see
// SyntaxContext.Adjust.
func (s Span) Adjust(expansion Mark) (Span, Mark, bool) {
	d := s.Data()
	ctxt, m, ok := d.Ctxt.Adjust(expansion)
	return d.WithCtxt(ctxt), m, ok
}

// GlobAdjust is the glob-import variant of Adjust; see
// SyntaxContext.GlobAdjust.
func (s Span) GlobAdjust(expansion Mark, globCtxt SyntaxContext) (Span, GlobAdjustResult) {
	d := s.Data()
	ctxt, res := d.Ctxt.GlobAdjust(expansion, globCtxt)
	return d.WithCtxt(ctxt), res
}

// ReverseGlobAdjust undoes GlobAdjust; see
// SyntaxContext.ReverseGlobAdjust.
func (s Span) ReverseGlobAdjust(expansion Mark, globCtxt SyntaxContext) (Span, GlobAdjustResult) {
	d := s.Data()
	ctxt, res := d.Ctxt.ReverseGlobAdjust(expansion, globCtxt)
	return d.WithCtxt(ctxt), res
}

// Modern projects the span's context to its hygienic subset.
func (s Span) Modern() Span {
	d := s.Data()
	return d.WithCtxt(d.Ctxt.Modern())
}

// ModernAndLegacy projects the span's context to the union of hygienic
// and legacy marks.
func (s Span) ModernAndLegacy() Span {
	d := s.Data()
	return d.WithCtxt(d.Ctxt.ModernAndLegacy())
}

// String renders the span through the active source-map registry when
// one is installed, and as raw offsets otherwise.
func (s Span) String() string {
	if cm := CurrentSourceMap(); cm != nil {
		return cm.SpanToString(s)
	}
	d := s.Data()
	return fmt.Sprintf("Span{lo: %d, hi: %d, ctxt: %s}", d.Lo, d.Hi, d.Ctxt)
}
