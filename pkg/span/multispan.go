package span

// SpanLabel pairs a span with its role in a rendered snippet.
type SpanLabel struct {
	// Span to include in the final snippet.
	Span Span

	// IsPrimary marks the locus of the message, indicated with ^^^^
	// rather than ----.
	IsPrimary bool

	// Label to attach next to the mark, when present.
	Label string

	// HasLabel distinguishes an empty label from no label.
	HasLabel bool
}

// MultiSpan is a collection of spans. Spans have two orthogonal
// attributes: they can be primary (the locus of the error), and they
// can carry a label written next to the mark when rendered.
type MultiSpan struct {
	primarySpans []Span
	spanLabels   []SpanLabel
}

// NewMultiSpan returns an empty MultiSpan.
func NewMultiSpan() *MultiSpan { return &MultiSpan{} }

// FromSpan returns a MultiSpan with one primary span.
func FromSpan(primary Span) *MultiSpan {
	return &MultiSpan{primarySpans: []Span{primary}}
}

// FromSpans returns a MultiSpan with the given primary spans.
func FromSpans(spans []Span) *MultiSpan {
	return &MultiSpan{primarySpans: spans}
}

// PushSpanLabel attaches a labeled span.
func (m *MultiSpan) PushSpanLabel(s Span, label string) {
	m.spanLabels = append(m.spanLabels, SpanLabel{Span: s, Label: label, HasLabel: true})
}

// PrimarySpan selects the first primary span, if any.
func (m *MultiSpan) PrimarySpan() (Span, bool) {
	if len(m.primarySpans) == 0 {
		return DummySpan, false
	}
	return m.primarySpans[0], true
}

// PrimarySpans returns all primary spans.
func (m *MultiSpan) PrimarySpans() []Span { return m.primarySpans }

// IsDummy reports whether the MultiSpan contains only dummy primary
// spans, with any hygienic context.
func (m *MultiSpan) IsDummy() bool {
	for _, s := range m.primarySpans {
		if !s.IsDummy() {
			return false
		}
	}
	return true
}

// Replace substitutes every occurrence of before with after, in both
// the primary and labeled spans. Used to move spans out of areas that
// do not display well. Reports whether any replacement occurred.
func (m *MultiSpan) Replace(before, after Span) bool {
	replaced := false
	for i, s := range m.primarySpans {
		if s == before {
			m.primarySpans[i] = after
			replaced = true
		}
	}
	for i := range m.spanLabels {
		if m.spanLabels[i].Span == before {
			m.spanLabels[i].Span = after
			replaced = true
		}
	}
	return replaced
}

// SpanLabels returns the strings to highlight. Every primary span is
// guaranteed an entry: labeled primaries keep their labels (marked
// primary), unlabeled primaries get an entry with no label.
func (m *MultiSpan) SpanLabels() []SpanLabel {
	isPrimary := func(s Span) bool {
		for _, p := range m.primarySpans {
			if p == s {
				return true
			}
		}
		return false
	}

	labels := make([]SpanLabel, 0, len(m.spanLabels)+len(m.primarySpans))
	for _, sl := range m.spanLabels {
		sl.IsPrimary = isPrimary(sl.Span)
		labels = append(labels, sl)
	}

	for _, p := range m.primarySpans {
		found := false
		for _, sl := range labels {
			if sl.Span == p {
				found = true
				break
			}
		}
		if !found {
			labels = append(labels, SpanLabel{Span: p, IsPrimary: true})
		}
	}

	return labels
}
