package span

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreshMarkMonotonic(t *testing.T) {
	withSession(t, func() {
		m1 := FreshMark(RootMark)
		m2 := FreshMark(RootMark)
		m3 := FreshMark(m2)

		assert.Less(t, uint32(m1), uint32(m2))
		assert.Less(t, uint32(m2), uint32(m3))
		assert.Equal(t, RootMark, m1.Parent())
		assert.Equal(t, m2, m3.Parent())
	})
}

func TestMarkDescendants(t *testing.T) {
	withSession(t, func() {
		a := FreshMark(RootMark)
		b := FreshMark(a)
		c := FreshMark(b)
		other := FreshMark(RootMark)

		assert.True(t, c.IsDescendantOf(a))
		assert.True(t, c.IsDescendantOf(c))
		assert.True(t, a.IsDescendantOf(RootMark))
		assert.False(t, a.IsDescendantOf(c))
		assert.False(t, c.IsDescendantOf(other))
	})
}

func TestApplyMarkInterned(t *testing.T) {
	withSession(t, func() {
		m := FreshMark(RootMark)

		c1 := EmptyCtxt.ApplyMark(m)
		c2 := EmptyCtxt.ApplyMark(m)
		assert.Equal(t, c1, c2)
		assert.NotEqual(t, EmptyCtxt, c1)
		assert.Equal(t, m, c1.Outer())
	})
}

func TestRemoveMark(t *testing.T) {
	withSession(t, func() {
		m1 := FreshMark(RootMark)
		m2 := FreshMark(m1)

		ctxt := EmptyCtxt.ApplyMark(m1).ApplyMark(m2)

		ctxt, removed := ctxt.RemoveMark()
		assert.Equal(t, m2, removed)

		ctxt, removed = ctxt.RemoveMark()
		assert.Equal(t, m1, removed)
		assert.Equal(t, EmptyCtxt, ctxt)

		// Removing from the empty context returns the sentinel.
		ctxt, removed = ctxt.RemoveMark()
		assert.Equal(t, EmptyCtxt, ctxt)
		assert.Equal(t, RootMark, removed)
	})
}

func TestMarksChain(t *testing.T) {
	withSession(t, func() {
		m1 := FreshMark(RootMark)
		m2 := FreshMark(m1)
		ctxt := EmptyCtxt.ApplyMark(m1).ApplyMark(m2)
		assert.Equal(t, []Mark{m1, m2}, ctxt.Marks())
		assert.Empty(t, EmptyCtxt.Marks())
	})
}

func TestAdjust(t *testing.T) {
	withSession(t, func() {
		expansion := FreshMark(RootMark)
		inner := FreshMark(expansion)

		// A context whose outer mark is an ancestor of the expansion
		// needs no adjustment.
		ctxt := EmptyCtxt.ApplyMark(expansion)
		adjusted, _, removed := ctxt.Adjust(inner)
		assert.False(t, removed)
		assert.Equal(t, ctxt, adjusted)

		// A context carrying marks from an unrelated expansion has
		// them stripped; the first removed mark is reported.
		other := FreshMark(RootMark)
		ctxt = EmptyCtxt.ApplyMark(other)
		adjusted, first, removed := ctxt.Adjust(expansion)
		require.True(t, removed)
		assert.Equal(t, other, first)
		assert.Equal(t, EmptyCtxt, adjusted)
	})
}

func TestGlobAdjust(t *testing.T) {
	withSession(t, func() {
		expansion := FreshMark(RootMark)
		globMark := FreshMark(RootMark)

		// No-op: neither context carries marks outside the expansion.
		globCtxt := EmptyCtxt
		ctxt := EmptyCtxt
		_, res := ctxt.GlobAdjust(expansion, globCtxt)
		require.True(t, res.Eligible)
		assert.False(t, res.HasMark)

		// Both the context and the glob context carry the same
		// foreign mark: it is removed from both.
		globCtxt = EmptyCtxt.ApplyMark(globMark)
		ctxt = EmptyCtxt.ApplyMark(globMark)
		adjusted, res := ctxt.GlobAdjust(expansion, globCtxt)
		require.True(t, res.Eligible)
		require.True(t, res.HasMark)
		assert.Equal(t, globMark, res.Removed)
		assert.Equal(t, EmptyCtxt, adjusted)

		// Mismatched marks make the context ineligible.
		otherMark := FreshMark(RootMark)
		ctxt = EmptyCtxt.ApplyMark(otherMark)
		_, res = ctxt.GlobAdjust(expansion, globCtxt)
		assert.False(t, res.Eligible)
	})
}

func TestReverseGlobAdjust(t *testing.T) {
	withSession(t, func() {
		expansion := FreshMark(RootMark)
		globMark := FreshMark(RootMark)
		globCtxt := EmptyCtxt.ApplyMark(globMark)

		// Reverse re-applies the glob's stripped marks.
		adjusted, res := EmptyCtxt.ReverseGlobAdjust(expansion, globCtxt)
		require.True(t, res.Eligible)
		assert.Equal(t, EmptyCtxt.ApplyMark(globMark), adjusted)

		// A context still carrying foreign marks is ineligible.
		foreign := FreshMark(RootMark)
		_, res = EmptyCtxt.ApplyMark(foreign).ReverseGlobAdjust(expansion, globCtxt)
		assert.False(t, res.Eligible)
	})
}

func TestModernProjection(t *testing.T) {
	withSession(t, func() {
		legacy := FreshMark(RootMark)
		modern := FreshMark(RootMark)
		modern.SetTransparency(Opaque)
		invisible := FreshMark(RootMark)
		invisible.SetTransparency(Transparent)

		ctxt := EmptyCtxt.ApplyMark(legacy).ApplyMark(modern).ApplyMark(invisible)

		// Modern keeps only opaque marks.
		assert.Equal(t, []Mark{modern}, ctxt.Modern().Marks())

		// ModernAndLegacy keeps opaque and semi-transparent marks.
		assert.Equal(t, []Mark{legacy, modern}, ctxt.ModernAndLegacy().Marks())

		// The empty context projects to itself.
		assert.Equal(t, EmptyCtxt, EmptyCtxt.Modern())
		assert.Equal(t, EmptyCtxt, EmptyCtxt.ModernAndLegacy())
	})
}

func TestExpnInfo(t *testing.T) {
	withSession(t, func() {
		m := FreshMark(RootMark)
		assert.Nil(t, m.ExpnInfo())

		call := NewSpan(3, 9, EmptyCtxt)
		m.SetExpnInfo(&ExpnInfo{CallSite: call, AllowInternalUnstable: true})

		info := m.ExpnInfo()
		require.NotNil(t, info)
		assert.Equal(t, call, info.CallSite)
		assert.True(t, info.AllowInternalUnstable)

		s := NewSpan(100, 110, EmptyCtxt.ApplyMark(m))
		assert.True(t, s.AllowsUnstable())
	})
}

func TestHygieneOutsideSessionPanics(t *testing.T) {
	assert.Panics(t, func() { FreshMark(RootMark) })
	assert.Panics(t, func() { EmptyCtxt.Outer() })
}
