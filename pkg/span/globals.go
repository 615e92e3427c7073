package span

import "sync"

// Globals owns the span interner and the hygiene tables for one
// compiler session. Spans and marks are 32-bit handles into these
// tables, so a Globals must be active before any span-decoding or
// interning operation; see WithGlobals.
//
// The tables themselves are lock-protected so that a benchmark harness
// or diagnostic worker may inspect spans from another goroutine while
// the driver compiles.
type Globals struct {
	interner spanInterner
	hygiene  hygieneData

	mismatchMu sync.Mutex
	onMismatch ContextMismatchFunc
}

// ContextMismatchFunc receives the two spans of a best-effort merge
// whose contexts disagree with neither being the root.
type ContextMismatchFunc func(a, b Span)

// NewGlobals returns a fresh session with an empty interner and the
// root-only hygiene tables.
func NewGlobals() *Globals {
	g := &Globals{}
	g.hygiene.init()
	return g
}

var (
	activeMu sync.Mutex
	active   *Globals
	// activeCM is the CM slot: the registry used while resolving
	// spans for diagnostics and serialization.
	activeCM *SourceMap
)

// WithGlobals establishes g as the active session for the duration of
// fn. Sessions nest: the previous session is restored when fn returns,
// even on panic. Compilation is single-threaded within a session;
// goroutines spawned by fn that touch spans must re-enter the session
// themselves with another WithGlobals call.
func WithGlobals(g *Globals, fn func()) {
	activeMu.Lock()
	prev := active
	active = g
	activeMu.Unlock()

	defer func() {
		activeMu.Lock()
		active = prev
		activeMu.Unlock()
	}()

	fn()
}

// WithSourceMap establishes cm as the active source-map registry (the
// CM slot) for the duration of fn. Used by span debug formatting and
// diagnostics rendering.
func WithSourceMap(cm *SourceMap, fn func()) {
	activeMu.Lock()
	prev := activeCM
	activeCM = cm
	activeMu.Unlock()

	defer func() {
		activeMu.Lock()
		activeCM = prev
		activeMu.Unlock()
	}()

	fn()
}

// curGlobals returns the active session, or panics: using a Span or
// Mark outside WithGlobals is a programming error.
func curGlobals() *Globals {
	activeMu.Lock()
	g := active
	activeMu.Unlock()
	if g == nil {
		panic("span: no active Globals; wrap the call in span.WithGlobals")
	}
	return g
}

// CurrentSourceMap returns the active registry, or nil when none is
// installed.
func CurrentSourceMap() *SourceMap {
	activeMu.Lock()
	defer activeMu.Unlock()
	return activeCM
}

// OnContextMismatch installs fn as the session's handler for
// hygiene-context mismatches in span merges. Passing nil clears it.
// Returns the previously installed handler so callers can restore it.
func OnContextMismatch(fn ContextMismatchFunc) ContextMismatchFunc {
	g := curGlobals()
	g.mismatchMu.Lock()
	defer g.mismatchMu.Unlock()
	prev := g.onMismatch
	g.onMismatch = fn
	return prev
}

func reportContextMismatch(a, b Span) {
	g := curGlobals()
	g.mismatchMu.Lock()
	fn := g.onMismatch
	g.mismatchMu.Unlock()
	if fn != nil {
		fn(a, b)
	}
}
