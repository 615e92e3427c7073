// Package helpers tracks the runtime helper functions a lowering run
// references. The passes emit plain identifiers naming each helper;
// the helper-injection collaborator reads the used set afterwards and
// threads the actual imports or definitions.
package helpers

import (
	"sort"
	"sync"

	"github.com/MadAppGang/eslower/pkg/ast"
	"github.com/MadAppGang/eslower/pkg/span"
)

// Names of the helpers the ES2015 passes emit.
const (
	PossibleConstructorReturn = "possibleConstructorReturn"
	AssertThisInitialized     = "assertThisInitialized"
	GetPrototypeOf            = "getPrototypeOf"
	ToArray                   = "toArray"
	SlicedToArray             = "slicedToArray"
	Throw                     = "throw"
)

// Registry accumulates the set of helpers referenced during a run.
// Safe for concurrent use.
type Registry struct {
	mu   sync.Mutex
	used map[string]bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{used: make(map[string]bool)}
}

// Ident records a use of the named helper and returns the identifier
// the pass should emit for it.
func (r *Registry) Ident(name string) *ast.Ident {
	r.mu.Lock()
	r.used[name] = true
	r.mu.Unlock()
	return ast.NewIdent(name, span.DummySpan)
}

// Call records a use of the named helper and returns a call to it.
func (r *Registry) Call(name string, args ...ast.Expr) *ast.CallExpr {
	return ast.Call(r.Ident(name), args...)
}

// Used returns the referenced helper names, sorted.
func (r *Registry) Used() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.used))
	for name := range r.used {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WasUsed reports whether the named helper was referenced.
func (r *Registry) WasUsed(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.used[name]
}
