// Package pass provides the lowering pass engine: the Pass interface,
// a registry with dependency ordering, and the pipeline that runs
// enabled passes over a program.
package pass

import (
	"fmt"
	"sort"

	"github.com/MadAppGang/eslower/pkg/ast"
	"github.com/MadAppGang/eslower/pkg/config"
	"github.com/MadAppGang/eslower/pkg/helpers"
	"github.com/MadAppGang/eslower/pkg/span"
)

// Pass is one lowering over the AST. A pass consumes a program and
// yields a rewritten program carrying the same spans; unchanged
// subtrees may be shared between input and output.
type Pass interface {
	// Name returns the pass name (e.g. "es2015-destructuring").
	Name() string

	// Description returns a human-readable description.
	Description() string

	// Dependencies returns the names of passes that must run before
	// this one.
	Dependencies() []string

	// Transform rewrites the program.
	Transform(ctx *Context, program *ast.Program) (*ast.Program, error)

	// Enabled reports whether the pass is currently enabled.
	Enabled() bool

	// SetEnabled enables or disables the pass.
	SetEnabled(bool)
}

// Context carries the session resources every pass may need.
type Context struct {
	SourceMap *span.SourceMap
	Config    *config.Config
	Helpers   *helpers.Registry
	Logger    Logger
}

// NewContext returns a context with a no-op logger and fresh helper
// registry for the given session resources.
func NewContext(cm *span.SourceMap, cfg *config.Config) *Context {
	return &Context{
		SourceMap: cm,
		Config:    cfg,
		Helpers:   helpers.NewRegistry(),
		Logger:    NewNoOpLogger(),
	}
}

// Registry manages the available passes.
type Registry struct {
	passes map[string]Pass
	order  []string // execution order after dependency resolution
}

// NewRegistry creates an empty pass registry.
func NewRegistry() *Registry {
	return &Registry{passes: make(map[string]Pass)}
}

// Register adds a pass to the registry.
func (r *Registry) Register(p Pass) error {
	name := p.Name()
	if name == "" {
		return fmt.Errorf("pass name cannot be empty")
	}
	if _, exists := r.passes[name]; exists {
		return fmt.Errorf("pass %q already registered", name)
	}
	r.passes[name] = p
	return nil
}

// Get retrieves a pass by name.
func (r *Registry) Get(name string) (Pass, bool) {
	p, ok := r.passes[name]
	return p, ok
}

// All returns all registered passes.
func (r *Registry) All() []Pass {
	out := make([]Pass, 0, len(r.passes))
	for _, name := range r.List() {
		out = append(out, r.passes[name])
	}
	return out
}

// List returns all pass names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.passes))
	for name := range r.passes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Enabled returns the enabled passes in execution order.
func (r *Registry) Enabled() []Pass {
	out := make([]Pass, 0, len(r.order))
	for _, name := range r.order {
		if p, ok := r.passes[name]; ok && p.Enabled() {
			out = append(out, p)
		}
	}
	return out
}

// SortByDependencies computes the execution order with a topological
// sort, so dependencies run before dependents.
func (r *Registry) SortByDependencies() error {
	dependents := make(map[string][]string)
	inDegree := make(map[string]int)

	for name := range r.passes {
		inDegree[name] = 0
	}
	for name, p := range r.passes {
		deps := p.Dependencies()
		inDegree[name] = len(deps)
		for _, dep := range deps {
			if _, ok := r.passes[dep]; !ok {
				return fmt.Errorf("pass %q depends on unknown pass %q", name, dep)
			}
			dependents[dep] = append(dependents[dep], name)
		}
	}

	var queue []string
	for name, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue)

	var result []string
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		result = append(result, node)

		for _, dep := range dependents[node] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
				sort.Strings(queue)
			}
		}
	}

	if len(result) != len(r.passes) {
		return fmt.Errorf("circular dependency detected in passes")
	}

	r.order = result
	return nil
}

// EnablePass enables a pass and, recursively, its dependencies.
func (r *Registry) EnablePass(name string) error {
	p, ok := r.Get(name)
	if !ok {
		return fmt.Errorf("pass %q not found", name)
	}
	p.SetEnabled(true)
	for _, dep := range p.Dependencies() {
		if err := r.EnablePass(dep); err != nil {
			return fmt.Errorf("failed to enable dependency %q: %w", dep, err)
		}
	}
	return nil
}

// DisablePass disables a pass unless an enabled pass depends on it.
func (r *Registry) DisablePass(name string) error {
	p, ok := r.Get(name)
	if !ok {
		return fmt.Errorf("pass %q not found", name)
	}
	for _, other := range r.All() {
		if other.Name() == name || !other.Enabled() {
			continue
		}
		for _, dep := range other.Dependencies() {
			if dep == name {
				return fmt.Errorf("cannot disable %q: pass %q depends on it", name, other.Name())
			}
		}
	}
	p.SetEnabled(false)
	return nil
}
