package pass

import (
	"fmt"

	"github.com/MadAppGang/eslower/pkg/ast"
)

// Pipeline executes passes in dependency order.
type Pipeline struct {
	registry *Registry
	Ctx      *Context
}

// NewPipeline resolves the registry's dependency order and returns a
// pipeline bound to ctx.
func NewPipeline(registry *Registry, ctx *Context) (*Pipeline, error) {
	if ctx == nil {
		return nil, fmt.Errorf("pipeline context cannot be nil")
	}
	if err := registry.SortByDependencies(); err != nil {
		return nil, fmt.Errorf("failed to resolve pass dependencies: %w", err)
	}
	return &Pipeline{registry: registry, Ctx: ctx}, nil
}

// Transform runs all enabled passes over the program, in order.
func (p *Pipeline) Transform(program *ast.Program) (*ast.Program, error) {
	if program == nil {
		return nil, fmt.Errorf("program cannot be nil")
	}

	passes := p.registry.Enabled()
	if len(passes) == 0 {
		return program, nil
	}

	p.Ctx.Logger.Debug("running lowering pipeline with %d passes", len(passes))
	for _, ps := range passes {
		p.Ctx.Logger.Debug("  - %s: %s", ps.Name(), ps.Description())
	}

	for _, ps := range passes {
		next, err := ps.Transform(p.Ctx, program)
		if err != nil {
			return nil, fmt.Errorf("pass %q failed: %w", ps.Name(), err)
		}
		program = next
	}

	return program, nil
}

// Stats describes a pipeline's registry.
type Stats struct {
	TotalPasses    int
	EnabledPasses  int
	PassNames      []string
	ExecutionOrder []string
}

// GetStats returns pipeline statistics.
func (p *Pipeline) GetStats() Stats {
	enabled := p.registry.Enabled()
	order := make([]string, 0, len(enabled))
	for _, ps := range enabled {
		order = append(order, ps.Name())
	}
	return Stats{
		TotalPasses:    len(p.registry.All()),
		EnabledPasses:  len(enabled),
		PassNames:      p.registry.List(),
		ExecutionOrder: order,
	}
}
