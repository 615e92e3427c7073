// Package lower wires a compilation session together: the session
// globals, the source-file registry, the pass registry, and the
// pipeline. The lexer/parser and the code generator are external
// collaborators plugged in through interfaces.
package lower

import (
	"fmt"

	"github.com/MadAppGang/eslower/pkg/ast"
	"github.com/MadAppGang/eslower/pkg/config"
	"github.com/MadAppGang/eslower/pkg/diag"
	"github.com/MadAppGang/eslower/pkg/pass"
	"github.com/MadAppGang/eslower/pkg/pass/es2015"
	"github.com/MadAppGang/eslower/pkg/pass/es2015/classes"
	"github.com/MadAppGang/eslower/pkg/span"
)

// Parser is the parser collaborator: it turns a registered source
// file into an AST plus parse diagnostics.
type Parser interface {
	Parse(file *span.SourceFile) (*ast.Program, []*diag.Diagnostic, error)
}

// Session owns the state of one compilation: globals, registry,
// configuration, and the pass pipeline built from it.
type Session struct {
	Globals   *span.Globals
	SourceMap *span.SourceMap
	Config    *config.Config
	Registry  *pass.Registry
	Ctx       *pass.Context
}

// NewSession builds a session with the default pass set wired from
// the configuration.
func NewSession(cfg *config.Config) (*Session, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	s := &Session{
		Globals:   span.NewGlobals(),
		SourceMap: span.NewSourceMap(),
		Config:    cfg,
		Registry:  pass.NewRegistry(),
	}
	s.Ctx = pass.NewContext(s.SourceMap, cfg)

	destructuring := es2015.NewDestructuring(es2015.DestructuringConfig{Loose: cfg.Passes.Loose})
	destructuring.SetEnabled(cfg.Passes.Destructuring)
	if err := s.Registry.Register(destructuring); err != nil {
		return nil, err
	}

	ctor := classes.NewConstructorLowering()
	ctor.SetEnabled(cfg.Passes.Classes)
	if err := s.Registry.Register(ctor); err != nil {
		return nil, err
	}

	return s, nil
}

// SetLogger replaces the context logger.
func (s *Session) SetLogger(l pass.Logger) { s.Ctx.Logger = l }

// Enter establishes the session's globals for the duration of fn. All
// span and hygiene operations must happen inside.
func (s *Session) Enter(fn func()) {
	span.WithGlobals(s.Globals, func() {
		span.WithSourceMap(s.SourceMap, fn)
	})
}

// LowerFile loads path, parses it with the given collaborator, and
// runs the pass pipeline over the result.
func (s *Session) LowerFile(parser Parser, path string, handler diag.Handler) (*ast.Program, error) {
	if parser == nil {
		return nil, fmt.Errorf("no parser collaborator configured")
	}

	var (
		program *ast.Program
		err     error
	)
	s.Enter(func() {
		var file *span.SourceFile
		file, err = s.SourceMap.LoadFile(path)
		if err != nil {
			return
		}
		program, err = s.lower(parser, file, handler)
	})
	return program, err
}

// LowerSource is LowerFile over in-memory source registered under a
// virtual name.
func (s *Session) LowerSource(parser Parser, name span.FileName, src string, handler diag.Handler) (*ast.Program, error) {
	if parser == nil {
		return nil, fmt.Errorf("no parser collaborator configured")
	}

	var (
		program *ast.Program
		err     error
	)
	s.Enter(func() {
		file := s.SourceMap.NewSourceFile(name, src)
		program, err = s.lower(parser, file, handler)
	})
	return program, err
}

func (s *Session) lower(parser Parser, file *span.SourceFile, handler diag.Handler) (*ast.Program, error) {
	if handler != nil {
		prev := span.OnContextMismatch(diag.NoteContextMismatch(handler))
		defer span.OnContextMismatch(prev)
	}

	program, diags, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", file.Name, err)
	}
	for _, d := range diags {
		if handler != nil {
			handler.Handle(d)
		}
	}

	pipeline, err := pass.NewPipeline(s.Registry, s.Ctx)
	if err != nil {
		return nil, err
	}
	return pipeline.Transform(program)
}

// Stats returns the pipeline statistics for the session's registry.
func (s *Session) Stats() (pass.Stats, error) {
	pipeline, err := pass.NewPipeline(s.Registry, s.Ctx)
	if err != nil {
		return pass.Stats{}, err
	}
	return pipeline.GetStats(), nil
}
