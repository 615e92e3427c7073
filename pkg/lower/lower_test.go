package lower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MadAppGang/eslower/pkg/ast"
	"github.com/MadAppGang/eslower/pkg/config"
	"github.com/MadAppGang/eslower/pkg/diag"
	"github.com/MadAppGang/eslower/pkg/helpers"
	"github.com/MadAppGang/eslower/pkg/span"
)

// stubParser returns a canned program: `let [a] = x;` with a parse
// warning attached.
type stubParser struct {
	parsedFile *span.SourceFile
}

func (p *stubParser) Parse(file *span.SourceFile) (*ast.Program, []*diag.Diagnostic, error) {
	p.parsedFile = file
	program := &ast.Program{
		S: span.DummySpan,
		Body: []ast.Stmt{
			&ast.VarDecl{
				S:    span.DummySpan,
				Kind: ast.VarDeclLet,
				Decls: []*ast.VarDeclarator{
					{
						S: span.DummySpan,
						Name: &ast.ArrayPat{S: span.DummySpan, Elems: []ast.Pat{
							ast.NewIdent("a", span.DummySpan),
						}},
						Init: ast.NewIdent("x", span.DummySpan),
					},
				},
			},
		},
	}
	warn := diag.New(diag.SeverityWarning, "odd but fine", span.DummySpan)
	return program, []*diag.Diagnostic{warn}, nil
}

func TestSessionLowersSource(t *testing.T) {
	s, err := NewSession(config.DefaultConfig())
	require.NoError(t, err)

	parser := &stubParser{}
	collector := &diag.Collector{}

	program, err := s.LowerSource(parser, span.AnonFileName(), "let [a] = x;", collector)
	require.NoError(t, err)
	require.NotNil(t, program)

	// The parse warning went to the handler.
	require.Len(t, collector.Diagnostics, 1)
	assert.Equal(t, diag.SeverityWarning, collector.Diagnostics[0].Severity)

	// The source was registered before parsing.
	require.NotNil(t, parser.parsedFile)
	assert.Equal(t, "let [a] = x;", parser.parsedFile.Src)

	// The destructuring pass ran: the pattern is gone and the helper
	// was recorded.
	decl := program.Body[0].(*ast.VarDecl)
	for _, d := range decl.Decls {
		_, isIdent := d.Name.(*ast.Ident)
		assert.True(t, isIdent)
	}
	assert.True(t, s.Ctx.Helpers.WasUsed(helpers.SlicedToArray))
}

func TestSessionRequiresParser(t *testing.T) {
	s, err := NewSession(nil)
	require.NoError(t, err)
	_, err = s.LowerSource(nil, span.AnonFileName(), "let a = 1;", nil)
	assert.Error(t, err)
}

func TestSessionDisabledPasses(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Passes.Destructuring = false
	cfg.Passes.Classes = false

	s, err := NewSession(cfg)
	require.NoError(t, err)

	stats, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalPasses)
	assert.Equal(t, 0, stats.EnabledPasses)

	// With every pass disabled, the program passes through untouched.
	parser := &stubParser{}
	program, err := s.LowerSource(parser, span.AnonFileName(), "let [a] = x;", nil)
	require.NoError(t, err)
	decl := program.Body[0].(*ast.VarDecl)
	_, isArray := decl.Decls[0].Name.(*ast.ArrayPat)
	assert.True(t, isArray)
}
