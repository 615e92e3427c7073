package pass

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MadAppGang/eslower/pkg/ast"
	"github.com/MadAppGang/eslower/pkg/config"
	"github.com/MadAppGang/eslower/pkg/span"
)

// stubPass appends its name to a shared log when run.
type stubPass struct {
	name    string
	deps    []string
	enabled bool
	log     *[]string
	fail    bool
}

func newStubPass(name string, log *[]string, deps ...string) *stubPass {
	return &stubPass{name: name, deps: deps, enabled: true, log: log}
}

func (p *stubPass) Name() string           { return p.name }
func (p *stubPass) Description() string    { return "stub pass " + p.name }
func (p *stubPass) Dependencies() []string { return p.deps }
func (p *stubPass) Enabled() bool          { return p.enabled }
func (p *stubPass) SetEnabled(v bool)      { p.enabled = v }

func (p *stubPass) Transform(ctx *Context, program *ast.Program) (*ast.Program, error) {
	if p.fail {
		return nil, fmt.Errorf("boom")
	}
	*p.log = append(*p.log, p.name)
	return program, nil
}

func testContext() *Context {
	return NewContext(span.NewSourceMap(), config.DefaultConfig())
}

func TestRegistryRegister(t *testing.T) {
	var log []string
	r := NewRegistry()
	require.NoError(t, r.Register(newStubPass("a", &log)))

	assert.Error(t, r.Register(newStubPass("a", &log)), "duplicate names are rejected")
	assert.Error(t, r.Register(newStubPass("", &log)), "empty names are rejected")

	_, ok := r.Get("a")
	assert.True(t, ok)
	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestRegistryDependencyOrder(t *testing.T) {
	var log []string
	r := NewRegistry()
	require.NoError(t, r.Register(newStubPass("c", &log, "b")))
	require.NoError(t, r.Register(newStubPass("a", &log)))
	require.NoError(t, r.Register(newStubPass("b", &log, "a")))

	pipeline, err := NewPipeline(r, testContext())
	require.NoError(t, err)

	_, err = pipeline.Transform(&ast.Program{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, log)
}

func TestRegistryCycleDetection(t *testing.T) {
	var log []string
	r := NewRegistry()
	require.NoError(t, r.Register(newStubPass("a", &log, "b")))
	require.NoError(t, r.Register(newStubPass("b", &log, "a")))

	assert.Error(t, r.SortByDependencies())
}

func TestRegistryUnknownDependency(t *testing.T) {
	var log []string
	r := NewRegistry()
	require.NoError(t, r.Register(newStubPass("a", &log, "ghost")))
	assert.Error(t, r.SortByDependencies())
}

func TestDisabledPassesAreSkipped(t *testing.T) {
	var log []string
	r := NewRegistry()
	a := newStubPass("a", &log)
	b := newStubPass("b", &log)
	require.NoError(t, r.Register(a))
	require.NoError(t, r.Register(b))

	a.SetEnabled(false)

	pipeline, err := NewPipeline(r, testContext())
	require.NoError(t, err)
	_, err = pipeline.Transform(&ast.Program{})
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, log)
}

func TestEnableEnablesDependencies(t *testing.T) {
	var log []string
	r := NewRegistry()
	a := newStubPass("a", &log)
	b := newStubPass("b", &log, "a")
	require.NoError(t, r.Register(a))
	require.NoError(t, r.Register(b))

	a.SetEnabled(false)
	b.SetEnabled(false)
	require.NoError(t, r.EnablePass("b"))
	assert.True(t, a.Enabled())
	assert.True(t, b.Enabled())
}

func TestDisableRefusesWhenDependedUpon(t *testing.T) {
	var log []string
	r := NewRegistry()
	require.NoError(t, r.Register(newStubPass("a", &log)))
	require.NoError(t, r.Register(newStubPass("b", &log, "a")))

	assert.Error(t, r.DisablePass("a"))
	assert.NoError(t, r.DisablePass("b"))
	assert.NoError(t, r.DisablePass("a"))
}

func TestPipelineWrapsPassErrors(t *testing.T) {
	var log []string
	r := NewRegistry()
	failing := newStubPass("bad", &log)
	failing.fail = true
	require.NoError(t, r.Register(failing))

	pipeline, err := NewPipeline(r, testContext())
	require.NoError(t, err)
	_, err = pipeline.Transform(&ast.Program{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `pass "bad" failed`)
}

func TestPipelineNilProgram(t *testing.T) {
	r := NewRegistry()
	pipeline, err := NewPipeline(r, testContext())
	require.NoError(t, err)
	_, err = pipeline.Transform(nil)
	assert.Error(t, err)
}

func TestPipelineStats(t *testing.T) {
	var log []string
	r := NewRegistry()
	a := newStubPass("a", &log)
	b := newStubPass("b", &log, "a")
	require.NoError(t, r.Register(a))
	require.NoError(t, r.Register(b))
	b.SetEnabled(false)

	pipeline, err := NewPipeline(r, testContext())
	require.NoError(t, err)

	stats := pipeline.GetStats()
	assert.Equal(t, 2, stats.TotalPasses)
	assert.Equal(t, 1, stats.EnabledPasses)
	assert.Equal(t, []string{"a", "b"}, stats.PassNames)
	assert.Equal(t, []string{"a"}, stats.ExecutionOrder)
}
