package sourcemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MadAppGang/eslower/pkg/span"
)

func registryWith(t *testing.T, name, src string) *span.SourceMap {
	t.Helper()
	cm := span.NewSourceMap()
	cm.NewSourceFile(span.RealFileName(name), src)
	return cm
}

func TestValidatorAcceptsGoodMap(t *testing.T) {
	cm := registryWith(t, "app.js", "let x = 1;")

	// One segment: generated 1:0 -> app.js 1:0.
	mapJSON := []byte(`{"version":3,"sources":["app.js"],"names":[],"mappings":"AAAA"}`)
	v, err := NewValidator("app.js.map", mapJSON, cm)
	require.NoError(t, err)

	result := v.Validate("var x = 1;")
	assert.True(t, result.Valid, "errors: %v", result.Errors)
	assert.Positive(t, result.MappedPositions)
	assert.Equal(t, 100.0, result.Accuracy)
}

func TestValidatorRejectsUnknownSource(t *testing.T) {
	cm := registryWith(t, "app.js", "let x = 1;")

	mapJSON := []byte(`{"version":3,"sources":["ghost.js"],"names":[],"mappings":"AAAA"}`)
	v, err := NewValidator("app.js.map", mapJSON, cm)
	require.NoError(t, err)

	result := v.Validate("var x = 1;")
	require.False(t, result.Valid)
	assert.Equal(t, "unknown-source", result.Errors[0].Type)
}

func TestValidatorRejectsLineOutOfRange(t *testing.T) {
	cm := registryWith(t, "app.js", "let x = 1;")

	// Segment [0,0,32,0]: points at line 33 of a one-line file.
	mapJSON := []byte(`{"version":3,"sources":["app.js"],"names":[],"mappings":"AAgCA"}`)
	v, err := NewValidator("app.js.map", mapJSON, cm)
	require.NoError(t, err)

	result := v.Validate("var x = 1;")
	require.False(t, result.Valid)
	assert.Equal(t, "line-out-of-range", result.Errors[0].Type)
}

func TestValidatorStrictPromotesWarnings(t *testing.T) {
	cm := registryWith(t, "app.js", "ab")

	// Segment [1,0,0,31]: column 31 of a two-column line.
	mapJSON := []byte(`{"version":3,"sources":["app.js"],"names":[],"mappings":"AAAA,CAA+B"}`)
	v, err := NewValidator("app.js.map", mapJSON, cm)
	require.NoError(t, err)

	loose := v.Validate("var x = 1;")
	assert.True(t, loose.Valid)
	assert.NotEmpty(t, loose.Warnings)

	v.SetStrict(true)
	strict := v.Validate("var x = 1;")
	assert.False(t, strict.Valid)
}

func TestValidatorBadJSON(t *testing.T) {
	cm := registryWith(t, "app.js", "let x = 1;")
	_, err := NewValidator("app.js.map", []byte("{"), cm)
	assert.Error(t, err)
}
