// Package sourcemap validates source maps produced by the code
// generator against the span registry: every mapping must point at a
// registered source file and a real line and column inside it.
package sourcemap

import (
	"fmt"
	"os"
	"strings"

	gosourcemap "github.com/go-sourcemap/sourcemap"

	"github.com/MadAppGang/eslower/pkg/span"
)

// ValidationError is one broken mapping.
type ValidationError struct {
	Type    string
	Message string
	Line    int
	Column  int
}

// ValidationWarning is a suspicious but tolerable mapping.
type ValidationWarning struct {
	Type    string
	Message string
}

// ValidationResult summarizes a validation run.
type ValidationResult struct {
	Valid            bool
	Errors           []ValidationError
	Warnings         []ValidationWarning
	CheckedPositions int
	MappedPositions  int

	// Accuracy is the percentage of mapped generated positions left
	// after subtracting the number of errors; positions that map to no
	// original position are not counted.
	Accuracy float64
}

// Validator checks one source map against the registry.
type Validator struct {
	consumer *gosourcemap.Consumer
	cm       *span.SourceMap
	strict   bool
}

// NewValidator parses mapData (a JSON source map) and binds it to the
// registry the original sources were loaded into.
func NewValidator(mapURL string, mapData []byte, cm *span.SourceMap) (*Validator, error) {
	consumer, err := gosourcemap.Parse(mapURL, mapData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source map: %w", err)
	}
	return &Validator{consumer: consumer, cm: cm}, nil
}

// NewValidatorFromFile loads the source map from disk.
func NewValidatorFromFile(path string, cm *span.SourceMap) (*Validator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source map file: %w", err)
	}
	return NewValidator(path, data, cm)
}

// SetStrict turns warnings into errors.
func (v *Validator) SetStrict(strict bool) { v.strict = strict }

// Validate probes every position of the generated output and verifies
// each mapped original position against the registry.
func (v *Validator) Validate(generated string) ValidationResult {
	result := ValidationResult{Valid: true}

	seen := make(map[string]bool)
	lines := strings.Split(generated, "\n")
	for lineIdx, line := range lines {
		genLine := lineIdx + 1
		for col := 0; col <= len(line); col++ {
			result.CheckedPositions++

			source, _, origLine, origCol, ok := v.consumer.Source(genLine, col)
			if !ok {
				continue
			}
			result.MappedPositions++

			key := fmt.Sprintf("%s:%d:%d", source, origLine, origCol)
			if seen[key] {
				continue
			}
			seen[key] = true

			v.checkOriginal(&result, source, origLine, origCol)
		}
	}

	if result.MappedPositions > 0 {
		bad := len(result.Errors)
		good := result.MappedPositions - bad
		if good < 0 {
			good = 0
		}
		result.Accuracy = float64(good) / float64(result.MappedPositions) * 100.0
	}

	if v.strict && len(result.Warnings) > 0 {
		for _, w := range result.Warnings {
			result.Errors = append(result.Errors, ValidationError{Type: w.Type, Message: w.Message})
		}
		result.Warnings = nil
	}
	if len(result.Errors) > 0 {
		result.Valid = false
	}
	return result
}

// checkOriginal verifies one original position against the registry.
func (v *Validator) checkOriginal(result *ValidationResult, source string, line, col int) {
	file, ok := v.cm.GetSourceFile(span.RealFileName(source))
	if !ok {
		file, ok = v.cm.GetSourceFile(span.CustomFileName(source))
	}
	if !ok {
		result.Errors = append(result.Errors, ValidationError{
			Type:    "unknown-source",
			Message: fmt.Sprintf("mapping references %q, which is not in the registry", source),
			Line:    line,
			Column:  col,
		})
		return
	}

	if line < 1 || line > file.CountLines() {
		result.Errors = append(result.Errors, ValidationError{
			Type:    "line-out-of-range",
			Message: fmt.Sprintf("%s has %d lines, mapping points at line %d", source, file.CountLines(), line),
			Line:    line,
			Column:  col,
		})
		return
	}

	text, _ := file.GetLine(line - 1)
	if col > len(text) {
		result.Warnings = append(result.Warnings, ValidationWarning{
			Type:    "column-past-eol",
			Message: fmt.Sprintf("%s:%d has %d columns, mapping points at column %d", source, line, len(text), col),
		})
	}
}
