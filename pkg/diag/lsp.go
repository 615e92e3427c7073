package diag

import (
	"go.lsp.dev/protocol"

	"github.com/MadAppGang/eslower/pkg/span"
)

// ToLSP converts a diagnostic into the LSP wire shape so editor
// clients can consume it. Spans that cannot be resolved through the
// registry are dropped; the function returns one protocol diagnostic
// per resolvable primary span.
func ToLSP(d *Diagnostic, cm *span.SourceMap) []protocol.Diagnostic {
	var out []protocol.Diagnostic

	for _, primary := range d.Span.PrimarySpans() {
		rng, ok := spanToRange(primary, cm)
		if !ok {
			continue
		}

		pd := protocol.Diagnostic{
			Range:    rng,
			Severity: lspSeverity(d.Severity),
			Source:   "eslower",
			Message:  d.Message,
		}

		for _, sl := range d.Span.SpanLabels() {
			if !sl.HasLabel {
				continue
			}
			labelRange, ok := spanToRange(sl.Span, cm)
			if !ok {
				continue
			}
			loc, err := cm.LookupChar(sl.Span.Lo())
			if err != nil {
				continue
			}
			pd.RelatedInformation = append(pd.RelatedInformation, protocol.DiagnosticRelatedInformation{
				Location: protocol.Location{
					URI:   protocol.DocumentURI("file://" + loc.File.Name.String()),
					Range: labelRange,
				},
				Message: sl.Label,
			})
		}

		out = append(out, pd)
	}

	return out
}

func spanToRange(s span.Span, cm *span.SourceMap) (protocol.Range, bool) {
	lo, err := cm.LookupChar(s.Lo())
	if err != nil {
		return protocol.Range{}, false
	}
	hi, err := cm.LookupChar(s.Hi())
	if err != nil {
		return protocol.Range{}, false
	}
	return protocol.Range{
		Start: protocol.Position{Line: uint32(lo.Line - 1), Character: uint32(lo.Col)},
		End:   protocol.Position{Line: uint32(hi.Line - 1), Character: uint32(hi.Col)},
	}, true
}

func lspSeverity(s Severity) protocol.DiagnosticSeverity {
	switch s {
	case SeverityError:
		return protocol.DiagnosticSeverityError
	case SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	case SeverityNote:
		return protocol.DiagnosticSeverityInformation
	default:
		return protocol.DiagnosticSeverityHint
	}
}
