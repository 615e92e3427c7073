package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MadAppGang/eslower/pkg/span"
)

var (
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B9D")).Bold(true)
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7DC6F")).Bold(true)
	styleNote    = lipgloss.NewStyle().Foreground(lipgloss.Color("#56C3F4"))
	styleGutter  = lipgloss.NewStyle().Foreground(lipgloss.Color("#56C3F4")).Bold(true)
	styleCaret   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B9D")).Bold(true)
	styleDash    = lipgloss.NewStyle().Foreground(lipgloss.Color("#56C3F4"))
)

// Emitter renders diagnostics in source-snippet form:
//
//	error: cannot destructure undefined
//	  --> src/app.js:3:10
//	   |
//	 3 | let {} = x;
//	   |         ^ the right-hand side
//
// Columns come from the registry's display-width tables, so tabs and
// wide characters underline correctly.
type Emitter struct {
	cm  *span.SourceMap
	out io.Writer

	// Color disables lipgloss styling when false (e.g. piped output).
	Color bool
}

// NewEmitter returns an emitter writing to out, resolving positions
// through cm.
func NewEmitter(cm *span.SourceMap, out io.Writer) *Emitter {
	return &Emitter{cm: cm, out: out, Color: true}
}

// Handle renders one diagnostic.
func (e *Emitter) Handle(d *Diagnostic) {
	e.println(e.styled(severityStyle(d.Severity), fmt.Sprintf("%s:", d.Severity)) + " " + d.Message)

	if primary, ok := d.Span.PrimarySpan(); ok && !primary.IsDummy() {
		e.renderSnippet(d, primary)
	}

	for _, note := range d.Notes {
		e.println(e.styled(styleNote, "note:") + " " + note)
	}
	e.println("")
}

func (e *Emitter) renderSnippet(d *Diagnostic, primary span.Span) {
	loc, err := e.cm.LookupChar(primary.Lo())
	if err != nil {
		return
	}

	e.println(fmt.Sprintf("  --> %s:%d:%d", loc.File.Name, loc.Line, int(loc.Col)+1))

	gutterWidth := len(fmt.Sprintf("%d", loc.Line))
	blank := strings.Repeat(" ", gutterWidth)
	e.println(e.styled(styleGutter, fmt.Sprintf(" %s |", blank)))

	for _, sl := range d.Span.SpanLabels() {
		slLoc, err := e.cm.LookupChar(sl.Span.Lo())
		if err != nil || slLoc.File != loc.File {
			continue
		}
		lineText, ok := slLoc.File.GetLine(slLoc.Line - 1)
		if !ok {
			continue
		}

		e.println(e.styled(styleGutter, fmt.Sprintf(" %*d |", gutterWidth, slLoc.Line)) + " " + lineText)

		underline := e.underline(sl, slLoc)
		e.println(e.styled(styleGutter, fmt.Sprintf(" %s |", blank)) + " " + underline)
	}
}

// underline draws ^^^^ for primary spans and ---- for secondary ones,
// using display columns.
func (e *Emitter) underline(sl span.SpanLabel, loc span.Loc) string {
	hiLoc, err := e.cm.LookupChar(sl.Span.Hi())
	width := 1
	if err == nil && hiLoc.Line == loc.Line && hiLoc.ColDisplay > loc.ColDisplay {
		width = hiLoc.ColDisplay - loc.ColDisplay
	}

	pad := strings.Repeat(" ", loc.ColDisplay)
	mark := "^"
	style := styleCaret
	if !sl.IsPrimary {
		mark = "-"
		style = styleDash
	}
	out := pad + e.styled(style, strings.Repeat(mark, width))
	if sl.HasLabel {
		out += " " + e.styled(style, sl.Label)
	}
	return out
}

func severityStyle(s Severity) lipgloss.Style {
	switch s {
	case SeverityError:
		return styleError
	case SeverityWarning:
		return styleWarning
	default:
		return styleNote
	}
}

func (e *Emitter) styled(style lipgloss.Style, s string) string {
	if !e.Color {
		return s
	}
	return style.Render(s)
}

func (e *Emitter) println(s string) {
	fmt.Fprintln(e.out, s)
}
