package span

import "fmt"

// FileNameKind differentiates real files from the common virtual
// sources a compiler session produces.
type FileNameKind uint8

const (
	// FileNameReal is a file that exists on disk.
	FileNameReal FileNameKind = iota

	// FileNameMacros is a macro; the label carries the full macro name
	// so that there are no clashes.
	FileNameMacros

	// FileNameQuoteExpansion is a call to the quoting builder.
	FileNameQuoteExpansion

	// FileNameAnon is command-line input.
	FileNameAnon

	// FileNameMacroExpansion is source synthesized during expansion.
	FileNameMacroExpansion

	// FileNameProcMacroSourceCode is source received from an external
	// macro processor.
	FileNameProcMacroSourceCode

	// FileNameCustom is a custom source for explicit parser calls from
	// plugins and drivers.
	FileNameCustom
)

// FileName identifies the origin of a SourceFile. Only the Real kind
// maps to a filesystem path; every other kind is virtual and renders
// between angle brackets. The zero value is Real("").
//
// FileName is comparable and may be used as a map key.
type FileName struct {
	Kind FileNameKind

	// Label is the path for Real, the macro name for Macros, and the
	// label for Custom. Empty for the remaining kinds.
	Label string
}

// RealFileName returns a FileName for a file on disk.
func RealFileName(path string) FileName { return FileName{Kind: FileNameReal, Label: path} }

// MacrosFileName returns a virtual FileName for the named macro.
func MacrosFileName(name string) FileName { return FileName{Kind: FileNameMacros, Label: name} }

// CustomFileName returns a virtual FileName with an explicit label.
func CustomFileName(label string) FileName { return FileName{Kind: FileNameCustom, Label: label} }

// AnonFileName returns the FileName used for command-line input.
func AnonFileName() FileName { return FileName{Kind: FileNameAnon} }

// IsReal reports whether the name maps to a filesystem path.
func (f FileName) IsReal() bool { return f.Kind == FileNameReal }

// IsMacros reports whether the name identifies a macro.
func (f FileName) IsMacros() bool { return f.Kind == FileNameMacros }

func (f FileName) String() string {
	switch f.Kind {
	case FileNameReal:
		return f.Label
	case FileNameMacros:
		return fmt.Sprintf("<%s macros>", f.Label)
	case FileNameQuoteExpansion:
		return "<quote expansion>"
	case FileNameAnon:
		return "<anon>"
	case FileNameMacroExpansion:
		return "<macro expansion>"
	case FileNameProcMacroSourceCode:
		return "<proc-macro source code>"
	case FileNameCustom:
		return fmt.Sprintf("<%s>", f.Label)
	default:
		return "<unknown>"
	}
}

// Less orders FileNames by kind first, then label.
func (f FileName) Less(other FileName) bool {
	if f.Kind != other.Kind {
		return f.Kind < other.Kind
	}
	return f.Label < other.Label
}
