package span

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// MultiByteChar identifies the offset of a multi-byte character in a
// SourceFile.
type MultiByteChar struct {
	// Pos is the absolute offset of the character in the SourceMap.
	Pos BytePos

	// Bytes is the number of bytes the character occupies, >= 2.
	Bytes uint8
}

// NonNarrowCharKind classifies characters whose display width is not 1.
type NonNarrowCharKind uint8

const (
	// ZeroWidth is a character that occupies no display column.
	ZeroWidth NonNarrowCharKind = iota

	// Wide is a fullwidth character occupying two display columns.
	Wide

	// Tab is a tab character, represented visually with a width of
	// four columns.
	Tab
)

// NonNarrowChar identifies the offset of a non-narrow character in a
// SourceFile.
type NonNarrowChar struct {
	Kind NonNarrowCharKind
	Pos  BytePos
}

// Width returns the display width of the character: 0, 2, or 4.
func (c NonNarrowChar) Width() int {
	switch c.Kind {
	case ZeroWidth:
		return 0
	case Wide:
		return 2
	default:
		return 4
	}
}

func nonNarrowChar(pos BytePos, width int) NonNarrowChar {
	switch width {
	case 0:
		return NonNarrowChar{Kind: ZeroWidth, Pos: pos}
	case 2:
		return NonNarrowChar{Kind: Wide, Pos: pos}
	case 4:
		return NonNarrowChar{Kind: Tab, Pos: pos}
	default:
		panic(fmt.Sprintf("span: width %d given for non-narrow character", width))
	}
}

// Hash128 is a stable 128-bit content hash used for incremental
// caching. It is two seeded xxhash64 digests over the same bytes.
type Hash128 struct {
	Lo uint64
	Hi uint64
}

func hash128(data []byte) Hash128 {
	lo := xxhash.New()
	lo.Write(data)
	hi := xxhash.New()
	hi.Write([]byte{0xe5})
	hi.Write(data)
	return Hash128{Lo: lo.Sum64(), Hi: hi.Sum64()}
}

// SourceFile is a single source in the SourceMap. It is immutable once
// created and shared by reference between the registry and consumers.
type SourceFile struct {
	// Name of the file the source came from. Source that doesn't
	// originate from files has names between angle brackets by
	// convention, e.g. <anon>.
	Name FileName

	// NameWasRemapped is true when Name has been rewritten by a path
	// remapping option.
	NameWasRemapped bool

	// UnmappedPath is the pre-remapping name, when one exists.
	UnmappedPath *FileName

	// Src is the complete source text, after BOM stripping.
	Src string

	// SrcHash is a stable hash of Src.
	SrcHash Hash128

	// NameHash is a stable hash of Name, used to speed up incremental
	// cache keys.
	NameHash Hash128

	// StartPos and EndPos delimit this file's half-open interval in
	// the SourceMap. Distinct files never overlap.
	StartPos BytePos
	EndPos   BytePos

	// Lines holds the absolute position of each line start.
	Lines []BytePos

	// MultibyteChars holds the location of every character occupying
	// two or more bytes, in position order.
	MultibyteChars []MultiByteChar

	// NonNarrowChars holds the location of every character whose
	// display width is not one column, in position order.
	NonNarrowChars []NonNarrowChar
}

// NewSourceFile analyzes src and builds a SourceFile starting at
// startPos. A UTF-8 BOM is stripped before analysis, so
// EndPos-StartPos equals the post-strip length.
func NewSourceFile(name FileName, nameWasRemapped bool, unmappedPath FileName, src string, startPos BytePos) *SourceFile {
	src = removeBOM(src)

	lines, multibyte, nonNarrow := analyzeSourceFile(src, startPos)

	unmapped := unmappedPath
	return &SourceFile{
		Name:            name,
		NameWasRemapped: nameWasRemapped,
		UnmappedPath:    &unmapped,
		Src:             src,
		SrcHash:         hash128([]byte(src)),
		NameHash:        hash128([]byte(name.String())),
		StartPos:        startPos,
		EndPos:          startPos + BytePos(len(src)),
		Lines:           lines,
		MultibyteChars:  multibyte,
		NonNarrowChars:  nonNarrow,
	}
}

func (f *SourceFile) String() string { return fmt.Sprintf("SourceFile(%s)", f.Name) }

// IsRealFile reports whether the file's name maps to a path on disk.
func (f *SourceFile) IsRealFile() bool { return f.Name.IsReal() }

// ByteLength returns the length of the file's interval.
func (f *SourceFile) ByteLength() BytePos { return f.EndPos - f.StartPos }

// CountLines returns the number of lines in the file.
func (f *SourceFile) CountLines() int { return len(f.Lines) }

// Contains reports whether pos falls inside the file, end inclusive so
// that a zero-width span at EOF still resolves.
func (f *SourceFile) Contains(pos BytePos) bool {
	return pos >= f.StartPos && pos <= f.EndPos
}

// LookupLine finds the line containing pos. The return value is the
// index into Lines, not a 1-based line number. ok is false when the
// file is empty or pos is located before the first line.
func (f *SourceFile) LookupLine(pos BytePos) (int, bool) {
	if len(f.Lines) == 0 {
		return 0, false
	}
	idx := lookupLine(f.Lines, pos)
	if idx < 0 {
		return 0, false
	}
	return idx, true
}

// LineBeginPos returns the position of the beginning of the line
// containing pos. pos must be inside the file.
func (f *SourceFile) LineBeginPos(pos BytePos) BytePos {
	idx, ok := f.LookupLine(pos)
	if !ok {
		panic(fmt.Sprintf("span: no line for position %d in %s", pos, f.Name))
	}
	return f.Lines[idx]
}

// LineBounds returns the half-open interval of the given 0-based line.
func (f *SourceFile) LineBounds(lineIndex int) (BytePos, BytePos) {
	if f.StartPos == f.EndPos {
		return f.StartPos, f.EndPos
	}
	if lineIndex == len(f.Lines)-1 {
		return f.Lines[lineIndex], f.EndPos
	}
	return f.Lines[lineIndex], f.Lines[lineIndex+1]
}

// GetLine returns the text of the given 0-based line, without the
// trailing newline. ok is false when the line does not exist.
//
// The next line start cannot be used as the bound here: during parsing
// the current line may be the last one we have line info for.
func (f *SourceFile) GetLine(lineIndex int) (string, bool) {
	if lineIndex < 0 || lineIndex >= len(f.Lines) {
		return "", false
	}
	begin := int(f.Lines[lineIndex] - f.StartPos)
	rest := f.Src[begin:]
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[:i]
	}
	return strings.TrimSuffix(rest, "\r"), true
}

// removeBOM strips a leading UTF-8 byte order mark. Idempotent.
func removeBOM(src string) string {
	return strings.TrimPrefix(src, "\uFEFF")
}

// lookupLine returns the index of the line pos is on, or -1 when pos is
// located before the first line start.
func lookupLine(lines []BytePos, pos BytePos) int {
	// sort.Search finds the first line start > pos; the line containing
	// pos is the one before it.
	i := sort.Search(len(lines), func(i int) bool { return lines[i] > pos })
	return i - 1
}

// analyzeSourceFile scans src once, producing the table of line starts
// and the multibyte and non-narrow character records, all with
// absolute positions.
func analyzeSourceFile(src string, startPos BytePos) ([]BytePos, []MultiByteChar, []NonNarrowChar) {
	var (
		lines     []BytePos
		multibyte []MultiByteChar
		nonNarrow []NonNarrowChar
	)

	if len(src) > 0 {
		lines = append(lines, startPos)
	}

	for i, r := range src {
		pos := startPos + BytePos(i)

		size := runeLen(r)
		if size >= 2 {
			multibyte = append(multibyte, MultiByteChar{Pos: pos, Bytes: uint8(size)})
		}

		switch {
		case r == '\n':
			if i+1 < len(src) {
				lines = append(lines, pos+1)
			}
		case r == '\t':
			nonNarrow = append(nonNarrow, nonNarrowChar(pos, 4))
		default:
			if w := runeDisplayWidth(r); w != 1 {
				nonNarrow = append(nonNarrow, nonNarrowChar(pos, w))
			}
		}
	}

	return lines, multibyte, nonNarrow
}

func runeLen(r rune) int {
	switch {
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	default:
		return 4
	}
}

// runeDisplayWidth returns the terminal display width of r: 0 for
// combining and format characters, 2 for East Asian wide and fullwidth
// characters, 1 otherwise. Control characters other than tab are
// treated as zero width.
func runeDisplayWidth(r rune) int {
	if r < 0x20 || (r >= 0x7F && r < 0xA0) {
		return 0
	}
	for _, in := range zeroWidthRanges {
		if r >= in.lo && r <= in.hi {
			return 0
		}
	}
	for _, in := range wideRanges {
		if r >= in.lo && r <= in.hi {
			return 2
		}
	}
	return 1
}

type runeRange struct{ lo, hi rune }

// Combining marks, joiners, and other format characters.
var zeroWidthRanges = []runeRange{
	{0x0300, 0x036F}, // combining diacritical marks
	{0x0483, 0x0489},
	{0x0591, 0x05BD},
	{0x0610, 0x061A},
	{0x064B, 0x065F},
	{0x0E31, 0x0E31},
	{0x0E34, 0x0E3A},
	{0x0E47, 0x0E4E},
	{0x1AB0, 0x1AFF},
	{0x1DC0, 0x1DFF},
	{0x200B, 0x200F}, // zero-width space/joiners, direction marks
	{0x202A, 0x202E},
	{0x2060, 0x2064},
	{0x20D0, 0x20F0},
	{0xFE00, 0xFE0F}, // variation selectors
	{0xFE20, 0xFE2F},
	{0xFEFF, 0xFEFF}, // interior BOM
	{0xE0100, 0xE01EF},
}

// East Asian Wide and Fullwidth blocks.
var wideRanges = []runeRange{
	{0x1100, 0x115F}, // hangul jamo
	{0x2E80, 0x303E}, // CJK radicals, punctuation
	{0x3041, 0x33FF}, // hiragana..CJK compatibility
	{0x3400, 0x4DBF},
	{0x4E00, 0x9FFF}, // CJK unified ideographs
	{0xA000, 0xA4CF},
	{0xAC00, 0xD7A3}, // hangul syllables
	{0xF900, 0xFAFF},
	{0xFE30, 0xFE4F},
	{0xFF00, 0xFF60}, // fullwidth forms
	{0xFFE0, 0xFFE6},
	{0x1F300, 0x1F64F}, // emoji
	{0x1F900, 0x1F9FF},
	{0x20000, 0x2FFFD},
	{0x30000, 0x3FFFD},
}
