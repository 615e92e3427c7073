// Package span provides the source position and hygiene model for the
// eslower toolchain: absolute byte positions across all loaded files,
// interned spans carrying macro-expansion contexts, and the session
// globals that back both.
package span

// BytePos is an absolute byte offset from the beginning of the source
// map, not an offset relative to a single file. Keep it small (32 bits);
// the AST contains a lot of them.
type BytePos uint32

// CharPos is a character offset. Because of multibyte UTF-8 characters,
// a byte offset is not equivalent to a character offset. The SourceMap
// converts BytePos values to CharPos values as necessary.
type CharPos int

// Add returns p advanced by n bytes.
func (p BytePos) Add(n BytePos) BytePos { return p + n }

// Sub returns the distance from n to p. Underflow is a bug in the
// caller, as it is for ordinary unsigned arithmetic.
func (p BytePos) Sub(n BytePos) BytePos { return p - n }

func (p CharPos) Add(n CharPos) CharPos { return p + n }
func (p CharPos) Sub(n CharPos) CharPos { return p - n }
