package process

import (
	"bufio"
	"bytes"
	"io"
	"iter"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewTextReader returns a reader over captured output with any UTF-8 or UTF-16
// byte order mark removed. UTF-16 output is transcoded to UTF-8; output without
// a BOM passes through unchanged.
func NewTextReader(b []byte) io.Reader {
	return transform.NewReader(bytes.NewReader(b), unicode.BOMOverride(encoding.Nop.NewDecoder()))
}

// Lines returns a lazy sequence over the lines of captured output. Each range
// over the sequence starts from the first line again. Line terminators,
// including a trailing carriage return, are stripped.
func Lines(b []byte) iter.Seq[string] {
	return func(yield func(string) bool) {
		scanner := bufio.NewScanner(NewTextReader(b))
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}
	}
}

// FirstLine returns the first line of captured output, or "" when there is none.
func FirstLine(b []byte) string {
	for line := range Lines(b) {
		return line
	}
	return ""
}
