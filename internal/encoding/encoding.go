// Package encoding decodes uploaded statement files to UTF-8. Spreadsheets
// exported on Windows machines commonly arrive as Windows-1252 or UTF-16.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const sniffLen = 4096

// charsets maps chardet results to decoders. Charsets chardet may report but
// that are absent here fall through to the Windows-1252 default.
var charsets = map[string]encoding.Encoding{
	"ISO-8859-1":   charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"ISO-8859-15":  charmap.ISO8859_15,
	"UTF-16LE":     unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	"UTF-16BE":     unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
}

// NewReader sniffs the charset of r and returns a reader producing UTF-8.
// A UTF-8 BOM is stripped; valid UTF-8 passes through untouched; anything
// else is decoded according to detection, defaulting to Windows-1252.
func NewReader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	buf, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("sniffing input: %w", err)
	}

	if bytes.HasPrefix(buf, []byte{0xEF, 0xBB, 0xBF}) {
		_, _ = br.Discard(3)
		return br, nil
	}

	if enc := bomEncoding(buf); enc != nil {
		return transform.NewReader(br, enc.NewDecoder()), nil
	}

	if utf8.Valid(buf) {
		return br, nil
	}

	if best, err := chardet.NewTextDetector().DetectBest(buf); err == nil {
		if best.Charset == "UTF-8" {
			return br, nil
		}

		if enc, ok := charsets[best.Charset]; ok {
			return transform.NewReader(br, enc.NewDecoder()), nil
		}
	}

	return transform.NewReader(br, charmap.Windows1252.NewDecoder()), nil
}

func bomEncoding(buf []byte) encoding.Encoding {
	switch {
	case bytes.HasPrefix(buf, []byte{0xFF, 0xFE}):
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case bytes.HasPrefix(buf, []byte{0xFE, 0xFF}):
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	}

	return nil
}
