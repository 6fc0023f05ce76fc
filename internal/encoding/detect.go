// Package encoding normalises uploaded seed files to UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const sniffLen = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decoders maps chardet charset names to their decoders. UTF-8 needs none.
var decoders = map[string]xenc.Encoding{
	"ISO-8859-1":   charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"ISO-8859-9":   charmap.ISO8859_9,
	"ISO-8859-15":  charmap.ISO8859_15,
	"ISO-8859-2":   charmap.ISO8859_2,
	"windows-1250": charmap.Windows1250,
	"UTF-16LE":     unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"UTF-16BE":     unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
}

// Detect names the charset of the sniffed prefix buf.
//
// Detection order:
//  1. Byte order mark
//  2. Valid UTF-8
//  3. Heuristic detection via chardet, limited to charsets we can decode
//  4. Fallback to windows-1252
func Detect(buf []byte) string {
	switch {
	case bytes.HasPrefix(buf, bomUTF8):
		return "UTF-8"
	case bytes.HasPrefix(buf, bomUTF16LE):
		return "UTF-16LE"
	case bytes.HasPrefix(buf, bomUTF16BE):
		return "UTF-16BE"
	case utf8.Valid(buf):
		return "UTF-8"
	}

	result, err := chardet.NewTextDetector().DetectBest(buf)
	if err == nil {
		if _, ok := decoders[result.Charset]; ok || result.Charset == "UTF-8" {
			return result.Charset
		}
	}

	return "windows-1252"
}

// NewUTF8Reader detects the encoding of r and returns a reader that yields
// UTF-8 with any byte order mark removed.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	buf, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	if len(buf) == sniffLen {
		buf = trimPartialRune(buf)
	}

	charset := Detect(buf)

	switch {
	case bytes.HasPrefix(buf, bomUTF8):
		_, _ = br.Discard(len(bomUTF8))
	case bytes.HasPrefix(buf, bomUTF16LE), bytes.HasPrefix(buf, bomUTF16BE):
		_, _ = br.Discard(2)
	}

	dec, ok := decoders[charset]
	if !ok {
		return br, nil
	}

	return transform.NewReader(br, dec.NewDecoder()), nil
}

// trimPartialRune drops a multi-byte sequence cut off by the sniff window.
func trimPartialRune(b []byte) []byte {
	for i := 1; i <= utf8.UTFMax && i <= len(b); i++ {
		if !utf8.RuneStart(b[len(b)-i]) {
			continue
		}

		if !utf8.FullRune(b[len(b)-i:]) {
			return b[:len(b)-i]
		}

		return b
	}

	return b
}
