// Package encoding normalizes operator-supplied text (template sources and
// rule or pack definitions) to UTF-8 before it is parsed or stored.
package encoding

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// sniffLen bounds how much input the charset detector looks at.
const sniffLen = 8 << 10

var boms = []struct {
	prefix []byte
	dec    encoding.Encoding
}{
	{[]byte{0xEF, 0xBB, 0xBF}, nil},
	{[]byte{0xFF, 0xFE}, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)},
	{[]byte{0xFE, 0xFF}, unicode.UTF16(unicode.BigEndian, unicode.UseBOM)},
}

var charsets = map[string]encoding.Encoding{
	"iso-8859-1":   charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"iso-8859-15":  charmap.ISO8859_15,
	"iso-8859-9":   charmap.ISO8859_9,
	"utf-16le":     unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"utf-16be":     unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
}

// ToUTF8 returns buf decoded to UTF-8. A byte order mark decides first and is
// stripped; valid UTF-8 passes through; otherwise the charset is guessed and
// Windows-1252 is assumed when the guess is unusable.
func ToUTF8(buf []byte) ([]byte, error) {
	for _, b := range boms {
		if !bytes.HasPrefix(buf, b.prefix) {
			continue
		}

		if b.dec == nil {
			return buf[len(b.prefix):], nil
		}

		return decode(buf, b.dec)
	}

	if utf8.Valid(buf) {
		return buf, nil
	}

	return decode(buf, Detect(buf))
}

// Detect guesses the encoding of buf, which is known not to be UTF-8.
func Detect(buf []byte) encoding.Encoding {
	sample := buf[:min(len(buf), sniffLen)]

	res, err := chardet.NewTextDetector().DetectBest(sample)
	if err == nil {
		if enc, ok := charsets[strings.ToLower(res.Charset)]; ok {
			return enc
		}
	}

	return charmap.Windows1252
}

func decode(buf []byte, enc encoding.Encoding) ([]byte, error) {
	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(buf), enc.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("decoding to utf-8: %w", err)
	}

	return out, nil
}
