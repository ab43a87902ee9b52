package web

import (
	"bytes"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// textForm remembers how a file was stored so it can be written back the
// same way.
type textForm struct {
	bom []byte            // UTF-8 byte-order mark, kept verbatim
	enc encoding.Encoding // set for UTF-16 only
}

// detectForm picks the text form from a byte-order mark. Files without one
// are treated as UTF-8-compatible bytes.
func detectForm(raw []byte) textForm {
	switch {
	case bytes.HasPrefix(raw, bomUTF8):
		return textForm{bom: bomUTF8}
	case bytes.HasPrefix(raw, bomUTF16LE):
		return textForm{enc: unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)}
	case bytes.HasPrefix(raw, bomUTF16BE):
		return textForm{enc: unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM)}
	default:
		return textForm{}
	}
}

// decodeText returns raw as a Go string plus its form. UTF-8 and unmarked
// files are passed through byte for byte, so invalid sequences (Latin-1
// text, say) survive outside the removed spans. UTF-16 is transcoded.
func decodeText(raw []byte) (string, textForm, error) {
	f := detectForm(raw)
	if f.enc == nil {
		return string(raw[len(f.bom):]), f, nil
	}
	b, err := f.enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", textForm{}, err
	}
	return string(b), f, nil
}

// encodeText converts s back to form f, restoring any byte-order mark.
func encodeText(s string, f textForm) ([]byte, error) {
	if f.enc != nil {
		return f.enc.NewEncoder().Bytes([]byte(s))
	}
	out := make([]byte, 0, len(f.bom)+len(s))
	out = append(out, f.bom...)
	return append(out, s...), nil
}
