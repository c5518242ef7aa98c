package fnt

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
)

// CharEncoding is the FINF character-encoding selector. It decides how the
// raw character codes stored in CMAP blocks translate to displayable
// characters; the glyph-index resolution itself is encoding-agnostic.
type CharEncoding uint8

const (
	EncodingUTF16    CharEncoding = iota // codes are Unicode scalar values
	EncodingShiftJIS                     // Shift-JIS byte sequences
	EncodingCP1252                       // Windows-1252 single bytes
	EncodingCP932                        // CP932, decoded as Shift-JIS
)

func (e CharEncoding) String() string {
	switch e {
	case EncodingUTF16:
		return "UTF-16"
	case EncodingShiftJIS:
		return "ShiftJIS"
	case EncodingCP1252:
		return "CP1252"
	case EncodingCP932:
		return "CP932"
	}
	return "unknown"
}

func (e CharEncoding) decoder() *encoding.Decoder {
	switch e {
	case EncodingShiftJIS, EncodingCP932:
		return japanese.ShiftJIS.NewDecoder()
	case EncodingCP1252:
		return charmap.Windows1252.NewDecoder()
	}
	return nil
}

// DecodeRune translates a raw character code to a display rune. It reports
// false for control codes and for codes the encoding cannot decode; such
// glyphs simply have no display character.
func (e CharEncoding) DecodeRune(code uint32) (rune, bool) {
	if code < 0x20 {
		return 0, false
	}
	dec := e.decoder()
	if dec == nil {
		r := rune(code)
		if !utf8.ValidRune(r) {
			return 0, false
		}
		return r, true
	}
	raw := codeBytes(code)
	decoded, err := dec.Bytes(raw)
	if err != nil || len(decoded) == 0 {
		return 0, false
	}
	r, _ := utf8.DecodeRune(decoded)
	if r == utf8.RuneError {
		return 0, false
	}
	return r, true
}

// codeBytes renders a character code as its stored byte sequence:
// single byte for codes below 0x100, lead byte first otherwise.
func codeBytes(code uint32) []byte {
	if code < 0x100 {
		return []byte{byte(code)}
	}
	return []byte{byte(code >> 8), byte(code)}
}
