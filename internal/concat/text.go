package concat

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// binarySample is how much of a file the binary check looks at.
const binarySample = 8 << 10

// IsBinary reports whether data looks binary: a NUL byte or invalid UTF-8
// in the first 8 KiB. A rune cut by the sample boundary does not count.
func IsBinary(data []byte) bool {
	sample := data
	if len(sample) > binarySample {
		sample = sample[:binarySample]
		// отрезаем неполную руну на границе выборки
		for i := 1; i < utf8.UTFMax && i <= len(sample); i++ {
			if utf8.RuneStart(sample[len(sample)-i]) {
				if !utf8.FullRune(sample[len(sample)-i:]) {
					sample = sample[:len(sample)-i]
				}
				break
			}
		}
	}
	if bytes.IndexByte(sample, 0) >= 0 {
		return true
	}
	return !utf8.Valid(sample)
}

// DecodeText converts file bytes to UTF-8. A UTF-8 BOM is dropped, UTF-16
// BOMs switch the decoding and invalid sequences become U+FFFD.
func DecodeText(data []byte) []byte {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		// декодер заменяет ошибки на U+FFFD, сюда попадать не должны
		return bytes.ToValidUTF8(data, []byte("\uFFFD"))
	}
	return out
}

// NormalizeEOL rewrites CRLF and lone CR as LF.
func NormalizeEOL(text []byte) []byte {
	if bytes.IndexByte(text, '\r') < 0 {
		return text
	}
	text = bytes.ReplaceAll(text, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(text, []byte("\r"), []byte("\n"))
}
