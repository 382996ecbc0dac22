package transform

import (
	"encoding/base64"
	"errors"
	"net/url"
	"strings"
	"unicode/utf8"
)

// EncodeBase64 encodes the UTF-8 bytes of s with the standard, padded
// alphabet.
func EncodeBase64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// base64Space is the ASCII white space DecodeBase64 skips. Any other
// character outside the alphabet, Unicode spaces included, is an error.
const base64Space = " \t\n\f\r"

// DecodeBase64 decodes standard-alphabet Base64. ASCII white space anywhere
// in the input is ignored and trailing padding is optional. The decoded
// bytes must form valid UTF-8 text.
func DecodeBase64(s string) (string, error) {
	compact := strings.Map(func(r rune) rune {
		if r < utf8.RuneSelf && strings.IndexByte(base64Space, byte(r)) >= 0 {
			return -1
		}
		return r
	}, s)

	enc := base64.StdEncoding
	if !strings.HasSuffix(compact, "=") && len(compact)%4 != 0 {
		enc = base64.RawStdEncoding
	}
	raw, err := enc.DecodeString(compact)
	if err != nil {
		offset := -1
		var corrupt base64.CorruptInputError
		if errors.As(err, &corrupt) {
			offset = int(corrupt)
		}
		return "", &DecodeError{Op: "base64.decode", Offset: offset, Err: ErrInvalidBase64}
	}
	if !utf8.Valid(raw) {
		return "", &DecodeError{Op: "base64.decode", Offset: -1, Err: ErrInvalidBase64}
	}
	return string(raw), nil
}

// unreservedComponent lists the ASCII bytes left alone by EncodeURL, the
// same set JavaScript's encodeURIComponent keeps.
const unreservedComponent = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_.!~*'()"

const upperHex = "0123456789ABCDEF"

// EncodeURL percent-encodes every byte of s except letters, digits and
// - _ . ! ~ * ' ( ). Spaces become %20, never '+'.
func EncodeURL(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if strings.IndexByte(unreservedComponent, c) >= 0 {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&15])
	}
	return b.String()
}

// DecodeURL reverses EncodeURL. A malformed percent escape or escapes that
// decode to invalid UTF-8 are rejected; '+' is kept literally.
func DecodeURL(s string) (string, error) {
	out, err := url.PathUnescape(s)
	if err != nil {
		offset := -1
		var escErr url.EscapeError
		if errors.As(err, &escErr) {
			offset = strings.Index(s, string(escErr))
		}
		return "", &DecodeError{Op: "url.decode", Offset: offset, Err: ErrInvalidURLEncoding}
	}
	if !utf8.ValidString(out) {
		return "", &DecodeError{Op: "url.decode", Offset: -1, Err: ErrInvalidURLEncoding}
	}
	return out, nil
}
