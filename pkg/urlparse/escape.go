package urlparse

import (
	"strings"
)

const upperhex = "0123456789ABCDEF"

// isUnreserved reports whether c is never escaped (RFC 3986 unreserved).
func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '_', c == '.', c == '~':
		return true
	}

	return false
}

// Quote percent-escapes every byte of s except unreserved characters and
// the bytes listed in safe. Multi-byte runes are escaped byte by byte.
func Quote(s, safe string) string {
	return quote(s, safe, false)
}

// QuotePlus behaves like Quote but renders spaces as '+', the form encoding
// used in query strings.
func QuotePlus(s, safe string) string {
	return quote(s, safe, true)
}

func quote(s, safe string, spaceToPlus bool) string {
	var b strings.Builder

	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case isUnreserved(c), strings.IndexByte(safe, c) >= 0:
			b.WriteByte(c)
		case c == ' ' && spaceToPlus:
			b.WriteByte('+')
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&15])
		}
	}

	return b.String()
}

// Unquote decodes %XX escapes in s. Malformed escapes are kept verbatim
// rather than reported, so the function never fails.
func Unquote(s string) string {
	if strings.IndexByte(s, '%') < 0 {
		return s
	}

	var b strings.Builder

	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2

			continue
		}

		b.WriteByte(s[i])
	}

	return b.String()
}

// UnquotePlus converts '+' to space before decoding escapes.
func UnquotePlus(s string) string {
	return Unquote(strings.ReplaceAll(s, "+", " "))
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
