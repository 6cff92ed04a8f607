package v2

import "strings"

const upperhex = "0123456789ABCDEF"

// EscapePath percent-encodes an object key or request path. RFC 3986
// unreserved characters and '/' are kept, every other byte is written as
// "%XX" with upper case hex digits.
//
// The result must be used for both the dispatched URL and the canonical
// resource, the server recomputes the signature over the path it received.
func EscapePath(path string) string {
	var b strings.Builder
	b.Grow(len(path))

	for i := 0; i < len(path); i++ {
		c := path[i]
		if isUnreserved(c) || c == '/' {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}
