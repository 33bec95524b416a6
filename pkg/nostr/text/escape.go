// Package text implements the string escaping that nostr requires for both
// the canonical event serialization and the wire messages.
package text

import "unicode/utf8"

const hexDigits = "0123456789abcdef"

// AppendQuoted appends s to dst as a quoted JSON string, escaped as NIP-01
// specifies: quotation mark, reverse solidus and the control characters get
// escapes, everything else is copied as raw UTF-8.
//
// This differs from encoding/json, which also escapes <, >, & and U+2028/9,
// and so would produce different event ids. Bytes that are not valid UTF-8
// are written as U+FFFD so the output is always valid UTF-8 text, and a
// decoded copy hashes the same.
func AppendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= utf8.RuneSelf:
			r, size := utf8.DecodeRuneInString(s[i:])
			if r == utf8.RuneError && size == 1 {
				dst = utf8.AppendRune(dst, utf8.RuneError)
				continue
			}
			dst = append(dst, s[i:i+size]...)
			i += size - 1
		case c == '"':
			dst = append(dst, '\\', '"')
		case c == '\\':
			dst = append(dst, '\\', '\\')
		case c >= 0x20:
			dst = append(dst, c)
		case c == '\b':
			dst = append(dst, '\\', 'b')
		case c == '\t':
			dst = append(dst, '\\', 't')
		case c == '\n':
			dst = append(dst, '\\', 'n')
		case c == '\f':
			dst = append(dst, '\\', 'f')
		case c == '\r':
			dst = append(dst, '\\', 'r')
		default:
			dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
		}
	}
	return append(dst, '"')
}

// Quote returns s as an escaped and quoted JSON string.
func Quote(s string) []byte { return AppendQuoted(nil, s) }

// AppendStringArray appends a JSON array of escaped strings.
func AppendStringArray(dst []byte, ss []string) []byte {
	dst = append(dst, '[')
	for i := range ss {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = AppendQuoted(dst, ss[i])
	}
	return append(dst, ']')
}
