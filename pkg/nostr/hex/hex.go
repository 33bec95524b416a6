// Package hex is a shorter name for lowercase hexadecimal encoding as used for
// nostr keys, ids and signatures.
package hex

import (
	"encoding/hex"
	"fmt"
)

var (
	Enc = hex.EncodeToString
	Dec = hex.DecodeString
)

// DecLen decodes a hex string that must hold exactly n bytes.
func DecLen(s string, n int) (b []byte, err error) {
	if len(s) != n*2 {
		err = fmt.Errorf("hex string must be %d characters, got %d", n*2, len(s))
		return
	}
	return hex.DecodeString(s)
}

// IsLower reports whether s is made only of lowercase hexadecimal digits.
func IsLower(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
