package eventid

import (
	"fmt"

	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/hex"
)

// Len is the length of a hex encoded event id.
const Len = 64

// T is the SHA256 hash in hexadecimal of the canonical form of an event.
type T string

func (ei T) String() string { return string(ei) }

// Bytes decodes the id. A malformed id returns nil.
func (ei T) Bytes() (b []byte) {
	var err error
	if b, err = hex.Dec(string(ei)); err != nil {
		return nil
	}
	return
}

// New inspects a string and ensures it is a valid, 64 character long
// hexadecimal string, returns the string coerced to the type.
func New(s string) (ei T, err error) {
	ei = T(s)
	if err = ei.Validate(); err != nil {
		ei = ""
	}
	return
}

// Validate checks the T string is lowercase hex and 64 characters long.
func (ei T) Validate() (err error) {
	if len(ei) != Len {
		return fmt.Errorf("event ID invalid length: got %d expect %d", len(ei), Len)
	}
	if !hex.IsLower(string(ei)) {
		return fmt.Errorf("event ID is not lowercase hex: '%s'", string(ei))
	}
	return
}
