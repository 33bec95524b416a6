package tag

import (
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/text"
)

// T is a list of strings with a literal ordering.
//
// Not a set, there can be repeating elements.
type T []string

// Contains reports whether any element of the tag, the key included, equals s.
func (t T) Contains(s string) bool {
	for i := range t {
		if t[i] == s {
			return true
		}
	}
	return false
}

// MarshalTo appends the tag as a JSON array of strings escaped as in the
// canonical event form.
func (t T) MarshalTo(dst []byte) []byte { return text.AppendStringArray(dst, t) }

func (t T) String() string { return string(t.MarshalTo(nil)) }
