package tags

import (
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/tag"
)

// T is a list of T - which are lists of string elements with ordering and no
// uniqueness constraint (not a set).
type T []tag.T

// ContainsAnyValue reports whether any of the values equals any element of
// any tag, regardless of the tag's key or position.
func (t T) ContainsAnyValue(values []string) bool {
	for _, v := range values {
		for _, tg := range t {
			if tg.Contains(v) {
				return true
			}
		}
	}
	return false
}

// MarshalTo appends the tags as a JSON array of arrays. Nil and empty tags
// both encode as [].
func (t T) MarshalTo(dst []byte) []byte {
	dst = append(dst, '[')
	for i, tt := range t {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = tt.MarshalTo(dst)
	}
	dst = append(dst, ']')
	return dst
}

func (t T) String() string { return string(t.MarshalTo(nil)) }

// Clone returns a deep copy so that the copy shares no backing arrays.
func (t T) Clone() (c T) {
	if t == nil {
		return nil
	}
	c = make(T, len(t))
	for i := range t {
		c[i] = append(tag.T(nil), t[i]...)
	}
	return
}
