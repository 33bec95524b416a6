package filter

import (
	"fmt"

	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/kind"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/text"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/timestamp"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/wire/scan"
	"github.com/mailru/easyjson/jwriter"
	"github.com/tidwall/gjson"
)

const (
	KeyIDs     = "ids"
	KeyAuthors = "authors"
	KeyKinds   = "kinds"
	KeyETags   = "#e"
	KeyPTags   = "#p"
	KeySince   = "since"
	KeyUntil   = "until"
	KeyLimit   = "limit"
)

// MarshalTo writes the filter object. Unset fields are left out entirely,
// they are never written as null.
func (f *T) MarshalTo(w *jwriter.Writer) {
	first := true
	key := func(k string) {
		if !first {
			w.RawByte(',')
		}
		first = false
		w.Raw(text.Quote(k), nil)
		w.RawByte(':')
	}
	strs := func(k string, ss []string) {
		if ss == nil {
			return
		}
		key(k)
		w.Raw(text.AppendStringArray(nil, ss), nil)
	}
	w.RawByte('{')
	strs(KeyIDs, f.IDs)
	strs(KeyAuthors, f.Authors)
	if f.Kinds != nil {
		key(KeyKinds)
		w.RawByte('[')
		for i, k := range f.Kinds {
			if i > 0 {
				w.RawByte(',')
			}
			w.Uint16(uint16(k))
		}
		w.RawByte(']')
	}
	strs(KeyETags, f.ETags)
	strs(KeyPTags, f.PTags)
	if f.Since != nil {
		key(KeySince)
		w.Int64(f.Since.I64())
	}
	if f.Until != nil {
		key(KeyUntil)
		w.Int64(f.Until.I64())
	}
	if f.Limit != nil {
		key(KeyLimit)
		w.Int(*f.Limit)
	}
	w.RawByte('}')
}

// Serialize renders the filter as a JSON object.
func (f *T) Serialize() (b []byte) {
	w := jwriter.Writer{}
	f.MarshalTo(&w)
	b, _ = w.BuildBytes()
	return
}

func (f *T) MarshalJSON() ([]byte, error) { return f.Serialize(), nil }

// UnmarshalJSON decodes a filter object. On error the receiver is left
// unchanged.
func (f *T) UnmarshalJSON(b []byte) (err error) {
	if f == nil {
		return fmt.Errorf("cannot unmarshal into nil filter")
	}
	var r gjson.Result
	if r, err = scan.Parse(b); err != nil {
		return
	}
	var dec *T
	if dec, err = FromResult(r); err != nil {
		return
	}
	*f = *dec
	return
}

// FromResult decodes a filter from a parsed JSON value. The known keys must
// have their documented types; other keys, such as tag queries on letters
// other than e and p, are ignored.
func FromResult(r gjson.Result) (f *T, err error) {
	if err = scan.Object(r); err != nil {
		return
	}
	f = &T{}
	// ForEach rather than Get, gjson paths give '#' a meaning of their own.
	r.ForEach(func(k, v gjson.Result) bool {
		switch k.Str {
		case KeyIDs:
			f.IDs, err = scan.Strings(v)
		case KeyAuthors:
			f.Authors, err = scan.Strings(v)
		case KeyKinds:
			f.Kinds, err = kindsFromResult(v)
		case KeyETags:
			f.ETags, err = scan.Strings(v)
		case KeyPTags:
			f.PTags, err = scan.Strings(v)
		case KeySince:
			f.Since, err = timestampFromResult(v)
		case KeyUntil:
			f.Until, err = timestampFromResult(v)
		case KeyLimit:
			var l int64
			if l, err = scan.Int64(v); err == nil {
				n := int(l)
				f.Limit = &n
			}
		default:
			log.T.F("ignoring filter key %q", k.Str)
		}
		if err != nil {
			err = fmt.Errorf("filter: key %q: %w", k.Str, err)
			return false
		}
		return true
	})
	if err != nil {
		f = nil
	}
	return
}

func kindsFromResult(r gjson.Result) (k []kind.T, err error) {
	var a []gjson.Result
	if a, err = scan.Array(r); err != nil {
		return
	}
	k = make([]kind.T, len(a))
	for i := range a {
		var u uint64
		if u, err = scan.Uint(a[i], kind.MaxValue); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		k[i] = kind.T(u)
	}
	return
}

func timestampFromResult(r gjson.Result) (t *timestamp.T, err error) {
	var i int64
	if i, err = scan.Int64(r); err != nil {
		return
	}
	return timestamp.T(i).Ptr(), nil
}
