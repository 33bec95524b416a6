package event

import (
	"fmt"

	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/eventid"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/kind"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/tag"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/tags"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/text"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/timestamp"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/wire/scan"
	"github.com/mailru/easyjson/jwriter"
	"github.com/tidwall/gjson"
)

// Keys in the order they are written.
const (
	KeyID        = "id"
	KeyPubKey    = "pubkey"
	KeyCreatedAt = "created_at"
	KeyKind      = "kind"
	KeyTags      = "tags"
	KeyContent   = "content"
	KeySig       = "sig"
)

var keys = []string{KeyID, KeyPubKey, KeyCreatedAt, KeyKind, KeyTags,
	KeyContent, KeySig}

// MarshalTo writes the event object into a jwriter.Writer.
func (ev *T) MarshalTo(w *jwriter.Writer) {
	w.RawString(`{"id":`)
	w.Raw(text.Quote(string(ev.ID)), nil)
	w.RawString(`,"pubkey":`)
	w.Raw(text.Quote(ev.PubKey), nil)
	w.RawString(`,"created_at":`)
	w.Int64(ev.CreatedAt.I64())
	w.RawString(`,"kind":`)
	w.Uint16(uint16(ev.Kind))
	w.RawString(`,"tags":`)
	w.Raw(ev.Tags.MarshalTo(nil), nil)
	w.RawString(`,"content":`)
	w.Raw(text.Quote(ev.Content), nil)
	w.RawString(`,"sig":`)
	w.Raw(text.Quote(ev.Sig), nil)
	w.RawByte('}')
}

// Serialize renders the event as a JSON object with keys in fixed order.
func (ev *T) Serialize() (b []byte) {
	w := jwriter.Writer{}
	ev.MarshalTo(&w)
	b, _ = w.BuildBytes()
	return
}

func (ev *T) MarshalJSON() ([]byte, error) { return ev.Serialize(), nil }

// UnmarshalJSON decodes an event object. All seven fields must be present and
// have the right JSON type; keys other than these are ignored. On error the
// receiver is left unchanged.
func (ev *T) UnmarshalJSON(b []byte) (err error) {
	var r gjson.Result
	if r, err = scan.Parse(b); err != nil {
		return
	}
	var e *T
	if e, err = FromResult(r); err != nil {
		return
	}
	*ev = *e
	return
}

// FromResult decodes an event from an already parsed JSON value, as found
// inside an envelope.
func FromResult(r gjson.Result) (ev *T, err error) {
	if err = scan.Object(r); err != nil {
		return
	}
	fields := make(map[string]gjson.Result, len(keys))
	r.ForEach(func(k, v gjson.Result) bool {
		fields[k.Str] = v
		return true
	})
	for _, k := range keys {
		if _, ok := fields[k]; !ok {
			err = fmt.Errorf("event: missing field %q", k)
			return
		}
	}
	e := &T{}
	var s string
	if s, err = scan.String(fields[KeyID]); err != nil {
		return nil, fieldErr(KeyID, err)
	}
	e.ID = eventid.T(s)
	if e.PubKey, err = scan.String(fields[KeyPubKey]); err != nil {
		return nil, fieldErr(KeyPubKey, err)
	}
	var ts int64
	if ts, err = scan.Int64(fields[KeyCreatedAt]); err != nil {
		return nil, fieldErr(KeyCreatedAt, err)
	}
	e.CreatedAt = timestamp.T(ts)
	var k uint64
	if k, err = scan.Uint(fields[KeyKind], kind.MaxValue); err != nil {
		return nil, fieldErr(KeyKind, err)
	}
	e.Kind = kind.T(k)
	if e.Tags, err = tagsFromResult(fields[KeyTags]); err != nil {
		return nil, fieldErr(KeyTags, err)
	}
	if e.Content, err = scan.String(fields[KeyContent]); err != nil {
		return nil, fieldErr(KeyContent, err)
	}
	if e.Sig, err = scan.String(fields[KeySig]); err != nil {
		return nil, fieldErr(KeySig, err)
	}
	return e, nil
}

func fieldErr(key string, err error) error {
	return fmt.Errorf("event: field %q: %w", key, err)
}

func tagsFromResult(r gjson.Result) (t tags.T, err error) {
	var a []gjson.Result
	if a, err = scan.Array(r); err != nil {
		return
	}
	t = make(tags.T, len(a))
	for i := range a {
		var ss []string
		if ss, err = scan.Strings(a[i]); err != nil {
			return nil, fmt.Errorf("tag %d: %w", i, err)
		}
		t[i] = tag.T(ss)
	}
	return
}
