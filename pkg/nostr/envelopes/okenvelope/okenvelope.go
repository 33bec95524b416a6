package okenvelope

import (
	"strconv"

	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/enveloper"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/labels"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/eventid"
	"github.com/mailru/easyjson/jwriter"
	"github.com/tidwall/gjson"
)

// Reason is the machine readable prefix of a rejection message.
type Reason string

const (
	PoW         Reason = "pow"
	Duplicate   Reason = "duplicate"
	Blocked     Reason = "blocked"
	RateLimited Reason = "rate-limited"
	Invalid     Reason = "invalid"
	Error       Reason = "error"
)

// Message joins a reason prefix and a human readable text in the form
// clients expect, "prefix: text".
func Message(reason Reason, text string) string {
	return string(reason) + ": " + text
}

var _ enveloper.I = (*T)(nil)

// T is a relay message sent in response to an EVENT to indicate acceptance
// (OK is true), or rejection with a Reason for clients to display to users,
// see Message.
//
//	["OK",<event id>,<accepted>,<reason>]
type T struct {
	ID     eventid.T
	OK     bool
	Reason string
}

func New(id eventid.T, ok bool, reason string) *T {
	return &T{ID: id, OK: ok, Reason: reason}
}

func (env *T) Label() string { return labels.OK }

func (env *T) Bytes() []byte {
	return enveloper.Write(labels.OK, func(w *jwriter.Writer) {
		enveloper.Field(w, env.ID.String())
		w.RawByte(',')
		w.RawString(strconv.FormatBool(env.OK))
		enveloper.Field(w, env.Reason)
	})
}

func (env *T) String() string { return string(env.Bytes()) }

func (env *T) MarshalJSON() ([]byte, error) { return env.Bytes(), nil }

func (env *T) UnmarshalJSON(b []byte) error { return enveloper.Unmarshal(b, env) }

func (env *T) Decode(elems []gjson.Result) (err error) {
	if err = enveloper.Arity(labels.OK, elems, 4); err != nil {
		return
	}
	var id, reason string
	var ok bool
	if id, err = enveloper.String(labels.OK, elems, 1); err != nil {
		return
	}
	if ok, err = enveloper.Bool(labels.OK, elems, 2); err != nil {
		return
	}
	if reason, err = enveloper.String(labels.OK, elems, 3); err != nil {
		return
	}
	env.ID, env.OK, env.Reason = eventid.T(id), ok, reason
	return
}
