package closedenvelope

import (
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/enveloper"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/labels"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/subscriptionid"
	"github.com/mailru/easyjson/jwriter"
	"github.com/tidwall/gjson"
)

var _ enveloper.I = (*T)(nil)

// T is a message the relay sends when it ends a subscription on its own
// accord, with a reason in the same prefix form as an OK.
//
//	["CLOSED",<subscription id>,<reason>]
type T struct {
	ID     subscriptionid.T
	Reason string
}

func New(id subscriptionid.T, reason string) *T {
	return &T{ID: id, Reason: reason}
}

func (env *T) Label() string { return labels.CLOSED }

func (env *T) Bytes() []byte {
	return enveloper.Write(labels.CLOSED, func(w *jwriter.Writer) {
		enveloper.Field(w, env.ID.String())
		enveloper.Field(w, env.Reason)
	})
}

func (env *T) String() string { return string(env.Bytes()) }

func (env *T) MarshalJSON() ([]byte, error) { return env.Bytes(), nil }

func (env *T) UnmarshalJSON(b []byte) error { return enveloper.Unmarshal(b, env) }

func (env *T) Decode(elems []gjson.Result) (err error) {
	if err = enveloper.Arity(labels.CLOSED, elems, 3); err != nil {
		return
	}
	var id, reason string
	if id, err = enveloper.String(labels.CLOSED, elems, 1); err != nil {
		return
	}
	if reason, err = enveloper.String(labels.CLOSED, elems, 2); err != nil {
		return
	}
	env.ID, env.Reason = subscriptionid.T(id), reason
	return
}
