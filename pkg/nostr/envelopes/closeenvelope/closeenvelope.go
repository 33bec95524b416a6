// Package closeenvelope is the client message that ends a subscription.
package closeenvelope

import (
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/enveloper"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/labels"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/subscriptionid"
	"github.com/mailru/easyjson/jwriter"
	"github.com/tidwall/gjson"
)

var _ enveloper.I = (*T)(nil)

// T is a CLOSE, it names a subscription of the sending connection.
//
//	["CLOSE",<subscription id>]
type T struct {
	ID subscriptionid.T
}

func New(id subscriptionid.T) *T { return &T{ID: id} }

func (env *T) Label() string { return labels.CLOSE }

func (env *T) Bytes() []byte {
	return enveloper.Write(labels.CLOSE, func(w *jwriter.Writer) {
		enveloper.Field(w, env.ID.String())
	})
}

func (env *T) String() string { return string(env.Bytes()) }

func (env *T) MarshalJSON() ([]byte, error) { return env.Bytes(), nil }

func (env *T) UnmarshalJSON(b []byte) error { return enveloper.Unmarshal(b, env) }

func (env *T) Decode(elems []gjson.Result) (err error) {
	if err = enveloper.Arity(labels.CLOSE, elems, 2); err != nil {
		return
	}
	var id string
	if id, err = enveloper.String(labels.CLOSE, elems, 1); err != nil {
		return
	}
	env.ID = subscriptionid.T(id)
	return
}
