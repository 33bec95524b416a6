// Package reqenvelope is the client message that opens a subscription.
package reqenvelope

import (
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/enveloper"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/labels"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/filter"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/subscriptionid"
	"github.com/mailru/easyjson/jwriter"
	"github.com/tidwall/gjson"
)

var _ enveloper.I = (*T)(nil)

// T is a REQ: a client chosen subscription id and the filter that events must
// match to be delivered on it.
//
//	["REQ",<subscription id>,<filter>]
type T struct {
	SubscriptionID subscriptionid.T
	Filter         *filter.T
}

func New(id subscriptionid.T, f *filter.T) *T {
	return &T{SubscriptionID: id, Filter: f}
}

func (env *T) Label() string { return labels.REQ }

func (env *T) Bytes() []byte {
	return enveloper.Write(labels.REQ, func(w *jwriter.Writer) {
		enveloper.Field(w, env.SubscriptionID.String())
		w.RawByte(',')
		if env.Filter == nil {
			w.RawString("{}")
			return
		}
		env.Filter.MarshalTo(w)
	})
}

func (env *T) String() string { return string(env.Bytes()) }

func (env *T) MarshalJSON() ([]byte, error) { return env.Bytes(), nil }

func (env *T) UnmarshalJSON(b []byte) error { return enveloper.Unmarshal(b, env) }

func (env *T) Decode(elems []gjson.Result) (err error) {
	if err = enveloper.Arity(labels.REQ, elems, 3); err != nil {
		return
	}
	var id string
	if id, err = enveloper.String(labels.REQ, elems, 1); err != nil {
		return
	}
	var o gjson.Result
	if o, err = enveloper.Object(labels.REQ, elems, 2); err != nil {
		return
	}
	var f *filter.T
	if f, err = filter.FromResult(o); err != nil {
		return enveloper.Malformed(labels.REQ, 2, err)
	}
	env.SubscriptionID, env.Filter = subscriptionid.T(id), f
	return
}
