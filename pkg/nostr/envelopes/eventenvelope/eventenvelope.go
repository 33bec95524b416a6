// Package eventenvelope holds both directions of the EVENT message: a
// Submission from a client publishing an event, and a Delivery from a relay
// forwarding one to a subscription.
package eventenvelope

import (
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/enveloper"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/labels"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/event"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/subscriptionid"
	"github.com/mailru/easyjson/jwriter"
	"github.com/tidwall/gjson"
)

var (
	_ enveloper.I = (*Submission)(nil)
	_ enveloper.I = (*Delivery)(nil)
)

// Submission is an event published by a client.
//
//	["EVENT",<event>]
type Submission struct {
	Event *event.T
}

func NewSubmission(ev *event.T) *Submission { return &Submission{Event: ev} }

func (env *Submission) Label() string { return labels.EVENT }

func (env *Submission) Bytes() []byte {
	return enveloper.Write(labels.EVENT, func(w *jwriter.Writer) {
		w.RawByte(',')
		writeEvent(w, env.Event)
	})
}

func (env *Submission) String() string { return string(env.Bytes()) }

func (env *Submission) MarshalJSON() ([]byte, error) { return env.Bytes(), nil }

func (env *Submission) UnmarshalJSON(b []byte) error {
	return enveloper.Unmarshal(b, env)
}

func (env *Submission) Decode(elems []gjson.Result) (err error) {
	if err = enveloper.Arity(labels.EVENT, elems, 2); err != nil {
		return
	}
	var ev *event.T
	if ev, err = readEvent(elems, 1); err != nil {
		return
	}
	env.Event = ev
	return
}

// Delivery is an event sent by a relay to a subscription that it matched.
//
//	["EVENT",<subscription id>,<event>]
type Delivery struct {
	SubscriptionID subscriptionid.T
	Event          *event.T
}

func NewDelivery(id subscriptionid.T, ev *event.T) *Delivery {
	return &Delivery{SubscriptionID: id, Event: ev}
}

func (env *Delivery) Label() string { return labels.EVENT }

func (env *Delivery) Bytes() []byte {
	return enveloper.Write(labels.EVENT, func(w *jwriter.Writer) {
		enveloper.Field(w, env.SubscriptionID.String())
		w.RawByte(',')
		writeEvent(w, env.Event)
	})
}

func (env *Delivery) String() string { return string(env.Bytes()) }

func (env *Delivery) MarshalJSON() ([]byte, error) { return env.Bytes(), nil }

func (env *Delivery) UnmarshalJSON(b []byte) error {
	return enveloper.Unmarshal(b, env)
}

func (env *Delivery) Decode(elems []gjson.Result) (err error) {
	if err = enveloper.Arity(labels.EVENT, elems, 3); err != nil {
		return
	}
	var id string
	if id, err = enveloper.String(labels.EVENT, elems, 1); err != nil {
		return
	}
	var ev *event.T
	if ev, err = readEvent(elems, 2); err != nil {
		return
	}
	env.SubscriptionID, env.Event = subscriptionid.T(id), ev
	return
}

func writeEvent(w *jwriter.Writer, ev *event.T) {
	if ev == nil {
		// an empty event still encodes as an object with every key
		ev = &event.T{}
	}
	ev.MarshalTo(w)
}

func readEvent(elems []gjson.Result, pos int) (ev *event.T, err error) {
	var o gjson.Result
	if o, err = enveloper.Object(labels.EVENT, elems, pos); err != nil {
		return
	}
	if ev, err = event.FromResult(o); err != nil {
		return nil, enveloper.Malformed(labels.EVENT, pos, err)
	}
	return
}
