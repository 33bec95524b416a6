package app

import (
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/closeenvelope"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/eventenvelope"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/okenvelope"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/reqenvelope"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/kind"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/relayws"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/subscription"
)

// wsProcessMessages decodes one inbound message and acts on it. A message
// that does not decode is logged and otherwise ignored, the connection stays
// open.
func (rl *Relay) wsProcessMessages(msg []byte, ws *relayws.WebSocket) {
	if len(msg) == 0 {
		log.D.F("empty message from %s", ws.RealRemote())
		return
	}
	en, err := envelopes.ParseClient(msg)
	if err != nil {
		log.D.F("ignoring message from %s: %v: %s", ws.RealRemote(), err,
			truncate(msg, 256))
		return
	}
	switch env := en.(type) {
	case *reqenvelope.T:
		if !env.SubscriptionID.IsValid() {
			log.D.F("%s subscription id %q is outside 1-64 characters",
				ws.RealRemote(), env.SubscriptionID)
		}
		rl.Registry.Add(ws.ID(),
			subscription.New(env.SubscriptionID, env.Filter, ws))
	case *eventenvelope.Submission:
		ev := env.Event
		// the event is accepted as it is, its signature is not checked
		ws.SendEnvelope(okenvelope.New(ev.ID, true, ""))
		n := rl.Registry.Broadcast(ev)
		log.D.F("%s published %s %s, delivered %d times", ws.RealRemote(),
			kind.GetString(ev.Kind), ev.ID, n)
	case *closeenvelope.T:
		rl.Registry.Close(ws.ID(), env.ID)
	}
}
