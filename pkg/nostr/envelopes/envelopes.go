// Package envelopes decodes a message from its label into the matching
// envelope type. Clients and relays send different sets of messages, and an
// EVENT has a different shape in each direction, so there is one table per
// direction.
package envelopes

import (
	"os"

	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/closedenvelope"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/closeenvelope"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/enveloper"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/eoseenvelope"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/eventenvelope"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/labels"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/noticeenvelope"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/okenvelope"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/reqenvelope"
	"github.com/Hubmakerlabs/fanoutr/pkg/slog"
	"github.com/tidwall/gjson"
)

var log, chk = slog.New(os.Stderr)

type constructor func() enveloper.I

var client = map[string]constructor{
	labels.REQ:   func() enveloper.I { return &reqenvelope.T{} },
	labels.EVENT: func() enveloper.I { return &eventenvelope.Submission{} },
	labels.CLOSE: func() enveloper.I { return &closeenvelope.T{} },
}

var server = map[string]constructor{
	labels.EVENT:  func() enveloper.I { return &eventenvelope.Delivery{} },
	labels.OK:     func() enveloper.I { return &okenvelope.T{} },
	labels.EOSE:   func() enveloper.I { return &eoseenvelope.T{} },
	labels.CLOSED: func() enveloper.I { return &closedenvelope.T{} },
	labels.NOTICE: func() enveloper.I { return &noticeenvelope.T{} },
}

// ParseClient decodes a message sent by a client to a relay.
func ParseClient(b []byte) (env enveloper.I, err error) { return parse(b, client) }

// ParseServer decodes a message sent by a relay to a client.
func ParseServer(b []byte) (env enveloper.I, err error) { return parse(b, server) }

func parse(b []byte, table map[string]constructor) (env enveloper.I, err error) {
	log.T.F("processing envelope: %s", truncate(b, 512))
	var label string
	var elems []gjson.Result
	if label, elems, err = enveloper.Split(b); chk.T(err) {
		return
	}
	c, ok := table[label]
	if !ok {
		err = &enveloper.UnknownKindError{Label: label}
		return
	}
	e := c()
	if err = e.Decode(elems); chk.T(err) {
		return
	}
	return e, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
