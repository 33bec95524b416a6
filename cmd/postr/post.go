package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Hubmakerlabs/fanoutr/pkg/context"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/connection"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/eventenvelope"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/reqenvelope"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/event"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/filter"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/hex"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/keys"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/kind"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/normalize"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/relayinfo"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/subscriptionid"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/tags"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/timestamp"
	"lukechampine.com/frand"
)

var (
	ErrNoSecKey  = errors.New("no secret key, set SECKEY or use --seckey")
	ErrRelayAddr = errors.New("invalid relay address")
)

// Post connects to the relay, subscribes to text notes by the key's own
// pubkey, publishes a signed text note and copies every message the relay
// sends to out, one per line.
func Post(c context.T, cfg *C, out io.Writer) (err error) {
	if cfg.SecKey == "" {
		return ErrNoSecKey
	}
	u := normalize.URL(cfg.Relay)
	if u == "" {
		return fmt.Errorf("%w: %q", ErrRelayAddr, cfg.Relay)
	}
	var pub string
	if pub, err = keys.GetPublicKey(cfg.SecKey); err != nil {
		return fmt.Errorf("invalid secret key: %w", err)
	}
	if cfg.Info {
		var inf *relayinfo.T
		if inf, err = relayinfo.Fetch(c, u); chk.E(err) {
			return
		}
		var b []byte
		if b, err = json.MarshalIndent(inf, "", "    "); chk.E(err) {
			return
		}
		fmt.Fprintln(out, string(b))
	}
	var conn *connection.C
	if conn, err = connection.New(c, u, nil); err != nil {
		return
	}
	log.I.Ln("connected to", u)
	done := make(chan struct{})
	defer close(done)
	go func() {
		// a blocked read only returns once the connection is closed
		select {
		case <-c.Done():
		case <-done:
		}
		chk.T(conn.Close())
	}()
	sub := subscriptionid.T(hex.Enc(frand.Bytes(8)))
	req := reqenvelope.New(sub, filter.New(
		filter.WithKinds(kind.TextNote),
		filter.WithAuthors(pub),
	))
	log.D.Ln("sending", req)
	if err = conn.WriteMessage(req.Bytes()); chk.E(err) {
		return
	}
	ev := event.New(pub, timestamp.Now(), kind.TextNote, tags.T{}, cfg.Content)
	if err = ev.Sign(cfg.SecKey); chk.E(err) {
		return
	}
	log.I.F("publishing %s from %s", ev.ID, keys.Short(pub))
	if err = conn.WriteMessage(eventenvelope.NewSubmission(ev).Bytes()); chk.E(err) {
		return
	}
	return PrintMessages(c, conn, cfg.Count, out)
}
