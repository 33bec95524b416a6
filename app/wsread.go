package app

import (
	"errors"
	"time"

	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/relayws"
	"github.com/fasthttp/websocket"
)

// websocketReadMessages is the reader of one connection. It handles frames
// one at a time until the peer closes or the transport fails, then starts the
// connection closing: the subscriptions go and the writer is told to finish
// what is queued.
func (rl *Relay) websocketReadMessages(ws *relayws.WebSocket) {
	defer rl.WG.Done()
	defer func() {
		ws.Advance(relayws.Closing)
		n := rl.Registry.Drop(ws.ID())
		ws.Queue.Close()
		log.D.F("%s closing, dropped %d subscriptions", ws.RealRemote(), n)
	}()
	conn := ws.Conn
	conn.SetReadLimit(rl.MaxMessageSize)
	conn.SetPingHandler(func(data string) (err error) {
		log.T.F("ping from %s", ws.RealRemote())
		err = conn.WriteControl(websocket.PongMessage, []byte(data),
			time.Now().Add(rl.WriteWait))
		if errors.Is(err, websocket.ErrCloseSent) {
			return nil
		}
		return
	})
	for {
		var err error
		var typ int
		var message []byte
		typ, message, err = conn.ReadMessage()
		if log.D.Chk(err) {
			if websocket.IsUnexpectedCloseError(
				err,
				websocket.CloseNormalClosure,    // 1000
				websocket.CloseGoingAway,        // 1001
				websocket.CloseNoStatusReceived, // 1005
				websocket.CloseAbnormalClosure,  // 1006
			) {
				log.E.F("unexpected close error from %s: %v",
					ws.RealRemote(), err)
			}
			return
		}
		if typ != websocket.TextMessage {
			log.D.F("ignoring non-text frame type %d from %s", typ,
				ws.RealRemote())
			continue
		}
		log.T.F("receiving message from %s: %s", ws.RealRemote(),
			truncate(message, 512))
		rl.wsProcessMessages(message, ws)
	}
}
