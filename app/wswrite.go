package app

import (
	"time"

	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/relayws"
	"github.com/fasthttp/websocket"
)

// websocketWriteMessages is the writer of one connection. It writes queued
// messages in order until the queue is closed and drained, or a write fails,
// then closes the transport.
func (rl *Relay) websocketWriteMessages(ws *relayws.WebSocket) {
	defer rl.WG.Done()
	if err := ws.Drain(); err != nil {
		log.D.F("write to %s failed: %v", ws.RealRemote(), err)
		// stop accepting deliveries; closing the transport ends the reader
		ws.Queue.Close()
	} else {
		chk.T(ws.Conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(rl.WriteWait)))
	}
	chk.T(ws.Conn.Close())
	rl.clients.Delete(ws)
	ws.Advance(relayws.Closed)
	log.I.F("disconnected %s", ws.RealRemote())
}
