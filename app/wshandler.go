package app

import (
	"net/http"

	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/relayws"
	"github.com/fasthttp/websocket"
)

func (rl *Relay) HandleWebsocket(w http.ResponseWriter, r *http.Request) {
	var err error
	var conn *websocket.Conn
	if conn, err = rl.upgrader.Upgrade(w, r, nil); chk.E(err) {
		log.E.F("failed to upgrade websocket: %v", err)
		return
	}
	ws := relayws.New(r.RemoteAddr, conn, r)
	ws.Advance(relayws.Open)
	rl.clients.Store(ws, struct{}{})
	log.I.F("connection from %s (%s) %s", ws.RealRemote(), ws.ID(),
		r.Header.Get("User-Agent"))
	rl.WG.Add(2)
	go rl.websocketReadMessages(ws)
	go rl.websocketWriteMessages(ws)
}
