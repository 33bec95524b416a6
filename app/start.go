package app

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/Hubmakerlabs/fanoutr/pkg/context"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/relayws"
	"github.com/fasthttp/websocket"
)

// Start creates an http server and starts listening on given host and port.
func (rl *Relay) Start(host string, port int,
	started ...chan bool) (err error) {

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	var ln net.Listener
	if ln, err = net.Listen("tcp", addr); chk.E(err) {
		return
	}
	rl.Addr = ln.Addr().String()
	rl.httpServer = &http.Server{
		Handler:           rl,
		Addr:              addr,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.I.Ln("listening on", rl.Addr)
	// notify caller that we're starting
	for _, s := range started {
		close(s)
	}
	if err = rl.httpServer.Serve(ln); errors.Is(err, http.ErrServerClosed) {
		return nil
	} else if chk.E(err) {
		return
	}
	return
}

// Shutdown stops accepting connections and sends a websocket close control
// message to all connected clients.
func (rl *Relay) Shutdown(c context.T) {
	if rl.Cancel != nil {
		rl.Cancel()
	}
	if rl.httpServer != nil {
		chk.E(rl.httpServer.Shutdown(c))
	}
	rl.clients.Range(func(ws *relayws.WebSocket, _ struct{}) bool {
		chk.T(ws.Conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway,
				"relay shutting down"),
			time.Now().Add(time.Second)))
		chk.T(ws.Conn.Close())
		rl.clients.Delete(ws)
		return true
	})
}
