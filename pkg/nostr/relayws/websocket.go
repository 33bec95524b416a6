// Package relayws is the relay's side of a client websocket: the connection,
// its outbound queue and its lifecycle state.
package relayws

import (
	"net/http"
	"os"
	"sync"

	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/enveloper"
	"github.com/Hubmakerlabs/fanoutr/pkg/slog"
	"github.com/fasthttp/websocket"
	"github.com/sebest/xff"
	"go.uber.org/atomic"
)

var log, chk = slog.New(os.Stderr)

// WebSocket is a wrapper around a fasthttp/websocket with mutex locking on
// writes and the queue that feeds its writer.
type WebSocket struct {
	Conn    *websocket.Conn
	Request *http.Request // original request
	Queue   *Queue
	id      string
	remote  atomic.String
	state   atomic.Int32
	mutex   sync.Mutex
}

// New wraps a connection. The id is the key of the connection in the
// registry, the remote address of the transport session.
func New(id string, conn *websocket.Conn, r *http.Request) (ws *WebSocket) {
	ws = &WebSocket{
		Conn:    conn,
		Request: r,
		Queue:   NewQueue(),
		id:      id,
	}
	ws.remote.Store(id)
	if r != nil {
		// behind a proxy the client is in X-Forwarded-For
		ws.remote.Store(xff.GetRemoteAddr(r))
	}
	return
}

// ID is the stable identifier of the connection.
func (ws *WebSocket) ID() string { return ws.id }

// RealRemote is the client address, which differs from ID when the relay
// sits behind a reverse proxy.
func (ws *WebSocket) RealRemote() string { return ws.remote.Load() }

func (ws *WebSocket) State() State { return State(ws.state.Load()) }

// Advance moves the connection to state s if that is forward of where it is
// now, and reports whether it moved.
func (ws *WebSocket) Advance(s State) bool {
	for {
		cur := ws.state.Load()
		if State(cur) >= s {
			return false
		}
		if ws.state.CompareAndSwap(cur, int32(s)) {
			log.T.F("%s %s -> %s", ws.id, State(cur), s)
			return true
		}
	}
}

// Send queues a message for the writer. It never blocks.
func (ws *WebSocket) Send(b []byte) bool { return ws.Queue.Push(b) }

// SendEnvelope queues an encoded envelope.
func (ws *WebSocket) SendEnvelope(env enveloper.I) bool {
	return ws.Send(env.Bytes())
}

// WriteMessage writes a message with a given websocket type specifier
func (ws *WebSocket) WriteMessage(t int, b []byte) (err error) {
	ws.mutex.Lock()
	defer ws.mutex.Unlock()
	if len(b) != 0 {
		log.T.F("sending message to %s\n%s", ws.RealRemote(), string(b))
	}
	return ws.Conn.WriteMessage(t, b)
}

// Drain writes queued messages as text frames, in order, until the queue is
// closed and empty or a write fails.
func (ws *WebSocket) Drain() (err error) {
	for {
		b, ok := ws.Queue.Pop()
		if !ok {
			return
		}
		if err = ws.WriteMessage(websocket.TextMessage, b); chk.D(err) {
			return
		}
	}
}
