package app

import (
	"fmt"
	"net/http"

	"github.com/rs/cors"
)

// ServeHTTP implements http.Handler interface.
//
// This is the main starting function of the relay. Websocket upgrades go to
// HandleWebsocket, NIP-11 requests get the relay information document, and
// anything else the router.
func (rl *Relay) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	select {
	case <-rl.Ctx.Done():
		log.W.Ln("shutting down")
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	default:
	}
	if r.Header.Get("Upgrade") == "websocket" {
		rl.HandleWebsocket(w, r)
	} else if r.Header.Get("Accept") == "application/nostr+json" {
		cors.AllowAll().Handler(http.HandlerFunc(rl.HandleNIP11)).
			ServeHTTP(w, r)
	} else {
		rl.serveMux.ServeHTTP(w, r)
	}
}

// HandleBanner answers plain HTTP requests with a line of text.
func (rl *Relay) HandleBanner(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, err := fmt.Fprintf(w, "%s is a nostr relay, connect with a websocket\n",
		rl.Info.Name)
	chk.T(err)
}
