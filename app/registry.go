package app

import (
	"sync"

	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/eventenvelope"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/event"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/subscription"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/subscriptionid"
)

// Registry maps each connection to its subscriptions. It is the only state
// the connections share. Adding, closing and dropping take the write lock; a
// broadcast holds the read lock for its whole pass, so it sees a connection's
// subscriptions either all present or all gone.
type Registry struct {
	mx   sync.RWMutex
	subs map[string][]*subscription.T
	// Wrap sends deliveries as ["EVENT",<subscription id>,<event>] rather
	// than the bare event object.
	Wrap bool
}

func NewRegistry(wrap bool) *Registry {
	return &Registry{subs: make(map[string][]*subscription.T), Wrap: wrap}
}

// Add appends a subscription to a connection's list, creating the entry if
// needed. A second REQ reusing an id adds another subscription alongside the
// first, it does not replace it.
func (r *Registry) Add(connID string, sub *subscription.T) {
	r.mx.Lock()
	defer r.mx.Unlock()
	r.subs[connID] = append(r.subs[connID], sub)
	log.T.F("%s added subscription %s", connID, sub)
}

// Close removes every subscription with the given id from one connection and
// returns how many were removed. Other connections are never touched.
func (r *Registry) Close(connID string, id subscriptionid.T) (removed int) {
	r.mx.Lock()
	defer r.mx.Unlock()
	subs, ok := r.subs[connID]
	if !ok {
		return
	}
	kept := subs[:0]
	for _, s := range subs {
		if s.ID == id {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	// clear the tail so removed subscriptions can be collected
	for i := len(kept); i < len(subs); i++ {
		subs[i] = nil
	}
	if len(kept) == 0 {
		delete(r.subs, connID)
	} else {
		r.subs[connID] = kept
	}
	log.T.F("%s closed %d subscriptions with id %s", connID, removed, id)
	return
}

// Drop removes a connection and all of its subscriptions at once.
func (r *Registry) Drop(connID string) (removed int) {
	r.mx.Lock()
	defer r.mx.Unlock()
	removed = len(r.subs[connID])
	delete(r.subs, connID)
	return
}

// Broadcast delivers ev to every subscription on every connection whose
// filter matches it, and returns the number of deliveries queued.
func (r *Registry) Broadcast(ev *event.T) (delivered int) {
	var raw []byte
	r.mx.RLock()
	defer r.mx.RUnlock()
	for connID, subs := range r.subs {
		for _, s := range subs {
			if !s.Matches(ev) {
				continue
			}
			var b []byte
			if r.Wrap {
				b = eventenvelope.NewDelivery(s.ID, ev).Bytes()
			} else {
				if raw == nil {
					raw = ev.Serialize()
				}
				b = raw
			}
			if !s.Conn.Send(b) {
				log.T.F("%s is closing, dropped delivery on %s", connID, s.ID)
				continue
			}
			delivered++
		}
	}
	return
}

// Len is the number of connections holding at least one subscription.
func (r *Registry) Len() int {
	r.mx.RLock()
	defer r.mx.RUnlock()
	return len(r.subs)
}

// Has reports whether the connection holds any subscriptions.
func (r *Registry) Has(connID string) (ok bool) {
	r.mx.RLock()
	defer r.mx.RUnlock()
	_, ok = r.subs[connID]
	return
}

// Subscriptions returns a copy of a connection's subscription list.
func (r *Registry) Subscriptions(connID string) (subs []*subscription.T) {
	r.mx.RLock()
	defer r.mx.RUnlock()
	return append(subs, r.subs[connID]...)
}
