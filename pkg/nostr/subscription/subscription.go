// Package subscription binds a client chosen id and a filter to the
// connection that asked for it.
package subscription

import (
	"fmt"

	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/event"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/filter"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/subscriptionid"
)

// Sink is where the messages for a subscription are delivered. Send must not
// block; it reports false when the sink no longer accepts messages.
type Sink interface {
	Send(b []byte) bool
}

// T is a standing subscription. It lives until a CLOSE with the same ID
// arrives on the same connection, or until that connection goes away.
type T struct {
	ID     subscriptionid.T
	Filter *filter.T
	Conn   Sink
}

func New(id subscriptionid.T, f *filter.T, conn Sink) *T {
	if f == nil {
		f = filter.New()
	}
	return &T{ID: id, Filter: f, Conn: conn}
}

// Matches reports whether ev should be delivered on this subscription.
func (s *T) Matches(ev *event.T) bool { return s.Filter.Matches(ev) }

func (s *T) String() string { return fmt.Sprintf("%s %s", s.ID, s.Filter) }
