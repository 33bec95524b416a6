package filter

import (
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/kind"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/timestamp"
)

// Option sets one field of a filter under construction.
type Option func(f *T)

// New builds a filter from options. With no options the filter matches every
// event.
func New(opts ...Option) (f *T) {
	f = &T{}
	for _, opt := range opts {
		opt(f)
	}
	return
}

// copyOf returns a non-nil copy, so an empty argument list still marks the
// field as set.
func copyOf[V any](v []V) []V { return append(make([]V, 0, len(v)), v...) }

func WithIDs(ids ...string) Option { return func(f *T) { f.IDs = copyOf(ids) } }

func WithAuthors(pubkeys ...string) Option {
	return func(f *T) { f.Authors = copyOf(pubkeys) }
}

func WithKinds(k ...kind.T) Option { return func(f *T) { f.Kinds = copyOf(k) } }

func WithETags(values ...string) Option {
	return func(f *T) { f.ETags = copyOf(values) }
}

func WithPTags(values ...string) Option {
	return func(f *T) { f.PTags = copyOf(values) }
}

func WithSince(t timestamp.T) Option { return func(f *T) { f.Since = t.Ptr() } }

func WithUntil(t timestamp.T) Option { return func(f *T) { f.Until = t.Ptr() } }

func WithLimit(n int) Option { return func(f *T) { f.Limit = &n } }
