// Package filter implements the subscription predicate of a REQ.
package filter

import (
	"os"

	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/event"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/kind"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/timestamp"
	"github.com/Hubmakerlabs/fanoutr/pkg/slog"
	"golang.org/x/exp/slices"
)

var log, _ = slog.New(os.Stderr)

// T is a query where one or all elements can be filled in. A nil field is
// unset and places no constraint on the events that match; a non-nil empty
// list is set and matches nothing.
//
// A filter is not modified after it is built, the options copy what they are
// given.
type T struct {
	IDs     []string
	Authors []string
	Kinds   []kind.T
	// ETags and PTags are the values of the "#e" and "#p" keys.
	ETags []string
	PTags []string
	Since *timestamp.T
	Until *timestamp.T
	// Limit is carried on the wire but never evaluated, there is no history
	// to cap.
	Limit *int
}

// Matches reports whether ev satisfies every set field of the filter.
//
// The tag fields match when any listed value equals any string in any of the
// event's tags, the tag key is not consulted. So {"#e":["x"]} matches an
// event tagged ["p","x"].
func (f *T) Matches(ev *event.T) bool {
	if ev == nil {
		return false
	}
	if f.IDs != nil && !slices.Contains(f.IDs, string(ev.ID)) {
		return false
	}
	if f.Authors != nil && !slices.Contains(f.Authors, ev.PubKey) {
		return false
	}
	if f.Kinds != nil && !slices.Contains(f.Kinds, ev.Kind) {
		return false
	}
	if f.ETags != nil && !ev.Tags.ContainsAnyValue(f.ETags) {
		return false
	}
	if f.PTags != nil && !ev.Tags.ContainsAnyValue(f.PTags) {
		return false
	}
	if f.Since != nil && ev.CreatedAt <= *f.Since {
		return false
	}
	if f.Until != nil && ev.CreatedAt >= *f.Until {
		return false
	}
	return true
}

func arePointerValuesEqual[V comparable](a *V, b *V) bool {
	if a == nil && b == nil {
		return true
	}
	if a != nil && b != nil {
		return *a == *b
	}
	return false
}

func areSetsEqual[V comparable](a, b []V) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return slices.Equal(a, b)
}

// Equal reports whether two filters have the same fields set to the same
// values, list order included.
func Equal(a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	// switch is a convenient way to bundle a long list of tests like this:
	switch {
	case !areSetsEqual(a.IDs, b.IDs),
		!areSetsEqual(a.Authors, b.Authors),
		!areSetsEqual(a.Kinds, b.Kinds),
		!areSetsEqual(a.ETags, b.ETags),
		!areSetsEqual(a.PTags, b.PTags),
		!arePointerValuesEqual(a.Since, b.Since),
		!arePointerValuesEqual(a.Until, b.Until),
		!arePointerValuesEqual(a.Limit, b.Limit):

		return false
	}
	return true
}

// Clone returns a copy sharing no memory with f.
func (f *T) Clone() (c *T) {
	c = &T{
		IDs:     slices.Clone(f.IDs),
		Authors: slices.Clone(f.Authors),
		Kinds:   slices.Clone(f.Kinds),
		ETags:   slices.Clone(f.ETags),
		PTags:   slices.Clone(f.PTags),
	}
	if f.Since != nil {
		c.Since = f.Since.Ptr()
	}
	if f.Until != nil {
		c.Until = f.Until.Ptr()
	}
	if f.Limit != nil {
		l := *f.Limit
		c.Limit = &l
	}
	return
}

func (f *T) String() string { return string(f.Serialize()) }
