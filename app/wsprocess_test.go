package app

import (
	"testing"

	"github.com/Hubmakerlabs/fanoutr/pkg/context"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/okenvelope"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/event"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/kind"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/relayinfo"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/relayws"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/tags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecHex = "1797f6f1d10593548b566ba32e81577aa4bc990eb0f16556bf884f1af4b17c25"

func newTestRelay(t *testing.T, conf *Config) *Relay {
	c, cancel := context.Cancel(context.Bg())
	t.Cleanup(cancel)
	return NewRelay(c, cancel, relayinfo.NewInfo(nil), conf)
}

func signedNote(t *testing.T, content string) *event.T {
	ev := event.New("", 1700000000, kind.TextNote, tags.T{}, content)
	require.NoError(t, ev.Sign(testSecHex))
	return ev
}

func TestProcessPublishOrder(t *testing.T) {
	rl := newTestRelay(t, &Config{})
	a := relayws.New("a", nil, nil)
	b := relayws.New("b", nil, nil)
	rl.wsProcessMessages([]byte(`["REQ","mine",{"kinds":[1]}]`), a)
	rl.wsProcessMessages([]byte(`["REQ","theirs",{"kinds":[1]}]`), b)
	ev := signedNote(t, "fan out")
	rl.wsProcessMessages([]byte(`["EVENT",`+ev.String()+`]`), a)

	// the publisher gets its OK before its own delivery
	assert.Equal(t, []string{
		okenvelope.New(ev.ID, true, "").String(),
		ev.String(),
	}, drain(a.Queue))
	assert.Equal(t, []string{ev.String()}, drain(b.Queue))
}

func TestProcessUnsignedEventAccepted(t *testing.T) {
	rl := newTestRelay(t, &Config{})
	a := relayws.New("a", nil, nil)
	rl.wsProcessMessages([]byte(`["EVENT",{"id":"x","pubkey":"y","created_at":1,"kind":1,"tags":[],"content":"","sig":"z"}]`), a)
	assert.Equal(t, []string{`["OK","x",true,""]`}, drain(a.Queue))
}

func TestProcessClose(t *testing.T) {
	rl := newTestRelay(t, &Config{WrapDeliveries: true})
	a := relayws.New("a", nil, nil)
	b := relayws.New("b", nil, nil)
	rl.wsProcessMessages([]byte(`["REQ","s",{}]`), a)
	rl.wsProcessMessages([]byte(`["REQ","s",{}]`), b)
	rl.wsProcessMessages([]byte(`["CLOSE","s"]`), a)
	assert.False(t, rl.Registry.Has("a"))
	assert.True(t, rl.Registry.Has("b"))
	ev := signedNote(t, "after close")
	rl.wsProcessMessages([]byte(`["EVENT",`+ev.String()+`]`), b)
	assert.Empty(t, drain(a.Queue))
	assert.Equal(t, []string{
		okenvelope.New(ev.ID, true, "").String(),
		`["EVENT","s",` + ev.String() + `]`,
	}, drain(b.Queue))
}

func TestProcessIgnoresBadMessages(t *testing.T) {
	rl := newTestRelay(t, &Config{})
	a := relayws.New("a", nil, nil)
	for _, m := range []string{
		``,
		`not json`,
		`{"REQ":"s"}`,
		`["AUTH","challenge"]`,
		`["REQ","s"]`,
		`["REQ","s",{"kinds":["1"]}]`,
		`["EVENT",{"id":"x"}]`,
		`["CLOSE",1]`,
	} {
		rl.wsProcessMessages([]byte(m), a)
	}
	assert.False(t, rl.Registry.Has("a"))
	assert.Equal(t, relayws.Connecting, a.State())
	assert.Empty(t, drain(a.Queue))
}
