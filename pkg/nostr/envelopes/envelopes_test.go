package envelopes_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/closedenvelope"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/closeenvelope"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/enveloper"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/eoseenvelope"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/eventenvelope"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/noticeenvelope"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/okenvelope"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/reqenvelope"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/event"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/filter"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/kind"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/tags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	TestSecHex = "1797f6f1d10593548b566ba32e81577aa4bc990eb0f16556bf884f1af4b17c25"

	reqFixture = `["REQ","id",{"ids":["id"],"authors":["pubkey"],"kinds":[1],"#e":["e_tag"],"#p":["p_tag"],"since":1708203194,"until":1708203194,"limit":10}]`

	eventFixture = `["EVENT",{"id":"8b0a64c96cd09a3a86c0a225606f0b57a7fec7bf3773c68af13420c1d8d57f97","pubkey":"5e60b5429c2fde23b7b6df434869ad71d2c9403a3a9f7a2a629623491e477334","created_at":1708838939,"kind":1,"tags":[["tag"]],"content":"content","sig":"80a143f5802118f295b9281b7192feb522ac9eb8cd6922694879cc36ca6f2d35077170f2953c5174b09049d6fa3463b6ed87cbe9e4ac627271ec0b5b73e0ee44"}]`
)

func signed(t *testing.T) *event.T {
	ev := event.New("", 1700000000, kind.TextNote,
		tags.T{{"e", "abc"}, {"p", "def"}}, "hello \"world\"\n")
	require.NoError(t, ev.Sign(TestSecHex))
	return ev
}

func TestReqFixture(t *testing.T) {
	want := reqenvelope.New("id", filter.New(
		filter.WithIDs("id"), filter.WithAuthors("pubkey"), filter.WithKinds(1),
		filter.WithETags("e_tag"), filter.WithPTags("p_tag"),
		filter.WithSince(1708203194), filter.WithUntil(1708203194),
		filter.WithLimit(10)))
	assert.Equal(t, reqFixture, want.String())

	env, err := envelopes.ParseClient([]byte(reqFixture))
	require.NoError(t, err)
	req, ok := env.(*reqenvelope.T)
	require.True(t, ok)
	assert.Equal(t, want.SubscriptionID, req.SubscriptionID)
	assert.True(t, filter.Equal(want.Filter, req.Filter))
}

func TestCloseFixture(t *testing.T) {
	assert.Equal(t, `["CLOSE","id"]`, closeenvelope.New("id").String())
	env, err := envelopes.ParseClient([]byte(`["CLOSE","id"]`))
	require.NoError(t, err)
	assert.Equal(t, closeenvelope.New("id"), env)
}

func TestEventFixture(t *testing.T) {
	env, err := envelopes.ParseClient([]byte(eventFixture))
	require.NoError(t, err)
	sub, ok := env.(*eventenvelope.Submission)
	require.True(t, ok)
	assert.Equal(t, sub.Event.GetID(), sub.Event.ID)
	assert.Equal(t, eventFixture, sub.String())
}

func TestInvalidUTF8Rejected(t *testing.T) {
	bad := strings.Replace(eventFixture, `"content":"`, "\"content\":\"\xff", 1)
	require.NotEqual(t, eventFixture, bad)
	_, err := envelopes.ParseClient([]byte(bad))
	assert.True(t, errors.Is(err, enveloper.ErrMalformedMessage), "%v", err)
	_, err = envelopes.ParseClient([]byte("[\"CLOSE\",\"sub\xfe\"]"))
	assert.True(t, errors.Is(err, enveloper.ErrMalformedMessage), "%v", err)
}

func TestRoundTrip(t *testing.T) {
	ev := signed(t)
	for _, c := range []struct {
		env   enveloper.I
		parse func([]byte) (enveloper.I, error)
	}{
		{reqenvelope.New("sub:1", filter.New(filter.WithKinds(1), filter.WithSince(5))),
			envelopes.ParseClient},
		{reqenvelope.New("all", filter.New()), envelopes.ParseClient},
		{eventenvelope.NewSubmission(ev), envelopes.ParseClient},
		{closeenvelope.New("sub:1"), envelopes.ParseClient},
		{eventenvelope.NewDelivery("sub:1", ev), envelopes.ParseServer},
		{okenvelope.New(ev.ID, true, ""), envelopes.ParseServer},
		{okenvelope.New(ev.ID, false,
			okenvelope.Message(okenvelope.Invalid, "bad \"sig\"")), envelopes.ParseServer},
		{eoseenvelope.New("sub:1"), envelopes.ParseServer},
		{closedenvelope.New("sub:1", okenvelope.Message(okenvelope.Error, "shutting down")),
			envelopes.ParseServer},
		{noticeenvelope.New("line\nbreak <&>"), envelopes.ParseServer},
	} {
		b, err := c.env.MarshalJSON()
		require.NoError(t, err)
		dec, err := c.parse(b)
		require.NoError(t, err, string(b))
		assert.Equal(t, c.env.Label(), dec.Label())
		assert.Equal(t, string(b), dec.String())
		if r, ok := c.env.(*reqenvelope.T); ok {
			assert.True(t, filter.Equal(r.Filter, dec.(*reqenvelope.T).Filter))
		} else {
			assert.Equal(t, c.env, dec)
		}
	}
}

func TestOKWireForm(t *testing.T) {
	id := signed(t).ID
	assert.Equal(t, `["OK","`+id.String()+`",true,""]`, okenvelope.New(id, true, "").String())
	assert.Equal(t, "blocked: go away", okenvelope.Message(okenvelope.Blocked, "go away"))
}

func TestDirection(t *testing.T) {
	_, err := envelopes.ParseServer([]byte(`["CLOSE","id"]`))
	assert.True(t, errors.Is(err, enveloper.ErrUnknownMessageKind))
	_, err = envelopes.ParseClient([]byte(`["NOTICE","hi"]`))
	assert.True(t, errors.Is(err, enveloper.ErrUnknownMessageKind))
	// a delivery is not a valid submission
	d := eventenvelope.NewDelivery("s", signed(t))
	_, err = envelopes.ParseClient(d.Bytes())
	assert.True(t, errors.Is(err, enveloper.ErrMalformedMessage))
}

func TestStrictDecode(t *testing.T) {
	for _, c := range []struct {
		in      string
		unknown bool
		pos     int
	}{
		{in: `{"REQ":1}`, pos: enveloper.Whole},
		{in: `["REQ","id",`, pos: enveloper.Whole},
		{in: `[]`, pos: 0},
		{in: `[1,"id"]`, pos: 0},
		{in: `["AUTH","challenge"]`, unknown: true},
		{in: `["req","id",{}]`, unknown: true},
		{in: `["REQ","id"]`, pos: 2},
		{in: `["REQ","id",{},{}]`, pos: 3},
		{in: `["REQ",1,{}]`, pos: 1},
		{in: `["REQ","id",[]]`, pos: 2},
		{in: `["REQ","id",{"kinds":"1"}]`, pos: 2},
		{in: `["CLOSE"]`, pos: 1},
		{in: `["CLOSE","a","b"]`, pos: 2},
		{in: `["CLOSE",null]`, pos: 1},
		{in: `["EVENT","sub",{}]`, pos: 2},
		{in: `["EVENT",{"id":"a"}]`, pos: 1},
		{in: `["EVENT","x"]`, pos: 1},
	} {
		env, err := envelopes.ParseClient([]byte(c.in))
		assert.Nil(t, env, c.in)
		require.Error(t, err, c.in)
		if c.unknown {
			assert.True(t, errors.Is(err, enveloper.ErrUnknownMessageKind), c.in)
			assert.False(t, errors.Is(err, enveloper.ErrMalformedMessage), c.in)
			continue
		}
		var me *enveloper.MalformedError
		require.True(t, errors.As(err, &me), "%s: %v", c.in, err)
		assert.Equal(t, c.pos, me.Position, c.in)
		assert.True(t, errors.Is(err, enveloper.ErrMalformedMessage), c.in)
	}
	for _, in := range []string{
		`["OK","id","true",""]`,
		`["OK","id",true]`,
		`["EOSE",5]`,
		`["CLOSED","id"]`,
		`["NOTICE"]`,
		`["EVENT",{"id":"a"}]`,
	} {
		_, err := envelopes.ParseServer([]byte(in))
		assert.True(t, errors.Is(err, enveloper.ErrMalformedMessage), in)
	}
}

func TestDecodeLeavesReceiver(t *testing.T) {
	ok := okenvelope.New("keep", true, "r")
	assert.Error(t, ok.UnmarshalJSON([]byte(`["OK","new","yes",""]`)))
	assert.Equal(t, okenvelope.New("keep", true, "r"), ok)
	assert.Error(t, ok.UnmarshalJSON([]byte(`["NOTICE","x"]`)))
	require.NoError(t, ok.UnmarshalJSON([]byte(`["OK","new",false,"x"]`)))
	assert.Equal(t, okenvelope.New("new", false, "x"), ok)
}

func TestOmitUnsetFilterFields(t *testing.T) {
	r := reqenvelope.New("s", filter.New(filter.WithAuthors("a")))
	assert.Equal(t, `["REQ","s",{"authors":["a"]}]`, r.String())
	assert.Equal(t, `["REQ","s",{}]`, reqenvelope.New("s", nil).String())
}
