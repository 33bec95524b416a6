package filter_test

import (
	"encoding/json"
	"testing"

	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/event"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/filter"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/kind"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/tags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func note() *event.T {
	return &event.T{
		ID:        "id1",
		PubKey:    "abc",
		CreatedAt: 100,
		Kind:      kind.TextNote,
		Tags:      tags.T{{"e", "ev1"}, {"p", "pk1", "wss://relay"}},
	}
}

func TestMatchesExamples(t *testing.T) {
	ev := note()
	assert.True(t, filter.New(filter.WithKinds(1), filter.WithSince(50)).Matches(ev))
	assert.False(t, filter.New(filter.WithKinds(2)).Matches(ev))
	assert.True(t, filter.New().Matches(ev))
	assert.False(t, filter.New().Matches(nil))
}

func TestMatchesFields(t *testing.T) {
	ev := note()
	for name, c := range map[string]struct {
		f    *filter.T
		want bool
	}{
		"id member":       {filter.New(filter.WithIDs("x", "id1")), true},
		"id prefix":       {filter.New(filter.WithIDs("id")), false},
		"empty ids":       {filter.New(filter.WithIDs()), false},
		"author member":   {filter.New(filter.WithAuthors("abc")), true},
		"author other":    {filter.New(filter.WithAuthors("abd")), false},
		"since equal":     {filter.New(filter.WithSince(100)), false},
		"since below":     {filter.New(filter.WithSince(99)), true},
		"until equal":     {filter.New(filter.WithUntil(100)), false},
		"until above":     {filter.New(filter.WithUntil(101)), true},
		"limit ignored":   {filter.New(filter.WithLimit(0)), true},
		"e tag value":     {filter.New(filter.WithETags("ev1")), true},
		"e tag missing":   {filter.New(filter.WithETags("nope")), false},
		"p tag value":     {filter.New(filter.WithPTags("pk1")), true},
		"tag key ignored": {filter.New(filter.WithETags("pk1")), true},
		"tag relay slot":  {filter.New(filter.WithPTags("wss://relay")), true},
		"tag key itself":  {filter.New(filter.WithETags("p")), true},
		"conjunction": {filter.New(filter.WithKinds(1), filter.WithAuthors("abc"),
			filter.WithETags("ev1"), filter.WithUntil(99)), false},
	} {
		assert.Equal(t, c.want, c.f.Matches(ev), name)
	}
	untagged := note()
	untagged.Tags = nil
	assert.False(t, filter.New(filter.WithETags("ev1")).Matches(untagged))
	assert.True(t, filter.New(filter.WithKinds(1)).Matches(untagged))
}

func TestOptionsCopy(t *testing.T) {
	ids := []string{"a", "b"}
	f := filter.New(filter.WithIDs(ids...))
	ids[0] = "z"
	assert.Equal(t, []string{"a", "b"}, f.IDs)
}

func TestEqualClone(t *testing.T) {
	f := filter.New(filter.WithIDs("a"), filter.WithKinds(1, 7),
		filter.WithPTags("p"), filter.WithSince(5), filter.WithLimit(10))
	c := f.Clone()
	assert.True(t, filter.Equal(f, c))
	*c.Since = 6
	c.Kinds[0] = 3
	assert.False(t, filter.Equal(f, c))
	assert.Equal(t, kind.TextNote, f.Kinds[0])
	assert.False(t, filter.Equal(filter.New(), filter.New(filter.WithIDs())))
	assert.True(t, filter.Equal(filter.New(), filter.New()))
	assert.False(t, filter.Equal(filter.New(), nil))
}

func TestSerializeOmitsUnset(t *testing.T) {
	assert.Equal(t, `{}`, filter.New().String())
	assert.Equal(t, `{"kinds":[1],"since":50}`,
		filter.New(filter.WithSince(50), filter.WithKinds(1)).String())
	assert.Equal(t, `{"ids":[]}`, filter.New(filter.WithIDs()).String())
	f := filter.New(
		filter.WithLimit(10), filter.WithUntil(200), filter.WithSince(100),
		filter.WithPTags("p1"), filter.WithETags("e1"), filter.WithKinds(1, 2),
		filter.WithAuthors("a\"1"), filter.WithIDs("id"))
	assert.Equal(t,
		`{"ids":["id"],"authors":["a\"1"],"kinds":[1,2],"#e":["e1"],"#p":["p1"],"since":100,"until":200,"limit":10}`,
		f.String())
	assert.NotContains(t, filter.New(filter.WithIDs("x")).String(), "null")
}

func TestUnmarshal(t *testing.T) {
	in := `{"ids":["id"],"authors":["a"],"kinds":[1,2],"#e":["e1"],"#p":["p1"],"since":100,"until":200,"limit":10,"#t":["x"],"search":"q"}`
	var f filter.T
	require.NoError(t, json.Unmarshal([]byte(in), &f))
	assert.True(t, filter.Equal(&f, filter.New(
		filter.WithIDs("id"), filter.WithAuthors("a"), filter.WithKinds(1, 2),
		filter.WithETags("e1"), filter.WithPTags("p1"), filter.WithSince(100),
		filter.WithUntil(200), filter.WithLimit(10))))

	var empty filter.T
	require.NoError(t, json.Unmarshal([]byte(`{}`), &empty))
	assert.True(t, filter.Equal(&empty, filter.New()))
}

func TestUnmarshalStrict(t *testing.T) {
	for name, in := range map[string]string{
		"array":          `[]`,
		"ids not array":  `{"ids":"a"}`,
		"ids element":    `{"ids":[1]}`,
		"kinds string":   `{"kinds":["1"]}`,
		"kinds negative": `{"kinds":[-1]}`,
		"kinds large":    `{"kinds":[70000]}`,
		"since string":   `{"since":"1"}`,
		"until float":    `{"until":1.5}`,
		"limit null":     `{"limit":null}`,
		"#e object":      `{"#e":{}}`,
	} {
		f := filter.New(filter.WithIDs("keep"))
		assert.Error(t, f.UnmarshalJSON([]byte(in)), name)
		assert.Equal(t, []string{"keep"}, f.IDs, name)
	}
}
