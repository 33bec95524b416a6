package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestParse(t *testing.T) {
	_, err := Parse([]byte(`["REQ",`))
	assert.ErrorIs(t, err, ErrInvalidJSON)
	r, err := Parse([]byte(` ["REQ", "x"] `))
	require.NoError(t, err)
	assert.True(t, r.IsArray())
}

func TestInt64(t *testing.T) {
	i, err := Int64(gjson.Parse(`-42`))
	require.NoError(t, err)
	assert.Equal(t, int64(-42), i)
	for _, bad := range []string{`1.5`, `1e3`, `"1"`, `true`, `null`, `99999999999999999999`} {
		_, err = Int64(gjson.Parse(bad))
		assert.Error(t, err, bad)
	}
}

func TestUint(t *testing.T) {
	u, err := Uint(gjson.Parse(`65535`), 65535)
	require.NoError(t, err)
	assert.Equal(t, uint64(65535), u)
	_, err = Uint(gjson.Parse(`65536`), 65535)
	assert.Error(t, err)
	_, err = Uint(gjson.Parse(`-1`), 65535)
	assert.Error(t, err)
}

func TestStringsAndBool(t *testing.T) {
	ss, err := Strings(gjson.Parse(`["a","b\"c"]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", `b"c`}, ss)
	_, err = Strings(gjson.Parse(`["a",1]`))
	assert.ErrorContains(t, err, "element 1")
	_, err = Strings(gjson.Parse(`{"a":1}`))
	assert.ErrorContains(t, err, "expected array, got object")
	b, err := Bool(gjson.Parse(`false`))
	require.NoError(t, err)
	assert.False(t, b)
	_, err = Bool(gjson.Parse(`"true"`))
	assert.Error(t, err)
}

func TestStringUTF8(t *testing.T) {
	s, err := String(gjson.Parse(`"日本 \u00e9"`))
	require.NoError(t, err)
	assert.Equal(t, "日本 é", s)
	_, err = String(gjson.Parse("\"bad \xff\""))
	assert.ErrorIs(t, err, ErrInvalidUTF8)
	_, err = Strings(gjson.Parse("[\"ok\",\"\xc0\xaf\"]"))
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "nothing", TypeName(gjson.Parse(`[1]`).Get("5")))
	assert.Equal(t, "null", TypeName(gjson.Parse(`null`)))
	assert.Equal(t, "object", TypeName(gjson.Parse(`{}`)))
}
