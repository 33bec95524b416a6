package relayinfo_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Hubmakerlabs/fanoutr/pkg/context"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/relayinfo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddNIPs(t *testing.T) {
	inf := relayinfo.NewInfo(nil)
	inf.AddNIPs(11, 1, 20, 11)
	assert.Equal(t, []int{1, 11, 20}, inf.SupportedNIPs)
	assert.True(t, inf.HasNIP(20))
	assert.False(t, inf.HasNIP(42))
}

func TestSaveLoad(t *testing.T) {
	inf := relayinfo.NewInfo(&relayinfo.Limits{MaxMessageLength: 1024})
	inf.Name = "test"
	inf.AddNIPs(relayinfo.BasicProtocol.Number)
	path := filepath.Join(t.TempDir(), "info.json")
	require.NoError(t, inf.Save(path))
	var loaded relayinfo.T
	require.NoError(t, loaded.Load(path))
	assert.Equal(t, inf, &loaded)
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter,
		r *http.Request) {
		if r.Header.Get("Accept") != "application/nostr+json" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		inf := relayinfo.NewInfo(nil)
		inf.Name = "fetched"
		require.NoError(t, json.NewEncoder(w).Encode(inf))
	}))
	defer srv.Close()
	inf, err := relayinfo.Fetch(context.Bg(),
		strings.Replace(srv.URL, "http://", "ws://", 1))
	require.NoError(t, err)
	assert.Equal(t, "fetched", inf.Name)
}
