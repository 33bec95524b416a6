package relayinfo

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Hubmakerlabs/fanoutr/pkg/context"
)

// Fetch fetches the NIP-11 document of the relay at u, which may be a ws(s)
// or http(s) URL or a bare host.
func Fetch(c context.T, u string) (info *T, err error) {
	if _, ok := c.Deadline(); !ok {
		// if no timeout is set, force it to 7 seconds
		var cancel context.F
		c, cancel = context.Timeout(c, 7*time.Second)
		defer cancel()
	}
	// normalize URL to start with http:// or https://
	if !strings.HasPrefix(u, "http") && !strings.HasPrefix(u, "ws") {
		u = "wss://" + u
	}
	var p *url.URL
	if p, err = url.Parse(u); err != nil {
		return nil, fmt.Errorf("cannot parse url: %s", u)
	}
	switch p.Scheme {
	case "ws":
		p.Scheme = "http"
	case "wss":
		p.Scheme = "https"
	}
	p.Path = strings.TrimRight(p.Path, "/")
	var req *http.Request
	if req, err = http.NewRequestWithContext(c, http.MethodGet, p.String(),
		nil); chk.E(err) {
		return
	}
	// add the NIP-11 header
	req.Header.Add("Accept", "application/nostr+json")
	var resp *http.Response
	if resp, err = http.DefaultClient.Do(req); err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	var b []byte
	if b, err = io.ReadAll(resp.Body); chk.E(err) {
		return
	}
	info = &T{}
	if err = json.Unmarshal(b, info); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return info, nil
}
