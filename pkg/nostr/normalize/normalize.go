// Package normalize turns the relay addresses people type into websocket
// URLs.
package normalize

import (
	"net/url"
	"strings"
)

// URL normalizes u into a ws:// or wss:// url. An address without a scheme is
// assumed to be wss, http and https become ws and wss, and a trailing path
// slash is dropped. Unparseable input gives an empty string.
func URL(u string) string {
	u = strings.TrimSpace(u)
	if u == "" {
		return ""
	}
	if !strings.Contains(u, "://") {
		u = "wss://" + u
	}
	p, err := url.Parse(u)
	if err != nil || p.Host == "" {
		return ""
	}
	switch strings.ToLower(p.Scheme) {
	case "https", "wss":
		p.Scheme = "wss"
	case "http", "ws":
		p.Scheme = "ws"
	default:
		return ""
	}
	p.Host = strings.ToLower(p.Host)
	p.Path = strings.TrimRight(p.Path, "/")
	return p.String()
}
