// Package labels holds the strings in the first position of every nostr
// message, which identify the kind of envelope that follows.
package labels

const (
	EVENT  = "EVENT"
	OK     = "OK"
	NOTICE = "NOTICE"
	EOSE   = "EOSE"
	CLOSE  = "CLOSE"
	CLOSED = "CLOSED"
	REQ    = "REQ"
)

