package main

import (
	"bytes"
	"io"

	"github.com/Hubmakerlabs/fanoutr/pkg/context"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/connection"
)

// PrintMessages writes each message read from conn to out followed by a
// newline, until count messages were written (count 0 means no limit) or c
// is canceled.
func PrintMessages(c context.T, conn *connection.C, count int,
	out io.Writer) (err error) {

	var buf bytes.Buffer
	for n := 0; count == 0 || n < count; n++ {
		buf.Reset()
		if err = conn.ReadMessage(c, &buf); err != nil {
			if c.Err() != nil {
				return nil
			}
			return
		}
		buf.WriteByte('\n')
		if _, err = out.Write(buf.Bytes()); chk.E(err) {
			return
		}
	}
	return
}
