// Package connection is the client side of a relay websocket, built on
// gobwas/ws with permessage-deflate when the relay offers it.
package connection

import (
	"bytes"
	"compress/flate"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"

	"github.com/Hubmakerlabs/fanoutr/pkg/context"
	"github.com/Hubmakerlabs/fanoutr/pkg/slog"
	"github.com/Hubmakerlabs/fanoutr/pkg/units"
	"github.com/gobwas/httphead"
	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsflate"
	"github.com/gobwas/ws/wsutil"
)

var log, chk = slog.New(os.Stderr)

// MaxMessageSize is the write buffer size, a message larger than this is
// sent as more than one frame.
const MaxMessageSize = 128 * units.KiB

type C struct {
	Conn              net.Conn
	enableCompression bool
	controlHandler    wsutil.FrameHandlerFunc
	flateReader       *wsflate.Reader
	reader            *wsutil.Reader
	flateWriter       *wsflate.Writer
	writer            *wsutil.Writer
	msgStateR         *wsflate.MessageState
	msgStateW         *wsflate.MessageState
}

// New dials a relay. The url must be ws:// or wss://.
func New(c context.T, url string, requestHeader http.Header) (connection *C,
	err error) {

	dialer := ws.Dialer{
		Header: ws.HandshakeHeaderHTTP(requestHeader),
		Extensions: []httphead.Option{
			wsflate.DefaultParameters.Option(),
		},
	}
	var conn net.Conn
	var hs ws.Handshake
	if conn, _, hs, err = dialer.Dial(c, url); chk.D(err) {
		return nil, fmt.Errorf("failed to dial: %w", err)
	}
	enableCompression := false
	state := ws.StateClientSide
	for _, extension := range hs.Extensions {
		if string(extension.Name) == wsflate.ExtensionName {
			enableCompression = true
			state |= ws.StateExtended
			break
		}
	}
	// reader
	var flateReader *wsflate.Reader
	var msgStateR wsflate.MessageState
	if enableCompression {
		msgStateR.SetCompressed(true)
		flateReader = wsflate.NewReader(nil,
			func(r io.Reader) wsflate.Decompressor {
				return flate.NewReader(r)
			})
	}
	controlHandler := wsutil.ControlFrameHandler(conn, ws.StateClientSide)
	reader := &wsutil.Reader{
		Source:         conn,
		State:          state,
		OnIntermediate: controlHandler,
		CheckUTF8:      false,
		Extensions: []wsutil.RecvExtension{
			&msgStateR,
		},
	}
	// writer
	var flateWriter *wsflate.Writer
	var msgStateW wsflate.MessageState
	if enableCompression {
		msgStateW.SetCompressed(true)
		flateWriter = wsflate.NewWriter(nil,
			func(w io.Writer) wsflate.Compressor {
				fw, e := flate.NewWriter(w, 4)
				if chk.D(e) {
					log.E.F("failed to create flate writer: %v", e)
				}
				return fw
			})
	}
	writer := wsutil.NewWriterSize(conn, state, ws.OpText, MaxMessageSize)
	writer.SetExtensions(&msgStateW)
	connection = &C{
		Conn:              conn,
		enableCompression: enableCompression,
		controlHandler:    controlHandler,
		flateReader:       flateReader,
		reader:            reader,
		flateWriter:       flateWriter,
		msgStateR:         &msgStateR,
		msgStateW:         &msgStateW,
		writer:            writer,
	}
	return
}

// WriteMessage sends data as one text message.
func (c *C) WriteMessage(data []byte) (err error) {
	if c.msgStateW.IsCompressed() && c.enableCompression {
		c.flateWriter.Reset(c.writer)
		if _, err = io.Copy(c.flateWriter, bytes.NewReader(data)); chk.D(err) {
			return fmt.Errorf("failed to write message: %w", err)
		}
		if err = c.flateWriter.Close(); chk.D(err) {
			return fmt.Errorf("failed to close flate writer: %w", err)
		}
	} else {
		if _, err = io.Copy(c.writer, bytes.NewReader(data)); chk.D(err) {
			return fmt.Errorf("failed to write message: %w", err)
		}
	}
	if err = c.writer.Flush(); chk.D(err) {
		return fmt.Errorf("failed to flush writer: %w", err)
	}
	return nil
}

// ReadMessage copies the next text or binary message into buf, answering
// control frames on the way.
func (c *C) ReadMessage(cx context.T, buf io.Writer) (err error) {
	for {
		select {
		case <-cx.Done():
			return fmt.Errorf("read aborted: %w", cx.Err())
		default:
		}
		var h ws.Header
		if h, err = c.reader.NextFrame(); chk.D(err) {
			chk.D(c.Conn.Close())
			return fmt.Errorf("failed to advance frame: %w", err)
		}
		if h.OpCode.IsControl() {
			if err = c.controlHandler(h, c.reader); chk.D(err) {
				return fmt.Errorf("failed to handle control frame: %w", err)
			}
		} else if h.OpCode == ws.OpBinary ||
			h.OpCode == ws.OpText {
			break
		}
		if err = c.reader.Discard(); chk.D(err) {
			return fmt.Errorf("failed to discard: %w", err)
		}
	}
	if c.msgStateR.IsCompressed() && c.enableCompression {
		c.flateReader.Reset(c.reader)
		if _, err = io.Copy(buf, c.flateReader); chk.D(err) {
			return fmt.Errorf("failed to read message: %w", err)
		}
	} else {
		if _, err = io.Copy(buf, c.reader); chk.D(err) {
			return fmt.Errorf("failed to read message: %w", err)
		}
	}
	return nil
}

func (c *C) Close() (err error) { return c.Conn.Close() }
