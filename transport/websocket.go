package transport

import (
	"context"
	"encoding"
	"log"
	"strings"

	"github.com/coder/websocket"

	"github.com/ircwire/ircwire"
)

// WebSocketTransport frames IRC lines over WebSocket text messages:
// one text frame carries exactly one line, without a trailing CRLF
// Ping and pong control frames
// never reach this type at all: github.com/coder/websocket answers
// pings and consumes pongs internally before Read returns, which is
// pings auto-pong without the caller ever seeing them.
// Binary frames are logged and ignored rather than surfaced as
// messages, and a close frame ends the read stream, surfaced as the
// underlying *websocket.CloseError.
type WebSocketTransport struct {
	conn   *websocket.Conn
	limits Limits
	logger *log.Logger
}

// NewWebSocket wraps conn in a WebSocketTransport. logger may be nil,
// in which case binary frames are silently discarded instead of
// logged.
func NewWebSocket(conn *websocket.Conn, limits Limits, logger *log.Logger) *WebSocketTransport {
	return &WebSocketTransport{conn: conn, limits: limits.orDefaults(), logger: logger}
}

// Close closes the underlying WebSocket connection with a normal
// closure status.
func (t *WebSocketTransport) Close() error {
	return t.conn.Close(websocket.StatusNormalClosure, "")
}

// ReadMessage blocks until the next text frame arrives, parsing it as
// one IRC line. Binary frames are skipped (after an optional log
// line); a close frame or any other read error is returned to the
// caller unchanged so it can inspect it with websocket.CloseStatus.
func (t *WebSocketTransport) ReadMessage(ctx context.Context) (*irc.Message, error) {
	for {
		typ, data, err := t.conn.Read(ctx)
		if err != nil {
			return nil, err
		}
		if typ == websocket.MessageBinary {
			if t.logger != nil {
				t.logger.Printf("transport: ignoring unexpected binary websocket frame (%d bytes)", len(data))
			}
			continue
		}
		line := string(data)
		if err := validateLine(t.limits, line); err != nil {
			return nil, err
		}
		m := &irc.Message{}
		if err := m.UnmarshalText(data); err != nil {
			return nil, err
		}
		return m, nil
	}
}

// WriteMessage encodes m and writes it as a single WebSocket text
// frame, with the trailing CRLF the encoder always appends removed
// (WebSocket framing already delimits messages; CRLF would be
// redundant content inside the frame).
func (t *WebSocketTransport) WriteMessage(ctx context.Context, m encoding.TextMarshaler) error {
	b, err := m.MarshalText()
	if len(b) == 0 {
		return err
	}
	line := strings.TrimSuffix(string(b), "\r\n")
	if werr := t.conn.Write(ctx, websocket.MessageText, []byte(line)); werr != nil {
		return werr
	}
	return err
}

// IsClose reports whether err indicates the peer closed the
// connection via a WebSocket close frame, as opposed to a lower-level
// network error.
func IsClose(err error) bool {
	return websocket.CloseStatus(err) != -1
}
