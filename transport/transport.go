// Package transport implements the framed line transport: reading
// length-bounded, control-character-policed CRLF lines off a byte
// stream and parsing them, and writing encoded messages back. The
// same framing applies over three carrier shapes (plain TCP, TLS, and
// WebSocket text frames); this file implements the carrier-agnostic
// core against any io.ReadWriteCloser, and conn.go/tls.go/websocket.go
// supply the carrier-specific constructors.
package transport

import (
	"encoding"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/ircwire/ircwire"
	"github.com/ircwire/ircwire/internal/validate"
)

// Limits bounds the sizes the transport accepts.
type Limits struct {
	// MaxTagBytes bounds the tag section (between '@' and the
	// separating space), default 4094.
	MaxTagBytes int
	// MaxBodyBytes bounds the message body including CRLF, default 512.
	MaxBodyBytes int
	// MaxLineBytes bounds the whole line including tags, default 8191.
	MaxLineBytes int
}

// DefaultLimits are the protocol-conventional size budgets.
var DefaultLimits = Limits{MaxTagBytes: 4094, MaxBodyBytes: 512, MaxLineBytes: 8191}

func (l Limits) orDefaults() Limits {
	if l.MaxTagBytes == 0 {
		l.MaxTagBytes = DefaultLimits.MaxTagBytes
	}
	if l.MaxBodyBytes == 0 {
		l.MaxBodyBytes = DefaultLimits.MaxBodyBytes
	}
	if l.MaxLineBytes == 0 {
		l.MaxLineBytes = DefaultLimits.MaxLineBytes
	}
	return l
}

// readChunk is how many bytes Transport asks the underlying stream
// for on each underfull read.
const readChunk = 4096

// Transport frames IRC lines off a byte stream: it owns a growable
// read buffer and exposes ReadMessage/WriteMessage. One Transport
// owns one stream; reads and writes on it are serialized by
// construction (the caller must not call ReadMessage concurrently
// with another ReadMessage, though a concurrent WriteMessage is safe
// since the two paths touch disjoint state).
type Transport struct {
	stream io.ReadWriteCloser
	limits Limits

	buf        []byte
	start, end int // buf[start:end] holds unconsumed bytes
}

// New wraps stream in a framed Transport using the given limits (the
// zero Limits value means DefaultLimits).
func New(stream io.ReadWriteCloser, limits Limits) *Transport {
	return &Transport{stream: stream, limits: limits.orDefaults(), buf: make([]byte, readChunk)}
}

// Close closes the underlying stream.
func (t *Transport) Close() error { return t.stream.Close() }

// ReadMessage reads and parses the next line, blocking until a full
// line is available, the stream errs, or the line violates a size or
// content policy. On a policy violation the offending bytes are
// still consumed (the buffer advances past them) so the caller may
// choose to keep reading past one bad line.
func (t *Transport) ReadMessage() (*irc.Message, error) {
	line, err := t.readLine()
	if err != nil {
		return nil, err
	}
	if err := t.validateLine(line); err != nil {
		return nil, err
	}
	m := &irc.Message{}
	if err := m.UnmarshalText([]byte(line)); err != nil {
		return nil, err
	}
	return m, nil
}

// ReadMessageRef is the borrowed-view counterpart of ReadMessage: it
// parses with irc.ParseRef, so tags stay undecoded and parameters are
// slices of the line. The line itself is copied out of the Transport's
// internal read buffer once, so the returned MessageRef does not alias
// that buffer and stays valid after later reads.
func (t *Transport) ReadMessageRef() (irc.MessageRef, error) {
	line, err := t.readLine()
	if err != nil {
		return irc.MessageRef{}, err
	}
	if err := t.validateLine(line); err != nil {
		return irc.MessageRef{}, err
	}
	return irc.ParseRef(line)
}

// WriteMessage encodes m and writes it to the stream. A non-nil
// marshal error whose byte slice is still non-empty (the Message
// truncation warning) is written anyway and returned alongside any
// write error, since the bytes are still valid to send; the caller
// decides whether to treat it as fatal.
func (t *Transport) WriteMessage(m encoding.TextMarshaler) error {
	b, err := m.MarshalText()
	if len(b) == 0 {
		return err
	}
	if _, werr := t.stream.Write(b); werr != nil {
		return werr
	}
	return err
}

// readLine returns the next CRLF- or LF-terminated line (CR/LF
// stripped) from the stream, growing and refilling the internal
// buffer as needed.
func (t *Transport) readLine() (string, error) {
	for {
		if idx := indexByte(t.buf[t.start:t.end], '\n'); idx >= 0 {
			lineEnd := t.start + idx
			if idx > t.limits.MaxLineBytes {
				t.start = lineEnd + 1
				t.compact()
				return "", &MessageTooLong{Actual: idx, Limit: t.limits.MaxLineBytes}
			}
			line := string(t.buf[t.start:lineEnd])
			t.start = lineEnd + 1
			if n := len(line); n > 0 && line[n-1] == '\r' {
				line = line[:n-1]
			}
			t.compact()
			return line, nil
		}

		if buffered := t.end - t.start; buffered > t.limits.MaxLineBytes {
			// No newline within the budget: consume and discard the
			// buffered prefix so the caller can resynchronize on the
			// next line, and report the violation.
			t.start = t.end
			return "", &MessageTooLong{Actual: buffered, Limit: t.limits.MaxLineBytes}
		}

		if err := t.fill(); err != nil {
			return "", err
		}
	}
}

// fill reads more bytes from the stream into buf, growing buf first
// if it has no room left.
func (t *Transport) fill() error {
	if t.end == len(t.buf) {
		if t.start > 0 {
			t.compact()
		}
		if t.end == len(t.buf) {
			grown := make([]byte, len(t.buf)*2)
			copy(grown, t.buf[t.start:t.end])
			t.buf = grown
		}
	}
	n, err := t.stream.Read(t.buf[t.end:])
	t.end += n
	if n == 0 && err != nil {
		return err
	}
	return nil
}

// compact slides unconsumed bytes to the front of buf so fill can
// reuse the freed space instead of growing unboundedly.
func (t *Transport) compact() {
	if t.start == 0 {
		return
	}
	n := copy(t.buf, t.buf[t.start:t.end])
	t.start = 0
	t.end = n
}

func indexByte(b []byte, c byte) int {
	for i, x := range b {
		if x == c {
			return i
		}
	}
	return -1
}

// validateLine checks line (already CR/LF-stripped) against the
// control-character policy, UTF-8 well-formedness, and the tag/body
// size budgets.
func (t *Transport) validateLine(line string) error {
	return validateLine(t.limits, line)
}

// validateLine is the carrier-agnostic validation core shared by
// Transport (CRLF framing) and WebSocketTransport (one frame per
// line, no CRLF).
func validateLine(limits Limits, line string) error {
	if !utf8.ValidString(line) {
		return &InvalidUTF8{Diagnostic: "line is not valid UTF-8"}
	}
	if err := validate.MessageLine(line); err != nil {
		var ve *validate.Error
		if errors.As(err, &ve) && ve.Kind == validate.InvalidChar {
			return &IllegalControlChar{Ch: byte(ve.Char)}
		}
		return err
	}

	tagBytes := 0
	body := line
	if len(line) > 0 && line[0] == '@' {
		if sp := indexByteStr(line, ' '); sp >= 0 {
			tagBytes = sp - 1 // exclude leading '@'
			body = line[sp+1:]
		}
	}
	if tagBytes > limits.MaxTagBytes {
		return &TagsTooLong{Actual: tagBytes, Limit: limits.MaxTagBytes}
	}
	// +2 accounts for the CRLF terminator that readLine already
	// stripped, since the conventional body budget counts the CRLF.
	if bodyLen := len(body) + 2; bodyLen > limits.MaxBodyBytes {
		return &MessageTooLong{Actual: bodyLen, Limit: limits.MaxBodyBytes}
	}
	return nil
}

func indexByteStr(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}

// MessageTooLong is reported when a line (or its body section) exceeds
// its configured byte budget.
type MessageTooLong struct {
	Actual, Limit int
}

func (e *MessageTooLong) Error() string {
	return fmt.Sprintf("transport: message length %d exceeds limit %d", e.Actual, e.Limit)
}

// TagsTooLong is reported when a message's tag section exceeds its
// configured byte budget.
type TagsTooLong struct {
	Actual, Limit int
}

func (e *TagsTooLong) Error() string {
	return fmt.Sprintf("transport: tag data length %d exceeds limit %d", e.Actual, e.Limit)
}

// IllegalControlChar is reported when a line contains a prohibited
// control character (NUL, or any C0 control other than CR/LF).
type IllegalControlChar struct {
	Ch byte
}

func (e *IllegalControlChar) Error() string {
	return fmt.Sprintf("transport: illegal control character %#02x", e.Ch)
}

// InvalidUTF8 is reported when a line is not well-formed UTF-8.
type InvalidUTF8 struct {
	Diagnostic string
}

func (e *InvalidUTF8) Error() string {
	return "transport: invalid utf-8: " + e.Diagnostic
}
