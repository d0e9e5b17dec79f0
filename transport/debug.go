package transport

import (
	"io"

	"github.com/ircwire/ircwire/ircdebug"
)

// NewDebug wraps stream with ircdebug.WriteTo before framing it, so
// every raw line read from or written to the connection is also
// copied to w, prefixed to show its direction. Useful for watching a
// live session while developing against a real server.
func NewDebug(stream io.ReadWriteCloser, w io.Writer, limits Limits) *Transport {
	return New(ircdebug.WriteTo(w, stream, "-> ", "<- "), limits)
}
