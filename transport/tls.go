package transport

import (
	"context"
	"crypto/tls"
	"net"
)

// DialTLS opens a TLS connection to addr and wraps it in a framed
// Transport. config is passed through to tls.Dial unchanged; callers
// are responsible for setting ServerName, RootCAs, etc.
//
// There is no third-party TLS library wired here: crypto/tls is the
// standard, ecosystem-wide way to wrap a net.Conn in Go, and none of
// the example repos in the pack introduce an alternative.
func DialTLS(ctx context.Context, addr string, config *tls.Config, limits Limits) (*Transport, error) {
	d := tls.Dialer{Config: config}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	return New(conn, limits), nil
}

// ServeTLS wraps an already-accepted net.Conn with a TLS server-side
// handshake and a framed Transport.
func ServeTLS(conn net.Conn, config *tls.Config, limits Limits) *Transport {
	return New(tls.Server(conn, config), limits)
}
