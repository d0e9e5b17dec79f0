package transport

import (
	"context"
	"net"
)

// DialTCP opens a plain TCP connection to addr, applies keepalive
// tuning, and wraps it in a framed Transport.
func DialTCP(ctx context.Context, addr string, keepalive KeepaliveConfig, limits Limits) (*Transport, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	if tc, ok := conn.(*net.TCPConn); ok {
		if err := ApplyKeepalive(tc, keepalive); err != nil {
			conn.Close()
			return nil, err
		}
	}
	return New(conn, limits), nil
}
