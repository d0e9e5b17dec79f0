package transport

import (
	"net"
	"time"
)

// KeepaliveConfig tunes TCP keepalive on a plain or TLS connection.
// The defaults (120s / 30s) are recovered from original_source/'s
// transport.rs, which sets them explicitly rather than relying on the
// OS default (which on Linux is commonly a much longer 7200s).
type KeepaliveConfig struct {
	// Time is how long the connection must be idle before the first
	// keepalive probe is sent.
	Time time.Duration
	// Interval is the delay between subsequent probes once idle.
	// The Go standard library only exposes a single keepalive period
	// (net.TCPConn.SetKeepAlivePeriod), not independent idle-time and
	// probe-interval knobs as setsockopt(TCP_KEEPIDLE/TCP_KEEPINTVL)
	// would allow; Interval is accepted for parity with the original
	// configuration shape but Time is what is actually applied,
	// matching what the stdlib can express without reaching for a
	// platform-specific syscall package.
	Interval time.Duration
}

// DefaultKeepalive matches original_source/src/transport.rs's constants.
var DefaultKeepalive = KeepaliveConfig{Time: 120 * time.Second, Interval: 30 * time.Second}

// ApplyKeepalive enables TCP keepalive on conn using cfg, or
// DefaultKeepalive if cfg is the zero value.
func ApplyKeepalive(conn *net.TCPConn, cfg KeepaliveConfig) error {
	if cfg.Time == 0 {
		cfg = DefaultKeepalive
	}
	if err := conn.SetKeepAlive(true); err != nil {
		return err
	}
	return conn.SetKeepAlivePeriod(cfg.Time)
}
