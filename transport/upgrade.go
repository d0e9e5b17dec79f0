package transport

import (
	"log"
	"net/http"

	"github.com/coder/websocket"
	"github.com/gorilla/mux"
)

// UpgradePolicy configures how a WebSocket upgrade request is
// evaluated: an optional Origin whitelist or mandatory-Origin check,
// optional subprotocol negotiation, and optional CORS header
// emission.
type UpgradePolicy struct {
	// AllowedOrigins, if non-empty, is the whitelist an incoming
	// Origin header must match (exact string match on the header
	// value). An empty list means any origin is accepted, subject to
	// RequireOrigin.
	AllowedOrigins []string
	// RequireOrigin rejects requests with no Origin header at all.
	RequireOrigin bool
	// Subprotocols lists the Sec-WebSocket-Protocol values this
	// server accepts, typically just "irc". Empty means no
	// subprotocol negotiation is attempted.
	Subprotocols []string
	// EnableCORS emits Access-Control-Allow-Origin for the accepted
	// origin on the upgrade response.
	EnableCORS bool
}

// evaluate checks req against the policy, returning the accepted
// subprotocol (if any) or a rejection status/reason.
func (p UpgradePolicy) evaluate(req *http.Request) (subprotocol, origin string, rejectStatus int, rejectReason string) {
	origin = req.Header.Get("Origin")
	if origin == "" {
		if p.RequireOrigin {
			return "", "", http.StatusForbidden, "missing required Origin header"
		}
	} else if len(p.AllowedOrigins) > 0 && !containsString(p.AllowedOrigins, origin) {
		return "", "", http.StatusForbidden, "origin not permitted: " + origin
	}

	if len(p.Subprotocols) > 0 {
		offered := req.Header.Get("Sec-WebSocket-Protocol")
		for _, want := range p.Subprotocols {
			if containsCSV(offered, want) {
				subprotocol = want
				break
			}
		}
	}
	return subprotocol, origin, 0, ""
}

func containsString(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}

func containsCSV(csv, want string) bool {
	for _, part := range splitComma(csv) {
		if trimSpace(part) == want {
			return true
		}
	}
	return false
}

func splitComma(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ',' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}

func trimSpace(s string) string {
	for len(s) > 0 && s[0] == ' ' {
		s = s[1:]
	}
	for len(s) > 0 && s[len(s)-1] == ' ' {
		s = s[:len(s)-1]
	}
	return s
}

// AcceptHandler is called once an upgrade has been accepted, with the
// now-established WebSocket transport.
type AcceptHandler func(t *WebSocketTransport, r *http.Request)

// NewUpgradeHandler returns an http.Handler that evaluates incoming
// requests against policy, rejects non-conforming ones per the policy
// result, and otherwise completes the WebSocket handshake and invokes
// onAccept. Origin/subprotocol decisions are policy's own plain Go
// logic; github.com/coder/websocket's own origin check is disabled
// (InsecureSkipVerify) since policy.evaluate already performed it.
func NewUpgradeHandler(policy UpgradePolicy, limits Limits, logger *log.Logger, onAccept AcceptHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subprotocol, origin, status, reason := policy.evaluate(r)
		if status != 0 {
			http.Error(w, reason, status)
			return
		}
		if policy.EnableCORS && origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}

		opts := &websocket.AcceptOptions{InsecureSkipVerify: true}
		if subprotocol != "" {
			opts.Subprotocols = []string{subprotocol}
		}
		conn, err := websocket.Accept(w, r, opts)
		if err != nil {
			if logger != nil {
				logger.Printf("transport: websocket accept failed: %v", err)
			}
			return
		}
		onAccept(NewWebSocket(conn, limits, logger), r)
	})
}

// RegisterUpgradeRoute registers NewUpgradeHandler's handler on router
// at path using gorilla/mux, which is the route-to-handler binding a
// server embedding this library would already be using rather than
// something this package needs to own end to end.
func RegisterUpgradeRoute(router *mux.Router, path string, policy UpgradePolicy, limits Limits, logger *log.Logger, onAccept AcceptHandler) {
	router.Handle(path, NewUpgradeHandler(policy, limits, logger, onAccept))
}
