package transport

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestUpgradePolicy_RequireOrigin(t *testing.T) {
	p := UpgradePolicy{RequireOrigin: true}
	req := httptest.NewRequest(http.MethodGet, "/irc", nil)
	_, _, status, _ := p.evaluate(req)
	if status != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", status)
	}
}

func TestUpgradePolicy_AllowedOrigins(t *testing.T) {
	p := UpgradePolicy{AllowedOrigins: []string{"https://chat.example"}}

	allowed := httptest.NewRequest(http.MethodGet, "/irc", nil)
	allowed.Header.Set("Origin", "https://chat.example")
	if _, _, status, _ := p.evaluate(allowed); status != 0 {
		t.Fatalf("allowed origin rejected: status=%d", status)
	}

	denied := httptest.NewRequest(http.MethodGet, "/irc", nil)
	denied.Header.Set("Origin", "https://evil.example")
	if _, _, status, _ := p.evaluate(denied); status != http.StatusForbidden {
		t.Fatalf("denied origin status = %d, want 403", status)
	}
}

func TestUpgradePolicy_SubprotocolSelection(t *testing.T) {
	p := UpgradePolicy{Subprotocols: []string{"irc"}}
	req := httptest.NewRequest(http.MethodGet, "/irc", nil)
	req.Header.Set("Sec-WebSocket-Protocol", "foo, irc, bar")
	sub, _, status, _ := p.evaluate(req)
	if status != 0 {
		t.Fatalf("status = %d, want 0", status)
	}
	if sub != "irc" {
		t.Fatalf("subprotocol = %q, want irc", sub)
	}
}

func TestUpgradePolicy_NoSubprotocolMatch(t *testing.T) {
	p := UpgradePolicy{Subprotocols: []string{"irc"}}
	req := httptest.NewRequest(http.MethodGet, "/irc", nil)
	req.Header.Set("Sec-WebSocket-Protocol", "foo, bar")
	sub, _, status, _ := p.evaluate(req)
	if status != 0 {
		t.Fatalf("status = %d, want 0 (subprotocol mismatch is not itself a rejection)", status)
	}
	if sub != "" {
		t.Fatalf("subprotocol = %q, want empty", sub)
	}
}

func TestNewUpgradeHandler_RejectsMissingOrigin(t *testing.T) {
	h := NewUpgradeHandler(UpgradePolicy{RequireOrigin: true}, Limits{}, nil, func(*WebSocketTransport, *http.Request) {
		t.Fatal("onAccept should not be called for a rejected request")
	})
	req := httptest.NewRequest(http.MethodGet, "/irc", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}
