package caps

import (
	"strings"
	"testing"
)

func TestLS_VersionFiltering(t *testing.T) {
	v1 := LS(V301, LSOptions{})
	for _, tok := range v1 {
		name := strings.SplitN(tok, "=", 2)[0]
		c, ok := Lookup(name)
		if !ok {
			t.Fatalf("unknown capability rendered: %q", name)
		}
		if c.Version > V301 {
			t.Errorf("LS(301) rendered a 302-only capability: %q", name)
		}
	}
	v2 := LS(V302, LSOptions{})
	if len(v2) <= len(v1) {
		t.Errorf("expected LS(302) to render more capabilities than LS(301)")
	}
}

func TestLS_STSPortOverride(t *testing.T) {
	toks := LS(V302, LSOptions{STSPort: 7000})
	var found bool
	for _, tok := range toks {
		if strings.HasPrefix(tok, "sts=") {
			found = true
			if !strings.Contains(tok, "port=7000") {
				t.Errorf("sts token = %q, want port=7000", tok)
			}
		}
	}
	if !found {
		t.Fatal("expected an sts token in LS(302) output")
	}
}

func TestParseReq(t *testing.T) {
	r := ParseReq("multi-prefix -away-notify sasl=PLAIN bogus-cap")
	wantAccepted := []string{"multi-prefix", "-away-notify", "sasl=PLAIN"}
	if len(r.Accepted) != len(wantAccepted) {
		t.Fatalf("Accepted = %v, want %v", r.Accepted, wantAccepted)
	}
	for i, tok := range wantAccepted {
		if r.Accepted[i] != tok {
			t.Errorf("Accepted[%d] = %q, want %q", i, r.Accepted[i], tok)
		}
	}
	if len(r.Rejected) != 1 || r.Rejected[0] != "bogus-cap" {
		t.Errorf("Rejected = %v, want [bogus-cap]", r.Rejected)
	}
}

func TestIntersect(t *testing.T) {
	requested := []string{"sasl", "multi-prefix", "batch"}
	advertised := []string{"multi-prefix", "sasl=PLAIN", "account-notify"}
	got := Intersect(requested, advertised)
	want := []string{"sasl", "multi-prefix"}
	if len(got) != len(want) {
		t.Fatalf("Intersect() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Intersect()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
