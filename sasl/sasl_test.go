package sasl

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestEncodePlain(t *testing.T) {
	got := EncodePlain("", "alice", "hunter2")
	decoded, err := base64.StdEncoding.DecodeString(got)
	if err != nil {
		t.Fatalf("EncodePlain produced invalid base64: %v", err)
	}
	want := "\x00alice\x00hunter2"
	if string(decoded) != want {
		t.Errorf("decoded PLAIN payload = %q, want %q", decoded, want)
	}
}

func TestEncodeExternal(t *testing.T) {
	if got := EncodeExternal(""); got != "+" {
		t.Errorf("EncodeExternal(\"\") = %q, want %q", got, "+")
	}
	got := EncodeExternal("alice")
	decoded, err := base64.StdEncoding.DecodeString(got)
	if err != nil || string(decoded) != "alice" {
		t.Errorf("EncodeExternal(\"alice\") decoded = %q, err %v", decoded, err)
	}
}

func TestChooseMechanism(t *testing.T) {
	m, ok := ChooseMechanism([]string{"PLAIN", "SCRAM-SHA-256"})
	if !ok || m != "SCRAM-SHA-256" {
		t.Errorf("ChooseMechanism() = (%q, %v), want (SCRAM-SHA-256, true)", m, ok)
	}
	m, ok = ChooseMechanism([]string{"PLAIN", "EXTERNAL"})
	if !ok || m != "EXTERNAL" {
		t.Errorf("ChooseMechanism() = (%q, %v), want (EXTERNAL, true)", m, ok)
	}
	_, ok = ChooseMechanism([]string{"DIGEST-MD5"})
	if ok {
		t.Error("ChooseMechanism() should report false for an unrecognized mechanism list")
	}
}

func TestChunk(t *testing.T) {
	short := Chunk("YWJj")
	if len(short) != 1 || short[0] != "YWJj" {
		t.Errorf("Chunk(short) = %v", short)
	}

	exact := strings.Repeat("A", 400)
	chunks := Chunk(exact)
	if len(chunks) != 2 || chunks[0] != exact || chunks[1] != "+" {
		t.Errorf("Chunk(exact 400) produced %d chunks, want [payload, \"+\"]", len(chunks))
	}

	long := strings.Repeat("B", 450)
	chunks = Chunk(long)
	if len(chunks) != 2 || len(chunks[0]) != 400 || len(chunks[1]) != 50 {
		t.Errorf("Chunk(450 bytes) = %v lengths, want [400, 50]", lens(chunks))
	}
}

func lens(ss []string) []int {
	out := make([]int, len(ss))
	for i, s := range ss {
		out[i] = len(s)
	}
	return out
}

func TestScramClient_FullExchange(t *testing.T) {
	// This test exercises only the client-side message construction and
	// verification logic against a hand-computed server response,
	// following RFC 5802's worked example shape (not its literal values).
	client := NewScramClient("user", "pencil", "")
	client.clientNonce = "fyko+d2lbbFgONRv9qkxdawL" // fixed for reproducibility

	first := client.ClientFirst()
	if !strings.HasPrefix(first, "n,,n=user,r=fyko+d2lbbFgONRv9qkxdawL") {
		t.Fatalf("ClientFirst() = %q", first)
	}

	serverFirst := "r=fyko+d2lbbFgONRv9qkxdawLHRAYQKmeAZ4Gmjtro8bK,s=W22ZaJ0SNY7soEsUEjb6gQ==,i=4096"
	final, err := client.ServerFirst(serverFirst)
	if err != nil {
		t.Fatalf("ServerFirst() error: %v", err)
	}
	if !strings.Contains(final, "c=biws,r=fyko+d2lbbFgONRv9qkxdawLHRAYQKmeAZ4Gmjtro8bK") {
		t.Errorf("ServerFirst() final message missing expected c/r fields: %q", final)
	}
	if !strings.Contains(final, ",p=") {
		t.Errorf("ServerFirst() final message missing proof field: %q", final)
	}
}

func TestScramClient_NonceMismatch(t *testing.T) {
	client := NewScramClient("user", "pencil", "")
	client.clientNonce = "abc123"
	_, err := client.ServerFirst("r=doesnotmatch,s=W22ZaJ0SNY7soEsUEjb6gQ==,i=4096")
	if err != ErrNonceMismatch {
		t.Errorf("ServerFirst() error = %v, want ErrNonceMismatch", err)
	}
}

func TestScramClient_MissingFields(t *testing.T) {
	client := NewScramClient("user", "pencil", "")
	client.clientNonce = "abc123"
	if _, err := client.ServerFirst("s=W22ZaJ0SNY7soEsUEjb6gQ==,i=4096"); err != ErrMissingNonce {
		t.Errorf("missing r= gave %v, want ErrMissingNonce", err)
	}
	if _, err := client.ServerFirst("r=abc123xyz,i=4096"); err != ErrMissingSalt {
		t.Errorf("missing s= gave %v, want ErrMissingSalt", err)
	}
	if _, err := client.ServerFirst("r=abc123xyz,s=W22ZaJ0SNY7soEsUEjb6gQ=="); err != ErrMissingIterations {
		t.Errorf("missing i= gave %v, want ErrMissingIterations", err)
	}
}
