package trunc

import (
	"testing"
	"unicode/utf8"
)

func TestBytes(t *testing.T) {
	s := "hello"
	if got := Bytes(s, 10); got != s {
		t.Errorf("Bytes(short) = %q", got)
	}
	if got := Bytes(s, 3); got != "hel" {
		t.Errorf("Bytes(ascii) = %q", got)
	}

	multi := "aéb" // 'a', 2-byte é, 'b' -> 4 bytes
	for n := 0; n <= len(multi); n++ {
		got := Bytes(multi, n)
		if !utf8.ValidString(got) {
			t.Errorf("Bytes(%q, %d) = %q is not valid UTF-8", multi, n, got)
		}
		if len(got) > n {
			t.Errorf("Bytes(%q, %d) = %q exceeds max", multi, n, got)
		}
	}
}
