package irc

import (
	"fmt"
	"io"
	"strings"
)

// ByteSink is the minimal write surface the encoder needs: append
// bytes or strings without requiring a full io.Writer contract (a
// *bytes.Buffer or *bufio.Writer both satisfy it already).
type ByteSink interface {
	io.Writer
	WriteByte(byte) error
	WriteString(string) (int, error)
}

// EncodeRef writes a borrowed MessageRef to sink without decoding or
// re-encoding its tag block: TagsRaw is copied through byte-for-byte,
// which is valid because a MessageRef's tags were never unescaped in
// place (Data Model invariant). This is the zero-allocation path used
// by S2S relay/forwarding scenarios.
func EncodeRef(sink ByteSink, m *MessageRef) error {
	if m.TagsRaw != "" {
		if err := sink.WriteByte(startTags); err != nil {
			return err
		}
		if _, err := sink.WriteString(m.TagsRaw); err != nil {
			return err
		}
		if err := sink.WriteByte(delimParam); err != nil {
			return err
		}
	}
	if m.Source.Nick != "" || m.Source.Host != "" {
		if err := sink.WriteByte(startPrefix); err != nil {
			return err
		}
		if _, err := sink.WriteString(m.Source.String()); err != nil {
			return err
		}
		if err := sink.WriteByte(delimParam); err != nil {
			return err
		}
	}
	if _, err := sink.WriteString(m.Command); err != nil {
		return err
	}
	if err := writeParams(sink, m.Params); err != nil {
		return err
	}
	_, err := sink.WriteString("\r\n")
	return err
}

// Encode writes an owned Message to sink, escaping tag values and
// applying the colon-prefix rule to the trailing parameter. Numeric
// Response commands render as their zero-padded three-digit form.
func Encode(sink ByteSink, m *Message) error {
	if m.Tags != nil {
		if err := sink.WriteByte(startTags); err != nil {
			return err
		}
		first := true
		for k, v := range m.Tags {
			if !first {
				if err := sink.WriteByte(delimTag); err != nil {
					return err
				}
			}
			first = false
			if _, err := sink.WriteString(k); err != nil {
				return err
			}
			if v != "" {
				if err := sink.WriteByte(delimTagValue); err != nil {
					return err
				}
				if _, err := sink.WriteString(escaper.Replace(v)); err != nil {
					return err
				}
			}
		}
		if err := sink.WriteByte(delimParam); err != nil {
			return err
		}
	}
	if m.includePrefix && m.Source != (Prefix{}) {
		if err := sink.WriteByte(startPrefix); err != nil {
			return err
		}
		if _, err := sink.WriteString(m.Source.String()); err != nil {
			return err
		}
		if err := sink.WriteByte(delimParam); err != nil {
			return err
		}
	}
	if _, err := sink.WriteString(m.Command.String()); err != nil {
		return err
	}
	if err := writeParams(sink, m.Params); err != nil {
		return err
	}
	_, err := sink.WriteString("\r\n")
	return err
}

func writeParams(sink ByteSink, params []string) error {
	for i, p := range params {
		if err := sink.WriteByte(delimParam); err != nil {
			return err
		}
		if i == len(params)-1 && (p == "" || strings.Contains(p, " ") || strings.HasPrefix(p, ":")) {
			if err := sink.WriteByte(startTrailing); err != nil {
				return err
			}
		}
		if _, err := sink.WriteString(p); err != nil {
			return err
		}
	}
	return nil
}

// EncodeResponse renders a numeric response line: "<prefix> ddd <params...>\r\n".
func EncodeResponse(sink ByteSink, source string, r Response, params []string) error {
	if source != "" {
		if err := sink.WriteByte(startPrefix); err != nil {
			return err
		}
		if _, err := sink.WriteString(source); err != nil {
			return err
		}
		if err := sink.WriteByte(delimParam); err != nil {
			return err
		}
	}
	if _, err := sink.WriteString(fmt.Sprintf("%03d", int(r))); err != nil {
		return err
	}
	if err := writeParams(sink, params); err != nil {
		return err
	}
	_, err := sink.WriteString("\r\n")
	return err
}
