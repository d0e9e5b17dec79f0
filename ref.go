package irc

import "errors"

// PrefixRef is the borrowed counterpart of Prefix: its fields are
// slices into the buffer backing the MessageRef that produced it,
// rather than owned strings. Because Go strings are themselves
// immutable views into a byte sequence, slicing here costs no
// allocation — the zero-copy property comes from reusing the
// lexer's item values directly instead of copying them into new
// owned storage.
type PrefixRef struct {
	Nick string
	User string
	Host string
}

// IsServer returns true when the message originated from a server
// rather than a user/client.
func (p PrefixRef) IsServer() bool {
	return p.Host != "" && p.Nick == ""
}

// String renders the prefix in wire form.
func (p PrefixRef) String() string {
	switch {
	case p.Nick == "" && p.User == "" && p.Host == "":
		return ""
	case p.Nick == "" && p.User == "":
		return p.Host
	case p.User == "":
		return p.Nick
	default:
		return p.Nick + "!" + p.User + "@" + p.Host
	}
}

// MessageRef is the borrowed view produced by ParseRef: every field
// is a slice into the input line, so MessageRef must not outlive the
// buffer it was parsed from (in the framed transport, that means not
// outliving the transport's current read-buffer slot).
//
// TagsRaw is kept exactly as it appeared between '@' and the
// separating space: escape sequences are not decoded. Callers that
// need decoded tag values should convert to an owned Message with
// Decode rather than unescape TagsRaw fields themselves.
type MessageRef struct {
	TagsRaw string
	Source  PrefixRef
	Command string
	Params  []string
}

// ParseRef parses a single IRC line (without trailing CR/LF) into a
// borrowed MessageRef. It performs the same algorithm as
// Message.UnmarshalText but never allocates owned copies of tag or
// parameter text: every string in the result is a slice of line.
func ParseRef(line string) (MessageRef, error) {
	if len(line) == 0 {
		return MessageRef{}, ErrEmptyMessage
	}

	l := lex(line)
	var ref MessageRef
	var tagStart = -1
	var tagEnd = -1

	if line[0] == startTags {
		// Recover the raw tag block by scanning independently of the
		// lexer's per-key/value emission, since TagsRaw must remain
		// un-split and un-decoded.
		tagStart = 1
		for i := 1; i < len(line); i++ {
			if line[i] == delimParam {
				tagEnd = i
				break
			}
		}
		if tagEnd == -1 {
			return MessageRef{}, errors.New("irc: unterminated tag block")
		}
	}
	if tagEnd != -1 {
		ref.TagsRaw = line[tagStart:tagEnd]
	}

	for {
		i := l.nextItem()
		switch i.typ {
		case itemEOF:
			return ref, nil
		case itemError:
			return MessageRef{}, NewParseContext(0, "parse error", errors.New(i.val))
		case itemTagKey:
			l.nextItem() // discard the paired itemTagValue; TagsRaw already captured above
		case itemNickname:
			ref.Source.Nick = i.val
		case itemUser:
			ref.Source.User = i.val
		case itemHost:
			ref.Source.Host = i.val
		case itemCommand:
			ref.Command = i.val
		case itemParam:
			ref.Params = append(ref.Params, i.val)
		}
	}
}

// Decode converts a borrowed MessageRef into an owned Message,
// decoding tag escapes and copying parameter strings so the result no
// longer depends on the original buffer.
func (r MessageRef) Decode() Message {
	m := Message{
		Command: Command(r.Command).normalized(),
		Source: Prefix{
			Nick: Nickname(r.Source.Nick),
			User: r.Source.User,
			Host: r.Source.Host,
		},
	}
	if len(r.Params) > 0 {
		m.Params = append(Params(nil), r.Params...)
	}
	if r.TagsRaw != "" {
		for _, tag := range splitTagBlock(r.TagsRaw) {
			key, val := splitTagPair(tag)
			if key == "" {
				continue
			}
			m.Tags.Set(key, unescapeTagValue(val))
		}
	}
	return m
}

// splitTagBlock splits a raw tag block on ';' without allocating a
// slice of slices beyond the result itself.
func splitTagBlock(raw string) []string {
	var out []string
	start := 0
	for i := 0; i < len(raw); i++ {
		if raw[i] == delimTag {
			out = append(out, raw[start:i])
			start = i + 1
		}
	}
	out = append(out, raw[start:])
	return out
}

// splitTagPair splits a single "key" or "key=value" tag token.
func splitTagPair(tag string) (key, value string) {
	for i := 0; i < len(tag); i++ {
		if tag[i] == delimTagValue {
			return tag[:i], tag[i+1:]
		}
	}
	return tag, ""
}
