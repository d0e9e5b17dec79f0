package irc

import (
	"bytes"
	"encoding"
	"errors"
	"fmt"
	"strings"

	"github.com/ircwire/ircwire/internal/casemap"
)

// warnTruncate is an error indicating that an encoded IRC message is too long. The message
// was still sent to the server, but the server is likely to truncate the end of the
// message before sending it to other clients.
//
// Most IRC servers limit messages to 512 bytes in length, including the trailing CR-LF characters.
// Implementations which include message tags allow an additional 4094 bytes for the tags
// section of a message, including the leading '@' and trailing space character(s).
// https://modern.ircdocs.horse/#messages
var warnTruncate = errors.New("message length exceeds IRC limit and may be truncated")

// parameterLimit is the maximum number of parameters a message may contain as defined by the protocol.
// Generally, clients should never send more than this limit but should accept any number.
const parameterLimit = 15

const (
	maxTagBytes  = 4094
	maxBodyBytes = 512
)

// NewMessage constructs a new Message to be sent on the connection
// with cmd as the verb and args as the message parameters.
//
// Only the last argument may contain SPACE (ascii 32, %x20).
// This is a limitation defined in the IRC protocol.
// Including SPACE in any other argument will
// result in undefined behavior.
func NewMessage(cmd Command, args ...string) *Message {
	p := make(Params, len(args), parameterLimit)
	copy(p, args)
	cmd = cmd.normalized()
	return &Message{
		Command: cmd,
		Params:  p,
	}
}

// Message represents any incoming or outgoing IRC line.
//
// A message consists of four parts: tags, prefix, verb, and params.
type Message struct {
	// Tags contains IRCv3 message tags.
	// Tags are included by the server if the message-tags capability has been negotiated.
	Tags Tags

	// Source is where the message originated from.
	// It's set by the prefix portion of an IRC message.
	//
	// Source should be left empty for messages that will be written to an IRC connection.
	Source Prefix

	// Command is the IRC verb or numeric such as PRIVMSG, NOTICE, 001, etc.
	Command Command

	// Params contains all the message parameters.
	// If a message included a trailing component,
	// it will be included without special treatment.
	Params Params

	// includePrefix controls whether MarshalText will write the prefix.
	includePrefix bool
}

// MarshalText implements encoding.TextMarshaler. It delegates to
// Encode for the wire layout and additionally warns (via a wrapped
// error, not a failure) when the encoded tag block or message body
// exceeds the protocol's conventional size budgets; the bytes are
// still returned in full because truncation is the server's decision
// to make, not this library's.
func (m *Message) MarshalText() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, 1024))
	if err := Encode(buf, m); err != nil {
		return buf.Bytes(), err
	}

	var tbc int
	var err error
	if m.Tags != nil {
		if i := bytes.IndexByte(buf.Bytes(), delimParam); i >= 0 {
			tbc = i
		}
		if tbc > maxTagBytes {
			err = fmt.Errorf("%w: message tags were %d bytes", warnTruncate, tbc)
		}
	}
	if l := buf.Len() - tbc; l > maxBodyBytes {
		if err != nil {
			err = fmt.Errorf("%w, and message length is %d bytes", err, l)
		} else {
			err = fmt.Errorf("%w: message length is %d bytes", warnTruncate, l)
		}
	}

	return buf.Bytes(), err
}

// UnmarshalText implements encoding.TextUnmarshaler,
// accepting a line read from an IRC stream.
// text should not include the trailing CR-LF pair.
func (m *Message) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		return ErrEmptyMessage
	}

	l := lex(string(text))

	m.Source = Prefix{}
	m.Command = ""
	m.Params = nil
	m.Tags = nil
	m.includePrefix = true

	for {
		i := l.nextItem()
		switch i.typ {
		case itemEOF:
			return nil
		case itemError:
			return NewParseContext(0, "parse error", errors.New(i.val))
		case itemTagKey:
			v := l.nextItem() // type itemTagValue is *always* emitted after itemTagKey
			if i.val == "" {
				continue
			}
			m.Tags.Set(i.val, unescapeTagValue(v.val))
		case itemNickname:
			m.Source.Nick = Nickname(i.val)
		case itemUser:
			m.Source.User = i.val
		case itemHost:
			m.Source.Host = i.val
		case itemCommand:
			m.Command = Command(strings.ToUpper(i.val))
		case itemParam:
			m.Params = append(m.Params, i.val)
		}
	}
}

// IncludePrefix controls whether the Source field will be marshaled by MarshalText.
//
// [RFC 1459] states that for messages originating from a client,
// it is invalid to include any prefix other than the client's nickname,
// and instructs servers to silently discard messages which do not follow this rule.
// The default is therefore to enable this setting for received messages
// and disable it for new messages built by the caller.
//
// [RFC 1459]: https://datatracker.ietf.org/doc/html/rfc1459#section-2.3
func (m *Message) IncludePrefix() {
	m.includePrefix = true
}

// escaper is a string replacer that escapes message tag values for transmission.
var escaper = strings.NewReplacer(
	";", "\\:",
	" ", "\\s",
	"\\", "\\\\",
	"\r", "\\r",
	"\n", "\\n",
)

// unescapeTagValue decodes an IRCv3 tag value escape sequence.
// Known escapes: \: -> ;, \s -> SPACE, \\ -> \, \r -> CR, \n -> LF.
// An unknown \X decodes to X (backslash dropped); a trailing bare
// backslash is dropped entirely.
func unescapeTagValue(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			continue
		}
		if i+1 >= len(s) {
			// trailing bare backslash is dropped
			break
		}
		switch s[i+1] {
		case ':':
			b.WriteByte(';')
		case 's':
			b.WriteByte(' ')
		case '\\':
			b.WriteByte('\\')
		case 'r':
			b.WriteByte('\r')
		case 'n':
			b.WriteByte('\n')
		default:
			b.WriteByte(s[i+1])
		}
		i++
	}
	return b.String()
}

// Tags represents the IRCv3 message tags for an incoming or outgoing IRC line.
type Tags map[string]string

// Set will set the tag key k with value v.
func (t *Tags) Set(k string, v string) {
	if *t == nil {
		*t = make(Tags)
	}
	(*t)[k] = v
}

// Get will get the message tag value for key. All variations of missing or empty values return
// an empty string. To check whether a message included a specific tag key, use Has.
func (t Tags) Get(key string) string {
	return t[key]
}

// Has returns true when the given key was listed in the IRCv3 message tags.
func (t Tags) Has(key string) bool {
	_, ok := t[key]
	return ok
}

// Prefix is the optional message (line) prefix,
// which indicates the source (user or server) of the message,
// depending on the prefix format.
//
// Example line with no prefix:
//
//	PING :86F3E357
//
// Example nickname-only prefix:
//
//	:Travis MODE Travis :+ixz
//
// Example "fulladdress" prefix:
//
//	:NickServ!services@services.host NOTICE Travis :This nickname is registered...
//
// Example server prefix:
//
//	:fiery.ca.us.SwiftIRC.net MODE #foo +nt
type Prefix struct {
	Nick Nickname
	User string
	Host string
}

// IsServer returns true when the message originated from a server (as opposed to a user/client).
// When true, the server name will be contained in the Host field.
func (p Prefix) IsServer() bool {
	return p.Host != "" && p.Nick == ""
}

// String implements fmt.Stringer
func (p Prefix) String() string {
	switch {
	case p.Nick == "" && p.User == "" && p.Host == "":
		return ""
	case p.Nick == "" && p.User == "":
		return p.Host
	case p.User == "":
		return p.Nick.String()
	default:
		return p.Nick.String() + "!" + p.User + "@" + p.Host
	}
}

// Params contains the slice of arguments for a message.
//
// Prefer the Get method for reading params rather than accessing the slice directly.
//
// For outgoing messages,
// only the last parameter may contain SPACE (ascii 32).
// Including SPACE in any other parameter will result in undefined behavior.
type Params []string

// Get returns the nth parameter (starting at 1) from the parameters list,
// or "" (empty string) if it did not exist.
func (p Params) Get(n int) string {
	if n > len(p) || n < 1 {
		return ""
	}
	return p[n-1]
}

type Nickname string

func (n Nickname) String() string {
	return string(n)
}

// Is determines whether a nickname matches a string using RFC 1459
// case mapping, which differs from ASCII case folding for four
// punctuation characters ('[', ']', '\', '~').
func (n Nickname) Is(other string) bool {
	return casemap.Equal(n.String(), other)
}

// MessageWriter contains methods for sending IRC messages to a server.
type MessageWriter interface {
	// WriteMessage writes the message to the client's outgoing message queue.
	// The given encoding.TextMarshaler MUST return a byte slice which conforms to the IRC protocol.
	// If the slice does not end in "\r\n", then the sequence will be appended.
	WriteMessage(encoding.TextMarshaler)
}
