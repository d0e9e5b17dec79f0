/*
Package irc provides the IRC wire protocol core: parsing and encoding
of IRC lines, a typed command/message model, and the numeric reply
catalogue. It does not manage a connection; see the transport and
handshake packages for that.

# API

These are the main types you will interact with while using this package:

	// Message represents any incoming or outgoing IRC line.
	// It satisfies encoding.TextMarshaler/TextUnmarshaler.
	type Message struct {
		Tags    Tags
		Source  Prefix
		Command Command
		Params  Params
	}

	// MessageRef is the zero-copy counterpart of Message, produced by
	// ParseRef: its fields alias the input line instead of owning copies.
	type MessageRef struct {
		TagsRaw string
		Source  PrefixRef
		Command string
		Params  []string
	}

	// A MessageWriter can write an IRC message, used by callers that
	// accept either a *Message or any other encoding.TextMarshaler.
	type MessageWriter interface {
		WriteMessage(encoding.TextMarshaler)
	}

# Encoding and decoding

Message.MarshalText encodes a Message as a raw IRC line ending in CRLF;
Message.UnmarshalText parses a raw line given without the trailing CRLF. ParseRef performs the same parse
without allocating owned copies of tag or parameter text, for callers
that process a line and discard it before the next read.

# Command classification

Classify maps a raw (Command, Params) pair to a TypedCommand, which
carries a Verb discriminant and, for numerics, the matching Response.
Mode[T] parses and encodes IRC mode strings such as "+o-v" into a
sequence of signed flag/argument pairs.

Related packages

  - isupport parses the 005 RPL_ISUPPORT token set.
  - caps implements the capability registry and CAP LS/REQ rendering.
  - sasl implements PLAIN, EXTERNAL, and SCRAM-SHA-256 authentication.
  - handshake implements the sans-I/O capability/SASL/registration
    state machine built on top of this package and sasl.
  - transport implements the framed line reader/writer over TCP, TLS,
    and WebSocket streams.
*/
package irc
