// Package validate implements the nickname, channel, username, and
// hostname validators, plus the control-character policy shared by
// the parser and the framed transport.
//
// Rules are ported from the original slirc-proto validation module:
// length-bounded, first-character-sensitive for nicknames and
// channels, and uniformly hostile to control characters.
package validate

import "fmt"

// Error describes why a value failed validation.
type Error struct {
	Kind     Kind
	Max      int
	Actual   int
	Char     rune
	Position int
}

// Kind enumerates the validation failure categories.
type Kind int

const (
	_ Kind = iota
	Empty
	TooLong
	InvalidChar
	MissingPrefix
	InvalidFirstChar
)

func (e *Error) Error() string {
	switch e.Kind {
	case Empty:
		return "value is empty"
	case TooLong:
		return fmt.Sprintf("value length %d exceeds maximum %d", e.Actual, e.Max)
	case InvalidChar:
		return fmt.Sprintf("invalid character %q at position %d", e.Char, e.Position)
	case MissingPrefix:
		return "missing required prefix character"
	case InvalidFirstChar:
		return fmt.Sprintf("invalid first character %q", e.Char)
	default:
		return "validation error"
	}
}

const (
	defaultMaxNickname = 50
	defaultMaxChannel  = 50
	defaultMaxUsername = 10
)

// IsIllegalControlChar reports whether ch is prohibited on the wire:
// NUL or any other C0 control character that is not CR or LF.
func IsIllegalControlChar(ch rune) bool {
	if ch == 0 {
		return true
	}
	return ch < 0x20 && ch != '\r' && ch != '\n'
}

// ContainsIllegalControlChars reports whether s contains any byte that
// IsIllegalControlChar rejects.
func ContainsIllegalControlChars(s string) bool {
	for _, r := range s {
		if IsIllegalControlChar(r) {
			return true
		}
	}
	return false
}

// StripIllegalControlChars returns s unchanged when clean, or a copy
// with illegal control characters removed when dirty. This is the
// copy-on-write behavior described by the core spec: callers that
// never encounter dirty input pay no allocation cost.
func StripIllegalControlChars(s string) string {
	if !ContainsIllegalControlChars(s) {
		return s
	}
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if !IsIllegalControlChar(r) {
			out = append(out, r)
		}
	}
	return string(out)
}

func isNickSpecialChar(r rune) bool {
	switch r {
	case '[', ']', '\\', '`', '_', '^', '{', '|', '}':
		return true
	default:
		return false
	}
}

func isValidNickFirstChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || isNickSpecialChar(r)
}

func isValidNickChar(r rune) bool {
	return isValidNickFirstChar(r) || (r >= '0' && r <= '9') || r == '-'
}

// Nickname validates nick against the default length limit (50).
func Nickname(nick string) error {
	return NicknameMaxLen(nick, defaultMaxNickname)
}

// NicknameMaxLen validates nick against an explicit maximum length.
func NicknameMaxLen(nick string, max int) error {
	if len(nick) == 0 {
		return &Error{Kind: Empty}
	}
	if len(nick) > max {
		return &Error{Kind: TooLong, Max: max, Actual: len(nick)}
	}
	runes := []rune(nick)
	if !isValidNickFirstChar(runes[0]) {
		return &Error{Kind: InvalidFirstChar, Char: runes[0]}
	}
	for i, r := range runes[1:] {
		if !isValidNickChar(r) {
			return &Error{Kind: InvalidChar, Char: r, Position: i + 1}
		}
	}
	return nil
}

// ChannelName validates ch against the default length limit (50).
func ChannelName(ch string) error {
	return ChannelNameMaxLen(ch, defaultMaxChannel)
}

// ChannelNameMaxLen validates ch against an explicit maximum length.
func ChannelNameMaxLen(ch string, max int) error {
	if len(ch) == 0 {
		return &Error{Kind: Empty}
	}
	if len(ch) > max {
		return &Error{Kind: TooLong, Max: max, Actual: len(ch)}
	}
	runes := []rune(ch)
	switch runes[0] {
	case '#', '&', '+', '!':
	default:
		return &Error{Kind: InvalidFirstChar, Char: runes[0]}
	}
	for i, r := range runes {
		switch r {
		case ' ', ',', '\x07', '\x00':
			return &Error{Kind: InvalidChar, Char: r, Position: i}
		}
		if IsIllegalControlChar(r) {
			return &Error{Kind: InvalidChar, Char: r, Position: i}
		}
	}
	return nil
}

// Username validates user against the default length limit (10).
func Username(user string) error {
	return UsernameMaxLen(user, defaultMaxUsername)
}

// UsernameMaxLen validates user against an explicit maximum length.
func UsernameMaxLen(user string, max int) error {
	if len(user) == 0 {
		return &Error{Kind: Empty}
	}
	if len(user) > max {
		return &Error{Kind: TooLong, Max: max, Actual: len(user)}
	}
	for i, r := range user {
		if r == ' ' || r == '@' || IsIllegalControlChar(r) {
			return &Error{Kind: InvalidChar, Char: r, Position: i}
		}
	}
	return nil
}

// Hostname validates host: non-empty, no spaces, no control
// characters. There is no length limit, matching the original source.
func Hostname(host string) error {
	if len(host) == 0 {
		return &Error{Kind: Empty}
	}
	for i, r := range host {
		if r == ' ' || IsIllegalControlChar(r) {
			return &Error{Kind: InvalidChar, Char: r, Position: i}
		}
	}
	return nil
}

// MessageLine validates a full line for protocol control characters
// only (NUL, or C0 other than CR/LF); it does not enforce length,
// which is the transport's responsibility.
func MessageLine(line string) error {
	for i, r := range line {
		if IsIllegalControlChar(r) {
			return &Error{Kind: InvalidChar, Char: r, Position: i}
		}
	}
	return nil
}
