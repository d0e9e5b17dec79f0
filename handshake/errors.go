package handshake

import (
	"encoding/base64"
	"fmt"
)

// CapabilityRejected is emitted when the server NAKs one or more
// requested capabilities. It is non-fatal: the machine proceeds to
// finish the handshake with whatever capabilities, if any, were ACKed
// separately.
type CapabilityRejected struct {
	Names []string
}

func (e *CapabilityRejected) Error() string {
	return fmt.Sprintf("handshake: server rejected capabilities: %v", e.Names)
}

// SaslFailed is emitted when the server reports a SASL failure
// numeric (902, 904-907). It is non-fatal: the
// machine proceeds to CAP END and registration without credentials.
type SaslFailed struct {
	Reason string
}

func (e *SaslFailed) Error() string {
	return "handshake: sasl authentication failed: " + e.Reason
}

// NicknameInUse is emitted on 432 (erroneous nickname) or 433
// (nickname in use). It is non-fatal: the machine remains in
// Registering so the caller may retry with NICK and a different name.
type NicknameInUse struct {
	Nick string
}

func (e *NicknameInUse) Error() string {
	return "handshake: nickname unavailable: " + e.Nick
}

// ServerError is emitted on an ERROR command from the server and is
// fatal: the machine moves to Terminated.
type ServerError struct {
	Text string
}

func (e *ServerError) Error() string {
	return "handshake: server error: " + e.Text
}

// ProtocolError is emitted when the server sends something the
// machine cannot make sense of in a way that makes further progress
// impossible (for example, an unparseable SASL challenge), and is
// fatal: the machine moves to Terminated.
type ProtocolError struct {
	Text string
}

func (e *ProtocolError) Error() string {
	return "handshake: protocol error: " + e.Text
}

// encodeB64 is the base64 form used for AUTHENTICATE payloads.
func encodeB64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// decodeB64 decodes an AUTHENTICATE payload, wrapping the decode
// failure as a fatal ProtocolError since the machine cannot meaningfully
// continue a SCRAM exchange with an unparseable challenge.
func decodeB64(s string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", &ProtocolError{Text: "invalid base64 in AUTHENTICATE payload: " + err.Error()}
	}
	return string(b), nil
}
