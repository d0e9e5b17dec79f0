// Package handshake implements the sans-I/O client connection
// handshake: capability negotiation, optional SASL authentication,
// and nickname/user registration. The Machine type consumes parsed
// messages and produces a bounded list of actions (send this message,
// the handshake is complete, the handshake failed); it performs no
// I/O, holds no timers, and is driven entirely by the caller feeding
// it messages read from a transport.
package handshake

import (
	"strings"

	"github.com/ircwire/ircwire"
	"github.com/ircwire/ircwire/sasl"
)

// Phase is one state of the handshake automaton.
type Phase int

const (
	Disconnected Phase = iota
	CapabilityNegotiation
	Authenticating
	Registering
	Connected
	Terminated
)

func (p Phase) String() string {
	switch p {
	case Disconnected:
		return "Disconnected"
	case CapabilityNegotiation:
		return "CapabilityNegotiation"
	case Authenticating:
		return "Authenticating"
	case Registering:
		return "Registering"
	case Connected:
		return "Connected"
	case Terminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// SASLConfig carries the credentials to authenticate with. SASL is
// disabled by leaving Config.SASL nil; a non-nil SASLConfig enables it
// even when its fields are empty.
type SASLConfig struct {
	// Account is the authentication identity (authcid). For
	// EXTERNAL this may be empty if the certificate alone identifies
	// the account.
	Account string
	// Password authenticates Account under PLAIN or SCRAM-SHA-256.
	// Ignored for EXTERNAL.
	Password string
	// Mechanism pins the SASL mechanism to use. When empty, the machine
	// uses PLAIN if Password is set and EXTERNAL otherwise; the server's
	// advertised mechanism list is not consulted.
	Mechanism string
}

// Config configures one handshake run.
type Config struct {
	Nickname string
	Username string
	RealName string

	// ServerPassword, if set, is sent as PASS before anything else.
	ServerPassword string

	// RequestedCaps lists the capability names the client wants
	// enabled, if the server advertises them.
	RequestedCaps []string

	// SASL enables SASL authentication when non-nil.
	SASL *SASLConfig
}

// ActionKind discriminates the three shapes an Action can take.
type ActionKind int

const (
	// ActionSend asks the caller to write Action.Message to the
	// connection.
	ActionSend ActionKind = iota
	// ActionComplete signals the handshake reached Connected.
	ActionComplete
	// ActionError signals a handshake-level error. Non-fatal errors
	// (NicknameInUse) leave the machine running; fatal ones
	// (ServerError, ProtocolError) move it to Terminated.
	ActionError
)

// Action is one output of feeding a message to the Machine.
type Action struct {
	Kind    ActionKind
	Message *irc.Message
	Err     error
}

func send(m *irc.Message) Action { return Action{Kind: ActionSend, Message: m} }
func complete() Action           { return Action{Kind: ActionComplete} }
func fail(err error) Action      { return Action{Kind: ActionError, Err: err} }

// Machine is the sans-I/O handshake automaton. The zero value is not
// usable; construct one with New.
type Machine struct {
	cfg   Config
	phase Phase

	advertisedCaps []string // accumulated across multi-line CAP LS
	enabledCaps    []string
	requestSent    bool

	saslMechanism string
	scram         *sasl.ScramClient

	registrationSent bool
}

// New constructs a Machine in the Disconnected phase.
func New(cfg Config) *Machine {
	return &Machine{cfg: cfg, phase: Disconnected}
}

// Phase reports the machine's current phase.
func (m *Machine) Phase() Phase { return m.phase }

// EnabledCaps reports the capabilities the server ACKed.
func (m *Machine) EnabledCaps() []string { return m.enabledCaps }

// Start begins the handshake: optionally PASS, then CAP LS 302, then
// waits for the server's response. Start must be called exactly once,
// before any call to Feed.
func (m *Machine) Start() []Action {
	var actions []Action
	if m.cfg.ServerPassword != "" {
		actions = append(actions, send(irc.Pass(m.cfg.ServerPassword)))
	}
	actions = append(actions, send(irc.CapLS("302")))
	m.phase = CapabilityNegotiation
	return actions
}

// Feed advances the machine with one parsed incoming message,
// returning the actions it produces. Feed is a no-op (returns nil)
// once the machine has reached Connected or Terminated.
func (m *Machine) Feed(msg *irc.Message) []Action {
	if m.phase == Connected || m.phase == Terminated {
		return nil
	}

	if msg.Command == irc.CmdError {
		m.phase = Terminated
		return []Action{fail(&ServerError{Text: msg.Params.Get(1)})}
	}

	switch m.phase {
	case CapabilityNegotiation:
		return m.feedCapabilityNegotiation(msg)
	case Authenticating:
		return m.feedAuthenticating(msg)
	case Registering:
		return m.feedRegistering(msg)
	default:
		return nil
	}
}

func (m *Machine) feedCapabilityNegotiation(msg *irc.Message) []Action {
	if msg.Command != irc.CmdCap {
		return nil
	}
	sub := strings.ToUpper(msg.Params.Get(2))
	switch sub {
	case "LS":
		more := msg.Params.Get(3) == "*"
		list := msg.Params.Get(3)
		if more {
			list = msg.Params.Get(4)
		}
		m.advertisedCaps = append(m.advertisedCaps, strings.Fields(list)...)
		if more {
			return nil
		}
		return m.finishCapListing()
	case "ACK":
		ack := strings.Fields(msg.Params.Get(3))
		m.enabledCaps = append(m.enabledCaps, ack...)
		return m.afterCapAck()
	case "NAK":
		rejected := strings.Fields(msg.Params.Get(3))
		actions := []Action{fail(&CapabilityRejected{Names: rejected})}
		actions = append(actions, m.afterCapAck()...)
		return actions
	default:
		return nil
	}
}

// finishCapListing runs once the full (possibly multi-line) CAP LS
// listing has been received: it computes the intersection with the
// requested capabilities and either requests them or moves straight
// to finishing.
func (m *Machine) finishCapListing() []Action {
	wanted := m.cfg.RequestedCaps
	if m.cfg.SASL != nil {
		wanted = appendUnique(wanted, "sasl")
	}
	enable := intersect(wanted, m.advertisedCaps)
	if len(enable) == 0 {
		return m.finish()
	}
	m.requestSent = true
	return []Action{send(irc.CapReq(strings.Join(enable, " ")))}
}

// afterCapAck runs once a CAP ACK or NAK has been processed: if SASL
// was requested and enabled, begin AUTHENTICATE; otherwise finish.
func (m *Machine) afterCapAck() []Action {
	if m.cfg.SASL != nil && contains(m.enabledCaps, "sasl") {
		return m.startAuthenticate()
	}
	return m.finish()
}

func (m *Machine) startAuthenticate() []Action {
	mech := m.cfg.SASL.Mechanism
	if mech == "" {
		mech = "PLAIN"
		if m.cfg.SASL.Password == "" {
			mech = "EXTERNAL"
		}
	}
	m.saslMechanism = strings.ToUpper(mech)
	m.phase = Authenticating
	return []Action{send(irc.NewMessage(irc.CmdAuthenticate, m.saslMechanism))}
}

func (m *Machine) feedAuthenticating(msg *irc.Message) []Action {
	if msg.Command == irc.CmdAuthenticate {
		return m.feedAuthenticateChallenge(msg.Params.Get(1))
	}

	typed := irc.Classify(msg.Command, msg.Params)
	if typed.Response == nil {
		return nil
	}
	switch *typed.Response {
	case irc.RplLoggedIn:
		return nil
	case irc.RplSaslSuccess:
		return m.finish()
	case irc.ErrNickLocked, irc.ErrSaslFail, irc.ErrSaslTooLong, irc.ErrSaslAbort, irc.ErrSaslAlready:
		// Non-fatal: record and still proceed.
		actions := []Action{fail(&SaslFailed{Reason: typed.Response.String()})}
		actions = append(actions, m.finish()...)
		return actions
	default:
		return nil
	}
}

func (m *Machine) feedAuthenticateChallenge(payload string) []Action {
	switch m.saslMechanism {
	case "PLAIN":
		if payload != "+" {
			return nil
		}
		encoded := sasl.EncodePlain("", m.cfg.SASL.Account, m.cfg.SASL.Password)
		return sendChunked(encoded)
	case "EXTERNAL":
		if payload != "+" {
			return nil
		}
		encoded := sasl.EncodeExternal(m.cfg.SASL.Account)
		return sendChunked(encoded)
	case "SCRAM-SHA-256":
		return m.feedScramChallenge(payload)
	default:
		return nil
	}
}

func (m *Machine) feedScramChallenge(payload string) []Action {
	if m.scram == nil {
		m.scram = sasl.NewScramClient(m.cfg.SASL.Account, m.cfg.SASL.Password, "")
		first := m.scram.ClientFirst()
		return sendChunked(encodeB64(first))
	}
	serverFirst, err := decodeB64(payload)
	if err != nil {
		m.phase = Terminated
		return []Action{fail(err)}
	}
	final, err := m.scram.ServerFirst(serverFirst)
	if err != nil {
		return []Action{fail(err)}
	}
	return sendChunked(encodeB64(final))
}

func (m *Machine) feedRegistering(msg *irc.Message) []Action {
	typed := irc.Classify(msg.Command, msg.Params)
	if typed.Response == nil {
		return nil
	}
	switch *typed.Response {
	case irc.RplWelcome:
		m.phase = Connected
		return []Action{complete()}
	case irc.ErrErroneousNickname, irc.ErrNicknameInUse:
		return []Action{fail(&NicknameInUse{Nick: msg.Params.Get(2)})}
	default:
		return nil
	}
}

// finish emits CAP END followed by (once) NICK and USER, then moves
// to Registering.
func (m *Machine) finish() []Action {
	actions := []Action{send(irc.CapEnd())}
	if !m.registrationSent {
		m.registrationSent = true
		actions = append(actions,
			send(irc.Nick(m.cfg.Nickname)),
			send(irc.User(m.cfg.Username, m.cfg.RealName)),
		)
	}
	m.phase = Registering
	return actions
}

func sendChunked(payload string) []Action {
	chunks := sasl.Chunk(payload)
	actions := make([]Action, len(chunks))
	for i, c := range chunks {
		actions[i] = send(irc.NewMessage(irc.CmdAuthenticate, c))
	}
	return actions
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}

func appendUnique(list []string, add string) []string {
	if contains(list, add) {
		return list
	}
	return append(append([]string{}, list...), add)
}

func intersect(requested, advertised []string) []string {
	adv := make(map[string]bool, len(advertised))
	for _, a := range advertised {
		name := a
		if i := strings.IndexByte(name, '='); i >= 0 {
			name = name[:i]
		}
		adv[strings.ToLower(name)] = true
	}
	var out []string
	for _, want := range requested {
		if adv[strings.ToLower(want)] {
			out = append(out, want)
		}
	}
	return out
}
