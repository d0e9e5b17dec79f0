package irc

import "strings"

// Sign distinguishes whether a mode flag is being added, removed, or
// was given without an explicit sign prefix (only meaningful for
// channel mode *query* replies such as RPL_CHANNELMODEIS, which list
// currently-set modes with no +/-).
type Sign int

const (
	NoPrefix Sign = iota
	Plus
	Minus
)

func (s Sign) String() string {
	switch s {
	case Plus:
		return "+"
	case Minus:
		return "-"
	default:
		return ""
	}
}

// Mode is a single parsed mode flag, generic over the flag's
// representation (typically rune). Arg is the flag's argument when
// HasArg is true; arg-taking flags must be paired with exactly one
// argument token, and excess arguments are a parse error.
type Mode[T comparable] struct {
	Sign   Sign
	Flag   T
	Arg    string
	HasArg bool
}

// ArgPredicate reports whether flag takes an argument (and, for
// channel modes, in which direction — CHANMODES class A/B always take
// one, class C only on set, class D never does).
type ArgPredicate func(flag rune, sign Sign) bool

// ParseModes parses a MODE flag string (e.g. "+ov-h") together with
// its trailing argument tokens into a slice of Mode[rune]. takesArg
// decides, for each flag/sign pair, whether the next argument token
// belongs to it.
func ParseModes(flags string, args []string, takesArg ArgPredicate) ([]Mode[rune], error) {
	if flags == "" {
		return nil, ErrInvalidModeString
	}
	var modes []Mode[rune]
	sign := Plus
	argIdx := 0
	sawSign := false
	for _, r := range flags {
		switch r {
		case '+':
			sign = Plus
			sawSign = true
			continue
		case '-':
			sign = Minus
			sawSign = true
			continue
		}
		effectiveSign := sign
		if !sawSign {
			effectiveSign = NoPrefix
		}
		m := Mode[rune]{Sign: effectiveSign, Flag: r}
		if takesArg != nil && takesArg(r, effectiveSign) {
			if argIdx >= len(args) {
				return nil, ErrInvalidModeArg
			}
			m.Arg = args[argIdx]
			m.HasArg = true
			argIdx++
		}
		modes = append(modes, m)
	}
	if argIdx < len(args) {
		return nil, ErrInvalidModeArg
	}
	return modes, nil
}

// EncodeModes renders modes back to wire form, collapsing consecutive
// runs of the same sign into a single '+'/'-' marker (the "mode
// collapse" design note: "+o, +v, -h" renders as "+ov-h"). Arguments
// for arg-taking flags are appended in order after the flag block.
func EncodeModes(modes []Mode[rune]) string {
	var flags strings.Builder
	var argList []string
	var lastSign Sign = -1
	for _, m := range modes {
		if m.Sign != lastSign && m.Sign != NoPrefix {
			flags.WriteString(m.Sign.String())
			lastSign = m.Sign
		}
		flags.WriteRune(m.Flag)
		if m.HasArg {
			argList = append(argList, m.Arg)
		}
	}
	if len(argList) == 0 {
		return flags.String()
	}
	return flags.String() + " " + strings.Join(argList, " ")
}
