package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// ErrUnknownMode is returned by ParseMode for names that are not a form mode
var ErrUnknownMode = errors.New("unknown form mode")

// Mode is the form variant the dialog is showing
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
	ModeForgot
)

var modeNames = map[Mode]string{
	ModeLogin:    "login",
	ModeRegister: "register",
	ModeForgot:   "forgot",
}

// Modes lists every mode in display order
var Modes = []Mode{ModeLogin, ModeRegister, ModeForgot}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps a mode name to a Mode. The empty string is ModeLogin.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ModeLogin, nil
	}
	if m, ok := lo.Invert(modeNames)[s]; ok {
		return m, nil
	}
	return ModeLogin, fmt.Errorf("%w %q (want one of %s)", ErrUnknownMode, s,
		strings.Join(lo.Map(Modes, func(m Mode, _ int) string { return m.String() }), ", "))
}

// NeedsPassword reports whether the mode submits a password
func (m Mode) NeedsPassword() bool {
	return m == ModeLogin
}

// canSwitch reports whether a link leads from one mode to the other.
// Register is reachable from Login and Forgot; Forgot only from Login.
func canSwitch(from, to Mode) bool {
	switch from {
	case ModeLogin:
		return to == ModeRegister || to == ModeForgot
	case ModeForgot:
		return to == ModeLogin || to == ModeRegister
	case ModeRegister:
		return to == ModeLogin
	default:
		return false
	}
}
