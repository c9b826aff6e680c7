package tui

import (
	"strings"

	"github.com/njyeung/pioauth/auth"
)

var headerText = map[auth.Mode]string{
	auth.ModeRegister: "Create a Free PIO Account",
	auth.ModeForgot:   "Forgot Password",
}

var buttonText = map[auth.Mode]string{
	auth.ModeLogin:    "Log In",
	auth.ModeRegister: "Register",
	auth.ModeForgot:   "Submit",
}

var busyText = map[auth.Mode]string{
	auth.ModeLogin:    "Logging in...",
	auth.ModeRegister: "Creating account...",
	auth.ModeForgot:   "Sending request...",
}

type feature struct {
	name string
	url  string
}

// Shown on the register form
var accountFeatures = []feature{
	{"PIO Remote™", "http://docs.platformio.org/page/plus/pio-remote.html"},
	{"Unit Testing", "http://docs.platformio.org/page/plus/unit-testing.html"},
	{"Cloud IDEs", "http://docs.platformio.org/page/ide.html#ide-cloud"},
	{"PIO Unified Debugger", "http://docs.platformio.org/page/plus/debugging.html"},
}

func (m Model) viewForm() string {
	s := m.ctrl.State()

	var b strings.Builder

	if s.Mode == auth.ModeLogin {
		b.WriteString(renderLogo())
	} else {
		b.WriteString(titleStyle.Render(headerText[s.Mode]))
	}
	b.WriteString("\n")
	if m.flags.Preview != "" {
		b.WriteString(previewStyle.Render(m.flags.Preview))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.sess.banner.title != "" {
		b.WriteString(successStyle.Render("✓ " + m.sess.banner.title))
		b.WriteString("\n")
		b.WriteString(captionStyle.Render("  " + m.sess.banner.detail))
		b.WriteString("\n\n")
	}

	if s.Mode == auth.ModeRegister {
		b.WriteString(labelStyle.Render("PIO Account"))
		b.WriteString(" opens access to the extra professional features:\n")
		for _, f := range accountFeatures {
			b.WriteString("  • " + f.name + "  " + linkStyle.Render(f.url) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(labelStyle.Render("E-Mail"))
	b.WriteString("\n")
	b.WriteString(m.username.View())
	b.WriteString("\n")
	if s.Username != "" && !s.UsernameValid {
		b.WriteString(captionStyle.Render("not a valid e-mail address"))
		b.WriteString("\n")
	}

	if s.Mode.NeedsPassword() {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Password"))
		b.WriteString("\n")
		b.WriteString(m.password.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.viewButton(s))
	b.WriteString("\n")

	if s.Err != "" {
		b.WriteString("\n")
		b.WriteString(m.viewError(s.Err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch s.Mode {
	case auth.ModeLogin:
		b.WriteString(linkStyle.Render("Forgot password?") + navStyle.Render(" ctrl+f") + "\n")
		b.WriteString(linkStyle.Render("Create new PIO Account") + navStyle.Render(" ctrl+r") + "\n")
	case auth.ModeForgot:
		b.WriteString(linkStyle.Render("Create new PIO Account") + navStyle.Render(" ctrl+r") + "\n")
		b.WriteString(linkStyle.Render("Back to login") + navStyle.Render(" ctrl+b") + "\n")
	default:
		b.WriteString(linkStyle.Render("Back to login") + navStyle.Render(" ctrl+b") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.forMode(s.Mode)))

	return b.String()
}

func (m Model) viewButton(s auth.FormState) string {
	if s.Busy {
		return m.spinner.View() + " " + busyText[s.Mode]
	}
	if s.Username == "" || !s.UsernameValid || (s.Mode.NeedsPassword() && s.Password == "") {
		return disabledButtonStyle.Render(buttonText[s.Mode])
	}
	return buttonStyle.Render(buttonText[s.Mode])
}
