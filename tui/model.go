package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/njyeung/pioauth/account"
	"github.com/njyeung/pioauth/auth"
)

// Messages
type (
	operationDoneMsg struct{ outcome auth.Outcome }
	clearBannerMsg   struct{ seq int }
)

// Result is how the dialog ended
type Result int

const (
	ResultPending Result = iota
	ResultResolved
	ResultRejected
)

type field int

const (
	fieldUsername field = iota
	fieldPassword
)

// Model is the Bubble Tea model
type Model struct {
	ctx  context.Context
	ctrl *auth.Controller
	sess *session

	username textinput.Model
	password textinput.Model
	focus    field

	width   int
	height  int
	spinner spinner.Model
	keys    keyMap
	help    help.Model

	flags Config
}

// Config holds the host's settings for one dialog
type Config struct {
	// Mode is the form the dialog opens in
	Mode auth.Mode
	// Preview, when set, is shown under the title. Used when the runner is
	// simulated.
	Preview string
}

// NewModel creates a new TUI model. ctx bounds the account operations the
// dialog starts.
func NewModel(ctx context.Context, runner account.Runner, store account.Store, flags Config) Model {
	sess := &session{}
	ctrl := auth.NewController(runner, store, sess, auth.Hooks{
		OnResolve: func() { sess.result = ResultResolved },
		OnReject:  func() { sess.result = ResultRejected },
	}, flags.Mode)

	username := textinput.New()
	username.Prompt = ""
	username.Placeholder = "you@example.com"
	username.CharLimit = 254
	username.SetValue(ctrl.State().Username)

	password := textinput.New()
	password.Prompt = ""
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))

	m := Model{
		ctx:      ctx,
		ctrl:     ctrl,
		sess:     sess,
		username: username,
		password: password,
		spinner:  s,
		keys:     defaultKeyMap(),
		help:     help.New(),
		flags:    flags,
	}
	m.setFocus(fieldUsername)
	m.syncInputs()
	return m
}

// Result reports how the dialog ended
func (m Model) Result() Result {
	return m.sess.result
}

// LoggedIn reports whether the dialog ended with a successful login
func (m Model) LoggedIn() bool {
	return m.sess.loggedIn
}

// State exposes the controller's form state
func (m Model) State() auth.FormState {
	return m.ctrl.State()
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// syncInputs reports the widget values and username validity to the
// controller
func (m Model) syncInputs() {
	u := strings.TrimSpace(m.username.Value())
	m.ctrl.SetUsername(u)
	m.ctrl.SetUsernameValid(account.ValidateUsername(u) == nil)
	m.ctrl.SetPassword(m.password.Value())
}

func (m *Model) setFocus(f field) tea.Cmd {
	if f == fieldPassword && !m.ctrl.State().Mode.NeedsPassword() {
		f = fieldUsername
	}
	m.focus = f
	if f == fieldPassword {
		m.username.Blur()
		return m.password.Focus()
	}
	m.password.Blur()
	return m.username.Focus()
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	op := m.ctrl.Submit()
	if op == nil {
		return m, nil
	}
	ctx := m.ctx
	return m, tea.Batch(
		m.spinner.Tick,
		func() tea.Msg { return operationDoneMsg{op(ctx)} },
	)
}

func (m Model) switchTo(mode auth.Mode) (tea.Model, tea.Cmd) {
	if !m.ctrl.SwitchTo(mode) {
		return m, nil
	}
	cmd := m.setFocus(m.focus)
	return m, cmd
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.ctrl.Cancel()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Skip):
			m.ctrl.Skip()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		case key.Matches(msg, m.keys.Next, m.keys.Prev):
			next := fieldUsername
			if m.focus == fieldUsername {
				next = fieldPassword
			}
			cmd := m.setFocus(next)
			return m, cmd
		case key.Matches(msg, m.keys.Register):
			return m.switchTo(auth.ModeRegister)
		case key.Matches(msg, m.keys.Forgot):
			return m.switchTo(auth.ModeForgot)
		case key.Matches(msg, m.keys.Login):
			return m.switchTo(auth.ModeLogin)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.State().Busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case operationDoneMsg:
		seq := m.sess.bannerSeq
		m.ctrl.Settle(msg.outcome)
		if m.ctrl.Done() {
			m.sess.loggedIn = msg.outcome.Mode == auth.ModeLogin
			return m, tea.Quit
		}

		cmds := []tea.Cmd{}
		// register and forgot land back on login, where the password is next
		if m.ctrl.State().Mode != msg.outcome.Mode {
			cmds = append(cmds, m.setFocus(fieldPassword))
		}
		if m.sess.bannerSeq != seq {
			next := m.sess.bannerSeq
			cmds = append(cmds, tea.Tick(bannerTimeout, func(time.Time) tea.Msg {
				return clearBannerMsg{seq: next}
			}))
		}
		return m, tea.Batch(cmds...)

	case clearBannerMsg:
		if msg.seq == m.sess.bannerSeq {
			m.sess.banner = banner{}
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == fieldPassword {
		m.password, cmd = m.password.Update(msg)
	} else {
		m.username, cmd = m.username.Update(msg)
	}
	m.syncInputs()
	return m, cmd
}

// View renders the UI
func (m Model) View() string {
	if m.ctrl.Done() {
		return ""
	}

	block := m.viewForm()
	if m.width == 0 {
		return strings.Repeat(" ", 4) + strings.ReplaceAll(block, "\n", "\n    ")
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, block)
}
