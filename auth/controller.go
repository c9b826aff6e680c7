// Package auth holds the state machine behind the account dialog: which
// form is showing, what the user typed, and what happens on submit.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/njyeung/pioauth/account"
	"github.com/njyeung/pioauth/logging"
)

// Notifier shows transient success banners
type Notifier interface {
	Success(title, detail string)
}

// Hooks are the host's dialog lifecycle callbacks. Either may be nil.
type Hooks struct {
	// OnResolve is called when the dialog is done, after a login or a skip
	OnResolve func()
	// OnReject is called when the host cancels the dialog
	OnReject func()
}

// FormState is the dialog's state. Password only matters in ModeLogin.
type FormState struct {
	Mode          Mode
	Username      string
	UsernameValid bool
	Password      string
	Busy          bool
	Err           string
}

// Outcome is the settled result of one Operation
type Outcome struct {
	Mode     Mode
	Username string
	Err      error

	id      string
	started time.Time
}

// Operation runs one account call. It does not touch controller state and
// is safe to run off the event loop.
type Operation func(ctx context.Context) Outcome

// Controller drives the account dialog. Its methods must be called from a
// single goroutine; only the Operation returned by Submit may run elsewhere.
type Controller struct {
	state    FormState
	runner   account.Runner
	store    account.Store
	notifier Notifier
	hooks    Hooks

	// done is set once OnResolve or OnReject has fired
	done bool
}

// NewController creates a controller showing mode, seeded with the
// remembered username. Validity starts false until the username field
// reports it.
func NewController(runner account.Runner, store account.Store, notifier Notifier, hooks Hooks, mode Mode) *Controller {
	return &Controller{
		state: FormState{
			Mode:     mode,
			Username: store.Username(),
		},
		runner:   runner,
		store:    store,
		notifier: notifier,
		hooks:    hooks,
	}
}

// State returns a copy of the current form state
func (c *Controller) State() FormState {
	return c.state
}

// Done reports whether the dialog has been resolved or rejected
func (c *Controller) Done() bool {
	return c.done
}

// SetUsername records the username field's current value
func (c *Controller) SetUsername(username string) {
	c.state.Username = username
}

// SetUsernameValid records the validity reported by the username field
func (c *Controller) SetUsernameValid(valid bool) {
	c.state.UsernameValid = valid
}

// SetPassword records the password field's current value
func (c *Controller) SetPassword(password string) {
	c.state.Password = password
}

// SwitchTo follows a mode link and clears the error. Links that do not
// exist from the current mode are ignored.
func (c *Controller) SwitchTo(mode Mode) bool {
	if !canSwitch(c.state.Mode, mode) {
		return false
	}
	c.state.Mode = mode
	c.state.Err = ""
	return true
}

// Submit starts the operation for the current mode and marks the form
// busy. It returns nil without touching state when a required field is
// missing or another operation is in flight.
func (c *Controller) Submit() Operation {
	s := c.state
	if s.Busy || s.Username == "" || !s.UsernameValid {
		return nil
	}

	var call func(ctx context.Context) error
	switch s.Mode {
	case ModeLogin:
		if s.Password == "" {
			return nil
		}
		call = func(ctx context.Context) error {
			return c.runner.Login(ctx, s.Username, s.Password)
		}
	case ModeRegister:
		call = func(ctx context.Context) error {
			return c.runner.Register(ctx, s.Username)
		}
	case ModeForgot:
		call = func(ctx context.Context) error {
			return c.runner.ForgotPassword(ctx, s.Username)
		}
	default:
		panic(fmt.Sprintf("auth: invalid form mode %v", s.Mode))
	}

	c.state.Busy = true

	id := uuid.NewString()
	logging.L.Info("account operation started", "op", id, "mode", s.Mode)

	return func(ctx context.Context) Outcome {
		o := Outcome{Mode: s.Mode, Username: s.Username, id: id, started: time.Now()}
		o.Err = call(ctx)
		return o
	}
}

// Settle applies a finished operation. Failures become the displayed
// error and leave the mode alone.
func (c *Controller) Settle(o Outcome) {
	c.state.Busy = false

	log := logging.L.With("op", o.id, "mode", o.Mode, "elapsed", time.Since(o.started))
	if o.Err != nil {
		log.Warn("account operation failed", "error", o.Err)
		c.state.Err = FormatError(o.Err)
		return
	}
	log.Info("account operation succeeded")
	c.state.Err = ""

	switch o.Mode {
	case ModeLogin:
		if err := c.store.SetUsername(o.Username); err != nil {
			log.Warn("could not remember username", "error", err)
		}
		if err := c.store.SetLoggedIn(true); err != nil {
			log.Warn("could not persist login status", "error", err)
		}
		c.resolve()
	case ModeRegister:
		c.notifier.Success("You have been successfully registered.",
			"Your password was sent to the email address you specified.")
		c.state.Mode = ModeLogin
	case ModeForgot:
		c.notifier.Success("Password reset request has been sent successfully.",
			"Please check your email for instructions.")
		c.state.Mode = ModeLogin
	default:
		panic(fmt.Sprintf("auth: invalid form mode %v", o.Mode))
	}
}

// Skip closes the dialog without logging in
func (c *Controller) Skip() {
	c.resolve()
}

// Cancel is the host closing the dialog out from under the user
func (c *Controller) Cancel() {
	if c.done {
		return
	}
	c.done = true
	if c.hooks.OnReject != nil {
		c.hooks.OnReject()
	}
}

func (c *Controller) resolve() {
	if c.done {
		return
	}
	c.done = true
	if c.hooks.OnResolve != nil {
		c.hooks.OnResolve()
	}
}

// FormatError turns an operation failure into display text. CLI failures
// show only the message the CLI printed.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	var cmdErr *account.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Message != "" {
		return cmdErr.Message
	}
	return err.Error()
}
