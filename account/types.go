package account

import (
	"context"
	"errors"
	"fmt"
)

// Runner defines the interface between the dialog and the account service
type Runner interface {

	// Login signs the user in with their username and password
	Login(ctx context.Context, username, password string) error

	// Register creates an account. The service mails the password to the
	// given address.
	Register(ctx context.Context, username string) error

	// ForgotPassword asks the service to mail reset instructions
	ForgotPassword(ctx context.Context, username string) error
}

// Store remembers the last username and whether the user is logged in
type Store interface {
	Username() string
	SetUsername(username string) error
	LoggedIn() bool
	SetLoggedIn(loggedIn bool) error
}

// Command is a `pio account` subcommand
type Command string

const (
	CommandLogin    Command = "login"
	CommandRegister Command = "register"
	CommandForgot   Command = "forgot"
	CommandLogout   Command = "logout"
	CommandShow     Command = "show"
)

const (
	// DefaultCLI is the PlatformIO executable looked up in PATH
	DefaultCLI = "pio"

	// StateFileName is the default name of the persisted account state
	StateFileName = "account.conf"
)

var (
	// ErrCLINotFound is returned when the PlatformIO executable cannot be found
	ErrCLINotFound = errors.New("platformio CLI not found")

	// ErrInvalidUsername is returned by ValidateUsername
	ErrInvalidUsername = errors.New("invalid username")
)

// CommandError is returned when `pio account` exits unsuccessfully.
// Message is the text the CLI printed for the user.
type CommandError struct {
	Command  Command
	ExitCode int
	Message  string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("pio account %s: %s", e.Command, e.Message)
}
