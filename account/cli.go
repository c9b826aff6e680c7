package account

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/samber/lo"

	"github.com/njyeung/pioauth/logging"
)

// CLIRunner implements Runner by shelling out to `pio account`
type CLIRunner struct {
	path string
}

// NewCLIRunner creates a runner for the given PlatformIO executable.
// An empty path means DefaultCLI.
func NewCLIRunner(path string) *CLIRunner {
	if path == "" {
		path = DefaultCLI
	}
	return &CLIRunner{path: path}
}

func (r *CLIRunner) Login(ctx context.Context, username, password string) error {
	_, err := r.run(ctx, CommandLogin, "--username", username, "--password", password)
	return err
}

func (r *CLIRunner) Register(ctx context.Context, username string) error {
	_, err := r.run(ctx, CommandRegister, "--username", username)
	return err
}

func (r *CLIRunner) ForgotPassword(ctx context.Context, username string) error {
	_, err := r.run(ctx, CommandForgot, "--username", username)
	return err
}

// Logout ends the CLI's session
func (r *CLIRunner) Logout(ctx context.Context) error {
	_, err := r.run(ctx, CommandLogout)
	return err
}

// Show returns the CLI's account summary, or a CommandError when nobody is
// logged in
func (r *CLIRunner) Show(ctx context.Context) (string, error) {
	return r.run(ctx, CommandShow)
}

func (r *CLIRunner) run(ctx context.Context, command Command, extraArgs ...string) (string, error) {
	bin, err := exec.LookPath(r.path)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrCLINotFound, r.path)
	}

	args := append([]string{"account", string(command)}, extraArgs...)
	cmd := exec.CommandContext(ctx, bin, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	// never log extraArgs, login carries the password
	logging.L.Debug("running account command", "cli", bin, "command", command)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return "", fmt.Errorf("failed to run pio account %s: %w", command, err)
		}
		msg := lastLine(stderr.String())
		if msg == "" {
			msg = lastLine(stdout.String())
		}
		if msg == "" {
			msg = exitErr.Error()
		}
		logging.L.Debug("account command failed", "command", command, "exit_code", exitErr.ExitCode())
		return "", &CommandError{
			Command:  command,
			ExitCode: exitErr.ExitCode(),
			Message:  msg,
		}
	}

	return strings.TrimSpace(stdout.String()), nil
}

// lastLine returns the last non-blank line of CLI output without the
// "Error:" prefix click puts in front of failures
func lastLine(out string) string {
	lines := lo.Compact(lo.Map(strings.Split(out, "\n"), func(l string, _ int) string {
		return strings.TrimSpace(l)
	}))
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(lines[len(lines)-1], "Error:"))
}
