package account

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFakePIO installs a shell script standing in for the pio executable.
// It records its arguments one per line and fails when FAKE_PIO_FAIL or
// FAKE_PIO_SILENT is set.
func writeFakePIO(t *testing.T) (bin string, argsFile string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake pio script needs a POSIX shell")
	}

	dir := t.TempDir()
	bin = filepath.Join(dir, "pio")
	argsFile = filepath.Join(dir, "args")

	script := fmt.Sprintf(`#!/bin/sh
printf '%%s\n' "$@" > %q
if [ -n "$FAKE_PIO_SILENT" ]; then
  exit 3
fi
if [ -n "$FAKE_PIO_FAIL" ]; then
  echo "Error: $FAKE_PIO_FAIL" >&2
  exit 2
fi
echo "Logged in as: ci@example.com"
`, argsFile)
	require.NoError(t, os.WriteFile(bin, []byte(script), 0755))
	return bin, argsFile
}

func readArgs(t *testing.T, argsFile string) []string {
	t.Helper()
	data, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestCLIRunner_Login(t *testing.T) {
	bin, argsFile := writeFakePIO(t)
	r := NewCLIRunner(bin)

	err := r.Login(context.Background(), "dev@example.com", "s3cret")
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"account", "login", "--username", "dev@example.com", "--password", "s3cret"},
		readArgs(t, argsFile))
}

func TestCLIRunner_RegisterAndForgot(t *testing.T) {
	bin, argsFile := writeFakePIO(t)
	r := NewCLIRunner(bin)

	require.NoError(t, r.Register(context.Background(), "new@example.com"))
	assert.Equal(t, []string{"account", "register", "--username", "new@example.com"}, readArgs(t, argsFile))

	require.NoError(t, r.ForgotPassword(context.Background(), "new@example.com"))
	assert.Equal(t, []string{"account", "forgot", "--username", "new@example.com"}, readArgs(t, argsFile))

	require.NoError(t, r.Logout(context.Background()))
	assert.Equal(t, []string{"account", "logout"}, readArgs(t, argsFile))
}

func TestCLIRunner_Show(t *testing.T) {
	bin, _ := writeFakePIO(t)
	r := NewCLIRunner(bin)

	out, err := r.Show(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Logged in as: ci@example.com", out)
}

func TestCLIRunner_FailureCarriesCLIMessage(t *testing.T) {
	bin, _ := writeFakePIO(t)
	t.Setenv("FAKE_PIO_FAIL", "Invalid user credentials")
	r := NewCLIRunner(bin)

	err := r.Login(context.Background(), "dev@example.com", "wrong")
	require.Error(t, err)

	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, CommandLogin, cmdErr.Command)
	assert.Equal(t, 2, cmdErr.ExitCode)
	assert.Equal(t, "Invalid user credentials", cmdErr.Message)
	assert.Equal(t, "pio account login: Invalid user credentials", err.Error())
}

func TestCLIRunner_SilentFailureFallsBackToExitStatus(t *testing.T) {
	bin, _ := writeFakePIO(t)
	t.Setenv("FAKE_PIO_SILENT", "1")
	r := NewCLIRunner(bin)

	err := r.Register(context.Background(), "new@example.com")

	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, 3, cmdErr.ExitCode)
	assert.Equal(t, "exit status 3", cmdErr.Message)
}

func TestCLIRunner_MissingExecutable(t *testing.T) {
	r := NewCLIRunner(filepath.Join(t.TempDir(), "no-such-pio"))

	err := r.ForgotPassword(context.Background(), "dev@example.com")
	assert.ErrorIs(t, err, ErrCLINotFound)
}

func TestNewCLIRunner_DefaultsToPio(t *testing.T) {
	assert.Equal(t, DefaultCLI, NewCLIRunner("").path)
}

func TestLastLine(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want string
	}{
		{"empty", "", ""},
		{"blank lines only", "\n  \n\n", ""},
		{"single line", "Error: Invalid user credentials\n", "Invalid user credentials"},
		{"takes last", "Warning: outdated\n\nError: Account not found\n", "Account not found"},
		{"no prefix", "something went wrong", "something went wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lastLine(tt.out))
		})
	}
}
