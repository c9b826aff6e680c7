package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njyeung/pioauth/account"
	"github.com/njyeung/pioauth/auth"
	"github.com/njyeung/pioauth/config"
)

type env struct {
	dir      string
	pio      string
	argsFile string
}

// newEnv creates a config dir and a fake pio that records its arguments
// and fails with $FAKE_PIO_FAIL when set
func newEnv(t *testing.T) env {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake pio script needs a POSIX shell")
	}
	for _, k := range []string{config.EnvPIOPath, config.EnvStateFile, config.EnvMode, config.EnvLogLevel} {
		t.Setenv(k, "")
	}

	dir := t.TempDir()
	e := env{
		dir:      dir,
		pio:      filepath.Join(dir, "pio"),
		argsFile: filepath.Join(dir, "args"),
	}
	script := fmt.Sprintf(`#!/bin/sh
printf '%%s\n' "$@" > %q
if [ -n "$FAKE_PIO_FAIL" ]; then
  echo "Error: $FAKE_PIO_FAIL" >&2
  exit 1
fi
echo "Username: dev@example.com"
`, e.argsFile)
	require.NoError(t, os.WriteFile(e.pio, []byte(script), 0755))
	return e
}

func (e env) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(afero.NewOsFs())

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--config-dir", e.dir, "--pio", e.pio))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (e env) store(t *testing.T) *account.FileStore {
	t.Helper()
	s, err := account.NewFileStore(afero.NewOsFs(), filepath.Join(e.dir, account.StateFileName))
	require.NoError(t, err)
	return s
}

func (e env) calledWith(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(e.argsFile)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestLogin_Headless(t *testing.T) {
	e := newEnv(t)

	out, err := e.run(t, "", "login", "-u", "dev@example.com", "-p", "s3cret")
	require.NoError(t, err)

	assert.Contains(t, out, "Logged in as dev@example.com")
	assert.Equal(t, []string{"account", "login", "--username", "dev@example.com", "--password", "s3cret"}, e.calledWith(t))

	s := e.store(t)
	assert.True(t, s.LoggedIn())
	assert.Equal(t, "dev@example.com", s.Username())
}

func TestLogin_PasswordFromStdin(t *testing.T) {
	e := newEnv(t)

	_, err := e.run(t, "from-stdin\n", "login", "-u", "dev@example.com", "--password-stdin")
	require.NoError(t, err)
	assert.Equal(t, "from-stdin", e.calledWith(t)[5])
}

func TestLogin_UsesRememberedUsername(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.store(t).SetUsername("old@example.com"))

	_, err := e.run(t, "", "login", "-p", "pw")
	require.NoError(t, err)
	assert.Equal(t, "old@example.com", e.calledWith(t)[3])
}

func TestLogin_FailureReturnsCLIMessage(t *testing.T) {
	e := newEnv(t)
	t.Setenv("FAKE_PIO_FAIL", "Invalid user credentials")

	_, err := e.run(t, "", "login", "-u", "dev@example.com", "-p", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid user credentials", err.Error())
	assert.False(t, e.store(t).LoggedIn())
}

func TestLogin_MissingPasswordRunsNothing(t *testing.T) {
	e := newEnv(t)

	_, err := e.run(t, "", "login", "-u", "dev@example.com")
	assert.ErrorIs(t, err, ErrMissingInput)
	assert.NoFileExists(t, e.argsFile)
}

func TestRegister_Headless(t *testing.T) {
	e := newEnv(t)

	out, err := e.run(t, "", "register", "-u", "new@example.com")
	require.NoError(t, err)

	assert.Contains(t, out, "You have been successfully registered.")
	assert.Contains(t, out, "Your password was sent to the email address you specified.")
	assert.NotContains(t, out, "Logged in as")
	assert.Equal(t, []string{"account", "register", "--username", "new@example.com"}, e.calledWith(t))
}

func TestForgot_InvalidUsername(t *testing.T) {
	e := newEnv(t)

	_, err := e.run(t, "", "forgot", "-u", "not-an-email")
	assert.ErrorIs(t, err, ErrMissingInput)
}

func TestForgot_Headless(t *testing.T) {
	e := newEnv(t)

	out, err := e.run(t, "", "forgot", "-u", "dev@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Password reset request has been sent successfully.")
	assert.Equal(t, "forgot", e.calledWith(t)[1])
}

func TestStatusAndLogout(t *testing.T) {
	e := newEnv(t)
	s := e.store(t)
	require.NoError(t, s.SetUsername("dev@example.com"))
	require.NoError(t, s.SetLoggedIn(true))

	out, err := e.run(t, "", "status", "--remote")
	require.NoError(t, err)
	assert.Contains(t, out, "Username:  dev@example.com")
	assert.Contains(t, out, "Logged in: true")
	assert.Contains(t, out, "Username: dev@example.com")
	assert.Equal(t, []string{"account", "show"}, e.calledWith(t))

	out, err = e.run(t, "", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out")
	assert.False(t, e.store(t).LoggedIn())
	assert.Equal(t, "dev@example.com", e.store(t).Username())
}

func TestRoot_RejectsUnknownMode(t *testing.T) {
	e := newEnv(t)

	_, err := e.run(t, "", "--mode", "signup")
	assert.ErrorIs(t, err, auth.ErrUnknownMode)
}

func TestVersion(t *testing.T) {
	cmd := newRootCmd(afero.NewMemMapFs())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "pioauth v"+version+"\n", out.String())
}
