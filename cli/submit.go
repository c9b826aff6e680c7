package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/njyeung/pioauth/account"
	"github.com/njyeung/pioauth/auth"
)

// ErrMissingInput is returned when a headless command lacks a valid
// username or password
var ErrMissingInput = errors.New("missing input")

var submitShort = map[auth.Mode]string{
	auth.ModeLogin:    "Log in without opening the dialog",
	auth.ModeRegister: "Create a free PIO Account; the password is sent by e-mail",
	auth.ModeForgot:   "Request a password reset e-mail",
}

// printNotifier shows success banners as plain text
type printNotifier struct {
	w io.Writer
}

func (n printNotifier) Success(title, detail string) {
	fmt.Fprintln(n.w, title)
	fmt.Fprintln(n.w, detail)
}

func newSubmitCmd(a *app, mode auth.Mode) *cobra.Command {
	var username, password string
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   mode.String(),
		Short: submitShort[mode],
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if passwordStdin {
				p, err := readPassword(cmd.InOrStdin())
				if err != nil {
					return err
				}
				password = p
			}
			return a.submit(cmd, mode, username, password)
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account e-mail (default: the last username used)")
	if mode.NeedsPassword() {
		cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
		cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
		cmd.MarkFlagsMutuallyExclusive("password", "password-stdin")
	}
	return cmd
}

// submit drives the same controller as the dialog, one submission and done
func (a *app) submit(cmd *cobra.Command, mode auth.Mode, username, password string) error {
	out := cmd.OutOrStdout()
	resolved := false

	ctrl := auth.NewController(a.runner, a.store, printNotifier{w: out}, auth.Hooks{
		OnResolve: func() { resolved = true },
	}, mode)
	if username != "" {
		ctrl.SetUsername(username)
	}
	u := ctrl.State().Username
	ctrl.SetUsernameValid(account.ValidateUsername(u) == nil)
	ctrl.SetPassword(password)

	op := ctrl.Submit()
	if op == nil {
		return fmt.Errorf("%w: a valid e-mail username%s is required", ErrMissingInput,
			lo.Ternary(mode.NeedsPassword(), " and a password", ""))
	}
	ctrl.Settle(op(cmd.Context()))

	if s := ctrl.State(); s.Err != "" {
		return errors.New(s.Err)
	}
	if resolved {
		fmt.Fprintf(out, "Logged in as %s\n", u)
	}
	return nil
}

func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("could not read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
