package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd(a *app) *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the remembered username and login status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			username := a.store.Username()
			if username == "" {
				username = "(none)"
			}
			fmt.Fprintf(out, "Username:  %s\n", username)
			fmt.Fprintf(out, "Logged in: %t\n", a.store.LoggedIn())
			fmt.Fprintf(out, "State:     %s\n", a.store.Path())

			if !remote {
				return nil
			}
			summary, err := a.runner.Show(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, summary)
			return nil
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "also ask the PlatformIO CLI for the account summary")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out of the PlatformIO account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.runner.Logout(cmd.Context()); err != nil {
				return err
			}
			if err := a.store.SetLoggedIn(false); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}
