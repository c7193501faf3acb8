package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/poultrypro/poultryctl/internal/validate"
)

var loginEmail string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the PoultryPro API",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		email := loginEmail
		if email == "" {
			fmt.Fprint(cmd.OutOrStdout(), "Email: ")
			reader := bufio.NewReader(cmd.InOrStdin())
			line, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			email = strings.TrimSpace(line)
		}

		password, err := promptPassword(cmd)
		if err != nil {
			return err
		}

		if err := validate.New().Credentials(email, password); err != nil {
			return err
		}

		if !a.sessions.Login(cmd.Context(), email, password) {
			return errors.New(a.sessions.State().Err)
		}

		state := a.sessions.State()
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", state.User.Name, state.User.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session and clear local credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		a.sessions.Logout(cmd.Context())
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated user",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		state := a.sessions.State()
		if !state.Authenticated {
			return errors.New("not logged in")
		}

		u := state.User
		fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\nRole: %s\n", u.Name, u.Email, u.Role)
		if a.sessions.TokenExpiringSoon(24 * time.Hour) {
			fmt.Fprintln(cmd.OutOrStdout(), "Token expires within 24h; run `poultryctl refresh`.")
		}
		return nil
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Exchange the session token for a fresh one",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		if !a.sessions.State().Authenticated {
			return errors.New("not logged in")
		}
		if !a.sessions.RefreshToken(cmd.Context()) {
			return errors.New("token refresh failed; session cleared, log in again")
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Token refreshed.")
		return nil
	},
}

// promptPassword reads a password without echo when stdin is a terminal and
// falls back to a plain line read otherwise, so piped input still works.
func promptPassword(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), "Password: ")
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email (prompted when omitted)")
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, refreshCmd)
}
