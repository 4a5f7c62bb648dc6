package users

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crucial707/inventory/cmd/cli/client"
	"github.com/crucial707/inventory/cmd/cli/config"
)

type session struct {
	User struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	} `json:"user"`
	Token string `json:"token"`
}

// ==========================
// CLI Command Init
// ==========================
func InitUsers(rootCmd *cobra.Command) {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Sign up, sign in and sign out",
		Long: `Register or sign in a user against the inventory API.
The token is stored locally for future commands.`,
	}

	usersCmd.AddCommand(signupCmd(), signinCmd(), logoutCmd())
	rootCmd.AddCommand(usersCmd)
}

// ==========================
// Signup
// ==========================
func signupCmd() *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new user",
		Long:  "Register a new user and save the returned token. Missing values are prompted for.",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()
			username = prompt(in, out, "Username", username)
			email = prompt(in, out, "Email", email)
			password = prompt(in, out, "Password", password)

			var s session
			msg, err := client.New().Do(cmd.Context(), "POST", "/api/users/signup", map[string]string{
				"username": username,
				"email":    email,
				"password": password,
			}, &s)
			if err != nil {
				return err
			}
			if err := config.SaveToken(s.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Fprintf(out, "%s. Signed in as %s.\n", msg, s.User.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	return cmd
}

// ==========================
// Signin
// ==========================
func signinCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in an existing user",
		Long:  "Sign in and save the token locally for future CLI commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()
			email = prompt(in, out, "Email", email)
			password = prompt(in, out, "Password", password)

			var s session
			msg, err := client.New().Do(cmd.Context(), "POST", "/api/users/signin", map[string]string{
				"email":    email,
				"password": password,
			}, &s)
			if err != nil {
				return err
			}
			if s.Token == "" {
				return fmt.Errorf("sign-in succeeded but no token returned")
			}
			if err := config.SaveToken(s.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Fprintf(out, "%s. Token saved.\n", msg)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	return cmd
}

// ==========================
// Logout
// ==========================

// logoutCmd only forgets the local token; tokens cannot be revoked server-side.
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out the current user",
		Long:  "Remove the locally saved token.",
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := config.RemoveToken()
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintln(cmd.OutOrStdout(), "No user logged in.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out successfully.")
			return nil
		},
	}
}

// prompt returns current when set, otherwise reads a line from in.
func prompt(in *bufio.Reader, out io.Writer, label, current string) string {
	if current != "" {
		return current
	}
	fmt.Fprintf(out, "%s: ", label)
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}
