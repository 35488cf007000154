package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
)

var loginUsername string

// passwordReader reads the login password. Replaced in tests.
var passwordReader = readPassword

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the interactions backend",
	Long: `Authenticates against the backend and stores the session token locally.

The password is read from the terminal without echo, or from stdin when it
is not a terminal.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "username (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errNotConfigured("session service")
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	username := strings.TrimSpace(loginUsername)
	if username == "" {
		cmd.Print("Username: ")
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("reading username: %w", err)
		}
		username = strings.TrimSpace(line)
	}

	cmd.Print("Password: ")
	password := passwordReader(reader)
	cmd.Println()

	session, err := sessionService.Login(cmd.Context(), username, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return errors.New("invalid username or password")
		}
		return err
	}

	cmd.Printf("Logged in as %s", session.Username)
	if session.IsAdmin {
		cmd.Print(" (admin)")
	}
	cmd.Println()
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errNotConfigured("session service")
	}
	if err := sessionService.Logout(cmd.Context()); err != nil {
		return err
	}
	cmd.Println("Logged out.")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errNotConfigured("session service")
	}
	session, err := sessionService.Current(cmd.Context())
	if err != nil {
		return err
	}
	if session == nil {
		cmd.Println("Not logged in.")
		return nil
	}

	cmd.Printf("Username: %s\n", session.Username)
	cmd.Printf("Admin:    %t\n", session.IsAdmin)
	if session.ExpiresAt != nil {
		cmd.Printf("Expires:  %s\n", session.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}

// readPassword reads a password without echo when stdin is a terminal.
//
//nolint:errcheck // CLI helper, error ignored for UX
func readPassword(fallback *bufio.Reader) string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	input, _ := fallback.ReadString('\n')
	return strings.TrimSpace(input)
}
