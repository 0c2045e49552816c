package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/feds01/cs3099/internal/logger"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the publication service",
	Long: `Log in with your username and password.

The issued tokens are stored in auth.json in the configuration directory
and refreshed on every authenticated command. Missing flags are prompted
for; the password is read without echo.

Examples:
  pubcli login
  pubcli login --username alice`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	prompter := newTerminalPrompter(cmd)
	username := loginUsername
	if username == "" {
		var err error
		if username, err = prompter.required("Username"); err != nil {
			return err
		}
	}
	password := loginPassword
	if password == "" {
		var err error
		if password, err = prompter.password("Password"); err != nil {
			return err
		}
	}

	session, err := sessionService.Login(cmd.Context(), username, password)
	if err != nil {
		return reportError(cmd, err)
	}

	logger.Debug("logged in as %s, token %s", session.Username, logger.Redact(session.AccessToken))
	cmd.Println("Login successfully")
	return nil
}
