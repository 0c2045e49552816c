package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"
)

var whoamiOffline bool

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged in user",
	Long: `Show the logged in user and when the access token expires.

The session is refreshed first, like any authenticated command. With
--offline the stored session is read without contacting the server.`,
	Args: cobra.NoArgs,
	RunE: runWhoami,
}

func init() {
	whoamiCmd.Flags().BoolVar(&whoamiOffline, "offline", false, "Read the stored session without refreshing it")
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	if whoamiOffline {
		session, err := sessionService.Current(cmd.Context())
		if err != nil {
			return reportError(cmd, err)
		}
		cmd.Printf("Logged in as %s (not refreshed)\n", session.Username)
		return nil
	}

	identity, err := sessionService.Resolve(cmd.Context())
	if err != nil {
		return reportError(cmd, err)
	}
	cmd.Printf("Logged in as %s\n", identity.Username)
	if !identity.ExpiresAt.IsZero() {
		cmd.Printf("Access token expires at %s\n", identity.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}
