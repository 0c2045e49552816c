package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/feds01/cs3099/internal/core/domain"
	"github.com/feds01/cs3099/internal/logger"
)

// MissingConfigMessage is printed when no configuration file exists.
const MissingConfigMessage = "No config found. Please create one with 'pubcli config --base-url <url>'."

// reportError prints the user-facing message for errors a user can
// correct and returns nil for them. Anything else is returned unchanged.
func reportError(cmd *cobra.Command, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		cmd.Println("Please login first")
	case errors.Is(err, domain.ErrSessionExpired):
		cmd.Println("Refresh token expired")
		cmd.Println("Please login first")
	case errors.Is(err, domain.ErrLoginFailed):
		logger.Debug("login rejected: %v", err)
		cmd.Println("Login failed")
	case errors.Is(err, domain.ErrNotLoggedIn):
		cmd.Println("You are not logged in")
	case errors.Is(err, domain.ErrPublicationNotFound):
		cmd.Printf("Response Error: %s\n", serverMessage(err, "publication not found"))
	case errors.Is(err, domain.ErrRevisionFailed):
		cmd.Printf("Error: %s\n", serverMessage(err, "revision failed"))
		var apiErr *domain.APIError
		if errors.As(err, &apiErr) && apiErr.Details() != "" {
			cmd.Println(apiErr.Details())
		}
	default:
		return err
	}
	return nil
}

// serverMessage returns the message the server attached to err.
func serverMessage(err error, fallback string) string {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// FatalMessage renders an error returned by Execute for stderr.
func FatalMessage(err error) string {
	var transportErr *domain.TransportError
	var decodeErr *domain.DecodeError
	switch {
	case errors.Is(err, domain.ErrConfigNotFound):
		return MissingConfigMessage
	case errors.Is(err, domain.ErrInvalidConfig):
		return "Config file is not valid: " + err.Error()
	case errors.As(err, &transportErr):
		return "Base URL is not reachable, you could use `config` command to reset it: " + err.Error()
	case errors.As(err, &decodeErr):
		return "Unexpected error occurs: " + err.Error()
	default:
		return "Error: " + err.Error()
	}
}
