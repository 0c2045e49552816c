package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/feds01/cs3099/internal/core/domain"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "List your publications",
	Long: `List the latest revision of every publication you own.

Each publication is printed as:
  <title> (<revision>) - <url>`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}
	if publicationService == nil {
		return errors.New("publication service not configured")
	}

	identity, err := sessionService.Resolve(cmd.Context())
	if err != nil {
		return reportError(cmd, err)
	}

	publications, err := publicationService.List(cmd.Context(), identity)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && len(publications) == 0) {
		cmd.Println("No publications found")
		return nil
	}
	if err != nil {
		return reportError(cmd, err)
	}

	cmd.Println("Listing all publications of the latest version:")
	for _, pub := range publications {
		cmd.Printf("%s (%s) - %s\n", pub.Title, pub.Revision, publicationService.URL(pub.ID))
	}
	return nil
}
