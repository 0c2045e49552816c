package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/feds01/cs3099/internal/core/domain"
)

var configBaseURL string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or set the service base URL",
	Long: `Show the configured base URL, or set it with --base-url.

The configuration lives in config.json in the configuration directory.
PUBCLI_BASE_URL overrides it for a single run.

Examples:
  pubcli config
  pubcli config --base-url https://publications.example.org/api/`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	RunE:        runConfig,
}

func init() {
	configCmd.Flags().StringVar(&configBaseURL, "base-url", "", "Base URL of the publication service")
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	if configBaseURL == "" {
		cfg, err := configStore.Load()
		if errors.Is(err, domain.ErrConfigNotFound) {
			cmd.Println(MissingConfigMessage)
			return nil
		}
		if err != nil {
			return err
		}
		cmd.Printf("The current base url is %s\n", cfg.BaseURL)
		cmd.Printf("Config file: %s\n", configStore.Path())
		return nil
	}

	if err := configStore.Save(domain.Config{BaseURL: configBaseURL}); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	cmd.Printf("The base url is set to %s\n", configBaseURL)
	return nil
}
