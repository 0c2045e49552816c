// Package cli implements the pubcli command-line interface.
package cli

import (
	"context"
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/feds01/cs3099/internal/core/domain"
	"github.com/feds01/cs3099/internal/core/ports/driven"
	"github.com/feds01/cs3099/internal/core/ports/driving"
	"github.com/feds01/cs3099/internal/logger"
)

// version is set at build time with -ldflags "-X .../cli.version=...".
var version = "dev"

// skipConfigAnnotation marks commands that run without a loaded config.
const skipConfigAnnotation = "pubcli/skip-config"

var (
	verbose   bool
	configDir string
)

// Services are the core services the commands run against.
type Services struct {
	Session      driving.SessionService
	Publications driving.PublicationService
	Uploads      driving.UploadService
}

// Bootstrap builds the adapters for one invocation, after flags are parsed.
type Bootstrap struct {
	// ConfigStore opens the configuration in dir. An empty dir selects
	// the default location.
	ConfigStore func(dir string) (driven.ConfigStore, error)
	// Services wires the core services against a loaded configuration.
	Services func(dir string, cfg domain.Config) (*Services, error)
}

var (
	bootstrap *Bootstrap

	configStore        driven.ConfigStore
	sessionService     driving.SessionService
	publicationService driving.PublicationService
	uploadService      driving.UploadService
)

var rootCmd = &cobra.Command{
	Use:   "pubcli",
	Short: "Command-line client for the publication service",
	Long: `pubcli logs in to a publication service, lists your publications,
uploads zip archives to them and creates new revisions.

Start by pointing it at a server:
  pubcli config --base-url https://publications.example.org/api/

Then log in:
  pubcli login --username <username>`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug logs to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "",
		"Configuration directory (default $PUBCLI_HOME or ~/.pubcli)")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// SetBootstrap sets how commands build their services.
func SetBootstrap(b *Bootstrap) {
	bootstrap = b
}

// Version returns the build version.
func Version() string {
	return version
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("failed to load .env: %v", err)
	}
	return rootCmd.ExecuteContext(ctx)
}

// setup loads the configuration and wires the services for cmd.
// Without a bootstrap the services already set are used as is.
func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if bootstrap == nil {
		return nil
	}

	store, err := bootstrap.ConfigStore(configDir)
	if err != nil {
		return err
	}
	configStore = store
	if !needsConfig(cmd) {
		return nil
	}

	cfg, err := store.Load()
	if err != nil {
		return err
	}
	logger.Debug("using %s (%s)", cfg.BaseURL, store.Path())

	services, err := bootstrap.Services(configDir, cfg)
	if err != nil {
		return err
	}
	sessionService = services.Session
	publicationService = services.Publications
	uploadService = services.Uploads
	return nil
}

func needsConfig(cmd *cobra.Command) bool {
	if cmd.Name() == "help" {
		return false
	}
	_, skip := cmd.Annotations[skipConfigAnnotation]
	return !skip
}
