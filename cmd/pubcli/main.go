package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/feds01/cs3099/internal/adapters/driven/api"
	"github.com/feds01/cs3099/internal/adapters/driven/config/file"
	"github.com/feds01/cs3099/internal/adapters/driven/token"
	"github.com/feds01/cs3099/internal/adapters/driving/cli"
	"github.com/feds01/cs3099/internal/core/domain"
	"github.com/feds01/cs3099/internal/core/ports/driven"
	"github.com/feds01/cs3099/internal/core/services"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cli.SetBootstrap(&cli.Bootstrap{
		ConfigStore: openConfigStore,
		Services:    wireServices,
	})

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, cli.FatalMessage(err))
		return 1
	}
	return 0
}

func openConfigStore(dir string) (driven.ConfigStore, error) {
	store, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// wireServices connects the core services to the HTTP client and the
// credential file for one invocation.
func wireServices(dir string, cfg domain.Config) (*cli.Services, error) {
	client, err := api.NewClient(cfg.BaseURL, api.WithUserAgent(api.DefaultUserAgent+"/"+cli.Version()))
	if err != nil {
		return nil, err
	}
	sessions, err := file.NewSessionStore(dir)
	if err != nil {
		return nil, err
	}

	publications := services.NewPublicationService(client)
	return &cli.Services{
		Session:      services.NewSessionService(client, sessions, token.NewInspector()),
		Publications: publications,
		Uploads:      services.NewUploadService(client, publications),
	}, nil
}
