package cli

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/feds01/cs3099/internal/adapters/driven/api"
	"github.com/feds01/cs3099/internal/adapters/driven/config/file"
	"github.com/feds01/cs3099/internal/adapters/driven/token"
	"github.com/feds01/cs3099/internal/apitest"
	"github.com/feds01/cs3099/internal/core/domain"
	"github.com/feds01/cs3099/internal/core/ports/driven"
	"github.com/feds01/cs3099/internal/core/services"
)

// testEnv runs commands against a fake service and a temporary
// configuration directory.
type testEnv struct {
	server *apitest.Server
	dir    string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv(file.BaseURLEnv, "")

	env := &testEnv{server: apitest.NewServer(t), dir: t.TempDir()}
	env.writeFile(t, file.ConfigFileJSON, `{"baseUrl": "`+env.server.BaseURL()+`"}`)

	original := bootstrap
	SetBootstrap(testBootstrap())
	t.Cleanup(func() {
		SetBootstrap(original)
		configStore = nil
		sessionService = nil
		publicationService = nil
		uploadService = nil
	})
	return env
}

func testBootstrap() *Bootstrap {
	return &Bootstrap{
		ConfigStore: func(dir string) (driven.ConfigStore, error) {
			store, err := file.NewConfigStore(dir)
			if err != nil {
				return nil, err
			}
			return store, nil
		},
		Services: func(dir string, cfg domain.Config) (*Services, error) {
			client, err := api.NewClient(cfg.BaseURL)
			if err != nil {
				return nil, err
			}
			sessions, err := file.NewSessionStore(dir)
			if err != nil {
				return nil, err
			}
			publications := services.NewPublicationService(client)
			return &Services{
				Session:      services.NewSessionService(client, sessions, token.NewInspector()),
				Publications: publications,
				Uploads:      services.NewUploadService(client, publications),
			}, nil
		},
	}
}

// run executes pubcli with args, feeding stdin to prompts.
func (e *testEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	return execute(t, stdin, append([]string{"--config-dir", e.dir}, args...)...)
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag to its default so that commands can be
// executed again in the same process.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

func (e *testEnv) writeFile(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(e.dir, name), []byte(content), 0600))
}

func (e *testEnv) readFile(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(e.dir, name))
	require.NoError(t, err)
	return string(data)
}

// login stores a session the way a previous login would have.
func (e *testEnv) login(t *testing.T) {
	t.Helper()
	e.writeFile(t, file.SessionFile, `{"username":"user","token":"T1","refreshToken":"R1"}`)
}

// refreshes scripts a successful session refresh.
func (e *testEnv) refreshes() {
	e.server.Handle("POST", "/auth/session", apitest.JSON(map[string]any{
		"status": "ok", "token": "T2", "refreshToken": "R2",
	}))
}

func (e *testEnv) publication(id, name string) {
	e.server.Handle("GET", "/publication/user/"+name, apitest.JSON(map[string]any{
		"status": "ok", "publication": map[string]any{"id": id, "name": name},
	}))
}

func writeZip(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("paper.tex")
	require.NoError(t, err)
	_, err = w.Write([]byte(`\documentclass{article}`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}
