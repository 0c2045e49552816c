package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feds01/cs3099/internal/adapters/driven/config/file"
	"github.com/feds01/cs3099/internal/apitest"
)

func TestShowCmd_Use(t *testing.T) {
	assert.Equal(t, "show", showCmd.Use)
}

func TestShowCmd_ListsPublications(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	env.refreshes()
	env.server.Handle("GET", "/publication/user", apitest.JSON(map[string]any{
		"status":       "ok",
		"publications": []map[string]any{{"id": "p1", "title": "Doc", "revision": "v1"}},
	}))

	out, err := env.run(t, "", "show")

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Listing all publications of the latest version:", lines[0])
	assert.Equal(t, "Doc (v1) - "+env.server.URL+"/publication/p1", lines[1])

	calls := env.server.Calls("GET", "/publication/user")
	require.Len(t, calls, 1)
	assert.Equal(t, "Bearer T2", calls[0].Header.Get("Authorization"))

	var refresh map[string]string
	require.NoError(t, env.server.Calls("POST", "/auth/session")[0].JSON(&refresh))
	assert.Equal(t, "R1", refresh["refreshToken"])
	assert.JSONEq(t, `{"username":"user","token":"T2","refreshToken":"R2"}`, env.readFile(t, file.SessionFile))
}

func TestShowCmd_NoPublications(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	env.refreshes()
	env.server.Handle("GET", "/publication/user", apitest.JSON(map[string]any{
		"status": "error", "message": "User not found",
	}))

	out, err := env.run(t, "", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "No publications found")
}

func TestShowCmd_NotLoggedIn(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Please login first")
	assert.Empty(t, env.server.Requests())
}

func TestShowCmd_SessionExpired(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	env.server.Handle("POST", "/auth/session", apitest.Response{
		Status: 401,
		Body:   map[string]any{"status": "error", "message": "Invalid refresh token"},
	})

	out, err := env.run(t, "", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Refresh token expired")
	assert.Contains(t, out, "Please login first")
	assert.JSONEq(t, `{"username":"user","token":"T1","refreshToken":"R1"}`, env.readFile(t, file.SessionFile))
	assert.Empty(t, env.server.Calls("GET", "/publication/user"))
}

func TestShowCmd_NonJSONResponse(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	env.refreshes()
	env.server.Handle("GET", "/publication/user", apitest.Response{Status: 502, Raw: "<html>Bad Gateway</html>"})

	_, err := env.run(t, "", "show")

	require.Error(t, err)
	assert.Contains(t, FatalMessage(err), "Unexpected error occurs")
}
