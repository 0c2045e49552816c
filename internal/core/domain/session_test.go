package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Valid(t *testing.T) {
	assert.True(t, (&Session{Username: "user", AccessToken: "T", RefreshToken: "R"}).Valid())
	assert.False(t, (&Session{Username: "user", AccessToken: "T"}).Valid())
	assert.False(t, (&Session{AccessToken: "T", RefreshToken: "R"}).Valid())

	var missing *Session
	assert.False(t, missing.Valid())
}

func TestSession_JSONKeys(t *testing.T) {
	data, err := json.Marshal(Session{Username: "user", AccessToken: "T", RefreshToken: "R"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"user","token":"T","refreshToken":"R"}`, string(data))
}

func TestIdentity_Headers(t *testing.T) {
	id := &Identity{Username: "user", AuthHeader: "Bearer T"}
	assert.Equal(t, map[string]string{"Authorization": "Bearer T"}, id.Headers())

	assert.Nil(t, (&Identity{Username: "user"}).Headers())

	var missing *Identity
	assert.Nil(t, missing.Headers())
}
