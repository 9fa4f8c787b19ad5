package auth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/dynata/demandapi/internal/cmd/base"
	"github.com/dynata/demandapi/pkg/demand"
	"github.com/dynata/demandapi/pkg/session"
)

func setup(t *testing.T, mux *http.ServeMux) (*base.Command, *cli.MockUi, string) {
	t.Helper()
	keyring.MockInit()

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	t.Setenv("DYNATA_DEMAND_CLIENT_ID", "test")
	t.Setenv("DYNATA_DEMAND_USERNAME", "testuser")
	t.Setenv("DYNATA_DEMAND_PASSWORD", "testpass")
	t.Setenv("DYNATA_DEMAND_BASE_URL", server.URL)

	ui := cli.NewMockUi()
	cmd := &base.Command{
		Log:      hclog.NewNullLogger(),
		UI:       ui,
		Sessions: session.NewStore(),
	}
	return cmd, ui, session.Key(server.URL, "testuser")
}

var noEnvFile = []string{"-env-file", os.DevNull}

func TestLoginRefreshLogout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/v1/token/password", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"accessToken": "access-1", "refreshToken": "refresh-1"}`)
	})
	mux.HandleFunc("POST /auth/v1/token/refresh", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"accessToken": "access-2", "refreshToken": "refresh-2"}`)
	})
	mux.HandleFunc("POST /auth/v1/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	cmd, ui, key := setup(t, mux)

	login := &LoginCommand{Command: cmd}
	require.Equal(t, 0, login.Run(noEnvFile), ui.ErrorWriter.String())
	assert.Contains(t, ui.OutputWriter.String(), "Logged in as testuser")

	saved, err := cmd.Sessions.Load(key)
	require.NoError(t, err)
	assert.Equal(t, demand.Session{AccessToken: "access-1", RefreshToken: "refresh-1"}, saved)

	refresh := &RefreshCommand{Command: cmd}
	require.Equal(t, 0, refresh.Run(noEnvFile), ui.ErrorWriter.String())

	saved, err = cmd.Sessions.Load(key)
	require.NoError(t, err)
	assert.Equal(t, demand.Session{AccessToken: "access-2", RefreshToken: "refresh-2"}, saved)

	logout := &LogoutCommand{Command: cmd}
	require.Equal(t, 0, logout.Run(noEnvFile), ui.ErrorWriter.String())

	_, err = cmd.Sessions.Load(key)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestLoginFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/v1/token/password", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error": "invalid credentials"}`)
	})

	cmd, ui, key := setup(t, mux)

	login := &LoginCommand{Command: cmd}
	assert.Equal(t, 1, login.Run(noEnvFile))
	assert.Contains(t, ui.ErrorWriter.String(), "invalid credentials")

	_, err := cmd.Sessions.Load(key)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestRefreshFailureKeepsSavedSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/v1/token/refresh", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	cmd, _, key := setup(t, mux)
	before := demand.Session{AccessToken: "access-1", RefreshToken: "refresh-1"}
	require.NoError(t, cmd.Sessions.Save(key, before))

	refresh := &RefreshCommand{Command: cmd}
	assert.Equal(t, 1, refresh.Run(noEnvFile))

	saved, err := cmd.Sessions.Load(key)
	require.NoError(t, err)
	assert.Equal(t, before, saved)
}

func TestLogoutWithoutSession(t *testing.T) {
	cmd, ui, _ := setup(t, http.NewServeMux())

	logout := &LogoutCommand{Command: cmd}
	assert.Equal(t, 1, logout.Run(noEnvFile))
	assert.Contains(t, ui.ErrorWriter.String(), "auth login")
}
