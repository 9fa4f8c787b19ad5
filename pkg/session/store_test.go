package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/dynata/demandapi/pkg/demand"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name     string
		baseHost string
		username string
		want     string
	}{
		{"plain", "https://api.researchnow.com", "user", "https://api.researchnow.com|user"},
		{"trailing slash", "https://api.researchnow.com/", "user", "https://api.researchnow.com|user"},
		{"mixed case", " HTTPS://API.ResearchNow.com ", "user", "https://api.researchnow.com|user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.baseHost, tt.username))
		})
	}
}

func TestStore_SaveLoadDelete(t *testing.T) {
	keyring.MockInit()

	store := NewStore()
	key := Key("https://api.researchnow.com", "user")

	_, err := store.Load(key)
	assert.ErrorIs(t, err, ErrNotFound)

	sess := demand.Session{AccessToken: "access-1", RefreshToken: "refresh-1"}
	require.NoError(t, store.Save(key, sess))

	loaded, err := store.Load(key)
	require.NoError(t, err)
	assert.Equal(t, sess, loaded)

	require.NoError(t, store.Delete(key))
	_, err = store.Load(key)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is a no-op.
	assert.NoError(t, store.Delete(key))
}

func TestStore_LoadCorrupt(t *testing.T) {
	keyring.MockInit()

	key := Key("https://api.researchnow.com", "user")
	require.NoError(t, keyring.Set(keyringService, key, "not json"))

	_, err := NewStore().Load(key)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding session")
}
