package session_test

import (
	"path/filepath"
	"testing"

	"github.com/fekuna/omnipos-terminal/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T, path string) *session.Store {
	t.Helper()
	store, err := session.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreRoundtrip(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "session.db"))

	_, ok, err := store.Get("token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set("token", "abc"))
	value, ok, err := store.Get("token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", value)

	// Overwrite, not duplicate.
	require.NoError(t, store.Set("token", "def"))
	value, _, err = store.Get("token")
	require.NoError(t, err)
	assert.Equal(t, "def", value)

	require.NoError(t, store.Delete("token"))
	_, ok, err = store.Get("token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreDeleteMissingKeyIsNoop(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "session.db"))
	assert.NoError(t, store.Delete("never-set"))
}

func TestStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	first, err := session.Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Set("user", `{"id":"u1"}`))
	require.NoError(t, first.Close())

	second := openStore(t, path)
	value, ok, err := second.Get("user")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"id":"u1"}`, value)
}
