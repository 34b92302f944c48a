package client

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyepulse/buildmonitor/pkg/models"
)

func tempSessionStore(t *testing.T) *SessionStore {
	t.Helper()

	return NewSessionStore(filepath.Join(t.TempDir(), "session.json"), nil)
}

func TestSessionStoreRoundTrip(t *testing.T) {
	store := tempSessionStore(t)

	require.NoError(t, store.Load())
	assert.Nil(t, store.Current())
	assert.Empty(t, store.Token())

	sess := &models.Session{
		Token: "tok-123",
		Role:  models.RoleAdmin,
		User:  models.User{ID: "u1", Email: "admin@example.com", Role: models.RoleAdmin},
	}
	require.NoError(t, store.Set(sess))

	// A fresh store against the same path sees the persisted session.
	reloaded := NewSessionStore(store.path, nil)
	require.NoError(t, reloaded.Load())

	current := reloaded.Current()
	require.NotNil(t, current)
	assert.Equal(t, "tok-123", current.Token)
	assert.Equal(t, models.RoleAdmin, current.Role)
}

func TestSessionStoreFilePermissions(t *testing.T) {
	store := tempSessionStore(t)
	require.NoError(t, store.Set(&models.Session{Token: "tok"}))

	info, err := os.Stat(store.path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(sessionFilePerms), info.Mode().Perm())
}

func TestSessionStoreClear(t *testing.T) {
	store := tempSessionStore(t)
	require.NoError(t, store.Set(&models.Session{Token: "tok"}))

	require.NoError(t, store.Clear())
	assert.Nil(t, store.Current())

	_, err := os.Stat(store.path)
	assert.True(t, os.IsNotExist(err))

	// Clearing twice is harmless.
	require.NoError(t, store.Clear())
}

func TestSessionStoreDiscardsCorruptFile(t *testing.T) {
	store := tempSessionStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.path), 0o700))
	require.NoError(t, os.WriteFile(store.path, []byte("{not json"), 0o600))

	require.NoError(t, store.Load())
	assert.Nil(t, store.Current())
}

func TestSessionFromLoginDecodesExpiryAndRole(t *testing.T) {
	exp := time.Now().Add(24 * time.Hour).Truncate(time.Second)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u1",
		"email":   "admin@example.com",
		"role":    "admin",
		"exp":     exp.Unix(),
	})

	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	sess := SessionFromLogin(&models.LoginResponse{
		Token: signed,
		User:  models.User{ID: "u1", Email: "admin@example.com"},
	})

	assert.Equal(t, signed, sess.Token)
	assert.Equal(t, models.RoleAdmin, sess.Role)
	assert.True(t, sess.ExpiresAt.Equal(exp))
}

func TestSessionFromLoginOpaqueToken(t *testing.T) {
	sess := SessionFromLogin(&models.LoginResponse{
		Token: "not-a-jwt",
		User:  models.User{Role: models.RoleCitizen},
	})

	assert.Equal(t, "not-a-jwt", sess.Token)
	assert.Equal(t, models.RoleCitizen, sess.Role)
	assert.True(t, sess.ExpiresAt.IsZero())
}
