package repositories

import (
	"bytes"
	"testing"
	"time"

	"blogicum/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	store := setupTestStore(t)
	repo := store.Users

	leo := &models.User{Username: "leo", Email: "leo@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(leo))

	t.Run("lookup by username", func(t *testing.T) {
		found, err := repo.GetByUsername("leo")
		require.NoError(t, err)
		assert.Equal(t, leo.ID, found.ID)
		assert.Equal(t, "hash", found.PasswordHash)
	})

	t.Run("duplicate username", func(t *testing.T) {
		assert.ErrorIs(t, repo.Create(&models.User{Username: "leo"}), ErrConflict)
	})

	t.Run("rename", func(t *testing.T) {
		leo.Username = "lev"
		require.NoError(t, repo.Update(leo))
		_, err := repo.GetByUsername("leo")
		assert.ErrorIs(t, err, ErrNotFound)
		found, err := repo.GetByUsername("lev")
		require.NoError(t, err)
		assert.Equal(t, leo.ID, found.ID)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(leo.ID))
		_, err := repo.GetByID(leo.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = repo.GetByUsername("lev")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSessionRepository(t *testing.T) {
	store := setupTestStore(t)
	repo := store.Sessions

	session := &models.Session{Token: "abc", UserID: 3, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.Create(session, time.Hour))

	found, err := repo.Get("abc")
	require.NoError(t, err)
	assert.Equal(t, 3, found.UserID)

	require.NoError(t, repo.Delete("abc"))
	_, err = repo.Get("abc")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, repo.Delete("never-existed"))
}

func TestStoreBackupRestore(t *testing.T) {
	source := setupTestStore(t)
	require.NoError(t, source.Users.Create(&models.User{Username: "backup"}))

	var buf bytes.Buffer
	require.NoError(t, source.Backup(&buf))
	assert.NotZero(t, buf.Len())

	target := setupTestStore(t)
	require.NoError(t, target.Restore(&buf))

	user, err := target.Users.GetByUsername("backup")
	require.NoError(t, err)
	assert.Equal(t, "backup", user.Username)
}
