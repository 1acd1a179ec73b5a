package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookflix/bookflix/internal/models"
)

func TestMemoryUsers(t *testing.T) {
	m := NewMemory()

	_, err := m.GetUserByID("u1")
	assert.ErrorIs(t, err, ErrUserNotFound)

	user := &models.User{
		ID:       "u1",
		Email:    "test@example.com",
		Name:     "Test User",
		JoinDate: time.Now(),
	}
	require.NoError(t, m.CreateUser(user))

	retrieved, err := m.GetUserByID("u1")
	require.NoError(t, err)
	assert.Equal(t, "Test User", retrieved.Name)

	retrieved, err = m.GetUserByEmail("test@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", retrieved.ID)

	exists, err := m.UserExists("test@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMemoryLibraryIsolation(t *testing.T) {
	m := NewMemory()

	doc := models.LibraryDoc{
		BucketList: []models.BucketEntry{
			{Book: models.Book{ID: "b1", Title: "Dune"}, Status: models.StatusPlanned},
		},
		Reviews: map[string]models.Review{},
	}
	require.NoError(t, m.SaveLibrary("u1", doc))

	// the stored copy is insulated from caller mutation
	doc.BucketList[0].Title = "changed"

	loaded, err := m.GetLibrary("u1")
	require.NoError(t, err)
	require.Len(t, loaded.BucketList, 1)
	assert.Equal(t, "Dune", loaded.BucketList[0].Title)

	// and vice versa
	loaded.BucketList[0].Title = "changed again"
	reloaded, err := m.GetLibrary("u1")
	require.NoError(t, err)
	assert.Equal(t, "Dune", reloaded.BucketList[0].Title)
}

func TestMemoryGetLibraryMissingUser(t *testing.T) {
	m := NewMemory()

	doc, err := m.GetLibrary("nobody")
	require.NoError(t, err)
	assert.Empty(t, doc.BucketList)
	assert.NotNil(t, doc.Reviews)
}
