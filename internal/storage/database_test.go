package storage

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookflix/bookflix/internal/models"
)

func setupTestDB(t *testing.T) (*Database, func()) {
	tmpFile, err := os.CreateTemp("", "bookflix-test-*.db")
	require.NoError(t, err)
	tmpFile.Close()

	db, err := NewDatabase(tmpFile.Name())
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(tmpFile.Name())
	}

	return db, cleanup
}

func testLibraryDoc() models.LibraryDoc {
	completed := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)
	return models.LibraryDoc{
		BucketList: []models.BucketEntry{
			{
				Book:      models.Book{ID: "book-1", Title: "Dune", Authors: []string{"Frank Herbert"}},
				Status:    models.StatusReading,
				AddedDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
			},
		},
		ReadingHistory: []models.HistoryEntry{
			{
				Book:          models.Book{ID: "book-2", Title: "Hyperion"},
				CompletedDate: completed,
				Year:          completed.Year(),
			},
		},
		Reviews: map[string]models.Review{
			"book-2": {
				ID:          "review-1",
				BookID:      "book-2",
				UserID:      "test-user-id",
				Rating:      5,
				ReviewText:  "A classic",
				MoodTags:    []string{"adventurous"},
				CreatedDate: completed,
			},
		},
	}
}

func TestCreateAndGetUser(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	user := &models.User{
		ID:             "test-user-id",
		Email:          "test@example.com",
		Name:           "Test User",
		FavoriteGenres: []string{"Fiction", "Horror"},
		Avatar:         "https://example.com/avatar.png",
		PasswordHash:   "hashedpassword",
		JoinDate:       time.Now(),
	}

	err := db.CreateUser(user)
	require.NoError(t, err)

	// Get by ID
	retrieved, err := db.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, retrieved.ID)
	assert.Equal(t, user.Email, retrieved.Email)
	assert.Equal(t, user.Name, retrieved.Name)
	assert.Equal(t, user.FavoriteGenres, retrieved.FavoriteGenres)

	// Get by email
	retrieved, err = db.GetUserByEmail(user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, retrieved.ID)
}

func TestGetUserNotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := db.GetUserByID("nonexistent")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = db.GetUserByEmail("nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserExists(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	exists, err := db.UserExists("test@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	user := &models.User{
		ID:           "test-user-id",
		Email:        "test@example.com",
		Name:         "Test User",
		PasswordHash: "hash",
		JoinDate:     time.Now(),
	}
	require.NoError(t, db.CreateUser(user))

	exists, err = db.UserExists("test@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDuplicateEmailRejected(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	user := &models.User{
		ID:           "user-a",
		Email:        "dup@example.com",
		Name:         "First",
		PasswordHash: "hash",
		JoinDate:     time.Now(),
	}
	require.NoError(t, db.CreateUser(user))

	user.ID = "user-b"
	assert.Error(t, db.CreateUser(user))
}

func TestLibraryRoundTrip(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	doc := testLibraryDoc()
	require.NoError(t, db.SaveLibrary("test-user-id", doc))

	loaded, err := db.GetLibrary("test-user-id")
	require.NoError(t, err)
	require.Len(t, loaded.BucketList, 1)
	assert.Equal(t, "Dune", loaded.BucketList[0].Title)
	assert.Equal(t, models.StatusReading, loaded.BucketList[0].Status)
	require.Len(t, loaded.ReadingHistory, 1)
	assert.Equal(t, 2026, loaded.ReadingHistory[0].Year)
	require.Contains(t, loaded.Reviews, "book-2")
	assert.Equal(t, 5, loaded.Reviews["book-2"].Rating)
}

func TestSaveLibraryOverwrites(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, db.SaveLibrary("test-user-id", testLibraryDoc()))

	replacement := models.LibraryDoc{Reviews: map[string]models.Review{}}
	require.NoError(t, db.SaveLibrary("test-user-id", replacement))

	loaded, err := db.GetLibrary("test-user-id")
	require.NoError(t, err)
	assert.Empty(t, loaded.BucketList)
	assert.Empty(t, loaded.ReadingHistory)
}

func TestGetLibraryMissingUser(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	doc, err := db.GetLibrary("never-seen")
	require.NoError(t, err)
	assert.Empty(t, doc.BucketList)
	assert.Empty(t, doc.ReadingHistory)
	assert.NotNil(t, doc.Reviews)
}
