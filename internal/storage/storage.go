package storage

import (
	"errors"

	"github.com/bookflix/bookflix/internal/models"
)

// ErrUserNotFound is returned when a lookup matches no user.
var ErrUserNotFound = errors.New("user not found")

// Backend is the persistence collaborator: user accounts plus one
// library document per user, written whole (last writer wins).
type Backend interface {
	CreateUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UserExists(email string) (bool, error)

	// GetLibrary returns the user's document, or an empty document
	// when the user has never saved one.
	GetLibrary(userID string) (models.LibraryDoc, error)
	// SaveLibrary replaces the user's document.
	SaveLibrary(userID string, doc models.LibraryDoc) error

	Close() error
}

func emptyDoc() models.LibraryDoc {
	return models.LibraryDoc{
		BucketList:     []models.BucketEntry{},
		ReadingHistory: []models.HistoryEntry{},
		Reviews:        map[string]models.Review{},
	}
}
