package storage

import (
	"sync"

	"github.com/bookflix/bookflix/internal/models"
)

// Memory is an in-process backend with the same semantics as the
// SQLite one. Used when BOOKFLIX_STORAGE=memory and in tests.
type Memory struct {
	mu        sync.RWMutex
	users     map[string]models.User
	byEmail   map[string]string
	libraries map[string]models.LibraryDoc
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{
		users:     make(map[string]models.User),
		byEmail:   make(map[string]string),
		libraries: make(map[string]models.LibraryDoc),
	}
}

func (m *Memory) CreateUser(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = *user
	m.byEmail[user.Email] = user.ID
	return nil
}

func (m *Memory) GetUserByID(id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func (m *Memory) GetUserByEmail(email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	user := m.users[id]
	return &user, nil
}

func (m *Memory) UserExists(email string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.byEmail[email]
	return ok, nil
}

func (m *Memory) GetLibrary(userID string) (models.LibraryDoc, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.libraries[userID]
	if !ok {
		return emptyDoc(), nil
	}
	return doc.Clone(), nil
}

func (m *Memory) SaveLibrary(userID string, doc models.LibraryDoc) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.libraries[userID] = doc.Clone()
	return nil
}

func (m *Memory) Close() error {
	return nil
}
