package storage

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bookflix/bookflix/internal/models"
)

// Database is the SQLite backend.
type Database struct {
	db *sql.DB
}

// NewDatabase creates and initializes the SQLite database
func NewDatabase(dbPath string) (*Database, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	d := &Database{db: db}
	if err := d.migrate(); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Database) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		favorite_genres TEXT NOT NULL DEFAULT '[]',
		avatar TEXT DEFAULT '',
		password_hash TEXT NOT NULL,
		join_date DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS libraries (
		user_id TEXT PRIMARY KEY,
		doc TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);
	`

	_, err := d.db.Exec(schema)
	return err
}

// CreateUser creates a new user
func (d *Database) CreateUser(user *models.User) error {
	genres, err := json.Marshal(user.FavoriteGenres)
	if err != nil {
		return err
	}

	_, err = d.db.Exec(`
		INSERT INTO users (id, email, name, favorite_genres, avatar, password_hash, join_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Email, user.Name, string(genres), user.Avatar, user.PasswordHash, user.JoinDate,
	)
	return err
}

// GetUserByID retrieves a user by ID
func (d *Database) GetUserByID(id string) (*models.User, error) {
	return d.getUser(`SELECT id, email, name, favorite_genres, avatar, password_hash, join_date
		FROM users WHERE id = ?`, id)
}

// GetUserByEmail retrieves a user by email
func (d *Database) GetUserByEmail(email string) (*models.User, error) {
	return d.getUser(`SELECT id, email, name, favorite_genres, avatar, password_hash, join_date
		FROM users WHERE email = ?`, email)
}

func (d *Database) getUser(query string, arg any) (*models.User, error) {
	user := &models.User{}
	var genres string
	err := d.db.QueryRow(query, arg).Scan(
		&user.ID, &user.Email, &user.Name, &genres, &user.Avatar, &user.PasswordHash, &user.JoinDate,
	)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(genres), &user.FavoriteGenres); err != nil {
		return nil, err
	}
	return user, nil
}

// UserExists checks if an email is already registered
func (d *Database) UserExists(email string) (bool, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetLibrary retrieves a user's library document. A user with no saved
// document gets an empty one, not an error.
func (d *Database) GetLibrary(userID string) (models.LibraryDoc, error) {
	var raw string
	err := d.db.QueryRow(`SELECT doc FROM libraries WHERE user_id = ?`, userID).Scan(&raw)
	if err == sql.ErrNoRows {
		return emptyDoc(), nil
	}
	if err != nil {
		return models.LibraryDoc{}, err
	}

	doc := emptyDoc()
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return models.LibraryDoc{}, err
	}
	if doc.Reviews == nil {
		doc.Reviews = map[string]models.Review{}
	}
	return doc, nil
}

// SaveLibrary replaces a user's library document
func (d *Database) SaveLibrary(userID string, doc models.LibraryDoc) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	_, err = d.db.Exec(`
		INSERT INTO libraries (user_id, doc, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			doc = excluded.doc,
			updated_at = excluded.updated_at`,
		userID, string(raw), time.Now(),
	)
	return err
}

// Close closes the database connection
func (d *Database) Close() error {
	return d.db.Close()
}
