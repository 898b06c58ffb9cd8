package userstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	authgate "github.com/tokenforge/authgate"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id         TEXT PRIMARY KEY,
	email      TEXT NOT NULL UNIQUE,
	password   TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
`

// SQLite persists user records in a local SQLite database. It implements
// [authgate.UserProvider].
type SQLite struct {
	db *sql.DB
}

// Open opens (and if needed initializes) the database at path. Use ":memory:"
// for tests.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// modernc.org/sqlite serializes writes itself; a single connection
	// avoids SQLITE_BUSY under concurrent handlers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// FindByEmail implements [authgate.UserProvider].
func (s *SQLite) FindByEmail(ctx context.Context, email string) (authgate.UserRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, email, password, created_at
		FROM users
		WHERE email = ?
		`,
		email,
	)

	var record authgate.UserRecord
	var createdAt int64
	if err := row.Scan(&record.UserID, &record.Email, &record.PasswordHash, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return authgate.UserRecord{}, authgate.ErrUserNotFound
		}
		return authgate.UserRecord{}, fmt.Errorf("query user by email: %w", err)
	}
	record.CreatedAt = time.Unix(createdAt, 0)

	return record, nil
}

// InsertUser implements [authgate.UserProvider]. The unique index on email
// is the authority on duplicates; a constraint violation maps to
// [authgate.ErrAccountExists].
func (s *SQLite) InsertUser(ctx context.Context, email, passwordHash string) (authgate.UserRecord, error) {
	record := authgate.UserRecord{
		UserID:       authgate.NewUserID(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password, created_at)
		VALUES (?, ?, ?, ?)
		`,
		record.UserID,
		record.Email,
		record.PasswordHash,
		record.CreatedAt.Unix(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return authgate.UserRecord{}, authgate.ErrAccountExists
		}
		return authgate.UserRecord{}, fmt.Errorf("insert user: %w", err)
	}

	return record, nil
}
