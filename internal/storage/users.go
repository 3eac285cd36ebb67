// ABOUTME: User CRUD operations for SQLite storage.
// ABOUTME: Usernames are unique; deleting a user cascades to its routines.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/liftlog/internal/models"
)

// CreateUser stores a new user.
func (d *DB) CreateUser(u *models.User) error {
	_, err := d.db.Exec(`
		INSERT INTO users (id, username, created_at, updated_at)
		VALUES (?, ?, ?, ?)`,
		u.ID.String(), u.Username, formatTime(u.CreatedAt), formatTime(u.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return violation("username %q already exists", u.Username)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID or ID prefix.
func (d *DB) GetUser(idOrPrefix string) (*models.User, error) {
	id, err := d.resolveID("users", "user", idOrPrefix)
	if err != nil {
		return nil, err
	}
	u, err := scanUser(d.db.QueryRow(`
		SELECT id, username, created_at, updated_at FROM users WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("user", idOrPrefix)
	}
	return u, err
}

// GetUserByUsername retrieves a user by exact username.
func (d *DB) GetUserByUsername(username string) (*models.User, error) {
	u, err := scanUser(d.db.QueryRow(`
		SELECT id, username, created_at, updated_at FROM users WHERE username = ?`, username))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("user", username)
	}
	return u, err
}

// ListUsers returns all users ordered by username.
func (d *DB) ListUsers() ([]*models.User, error) {
	rows, err := d.db.Query(`SELECT id, username, created_at, updated_at FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// DeleteUser removes a user and, through cascade, all of their routines.
func (d *DB) DeleteUser(idOrPrefix string) error {
	id, err := d.resolveID("users", "user", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return d.deleteByID("users", "user", id)
}

// deleteByID deletes one row by primary key, reporting ErrNotFound when nothing matched.
func (d *DB) deleteByID(table, what, id string) error {
	result, err := d.db.Exec(fmt.Sprintf("DELETE FROM %s WHERE id = ?", table), id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", what, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", what, err)
	}
	if affected == 0 {
		return notFound(what, id)
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	var idStr, createdAt, updatedAt string

	if err := row.Scan(&idStr, &u.Username, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	u.ID, _ = uuid.Parse(idStr)
	u.CreatedAt = parseTime(createdAt)
	u.UpdatedAt = parseTime(updatedAt)
	return &u, nil
}
