// ABOUTME: User operations for the KV store.
// ABOUTME: Deleting a user cascades to its routines, their days and links.
package kvstore

import (
	"fmt"
	"sort"

	"github.com/harperreed/liftlog/internal/models"
)

// CreateUser stores a new user. Usernames are unique.
func (s *Store) CreateUser(u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := listJSON[models.User](s, UserPrefix)
	if err != nil {
		return err
	}
	for _, existing := range users {
		if existing.ID == u.ID {
			return violation("user %s already exists", u.ID)
		}
		if existing.Username == u.Username {
			return violation("username %q already exists", u.Username)
		}
	}
	return s.put(UserPrefix+u.ID.String(), u)
}

// GetUser retrieves a user by ID or ID prefix.
func (s *Store) GetUser(idOrPrefix string) (*models.User, error) {
	key, err := s.resolve(UserPrefix, "user", idOrPrefix)
	if err != nil {
		return nil, err
	}
	return getJSON[models.User](s, key, "user")
}

// GetUserByUsername retrieves a user by exact username.
func (s *Store) GetUserByUsername(username string) (*models.User, error) {
	users, err := listJSON[models.User](s, UserPrefix)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, notFound("user", username)
}

// ListUsers returns all users ordered by username.
func (s *Store) ListUsers() ([]*models.User, error) {
	users, err := listJSON[models.User](s, UserPrefix)
	if err != nil {
		return nil, err
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

// DeleteUser removes a user with all of its routines.
func (s *Store) DeleteUser(idOrPrefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, err := s.resolve(UserPrefix, "user", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	userID := extractID(key)

	routines, err := listJSON[models.Routine](s, RoutinePrefix)
	if err != nil {
		return err
	}
	keys := []string{key}
	for _, r := range routines {
		if r.UserID.String() != userID {
			continue
		}
		routineKeys, err := s.routineCascade(r.ID.String())
		if err != nil {
			return err
		}
		keys = append(keys, routineKeys...)
	}

	if err := s.engine.Delete(keysOf(keys)...); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
