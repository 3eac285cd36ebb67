// ABOUTME: Repository interface for routine, exercise and weight storage.
// ABOUTME: Every implementation enforces uniqueness and cascade rules itself.
package storage

import (
	"github.com/google/uuid"
	"github.com/harperreed/liftlog/internal/models"
)

// Repository defines the storage interface for workout data.
// Implementations must enforce:
//   - one Day per weekday per Routine, one link per (Day, Exercise)
//   - unique usernames, exercise names, and routine names per user
//   - Routine -> Day -> DayExercise cascade as one atomic delete
//   - Exercise and Weight records outlive any Day or Routine that referenced them
//
// Lookups taking idOrPrefix accept a full UUID or a unique ID prefix.
type Repository interface {
	// User operations
	CreateUser(u *models.User) error
	GetUser(idOrPrefix string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	ListUsers() ([]*models.User, error)
	DeleteUser(idOrPrefix string) error

	// Routine operations. Routines are returned in store order (creation order)
	// with Days in weekday order and each Day's Exercises populated.
	CreateRoutine(r *models.Routine) error
	GetRoutine(idOrPrefix string) (*models.Routine, error)
	ListRoutinesForUser(userID uuid.UUID) ([]*models.Routine, error)
	RenameRoutine(id uuid.UUID, name string) error
	DeleteRoutine(idOrPrefix string) error

	// Day operations
	CreateDay(d *models.Day) error
	GetDay(idOrPrefix string) (*models.Day, error)
	DeleteDay(idOrPrefix string) error

	// Exercise operations
	CreateExercise(e *models.Exercise) error
	GetExercise(idOrPrefix string) (*models.Exercise, error)
	GetExerciseByName(name string) (*models.Exercise, error)
	ListExercises() ([]*models.Exercise, error)
	DeleteExercise(idOrPrefix string) error

	// DayExercise operations
	LinkExercise(link *models.DayExercise) error
	UnlinkExercise(dayID, exerciseID uuid.UUID) error

	// Weight operations. Lists are newest first (CreatedAt, then ID).
	AppendWeight(w *models.Weight) error
	GetWeight(idOrPrefix string) (*models.Weight, error)
	UpdateWeight(w *models.Weight) error
	DeleteWeight(exerciseID, weightID uuid.UUID) error
	ListWeights(exerciseID uuid.UUID, limit int) ([]*models.Weight, error)
	LatestWeight(exerciseID uuid.UUID) (*models.Weight, error)

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}

// ChangeCounter is implemented by backends that other processes can write
// to concurrently. DataVersion changes whenever another connection commits.
type ChangeCounter interface {
	DataVersion() (int64, error)
}
