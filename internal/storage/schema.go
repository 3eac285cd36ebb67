// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Unique constraints and cascades encode the data model invariants.
package storage

// initSchema creates or updates the database schema.
//
// Cascades run Routine -> Day -> DayExercise. Exercise and Weight rows are
// never reached from a Routine or Day delete; deleting an Exercise removes its
// links, weights and tombstones.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS routines (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE (name, user_id),
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS days (
		id TEXT PRIMARY KEY,
		routine_id TEXT NOT NULL,
		weekday TEXT NOT NULL CHECK (weekday IN ('MONDAY','TUESDAY','WEDNESDAY','THURSDAY','FRIDAY','SATURDAY','SUNDAY')),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE (weekday, routine_id),
		FOREIGN KEY (routine_id) REFERENCES routines(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS exercises (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS day_exercises (
		day_id TEXT NOT NULL,
		exercise_id TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (day_id, exercise_id),
		FOREIGN KEY (day_id) REFERENCES days(id) ON DELETE CASCADE,
		FOREIGN KEY (exercise_id) REFERENCES exercises(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS weights (
		id TEXT PRIMARY KEY,
		exercise_id TEXT NOT NULL,
		amount REAL NOT NULL,
		reps INTEGER,
		sets INTEGER,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		FOREIGN KEY (exercise_id) REFERENCES exercises(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS weight_tombstones (
		id TEXT PRIMARY KEY,
		exercise_id TEXT NOT NULL,
		deleted_at TEXT NOT NULL,
		FOREIGN KEY (exercise_id) REFERENCES exercises(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_routines_user ON routines(user_id, created_at);
	CREATE INDEX IF NOT EXISTS idx_days_routine ON days(routine_id);
	CREATE INDEX IF NOT EXISTS idx_day_exercises_exercise ON day_exercises(exercise_id);
	CREATE INDEX IF NOT EXISTS idx_weights_exercise_created ON weights(exercise_id, created_at DESC, id DESC);
	`

	_, err := d.db.Exec(schema)
	return err
}
