// ABOUTME: Export and import functionality for workout data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats for any Repository.
package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/liftlog/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format for workout data.
type ExportData struct {
	Version    string             `json:"version" yaml:"version"`
	ExportedAt time.Time          `json:"exported_at" yaml:"exported_at"`
	Tool       string             `json:"tool" yaml:"tool"`
	Users      []*models.User     `json:"users" yaml:"users"`
	Exercises  []*models.Exercise `json:"exercises" yaml:"exercises"`
	Routines   []*models.Routine  `json:"routines" yaml:"routines"`
	Weights    []*models.Weight   `json:"weights" yaml:"weights"`
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData() (*ExportData, error) {
	return CollectExport(d)
}

// ImportData imports data from an export file.
func (d *DB) ImportData(data *ExportData) error {
	return ImportInto(d, data)
}

// CollectExport reads every user, exercise, routine and weight from repo.
// Weights are listed oldest first so that re-import preserves ledger order.
func CollectExport(repo Repository) (*ExportData, error) {
	users, err := repo.ListUsers()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	exercises, err := repo.ListExercises()
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}

	var routines []*models.Routine
	for _, u := range users {
		rs, err := repo.ListRoutinesForUser(u.ID)
		if err != nil {
			return nil, fmt.Errorf("list routines for %s: %w", u.Username, err)
		}
		routines = append(routines, rs...)
	}

	var weights []*models.Weight
	for _, e := range exercises {
		ws, err := repo.ListWeights(e.ID, 0)
		if err != nil {
			return nil, fmt.Errorf("list weights for %s: %w", e.Name, err)
		}
		for i := len(ws) - 1; i >= 0; i-- {
			weights = append(weights, ws[i])
		}
	}

	return &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "liftlog",
		Users:      users,
		Exercises:  exercises,
		Routines:   routines,
		Weights:    weights,
	}, nil
}

// ImportInto writes exported data into repo. Duplicate IDs or names fail
// with ErrInvariantViolation.
func ImportInto(repo Repository, data *ExportData) error {
	for _, u := range data.Users {
		if err := repo.CreateUser(u); err != nil {
			return fmt.Errorf("import user: %w", err)
		}
	}

	for _, e := range data.Exercises {
		if err := repo.CreateExercise(e); err != nil {
			return fmt.Errorf("import exercise: %w", err)
		}
	}

	for _, r := range data.Routines {
		days := r.Days
		r.Days = nil
		if err := repo.CreateRoutine(r); err != nil {
			return fmt.Errorf("import routine: %w", err)
		}
		for i := range days {
			day := days[i]
			exercises := day.Exercises
			day.Exercises = nil
			if err := repo.CreateDay(&day); err != nil {
				return fmt.Errorf("import day: %w", err)
			}
			for _, e := range exercises {
				link := models.NewDayExercise(day.ID, e.ID)
				if err := repo.LinkExercise(link); err != nil {
					return fmt.Errorf("import day exercise: %w", err)
				}
			}
			day.Exercises = exercises
			days[i] = day
		}
		r.Days = days
	}

	for _, w := range data.Weights {
		if err := repo.AppendWeight(w); err != nil {
			return fmt.Errorf("import weight: %w", err)
		}
	}

	return nil
}

// ExportJSON exports all data as JSON.
func ExportJSON(repo Repository) ([]byte, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ImportJSON imports data from JSON bytes.
func ImportJSON(repo Repository, raw []byte) error {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return repo.ImportData(&data)
}

// ExportYAML exports all data as YAML, with routines nested and weight
// history grouped by exercise name.
func ExportYAML(repo Repository) ([]byte, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return nil, err
	}

	usernames := make(map[string]string, len(data.Users))
	for _, u := range data.Users {
		usernames[u.ID.String()] = u.Username
	}
	exerciseNames := make(map[string]string, len(data.Exercises))
	for _, e := range data.Exercises {
		exerciseNames[e.ID.String()] = e.Name
	}

	yamlData := struct {
		Version    string                  `yaml:"version"`
		ExportedAt string                  `yaml:"exported_at"`
		Tool       string                  `yaml:"tool"`
		Routines   []yamlRoutine           `yaml:"routines"`
		Weights    map[string][]yamlWeight `yaml:"weights"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Routines:   make([]yamlRoutine, 0, len(data.Routines)),
		Weights:    make(map[string][]yamlWeight),
	}

	for _, r := range data.Routines {
		yr := yamlRoutine{
			ID:    r.ID.String()[:8],
			Name:  r.Name,
			Owner: usernames[r.UserID.String()],
		}
		for _, day := range r.Days {
			yd := yamlDay{Weekday: string(day.Weekday)}
			for _, e := range day.Exercises {
				yd.Exercises = append(yd.Exercises, e.Name)
			}
			yr.Days = append(yr.Days, yd)
		}
		yamlData.Routines = append(yamlData.Routines, yr)
	}

	for _, w := range data.Weights {
		name := exerciseNames[w.ExerciseID.String()]
		yamlData.Weights[name] = append(yamlData.Weights[name], yamlWeight{
			ID:        w.ID.String()[:8],
			Amount:    w.Amount,
			Reps:      w.Reps,
			Sets:      w.Sets,
			CreatedAt: w.CreatedAt.Format(time.RFC3339),
		})
	}

	return yaml.Marshal(yamlData)
}

type yamlRoutine struct {
	ID    string    `yaml:"id"`
	Name  string    `yaml:"name"`
	Owner string    `yaml:"owner"`
	Days  []yamlDay `yaml:"days,omitempty"`
}

type yamlDay struct {
	Weekday   string   `yaml:"weekday"`
	Exercises []string `yaml:"exercises,omitempty"`
}

type yamlWeight struct {
	ID        string  `yaml:"id"`
	Amount    float64 `yaml:"amount"`
	Reps      *int    `yaml:"reps,omitempty"`
	Sets      *int    `yaml:"sets,omitempty"`
	CreatedAt string  `yaml:"created_at"`
}

// ExportMarkdown renders each exercise's weight history as a Markdown table,
// newest first. exercise filters by name when non-empty; since drops older records.
func ExportMarkdown(repo Repository, exercise string, since *time.Time) (string, error) {
	var exercises []*models.Exercise
	if exercise != "" {
		e, err := repo.GetExerciseByName(exercise)
		if err != nil {
			return "", err
		}
		exercises = []*models.Exercise{e}
	} else {
		all, err := repo.ListExercises()
		if err != nil {
			return "", err
		}
		exercises = all
	}

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Liftlog Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	for _, e := range exercises {
		weights, err := repo.ListWeights(e.ID, 0)
		if err != nil {
			return "", err
		}

		sb.WriteString(fmt.Sprintf("## %s\n\n", e.Name))
		sb.WriteString("| Date | Amount | Reps | Sets |\n")
		sb.WriteString("|------|--------|------|------|\n")
		for _, w := range weights {
			if since != nil && w.CreatedAt.Before(*since) {
				continue
			}
			sb.WriteString(fmt.Sprintf("| %s | %.2f | %s | %s |\n",
				w.CreatedAt.Local().Format("2006-01-02 15:04"),
				w.Amount, optionalInt(w.Reps), optionalInt(w.Sets)))
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func optionalInt(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}
