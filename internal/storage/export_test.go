// ABOUTME: Tests for export and import functionality.
// ABOUTME: Verifies JSON, YAML, and Markdown export formats.
package storage

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/liftlog/internal/models"
	"gopkg.in/yaml.v3"
)

// seedExportData builds one user with a Monday squat day and two squat weights.
func seedExportData(t *testing.T, db *DB) (*models.Routine, *models.Exercise) {
	t.Helper()

	_, r := seedRoutine(t, db, "harper", "Strength")
	day := models.NewDay(r.ID, models.Monday)
	if err := db.CreateDay(day); err != nil {
		t.Fatalf("CreateDay failed: %v", err)
	}
	squat := setupExercise(t, db, "Squat")
	if err := db.LinkExercise(models.NewDayExercise(day.ID, squat.ID)); err != nil {
		t.Fatalf("LinkExercise failed: %v", err)
	}

	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	if err := db.AppendWeight(models.NewWeight(squat.ID, 100).WithReps(5).WithCreatedAt(base)); err != nil {
		t.Fatalf("AppendWeight failed: %v", err)
	}
	if err := db.AppendWeight(models.NewWeight(squat.ID, 102.5).WithCreatedAt(base.Add(48 * time.Hour))); err != nil {
		t.Fatalf("AppendWeight failed: %v", err)
	}
	return r, squat
}

func TestExportJSON(t *testing.T) {
	db := setupTestDB(t)
	seedExportData(t, db)

	data, err := ExportJSON(db)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var export ExportData
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}

	if export.Version != "1.0" {
		t.Errorf("Expected version 1.0, got %s", export.Version)
	}
	if export.Tool != "liftlog" {
		t.Errorf("Expected tool liftlog, got %s", export.Tool)
	}
	if len(export.Users) != 1 || len(export.Routines) != 1 || len(export.Exercises) != 1 {
		t.Errorf("Unexpected counts: %d users, %d routines, %d exercises",
			len(export.Users), len(export.Routines), len(export.Exercises))
	}
	if len(export.Routines[0].Days) != 1 || len(export.Routines[0].Days[0].Exercises) != 1 {
		t.Error("Routine should export nested day and exercise")
	}
	if len(export.Weights) != 2 {
		t.Fatalf("Expected 2 weights, got %d", len(export.Weights))
	}
	if export.Weights[0].Amount != 100 {
		t.Errorf("Weights should export oldest first, got %v first", export.Weights[0].Amount)
	}
}

func TestExportJSONEmpty(t *testing.T) {
	db := setupTestDB(t)

	data, err := ExportJSON(db)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}
	var export ExportData
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	if len(export.Users) != 0 || len(export.Weights) != 0 {
		t.Error("Expected empty export")
	}
}

func TestExportYAML(t *testing.T) {
	db := setupTestDB(t)
	seedExportData(t, db)

	data, err := ExportYAML(db)
	if err != nil {
		t.Fatalf("ExportYAML failed: %v", err)
	}

	var parsed map[string]any
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("Failed to parse YAML: %v", err)
	}
	if parsed["tool"] != "liftlog" {
		t.Errorf("Expected tool liftlog, got %v", parsed["tool"])
	}

	out := string(data)
	for _, want := range []string{"owner: harper", "weekday: MONDAY", "- Squat", "Squat:", "amount: 102.5", "reps: 5"} {
		if !strings.Contains(out, want) {
			t.Errorf("YAML missing %q:\n%s", want, out)
		}
	}
}

func TestExportMarkdown(t *testing.T) {
	db := setupTestDB(t)
	seedExportData(t, db)

	md, err := ExportMarkdown(db, "", nil)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}
	if !strings.Contains(md, "# Liftlog Export") {
		t.Error("Missing title")
	}
	if !strings.Contains(md, "## Squat") {
		t.Error("Missing exercise section")
	}
	if !strings.Contains(md, "| 100.00 | 5 | - |") {
		t.Errorf("Missing first weight row:\n%s", md)
	}
	if strings.Index(md, "102.50") > strings.Index(md, "100.00") {
		t.Error("Rows should be newest first")
	}
}

func TestExportMarkdownWithSince(t *testing.T) {
	db := setupTestDB(t)
	seedExportData(t, db)

	since := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	md, err := ExportMarkdown(db, "squat", &since)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}
	if strings.Contains(md, "100.00") {
		t.Error("Records before since should be dropped")
	}
	if !strings.Contains(md, "102.50") {
		t.Error("Records after since should be kept")
	}
}

func TestExportMarkdownUnknownExercise(t *testing.T) {
	db := setupTestDB(t)

	if _, err := ExportMarkdown(db, "Curl", nil); err == nil {
		t.Error("Expected error for unknown exercise filter")
	}
}

func TestImportJSON(t *testing.T) {
	src := setupTestDB(t)
	r, squat := seedExportData(t, src)

	data, err := ExportJSON(src)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	dst := setupTestDB(t)
	if err := ImportJSON(dst, data); err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}

	got, err := dst.GetRoutine(r.ID.String())
	if err != nil {
		t.Fatalf("GetRoutine after import failed: %v", err)
	}
	if len(got.Days) != 1 || len(got.Days[0].Exercises) != 1 {
		t.Errorf("Imported routine lost its structure: %+v", got)
	}

	latest, err := dst.LatestWeight(squat.ID)
	if err != nil {
		t.Fatalf("LatestWeight after import failed: %v", err)
	}
	if latest.Amount != 102.5 {
		t.Errorf("Latest weight mismatch: got %v, want 102.5", latest.Amount)
	}
}

func TestImportJSONInvalid(t *testing.T) {
	db := setupTestDB(t)

	if err := ImportJSON(db, []byte("not json")); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestImportDataDuplicate(t *testing.T) {
	db := setupTestDB(t)
	seedExportData(t, db)

	data, err := db.GetAllData()
	if err != nil {
		t.Fatalf("GetAllData failed: %v", err)
	}
	if err := db.ImportData(data); err == nil {
		t.Error("Importing into a populated store should fail")
	}
}
