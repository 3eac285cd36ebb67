// ABOUTME: Tests for the clock collaborator.
// ABOUTME: Verifies weekday derivation and date parsing.
package clock

import (
	"testing"
	"time"

	"github.com/harperreed/liftlog/internal/models"
)

func TestTodayFromFixed(t *testing.T) {
	// 2024-05-03 was a Friday.
	c := Fixed{T: time.Date(2024, 5, 3, 23, 59, 0, 0, time.UTC)}
	today := TodayFrom(c)

	if today.Weekday != models.Friday {
		t.Errorf("Expected FRIDAY, got %s", today.Weekday)
	}
	if today.Date.Hour() != 0 || today.Date.Day() != 3 {
		t.Errorf("Expected midnight on the 3rd, got %v", today.Date)
	}
	if got := today.String(); got != "Friday 2024-05-03" {
		t.Errorf("String() = %q", got)
	}
}

func TestTodayUsesClockLocation(t *testing.T) {
	// 02:00 Saturday in UTC is still Friday evening in New York.
	ny := time.FixedZone("EDT", -4*3600)
	c := Fixed{T: time.Date(2024, 5, 4, 2, 0, 0, 0, time.UTC).In(ny)}

	if got := TodayFrom(c).Weekday; got != models.Friday {
		t.Errorf("Expected FRIDAY in local zone, got %s", got)
	}
}

func TestSystemLocation(t *testing.T) {
	loc := time.FixedZone("X", 5*3600)
	now := System{Location: loc}.Now()
	if now.Location() != loc {
		t.Errorf("Expected location %v, got %v", loc, now.Location())
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-05-01", time.UTC)
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if models.WeekdayOf(d) != models.Wednesday {
		t.Errorf("Expected WEDNESDAY, got %s", models.WeekdayOf(d))
	}

	if _, err := ParseDate("05/01/2024", time.UTC); err == nil {
		t.Error("Expected error for wrong layout")
	}
}
