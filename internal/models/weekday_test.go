// ABOUTME: Tests for Weekday parsing, ordering, and day sorting.
// ABOUTME: Validates canonical MONDAY..SUNDAY order and time conversion.
package models

import (
	"testing"
	"time"
)

func TestWeekdayOrder(t *testing.T) {
	for i, d := range AllWeekdays {
		if d.Order() != i+1 {
			t.Errorf("%s.Order() = %d, want %d", d, d.Order(), i+1)
		}
	}
	if Weekday("FUNDAY").Order() != 8 {
		t.Errorf("unknown weekday should order last, got %d", Weekday("FUNDAY").Order())
	}
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		input   string
		want    Weekday
		wantErr bool
	}{
		{"MONDAY", Monday, false},
		{"friday", Friday, false},
		{"Sun", Sunday, false},
		{" wed ", Wednesday, false},
		{"th", "", true},
		{"someday", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWeekday(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseWeekday(%q) expected error, got %s", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseWeekday(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseWeekday(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestWeekdayOf(t *testing.T) {
	// 2024-01-01 was a Monday.
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, want := range AllWeekdays {
		got := WeekdayOf(base.AddDate(0, 0, i))
		if got != want {
			t.Errorf("WeekdayOf(+%d days) = %s, want %s", i, got, want)
		}
	}
}

func TestWeekdayShort(t *testing.T) {
	if Thursday.Short() != "Thu" {
		t.Errorf("Short() = %s, want Thu", Thursday.Short())
	}
}

func TestSortDays(t *testing.T) {
	days := []Day{{Weekday: Sunday}, {Weekday: Wednesday}, {Weekday: Monday}}
	SortDays(days)

	want := []Weekday{Monday, Wednesday, Sunday}
	for i, d := range days {
		if d.Weekday != want[i] {
			t.Errorf("days[%d] = %s, want %s", i, d.Weekday, want[i])
		}
	}
}
