// ABOUTME: Weekday symbols and their canonical MONDAY..SUNDAY ordering.
// ABOUTME: Used for day uniqueness, schedule fallback, and display sorting.
package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Weekday is one of seven fixed symbols, MONDAY through SUNDAY.
type Weekday string

const (
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
	Saturday  Weekday = "SATURDAY"
	Sunday    Weekday = "SUNDAY"
)

// AllWeekdays lists the weekdays in canonical order.
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Order returns the canonical position of the weekday, 1 (MONDAY) to 7 (SUNDAY).
// Unknown values order after SUNDAY.
func (w Weekday) Order() int {
	for i, d := range AllWeekdays {
		if d == w {
			return i + 1
		}
	}
	return len(AllWeekdays) + 1
}

// IsValid reports whether w is one of the seven weekday symbols.
func (w Weekday) IsValid() bool {
	return w.Order() <= len(AllWeekdays)
}

// Short returns the three-letter display form, e.g. "Mon".
func (w Weekday) Short() string {
	if !w.IsValid() {
		return string(w)
	}
	s := string(w)
	return s[:1] + strings.ToLower(s[1:3])
}

// ParseWeekday accepts full or three-letter names in any case ("monday", "Mon", "MONDAY").
func ParseWeekday(s string) (Weekday, error) {
	in := strings.ToUpper(strings.TrimSpace(s))
	for _, d := range AllWeekdays {
		if string(d) == in || (len(in) == 3 && strings.HasPrefix(string(d), in)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown weekday: %q", s)
}

// WeekdayOf returns the weekday symbol for t in t's own location.
func WeekdayOf(t time.Time) Weekday {
	// time.Weekday starts at Sunday = 0.
	return AllWeekdays[(int(t.Weekday())+6)%7]
}

// SortDays orders days by canonical weekday order in place.
func SortDays(days []Day) {
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Weekday.Order() < days[j].Weekday.Order()
	})
}
