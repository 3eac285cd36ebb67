// ABOUTME: Clock collaborator supplying "now" and today's date and weekday.
// ABOUTME: The schedule and ledger packages take a Clock instead of reading time.Now.
package clock

import (
	"fmt"
	"time"

	"github.com/harperreed/liftlog/internal/models"
)

// DateLayout is the format accepted by ParseDate and used by Today.String.
const DateLayout = "2006-01-02"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock. A nil Location means time.Local.
type System struct {
	Location *time.Location
}

// Now returns the current time in the clock's location.
func (s System) Now() time.Time {
	if s.Location == nil {
		return time.Now()
	}
	return time.Now().In(s.Location)
}

// Fixed always returns the same instant.
type Fixed struct {
	T time.Time
}

// Now returns the fixed instant.
func (f Fixed) Now() time.Time {
	return f.T
}

// Today is a calendar date with its weekday symbol.
type Today struct {
	Date    time.Time
	Weekday models.Weekday
}

// TodayFrom reads c once and derives the local calendar date.
func TodayFrom(c Clock) Today {
	now := c.Now()
	y, m, d := now.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return Today{Date: date, Weekday: models.WeekdayOf(date)}
}

// String renders e.g. "Friday 2024-05-03".
func (t Today) String() string {
	return fmt.Sprintf("%s %s", t.Date.Weekday(), t.Date.Format(DateLayout))
}

// ParseDate parses a YYYY-MM-DD date at noon in loc, so the weekday is
// stable whatever offset is applied later. A nil loc means time.Local.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	d, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return d.Add(12 * time.Hour), nil
}
