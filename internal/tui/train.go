// ABOUTME: Bubbletea train screen over today's resolved day.
// ABOUTME: Each exercise row drives its own progression session; enter commits one record.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/harperreed/liftlog/internal/clock"
	"github.com/harperreed/liftlog/internal/models"
	"github.com/harperreed/liftlog/internal/progression"
	"github.com/harperreed/liftlog/internal/schedule"
	"github.com/harperreed/liftlog/internal/tracker"
)

// row is one exercise on the screen. base is the value a discard returns to.
type row struct {
	exercise models.Exercise
	session  *progression.Session
	base     float64
}

// TrainModel is the tea.Model for the train screen.
type TrainModel struct {
	today   clock.Today
	result  schedule.Result
	rows    []row
	cursor  int
	status  string
	err     error
	Quitted bool
}

// NewTrainModel opens a session per exercise of the resolved day, seeded
// from each exercise's latest record or def.
func NewTrainModel(tr *tracker.Tracker, today clock.Today, res schedule.Result, def float64) (TrainModel, error) {
	m := TrainModel{today: today, result: res}
	if res.Outcome != schedule.Workout || res.Day == nil {
		return m, nil
	}

	for _, e := range res.Day.Exercises {
		s, err := tr.Session(e.ID, def)
		if err != nil {
			return m, fmt.Errorf("open session for %s: %w", e.Name, err)
		}
		m.rows = append(m.rows, row{exercise: e, session: s, base: s.Value()})
	}
	return m, nil
}

func (m TrainModel) Init() tea.Cmd {
	return nil
}

func (m TrainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q":
		m.Quitted = true
		return m, tea.Quit
	}

	if len(m.rows) == 0 {
		return m, nil
	}
	cur := &m.rows[m.cursor]

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j", "tab":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "+", "=", "right", "l":
		cur.session.Increment()
		m.status, m.err = "", nil
	case "-", "left", "h":
		cur.session.Decrement()
		m.status, m.err = "", nil
	case "r":
		cur.session.SetReps(bump(cur.session.Reps(), 1))
	case "R":
		cur.session.SetReps(bump(cur.session.Reps(), -1))
	case "s":
		cur.session.SetSets(bump(cur.session.Sets(), 1))
	case "S":
		cur.session.SetSets(bump(cur.session.Sets(), -1))
	case "esc", "u":
		cur.session.Reset(cur.exercise.ID, cur.base)
		m.status = fmt.Sprintf("Discarded change to %s", cur.exercise.Name)
		m.err = nil
	case "enter", " ":
		w, err := cur.session.Commit()
		if err != nil {
			m.err = err
			m.status = ""
			return m, nil
		}
		cur.base = w.Amount
		m.err = nil
		m.status = fmt.Sprintf("Saved %s: %s", cur.exercise.Name, formatAmount(w.Amount))
	}
	return m, nil
}

// bump steps an optional count by delta. Dropping below one clears it.
func bump(v *int, delta int) *int {
	n := delta
	if v != nil {
		n = *v + delta
	}
	if n < 1 {
		return nil
	}
	return &n
}

func (m TrainModel) View() string {
	theme := CurrentTheme
	var b strings.Builder

	b.WriteString(theme.Header.Render("liftlog · " + m.today.String()))
	b.WriteString("\n\n")

	switch m.result.Outcome {
	case schedule.NoRoutines:
		b.WriteString(theme.Dim.Render("No routines yet. Create one with `liftlog routine add`."))
		b.WriteString("\n")
		return theme.Base.Render(b.String())
	case schedule.NoDays:
		b.WriteString(theme.Routine.Render(m.result.Routine.Name))
		b.WriteString("\n")
		b.WriteString(theme.Dim.Render("This routine has no days. Add one with `liftlog day add`."))
		b.WriteString("\n")
		return theme.Base.Render(b.String())
	}

	b.WriteString(theme.Routine.Render(fmt.Sprintf("%s · %s", m.result.Routine.Name, m.result.Day.Weekday.Short())))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(theme.Dim.Render("No exercises on this day."))
		b.WriteString("\n")
	}

	for i, r := range m.rows {
		cursor := "  "
		name := theme.Exercise.Render(r.exercise.Name)
		if i == m.cursor {
			cursor = theme.Selected.Render("> ")
			name = theme.Selected.Render(r.exercise.Name)
		}

		value := theme.Value.Render(formatAmount(r.session.Value()))
		if r.session.State() == progression.Adjusting {
			value = theme.Adjusting.Render(formatAmount(r.session.Value()) + "*")
		}

		b.WriteString(fmt.Sprintf("%s%-24s %s%s\n", cursor, name, value, counts(r.session.Reps(), r.session.Sets())))
	}

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(theme.Error.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(theme.Saved.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(theme.Dim.Render("↑/↓ move · +/- adjust · r/R reps · s/S sets · enter save · esc discard · q quit"))
	return theme.Base.Render(b.String())
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.1f", progression.RoundHalf(v))
}

func counts(reps, sets *int) string {
	var parts []string
	if sets != nil {
		parts = append(parts, fmt.Sprintf("%d sets", *sets))
	}
	if reps != nil {
		parts = append(parts, fmt.Sprintf("%d reps", *reps))
	}
	if len(parts) == 0 {
		return ""
	}
	return "  " + strings.Join(parts, " × ")
}
