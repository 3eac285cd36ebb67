// ABOUTME: Shared CLI helpers for lookups and formatting.
// ABOUTME: Routine lookup by name or ID, optional counts, and short IDs.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/liftlog/internal/models"
	"github.com/harperreed/liftlog/internal/progression"
)

var faint = color.New(color.Faint)

// currentUser returns the configured user, creating it on first use.
func currentUser() (*models.User, error) {
	return app.EnsureUser(cfg.GetUsername())
}

// findRoutine matches one of the current user's routines by name, ignoring
// case, then falls back to an ID or prefix lookup.
func findRoutine(nameOrID string) (*models.Routine, error) {
	u, err := currentUser()
	if err != nil {
		return nil, err
	}
	routines, err := app.Routines(u.ID)
	if err != nil {
		return nil, err
	}
	for _, r := range routines {
		if strings.EqualFold(r.Name, nameOrID) {
			return r, nil
		}
	}
	return app.Repo().GetRoutine(nameOrID)
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.1f", progression.RoundHalf(v))
}

// formatCounts renders optional sets and reps, e.g. "3 sets × 5 reps".
func formatCounts(reps, sets *int) string {
	var parts []string
	if sets != nil {
		parts = append(parts, fmt.Sprintf("%d sets", *sets))
	}
	if reps != nil {
		parts = append(parts, fmt.Sprintf("%d reps", *reps))
	}
	return strings.Join(parts, " × ")
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
