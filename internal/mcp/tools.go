// ABOUTME: MCP tool implementations for routines and the weight ledger.
// ABOUTME: Each handler is a thin call into the tracker service.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/liftlog/internal/clock"
	"github.com/harperreed/liftlog/internal/models"
	"github.com/harperreed/liftlog/internal/schedule"
	"github.com/harperreed/liftlog/internal/storage"
	"github.com/harperreed/liftlog/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// list_routines
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_routines",
		Description: "List a user's routines with their days and exercises",
	}, s.handleListRoutines)

	// create_routine
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_routine",
		Description: "Create a named routine for a user",
	}, s.handleCreateRoutine)

	// add_day
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_day",
		Description: "Add a training weekday to a routine",
	}, s.handleAddDay)

	// add_exercise
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_exercise",
		Description: "Create a new exercise",
	}, s.handleAddExercise)

	// link_exercise
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "link_exercise",
		Description: "Put an exercise on a training day",
	}, s.handleLinkExercise)

	// today
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "today",
		Description: "Show what to train today with the latest weight of each exercise",
	}, s.handleToday)

	// log_weight
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_weight",
		Description: "Record a weight, with optional reps and sets, for an exercise",
	}, s.handleLogWeight)

	// latest_weight
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "latest_weight",
		Description: "Get the most recent weight recorded for an exercise",
	}, s.handleLatestWeight)

	// weight_history
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "weight_history",
		Description: "List recent weights for an exercise, newest first",
	}, s.handleWeightHistory)

	// delete_weight
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_weight",
		Description: "Delete one weight record from an exercise's history",
	}, s.handleDeleteWeight)
}

// Tool input/output types

type userInput struct {
	Username string `json:"username,omitempty" jsonschema:"Username, defaults to the configured user"`
}

type routineSummary struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	Days []daySummary `json:"days"`
}

type daySummary struct {
	ID        string   `json:"id"`
	Weekday   string   `json:"weekday"`
	Exercises []string `json:"exercises"`
}

type listRoutinesOutput struct {
	Username string           `json:"username"`
	Routines []routineSummary `json:"routines"`
	Message  string           `json:"message"`
}

type createRoutineInput struct {
	Name     string `json:"name" jsonschema:"Routine name, unique per user"`
	Username string `json:"username,omitempty" jsonschema:"Owner username, defaults to the configured user"`
}

type idOutput struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type addDayInput struct {
	Routine string `json:"routine" jsonschema:"Routine ID or prefix"`
	Weekday string `json:"weekday" jsonschema:"Weekday name such as monday or Mon"`
}

type addExerciseInput struct {
	Name string `json:"name" jsonschema:"Exercise name, unique across all routines"`
}

type linkExerciseInput struct {
	Day      string `json:"day" jsonschema:"Day ID or prefix"`
	Exercise string `json:"exercise" jsonschema:"Exercise name or ID"`
	Create   bool   `json:"create,omitempty" jsonschema:"Create the exercise if no match exists"`
}

type todayInput struct {
	Username string `json:"username,omitempty" jsonschema:"Username, defaults to the configured user"`
	Routine  string `json:"routine,omitempty" jsonschema:"Routine ID or prefix to train from"`
	Day      string `json:"day,omitempty" jsonschema:"Day ID or prefix to train, whatever its weekday"`
}

type boardEntry struct {
	ExerciseID string   `json:"exercise_id"`
	Name       string   `json:"name"`
	Latest     *float64 `json:"latest,omitempty"`
	Reps       *int     `json:"reps,omitempty"`
	Sets       *int     `json:"sets,omitempty"`
	LoggedAt   string   `json:"logged_at,omitempty"`
}

type todayOutput struct {
	Date      string       `json:"date"`
	Weekday   string       `json:"weekday"`
	Outcome   string       `json:"outcome"`
	Source    string       `json:"source"`
	RoutineID string       `json:"routine_id,omitempty"`
	Routine   string       `json:"routine,omitempty"`
	DayID     string       `json:"day_id,omitempty"`
	Day       string       `json:"day,omitempty"`
	Exercises []boardEntry `json:"exercises"`
	Message   string       `json:"message"`
}

type logWeightInput struct {
	Exercise string  `json:"exercise" jsonschema:"Exercise name or ID"`
	Amount   float64 `json:"amount" jsonschema:"Weight lifted"`
	Reps     *int    `json:"reps,omitempty" jsonschema:"Repetitions per set"`
	Sets     *int    `json:"sets,omitempty" jsonschema:"Number of sets"`
}

type weightOutput struct {
	ID         string  `json:"id"`
	ExerciseID string  `json:"exercise_id"`
	Amount     float64 `json:"amount"`
	Reps       *int    `json:"reps,omitempty"`
	Sets       *int    `json:"sets,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

type logWeightOutput struct {
	Weight  weightOutput `json:"weight"`
	Message string       `json:"message"`
}

type exerciseInput struct {
	Exercise string `json:"exercise" jsonschema:"Exercise name or ID"`
}

type latestWeightOutput struct {
	Exercise string        `json:"exercise"`
	Weight   *weightOutput `json:"weight,omitempty"`
	Message  string        `json:"message"`
}

type weightHistoryInput struct {
	Exercise string `json:"exercise" jsonschema:"Exercise name or ID"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type weightHistoryOutput struct {
	Exercise string         `json:"exercise"`
	Weights  []weightOutput `json:"weights"`
	Message  string         `json:"message"`
}

type deleteWeightInput struct {
	Exercise string `json:"exercise" jsonschema:"Exercise name or ID"`
	WeightID string `json:"weight_id" jsonschema:"Weight ID, or a unique prefix of a weight that still exists"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleListRoutines(ctx context.Context, req *mcp.CallToolRequest, input userInput) (*mcp.CallToolResult, listRoutinesOutput, error) {
	username := s.user(input.Username)
	u, err := s.tracker.EnsureUser(username)
	if err != nil {
		return nil, listRoutinesOutput{}, fmt.Errorf("failed to load user: %w", err)
	}

	routines, err := s.tracker.Routines(u.ID)
	if err != nil {
		return nil, listRoutinesOutput{}, fmt.Errorf("failed to list routines: %w", err)
	}

	out := listRoutinesOutput{Username: username, Routines: make([]routineSummary, 0, len(routines))}
	for _, r := range routines {
		out.Routines = append(out.Routines, summarizeRoutine(r))
	}
	if len(routines) == 0 {
		out.Message = "No routines found."
	} else {
		out.Message = fmt.Sprintf("%d routine(s) for %s", len(routines), username)
	}
	return nil, out, nil
}

func (s *Server) handleCreateRoutine(ctx context.Context, req *mcp.CallToolRequest, input createRoutineInput) (*mcp.CallToolResult, idOutput, error) {
	u, err := s.tracker.EnsureUser(s.user(input.Username))
	if err != nil {
		return nil, idOutput{}, fmt.Errorf("failed to load user: %w", err)
	}

	r, err := s.tracker.CreateRoutine(u.ID, input.Name)
	if err != nil {
		return nil, idOutput{}, fmt.Errorf("failed to create routine: %w", err)
	}

	return nil, idOutput{
		ID:      r.ID.String(),
		Message: fmt.Sprintf("Created routine %s (ID: %s)", r.Name, r.ID.String()[:8]),
	}, nil
}

func (s *Server) handleAddDay(ctx context.Context, req *mcp.CallToolRequest, input addDayInput) (*mcp.CallToolResult, idOutput, error) {
	weekday, err := models.ParseWeekday(input.Weekday)
	if err != nil {
		return nil, idOutput{}, err
	}

	d, err := s.tracker.AddDay(input.Routine, weekday)
	if err != nil {
		return nil, idOutput{}, fmt.Errorf("failed to add day: %w", err)
	}

	return nil, idOutput{
		ID:      d.ID.String(),
		Message: fmt.Sprintf("Added %s (ID: %s)", weekday, d.ID.String()[:8]),
	}, nil
}

func (s *Server) handleAddExercise(ctx context.Context, req *mcp.CallToolRequest, input addExerciseInput) (*mcp.CallToolResult, idOutput, error) {
	e, err := s.tracker.AddExercise(input.Name)
	if err != nil {
		return nil, idOutput{}, fmt.Errorf("failed to add exercise: %w", err)
	}

	return nil, idOutput{
		ID:      e.ID.String(),
		Message: fmt.Sprintf("Added exercise %s (ID: %s)", e.Name, e.ID.String()[:8]),
	}, nil
}

func (s *Server) handleLinkExercise(ctx context.Context, req *mcp.CallToolRequest, input linkExerciseInput) (*mcp.CallToolResult, simpleOutput, error) {
	d, e, err := s.tracker.LinkExercise(input.Day, input.Exercise, input.Create)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to link exercise: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Linked %s to %s", e.Name, d.Weekday),
	}, nil
}

func (s *Server) handleToday(ctx context.Context, req *mcp.CallToolRequest, input todayInput) (*mcp.CallToolResult, todayOutput, error) {
	out, err := s.today(input)
	if err != nil {
		return nil, todayOutput{}, err
	}
	return nil, out, nil
}

// today resolves the day and builds its board; shared by the tool and the resource.
func (s *Server) today(input todayInput) (todayOutput, error) {
	u, err := s.tracker.EnsureUser(s.user(input.Username))
	if err != nil {
		return todayOutput{}, fmt.Errorf("failed to load user: %w", err)
	}

	sel, err := s.tracker.Select(input.Routine, input.Day)
	if err != nil {
		return todayOutput{}, err
	}

	today, res, err := s.tracker.Today(u.ID, sel)
	if err != nil {
		return todayOutput{}, fmt.Errorf("failed to resolve today: %w", err)
	}

	board, err := s.tracker.Board(res)
	if err != nil {
		return todayOutput{}, fmt.Errorf("failed to load board: %w", err)
	}

	out := todayOutput{
		Date:      today.Date.Format(clock.DateLayout),
		Weekday:   string(today.Weekday),
		Outcome:   string(res.Outcome),
		Source:    string(res.Source),
		Exercises: make([]boardEntry, 0, len(board)),
	}
	if res.Routine != nil {
		out.RoutineID = res.Routine.ID.String()
		out.Routine = res.Routine.Name
	}
	if res.Day != nil {
		out.DayID = res.Day.ID.String()
		out.Day = string(res.Day.Weekday)
	}
	for _, entry := range board {
		out.Exercises = append(out.Exercises, toBoardEntry(entry))
	}

	switch res.Outcome {
	case schedule.NoRoutines:
		out.Message = "No routines yet. Create one with create_routine."
	case schedule.NoDays:
		out.Message = fmt.Sprintf("Routine %s has no days yet. Add one with add_day.", out.Routine)
	default:
		out.Message = fmt.Sprintf("%s: %s on %s, %d exercise(s)", today, out.Routine, out.Day, len(board))
	}
	return out, nil
}

func (s *Server) handleLogWeight(ctx context.Context, req *mcp.CallToolRequest, input logWeightInput) (*mcp.CallToolResult, logWeightOutput, error) {
	w, err := s.tracker.Log(input.Exercise, input.Amount, input.Reps, input.Sets)
	if err != nil {
		return nil, logWeightOutput{}, fmt.Errorf("failed to log weight: %w", err)
	}

	return nil, logWeightOutput{
		Weight:  toWeightOutput(*w),
		Message: fmt.Sprintf("Logged %.2f for %s (ID: %s)", w.Amount, input.Exercise, w.ID.String()[:8]),
	}, nil
}

func (s *Server) handleLatestWeight(ctx context.Context, req *mcp.CallToolRequest, input exerciseInput) (*mcp.CallToolResult, latestWeightOutput, error) {
	e, err := s.tracker.FindExercise(input.Exercise)
	if err != nil {
		return nil, latestWeightOutput{}, fmt.Errorf("exercise not found: %s", input.Exercise)
	}

	w, ok, err := s.tracker.Ledger().Latest(e.ID)
	if err != nil {
		return nil, latestWeightOutput{}, fmt.Errorf("failed to get latest weight: %w", err)
	}

	out := latestWeightOutput{Exercise: e.Name}
	if !ok {
		out.Message = fmt.Sprintf("No weights recorded for %s.", e.Name)
		return nil, out, nil
	}
	wo := toWeightOutput(w)
	out.Weight = &wo
	out.Message = fmt.Sprintf("%s: %.2f", e.Name, w.Amount)
	return nil, out, nil
}

func (s *Server) handleWeightHistory(ctx context.Context, req *mcp.CallToolRequest, input weightHistoryInput) (*mcp.CallToolResult, weightHistoryOutput, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	e, weights, err := s.tracker.History(input.Exercise, input.Limit)
	if err != nil {
		return nil, weightHistoryOutput{}, fmt.Errorf("failed to list weights: %w", err)
	}

	out := weightHistoryOutput{Exercise: e.Name, Weights: make([]weightOutput, 0, len(weights))}
	for _, w := range weights {
		out.Weights = append(out.Weights, toWeightOutput(w))
	}
	if len(weights) == 0 {
		out.Message = "No weights found."
	} else {
		out.Message = fmt.Sprintf("%d weight(s) for %s", len(weights), e.Name)
	}
	return nil, out, nil
}

func (s *Server) handleDeleteWeight(ctx context.Context, req *mcp.CallToolRequest, input deleteWeightInput) (*mcp.CallToolResult, simpleOutput, error) {
	e, err := s.tracker.FindExercise(input.Exercise)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("exercise not found: %s", input.Exercise)
	}

	weightID, err := s.weightID(input.WeightID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete weight: %w", err)
	}

	if err := s.tracker.Ledger().Delete(e.ID, weightID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete weight: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted weight %s from %s", weightID.String()[:8], e.Name),
	}, nil
}

// weightID accepts a full UUID, or a prefix of a weight that still exists.
func (s *Server) weightID(idOrPrefix string) (uuid.UUID, error) {
	if id, err := uuid.Parse(idOrPrefix); err == nil {
		return id, nil
	}
	w, err := s.tracker.Repo().GetWeight(idOrPrefix)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return uuid.Nil, fmt.Errorf("%w: weight %s", storage.ErrNotFound, idOrPrefix)
		}
		return uuid.Nil, err
	}
	return w.ID, nil
}

func summarizeRoutine(r *models.Routine) routineSummary {
	rs := routineSummary{ID: r.ID.String(), Name: r.Name, Days: make([]daySummary, 0, len(r.Days))}
	for _, d := range r.Days {
		ds := daySummary{ID: d.ID.String(), Weekday: string(d.Weekday), Exercises: make([]string, 0, len(d.Exercises))}
		for _, e := range d.Exercises {
			ds.Exercises = append(ds.Exercises, e.Name)
		}
		rs.Days = append(rs.Days, ds)
	}
	return rs
}

func toWeightOutput(w models.Weight) weightOutput {
	return weightOutput{
		ID:         w.ID.String(),
		ExerciseID: w.ExerciseID.String(),
		Amount:     w.Amount,
		Reps:       w.Reps,
		Sets:       w.Sets,
		CreatedAt:  w.CreatedAt.Format(time.RFC3339),
	}
}

func toBoardEntry(entry tracker.Entry) boardEntry {
	b := boardEntry{ExerciseID: entry.Exercise.ID.String(), Name: entry.Exercise.Name}
	if entry.HasHistory {
		amount := entry.Latest.Amount
		b.Latest = &amount
		b.Reps = entry.Latest.Reps
		b.Sets = entry.Latest.Sets
		b.LoggedAt = entry.Latest.CreatedAt.Format(time.RFC3339)
	}
	return b
}
