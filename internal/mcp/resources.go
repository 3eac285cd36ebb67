// ABOUTME: MCP resource implementations for the liftlog tracker.
// ABOUTME: Provides liftlog://today and liftlog://exercises resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	todayURI     = "liftlog://today"
	exercisesURI = "liftlog://exercises"
)

func (s *Server) registerResources() {
	// liftlog://today - resolved day for the configured user with latest weights
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         todayURI,
		Name:        "Today's Workout",
		Description: "The routine day to train today with each exercise's latest weight",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// liftlog://exercises - every exercise with its latest weight
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         exercisesURI,
		Name:        "Exercises",
		Description: "All exercises with their most recent weight",
		MIMEType:    "application/json",
	}, s.handleExercisesResource)
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	out, err := s.today(todayInput{})
	if err != nil {
		return nil, err
	}
	return jsonResource(todayURI, out)
}

func (s *Server) handleExercisesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	exercises, err := s.tracker.Repo().ListExercises()
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}

	result := make([]latestWeightOutput, 0, len(exercises))
	for _, e := range exercises {
		out := latestWeightOutput{Exercise: e.Name}
		w, ok, err := s.tracker.Ledger().Latest(e.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get latest weight: %w", err)
		}
		if ok {
			wo := toWeightOutput(w)
			out.Weight = &wo
			out.Message = fmt.Sprintf("%s: %.2f", e.Name, w.Amount)
		} else {
			out.Message = fmt.Sprintf("No weights recorded for %s.", e.Name)
		}
		result = append(result, out)
	}

	return jsonResource(exercisesURI, map[string]interface{}{
		"exercises": result,
		"count":     len(result),
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
