package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mww/league_manager/controller"
	"github.com/mww/league_manager/model"
	"github.com/sirupsen/logrus"
)

const (
	toolStandings    = "get_standings"
	toolPlayerStats  = "get_player_stats"
	toolListMatches  = "list_matches"
	toolGetTeam      = "get_team"
	toolLeagueTotals = "get_league_totals"
)

// Handler answers tool calls from the controller. Tools never change league
// state.
type Handler struct {
	ctrl   controller.C
	logger *logrus.Logger
}

func NewHandler(ctrl controller.C, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Handler{ctrl: ctrl, logger: logger}
}

func (h *Handler) Tools() []mcp.Tool {
	competition := map[string]interface{}{
		"type":        "string",
		"description": "Competition to query: primary (default) or secondary",
		"enum":        []string{"primary", "secondary"},
	}

	return []mcp.Tool{
		{
			Name:        toolStandings,
			Description: "Get ranked standings (wins, losses, draws) of a competition, optionally for one division or group",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"competition": competition,
					"division": map[string]interface{}{
						"type":        "string",
						"description": "Division or group name, e.g. 'Division 1' or 'Group A'",
					},
				},
			},
		},
		{
			Name:        toolPlayerStats,
			Description: "Get goals, assists and saves per competition for one player, or for every player when player_id is omitted",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"player_id": map[string]interface{}{
						"type":        "string",
						"description": "The player's id",
					},
				},
			},
		},
		{
			Name:        toolListMatches,
			Description: "List matches in the order they were scheduled, optionally filtered by status",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"status": map[string]interface{}{
						"type":        "string",
						"description": "scheduled or completed, every match when omitted",
						"enum":        []string{"scheduled", "completed"},
					},
				},
			},
		},
		{
			Name:        toolGetTeam,
			Description: "Get a team's captain, roster and division, by team name or by one of its players",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"name": map[string]interface{}{
						"type":        "string",
						"description": "Team name",
					},
					"player_id": map[string]interface{}{
						"type":        "string",
						"description": "Id of a player on the team, used when name is omitted",
					},
					"competition": competition,
				},
			},
		},
		{
			Name:        toolLeagueTotals,
			Description: "Get league-wide totals of goals, assists and saves and the number of players with stats",
			InputSchema: mcp.ToolInputSchema{
				Type:       "object",
				Properties: map[string]interface{}{},
			},
		},
	}
}

// Call routes a tool call. Malformed arguments are returned as errors, league
// rejections as error results the model can read.
func (h *Handler) Call(ctx context.Context, name string, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.WithFields(logrus.Fields{
		"tool": name,
		"args": args,
	}).Info("tool called")

	var (
		data any
		err  error
	)
	switch name {
	case toolStandings:
		data, err = h.standings(ctx, args)
	case toolPlayerStats:
		data, err = h.playerStats(ctx, args)
	case toolListMatches:
		data, err = h.listMatches(ctx, args)
	case toolGetTeam:
		data, err = h.team(ctx, args)
	case toolLeagueTotals:
		data, err = h.ctrl.LeagueTotals(ctx)
	default:
		h.logger.WithField("tool", name).Warn("unknown tool called")
		return textResult("Unknown tool: "+name, true), nil
	}

	if err != nil {
		var argErr *argumentError
		if errors.As(err, &argErr) {
			return nil, argErr
		}
		if model.KindOf(err) == model.KindUnknown {
			h.logger.WithError(err).WithField("tool", name).Error("tool failed")
			return textResult("internal error, try again later", true), nil
		}
		return textResult(err.Error(), true), nil
	}

	text, err := formatJSON(data)
	if err != nil {
		return nil, err
	}
	return textResult(text, false), nil
}

func (h *Handler) standings(ctx context.Context, args map[string]interface{}) (any, error) {
	comp, err := competitionArg(args)
	if err != nil {
		return nil, err
	}
	division, err := stringArg(args, "division")
	if err != nil {
		return nil, err
	}
	return h.ctrl.GetStandings(ctx, comp, division)
}

func (h *Handler) playerStats(ctx context.Context, args map[string]interface{}) (any, error) {
	playerID, err := stringArg(args, "player_id")
	if err != nil {
		return nil, err
	}
	if playerID == "" {
		return h.ctrl.ListPlayerStats(ctx)
	}
	return h.ctrl.GetPlayerStats(ctx, playerID)
}

func (h *Handler) listMatches(ctx context.Context, args map[string]interface{}) (any, error) {
	status, err := stringArg(args, "status")
	if err != nil {
		return nil, err
	}
	if status == "" {
		return h.ctrl.ListMatches(ctx, "")
	}

	s, ok := model.ParseMatchStatus(status)
	if !ok {
		return nil, argumentErrorf("status must be 'scheduled' or 'completed', got '%s'", status)
	}
	return h.ctrl.ListMatches(ctx, s)
}

func (h *Handler) team(ctx context.Context, args map[string]interface{}) (any, error) {
	comp, err := competitionArg(args)
	if err != nil {
		return nil, err
	}
	name, err := stringArg(args, "name")
	if err != nil {
		return nil, err
	}
	playerID, err := stringArg(args, "player_id")
	if err != nil {
		return nil, err
	}

	switch {
	case name != "":
		return h.ctrl.GetTeam(ctx, comp, name)
	case playerID != "":
		return h.ctrl.GetPlayerTeam(ctx, comp, playerID)
	default:
		return nil, argumentErrorf("either name or player_id is required")
	}
}

type argumentError struct {
	msg string
}

func (e *argumentError) Error() string {
	return e.msg
}

func argumentErrorf(format string, args ...any) error {
	return &argumentError{msg: fmt.Sprintf(format, args...)}
}

// stringArg returns "" for a missing argument.
func stringArg(args map[string]interface{}, key string) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", argumentErrorf("%s must be a string", key)
	}
	return strings.TrimSpace(s), nil
}

func competitionArg(args map[string]interface{}) (model.Competition, error) {
	s, err := stringArg(args, "competition")
	if err != nil {
		return model.CompetitionUnknown, err
	}
	if s == "" {
		return model.CompetitionPrimary, nil
	}

	comp := model.ParseCompetition(s)
	if !comp.Valid() {
		return model.CompetitionUnknown, argumentErrorf("competition must be 'primary' or 'secondary', got '%s'", s)
	}
	return comp, nil
}

func formatJSON(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal response: %w", err)
	}
	return string(b), nil
}

func textResult(text string, isError bool) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{
				Type: "text",
				Text: text,
			},
		},
		IsError: isError,
	}
}
