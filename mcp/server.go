// Package mcp exposes the Palate engine as an MCP tool server over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/savorworks/palate"
)

// Server wraps the MCP server with Palate tools.
type Server struct {
	engine    *palate.Engine
	mcpServer *server.MCPServer
}

// ToolResult represents the result of a tool call.
type ToolResult struct {
	Content string
	IsError bool
}

// ToolInfo represents a registered tool.
type ToolInfo struct {
	Name        string
	Description string
}

// NewServer creates a new MCP server with Palate tools registered.
func NewServer(engine *palate.Engine) *Server {
	s := &Server{engine: engine}

	s.mcpServer = server.NewMCPServer(
		"palate",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.registerTools()

	return s
}

// Run starts the MCP server, reading from stdin and writing to stdout.
func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}

// HandleMessage processes a raw JSON-RPC message and returns a response.
// This is primarily for testing the MCP protocol layer.
func (s *Server) HandleMessage(ctx context.Context, message json.RawMessage) mcp.JSONRPCMessage {
	return s.mcpServer.HandleMessage(ctx, message)
}

// ListTools returns all registered tools.
func (s *Server) ListTools() []ToolInfo {
	return []ToolInfo{
		{Name: "palate_recommend", Description: "Get personalized food recommendations for a user, optionally adjusted for time of day, weather, location, and mood"},
		{Name: "palate_interact", Description: "Record a user interaction (orders, preferences, dietary changes) to refine future recommendations"},
		{Name: "palate_trending", Description: "List currently trending food items"},
		{Name: "palate_stats", Description: "Get engine statistics: profile and catalog counts, request counters, model store details"},
	}
}

// CallTool executes a tool by name with the given arguments.
// This is used for testing and direct invocation.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]any) (*ToolResult, error) {
	switch name {
	case "palate_recommend":
		return s.handleRecommend(ctx, args)
	case "palate_interact":
		return s.handleInteract(ctx, args)
	case "palate_trending":
		return s.handleTrending(ctx, args)
	case "palate_stats":
		return s.handleStats(ctx, args)
	default:
		return &ToolResult{Content: fmt.Sprintf("unknown tool: %s", name), IsError: true}, nil
	}
}

func (s *Server) registerTools() {
	// palate_recommend
	s.mcpServer.AddTool(mcp.NewTool("palate_recommend",
		mcp.WithDescription("Get personalized food recommendations for a user. Combines content similarity, peer behavior, and situational context into a single ranked list."),
		mcp.WithString("user_id",
			mcp.Description("The user to recommend for"),
			mcp.Required(),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of recommendations (default: 10)"),
		),
		mcp.WithString("time_of_day",
			mcp.Description("Current time slot: morning, afternoon, evening, late_night"),
		),
		mcp.WithString("weather",
			mcp.Description("Current weather: hot, cold, rainy"),
		),
		mcp.WithString("location",
			mcp.Description("User location for local preference matching"),
		),
		mcp.WithString("mood",
			mcp.Description("Current mood: adventurous, comfort, healthy, indulgent"),
		),
	), s.mcpHandleRecommend)

	// palate_interact
	s.mcpServer.AddTool(mcp.NewTool("palate_interact",
		mcp.WithDescription("Record a user interaction to refine future recommendations. Ordered items extend history, preferences and dietary changes are merged as sets, and the order value folds into the running average."),
		mcp.WithString("user_id",
			mcp.Description("The user whose profile to update"),
			mcp.Required(),
		),
		mcp.WithArray("ordered_items",
			mcp.Description("Item IDs ordered in this interaction"),
			mcp.WithStringItems(),
		),
		mcp.WithArray("preferences",
			mcp.Description("Preference tags to add (cuisines, styles)"),
			mcp.WithStringItems(),
		),
		mcp.WithNumber("order_value",
			mcp.Description("Monetary value of this order"),
		),
		mcp.WithArray("dietary_changes",
			mcp.Description("Dietary restriction tags to add"),
			mcp.WithStringItems(),
		),
	), s.mcpHandleInteract)

	// palate_trending
	s.mcpServer.AddTool(mcp.NewTool("palate_trending",
		mcp.WithDescription("List currently trending food items. This is a read-only operation."),
		mcp.WithString("time_range",
			mcp.Description("Analytics window label (default: 24h)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of items to return (default: 10)"),
		),
	), s.mcpHandleTrending)

	// palate_stats
	s.mcpServer.AddTool(mcp.NewTool("palate_stats",
		mcp.WithDescription("Get engine statistics: profile and catalog counts, request counters, and model store details. This is a read-only operation."),
	), s.mcpHandleStats)
}

// MCP handlers that wrap internal handlers

func (s *Server) mcpHandleRecommend(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.handleRecommend(ctx, req.GetArguments())
	if err != nil {
		return nil, err
	}
	return toMCPResult(result), nil
}

func (s *Server) mcpHandleInteract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.handleInteract(ctx, req.GetArguments())
	if err != nil {
		return nil, err
	}
	return toMCPResult(result), nil
}

func (s *Server) mcpHandleTrending(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.handleTrending(ctx, req.GetArguments())
	if err != nil {
		return nil, err
	}
	return toMCPResult(result), nil
}

func (s *Server) mcpHandleStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.handleStats(ctx, req.GetArguments())
	if err != nil {
		return nil, err
	}
	return toMCPResult(result), nil
}

func toMCPResult(r *ToolResult) *mcp.CallToolResult {
	result := &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: r.Content,
			},
		},
	}
	if r.IsError {
		result.IsError = true
	}
	return result
}

// Internal handlers

func (s *Server) handleRecommend(ctx context.Context, args map[string]any) (*ToolResult, error) {
	userID, ok := args["user_id"].(string)
	if !ok || userID == "" {
		return &ToolResult{Content: "user_id is required", IsError: true}, nil
	}

	params := palate.RecommendParams{
		UserID: userID,
		Limit:  10,
	}
	if limit, ok := args["limit"].(float64); ok {
		params.Limit = int(limit)
	}

	// ParseContext ignores keys it does not recognize, so the raw argument
	// map doubles as the context bag.
	rctx, err := palate.ParseContext(args)
	if err != nil {
		return &ToolResult{Content: fmt.Sprintf("invalid context: %v", err), IsError: true}, nil
	}
	params.Context = rctx

	result, err := s.engine.Recommend(ctx, params)
	if err != nil {
		return &ToolResult{Content: fmt.Sprintf("recommend failed: %v", err), IsError: true}, nil
	}

	return &ToolResult{Content: formatRecommendResult(result)}, nil
}

func (s *Server) handleInteract(ctx context.Context, args map[string]any) (*ToolResult, error) {
	userID, ok := args["user_id"].(string)
	if !ok || userID == "" {
		return &ToolResult{Content: "user_id is required", IsError: true}, nil
	}

	interaction := palate.Interaction{
		OrderedItems:   toStringSlice(args["ordered_items"]),
		Preferences:    toStringSlice(args["preferences"]),
		DietaryChanges: toStringSlice(args["dietary_changes"]),
	}
	if value, ok := args["order_value"].(float64); ok {
		interaction.OrderValue = value
	}

	if err := s.engine.ApplyInteraction(ctx, userID, interaction); err != nil {
		return &ToolResult{Content: fmt.Sprintf("interaction failed: %v", err), IsError: true}, nil
	}

	prof, _ := s.engine.Profiles().Get(userID)
	return &ToolResult{Content: formatInteractResult(userID, prof)}, nil
}

func (s *Server) handleTrending(ctx context.Context, args map[string]any) (*ToolResult, error) {
	timeRange := "24h"
	if tr, ok := args["time_range"].(string); ok && tr != "" {
		timeRange = tr
	}

	limit := 10
	if n, ok := args["limit"].(float64); ok && n > 0 {
		limit = int(n)
	}

	items := s.engine.Trending(timeRange, limit)
	return &ToolResult{Content: formatTrendingResult(timeRange, items)}, nil
}

func (s *Server) handleStats(ctx context.Context, args map[string]any) (*ToolResult, error) {
	stats := s.engine.Stats()

	var sb strings.Builder
	sb.WriteString("Engine statistics:\n")
	sb.WriteString(fmt.Sprintf("  Profiles: %d\n", stats.ProfileCount))
	sb.WriteString(fmt.Sprintf("  Catalog items: %d\n", stats.CatalogCount))
	sb.WriteString(fmt.Sprintf("  Requests: %d (fallbacks: %d)\n", stats.Requests, stats.Fallbacks))
	sb.WriteString(fmt.Sprintf("  Interactions: %d\n", stats.Interactions))
	if stats.ModelPath != "" {
		sb.WriteString(fmt.Sprintf("  Model: %s (schema v%s)\n", stats.ModelPath, stats.SchemaVersion))
	} else {
		sb.WriteString("  Model: in-memory only\n")
	}
	return &ToolResult{Content: sb.String()}, nil
}

// Formatting functions

func formatRecommendResult(result *palate.RecommendResult) string {
	if len(result.Recommendations) == 0 {
		return "No recommendations available."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d recommendations (method: %s, confidence: %.2f):\n\n",
		len(result.Recommendations), result.Method, result.Confidence))

	for i, rec := range result.Recommendations {
		name := rec.Name
		if name == "" {
			name = rec.ItemID
		}
		sb.WriteString(fmt.Sprintf("%d. %s (score: %.3f)\n", i+1, name, rec.TotalScore))
		if len(rec.Reasons) > 0 {
			sb.WriteString(fmt.Sprintf("   %s\n", strings.Join(rec.Reasons, "; ")))
		}
		if rec.IsNewToUser {
			sb.WriteString("   New to you\n")
		}
	}

	return sb.String()
}

func formatInteractResult(userID string, prof *palate.UserProfile) string {
	if prof == nil {
		return fmt.Sprintf("Interaction recorded for %s.", userID)
	}
	return fmt.Sprintf("Interaction recorded for %s:\n  History: %d items\n  Preferences: %s\n  Avg order value: %.2f",
		userID, len(prof.OrderHistory), strings.Join(prof.Preferences, ", "), prof.AvgOrderValue)
}

func formatTrendingResult(timeRange string, items []palate.TrendingItem) string {
	if len(items) == 0 {
		return "No trending items."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Trending items (%s):\n\n", timeRange))
	for i, item := range items {
		sb.WriteString(fmt.Sprintf("%d. %s (score: %.1f, %d orders, +%.1f%%)\n",
			i+1, item.Name, item.TrendingScore, item.OrderCount24h, item.GrowthRate))
	}
	return sb.String()
}

// toStringSlice converts various array types to []string.
// Handles []any, []string, and nil.
func toStringSlice(v any) []string {
	if v == nil {
		return nil
	}

	switch arr := v.(type) {
	case []string:
		return arr
	case []any:
		result := make([]string, 0, len(arr))
		for _, item := range arr {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		return result
	default:
		return nil
	}
}
