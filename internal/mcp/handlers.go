// ABOUTME: MCP tool handler implementations for the Benedict skill
// ABOUTME: Thin adapters from tool arguments to the dialog engine
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/harper/benedict-skill/internal/dialog"
	"github.com/harper/benedict-skill/internal/morph"
	"github.com/harper/benedict-skill/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	engine  *dialog.Engine
	recipes storage.RecipeRepository
}

// HandleTurn handles the handle_turn tool
func (h *Handlers) HandleTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id argument is required and must be a string"), nil
	}
	userID, err := request.RequireString("user_id")
	if err != nil {
		return mcp.NewToolResultError("user_id argument is required and must be a string"), nil
	}
	utterance, err := request.RequireString("utterance")
	if err != nil {
		return mcp.NewToolResultError("utterance argument is required and must be a string"), nil
	}
	newSession := request.GetBool("new_session", false)

	reply, err := h.engine.HandleTurn(dialog.Request{
		SessionID:  sessionID,
		UserID:     userID,
		NewSession: newSession,
		Tokens:     morph.Tokenize(utterance),
		Utterance:  utterance,
	})
	if err != nil {
		log.Printf("handle_turn failed for session %s: %v", sessionID, err)
		return mcp.NewToolResultError(fmt.Sprintf("turn failed: %v", err)), nil
	}

	return mcp.NewToolResultText(reply), nil
}

// SearchRecipes handles the search_recipes tool
func (h *Handlers) SearchRecipes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	limit := request.GetInt("limit", 5)
	if limit < 1 {
		return mcp.NewToolResultError("limit must be positive"), nil
	}

	var exclude []string
	if ex := request.GetString("exclude", ""); ex != "" {
		exclude = strings.Fields(ex)
	}

	titles, err := h.recipes.SearchByText(query, exclude, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	payload, err := json.Marshal(map[string]interface{}{
		"titles": titles,
		"count":  len(titles),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}

// RecipeCount handles the recipe_count tool
func (h *Handlers) RecipeCount(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n, err := h.recipes.Count()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("count failed: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%d", n)), nil
}
