// ABOUTME: MCP tool definitions and registration for the Benedict skill
// ABOUTME: Exposes dialog turns and recipe search to tool-calling hosts
package mcp

import (
	"github.com/harper/benedict-skill/internal/dialog"
	"github.com/harper/benedict-skill/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, engine *dialog.Engine, recipes storage.RecipeRepository) *Handlers {
	handlers := &Handlers{
		engine:  engine,
		recipes: recipes,
	}

	// 1. handle_turn - Process one dialog turn
	server.AddTool(mcp.Tool{
		Name:        "handle_turn",
		Description: "Process one dialog turn of the Benedict recipe skill. Loads the session, matches an intent and returns the reply text.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Dialog session identifier",
				},
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "User identifier (history is keyed by user)",
				},
				"utterance": map[string]interface{}{
					"type":        "string",
					"description": "Raw user utterance",
				},
				"new_session": map[string]interface{}{
					"type":        "boolean",
					"description": "True for the first turn of a session",
				},
			},
			Required: []string{"session_id", "user_id", "utterance"},
		},
	}, handlers.HandleTurn)

	// 2. search_recipes - Ranked full-text recipe search
	server.AddTool(mcp.Tool{
		Name:        "search_recipes",
		Description: "Search the recipe corpus by free text. Exclude terms each become a negation clause.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Free-text search query",
				},
				"exclude": map[string]interface{}{
					"type":        "string",
					"description": "Space-separated terms to exclude",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of titles to return (default: 5)",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchRecipes)

	// 3. recipe_count - Corpus size
	server.AddTool(mcp.Tool{
		Name:        "recipe_count",
		Description: "Return the number of recipes in the corpus.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.RecipeCount)

	return handlers
}
