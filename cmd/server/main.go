// ABOUTME: Main entry point for the Benedict MCP server on stdio
// ABOUTME: Wires storage, the dialog engine and all MCP tools
package main

import (
	"log"

	"github.com/harper/benedict-skill/internal/charm"
	"github.com/harper/benedict-skill/internal/config"
	"github.com/harper/benedict-skill/internal/dialog"
	benedictmcp "github.com/harper/benedict-skill/internal/mcp"
	"github.com/harper/benedict-skill/internal/morph"
	"github.com/harper/benedict-skill/internal/storage"
	"github.com/harper/benedict-skill/internal/storage/sqlite"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	analyzer := morph.NewRussian()

	// Recipes always live in SQLite; the FTS index is there
	store, err := sqlite.NewStorageWithPath(cfg.DBPath, analyzer)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer func() { _ = store.Close() }()

	var sessions storage.SessionStore = store.Sessions()
	var history storage.HistoryStore = store.History()

	if cfg.StoreBackend == config.StoreCharm {
		client, err := charm.NewClient(&charm.Config{
			Host:     cfg.CharmHost,
			DBName:   cfg.CharmDBName,
			AutoSync: cfg.AutoSync,
		})
		if err != nil {
			log.Fatalf("Failed to initialize charm storage: %v", err)
		}
		defer func() { _ = client.Close() }()
		sessions = charm.NewSessionStore(client, cfg.MaxRetries, cfg.RetryDelay)
		history = charm.NewHistoryStore(client, cfg.MaxRetries, cfg.RetryDelay)
	}

	engine := dialog.NewEngine(sessions, history, store.Recipes(), analyzer, cfg.SearchLimit)

	server := mcpserver.NewMCPServer(
		"Benedict Recipe Skill",
		"0.1.0",
	)

	benedictmcp.RegisterTools(server, engine, store.Recipes())

	log.Println("Benedict MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
