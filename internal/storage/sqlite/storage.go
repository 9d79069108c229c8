// ABOUTME: Unified Storage layer that wraps all SQLite stores
// ABOUTME: One open database shared by recipes, sessions and history
package sqlite

import (
	"fmt"

	"github.com/harper/benedict-skill/internal/morph"
)

// Storage bundles the SQLite-backed stores over one database
type Storage struct {
	db       *DB
	recipes  *RecipeStore
	sessions *SessionStore
	history  *HistoryStore
}

// NewStorage initializes storage at the default XDG path
func NewStorage(an morph.Analyzer) (*Storage, error) {
	return NewStorageWithPath(DefaultDBPath(), an)
}

// NewStorageWithPath initializes storage with a custom database path
func NewStorageWithPath(dbPath string, an morph.Analyzer) (*Storage, error) {
	db, err := Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return newStorage(db, an), nil
}

// NewStorageInMemory creates an in-memory storage (for testing)
func NewStorageInMemory(an morph.Analyzer) (*Storage, error) {
	db, err := OpenInMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	return newStorage(db, an), nil
}

func newStorage(db *DB, an morph.Analyzer) *Storage {
	return &Storage{
		db:       db,
		recipes:  NewRecipeStore(db, an),
		sessions: NewSessionStore(db),
		history:  NewHistoryStore(db),
	}
}

// Recipes returns the recipe repository
func (s *Storage) Recipes() *RecipeStore {
	return s.recipes
}

// Sessions returns the session store
func (s *Storage) Sessions() *SessionStore {
	return s.sessions
}

// History returns the history store
func (s *Storage) History() *HistoryStore {
	return s.history
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
