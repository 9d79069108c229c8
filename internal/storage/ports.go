// ABOUTME: Collaborator ports consumed by the dialog engine
// ABOUTME: Implemented by the SQLite stores and the Charm KV stores
package storage

import "github.com/harper/benedict-skill/internal/models"

// SessionStore persists per-session dialog state
type SessionStore interface {
	// Get returns the session, or nil when no record exists
	Get(sessionID string) (*models.Session, error)
	// Upsert inserts or replaces the session record
	Upsert(session *models.Session) error
}

// HistoryStore persists the append-only per-user turn history
type HistoryStore interface {
	// Get returns the user's history; an empty history when none exists
	Get(userID string) (*models.History, error)
	// Append records one (utterance, reply) turn for the user
	Append(userID, utterance, reply string) error
}

// RecipeRepository is the read side of the recipe corpus plus the
// import path used by the CLI
type RecipeRepository interface {
	// SearchByText runs ranked full-text search over titles and
	// ingredients. Every exclude term becomes an independent negation
	// clause. Returns at most limit titles, best match first.
	SearchByText(query string, exclude []string, limit int) ([]string, error)
	// GetByTitle returns the recipe, or nil when the title is unknown
	GetByTitle(title string) (*models.Recipe, error)
	// Count returns the number of recipes in the corpus
	Count() (int, error)
	// Upsert inserts or replaces a recipe and its search index entry
	Upsert(recipe *models.Recipe) error
}
