// ABOUTME: Turn history storage operations for SQLite
// ABOUTME: Append-only per-user rows ordered by insertion
package sqlite

import (
	"time"

	"github.com/harper/benedict-skill/internal/models"
)

// HistoryStore handles per-user turn history persistence
type HistoryStore struct {
	db *DB
}

// NewHistoryStore creates a new HistoryStore
func NewHistoryStore(db *DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// Get retrieves all turns for a user, oldest first. A user with no turns
// gets an empty history, not an error.
func (s *HistoryStore) Get(userID string) (*models.History, error) {
	rows, err := s.db.Query(`
		SELECT utterance, reply, created_at
		FROM history
		WHERE user_id = ?
		ORDER BY id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	history := &models.History{UserID: userID}
	for rows.Next() {
		var turn models.HistoryTurn
		if err := rows.Scan(&turn.Utterance, &turn.Reply, &turn.Timestamp); err != nil {
			return nil, err
		}
		history.Turns = append(history.Turns, turn)
	}
	return history, rows.Err()
}

// Append records one turn for the user
func (s *HistoryStore) Append(userID, utterance, reply string) error {
	_, err := s.db.Exec(`
		INSERT INTO history (user_id, utterance, reply, created_at)
		VALUES (?, ?, ?, ?)
	`, userID, utterance, reply, time.Now().UTC())
	return err
}
