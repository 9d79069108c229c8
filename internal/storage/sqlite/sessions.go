// ABOUTME: Session storage operations for SQLite
// ABOUTME: Dialog state is serialized as JSON in a single column
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harper/benedict-skill/internal/models"
)

// SessionStore handles session persistence
type SessionStore struct {
	db *DB
}

// NewSessionStore creates a new SessionStore
func NewSessionStore(db *DB) *SessionStore {
	return &SessionStore{db: db}
}

// Get retrieves a session, returning nil if not found
func (s *SessionStore) Get(sessionID string) (*models.Session, error) {
	var (
		stateJSON  string
		lastAnswer sql.NullString
		updatedAt  time.Time
	)

	err := s.db.QueryRow(`
		SELECT state, last_answer, updated_at
		FROM sessions
		WHERE session_id = ?
	`, sessionID).Scan(&stateJSON, &lastAnswer, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		SessionID:  sessionID,
		LastAnswer: lastAnswer.String,
		UpdatedAt:  updatedAt,
	}
	if err := json.Unmarshal([]byte(stateJSON), &session.State); err != nil {
		return nil, fmt.Errorf("corrupt state for session %s: %w", sessionID, err)
	}
	return session, nil
}

// Upsert inserts or replaces a session record
func (s *SessionStore) Upsert(session *models.Session) error {
	stateJSON, err := json.Marshal(session.State)
	if err != nil {
		return err
	}

	updatedAt := session.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	_, err = s.db.Exec(`
		INSERT INTO sessions (session_id, state, last_answer, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			state = excluded.state,
			last_answer = excluded.last_answer,
			updated_at = excluded.updated_at
	`, session.SessionID, string(stateJSON), session.LastAnswer, updatedAt)

	return err
}
