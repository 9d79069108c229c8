// ABOUTME: SessionStore and HistoryStore backed by Charm KV
// ABOUTME: Writes are retried with backoff since syncs cross the network
package charm

import (
	"fmt"
	"time"

	"github.com/harper/benedict-skill/internal/models"
	"github.com/harper/benedict-skill/internal/util"
)

// SessionStore persists sessions in Charm KV
type SessionStore struct {
	client     *Client
	maxRetries int
	retryDelay time.Duration
}

// NewSessionStore creates a charm-backed session store
func NewSessionStore(client *Client, maxRetries int, retryDelay time.Duration) *SessionStore {
	return &SessionStore{client: client, maxRetries: maxRetries, retryDelay: retryDelay}
}

// Get returns the session, or nil when no record exists
func (s *SessionStore) Get(sessionID string) (*models.Session, error) {
	var session models.Session
	found, err := s.client.GetJSON(SessionKey(sessionID), &session)
	if err != nil {
		return nil, fmt.Errorf("failed to get session %s: %w", sessionID, err)
	}
	if !found {
		return nil, nil
	}
	return &session, nil
}

// Upsert inserts or replaces the session record
func (s *SessionStore) Upsert(session *models.Session) error {
	return util.Do(s.maxRetries, s.retryDelay, func() error {
		return s.client.SetJSON(SessionKey(session.SessionID), session)
	})
}

// HistoryStore persists per-user turn history in Charm KV
type HistoryStore struct {
	client     *Client
	maxRetries int
	retryDelay time.Duration
}

// NewHistoryStore creates a charm-backed history store
func NewHistoryStore(client *Client, maxRetries int, retryDelay time.Duration) *HistoryStore {
	return &HistoryStore{client: client, maxRetries: maxRetries, retryDelay: retryDelay}
}

// Get returns the user's history; an empty history when none exists
func (s *HistoryStore) Get(userID string) (*models.History, error) {
	var history models.History
	found, err := s.client.GetJSON(HistoryKey(userID), &history)
	if err != nil {
		return nil, fmt.Errorf("failed to get history for %s: %w", userID, err)
	}
	if !found {
		return &models.History{UserID: userID}, nil
	}
	return &history, nil
}

// Append records one turn for the user. The whole history record is
// rewritten; charm kv has no list append primitive.
func (s *HistoryStore) Append(userID, utterance, reply string) error {
	history, err := s.Get(userID)
	if err != nil {
		return err
	}
	history.Turns = append(history.Turns, models.HistoryTurn{
		Utterance: utterance,
		Reply:     reply,
		Timestamp: time.Now().UTC(),
	})
	return util.Do(s.maxRetries, s.retryDelay, func() error {
		return s.client.SetJSON(HistoryKey(userID), history)
	})
}
