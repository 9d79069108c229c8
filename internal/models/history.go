// ABOUTME: History is the append-only per-user record of dialog turns
// ABOUTME: Keyed by user (not session) so it survives session boundaries
package models

import "time"

// HistoryTurn is one (utterance, reply) exchange
type HistoryTurn struct {
	Utterance string    `json:"utterance"`
	Reply     string    `json:"reply"`
	Timestamp time.Time `json:"timestamp"`
}

// History holds the ordered turns of one user, oldest first
type History struct {
	UserID string        `json:"user_id"`
	Turns  []HistoryTurn `json:"turns"`
}

// LastReply returns the reply of the most recent turn and whether one exists
func (h *History) LastReply() (string, bool) {
	if h == nil || len(h.Turns) == 0 {
		return "", false
	}
	return h.Turns[len(h.Turns)-1].Reply, true
}
