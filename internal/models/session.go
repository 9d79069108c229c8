// ABOUTME: Session and DialogState types for per-session dialog tracking
// ABOUTME: DialogState is the tagged value driving rule table selection
package models

import (
	"fmt"
	"time"
)

// StateKind discriminates the DialogState variants
type StateKind int

const (
	// StateStart - no active recipe context
	StateStart StateKind = iota
	// StateRecipeList - a paginated list of candidate titles is offered
	StateRecipeList
	// StateRecipeSelected - one title is chosen, cooking not started
	StateRecipeSelected
	// StateRecipeStep - walking through the steps of the active recipe
	StateRecipeStep
	// StateFinished - a walkthrough completed; behaves like Start
	StateFinished
)

// String returns a human-readable state name for logs and errors
func (k StateKind) String() string {
	switch k {
	case StateStart:
		return "start"
	case StateRecipeList:
		return "recipe_list"
	case StateRecipeSelected:
		return "recipe_selected"
	case StateRecipeStep:
		return "recipe_step"
	case StateFinished:
		return "finished"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// DialogState is the single tagged per-session state value. Exactly one
// variant is active at a time; Kind selects which fields are meaningful.
type DialogState struct {
	Kind StateKind `json:"kind"`

	// RecipeList fields
	Titles []string `json:"titles,omitempty"`
	Page   int      `json:"page,omitempty"`

	// RecipeSelected / RecipeStep fields
	Title     string `json:"title,omitempty"`
	StepIndex int    `json:"step_index,omitempty"`
}

// StartState returns the initial state for a brand-new session
func StartState() DialogState {
	return DialogState{Kind: StateStart}
}

// RecipeListState returns a list state at the given page
func RecipeListState(titles []string, page int) DialogState {
	return DialogState{Kind: StateRecipeList, Titles: titles, Page: page}
}

// RecipeSelectedState returns a state with one chosen title
func RecipeSelectedState(title string) DialogState {
	return DialogState{Kind: StateRecipeSelected, Title: title}
}

// RecipeStepState returns a walkthrough state at the given step index
func RecipeStepState(title string, stepIndex int) DialogState {
	return DialogState{Kind: StateRecipeStep, Title: title, StepIndex: stepIndex}
}

// FinishedState returns the post-completion state
func FinishedState() DialogState {
	return DialogState{Kind: StateFinished}
}

// Session is the per-session dialog record. Created lazily on first
// contact; its lifecycle is owned by the SessionStore.
type Session struct {
	SessionID  string      `json:"session_id"`
	State      DialogState `json:"state"`
	LastAnswer string      `json:"last_answer"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// NewSession creates a fresh session in the Start state
func NewSession(sessionID string) *Session {
	return &Session{
		SessionID: sessionID,
		State:     StartState(),
		UpdatedAt: time.Now().UTC(),
	}
}
