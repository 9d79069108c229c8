// ABOUTME: Tests for sessions, dialog states and turn history
// ABOUTME: Constructors, JSON round-trips and the nil-safe history helpers
package models

import (
	"encoding/json"
	"testing"
)

func TestNewSession(t *testing.T) {
	sess := NewSession("s1")

	if sess.SessionID != "s1" {
		t.Errorf("SessionID = %q, want s1", sess.SessionID)
	}
	if sess.State.Kind != StateStart {
		t.Errorf("state = %v, want StateStart", sess.State.Kind)
	}
	if sess.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not set")
	}
}

func TestDialogStateConstructors(t *testing.T) {
	list := RecipeListState([]string{"Борщ", "Оливье"}, 1)
	if list.Kind != StateRecipeList || list.Page != 1 || len(list.Titles) != 2 {
		t.Errorf("RecipeListState = %+v", list)
	}

	selected := RecipeSelectedState("Борщ")
	if selected.Kind != StateRecipeSelected || selected.Title != "Борщ" {
		t.Errorf("RecipeSelectedState = %+v", selected)
	}

	step := RecipeStepState("Борщ", 2)
	if step.Kind != StateRecipeStep || step.Title != "Борщ" || step.StepIndex != 2 {
		t.Errorf("RecipeStepState = %+v", step)
	}

	if kind := FinishedState().Kind; kind != StateFinished {
		t.Errorf("FinishedState kind = %v", kind)
	}
}

func TestDialogStateJSONRoundTrip(t *testing.T) {
	state := RecipeStepState("Паста Карбонара", 3)

	data, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got DialogState
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Kind != StateRecipeStep || got.Title != "Паста Карбонара" || got.StepIndex != 3 {
		t.Errorf("round-tripped state = %+v, want the original", got)
	}
}

func TestStateKindString(t *testing.T) {
	tests := []struct {
		kind StateKind
		want string
	}{
		{StateStart, "start"},
		{StateRecipeList, "recipe_list"},
		{StateRecipeSelected, "recipe_selected"},
		{StateRecipeStep, "recipe_step"},
		{StateFinished, "finished"},
		{StateKind(99), "unknown(99)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}

func TestHistoryLastReply(t *testing.T) {
	var nilHistory *History
	if _, ok := nilHistory.LastReply(); ok {
		t.Error("nil history reported a last reply")
	}

	empty := &History{UserID: "u1"}
	if _, ok := empty.LastReply(); ok {
		t.Error("empty history reported a last reply")
	}

	history := &History{
		UserID: "u1",
		Turns: []HistoryTurn{
			{Utterance: "привет", Reply: "Здравствуйте!"},
			{Utterance: "хватит", Reply: "Хорошо, остановились."},
		},
	}
	last, ok := history.LastReply()
	if !ok || last != "Хорошо, остановились." {
		t.Errorf("LastReply = (%q, %v), want the latest reply", last, ok)
	}
}
