// ABOUTME: Intent handlers for every dialog state
// ABOUTME: Handlers mutate session state and compose the reply text
package dialog

import (
	"fmt"
	"strings"

	"github.com/harper/benedict-skill/internal/models"
)

// Handler maps are fixed at package init; dispatch never looks up
// handlers by name.
var (
	mainHandlers = map[Intent]handlerFunc{
		IntentRecipeCount:         handleRecipeCount,
		IntentHelp:                handleHelp,
		IntentSearchByName:        handleSearchByName,
		IntentSearchByIngredients: handleSearchByIngredients,
		IntentRepeat:              handleRepeat,
		IntentStop:                handleStop,
	}
	listHandlers = map[Intent]handlerFunc{
		IntentHelp:                handleHelp,
		IntentRepeat:              handleRepeat,
		IntentNextPage:            handleNextPage,
		IntentPrevPage:            handlePrevPage,
		IntentStop:                handleStop,
		IntentSearchByName:        handleSearchByName,
		IntentSearchByIngredients: handleSearchByIngredients,
	}
	selectedHandlers = map[Intent]handlerFunc{
		IntentStartCooking:        handleStartCooking,
		IntentIngredients:         handleIngredients,
		IntentNutrition:           handleNutrition,
		IntentCookTime:            handleCookTime,
		IntentPortions:            handlePortions,
		IntentHelp:                handleHelp,
		IntentRepeat:              handleRepeat,
		IntentStop:                handleStop,
		IntentSearchByName:        handleSearchByName,
		IntentSearchByIngredients: handleSearchByIngredients,
	}
	stepHandlers = map[Intent]handlerFunc{
		IntentNextStep:  handleNextStep,
		IntentPrevStep:  handlePrevStep,
		IntentRepeat:    handleRepeat,
		IntentNutrition: handleNutrition,
		IntentCookTime:  handleCookTime,
		IntentIngredients: handleIngredients,
		IntentPortions:  handlePortions,
		IntentHelp:      handleHelp,
		IntentStop:      handleStop,
	}
)

func handleUnknown(e *Engine, t *turn) error {
	t.reply = replyUnknown
	return nil
}

func handleAnythingElse(e *Engine, t *turn) error {
	t.reply = replyAnythingElse
	return nil
}

func handleHelp(e *Engine, t *turn) error {
	t.reply = replyHelp
	return nil
}

func handleRecipeCount(e *Engine, t *turn) error {
	n, err := e.recipes.Count()
	if err != nil {
		return fmt.Errorf("counting recipes: %w", err)
	}
	t.reply = composeCount(n, e.morph)
	return nil
}

// handleRepeat replies with the last recorded reply for this user
func handleRepeat(e *Engine, t *turn) error {
	history, err := e.history.Get(t.req.UserID)
	if err != nil {
		return fmt.Errorf("loading history for %s: %w", t.req.UserID, err)
	}
	if last, ok := history.LastReply(); ok {
		t.reply = last
		return nil
	}
	return handleUnknown(e, t)
}

func handleStop(e *Engine, t *turn) error {
	t.sess.State = models.StartState()
	t.reply = replyStopAck
	return nil
}

// nameMarkers delimit the free-text query in a search-by-name utterance;
// the query is the token tail after the first marker found
var nameMarkers = []string{"рецепт", "приготовить", "готовить"}

func handleSearchByName(e *Engine, t *turn) error {
	query := queryAfterMarker(t.req.Tokens, nameMarkers)
	if query == "" {
		return handleHelp(e, t)
	}
	return runSearch(e, t, query, nil)
}

// handleSearchByIngredients searches on the tokens after 'из'; tokens
// after 'без' become exclude terms, one negation clause each
func handleSearchByIngredients(e *Engine, t *turn) error {
	tokens := t.req.Tokens
	from := indexOf(tokens, "из")
	if from < 0 || from+1 >= len(tokens) {
		return handleHelp(e, t)
	}

	include := tokens[from+1:]
	var exclude []string
	if without := indexOf(include, "без"); without >= 0 {
		exclude = include[without+1:]
		include = include[:without]
	}
	if len(include) == 0 {
		return handleHelp(e, t)
	}
	return runSearch(e, t, strings.Join(include, " "), exclude)
}

// runSearch queries the repository and shapes the outcome: 0 results is
// an apology, exactly 1 selects directly, a page or less lists all,
// more announces the count and shows the first window
func runSearch(e *Engine, t *turn, query string, exclude []string) error {
	titles, err := e.recipes.SearchByText(query, exclude, e.searchLimit)
	if err != nil {
		return fmt.Errorf("searching recipes: %w", err)
	}

	switch {
	case len(titles) == 0:
		t.sess.State = models.StartState()
		t.reply = replyNotFound
	case len(titles) == 1:
		t.sess.State = models.RecipeSelectedState(titles[0])
		t.reply = composeFoundOne(titles[0])
	case len(titles) <= pageSize:
		t.sess.State = models.RecipeListState(titles, 0)
		t.reply = composeFoundFew(titles)
	default:
		t.sess.State = models.RecipeListState(titles, 0)
		t.reply = composeFoundMany(len(titles), titles[:pageSize], e.morph)
	}
	return nil
}

// selectRecipe moves to RecipeSelected for a title picked from the list
func selectRecipe(e *Engine, t *turn, title string) error {
	recipe, err := e.recipes.GetByTitle(title)
	if err != nil {
		return fmt.Errorf("loading recipe %q: %w", title, err)
	}
	if recipe == nil {
		// Deleted out-of-band between listing and selection
		t.sess.State = models.StartState()
		t.reply = replyNotFound
		return nil
	}
	t.sess.State = models.RecipeSelectedState(title)
	t.reply = composeSelected(title)
	return nil
}

// handleNextPage advances the window, wrapping to page 0 past the end
func handleNextPage(e *Engine, t *turn) error {
	page := t.sess.State.Page + 1
	if page >= pageCount(len(t.sess.State.Titles)) {
		page = 0
	}
	t.sess.State.Page = page
	t.reply = composePage(pageWindow(t.sess.State.Titles, page))
	return nil
}

// handlePrevPage retreats the window, clamping at page 0
func handlePrevPage(e *Engine, t *turn) error {
	page := t.sess.State.Page - 1
	if page < 0 {
		page = 0
	}
	t.sess.State.Page = page
	t.reply = composePage(pageWindow(t.sess.State.Titles, page))
	return nil
}

func handleListDefault(e *Engine, t *turn) error {
	window := pageWindow(t.sess.State.Titles, t.sess.State.Page)
	if len(window) == 0 {
		t.sess.State = models.StartState()
		t.reply = replyNotFound
		return nil
	}
	t.reply = fmt.Sprintf("%s %s", replyUnknown, composePage(window))
	return nil
}

// handleStartCooking confirms the selection: the reply is the
// ingredients/portions summary followed by the first step, and the
// session enters the walkthrough at step 0
func handleStartCooking(e *Engine, t *turn) error {
	recipe, missing, err := activeRecipe(e, t)
	if err != nil || missing {
		return err
	}
	t.sess.State = models.RecipeStepState(recipe.Title, 0)
	t.reply = composeSummary(recipe, e.morph)
	return nil
}

// handleNextStep advances the walkthrough. stepIndex is the index of
// the last delivered step; when the incremented index reaches the step
// count the walkthrough is complete and the dialog returns to Start.
func handleNextStep(e *Engine, t *turn) error {
	recipe, missing, err := activeRecipe(e, t)
	if err != nil || missing {
		return err
	}
	next := t.sess.State.StepIndex + 1
	if next >= len(recipe.Steps) {
		t.sess.State = models.StartState()
		t.reply = replyDone
		return nil
	}
	t.sess.State.StepIndex = next
	t.reply = recipe.Steps[next]
	return nil
}

// handlePrevStep steps back, clamped at the first step
func handlePrevStep(e *Engine, t *turn) error {
	recipe, missing, err := activeRecipe(e, t)
	if err != nil || missing {
		return err
	}
	idx := t.sess.State.StepIndex - 1
	if idx < 0 {
		idx = 0
	}
	t.sess.State.StepIndex = idx
	t.reply = recipe.Steps[idx]
	return nil
}

func handleIngredients(e *Engine, t *turn) error {
	recipe, missing, err := activeRecipe(e, t)
	if err != nil || missing {
		return err
	}
	if len(recipe.Ingredients) == 0 {
		return handleHelp(e, t)
	}
	t.reply = composeIngredients(recipe)
	return nil
}

// nutrientNames maps query tokens to the nutrient entry they ask for
var nutrientNames = map[string]string{
	"калории": "Калории", "калорий": "Калории", "калорийность": "Калории",
	"белки": "Белки", "белков": "Белки",
	"жиры": "Жиры", "жиров": "Жиры",
	"углеводы": "Углеводы", "углеводов": "Углеводы",
}

// handleNutrition answers nutrient queries. A query naming a nutrient
// gets just that entry; asking for one the recipe lacks falls back to
// help. A generic query (пищевая ценность) lists everything.
func handleNutrition(e *Engine, t *turn) error {
	recipe, missing, err := activeRecipe(e, t)
	if err != nil || missing {
		return err
	}
	if name := askedNutrient(t.req.Tokens); name != "" {
		nutrient := recipe.NutrientByName(name)
		if nutrient == nil {
			return handleHelp(e, t)
		}
		t.reply = composeNutrient(nutrient)
		return nil
	}
	if len(recipe.Nutrients) == 0 {
		return handleHelp(e, t)
	}
	t.reply = composeNutrition(recipe)
	return nil
}

// askedNutrient returns the nutrient name a token asks for, "" if none
func askedNutrient(tokens []string) string {
	for _, tok := range tokens {
		if name, ok := nutrientNames[tok]; ok {
			return name
		}
	}
	return ""
}

func handleCookTime(e *Engine, t *turn) error {
	recipe, missing, err := activeRecipe(e, t)
	if err != nil || missing {
		return err
	}
	if recipe.Time == "" {
		return handleHelp(e, t)
	}
	t.reply = composeCookTime(recipe)
	return nil
}

func handlePortions(e *Engine, t *turn) error {
	recipe, missing, err := activeRecipe(e, t)
	if err != nil || missing {
		return err
	}
	if recipe.Portions <= 0 {
		return handleHelp(e, t)
	}
	t.reply = composePortions(recipe, e.morph)
	return nil
}

func handleSelectedDefault(e *Engine, t *turn) error {
	t.reply = fmt.Sprintf("%s %s", replyUnknown, replyStartHint)
	return nil
}

func handleStepDefault(e *Engine, t *turn) error {
	t.reply = fmt.Sprintf("%s %s", replyUnknown, replyStepHint)
	return nil
}

// activeRecipe loads the session's active recipe. A missing recipe is
// handled in place (apology, reset to Start) and reported via the
// second return value; only store failures return an error.
func activeRecipe(e *Engine, t *turn) (*models.Recipe, bool, error) {
	recipe, err := e.recipes.GetByTitle(t.sess.State.Title)
	if err != nil {
		return nil, false, fmt.Errorf("loading recipe %q: %w", t.sess.State.Title, err)
	}
	if recipe == nil {
		t.sess.State = models.StartState()
		t.reply = replyNotFound
		return nil, true, nil
	}
	return recipe, false, nil
}

func queryAfterMarker(tokens []string, markers []string) string {
	for _, marker := range markers {
		if i := indexOf(tokens, marker); i >= 0 && i+1 < len(tokens) {
			return strings.Join(tokens[i+1:], " ")
		}
	}
	return ""
}

func indexOf(tokens []string, tok string) int {
	for i, t := range tokens {
		if t == tok {
			return i
		}
	}
	return -1
}
