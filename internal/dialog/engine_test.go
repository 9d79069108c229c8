// ABOUTME: End-to-end tests for the dialog engine over in-memory storage
// ABOUTME: Drives whole conversations and checks replies and state transitions
package dialog

import (
	"strings"
	"testing"

	"github.com/harper/benedict-skill/internal/models"
	"github.com/harper/benedict-skill/internal/morph"
	"github.com/harper/benedict-skill/internal/storage/sqlite"
)

var testRecipes = []*models.Recipe{
	{
		Title:    "Драники",
		Portions: 4,
		Time:     "30 минут",
		Ingredients: []models.Ingredient{
			{Name: "картофель", Amount: "6 шт"},
			{Name: "лук", Amount: "1 шт"},
			{Name: "мука", Amount: "2 ст. ложки"},
		},
		Steps: []string{
			"Натрите картофель и лук на крупной терке.",
			"Добавьте муку и перемешайте.",
			"Обжарьте оладьи с двух сторон до золотистой корочки.",
		},
		Nutrients: []models.Nutrient{
			{Name: "Калории", Amount: 180, Unit: "ккал"},
			{Name: "Белки", Amount: 4, Unit: "г"},
		},
	},
	{
		Title:    "Картофельная запеканка",
		Portions: 6,
		Time:     "50 минут",
		Ingredients: []models.Ingredient{
			{Name: "картофель", Amount: "1 кг"},
			{Name: "сыр", Amount: "200 г"},
			{Name: "сливки", Amount: "300 мл"},
		},
		Steps: []string{
			"Нарежьте картофель тонкими ломтиками.",
			"Выложите слоями, залейте сливками и посыпьте сыром.",
			"Запекайте 40 минут при 180 градусах.",
		},
	},
	{
		Title:    "Жаркое по-домашнему",
		Portions: 4,
		Time:     "1 час",
		Ingredients: []models.Ingredient{
			{Name: "картофель", Amount: "700 г"},
			{Name: "говядина", Amount: "500 г"},
		},
		Steps: []string{
			"Обжарьте мясо до корочки.",
			"Добавьте картофель и залейте бульоном.",
			"Тушите под крышкой до готовности.",
		},
	},
	{
		Title:    "Картофель по-деревенски",
		Portions: 3,
		Time:     "40 минут",
		Ingredients: []models.Ingredient{
			{Name: "картофель", Amount: "800 г"},
			{Name: "чеснок", Amount: "3 зубчика"},
		},
		Steps: []string{
			"Нарежьте картофель дольками.",
			"Смешайте со специями и маслом.",
			"Запекайте до румяной корочки.",
		},
	},
	{
		Title:    "Суп картофельный",
		Portions: 5,
		Time:     "45 минут",
		Ingredients: []models.Ingredient{
			{Name: "картофель", Amount: "500 г"},
			{Name: "морковь", Amount: "1 шт"},
		},
		Steps: []string{
			"Доведите бульон до кипения.",
			"Добавьте овощи и варите 25 минут.",
			"Посолите и дайте настояться.",
		},
	},
	{
		Title:    "Паста Карбонара",
		Portions: 2,
		Time:     "25 минут",
		Ingredients: []models.Ingredient{
			{Name: "спагетти", Amount: "200 г"},
			{Name: "бекон", Amount: "150 г"},
			{Name: "яйцо", Amount: "2 шт"},
		},
		Steps: []string{
			"Отварите спагетти аль денте.",
			"Обжарьте бекон и смешайте с яичным соусом.",
			"Соедините с пастой и подавайте сразу.",
		},
	},
	{
		Title:    "Борщ",
		Portions: 6,
		Time:     "2 часа",
		Ingredients: []models.Ingredient{
			{Name: "свекла", Amount: "2 шт"},
			{Name: "капуста", Amount: "300 г"},
			{Name: "мясо", Amount: "500 г"},
		},
		Steps: []string{
			"Сварите бульон на мясе.",
			"Добавьте овощи и варите до мягкости.",
			"Подавайте со сметаной.",
		},
	},
}

func newTestEngine(t *testing.T) (*Engine, *sqlite.Storage) {
	t.Helper()
	an := morph.NewRussian()
	store, err := sqlite.NewStorageInMemory(an)
	if err != nil {
		t.Fatalf("opening in-memory storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	for _, r := range testRecipes {
		if err := store.Recipes().Upsert(r); err != nil {
			t.Fatalf("seeding recipe %q: %v", r.Title, err)
		}
	}
	return NewEngine(store.Sessions(), store.History(), store.Recipes(), an, 10), store
}

func doTurn(t *testing.T, e *Engine, sessionID string, utterance string) string {
	t.Helper()
	reply, err := e.HandleTurn(Request{
		SessionID: sessionID,
		UserID:    "user-" + sessionID,
		Tokens:    morph.Tokenize(utterance),
		Utterance: utterance,
	})
	if err != nil {
		t.Fatalf("HandleTurn(%q): %v", utterance, err)
	}
	return reply
}

func getSession(t *testing.T, store *sqlite.Storage, sessionID string) *models.Session {
	t.Helper()
	sess, err := store.Sessions().Get(sessionID)
	if err != nil {
		t.Fatalf("loading session: %v", err)
	}
	if sess == nil {
		t.Fatalf("session %q not persisted", sessionID)
	}
	return sess
}

func putSession(t *testing.T, store *sqlite.Storage, sessionID string, state models.DialogState) {
	t.Helper()
	sess := models.NewSession(sessionID)
	sess.State = state
	if err := store.Sessions().Upsert(sess); err != nil {
		t.Fatalf("seeding session: %v", err)
	}
}

func TestHandleTurn_NewSessionGreets(t *testing.T) {
	e, store := newTestEngine(t)

	reply, err := e.HandleTurn(Request{SessionID: "s1", UserID: "u1", NewSession: true})
	if err != nil {
		t.Fatalf("HandleTurn: %v", err)
	}
	if reply != replyGreeting {
		t.Errorf("got %q, want %q", reply, replyGreeting)
	}

	sess := getSession(t, store, "s1")
	if sess.State.Kind != models.StateStart {
		t.Errorf("state = %v, want StateStart", sess.State.Kind)
	}
	if sess.LastAnswer != replyGreeting {
		t.Errorf("LastAnswer = %q, want the greeting", sess.LastAnswer)
	}
}

func TestHandleTurn_UnknownSessionGreets(t *testing.T) {
	e, _ := newTestEngine(t)

	// No NewSession flag but nothing persisted either
	reply, err := e.HandleTurn(Request{SessionID: "fresh", UserID: "u1",
		Tokens: []string{"привет"}})
	if err != nil {
		t.Fatalf("HandleTurn: %v", err)
	}
	if reply != replyGreeting {
		t.Errorf("got %q, want %q", reply, replyGreeting)
	}
}

func TestHandleTurn_UnknownUtterance(t *testing.T) {
	e, _ := newTestEngine(t)
	doTurn(t, e, "s1", "")

	reply := doTurn(t, e, "s1", "какая сегодня погода")
	if reply != replyUnknown {
		t.Errorf("got %q, want %q", reply, replyUnknown)
	}
}

func TestHandleTurn_Help(t *testing.T) {
	e, _ := newTestEngine(t)
	doTurn(t, e, "s1", "")

	reply := doTurn(t, e, "s1", "что ты умеешь")
	if reply != replyHelp {
		t.Errorf("got %q, want the help text", reply)
	}
}

func TestHandleTurn_RecipeCount(t *testing.T) {
	e, _ := newTestEngine(t)
	doTurn(t, e, "s1", "")

	reply := doTurn(t, e, "s1", "сколько рецептов ты знаешь")
	want := "На данный момент я знаю 7 рецептов!"
	if reply != want {
		t.Errorf("got %q, want %q", reply, want)
	}
}

func TestHandleTurn_SearchByIngredientsListsPage(t *testing.T) {
	e, store := newTestEngine(t)
	doTurn(t, e, "s1", "")

	reply := doTurn(t, e, "s1", "что приготовить из картофеля")
	if !strings.Contains(reply, "Я нашел 5 рецептов") {
		t.Errorf("reply %q does not announce five results", reply)
	}

	sess := getSession(t, store, "s1")
	if sess.State.Kind != models.StateRecipeList {
		t.Fatalf("state = %v, want StateRecipeList", sess.State.Kind)
	}
	if sess.State.Page != 0 {
		t.Errorf("page = %d, want 0", sess.State.Page)
	}
	if len(sess.State.Titles) != 5 {
		t.Errorf("got %d titles, want 5", len(sess.State.Titles))
	}
	for _, title := range sess.State.Titles {
		if title == "Паста Карбонара" || title == "Борщ" {
			t.Errorf("unrelated recipe %q in results", title)
		}
	}
}

func TestHandleTurn_SearchWithExclusion(t *testing.T) {
	e, store := newTestEngine(t)
	doTurn(t, e, "s1", "")

	reply := doTurn(t, e, "s1", "что приготовить из картофеля без лука")
	if !strings.Contains(reply, "Я нашел 4 рецепта") {
		t.Errorf("reply %q does not announce four results", reply)
	}

	sess := getSession(t, store, "s1")
	for _, title := range sess.State.Titles {
		if title == "Драники" {
			t.Error("excluded recipe Драники still listed")
		}
	}
}

func TestHandleTurn_SearchSingleResultSelects(t *testing.T) {
	e, store := newTestEngine(t)
	doTurn(t, e, "s1", "")

	reply := doTurn(t, e, "s1", "как приготовить карбонару")
	if !strings.Contains(reply, "Паста Карбонара") {
		t.Errorf("reply %q does not name the found recipe", reply)
	}

	sess := getSession(t, store, "s1")
	if sess.State.Kind != models.StateRecipeSelected {
		t.Errorf("state = %v, want StateRecipeSelected", sess.State.Kind)
	}
	if sess.State.Title != "Паста Карбонара" {
		t.Errorf("selected %q, want Паста Карбонара", sess.State.Title)
	}
}

func TestHandleTurn_SearchNoResults(t *testing.T) {
	e, store := newTestEngine(t)
	doTurn(t, e, "s1", "")

	reply := doTurn(t, e, "s1", "что приготовить из ананаса")
	if reply != replyNotFound {
		t.Errorf("got %q, want %q", reply, replyNotFound)
	}
	if sess := getSession(t, store, "s1"); sess.State.Kind != models.StateStart {
		t.Errorf("state = %v, want StateStart", sess.State.Kind)
	}
}

func TestHandleTurn_OrdinalSelectsFromWindow(t *testing.T) {
	e, store := newTestEngine(t)
	doTurn(t, e, "s1", "")
	doTurn(t, e, "s1", "что приготовить из картофеля")

	titles := getSession(t, store, "s1").State.Titles
	reply := doTurn(t, e, "s1", "2")
	if !strings.Contains(reply, titles[1]) {
		t.Errorf("reply %q does not name %q", reply, titles[1])
	}

	sess := getSession(t, store, "s1")
	if sess.State.Kind != models.StateRecipeSelected {
		t.Fatalf("state = %v, want StateRecipeSelected", sess.State.Kind)
	}
	if sess.State.Title != titles[1] {
		t.Errorf("selected %q, want %q", sess.State.Title, titles[1])
	}
}

func TestHandleTurn_OrdinalWordSelects(t *testing.T) {
	e, store := newTestEngine(t)
	doTurn(t, e, "s1", "")
	doTurn(t, e, "s1", "что приготовить из картофеля")

	titles := getSession(t, store, "s1").State.Titles
	doTurn(t, e, "s1", "давай первый")

	sess := getSession(t, store, "s1")
	if sess.State.Kind != models.StateRecipeSelected || sess.State.Title != titles[0] {
		t.Errorf("selected (%v, %q), want (StateRecipeSelected, %q)",
			sess.State.Kind, sess.State.Title, titles[0])
	}
}

func TestHandleTurn_ResolverSelectsByName(t *testing.T) {
	e, store := newTestEngine(t)
	doTurn(t, e, "s1", "")
	putSession(t, store, "s1",
		models.RecipeListState([]string{"Паста Карбонара", "Борщ", "Драники"}, 0))

	doTurn(t, e, "s1", "драники")

	sess := getSession(t, store, "s1")
	if sess.State.Kind != models.StateRecipeSelected || sess.State.Title != "Драники" {
		t.Errorf("selected (%v, %q), want (StateRecipeSelected, Драники)",
			sess.State.Kind, sess.State.Title)
	}
}

func TestHandleTurn_ListFallbackRepeatsWindow(t *testing.T) {
	e, store := newTestEngine(t)
	doTurn(t, e, "s1", "")
	putSession(t, store, "s1",
		models.RecipeListState([]string{"Паста Карбонара", "Борщ", "Драники"}, 0))

	reply := doTurn(t, e, "s1", "где моя ложка")
	if !strings.HasPrefix(reply, replyUnknown) {
		t.Errorf("reply %q does not open with the apology", reply)
	}
	if !strings.Contains(reply, "1. Паста Карбонара") {
		t.Errorf("reply %q does not repeat the window", reply)
	}
}

func TestHandleTurn_PaginationWrapsAndClamps(t *testing.T) {
	e, store := newTestEngine(t)
	doTurn(t, e, "s1", "")

	titles := []string{"Альфа", "Бета", "Гамма", "Дельта", "Эпсилон", "Дзета", "Эта"}
	putSession(t, store, "s1", models.RecipeListState(titles, 0))

	reply := doTurn(t, e, "s1", "дальше")
	if !strings.Contains(reply, "Дельта") {
		t.Errorf("page 1 reply %q does not show Дельта", reply)
	}
	if page := getSession(t, store, "s1").State.Page; page != 1 {
		t.Fatalf("page = %d, want 1", page)
	}

	doTurn(t, e, "s1", "дальше")
	if page := getSession(t, store, "s1").State.Page; page != 2 {
		t.Fatalf("page = %d, want 2", page)
	}

	// Past the last page the window wraps to the beginning
	reply = doTurn(t, e, "s1", "дальше")
	if page := getSession(t, store, "s1").State.Page; page != 0 {
		t.Fatalf("page = %d, want wrap to 0", page)
	}
	if !strings.Contains(reply, "Альфа") {
		t.Errorf("wrapped reply %q does not show the first window", reply)
	}

	// Backwards from the first page stays on it
	doTurn(t, e, "s1", "назад")
	if page := getSession(t, store, "s1").State.Page; page != 0 {
		t.Errorf("page = %d, want clamp at 0", page)
	}
}

func TestHandleTurn_SelectedInfoQueries(t *testing.T) {
	e, store := newTestEngine(t)
	doTurn(t, e, "s1", "")
	putSession(t, store, "s1", models.RecipeSelectedState("Драники"))

	tests := []struct {
		utterance string
		contains  string
	}{
		{"какие нужны ингредиенты", "картофель — 6 шт"},
		{"сколько там калорий", "Калории — 180 ккал"},
		{"сколько времени готовить", "30 минут"},
		{"сколько порций получится", "на 4 порции"},
	}
	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			reply := doTurn(t, e, "s1", tt.utterance)
			if !strings.Contains(reply, tt.contains) {
				t.Errorf("reply %q does not contain %q", reply, tt.contains)
			}
			if kind := getSession(t, store, "s1").State.Kind; kind != models.StateRecipeSelected {
				t.Errorf("state = %v, info query must not leave the selection", kind)
			}
		})
	}
}

func TestHandleTurn_NutrientQueryPicksAskedEntry(t *testing.T) {
	e, store := newTestEngine(t)
	doTurn(t, e, "s1", "")
	putSession(t, store, "s1", models.RecipeSelectedState("Драники"))

	// Драники carries Калории and Белки; only the asked entry is read out
	reply := doTurn(t, e, "s1", "сколько там белков")
	if !strings.Contains(reply, "Белки — 4 г") {
		t.Errorf("reply %q does not contain the asked nutrient", reply)
	}
	if strings.Contains(reply, "Калории") {
		t.Errorf("reply %q lists a nutrient that was not asked for", reply)
	}
}

func TestHandleTurn_NutrientQueryForAbsentEntry(t *testing.T) {
	e, store := newTestEngine(t)
	doTurn(t, e, "s1", "")
	putSession(t, store, "s1", models.RecipeSelectedState("Драники"))

	// Драники has no Жиры entry, so the query falls back to help
	reply := doTurn(t, e, "s1", "сколько в нем жиров")
	if reply != replyHelp {
		t.Errorf("got %q, want the help text for an absent nutrient", reply)
	}
}

func TestHandleTurn_GenericNutritionQueryListsAll(t *testing.T) {
	e, store := newTestEngine(t)
	doTurn(t, e, "s1", "")
	putSession(t, store, "s1", models.RecipeSelectedState("Драники"))

	reply := doTurn(t, e, "s1", "какая пищевая ценность")
	for _, want := range []string{"Калории — 180 ккал", "Белки — 4 г"} {
		if !strings.Contains(reply, want) {
			t.Errorf("reply %q does not contain %q", reply, want)
		}
	}
}

func TestHandleTurn_StartCookingDeliversSummaryAndFirstStep(t *testing.T) {
	e, store := newTestEngine(t)
	doTurn(t, e, "s1", "")
	putSession(t, store, "s1", models.RecipeSelectedState("Драники"))

	reply := doTurn(t, e, "s1", "дальше")
	if !strings.Contains(reply, "понадобится") {
		t.Errorf("reply %q has no ingredient summary", reply)
	}
	if !strings.Contains(reply, "Натрите картофель и лук на крупной терке.") {
		t.Errorf("reply %q does not end with the first step", reply)
	}

	sess := getSession(t, store, "s1")
	if sess.State.Kind != models.StateRecipeStep {
		t.Fatalf("state = %v, want StateRecipeStep", sess.State.Kind)
	}
	if sess.State.StepIndex != 0 {
		t.Errorf("stepIndex = %d, want 0", sess.State.StepIndex)
	}
}

func TestHandleTurn_StepWalkthroughToCompletion(t *testing.T) {
	e, store := newTestEngine(t)
	doTurn(t, e, "s1", "")
	putSession(t, store, "s1", models.RecipeStepState("Драники", 0))

	reply := doTurn(t, e, "s1", "дальше")
	if reply != testRecipes[0].Steps[1] {
		t.Errorf("got %q, want step 2", reply)
	}

	reply = doTurn(t, e, "s1", "дальше")
	if reply != testRecipes[0].Steps[2] {
		t.Errorf("got %q, want step 3", reply)
	}

	// Advancing past the last step completes the walkthrough
	reply = doTurn(t, e, "s1", "готово")
	if reply != replyDone {
		t.Errorf("got %q, want %q", reply, replyDone)
	}
	if kind := getSession(t, store, "s1").State.Kind; kind != models.StateStart {
		t.Errorf("state = %v, want StateStart after completion", kind)
	}
}

func TestHandleTurn_PrevStepClampsAtFirst(t *testing.T) {
	e, store := newTestEngine(t)
	doTurn(t, e, "s1", "")
	putSession(t, store, "s1", models.RecipeStepState("Драники", 1))

	reply := doTurn(t, e, "s1", "назад")
	if reply != testRecipes[0].Steps[0] {
		t.Errorf("got %q, want the first step", reply)
	}

	reply = doTurn(t, e, "s1", "назад")
	if reply != testRecipes[0].Steps[0] {
		t.Errorf("got %q, want the first step again", reply)
	}
	if idx := getSession(t, store, "s1").State.StepIndex; idx != 0 {
		t.Errorf("stepIndex = %d, want clamp at 0", idx)
	}
}

func TestHandleTurn_StopResetsToStart(t *testing.T) {
	e, store := newTestEngine(t)
	doTurn(t, e, "s1", "")
	putSession(t, store, "s1", models.RecipeStepState("Драники", 1))

	reply := doTurn(t, e, "s1", "хватит")
	if reply != replyStopAck {
		t.Errorf("got %q, want %q", reply, replyStopAck)
	}
	if kind := getSession(t, store, "s1").State.Kind; kind != models.StateStart {
		t.Errorf("state = %v, want StateStart", kind)
	}
}

func TestHandleTurn_RepeatReturnsLastReply(t *testing.T) {
	e, _ := newTestEngine(t)
	doTurn(t, e, "s1", "")

	first := doTurn(t, e, "s1", "сколько рецептов ты знаешь")
	repeat := doTurn(t, e, "s1", "повтори еще раз")
	if repeat != first {
		t.Errorf("repeat = %q, want %q", repeat, first)
	}
}

func TestHandleTurn_SelectionOfDeletedRecipe(t *testing.T) {
	e, store := newTestEngine(t)
	doTurn(t, e, "s1", "")
	putSession(t, store, "s1", models.RecipeListState([]string{"Фантом"}, 0))

	reply := doTurn(t, e, "s1", "1")
	if reply != replyNotFound {
		t.Errorf("got %q, want %q", reply, replyNotFound)
	}
	if kind := getSession(t, store, "s1").State.Kind; kind != models.StateStart {
		t.Errorf("state = %v, want StateStart", kind)
	}
}

func TestHandleTurn_SearchFromSelectedState(t *testing.T) {
	e, store := newTestEngine(t)
	doTurn(t, e, "s1", "")
	putSession(t, store, "s1", models.RecipeSelectedState("Борщ"))

	doTurn(t, e, "s1", "как приготовить карбонару")

	sess := getSession(t, store, "s1")
	if sess.State.Kind != models.StateRecipeSelected || sess.State.Title != "Паста Карбонара" {
		t.Errorf("selected (%v, %q), want (StateRecipeSelected, Паста Карбонара)",
			sess.State.Kind, sess.State.Title)
	}
}

func TestHandleTurn_FinishedStateOffersMoreHelp(t *testing.T) {
	e, store := newTestEngine(t)
	doTurn(t, e, "s1", "")
	putSession(t, store, "s1", models.FinishedState())

	reply := doTurn(t, e, "s1", "спасибо большое")
	if reply != replyAnythingElse {
		t.Errorf("got %q, want %q", reply, replyAnythingElse)
	}
}
